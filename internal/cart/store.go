package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/larek-storefront/pkg/events"
	"github.com/angelmondragon/larek-storefront/pkg/types"
)

// Publisher is the slice of the event bus the store needs.
type Publisher interface {
	Publish(name string, payload any) error
}

// Store keeps cart lines in insertion order, one line per product.
// Quantity and Total are always derived from the lines.
type Store struct {
	bus   Publisher
	lines []types.Product
}

// NewStore returns an empty cart publishing on bus.
func NewStore(bus Publisher) *Store {
	return &Store{bus: bus}
}

// Has reports whether the product is in the cart.
func (s *Store) Has(id string) bool {
	return s.index(id) >= 0
}

// Add appends product unless it is already in the cart; a repeated Add
// changes nothing and publishes nothing.
func (s *Store) Add(product types.Product) error {
	if s.Has(product.ID) {
		return nil
	}
	s.lines = append(s.lines, product)
	return s.changed()
}

// Remove drops the line for id. Unknown ids are ignored without a publish.
func (s *Store) Remove(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.lines = append(s.lines[:i:i], s.lines[i+1:]...)
	return s.changed()
}

// Clear empties the cart and always publishes cart:changed.
func (s *Store) Clear() error {
	s.lines = nil
	return s.changed()
}

// Items returns a copy of the cart lines.
func (s *Store) Items() []types.Product {
	return append([]types.Product(nil), s.lines...)
}

// IDs lists the product ids in line order.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.lines))
	for _, p := range s.lines {
		ids = append(ids, p.ID)
	}
	return ids
}

// Total sums the priced lines; priceless products count as zero.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.lines {
		total = total.Add(p.PriceOrZero())
	}
	return total
}

// Quantity is the number of lines.
func (s *Store) Quantity() int {
	return len(s.lines)
}

func (s *Store) index(id string) int {
	for i, p := range s.lines {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) changed() error {
	return s.bus.Publish(events.CartChanged, s.Items())
}
