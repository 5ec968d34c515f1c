package catalog

import (
	"github.com/angelmondragon/larek-storefront/pkg/events"
	"github.com/angelmondragon/larek-storefront/pkg/types"
)

// Publisher is the slice of the event bus the store needs.
type Publisher interface {
	Publish(name string, payload any) error
}

// Store holds the product list in server order and the previewed product.
type Store struct {
	bus       Publisher
	products  []types.Product
	byID      map[string]int
	previewed string
}

// NewStore returns an empty catalog publishing on bus.
func NewStore(bus Publisher) *Store {
	return &Store{bus: bus, byID: map[string]int{}}
}

// ReplaceCatalog swaps the whole product list and announces catalog:changed.
func (s *Store) ReplaceCatalog(products []types.Product) error {
	s.products = append([]types.Product(nil), products...)
	s.byID = make(map[string]int, len(s.products))
	for i, p := range s.products {
		s.byID[p.ID] = i
	}
	return s.bus.Publish(events.CatalogChanged, nil)
}

// SelectPreview marks product as previewed and publishes it on preview:changed.
func (s *Store) SelectPreview(product types.Product) error {
	s.previewed = product.ID
	return s.bus.Publish(events.PreviewChanged, product)
}

// ClearPreview forgets the previewed product. Nothing is published when no
// product was previewed.
func (s *Store) ClearPreview() error {
	if s.previewed == "" {
		return nil
	}
	s.previewed = ""
	return s.bus.Publish(events.PreviewCleared, nil)
}

// Products returns a copy of the catalog.
func (s *Store) Products() []types.Product {
	return append([]types.Product(nil), s.products...)
}

// Product looks a catalog entry up by id.
func (s *Store) Product(id string) (types.Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return types.Product{}, false
	}
	return s.products[i], true
}

// PreviewedID is the id of the previewed product, empty when none is.
func (s *Store) PreviewedID() string {
	return s.previewed
}
