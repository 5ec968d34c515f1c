package views

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/larek-storefront/pkg/events"
)

// Emitter is where surfaces send intents.
type Emitter interface {
	Publish(name string, payload any) error
}

// Screen is a headless storefront: every surface keeps the last data the
// presenter rendered into it. It is not safe for concurrent use; callers reach
// it through the session loop.
type Screen struct {
	bus Emitter

	catalog []CatalogCard
	counter int
	locked  bool

	open bool
	kind ModalKind

	preview  PreviewData
	cart     CartData
	delivery DeliveryData
	contacts ContactsData
	success  SuccessData
}

func NewScreen(bus Emitter) *Screen {
	return &Screen{bus: bus, cart: NewCartData(nil, decimal.Zero)}
}

// Surfaces exposes the screen as the set of surfaces the presenter drives.
func (s *Screen) Surfaces() Surfaces {
	return Surfaces{
		Page:     s,
		Modal:    s,
		Preview:  s,
		Cart:     s,
		Delivery: s,
		Contacts: s,
		Success:  s,
	}
}

// Emit forwards a user intent to the bus.
func (s *Screen) Emit(topic string, payload any) error {
	return s.bus.Publish(topic, payload)
}

func (s *Screen) RenderCatalog(cards []CatalogCard) {
	s.catalog = append([]CatalogCard(nil), cards...)
}

func (s *Screen) SetCounter(n int) { s.counter = n }

func (s *Screen) SetLocked(locked bool) { s.locked = locked }

func (s *Screen) Open(kind ModalKind) error {
	s.kind = kind
	if s.open {
		return nil
	}
	s.open = true
	return s.bus.Publish(events.ModalOpened, kind)
}

func (s *Screen) Close() error {
	if !s.open {
		return nil
	}
	s.open = false
	s.kind = ""
	return s.bus.Publish(events.ModalClosed, nil)
}

func (s *Screen) Current() (ModalKind, bool) {
	return s.kind, s.open
}

func (s *Screen) RenderPreview(data PreviewData) { s.preview = data }

func (s *Screen) RenderCart(data CartData) { s.cart = data }

func (s *Screen) RenderDelivery(data DeliveryData) { s.delivery = data }

func (s *Screen) RenderContacts(data ContactsData) { s.contacts = data }

func (s *Screen) RenderSuccess(data SuccessData) { s.success = data }

// ModalSnapshot carries only the content of the open modal.
type ModalSnapshot struct {
	Kind     ModalKind     `json:"kind"`
	Preview  *PreviewData  `json:"preview,omitempty"`
	Cart     *CartData     `json:"cart,omitempty"`
	Delivery *DeliveryData `json:"delivery,omitempty"`
	Contacts *ContactsData `json:"contacts,omitempty"`
	Success  *SuccessData  `json:"success,omitempty"`
}

// Snapshot is what a thin client needs to draw the storefront.
type Snapshot struct {
	Catalog []CatalogCard  `json:"catalog"`
	Counter int            `json:"counter"`
	Locked  bool           `json:"locked"`
	Modal   *ModalSnapshot `json:"modal,omitempty"`
}

func (s *Screen) Snapshot() Snapshot {
	snap := Snapshot{
		Catalog: append([]CatalogCard{}, s.catalog...),
		Counter: s.counter,
		Locked:  s.locked,
	}
	if !s.open {
		return snap
	}
	m := &ModalSnapshot{Kind: s.kind}
	switch s.kind {
	case ModalPreview:
		preview := s.preview
		m.Preview = &preview
	case ModalCart:
		cart := s.cart
		cart.Lines = append([]CartLine{}, s.cart.Lines...)
		m.Cart = &cart
	case ModalDelivery:
		delivery := s.delivery
		m.Delivery = &delivery
	case ModalContacts:
		contacts := s.contacts
		m.Contacts = &contacts
	case ModalSuccess:
		success := s.success
		m.Success = &success
	}
	snap.Modal = m
	return snap
}
