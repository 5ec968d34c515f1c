package presenter

import (
	"context"
	"fmt"

	"github.com/angelmondragon/larek-storefront/internal/cart"
	"github.com/angelmondragon/larek-storefront/internal/catalog"
	"github.com/angelmondragon/larek-storefront/internal/order"
	"github.com/angelmondragon/larek-storefront/internal/views"
	"github.com/angelmondragon/larek-storefront/pkg/events"
	"github.com/angelmondragon/larek-storefront/pkg/logger"
	"github.com/angelmondragon/larek-storefront/pkg/types"
)

// Backend is the shop API as seen by the presenter.
type Backend interface {
	FetchCatalog(ctx context.Context) ([]types.Product, error)
	FetchProduct(ctx context.Context, id string) (types.Product, error)
	PlaceOrder(ctx context.Context, draft order.Draft) (types.OrderResult, error)
}

// Bus is the subscription side of the event bus.
type Bus interface {
	Subscribe(topic events.Topic, handler events.Handler) events.Subscription
	Unsubscribe(sub events.Subscription)
}

// Async starts backend calls off the loop and resumes on it.
type Async interface {
	Go(ctx context.Context, work func(context.Context) func())
}

// Params configure the presenter.
type Params struct {
	Logger   *logger.Logger
	Bus      Bus
	Async    Async
	Backend  Backend
	Catalog  *catalog.Store
	Cart     *cart.Store
	Order    *order.Store
	Surfaces views.Surfaces
}

// Presenter is the only component that knows both the stores and the
// surfaces. It reacts to intents and store changes published on the bus and
// drives the checkout state machine.
type Presenter struct {
	logg     *logger.Logger
	bus      Bus
	async    Async
	backend  Backend
	catalog  *catalog.Store
	cart     *cart.Store
	order    *order.Store
	surfaces views.Surfaces

	ctx      context.Context
	state    State
	checkout uint64
	placing  bool
	subs     []events.Subscription
}

// New builds a presenter. Call Start on the session loop to wire it.
func New(params Params) (*Presenter, error) {
	switch {
	case params.Logger == nil:
		return nil, fmt.Errorf("logger required")
	case params.Bus == nil:
		return nil, fmt.Errorf("bus required")
	case params.Async == nil:
		return nil, fmt.Errorf("async runner required")
	case params.Backend == nil:
		return nil, fmt.Errorf("backend required")
	case params.Catalog == nil || params.Cart == nil || params.Order == nil:
		return nil, fmt.Errorf("stores required")
	}
	if err := checkSurfaces(params.Surfaces); err != nil {
		return nil, err
	}
	return &Presenter{
		logg:     params.Logger,
		bus:      params.Bus,
		async:    params.Async,
		backend:  params.Backend,
		catalog:  params.Catalog,
		cart:     params.Cart,
		order:    params.Order,
		surfaces: params.Surfaces,
		ctx:      context.Background(),
		state:    StateBrowsing,
	}, nil
}

// Start subscribes every reaction, renders the empty storefront and requests
// the catalog. ctx bounds backend calls and carries log fields.
func (p *Presenter) Start(ctx context.Context) {
	if ctx != nil {
		p.ctx = ctx
	}
	for _, r := range p.reactions() {
		p.subs = append(p.subs, p.bus.Subscribe(r.topic, r.handle))
	}
	p.renderCart()
	p.surfaces.Page.SetCounter(p.cart.Quantity())
	p.loadCatalog()
}

// Stop removes every subscription made by Start.
func (p *Presenter) Stop() {
	for _, sub := range p.subs {
		p.bus.Unsubscribe(sub)
	}
	p.subs = nil
}

// State returns the current checkout state.
func (p *Presenter) State() State {
	return p.state
}

type reaction struct {
	topic  events.Topic
	handle events.Handler
}

// reactions lists every subscription in the order it is made. Handlers for
// one topic fire in this order.
func (p *Presenter) reactions() []reaction {
	return []reaction{
		// store changes
		{events.Exact(events.CatalogChanged), p.onCatalogChanged},
		{events.Exact(events.PreviewChanged), p.onPreviewChanged},
		{events.Exact(events.CartChanged), p.onCartChanged},
		{events.Exact(events.OrderChanged), p.onOrderChanged},

		// surface notifications
		{events.Exact(events.ModalOpened), p.onModalOpened},
		{events.Exact(events.ModalClosed), p.onModalClosed},

		// intents
		{events.Exact(events.CatalogReload), p.onCatalogReload},
		{events.Exact(events.CatalogItemSelected), p.onItemSelected},
		{events.Exact(events.PreviewToggle), p.onPreviewToggle},
		{events.Exact(events.CartOpen), p.onCartOpen},
		{events.Exact(events.CartItemRemove), p.onCartItemRemove},
		{events.Exact(events.CheckoutStart), p.onCheckoutStart},
		{events.DeliveryFieldChanged, p.onDeliveryFieldChanged},
		{events.ContactsFieldChanged, p.onContactsFieldChanged},
		{events.Exact(events.DeliverySubmit), p.onDeliverySubmit},
		{events.Exact(events.ContactsSubmit), p.onContactsSubmit},
		{events.Exact(events.ModalClose), p.onModalClose},
	}
}

func (p *Presenter) logCtx(fields map[string]any) context.Context {
	ctx := p.logg.WithField(p.ctx, "state", string(p.state))
	if len(fields) > 0 {
		ctx = p.logg.WithFields(ctx, fields)
	}
	return ctx
}

func (p *Presenter) transition(next State) {
	if p.state == next {
		return
	}
	p.logg.Debug(p.logCtx(map[string]any{"next_state": string(next)}), "presenter.transition")
	p.state = next
}

func checkSurfaces(s views.Surfaces) error {
	missing := map[string]bool{
		"page":     s.Page == nil,
		"modal":    s.Modal == nil,
		"preview":  s.Preview == nil,
		"cart":     s.Cart == nil,
		"delivery": s.Delivery == nil,
		"contacts": s.Contacts == nil,
		"success":  s.Success == nil,
	}
	for _, name := range []string{"page", "modal", "preview", "cart", "delivery", "contacts", "success"} {
		if missing[name] {
			return fmt.Errorf("%s surface required", name)
		}
	}
	return nil
}
