package storefront

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelmondragon/larek-storefront/internal/cart"
	"github.com/angelmondragon/larek-storefront/internal/catalog"
	"github.com/angelmondragon/larek-storefront/internal/order"
	"github.com/angelmondragon/larek-storefront/internal/presenter"
	"github.com/angelmondragon/larek-storefront/internal/runloop"
	"github.com/angelmondragon/larek-storefront/internal/views"
	"github.com/angelmondragon/larek-storefront/pkg/events"
	"github.com/angelmondragon/larek-storefront/pkg/logger"
)

// SessionParams configure a storefront session.
type SessionParams struct {
	Logger   *logger.Logger
	Backend  presenter.Backend
	Observer events.Observer
}

// Session is one shopper's storefront: a bus, the three stores, the headless
// screen and the presenter, all confined to a single loop.
type Session struct {
	id        string
	logg      *logger.Logger
	loop      *runloop.Loop
	screen    *views.Screen
	presenter *presenter.Presenter
}

// NewSession wires a session. Nothing runs until Run is called.
func NewSession(params SessionParams) (*Session, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Backend == nil {
		return nil, fmt.Errorf("backend required")
	}

	var opts []events.Option
	if params.Observer != nil {
		opts = append(opts, events.WithObserver(params.Observer))
	}
	bus := events.NewBus(opts...)
	loop := runloop.New()
	screen := views.NewScreen(bus)

	p, err := presenter.New(presenter.Params{
		Logger:   params.Logger,
		Bus:      bus,
		Async:    loop,
		Backend:  params.Backend,
		Catalog:  catalog.NewStore(bus),
		Cart:     cart.NewStore(bus),
		Order:    order.NewStore(bus),
		Surfaces: screen.Surfaces(),
	})
	if err != nil {
		return nil, fmt.Errorf("build presenter: %w", err)
	}

	return &Session{
		id:        uuid.NewString(),
		logg:      params.Logger,
		loop:      loop,
		screen:    screen,
		presenter: p,
	}, nil
}

func (s *Session) ID() string {
	return s.id
}

// Run starts the presenter and serves the loop until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	ctx = s.logg.WithSessionID(ctx, s.id)
	s.loop.Post(func() {
		s.presenter.Start(ctx)
	})
	s.logg.Info(ctx, "session.started")
	err := s.loop.Run(ctx)
	s.logg.Info(ctx, "session.stopped")
	return err
}

// Dispatch emits an intent as if the user had acted on the screen and
// returns once the bus has delivered it.
func (s *Session) Dispatch(ctx context.Context, topic string, payload any) error {
	return s.loop.Do(ctx, func() error {
		return s.screen.Emit(topic, payload)
	})
}

// Snapshot returns what the screen currently shows.
func (s *Session) Snapshot(ctx context.Context) (views.Snapshot, error) {
	var snap views.Snapshot
	err := s.loop.Do(ctx, func() error {
		snap = s.screen.Snapshot()
		return nil
	})
	return snap, err
}

// State returns the checkout state.
func (s *Session) State(ctx context.Context) (presenter.State, error) {
	var state presenter.State
	err := s.loop.Do(ctx, func() error {
		state = s.presenter.State()
		return nil
	})
	return state, err
}

// Settle waits until no intent or backend call is outstanding.
func (s *Session) Settle(ctx context.Context) error {
	return s.loop.Settle(ctx)
}
