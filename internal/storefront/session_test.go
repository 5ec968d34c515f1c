package storefront

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/larek-storefront/internal/order"
	"github.com/angelmondragon/larek-storefront/internal/presenter"
	"github.com/angelmondragon/larek-storefront/internal/views"
	"github.com/angelmondragon/larek-storefront/pkg/enums"
	"github.com/angelmondragon/larek-storefront/pkg/errors"
	"github.com/angelmondragon/larek-storefront/pkg/events"
	"github.com/angelmondragon/larek-storefront/pkg/logger"
	"github.com/angelmondragon/larek-storefront/pkg/metrics"
	"github.com/angelmondragon/larek-storefront/pkg/types"
)

type stubBackend struct{}

func (stubBackend) FetchCatalog(context.Context) ([]types.Product, error) {
	return []types.Product{{ID: "a", Title: "Shell", Category: enums.CategoryHardSkill, Price: types.Priced(1450)}}, nil
}

func (stubBackend) FetchProduct(_ context.Context, id string) (types.Product, error) {
	return types.Product{ID: id, Title: "Shell", Category: enums.CategoryHardSkill, Price: types.Priced(1450)}, nil
}

func (stubBackend) PlaceOrder(_ context.Context, draft order.Draft) (types.OrderResult, error) {
	return types.OrderResult{ID: "o1", Total: draft.Total}, nil
}

func startSession(t *testing.T) (*Session, context.Context) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	session, err := NewSession(SessionParams{
		Logger:   logger.Nop(),
		Backend:  stubBackend{},
		Observer: metrics.NewBusMetrics(prometheus.NewRegistry()),
	})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = session.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	// Run posts the presenter start itself; wait for the first catalog render.
	require.Eventually(t, func() bool {
		snap, err := session.Snapshot(ctx)
		return err == nil && len(snap.Catalog) > 0
	}, 2*time.Second, 5*time.Millisecond)
	return session, ctx
}

func TestSessionLoadsCatalogOnRun(t *testing.T) {
	session, ctx := startSession(t)
	assert.NotEmpty(t, session.ID())

	snap, err := session.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Catalog, 1)
	assert.Equal(t, "hard", snap.Catalog[0].Modifier)
}

func TestSessionDispatchDrivesPresenter(t *testing.T) {
	session, ctx := startSession(t)

	require.NoError(t, session.Dispatch(ctx, events.CatalogItemSelected, events.ItemRef{ID: "a"}))
	require.NoError(t, session.Dispatch(ctx, events.PreviewToggle, nil))
	require.NoError(t, session.Settle(ctx))

	snap, err := session.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Counter)
	require.NotNil(t, snap.Modal)
	assert.Equal(t, views.ModalPreview, snap.Modal.Kind)

	state, err := session.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, presenter.StatePreviewing, state)

	err = session.Dispatch(ctx, events.CheckoutStart, nil)
	assert.True(t, errors.IsCode(err, errors.CodeStateConflict), "got %v", err)
}

func TestNewSessionRequiresCollaborators(t *testing.T) {
	_, err := NewSession(SessionParams{Backend: stubBackend{}})
	assert.Error(t, err)
	_, err = NewSession(SessionParams{Logger: logger.Nop()})
	assert.Error(t, err)
}
