package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/larek-storefront/internal/order"
	"github.com/angelmondragon/larek-storefront/internal/storefront"
	"github.com/angelmondragon/larek-storefront/pkg/config"
	"github.com/angelmondragon/larek-storefront/pkg/logger"
	"github.com/angelmondragon/larek-storefront/pkg/metrics"
	"github.com/angelmondragon/larek-storefront/pkg/types"
)

type stubBackend struct{}

func (stubBackend) FetchCatalog(context.Context) ([]types.Product, error) {
	return []types.Product{
		{ID: "p1", Title: "Mask", Price: types.Priced(750)},
		{ID: "p2", Title: "Sign", Price: types.Priced(2500)},
	}, nil
}

func (b stubBackend) FetchProduct(ctx context.Context, id string) (types.Product, error) {
	all, _ := b.FetchCatalog(ctx)
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return types.Product{}, nil
}

func (stubBackend) PlaceOrder(_ context.Context, draft order.Draft) (types.OrderResult, error) {
	return types.OrderResult{ID: "order-1", Total: draft.Total}, nil
}

type screenEnvelope struct {
	Data struct {
		State  string `json:"state"`
		Screen struct {
			Catalog []map[string]any `json:"catalog"`
			Counter int              `json:"counter"`
			Locked  bool             `json:"locked"`
			Modal   *struct {
				Kind    string         `json:"kind"`
				Success map[string]any `json:"success"`
			} `json:"modal"`
		} `json:"screen"`
	} `json:"data"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		App:  config.AppConfig{Env: "test"},
		HTTP: config.HTTPConfig{SettleTimeout: 2 * time.Second, CORSOrigins: []string{"http://localhost:3000"}},
	}
	registry := prometheus.NewRegistry()
	busMetrics := metrics.NewBusMetrics(registry)

	session, err := storefront.NewSession(storefront.SessionParams{
		Logger:   logger.Nop(),
		Backend:  stubBackend{},
		Observer: busMetrics,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = session.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	srv := httptest.NewServer(NewRouter(cfg, logger.Nop(), Deps{
		Storefront: session,
		Registry:   registry,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func request(t *testing.T, srv *httptest.Server, method, path, body string) (int, screenEnvelope) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env screenEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestCheckoutOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	require.Eventually(t, func() bool {
		_, env := request(t, srv, http.MethodGet, "/api/v1/screen", "")
		return len(env.Data.Screen.Catalog) == 2
	}, 2*time.Second, 10*time.Millisecond)

	steps := []struct {
		path, body string
	}{
		{"/api/v1/intents/catalog-item-selected", `{"id":"p1"}`},
		{"/api/v1/intents/preview-toggle", ""},
		{"/api/v1/intents/cart-open", ""},
		{"/api/v1/intents/checkout-start", ""},
		{"/api/v1/intents/delivery.payment-changed", `{"value":"card"}`},
		{"/api/v1/intents/delivery.address-changed", `{"value":"Moscow"}`},
		{"/api/v1/intents/delivery-submit", ""},
		{"/api/v1/intents/contacts.email-changed", `{"value":"a@b.co"}`},
		{"/api/v1/intents/contacts.phone-changed", `{"value":"+71234567890"}`},
	}
	for _, step := range steps {
		code, _ := request(t, srv, http.MethodPost, step.path, step.body)
		require.Equal(t, http.StatusOK, code, step.path)
	}

	code, env := request(t, srv, http.MethodPost, "/api/v1/intents/contacts-submit", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "confirmation", env.Data.State)
	require.NotNil(t, env.Data.Screen.Modal)
	assert.Equal(t, "success", env.Data.Screen.Modal.Kind)
	assert.Equal(t, "Charged 750 synapses", env.Data.Screen.Modal.Success["description"])
	assert.Zero(t, env.Data.Screen.Counter)
}

func TestStateConflictOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	code, _ := request(t, srv, http.MethodPost, "/api/v1/intents/delivery-submit", "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/health/live")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Eventually(t, func() bool {
		resp, err := srv.Client().Get(srv.URL + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return strings.Contains(string(body), "events_published_total")
	}, 2*time.Second, 10*time.Millisecond)
}
