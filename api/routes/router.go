package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/larek-storefront/api/controllers"
	"github.com/angelmondragon/larek-storefront/api/middleware"
	"github.com/angelmondragon/larek-storefront/pkg/config"
	"github.com/angelmondragon/larek-storefront/pkg/logger"
)

// Deps are what the router serves.
type Deps struct {
	Storefront controllers.Storefront
	// Ready lists the dependencies readiness pings; nil entries are reported
	// as disabled.
	Ready    map[string]controllers.Pinger
	Registry *prometheus.Registry
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	r.Get("/health/live", controllers.HealthLive(cfg.App.Env))
	r.Get("/health/ready", controllers.HealthReady(cfg.App.Env, logg, deps.Ready))
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/screen", controllers.Screen(logg, deps.Storefront))
		r.Post("/intents/{topic}", controllers.Intent(logg, deps.Storefront, cfg.HTTP.SettleTimeout))
	})

	return r
}
