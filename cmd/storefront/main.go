package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/larek-storefront/api/controllers"
	"github.com/angelmondragon/larek-storefront/api/routes"
	"github.com/angelmondragon/larek-storefront/internal/larek"
	"github.com/angelmondragon/larek-storefront/internal/storefront"
	"github.com/angelmondragon/larek-storefront/pkg/config"
	"github.com/angelmondragon/larek-storefront/pkg/logger"
	"github.com/angelmondragon/larek-storefront/pkg/metrics"
	"github.com/angelmondragon/larek-storefront/pkg/redis"
)

const serviceName = "storefront"

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "storefront stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "storefront shut down gracefully")
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	client, err := larek.NewClient(cfg.Backend, larek.WithMetrics(metrics.NewBackendMetrics(registry)))
	if err != nil {
		return err
	}

	var backend larek.Backend = client
	ready := map[string]controllers.Pinger{"redis": nil}
	if cfg.Redis.Enabled() {
		redisClient, redisErr := redis.New(ctx, cfg.Redis, logg)
		if redisErr != nil {
			return redisErr
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
		backend = larek.NewCachedBackend(client, redisClient, client.APIURL(), cfg.Redis.CatalogTTL, logg)
		ready["redis"] = redisClient
	}

	session, err := storefront.NewSession(storefront.SessionParams{
		Logger:   logg,
		Backend:  backend,
		Observer: metrics.NewBusMetrics(registry),
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr: ":" + cfg.HTTP.Port,
		Handler: routes.NewRouter(cfg, logg, routes.Deps{
			Storefront: session,
			Ready:      ready,
			Registry:   registry,
		}),
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    server.Addr,
		"session": session.ID(),
	})
	logg.Info(logCtx, "starting storefront")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := session.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
