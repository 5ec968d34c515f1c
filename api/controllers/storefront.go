package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/larek-storefront/api/responses"
	"github.com/angelmondragon/larek-storefront/api/validators"
	"github.com/angelmondragon/larek-storefront/internal/presenter"
	"github.com/angelmondragon/larek-storefront/internal/views"
	"github.com/angelmondragon/larek-storefront/pkg/logger"
)

// Storefront is the session surface the HTTP layer drives.
type Storefront interface {
	Dispatch(ctx context.Context, topic string, payload any) error
	Snapshot(ctx context.Context) (views.Snapshot, error)
	State(ctx context.Context) (presenter.State, error)
	Settle(ctx context.Context) error
}

type screenResponse struct {
	State  presenter.State `json:"state"`
	Screen views.Snapshot  `json:"screen"`
}

// Screen returns what the storefront currently shows.
func Screen(logg *logger.Logger, store Storefront) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := currentScreen(r.Context(), store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// Intent posts a user action to the storefront, waits up to settle for the
// backend calls it started, and returns the resulting screen. A slow backend
// does not fail the request; the screen is returned as it stands.
func Intent(logg *logger.Logger, store Storefront, settle time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		topic := chi.URLParam(r, "topic")
		if logg != nil {
			ctx = logg.WithTopic(ctx, topic)
		}

		payload, err := validators.DecodeIntent(topic, r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := store.Dispatch(ctx, topic, payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		settleCtx, cancel := context.WithTimeout(ctx, settle)
		err = store.Settle(settleCtx)
		cancel()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err != nil && logg != nil {
			logg.Warn(ctx, "intent.settle_timeout")
		}

		resp, err := currentScreen(ctx, store)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

func currentScreen(ctx context.Context, store Storefront) (screenResponse, error) {
	state, err := store.State(ctx)
	if err != nil {
		return screenResponse{}, err
	}
	snap, err := store.Snapshot(ctx)
	if err != nil {
		return screenResponse{}, err
	}
	return screenResponse{State: state, Screen: snap}, nil
}
