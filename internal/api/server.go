// Package api exposes the dashboard over HTTP.
//
// Route grouping: POST /api/v1/session (sign-in) is the only
// unauthenticated mutation; everything under the authenticated group
// requires a valid session cookie issued at sign-in. The three queue
// resources are structurally parallel (list / insert / patch-one-field),
// mirroring the repositories beneath them.
package api

import (
	"context"
	"errors"
	"net/http"

	"opsCommandCenter/internal/config"
)

// Start runs the HTTP server on the configured address and returns a
// shutdown function.
func Start(cfg *config.Config, h *Handlers) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}

	addr := cfg.Server.Address
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: NewRouter(cfg, h),
	}

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	return func(ctx context.Context) error {
		select {
		case err := <-errc:
			return err
		default:
		}
		return srv.Shutdown(ctx)
	}, nil
}
