// Package router sets up HTTP routes for the site server.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	landingFeature "github.com/bendaniels95/firelanding/internal/ui/features/landing"
	"github.com/bendaniels95/firelanding/internal/ui/notifier"
	"github.com/bendaniels95/firelanding/internal/ui/resources"
)

// SetupRoutes configures all routes for the site server.
func SetupRoutes(
	router chi.Router,
	opts landingFeature.Options,
	notify *notifier.Notifier,
	logger *slog.Logger,
) error {
	// Hot reload endpoints for dev mode
	if opts.IsDev {
		setupReload(router, notify, logger)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	return landingFeature.SetupRoutes(router, opts, logger)
}

// setupReload serves the stream each dev page holds open. A change
// broadcast on notify makes every open page reload itself. GET /hotreload
// triggers the same broadcast for external build tools.
func setupReload(router chi.Router, notify *notifier.Notifier, logger *slog.Logger) {
	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		changes := notify.Subscribe()
		defer notify.Unsubscribe(changes)

		sse := datastar.NewSSE(w, r)
		select {
		case c := <-changes:
			logger.Debug("reloading page", "changed", c.Path)
			if err := sse.ExecuteScript("window.location.reload()"); err != nil {
				logger.Debug("reload stream closed", "error", err)
			}
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		notify.Broadcast(notifier.Change{Path: "hotreload"})
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
