// Package landing serves the marketing page and its companion files.
package landing

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures routes for the landing feature.
func SetupRoutes(router chi.Router, opts Options, logger *slog.Logger) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	handlers := NewHandlers(opts, logger)

	router.Get("/", handlers.Page)
	router.Get("/healthz", handlers.Health)
	router.Get("/chart.svg", handlers.ChartSVG)
	router.Get("/robots.txt", handlers.Robots)

	return nil
}
