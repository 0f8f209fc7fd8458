package commands

import (
	"fmt"
	"path/filepath"

	"github.com/bendaniels95/firelanding/internal/chart"
	"github.com/bendaniels95/firelanding/internal/cli/config"
	"github.com/bendaniels95/firelanding/internal/content"
	"github.com/bendaniels95/firelanding/internal/ui/features/landing"
)

// getConfig returns the loaded configuration, or defaults when commands run
// without the root command (as in tests).
func getConfig() (*config.Config, error) {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg, nil
	}
	return config.LoadConfig("", nil)
}

// siteLoader returns a function that reads the content and builds the chart
// as configured. The server calls it again after every watched change.
func siteLoader(cfg *config.Config) func() (landing.Options, error) {
	return func() (landing.Options, error) {
		site, err := content.LoadFile(cfg.ContentFile)
		if err != nil {
			return landing.Options{}, err
		}
		c, err := chart.Build(cfg.Chart)
		if err != nil {
			return landing.Options{}, err
		}
		lastUpdated, err := cfg.LastUpdatedTime()
		if err != nil {
			return landing.Options{}, err
		}
		return landing.Options{Site: site, Chart: c, LastUpdated: lastUpdated}, nil
	}
}

// watchPaths lists what the dev server watches: the content file when one is
// configured and, in dev builds, the static directory.
func watchPaths(cfg *config.Config, staticDir string) ([]string, error) {
	var paths []string
	if cfg.ContentFile != "" {
		abs, err := filepath.Abs(cfg.ContentFile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve content file: %w", err)
		}
		paths = append(paths, abs)
	}
	if staticDir != "" {
		paths = append(paths, staticDir)
	}
	return paths, nil
}
