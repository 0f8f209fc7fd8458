// Package config provides configuration management for the firepal CLI.
package config

import (
	"github.com/bendaniels95/firelanding/internal/chart"
)

// Default configuration values.
const (
	DefaultPort      = 8080
	DefaultOutDir    = "dist"
	DefaultEnvPrefix = "FIREPAL_"
	// DateLayout is the format of last_updated.
	DateLayout = "2006-01-02"
)

// ServerConfig holds configuration for the site server.
type ServerConfig struct {
	Port     int  `koanf:"port"`
	Dev      bool `koanf:"dev"`
	Watch    bool `koanf:"watch"`
	AutoOpen bool `koanf:"auto_open"`
}

// ExportConfig holds configuration for the static export.
type ExportConfig struct {
	OutDir string `koanf:"out_dir"`
	Minify bool   `koanf:"minify"`
}

// Config holds all CLI configuration options.
type Config struct {
	// ContentFile overrides the embedded site copy. Empty uses the embedded one.
	ContentFile string `koanf:"content_file"`
	// LastUpdated dates the legal documents (YYYY-MM-DD). Empty means today.
	LastUpdated string       `koanf:"last_updated"`
	Verbose     bool         `koanf:"verbose"`
	Server      ServerConfig `koanf:"server"`
	Export      ExportConfig `koanf:"export"`
	Chart       chart.Params `koanf:"chart"`
}

// defaults are loaded first and overridden by file, env and flags.
func defaults() map[string]any {
	p := chart.DefaultParams()
	return map[string]any{
		"content_file":            "",
		"last_updated":            "",
		"verbose":                 false,
		"server.port":             DefaultPort,
		"server.dev":              false,
		"server.watch":            false,
		"server.auto_open":        false,
		"export.out_dir":          DefaultOutDir,
		"export.minify":           true,
		"chart.start_value":       p.StartValue,
		"chart.current_value":     p.CurrentValue,
		"chart.target_value":      p.TargetValue,
		"chart.annual_return":     p.AnnualReturn,
		"chart.historical_months": p.HistoricalMonths,
		"chart.projection_months": p.ProjectionMonths,
		"chart.width":             p.Width,
		"chart.height":            p.Height,
		"chart.padding.top":       p.Padding.Top,
		"chart.padding.right":     p.Padding.Right,
		"chart.padding.bottom":    p.Padding.Bottom,
		"chart.padding.left":      p.Padding.Left,
	}
}

// flagKeys maps CLI flag names to config keys. Flags not listed map
// kebab-case to snake_case.
var flagKeys = map[string]string{
	"port":       "server.port",
	"dev":        "server.dev",
	"watch":      "server.watch",
	"open":       "server.auto_open",
	"out":        "export.out_dir",
	"minify":     "export.minify",
	"start":      "chart.start_value",
	"current":    "chart.current_value",
	"target":     "chart.target_value",
	"rate":       "chart.annual_return",
	"history":    "chart.historical_months",
	"projection": "chart.projection_months",
}
