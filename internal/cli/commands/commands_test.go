package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bendaniels95/firelanding/internal/chart"
	"github.com/bendaniels95/firelanding/internal/cli/config"
)

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"port", "dev", "watch", "open"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewExportCommand(t *testing.T) {
	cmd := NewExportCommand()

	assert.Equal(t, "export", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	for _, flag := range []string{"out", "minify"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "true", cmd.Flags().Lookup("minify").DefValue)
}

func TestNewChartCommand(t *testing.T) {
	cmd := NewChartCommand()

	assert.Equal(t, "chart", cmd.Use)
	for _, flag := range []string{"start", "current", "target", "rate", "history", "projection", "points"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "0.08", cmd.Flags().Lookup("rate").DefValue)
}

func TestRenderChart(t *testing.T) {
	c, err := chart.Build(chart.DefaultParams())
	require.NoError(t, err)

	last := c.ProjectedValues[len(c.ProjectedValues)-1]
	firstX := chart.Num(c.Projected[1].X)

	tests := []struct {
		name    string
		points  bool
		wantOut []string
	}{
		{
			name: "summary and series",
			wantOut: []string{
				"$678,000",
				"$1,500,000",
				"8%",
				"10.32 (~10 years)",
				"December 2035",
				"historical",
				"projected",
				chart.FormatCurrency(last),
			},
		},
		{
			name:    "with coordinates",
			points:  true,
			wantOut: []string{firstX, chart.Num(c.Historical[0].Y)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, renderChart(&buf, c, time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC), tt.points))

			out := buf.String()
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
			// one row per value
			assert.Equal(t, len(c.HistoricalValues), strings.Count(out, "historical"))
			assert.Equal(t, len(c.ProjectedValues), strings.Count(out, "projected"))
		})
	}
}

func TestSiteLoader(t *testing.T) {
	cfg := &config.Config{Chart: chart.DefaultParams(), LastUpdated: "2025-01-09"}

	opts, err := siteLoader(cfg)()
	require.NoError(t, err)
	assert.Equal(t, "FirePal", opts.Site.Brand)
	assert.InDelta(t, 10.32, opts.Chart.YearsToTarget, 0.01)
	assert.Equal(t, time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC), opts.LastUpdated)

	cfg.ContentFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = siteLoader(cfg)()
	require.Error(t, err)

	cfg.ContentFile = ""
	cfg.Chart.AnnualReturn = 0
	_, err = siteLoader(cfg)()
	require.Error(t, err)
}

func TestWatchPaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	paths, err := watchPaths(&config.Config{ContentFile: file}, "static")
	require.NoError(t, err)
	assert.Equal(t, []string{file, "static"}, paths)

	paths, err = watchPaths(&config.Config{}, "")
	require.NoError(t, err)
	assert.Empty(t, paths)
}
