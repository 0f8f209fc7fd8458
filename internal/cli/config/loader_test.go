package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bendaniels95/firelanding/internal/chart"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("content-file", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.Int("port", 0, "")
	fs.Bool("watch", false, "")
	fs.String("out", "", "")
	fs.Float64("rate", 0, "")
	return fs
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "firepal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(ResetConfig)
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.False(t, cfg.Server.Watch)
	assert.Equal(t, DefaultOutDir, cfg.Export.OutDir)
	assert.True(t, cfg.Export.Minify)
	assert.Equal(t, chart.DefaultParams(), cfg.Chart)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_FindsFileInWorkingDir(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "firepal.yml"), []byte("server:\n  port: 9000\n"), 0600))
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "firepal.yml", GetConfigFileUsed())
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  watch: true
export:
  out_dir: from-file
chart:
  annual_return: 0.06
  target_value: 2000000
last_updated: "2025-01-09"
`)

	tests := []struct {
		name     string
		env      map[string]string
		args     []string
		wantPort int
		wantOut  string
		wantRate float64
	}{
		{
			name:     "file over defaults",
			wantPort: 9000,
			wantOut:  "from-file",
			wantRate: 0.06,
		},
		{
			name:     "env over file",
			env:      map[string]string{"FIREPAL_SERVER__PORT": "9100", "FIREPAL_EXPORT__OUT_DIR": "from-env"},
			wantPort: 9100,
			wantOut:  "from-env",
			wantRate: 0.06,
		},
		{
			name:     "flags over env",
			env:      map[string]string{"FIREPAL_SERVER__PORT": "9100", "FIREPAL_CHART__ANNUAL_RETURN": "0.07"},
			args:     []string{"--port", "9200", "--out", "from-flag", "--rate", "0.1"},
			wantPort: 9200,
			wantOut:  "from-flag",
			wantRate: 0.1,
		},
		{
			name:     "unset flags do not override",
			args:     []string{"--verbose"},
			wantPort: 9000,
			wantOut:  "from-file",
			wantRate: 0.06,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(ResetConfig)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			flags := testFlags()
			require.NoError(t, flags.Parse(tt.args))

			cfg, err := LoadConfig(path, flags)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPort, cfg.Server.Port)
			assert.Equal(t, tt.wantOut, cfg.Export.OutDir)
			assert.InDelta(t, tt.wantRate, cfg.Chart.AnnualReturn, 1e-9)
			assert.True(t, cfg.Server.Watch)
			assert.Equal(t, 2000000.0, cfg.Chart.TargetValue)
			assert.Equal(t, chart.DefaultCurrentValue, int(cfg.Chart.CurrentValue), "unset nested keys keep defaults")
			assert.Equal(t, path, GetConfigFileUsed())
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "bad yaml", body: "server: [", wantErr: "error reading config file"},
		{name: "bad date", body: "last_updated: 09/01/2025", wantErr: "must be YYYY-MM-DD"},
		{name: "bad port", body: "server:\n  port: 70000", wantErr: "out of range"},
		{name: "zero port", body: "server:\n  port: 0", wantErr: "server.port 0 out of range"},
		{name: "bad chart", body: "chart:\n  target_value: 100", wantErr: "must exceed current value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(ResetConfig)
			_, err := LoadConfig(writeConfig(t, tt.body), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Cleanup(ResetConfig)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestLastUpdatedTime(t *testing.T) {
	got, err := (&Config{LastUpdated: "2025-01-09"}).LastUpdatedTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC), got)

	got, err = (&Config{}).LastUpdatedTime()
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.port", envKey("FIREPAL_SERVER__PORT"))
	assert.Equal(t, "content_file", envKey("FIREPAL_CONTENT_FILE"))
	assert.Equal(t, "chart.padding.top", envKey("FIREPAL_CHART__PADDING__TOP"))
}

func TestLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "fallback logger")

	var buf bytes.Buffer
	logger := NewLogger(&buf, false)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))

	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	NewLogger(&buf, true).Debug("debug on")
	assert.Contains(t, buf.String(), "debug on")
}
