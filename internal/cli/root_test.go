package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bendaniels95/firelanding/internal/chart"
	"github.com/bendaniels95/firelanding/internal/cli/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		cfgFile = ""
		config.ResetConfig()
	})

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "firepal", cmd.Use)
	for _, name := range []string{"version", "serve", "export", "chart", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
	for _, flag := range []string{"config", "content-file", "last-updated", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCommand_Version(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "firepal v"+Version)
}

func TestRootCommand_Chart(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		wantOut []string
		wantErr string
	}{
		{
			name:    "defaults",
			args:    []string{"chart"},
			wantOut: []string{"$678,000", "$1,500,000", "8%", "10.32"},
		},
		{
			name:    "rate flag",
			args:    []string{"chart", "--rate", "0.07"},
			wantOut: []string{"7%"},
		},
		{
			name:    "target from env",
			args:    []string{"chart"},
			env:     map[string]string{"FIREPAL_CHART__TARGET_VALUE": "2000000"},
			wantOut: []string{"$2,000,000"},
		},
		{
			name:    "flag beats env",
			args:    []string{"chart", "--target", "1800000"},
			env:     map[string]string{"FIREPAL_CHART__TARGET_VALUE": "2000000"},
			wantOut: []string{"$1,800,000"},
		},
		{
			name:    "invalid rate",
			args:    []string{"chart", "--rate", "0"},
			wantErr: "invalid configuration",
		},
		{
			name:    "invalid date",
			args:    []string{"chart", "--last-updated", "9 Jan 2025"},
			wantErr: "YYYY-MM-DD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			out, err := execute(t, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRootCommand_ChartPoints(t *testing.T) {
	c, err := chart.Build(chart.DefaultParams())
	require.NoError(t, err)
	x := chart.Num(c.Projected[1].X)

	out, err := execute(t, "chart")
	require.NoError(t, err)
	assert.NotContains(t, out, x)

	out, err = execute(t, "chart", "--points")
	require.NoError(t, err)
	assert.Contains(t, out, x)
}

func TestRootCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chart:\n  current_value: 700000\n"), 0600))

	out, err := execute(t, "chart", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "$700,000")
	assert.Equal(t, path, config.GetConfigFileUsed())
}

func TestRootCommand_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")

	out, err := execute(t, "export", "--out", dir, "--minify=false", "--last-updated", "2025-01-09")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported")

	for _, name := range []string{"index.html", "robots.txt", "chart.svg", "privacy.md", "terms.md"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "January 9, 2025")
}

func TestRootCommand_Completion(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "firepal")

	_, err = execute(t, "completion", "tcsh")
	require.Error(t, err)
}
