package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bendaniels95/firelanding/internal/content"
	"github.com/bendaniels95/firelanding/internal/testutil"
	"github.com/bendaniels95/firelanding/internal/ui/features"
	"github.com/bendaniels95/firelanding/internal/ui/features/landing"
)

func testOptions(t *testing.T) landing.Options {
	t.Helper()
	fixture := features.SetupTestFixture(t)
	return landing.Options{
		Site:        fixture.Site,
		Chart:       fixture.Chart,
		LastUpdated: time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC),
		Now:         fixture.Now,
	}
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestBuild(t *testing.T) {
	out := t.TempDir()
	assets := fstest.MapFS{
		"site.css":    {Data: []byte(".a {\n  color: red;\n}\n")},
		"app.js":      {Data: []byte("function greet(name) {\n  return 'hi ' + name;\n}\n")},
		"favicon.svg": {Data: []byte("<svg></svg>")},
	}

	logger, logs := testutil.NewRecordingLogger(t)
	res, err := Build(context.Background(), Config{
		OutDir: out,
		Minify: true,
		Page:   testOptions(t),
		Assets: assets,
		Logger: logger,
	})
	require.NoError(t, err)
	assert.Equal(t, len(res.Files), logs.Count("wrote file"))

	assert.Equal(t, []string{
		"chart.svg",
		"index.html",
		"privacy.md",
		"robots.txt",
		"static/app.js",
		"static/favicon.svg",
		"static/site.css",
		"support.md",
		"terms.md",
	}, res.Files)

	index := readFile(t, out, "index.html")
	assert.True(t, strings.HasPrefix(index, "<!doctype html>"))
	assert.Contains(t, index, `href="static/site.css"`)
	assert.NotContains(t, index, "@get(", "exported page must not reach for the dev server")

	assert.Contains(t, readFile(t, out, "chart.svg"), `xmlns="http://www.w3.org/2000/svg"`)
	assert.Equal(t, "User-agent: *\nAllow: /\n", readFile(t, out, "robots.txt"))
	assert.Contains(t, readFile(t, out, "static/site.css"), ".a{color:red}")
	assert.NotContains(t, readFile(t, out, "static/app.js"), "\n  return")
	assert.Equal(t, "<svg></svg>", readFile(t, out, "static/favicon.svg"))

	terms := readFile(t, out, "terms.md")
	assert.Contains(t, terms, "# Terms of Service")
	assert.Contains(t, terms, "**Last updated:** January 9, 2025")
}

func TestBuild_NoMinify(t *testing.T) {
	out := t.TempDir()
	css := ".a {\n  color: red;\n}\n"
	_, err := Build(context.Background(), Config{
		OutDir: out,
		Page:   testOptions(t),
		Assets: fstest.MapFS{"site.css": {Data: []byte(css)}},
	})
	require.NoError(t, err)
	assert.Equal(t, css, readFile(t, out, "static/site.css"))
}

func TestBuild_EmbeddedAssets(t *testing.T) {
	out := t.TempDir()
	res, err := Build(context.Background(), Config{OutDir: out, Minify: true, Page: testOptions(t)})
	require.NoError(t, err)

	assert.Contains(t, res.Files, "static/site.css")
	assert.Contains(t, res.Files, "static/og-image.png")
	css := readFile(t, out, "static/site.css")
	assert.Contains(t, css, "768px")
	assert.Contains(t, css, ".mobile-menu-btn{")
	assert.NotContains(t, css, "\n  ")
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "no output dir", cfg: Config{Page: testOptions(t)}, wantErr: "output directory is required"},
		{name: "no content", cfg: Config{OutDir: t.TempDir()}, wantErr: "site content is required"},
		{
			name: "bad script",
			cfg: Config{
				OutDir: t.TempDir(),
				Minify: true,
				Page:   testOptions(t),
				Assets: fstest.MapFS{"app.js": {Data: []byte("function (")}},
			},
			wantErr: "esbuild errors",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(context.Background(), tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMarkdown(t *testing.T) {
	doc := content.Document{
		ID:    "support",
		Title: "Support",
		Blocks: []content.Block{{
			Heading:    "Contact",
			Paragraphs: []string{"Email **support** at [help](mailto:help@example.com)."},
			Bullets:    []string{"Fast", "Friendly"},
		}},
	}
	md, err := Markdown(context.Background(), doc, time.Time{})
	require.NoError(t, err)

	assert.Contains(t, md, "# Support")
	assert.Contains(t, md, "## Contact")
	assert.Contains(t, md, "Email **support** at [help](mailto:help@example.com).")
	assert.Contains(t, md, "- Fast")
	assert.NotContains(t, md, "Last updated")
	assert.True(t, strings.HasSuffix(md, "\n"))
}

func TestMinify(t *testing.T) {
	out, err := Minify("x.js", []byte("const answer = 40 + 2;\nconsole.log(answer);\n"), api.LoaderJS)
	require.NoError(t, err)
	assert.Contains(t, string(out), "42")
	assert.NotContains(t, string(out), "40 + 2")

	_, err = Minify("x.js", []byte("function ("), api.LoaderJS)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x.js:1:")
}
