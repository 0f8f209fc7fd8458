package landing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-h/templ"

	"github.com/bendaniels95/firelanding/internal/navigation"
	"github.com/bendaniels95/firelanding/internal/testutil"
	"github.com/bendaniels95/firelanding/internal/ui/features"
)

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	opts := Options{
		Site:        fixture.Site,
		Chart:       fixture.Chart,
		LastUpdated: time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC),
		Now:         fixture.Now,
	}
	return NewHandlers(opts, fixture.Logger), fixture
}

func setupTestRouter(t *testing.T) http.Handler {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	r := chi.NewRouter()
	require.NoError(t, SetupRoutes(r, Options{Site: fixture.Site, Chart: fixture.Chart, Now: fixture.Now}, fixture.Logger))
	return r
}

func get(t *testing.T, h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPage(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "renders every section",
			target:     "/",
			wantStatus: http.StatusOK,
			wantBody: []string{
				"<!doctype html>",
				"<title>FirePal - Calculate Your Path to Financial Freedom</title>",
				`class="desktop-nav"`,
				`class="mobile-menu-btn"`,
				`data-show="$menuOpen"`,
				`id="features"`,
				`id="how-it-works"`,
				`id="pricing"`,
				`id="privacy"`,
				`id="terms"`,
				`id="support"`,
				"$678,000",
				"$1.5M",
				"December 2035",
				"Last updated:</strong> January 9, 2025",
				"© 2025 FirePal. All rights reserved.",
			},
		},
		{
			name:       "deep link activates section",
			target:     "/?section=pricing",
			wantStatus: http.StatusOK,
			wantBody: []string{
				templ.EscapeString(navigation.State{Active: navigation.Pricing}.Signals()),
				`data-init="` + templ.EscapeString(navigation.ScrollExpr(navigation.Pricing)) + `"`,
				`class="nav-link active" data-section="pricing"`,
			},
		},
		{
			name:       "section id is case insensitive",
			target:     "/?section=How-It-Works",
			wantStatus: http.StatusOK,
			wantBody:   []string{`class="nav-link active" data-section="how-it-works"`},
		},
		{
			name:       "unknown section",
			target:     "/?section=blog",
			wantStatus: http.StatusBadRequest,
			wantBody:   []string{`unknown section "blog"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestHandlers(t)
			rec := get(t, h.Page, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := rec.Body.String()
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want, "response should contain %q", want)
			}
		})
	}
}

func TestPage_HomeHasNoDeepLinkScroll(t *testing.T) {
	h, _ := setupTestHandlers(t)
	rec := get(t, h.Page, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.NotContains(t, rec.Body.String(), "<body data-signals=\""+templ.EscapeString(navigation.NewState().Signals())+"\" data-init")
	assert.NotContains(t, rec.Body.String(), "@get('/reload')", "reload stream is dev only")
}

// Every nav item must point at an element the page actually contains.
func TestPage_NavTargetsExist(t *testing.T) {
	h, _ := setupTestHandlers(t)
	body := get(t, h.Page, "/").Body.String()

	for _, item := range navigation.Items {
		t.Run(item.Label, func(t *testing.T) {
			assert.Contains(t, body, `id="`+item.Section.ElementID()+`"`)
			assert.Contains(t, body, templ.EscapeString(navigation.ActivateExpr(item.Section)))
		})
	}
}

func TestPage_NavItemCounts(t *testing.T) {
	h, _ := setupTestHandlers(t)
	body := get(t, h.Page, "/").Body.String()

	count := func(class string) int {
		return len(regexp.MustCompile(`class="` + class + `( active)?"`).FindAllString(body, -1))
	}
	assert.Equal(t, 3, count("nav-link"))
	assert.Equal(t, 6, count("mobile-link"))
	assert.Equal(t, 6, count("footer-link"))
}

func TestPage_Dev(t *testing.T) {
	h, _ := setupTestHandlers(t)
	h.opts.IsDev = true

	body := get(t, h.Page, "/").Body.String()
	assert.Contains(t, body, `data-init="@get('/reload')"`)
}

func TestHealth(t *testing.T) {
	h, _ := setupTestHandlers(t)
	rec := get(t, h.Health, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestChartSVG(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	rec := get(t, h.ChartSVG, "/chart.svg")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.True(t, strings.HasSuffix(body, "</svg>"))
	assert.Contains(t, body, fixture.Chart.HistoricalPath())
	assert.Contains(t, body, fixture.Chart.ProjectionPath())
	assert.Contains(t, body, "~10 years")
}

func TestRobots(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	rec := get(t, h.Robots, "/robots.txt")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, fixture.Site.Meta.RobotsTxt(), rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Allow: /")
}

func TestSetupRoutes(t *testing.T) {
	r := setupTestRouter(t)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/", http.StatusOK},
		{"/healthz", http.StatusOK},
		{"/chart.svg", http.StatusOK},
		{"/robots.txt", http.StatusOK},
		{"/missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestSetupRoutes_RequiresInputs(t *testing.T) {
	err := SetupRoutes(chi.NewRouter(), Options{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "site content is required")
	assert.Contains(t, err.Error(), "chart is required")
}

func TestRender_Error(t *testing.T) {
	h, _ := setupTestHandlers(t)
	logger, logs := testutil.NewRecordingLogger(t)
	h.logger = logger

	failing := templ.ComponentFunc(func(context.Context, io.Writer) error {
		return errors.New("boom")
	})
	rec := httptest.NewRecorder()
	h.render(rec, httptest.NewRequest(http.MethodGet, "/chart.svg", nil), "image/svg+xml", failing)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEqual(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, []string{"render failed"}, logs.Messages(slog.LevelError))
	path, ok := logs.Attr("render failed", "path")
	require.True(t, ok)
	assert.Equal(t, "/chart.svg", path.String())
}
