package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bendaniels95/firelanding/internal/ui/features"
	landingFeature "github.com/bendaniels95/firelanding/internal/ui/features/landing"
	"github.com/bendaniels95/firelanding/internal/ui/notifier"
)

func setupTestRouter(t *testing.T, isDev bool) (chi.Router, *notifier.Notifier) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	notify := notifier.New()
	r := chi.NewRouter()
	opts := landingFeature.Options{
		Site:  fixture.Site,
		Chart: fixture.Chart,
		Now:   fixture.Now,
		IsDev: isDev,
	}
	require.NoError(t, SetupRoutes(r, opts, notify, fixture.Logger))
	return r, notify
}

func TestSetupRoutes(t *testing.T) {
	tests := []struct {
		name       string
		isDev      bool
		path       string
		wantStatus int
	}{
		{name: "page", path: "/", wantStatus: http.StatusOK},
		{name: "static", path: "/static/site.css", wantStatus: http.StatusOK},
		{name: "robots", path: "/robots.txt", wantStatus: http.StatusOK},
		{name: "hotreload hidden in prod", path: "/hotreload", wantStatus: http.StatusNotFound},
		{name: "hotreload in dev", isDev: true, path: "/hotreload", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupTestRouter(t, tt.isDev)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestReload_ExecutesScriptOnChange(t *testing.T) {
	r, notify := setupTestRouter(t, true)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/reload", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		r.ServeHTTP(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool { return notify.Len() == 1 }, time.Second, 5*time.Millisecond)

	hot := httptest.NewRecorder()
	r.ServeHTTP(hot, httptest.NewRequest(http.MethodGet, "/hotreload", nil))
	assert.Equal(t, "OK", hot.Body.String())

	<-done
	assert.Contains(t, rec.Body.String(), "window.location.reload()")
	assert.Equal(t, 0, notify.Len())
}

func TestReload_ClosesWithRequest(t *testing.T) {
	r, notify := setupTestRouter(t, true)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reload", nil).WithContext(ctx))

	assert.NotContains(t, rec.Body.String(), "window.location.reload()")
	assert.Equal(t, 0, notify.Len())
}
