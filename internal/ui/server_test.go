package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bendaniels95/firelanding/internal/chart"
	"github.com/bendaniels95/firelanding/internal/content"
	"github.com/bendaniels95/firelanding/internal/testutil"
	"github.com/bendaniels95/firelanding/internal/ui/features/landing"
)

// writeContent writes the embedded copy with brand swapped in.
func writeContent(t *testing.T, path, brand string) {
	t.Helper()
	src, err := os.ReadFile(filepath.Join("..", "content", "content.yaml"))
	require.NoError(t, err)
	data := strings.Replace(string(src), "brand: FirePal", "brand: "+brand, 1)
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))
}

func loadFrom(path string) func() (landing.Options, error) {
	return func() (landing.Options, error) {
		site, err := content.LoadFile(path)
		if err != nil {
			return landing.Options{}, err
		}
		c, err := chart.Build(chart.DefaultParams())
		if err != nil {
			return landing.Options{}, err
		}
		return landing.Options{Site: site, Chart: c}, nil
	}
}

func TestNewServer_RequiresLoad(t *testing.T) {
	_, err := NewServer(Config{})
	require.Error(t, err)
}

func TestNewServer_LoadError(t *testing.T) {
	_, err := NewServer(Config{Load: loadFrom(filepath.Join(t.TempDir(), "missing.yaml"))})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load site")
}

func TestServer_Handler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	writeContent(t, path, "FirePal")

	s, err := NewServer(Config{Load: loadFrom(path), Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)
	assert.False(t, s.IsDev())

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/healthz", http.StatusOK, "ok"},
		{"/", http.StatusOK, "<!doctype html>"},
		{"/static/site.css", http.StatusOK, ".desktop-nav"},
		{"/reload", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestServer_WatchImpliesDev(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	writeContent(t, path, "FirePal")

	s, err := NewServer(Config{Load: loadFrom(path), Watch: true})
	require.NoError(t, err)
	assert.True(t, s.IsDev())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hotreload", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_ServeShutsDown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	writeContent(t, path, "FirePal")

	s, err := NewServer(Config{Load: loadFrom(path), Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServer_WatchRebuildsAndNotifies(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	writeContent(t, path, "FirePal")

	s, err := NewServer(Config{
		Load:       loadFrom(path),
		Watch:      true,
		WatchPaths: []string{path},
		Logger:     testutil.NewTestLogger(t),
	})
	require.NoError(t, err)

	changes := s.Notifier().Subscribe()
	defer s.Notifier().Unsubscribe(changes)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Serve(ctx) }()

	// The watcher starts asynchronously; keep editing until it reports.
	require.Eventually(t, func() bool {
		writeContent(t, path, "BurnPal")
		select {
		case c := <-changes:
			return filepath.Clean(c.Path) == filepath.Clean(path)
		case <-time.After(300 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), "BurnPal")
}

func TestWatchSet_Relevant(t *testing.T) {
	set := newWatchSet()
	set.dirs["static"] = true
	set.fileDirs["conf"] = true
	set.files[filepath.Join("conf", "content.yaml")] = true

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"stylesheet write", fsnotify.Event{Name: "static/site.css", Op: fsnotify.Write}, true},
		{"uppercase ext", fsnotify.Event{Name: "static/LOGO.PNG", Op: fsnotify.Create}, true},
		{"editor swap file", fsnotify.Event{Name: "static/site.css.swp", Op: fsnotify.Write}, false},
		{"chmod only", fsnotify.Event{Name: "static/site.css", Op: fsnotify.Chmod}, false},
		{"watched file", fsnotify.Event{Name: "conf/content.yaml", Op: fsnotify.Write}, true},
		{"sibling of watched file", fsnotify.Event{Name: "conf/other.yaml", Op: fsnotify.Write}, false},
		{"unwatched dir", fsnotify.Event{Name: "tmp/site.css", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, set.relevant(tt.event))
		})
	}
}
