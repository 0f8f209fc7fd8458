// Package ui serves the landing page over HTTP.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/bendaniels95/firelanding/internal/ui/features/landing"
	"github.com/bendaniels95/firelanding/internal/ui/notifier"
	"github.com/bendaniels95/firelanding/internal/ui/router"
)

// watchedExts are the file types whose edits trigger a rebuild.
var watchedExts = map[string]bool{
	".css":  true,
	".js":   true,
	".svg":  true,
	".png":  true,
	".yaml": true,
	".yml":  true,
}

const debounce = 100 * time.Millisecond

// Config holds configuration for the site server.
type Config struct {
	// Load produces the page inputs. It runs at startup and again after every
	// watched change, so edited content shows up without a restart.
	Load func() (landing.Options, error)

	Port int
	// Dev serves the hot reload stream. Watch implies Dev.
	Dev   bool
	Watch bool
	// WatchPaths are files or directories to watch.
	WatchPaths []string

	Logger *slog.Logger
}

// Server is the site server.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	notifier *notifier.Notifier
	handler  atomic.Pointer[http.Handler]
}

// NewServer creates a new server and builds its routes.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Load == nil {
		return nil, errors.New("server config: Load is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Watch {
		cfg.Dev = true
	}

	s := &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		notifier: notifier.New(),
	}
	if err := s.rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

// rebuild reloads the page inputs and swaps in a fresh router. Requests in
// flight finish on the old one.
func (s *Server) rebuild() error {
	opts, err := s.cfg.Load()
	if err != nil {
		return fmt.Errorf("failed to load site: %w", err)
	}
	opts.IsDev = s.cfg.Dev

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)
	if err := router.SetupRoutes(r, opts, s.notifier, s.logger); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	var h http.Handler = r
	s.handler.Store(&h)
	return nil
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		(*s.handler.Load()).ServeHTTP(w, r)
	})
}

// IsDev reports whether the hot reload stream is served.
func (s *Server) IsDev() bool {
	return s.cfg.Dev
}

// Notifier returns the server's notifier for reload events.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	s.logger.Info("starting site server", "addr", fmt.Sprintf("http://localhost:%d", port), "dev", s.cfg.Dev)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.Watch {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down site server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// watchFiles rebuilds and reloads open pages when a watched file changes.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	set := newWatchSet()
	for _, p := range s.cfg.WatchPaths {
		if err := set.add(watcher, p); err != nil {
			s.logger.Error("failed to watch path", "path", p, "error", err)
		}
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !set.relevant(event) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(debounce, func() {
				s.logger.Debug("file changed, rebuilding", "file", name)
				if err := s.rebuild(); err != nil {
					// Keep serving the last good build.
					s.logger.Error("rebuild failed", "file", name, "error", err)
					return
				}
				s.notifier.Broadcast(notifier.Change{Path: name})
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// watchSet tracks what was asked for. Directories are watched recursively
// and filtered by extension. Single files are watched through their parent
// directory, so editors that replace the file on save are still seen, and
// only the named files count.
type watchSet struct {
	dirs     map[string]bool
	fileDirs map[string]bool
	files    map[string]bool
}

func newWatchSet() *watchSet {
	return &watchSet{
		dirs:     make(map[string]bool),
		fileDirs: make(map[string]bool),
		files:    make(map[string]bool),
	}
}

func (w *watchSet) add(watcher *fsnotify.Watcher, p string) error {
	info, err := os.Stat(p)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		name := filepath.Clean(p)
		dir := filepath.Dir(name)
		w.files[name] = true
		if !w.fileDirs[dir] {
			w.fileDirs[dir] = true
			return watcher.Add(dir)
		}
		return nil
	}
	return filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			w.dirs[filepath.Clean(path)] = true
			return watcher.Add(path)
		}
		return nil
	})
}

func (w *watchSet) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	if w.files[name] {
		return true
	}
	return w.dirs[filepath.Dir(name)] && watchedExts[strings.ToLower(filepath.Ext(name))]
}
