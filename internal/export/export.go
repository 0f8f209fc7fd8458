// Package export writes the landing page as a static site that any file
// host can serve: index.html, the standalone chart, robots.txt, the static
// assets and Markdown copies of the legal documents.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"

	"github.com/bendaniels95/firelanding/internal/navigation"
	"github.com/bendaniels95/firelanding/internal/ui/components"
	"github.com/bendaniels95/firelanding/internal/ui/features/landing"
	"github.com/bendaniels95/firelanding/internal/ui/resources"
)

// staticDir is where assets land inside the output directory.
const staticDir = "static"

// Config controls an export.
type Config struct {
	OutDir string
	Minify bool
	Page   landing.Options

	// Assets defaults to the embedded static directory.
	Assets fs.FS
	Logger *slog.Logger
}

// Result lists the files written, relative to OutDir, sorted.
type Result struct {
	Files []string
}

// Build renders the site into cfg.OutDir.
func Build(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.OutDir == "" {
		return nil, errors.New("export: output directory is required")
	}
	if err := cfg.Page.Validate(); err != nil {
		return nil, err
	}
	if cfg.Assets == nil {
		cfg.Assets = resources.FS()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	cfg.Page.IsDev = false

	if err := os.MkdirAll(filepath.Join(cfg.OutDir, staticDir), 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	w := &writer{root: cfg.OutDir, logger: cfg.Logger}
	eg, egctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return w.pages(egctx, cfg.Page) })
	eg.Go(func() error { return w.documents(egctx, cfg.Page) })
	eg.Go(func() error { return w.assets(egctx, cfg.Assets, cfg.Minify) })

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(w.files)
	cfg.Logger.Info("site exported", "dir", cfg.OutDir, "files", len(w.files))
	return &Result{Files: w.files}, nil
}

// writer records every file it writes. Safe for concurrent use.
type writer struct {
	root   string
	logger *slog.Logger

	mu    sync.Mutex
	files []string
}

func (w *writer) write(name string, data []byte) error {
	full := filepath.Join(w.root, filepath.FromSlash(name))
	if err := os.WriteFile(full, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	w.logger.Debug("wrote file", "file", name, "bytes", len(data))

	w.mu.Lock()
	w.files = append(w.files, name)
	w.mu.Unlock()
	return nil
}

func (w *writer) render(ctx context.Context, name string, c templ.Component) error {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return w.write(name, buf.Bytes())
}

// pages writes index.html, chart.svg and robots.txt.
func (w *writer) pages(ctx context.Context, opts landing.Options) error {
	data := opts.PageData(navigation.NewState())
	// Relative asset URLs keep the export portable across base paths.
	data.StaticPath = func(name string) string { return path.Join(staticDir, name) }

	if err := w.render(ctx, "index.html", components.LandingPage(data)); err != nil {
		return err
	}
	if err := w.render(ctx, "chart.svg", components.ChartSVG(opts.Chart, opts.Site.Hero.HistoryLabel, true)); err != nil {
		return err
	}
	return w.write("robots.txt", []byte(opts.Site.Meta.RobotsTxt()))
}
