package landing

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/bendaniels95/firelanding/internal/chart"
	"github.com/bendaniels95/firelanding/internal/content"
	"github.com/bendaniels95/firelanding/internal/navigation"
	"github.com/bendaniels95/firelanding/internal/ui/components"
	"github.com/bendaniels95/firelanding/internal/ui/resources"
)

// Options is the immutable input shared by every request.
type Options struct {
	Site  *content.Site
	Chart *chart.Chart

	// LastUpdated dates the legal documents. Zero means the request time.
	LastUpdated time.Time
	// Now defaults to time.Now.
	Now func() time.Time

	IsDev bool
}

// Validate reports missing inputs.
func (o Options) Validate() error {
	var errs []error
	if o.Site == nil {
		errs = append(errs, errors.New("landing: site content is required"))
	}
	if o.Chart == nil {
		errs = append(errs, errors.New("landing: chart is required"))
	}
	return errors.Join(errs...)
}

// PageData assembles the render input for the given navigation state.
func (o Options) PageData(state navigation.State) components.PageData {
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	return components.PageData{
		Site:        o.Site,
		Chart:       o.Chart,
		State:       state,
		Now:         now(),
		LastUpdated: o.LastUpdated,
		StaticPath:  resources.StaticPath,
		IsDev:       o.IsDev,
	}
}

// Handlers provides HTTP handlers for the landing page.
type Handlers struct {
	opts   Options
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(opts Options, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{opts: opts, logger: logger}
}

// Page renders the landing page. ?section=<id> renders it with that section
// active and scrolls there on load.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	state := navigation.NewState()
	if raw := r.URL.Query().Get("section"); raw != "" {
		section, err := navigation.ParseSection(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		state.Activate(section)
	}

	h.render(w, r, "text/html; charset=utf-8", components.LandingPage(h.opts.PageData(state)))
}

// Health answers liveness checks.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// ChartSVG serves the hero chart as a standalone image.
func (h *Handlers) ChartSVG(w http.ResponseWriter, r *http.Request) {
	c := components.ChartSVG(h.opts.Chart, h.opts.Site.Hero.HistoryLabel, true)
	h.render(w, r, "image/svg+xml", c)
}

// Robots serves robots.txt in line with the robots meta tag.
func (h *Handlers) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(h.opts.Site.Meta.RobotsTxt()))
}

// render buffers c so a failed render still gets a clean 500.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, contentType string, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		h.logger.Error("render failed", "path", r.URL.Path, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = buf.WriteTo(w)
}
