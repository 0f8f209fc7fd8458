// Package components renders the landing page as templ components.
package components

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate

import (
	"fmt"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/bendaniels95/firelanding/internal/chart"
	"github.com/bendaniels95/firelanding/internal/content"
	"github.com/bendaniels95/firelanding/internal/navigation"
)

// Palette shared by the SVG chart and inline styles. The stylesheet defines
// the same values as CSS custom properties.
const (
	ColorBg        = "#09090B"
	ColorBgAlt     = "#0F0F12"
	ColorCard      = "#18181B"
	ColorBorder    = "#27272A"
	ColorText      = "#FAFAFA"
	ColorTextMuted = "#A1A1AA"
	ColorTextDim   = "#71717A"
	ColorAccent    = "#F97316"
	ColorSuccess   = "#22C55E"
	ColorGold      = "#FBBF24"
)

// DatastarScript is the client runtime that evaluates the data-* attributes.
// layout.templ carries the same URL.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// inView is the client handler that starts an element's entrance animation.
const inView = "el.classList.add('in-view')"

// PageData is everything the page render needs.
type PageData struct {
	Site  *content.Site
	Chart *chart.Chart
	State navigation.State

	// Now stamps the copyright year and anchors the FIRE date.
	Now time.Time
	// LastUpdated is shown on dated legal documents. Zero means Now.
	LastUpdated time.Time

	// StaticPath maps an asset name to its URL.
	StaticPath func(string) string

	IsDev bool
}

// DocumentDate is the "Last updated" date shown on dated documents.
func (d PageData) DocumentDate() time.Time {
	if d.LastUpdated.IsZero() {
		return d.Now
	}
	return d.LastUpdated
}

func (d PageData) static(name string) string {
	if d.StaticPath == nil {
		return "/static/" + name
	}
	return d.StaticPath(name)
}

var num = chart.Num

// reveal delays an element's entrance animation.
func reveal(delay float64) templ.Attributes {
	return templ.Attributes{"style": fmt.Sprintf("--delay: %gs", delay)}
}

func stagger(i int) float64 {
	return float64(i) * 0.1
}

func glowStyle(size int, color, position string, delay float64) templ.Attributes {
	return templ.Attributes{"style": fmt.Sprintf(
		"width: %dpx; height: %dpx; background: radial-gradient(circle, %s20 0%%, transparent 70%%); animation-delay: %gs; %s",
		size, size, color, delay, position)}
}

func headerStyle() templ.Attributes {
	return templ.Attributes{"style": "background: rgba(9,9,11," + num(navigation.HeaderOpacity(0)) + ")"}
}

func menuIcon(s navigation.State) string {
	if s.MenuOpen {
		return "✕"
	}
	return "☰"
}

func copyright(d PageData) string {
	return "© " + strconv.Itoa(d.Now.Year()) + " " + d.Site.Brand + ". All rights reserved."
}

func viewBox(p chart.Params) string {
	return "0 0 " + num(p.Width) + " " + num(p.Height)
}

func projectedLabel(p chart.Params) string {
	return "Projected (" + chart.FormatRate(p.AnnualReturn) + "/yr)"
}

func markerDelay(delay string) templ.Attributes {
	return templ.Attributes{"style": "--delay: " + delay}
}
