package components

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bendaniels95/firelanding/internal/chart"
	"github.com/bendaniels95/firelanding/internal/content"
	"github.com/bendaniels95/firelanding/internal/navigation"
)

var testNow = time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)

func testPageData(t *testing.T) PageData {
	t.Helper()
	site, err := content.Load()
	require.NoError(t, err)
	c, err := chart.Build(chart.DefaultParams())
	require.NoError(t, err)
	return PageData{Site: site, Chart: c, State: navigation.NewState(), Now: testNow}
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestLandingPage(t *testing.T) {
	d := testPageData(t)
	out := render(t, LandingPage(d))

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.True(t, strings.HasSuffix(out, "</body></html>"))

	wantInOrder := []string{
		`<header class="site-header"`,
		`<section class="hero">`,
		`id="features"`,
		`id="how-it-works"`,
		`id="pricing"`,
		`id="privacy"`,
		`id="terms"`,
		`id="support"`,
		`<footer class="site-footer">`,
	}
	last := -1
	for _, want := range wantInOrder {
		i := strings.Index(out, want)
		require.NotEqual(t, -1, i, "missing %q", want)
		assert.Greater(t, i, last, "%q out of order", want)
		last = i
	}
}

func TestLayout_Head(t *testing.T) {
	d := testPageData(t)
	d.StaticPath = func(name string) string { return "/assets/" + name }
	out := render(t, Layout(d, templ.NopComponent))

	for _, want := range []string{
		`<meta name="robots" content="index, follow">`,
		`<meta name="theme-color" content="#09090B">`,
		`<meta property="og:image" content="/static/og-image.png">`,
		`<meta property="og:image:width" content="1200">`,
		`<link rel="stylesheet" href="/assets/site.css">`,
		`<link rel="icon" href="/assets/favicon.svg" type="image/svg+xml">`,
		`src="` + DatastarScript + `"`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "@get(")
}

func TestLayout_DefaultStaticPath(t *testing.T) {
	out := render(t, Layout(testPageData(t), templ.NopComponent))
	assert.Contains(t, out, `href="/static/site.css"`)
}

func TestHeader_MenuState(t *testing.T) {
	tests := []struct {
		name     string
		state    navigation.State
		wantIcon string
		hidden   bool
	}{
		{name: "closed", state: navigation.State{}, wantIcon: "☰</button>", hidden: true},
		{name: "open", state: navigation.State{MenuOpen: true}, wantIcon: "✕</button>", hidden: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testPageData(t)
			d.State = tt.state
			out := render(t, Header(d))

			assert.Contains(t, out, tt.wantIcon)
			menu := `<div class="mobile-menu" data-show="$menuOpen" style="display: none">`
			if tt.hidden {
				assert.Contains(t, out, menu)
			} else {
				assert.NotContains(t, out, menu)
				assert.Contains(t, out, `<div class="mobile-menu" data-show="$menuOpen">`)
			}
		})
	}
}

func TestHeader_ActiveItem(t *testing.T) {
	d := testPageData(t)
	d.State.Activate(navigation.Terms)
	out := render(t, Header(d))

	assert.Contains(t, out, `class="mobile-link active" data-section="terms"`)
	assert.Contains(t, out, `class="mobile-link" data-section="privacy"`)
	assert.Contains(t, out, `data-class:active="`+templ.EscapeString(navigation.ActiveExpr(navigation.Terms))+`"`)
}

func TestHeroChart(t *testing.T) {
	d := testPageData(t)
	out := render(t, HeroChart(d.Chart, "12mo ago", testNow))

	for _, want := range []string{
		"$678,000",
		"$1.5M",
		"Projected (8%/yr)",
		"December 2035",
		`class="hero-chart-svg"`,
		"12mo ago",
		"~10 years",
		"🔥 FIRE",
		d.Chart.HistoricalArea(),
	} {
		assert.Contains(t, out, want)
	}
	for _, label := range d.Chart.YLabels {
		assert.Contains(t, out, ">"+label.Text+"</text>")
	}
	assert.NotContains(t, out, "xmlns", "inline SVG needs no namespace")
}

func TestHeroChart_Rate(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{rate: 0.07, want: "Projected (7%/yr)"},
		{rate: 0.035, want: "Projected (3.5%/yr)"},
		{rate: 0.1, want: "Projected (10%/yr)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			p := chart.DefaultParams()
			p.AnnualReturn = tt.rate
			c, err := chart.Build(p)
			require.NoError(t, err)

			out := render(t, HeroChart(c, "12mo ago", testNow))
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, "00000")
		})
	}
}

func TestChartSVG_Standalone(t *testing.T) {
	c, err := chart.Build(chart.DefaultParams())
	require.NoError(t, err)
	out := render(t, ChartSVG(c, "12mo ago", true))

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="600" height="280" viewBox="0 0 600 280">`))
	assert.Contains(t, out, `<rect width="100%" height="100%" fill="`+ColorCard+`">`)
	assert.NotContains(t, out, "hero-chart-svg")
	assert.Equal(t, 2, strings.Count(out, `class="chart-marker"`))
}

func TestLegalSection(t *testing.T) {
	doc := content.Document{
		ID:    "terms",
		Title: "Terms & Conditions",
		Dated: true,
		Blocks: []content.Block{
			{
				Heading:    "Refunds",
				Level:      3,
				Paragraphs: []string{"Ask **Apple** via [the form](https://example.com/r) or [mail](mailto:a@b.c)."},
				Steps:      []string{"Open settings", "Tap <Cancel>"},
			},
		},
	}
	out := render(t, LegalSection(doc, time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC), true))

	for _, want := range []string{
		`<section id="terms" class="section legal alt">`,
		"Terms &amp; Conditions",
		"<strong>Last updated:</strong> January 9, 2025",
		"<h3>Refunds</h3>",
		"Ask <strong>Apple</strong> via ",
		`<a href="https://example.com/r" target="_blank" rel="noopener noreferrer">the form</a>`,
		`<a href="mailto:a@b.c">mail</a>`,
		"<ol><li>Open settings</li><li>Tap &lt;Cancel&gt;</li></ol>",
	} {
		assert.Contains(t, out, want)
	}
}

func TestLegalSection_Links(t *testing.T) {
	tests := []struct {
		name string
		para string
		want string
	}{
		{
			name: "script scheme",
			para: "Mail [us](javascript:alert(1))",
			want: `<a href="about:invalid#TemplFailedSanitizationURL">us</a>`,
		},
		{
			name: "parentheses in url",
			para: "See [rules](https://example.com/wiki/Rule_(law)) first",
			want: `<a href="https://example.com/wiki/Rule_(law)" target="_blank" rel="noopener noreferrer">rules</a> first`,
		},
		{
			name: "unclosed bold",
			para: "Keep **this as text",
			want: "<p>Keep **this as text</p>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := content.Document{ID: "privacy", Blocks: []content.Block{{Paragraphs: []string{tt.para}}}}
			out := render(t, LegalSection(doc, testNow, false))
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, "javascript:")
		})
	}
}

func TestLegalSection_Undated(t *testing.T) {
	out := render(t, LegalSection(content.Document{ID: "support", Title: "Support"}, testNow, false))
	assert.NotContains(t, out, "Last updated")
	assert.Contains(t, out, `class="section legal"`)
}

func TestPricingCard(t *testing.T) {
	plan := content.Plan{Name: "Pro", Price: "$4.99", Period: "/month", Popular: true, Badge: "BEST VALUE", CTA: "Get Pro", Features: []string{"Everything"}}
	out := render(t, PricingCard(plan, "https://apps.apple.com", 0.1))

	assert.Contains(t, out, `class="pricing-card popular reveal"`)
	assert.Contains(t, out, `<div class="pricing-badge">BEST VALUE</div>`)
	assert.Contains(t, out, `href="https://apps.apple.com"`)

	plan.Popular = false
	out = render(t, PricingCard(plan, "https://apps.apple.com", 0))
	assert.NotContains(t, out, "pricing-badge")
}

func TestFooter(t *testing.T) {
	out := render(t, Footer(testPageData(t)))
	assert.Contains(t, out, "© 2025 FirePal. All rights reserved.")
	assert.Equal(t, len(navigation.Items), strings.Count(out, `class="footer-link`))
}

func TestReveal(t *testing.T) {
	assert.Equal(t, templ.Attributes{"style": "--delay: 0s"}, reveal(0))
	assert.Equal(t, templ.Attributes{"style": "--delay: 0.25s"}, reveal(0.25))
	assert.Equal(t, templ.Attributes{"style": "--delay: 0.3s"}, reveal(stagger(3)))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRender_StopsOnWriteError(t *testing.T) {
	err := LandingPage(testPageData(t)).Render(context.Background(), failWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
