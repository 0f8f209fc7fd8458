package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	site, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "FirePal", site.Brand)
	assert.Equal(t, "FirePal - Calculate Your Path to Financial Freedom", site.Meta.Title)
	assert.Equal(t, "index, follow", site.Meta.Robots())
	assert.Equal(t, "#09090B", site.Meta.ThemeColor)
	assert.Len(t, site.Features.Items, 6)
	assert.Len(t, site.Steps.Items, 4)

	require.Len(t, site.Pricing.Plans, 2)
	assert.False(t, site.Pricing.Plans[0].Popular)
	assert.True(t, site.Pricing.Plans[1].Popular)
	assert.Equal(t, "$4.99", site.Pricing.Plans[1].Price)
	assert.Equal(t, "/month", site.Pricing.Plans[1].Period)
}

func TestMeta_RobotsTxt(t *testing.T) {
	assert.Equal(t, "User-agent: *\nAllow: /\n", Meta{Index: true}.RobotsTxt())
	assert.Equal(t, "User-agent: *\nDisallow: /\n", Meta{Follow: true}.RobotsTxt())
}

func TestLoad_Documents(t *testing.T) {
	site := MustLoad()

	for _, id := range []string{"privacy", "terms", "support"} {
		doc, ok := site.Document(id)
		require.True(t, ok, "document %q", id)
		assert.NotEmpty(t, doc.Title)
		assert.NotEmpty(t, doc.Blocks)
	}

	support, _ := site.Document("support")
	require.NotNil(t, support.Callout)
	assert.False(t, support.Dated)
	assert.Equal(t, 3, support.Blocks[1].HeadingLevel())
	assert.Len(t, support.Blocks[2].Steps, 4)

	_, ok := site.Document("blog")
	assert.False(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		errMsg string
	}{
		{
			name:   "malformed yaml",
			yaml:   "brand: [",
			errMsg: "failed to decode content",
		},
		{
			name:   "missing documents",
			yaml:   "brand: X\nmeta: {title: T}\nlinks: {app_store: u}\nfeatures: {items: [{title: a}]}\nsteps: {items: [{title: b}]}\n",
			errMsg: `missing document for section "privacy"`,
		},
		{
			name:   "unknown document id",
			yaml:   "brand: X\nmeta: {title: T}\nlinks: {app_store: u}\nfeatures: {items: [{title: a}]}\nsteps: {items: [{title: b}]}\ndocuments: [{id: blog}]\n",
			errMsg: `unknown section "blog"`,
		},
		{
			name:   "plan without features",
			yaml:   "brand: X\npricing: {plans: [{name: Free}]}\n",
			errMsg: `pricing plan "Free" has no features`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("empty path uses embedded copy", func(t *testing.T) {
		site, err := LoadFile("")
		require.NoError(t, err)
		assert.Equal(t, "FirePal", site.Brand)
	})

	t.Run("override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "content.yaml")
		data := []byte(strings.Replace(string(embedded), "brand: FirePal", "brand: EmberPal", 1))
		require.NoError(t, os.WriteFile(path, data, 0o600))

		site, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "EmberPal", site.Brand)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read content file")
	})
}

func TestInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Span
	}{
		{
			name: "plain",
			in:   "Tap Subscriptions",
			want: []Span{{Text: "Tap Subscriptions"}},
		},
		{
			name: "bold lead",
			in:   "**Usage Data:** We collect analytics.",
			want: []Span{{Text: "Usage Data:", Bold: true}, {Text: " We collect analytics."}},
		},
		{
			name: "mailto link",
			in:   "contact us at [legal@firepal.app](mailto:legal@firepal.app)",
			want: []Span{{Text: "contact us at "}, {Text: "legal@firepal.app", Href: "mailto:legal@firepal.app"}},
		},
		{
			name: "unbalanced markers stay literal",
			in:   "5 ** 2 [x]",
			want: []Span{{Text: "5 ** 2 [x]"}},
		},
		{
			name: "unclosed bold",
			in:   "Keep **this as text",
			want: []Span{{Text: "Keep **this as text"}},
		},
		{
			name: "parentheses in url",
			in:   "See [rules](https://example.com/wiki/Rule_(law)) first.",
			want: []Span{{Text: "See "}, {Text: "rules", Href: "https://example.com/wiki/Rule_(law)"}, {Text: " first."}},
		},
		{
			name: "bold inside link text is flattened",
			in:   "[the **form**](https://example.com)",
			want: []Span{{Text: "the form", Href: "https://example.com"}},
		},
		{
			name: "angle brackets stay literal",
			in:   "Tap <Cancel> then `Done`",
			want: []Span{{Text: "Tap <Cancel> then `Done`"}},
		},
		{
			name: "list marker stays literal",
			in:   "1. Open settings",
			want: []Span{{Text: "1. Open settings"}},
		},
		{
			name: "soft line break",
			in:   "first line\nsecond line",
			want: []Span{{Text: "first line second line"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Inline(tt.in))
		})
	}

	assert.True(t, Span{Href: "https://reportaproblem.apple.com"}.External())
	assert.False(t, Span{Href: "mailto:support@firepal.app"}.External())
}
