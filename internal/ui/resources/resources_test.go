package resources

import (
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticPath(t *testing.T) {
	assert.Equal(t, "/static/site.css", StaticPath("site.css"))
}

func TestFiles(t *testing.T) {
	names, err := Files()
	require.NoError(t, err)
	for _, want := range []string{"site.css", "favicon.svg", "apple-touch-icon.png", "og-image.png"} {
		assert.Contains(t, names, want)
	}
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantType   string
	}{
		{name: "stylesheet", path: "/static/site.css", wantStatus: http.StatusOK, wantType: "text/css"},
		{name: "favicon", path: "/static/favicon.svg", wantStatus: http.StatusOK, wantType: "image/svg+xml"},
		{name: "missing", path: "/static/nope.js", wantStatus: http.StatusNotFound},
	}

	h := Handler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantType != "" {
				assert.Contains(t, rec.Header().Get("Content-Type"), tt.wantType)
				assert.NotEmpty(t, rec.Header().Get("Cache-Control"))
			}
		})
	}
}

func readCSS(t *testing.T) string {
	t.Helper()
	f, err := FS().Open("site.css")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return string(data)
}

// mediaBlock returns the body of the first @media rule with the given query.
func mediaBlock(t *testing.T, css, query string) string {
	t.Helper()
	start := strings.Index(css, "@media ("+query+")")
	require.NotEqual(t, -1, start, "missing @media (%s)", query)

	open := strings.Index(css[start:], "{") + start
	depth := 0
	for i := open; i < len(css); i++ {
		switch css[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return css[open+1 : i]
			}
		}
	}
	t.Fatalf("unterminated @media (%s)", query)
	return ""
}

func TestBreakpoints(t *testing.T) {
	css := readCSS(t)
	hidden := regexp.MustCompile(`\{\s*display:\s*none\s*!important;?\s*\}`)
	shown := regexp.MustCompile(`\{\s*display:\s*block\s*!important;?\s*\}`)

	narrow := mediaBlock(t, css, "max-width: 768px")
	assert.Regexp(t, regexp.MustCompile(`\.desktop-nav\s*`+hidden.String()), narrow)
	assert.Regexp(t, regexp.MustCompile(`\.mobile-menu-btn\s*`+shown.String()), narrow)

	wide := mediaBlock(t, css, "min-width: 769px")
	assert.Regexp(t, regexp.MustCompile(`\.mobile-menu-btn\s*`+hidden.String()), wide)
}

func TestFS_Readable(t *testing.T) {
	data, err := fs.ReadFile(FS(), "favicon.svg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<svg"))
}
