// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bendaniels95/firelanding/internal/chart"
	"github.com/bendaniels95/firelanding/internal/content"
	"github.com/bendaniels95/firelanding/internal/testutil"
)

// FixedNow is the clock every fixture renders with.
var FixedNow = time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)

// TestFixture holds the dependencies UI handler tests share.
type TestFixture struct {
	Site   *content.Site
	Chart  *chart.Chart
	Logger *slog.Logger
}

// SetupTestFixture loads the embedded content and builds the default chart.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	site, err := content.Load()
	require.NoError(t, err)

	c, err := chart.Build(chart.DefaultParams())
	require.NoError(t, err)

	return &TestFixture{
		Site:   site,
		Chart:  c,
		Logger: testutil.NewTestLogger(t),
	}
}

// Now returns FixedNow; pass it as a clock.
func (f *TestFixture) Now() time.Time {
	return FixedNow
}

// RequestWithTimeout wraps a request with a context timeout that is released
// when the test ends.
func RequestWithTimeout(t *testing.T, r *http.Request, timeout time.Duration) *http.Request {
	t.Helper()
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	t.Cleanup(cancel)
	return r.WithContext(ctx)
}
