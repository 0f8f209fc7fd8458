package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	s := NewState()
	assert.Equal(t, Home, s.Active)
	assert.False(t, s.MenuOpen)
	assert.True(t, s.IsActive(Home))
}

func TestActivate(t *testing.T) {
	for _, item := range Items {
		t.Run(string(item.Section), func(t *testing.T) {
			s := NewState()
			s.MenuOpen = true

			s.Activate(item.Section)

			assert.Equal(t, item.Section, s.Active)
			assert.True(t, s.IsActive(item.Section))
			assert.False(t, s.MenuOpen, "activating a section closes the menu")
			assert.Equal(t, string(item.Section), item.Section.ElementID())
		})
	}
}

func TestToggleMenu(t *testing.T) {
	s := NewState()
	want := false
	for i := 0; i < 5; i++ {
		s.ToggleMenu()
		want = !want
		assert.Equal(t, want, s.MenuOpen, "toggle %d", i+1)
	}
}

func TestParseSection(t *testing.T) {
	tests := []struct {
		in      string
		want    Section
		wantErr bool
	}{
		{"features", Features, false},
		{"How-It-Works", HowItWorks, false},
		{" support ", Support, false},
		{"home", Home, false},
		{"blog", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSection(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDesktopItems(t *testing.T) {
	items := DesktopItems()
	require.Len(t, items, 3)
	assert.Equal(t, Features, items[0].Section)
	assert.Equal(t, Pricing, items[2].Section)
	assert.Len(t, Items, 6)
}

func TestActivateExpr(t *testing.T) {
	expr := ActivateExpr(Pricing)
	assert.Contains(t, expr, "$activeSection = 'pricing'")
	assert.Contains(t, expr, "$menuOpen = false")
	assert.Contains(t, expr, "getElementById('pricing')")

	home := ActivateExpr(Home)
	assert.Contains(t, home, "window.scrollTo({top: 0")
	assert.NotContains(t, home, "getElementById")
}

func TestScrollExpr(t *testing.T) {
	assert.Equal(t, "window.scrollTo({top: 0, behavior: 'smooth'})", ScrollExpr(Home))
	assert.Equal(t, "document.getElementById('how-it-works')?.scrollIntoView({behavior: 'smooth'})", ScrollExpr(HowItWorks))
}

func TestSignals(t *testing.T) {
	assert.Equal(t, "{activeSection: 'home', menuOpen: false, scrollY: 0}", State{}.Signals())
	assert.Equal(t, "{activeSection: 'terms', menuOpen: true, scrollY: 0}", State{Active: Terms, MenuOpen: true}.Signals())
}

func TestHeaderOpacity(t *testing.T) {
	tests := []struct {
		scrollY float64
		want    float64
	}{
		{-20, 0},
		{0, 0},
		{50, 0.475},
		{100, 0.95},
		{400, 0.95},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, HeaderOpacity(tt.scrollY), 1e-9, "scrollY=%v", tt.scrollY)
	}
}
