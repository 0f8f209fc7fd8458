package chart

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDefault(t *testing.T) *Chart {
	t.Helper()
	c, err := Build(DefaultParams())
	require.NoError(t, err)
	return c
}

func TestYearsToTarget(t *testing.T) {
	got := YearsToTarget(678000, 1500000, 0.08)
	want := math.Log(1500000.0/678000.0) / math.Log(1.08)

	assert.InDelta(t, want, got, 1e-12)
	assert.InDelta(t, 10.28, got, 0.05)
}

func TestHistoricalValues(t *testing.T) {
	values := HistoricalValues(DefaultParams())

	assert.Equal(t, []float64{290000, 345929, 385229, 422031, 474554, 533447, 580596, 622770, 678000}, values)
}

func TestProjectedValues(t *testing.T) {
	p := DefaultParams()
	values := ProjectedValues(p)

	require.Len(t, values, 24, "points past 110% of target are dropped")
	assert.Equal(t, p.CurrentValue, values[0])
	assert.Equal(t, 1642869.0, values[len(values)-1])
	for i := 1; i < len(values); i++ {
		assert.Greater(t, values[i], values[i-1], "projection must grow")
		assert.LessOrEqual(t, values[i], p.TargetValue*1.1)
	}
}

func TestBuild_HistoricalPoints(t *testing.T) {
	c := buildDefault(t)

	require.Len(t, c.Historical, len(c.HistoricalValues))

	first := c.Historical[0]
	last := c.Historical[len(c.Historical)-1]
	assert.InDelta(t, c.ScaleY(c.HistoricalValues[0]), first.Y, 1e-9)
	assert.InDelta(t, c.ScaleY(c.HistoricalValues[len(c.HistoricalValues)-1]), last.Y, 1e-9)
	assert.InDelta(t, 235.84, first.Y, 0.01)
	assert.InDelta(t, 180.18, last.Y, 0.01)

	assert.Equal(t, 60.0, first.X)
	assert.InDelta(t, 216.0, last.X, 1e-9, "history spans 30% of the plot width")
	assert.Equal(t, last.X, c.ProjectionStartX)
}

func TestBuild_Range(t *testing.T) {
	c := buildDefault(t)

	assert.InDelta(t, 261000.0, c.MinValue, 1e-6)
	assert.InDelta(t, 1725012.45, c.MaxValue, 1e-6)
	assert.InDelta(t, 240.0, c.ScaleY(c.MinValue), 1e-9, "minimum sits on the baseline")
	assert.InDelta(t, 30.0, c.ScaleY(c.MaxValue), 1e-9, "maximum sits on the top padding")
	assert.Equal(t, 240.0, c.Baseline())
}

func TestBuild_Projection(t *testing.T) {
	c := buildDefault(t)

	require.Len(t, c.Projected, len(c.ProjectedValues))
	assert.Equal(t, c.ProjectionStartX, c.Projected[0].X)
	assert.InDelta(t, 216.0+520*0.7, c.Projected[len(c.Projected)-1].X, 1e-9)

	assert.InDelta(t, 62.28, c.TargetY, 0.01)
	assert.InDelta(t, 528.98, c.TargetX, 0.01)
	assert.Equal(t, c.TargetX, c.TargetMarker().X, "marker inside the plot is not clamped")
}

func TestTargetMarker_Clamped(t *testing.T) {
	c := buildDefault(t)
	c.TargetX = 900

	assert.Equal(t, 560.0, c.TargetMarker().X)
}

func TestBuild_YLabels(t *testing.T) {
	c := buildDefault(t)

	require.Len(t, c.YLabels, 5)
	assert.Equal(t, "$261K", c.YLabels[0].Text)
	assert.Equal(t, "$1.7M", c.YLabels[4].Text)
	assert.InDelta(t, c.Baseline(), c.YLabels[0].Y, 1e-9)
}

func TestPaths(t *testing.T) {
	c := buildDefault(t)

	hist := c.HistoricalPath()
	assert.True(t, strings.HasPrefix(hist, "M 60 235.84 L "), hist)
	assert.Equal(t, len(c.Historical)-1, strings.Count(hist, "L "))

	area := c.HistoricalArea()
	assert.True(t, strings.HasPrefix(area, hist))
	assert.True(t, strings.HasSuffix(area, "L 216 240 L 60 240 Z"), area)

	proj := c.ProjectionPath()
	assert.True(t, strings.HasPrefix(proj, "M 216 180.18 L "), proj)
}

func TestTargetDate(t *testing.T) {
	c := buildDefault(t)
	asOf := time.Date(2027, time.August, 14, 0, 0, 0, 0, time.UTC)

	got := c.TargetDate(asOf)

	assert.Equal(t, "December 2037", got.Format("January 2006"))
	assert.Equal(t, "~10 years", c.HorizonLabel())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		errMsg string
	}{
		{"non-positive return", func(p *Params) { p.AnnualReturn = 0 }, "annual return"},
		{"target below current", func(p *Params) { p.TargetValue = 500000 }, "must exceed"},
		{"zero current", func(p *Params) { p.CurrentValue = 0 }, "positive"},
		{"no history", func(p *Params) { p.HistoricalMonths = 0 }, "historical months"},
		{"short horizon", func(p *Params) { p.ProjectionMonths = 3 }, "projection months"},
		{"padding too wide", func(p *Params) { p.Padding.Left = 700 }, "no room"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)

			_, err := Build(p)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	assert.NoError(t, DefaultParams().Validate())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1.5M", FormatCompact(1500000))
	assert.Equal(t, "$678K", FormatCompact(678000))
	assert.Equal(t, "$512", FormatCompact(512))
	assert.Equal(t, "$678,000", FormatCurrency(678000))
	assert.Equal(t, "$1.5M", FormatTarget(1500000))
	assert.Equal(t, "$2M", FormatTarget(2000000))
	assert.Equal(t, "8%", FormatRate(0.08))
	assert.Equal(t, "7%", FormatRate(0.07))
	assert.Equal(t, "3.5%", FormatRate(0.035))
	assert.Equal(t, "12.25%", FormatRate(0.1225))
}
