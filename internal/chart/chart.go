// Package chart generates the coordinates for the hero section's portfolio
// chart: a short synthetic history followed by a compound-growth projection
// toward the FIRE target, scaled into a fixed SVG viewport.
package chart

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Padding is the space between the viewport edge and the plot area.
type Padding struct {
	Top    float64 `koanf:"top"`
	Right  float64 `koanf:"right"`
	Bottom float64 `koanf:"bottom"`
	Left   float64 `koanf:"left"`
}

// Params are the chart inputs.
type Params struct {
	StartValue       float64 `koanf:"start_value"`
	CurrentValue     float64 `koanf:"current_value"`
	TargetValue      float64 `koanf:"target_value"`
	AnnualReturn     float64 `koanf:"annual_return"`
	HistoricalMonths int     `koanf:"historical_months"`
	ProjectionMonths int     `koanf:"projection_months"`
	Width            float64 `koanf:"width"`
	Height           float64 `koanf:"height"`
	Padding          Padding `koanf:"padding"`
}

// Default chart constants.
const (
	DefaultStartValue       = 285000
	DefaultCurrentValue     = 678000
	DefaultTargetValue      = 1500000
	DefaultAnnualReturn     = 0.08
	DefaultHistoricalMonths = 8
	DefaultProjectionMonths = 144
	DefaultWidth            = 600
	DefaultHeight           = 280
)

// projectionStepMonths is the spacing between projected points.
const projectionStepMonths = 6

// DefaultParams returns the values the landing page ships with.
func DefaultParams() Params {
	return Params{
		StartValue:       DefaultStartValue,
		CurrentValue:     DefaultCurrentValue,
		TargetValue:      DefaultTargetValue,
		AnnualReturn:     DefaultAnnualReturn,
		HistoricalMonths: DefaultHistoricalMonths,
		ProjectionMonths: DefaultProjectionMonths,
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		Padding:          Padding{Top: 30, Right: 20, Bottom: 40, Left: 60},
	}
}

// Validate rejects parameters the growth formulas cannot handle.
func (p Params) Validate() error {
	var errs []error
	if p.StartValue <= 0 || p.CurrentValue <= 0 {
		errs = append(errs, errors.New("start and current values must be positive"))
	}
	if p.TargetValue <= p.CurrentValue {
		errs = append(errs, fmt.Errorf("target %.0f must exceed current value %.0f", p.TargetValue, p.CurrentValue))
	}
	if p.AnnualReturn <= 0 {
		errs = append(errs, fmt.Errorf("annual return must be positive, got %v", p.AnnualReturn))
	}
	if p.HistoricalMonths < 1 {
		errs = append(errs, errors.New("historical months must be at least 1"))
	}
	if p.ProjectionMonths < projectionStepMonths {
		errs = append(errs, fmt.Errorf("projection months must be at least %d", projectionStepMonths))
	}
	if p.PlotWidth() <= 0 || p.PlotHeight() <= 0 {
		errs = append(errs, errors.New("padding leaves no room for the plot"))
	}
	return errors.Join(errs...)
}

// PlotWidth is the width of the area inside the padding.
func (p Params) PlotWidth() float64 {
	return p.Width - p.Padding.Left - p.Padding.Right
}

// PlotHeight is the height of the area inside the padding.
func (p Params) PlotHeight() float64 {
	return p.Height - p.Padding.Top - p.Padding.Bottom
}

// Point is an SVG coordinate.
type Point struct {
	X float64
	Y float64
}

// AxisLabel is a horizontal grid line with its value.
type AxisLabel struct {
	Value float64
	Y     float64
	Text  string
}

// Chart is the computed geometry.
type Chart struct {
	Params Params

	HistoricalValues []float64
	ProjectedValues  []float64
	Historical       []Point
	Projected        []Point

	MinValue float64
	MaxValue float64

	// YearsToTarget is how long the current value takes to reach the target
	// compounding at the annual return.
	YearsToTarget float64

	ProjectionStartX float64
	TargetY          float64
	TargetX          float64
	YLabels          []AxisLabel
}

// Build computes the chart for p.
func Build(p Params) (*Chart, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chart parameters: %w", err)
	}

	c := &Chart{
		Params:           p,
		HistoricalValues: HistoricalValues(p),
		ProjectedValues:  ProjectedValues(p),
		YearsToTarget:    YearsToTarget(p.CurrentValue, p.TargetValue, p.AnnualReturn),
	}

	all := make([]float64, 0, len(c.HistoricalValues)+len(c.ProjectedValues)+1)
	all = append(all, c.HistoricalValues...)
	all = append(all, c.ProjectedValues...)
	all = append(all, p.TargetValue)
	c.MinValue = floats.Min(all) * 0.9
	c.MaxValue = floats.Max(all) * 1.05

	c.Historical = make([]Point, len(c.HistoricalValues))
	for i, v := range c.HistoricalValues {
		c.Historical[i] = Point{X: c.scaleX(i, len(c.HistoricalValues)), Y: c.ScaleY(v)}
	}

	c.ProjectionStartX = c.scaleX(len(c.HistoricalValues)-1, len(c.HistoricalValues))
	projectionWidth := p.PlotWidth() * 0.7
	c.Projected = make([]Point, len(c.ProjectedValues))
	for i, v := range c.ProjectedValues {
		x := c.ProjectionStartX
		if len(c.ProjectedValues) > 1 {
			x += float64(i) / float64(len(c.ProjectedValues)-1) * projectionWidth
		}
		c.Projected[i] = Point{X: x, Y: c.ScaleY(v)}
	}

	c.TargetY = c.ScaleY(p.TargetValue)
	c.TargetX = c.ProjectionStartX + projectionWidth*(c.YearsToTarget/(float64(len(c.ProjectedValues))*0.5))

	for _, frac := range []float64{0, 0.25, 0.5, 0.75, 1} {
		v := c.MinValue + (c.MaxValue-c.MinValue)*frac
		c.YLabels = append(c.YLabels, AxisLabel{Value: v, Y: c.ScaleY(v), Text: FormatCompact(v)})
	}

	return c, nil
}

// HistoricalValues returns the synthetic monthly history: a straight line from
// start to current with a deterministic wobble, ending exactly on current.
func HistoricalValues(p Params) []float64 {
	n := p.HistoricalMonths
	values := make([]float64, n+1)
	for i := range values {
		progress := float64(i) / float64(n)
		base := p.StartValue + (p.CurrentValue-p.StartValue)*progress
		volatility := math.Sin(float64(i)*1.5)*8000 + math.Cos(float64(i)*0.7)*5000
		values[i] = math.Round(base + volatility)
	}
	values[n] = p.CurrentValue
	return values
}

// ProjectedValues returns the compound-growth projection sampled every six
// months, dropping points more than 10% past the target.
func ProjectedValues(p Params) []float64 {
	steps := int(math.Ceil(float64(p.ProjectionMonths)/projectionStepMonths)) + 1
	ceiling := p.TargetValue * 1.1

	values := make([]float64, 0, steps)
	for i := 0; i < steps; i++ {
		years := float64(i*projectionStepMonths) / 12
		v := math.Round(p.CurrentValue * math.Pow(1+p.AnnualReturn, years))
		if v <= ceiling {
			values = append(values, v)
		}
	}
	return values
}

// YearsToTarget solves current*(1+rate)^t = target for t.
func YearsToTarget(current, target, rate float64) float64 {
	return math.Log(target/current) / math.Log(1+rate)
}

// scaleX places index i of total points across the historical 30% of the plot.
func (c *Chart) scaleX(i, total int) float64 {
	x := c.Params.Padding.Left
	if total > 1 {
		x += float64(i) / float64(total-1) * (c.Params.PlotWidth() * 0.3)
	}
	return x
}

// ScaleY maps a portfolio value to its SVG y coordinate.
func (c *Chart) ScaleY(v float64) float64 {
	h := c.Params.PlotHeight()
	return c.Params.Padding.Top + h - (v-c.MinValue)/(c.MaxValue-c.MinValue)*h
}

// Baseline is the y coordinate of the bottom of the plot.
func (c *Chart) Baseline() float64 {
	return c.Params.Padding.Top + c.Params.PlotHeight()
}

// PlotWidth is the width of the plot area.
func (c *Chart) PlotWidth() float64 {
	return c.Params.PlotWidth()
}

// CurrentPoint is where history ends and the projection begins.
func (c *Chart) CurrentPoint() Point {
	return Point{X: c.ProjectionStartX, Y: c.ScaleY(c.Params.CurrentValue)}
}

// TargetMarker is the drawn position of the FIRE marker, kept inside the
// right edge of the plot.
func (c *Chart) TargetMarker() Point {
	return Point{
		X: math.Min(c.TargetX, c.Params.Width-c.Params.Padding.Right-20),
		Y: c.TargetY,
	}
}

// HistoricalPath is the SVG path for the history line.
func (c *Chart) HistoricalPath() string {
	return linePath(c.Historical)
}

// HistoricalArea closes the history line down to the baseline.
func (c *Chart) HistoricalArea() string {
	first := c.Historical[0]
	last := c.Historical[len(c.Historical)-1]
	return fmt.Sprintf("%s L %s %s L %s %s Z",
		c.HistoricalPath(), Num(last.X), Num(c.Baseline()), Num(first.X), Num(c.Baseline()))
}

// ProjectionPath is the SVG path for the projected line.
func (c *Chart) ProjectionPath() string {
	return linePath(c.Projected)
}

// HorizonLabel is the x-axis caption at the right edge, e.g. "~10 years".
func (c *Chart) HorizonLabel() string {
	return fmt.Sprintf("~%d years", int(math.Round(c.YearsToTarget)))
}

// TargetDate returns the month the target is reached when starting from asOf.
func (c *Chart) TargetDate(asOf time.Time) time.Time {
	months := int(math.Ceil(c.YearsToTarget * 12))
	return time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location()).AddDate(0, months, 0)
}

func linePath(points []Point) string {
	var b strings.Builder
	for i, pt := range points {
		if i > 0 {
			b.WriteByte(' ')
		}
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s %s %s", cmd, Num(pt.X), Num(pt.Y))
	}
	return b.String()
}

// Num formats a coordinate for SVG output with at most two decimals.
func Num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
