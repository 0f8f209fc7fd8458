package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/bendaniels95/firelanding/internal/chart"
)

// NewChartCommand creates the chart command.
func NewChartCommand() *cobra.Command {
	d := chart.DefaultParams()

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the hero chart projection",
		Long: `Compute the hero chart from the configured parameters and print the
years to the FIRE target, the projected date and the value series.

Useful for checking copy such as "~10 years" before publishing.`,
		Example: `  # Defaults
  firepal chart

  # What if returns were 6%?
  firepal chart --rate 0.06 --points`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			c, err := chart.Build(cfg.Chart)
			if err != nil {
				return err
			}
			points, err := cmd.Flags().GetBool("points")
			if err != nil {
				return err
			}
			return renderChart(cmd.OutOrStdout(), c, time.Now(), points)
		},
	}

	// Values live in config; the loader maps these onto chart.*.
	cmd.Flags().Float64("start", d.StartValue, "Portfolio value at the start of the history")
	cmd.Flags().Float64("current", d.CurrentValue, "Portfolio value today")
	cmd.Flags().Float64("target", d.TargetValue, "FIRE target")
	cmd.Flags().Float64("rate", d.AnnualReturn, "Annual return, e.g. 0.08")
	cmd.Flags().Int("history", d.HistoricalMonths, "Months of history")
	cmd.Flags().Int("projection", d.ProjectionMonths, "Months to project")
	cmd.Flags().Bool("points", false, "Also print SVG coordinates")

	return cmd
}

func renderChart(w io.Writer, c *chart.Chart, asOf time.Time, points bool) error {
	p := c.Params

	summary := table.NewWriter()
	summary.SetOutputMirror(w)
	summary.SetStyle(table.StyleLight)
	summary.AppendRows([]table.Row{
		{"Current", chart.FormatCurrency(p.CurrentValue)},
		{"Target", chart.FormatCurrency(p.TargetValue)},
		{"Annual return", chart.FormatRate(p.AnnualReturn)},
		{"Years to target", fmt.Sprintf("%.2f (%s)", c.YearsToTarget, c.HorizonLabel())},
		{"FIRE date", c.TargetDate(asOf).Format("January 2006")},
	})
	summary.Render()

	series := table.NewWriter()
	series.SetOutputMirror(w)
	series.SetStyle(table.StyleLight)
	header := table.Row{"Series", "Month", "Value"}
	if points {
		header = append(header, "X", "Y")
	}
	series.AppendHeader(header)
	series.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	appendSeries := func(name string, values []float64, pts []chart.Point, month func(i int) int) {
		for i, v := range values {
			row := table.Row{name, month(i), chart.FormatCurrency(v)}
			if points {
				row = append(row, chart.Num(pts[i].X), chart.Num(pts[i].Y))
			}
			series.AppendRow(row)
		}
	}
	appendSeries("historical", c.HistoricalValues, c.Historical, func(i int) int {
		return i - p.HistoricalMonths
	})
	series.AppendSeparator()
	appendSeries("projected", c.ProjectedValues, c.Projected, func(i int) int {
		return i * 6
	})
	series.Render()

	return nil
}
