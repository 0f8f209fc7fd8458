package chart

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCompact abbreviates a dollar amount for axis labels: $1.5M, $678K, $950.
func FormatCompact(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// FormatCurrency renders a whole-dollar amount with grouping: $678,000.
func FormatCurrency(v float64) string {
	return printer.Sprintf("$%d", int64(v))
}

// FormatTarget renders the FIRE target the way the chart header shows it.
// Round millions drop the trailing zero: $1.5M, $2M.
func FormatTarget(v float64) string {
	if v >= 1_000_000 {
		m := v / 1_000_000
		if m == float64(int64(m)) {
			return fmt.Sprintf("$%dM", int64(m))
		}
		return printer.Sprintf("$%.1fM", m)
	}
	return FormatCompact(v)
}

// FormatRate renders an annual return as a percentage with at most two
// decimals: 8%, 3.5%.
func FormatRate(r float64) string {
	return strconv.FormatFloat(math.Round(r*1e4)/100, 'f', -1, 64) + "%"
}
