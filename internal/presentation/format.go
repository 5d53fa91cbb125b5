// Package presentation holds display formatting shared by the HTML and
// terminal renderers.
package presentation

import (
	"strconv"
	"strings"
	"time"

	"github.com/GriffinCanCode/venture-blueprint/internal/domain/venture"
)

// FooterDateLayout matches the short month/day/year date of the footer.
const FooterDateLayout = "1/2/2006"

// CAGR formats a growth rate as "+23%".
func CAGR(percent int) string {
	return "+" + strconv.Itoa(percent) + "%"
}

// MarketSize formats a market size as "$12.3B", dropping a zero decimal.
func MarketSize(billion float64) string {
	return "$" + strconv.FormatFloat(billion, 'f', -1, 64) + "B"
}

// Months formats a duration in months as "18mo".
func Months(months int) string {
	return strconv.Itoa(months) + "mo"
}

// Percent formats an integer percentage.
func Percent(percent int) string {
	return strconv.Itoa(percent) + "%"
}

// Footer returns the attribution line printed under a generated blueprint.
func Footer(model string, at time.Time) string {
	if model == "" {
		model = "unknown model"
	}
	return "GENERATED BY " + strings.ToUpper(model) + " // " + at.Format(FooterDateLayout)
}

// ChartTitle returns the heading of the trend chart, spanning the trend years.
func ChartTitle() string {
	years := venture.TrendYears()
	return "MARKET VELOCITY (" + strconv.Itoa(years[0]) + "-" + strconv.Itoa(years[len(years)-1]) + ")"
}
