// Package venture synthesizes the numeric half of a venture blueprint.
//
// Every value is derived from the idea identifier alone through a seeded,
// sine-based hash, so the same idea always yields the same dashboard and
// nothing needs to be stored between requests.
//
// Key Components:
//   - Hash: seed string to unit-interval value
//   - Synthesize: bounded KPIs (CAGR, market size, risk, time to profit)
//   - BuildTrend: seven-period growth curve normalized to a 100 ceiling
//   - Series.LinePath / Series.AreaPath: chart geometry in a 100x100 box
//   - Feasibility: analysis bars shown next to the chart
//
// Example:
//
//	dash := venture.Compute("3")
//	fmt.Println(dash.Metrics.CAGRPercent, dash.Trend.LinePath())
package venture
