// Package terminal renders blueprints for the command line with lipgloss.
//
// The layout follows the web page: a title line with the status label, KPI
// cards, a sparkline of the trend with year ticks, feasibility meters, and
// the content blocks with emphasized spans in bold.
package terminal
