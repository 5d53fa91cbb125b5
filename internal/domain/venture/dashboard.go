package venture

// Dashboard bundles everything the numeric panel of a blueprint shows.
type Dashboard struct {
	IdeaID      string   `json:"idea_id"`
	Metrics     Snapshot `json:"metrics"`
	Trend       Series   `json:"trend"`
	Years       []int    `json:"years"`
	LinePath    string   `json:"line_path"`
	AreaPath    string   `json:"area_path"`
	TrendStats  Stats    `json:"trend_stats"`
	Feasibility []Bar    `json:"feasibility"`
}

// Compute recomputes the dashboard for an idea. Callers invoke it on every
// display; the result is never cached.
func Compute(ideaID string) Dashboard {
	metrics := Synthesize(ideaID)
	trend := BuildTrend(ideaID)

	return Dashboard{
		IdeaID:      ideaID,
		Metrics:     metrics,
		Trend:       trend,
		Years:       TrendYears(),
		LinePath:    trend.LinePath(),
		AreaPath:    trend.AreaPath(),
		TrendStats:  trend.Stats(),
		Feasibility: Feasibility(metrics),
	}
}
