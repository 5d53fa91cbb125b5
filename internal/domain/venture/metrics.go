package venture

import "math"

// Seed suffixes for the metric hashes. CAGR and time to profit both read
// the growth seed, so the two move together for a given idea.
const (
	growthSeed = "1"
	marketSeed = "2"
	riskSeed   = "3"
)

// Field ranges as (base, span).
const (
	cagrBase, cagrSpan     = 12, 35
	marketBase, marketSpan = 2.5, 8.0
	riskBase, riskSpan     = 30, 40
	profitBase, profitSpan = 6, 12
)

const (
	riskElevatedThreshold = 50
	scalabilityPercent    = 92
	techMaturityPercent   = 78
)

// Snapshot holds the headline KPIs of a venture.
type Snapshot struct {
	CAGRPercent        int     `json:"cagr_percent"`
	MarketSizeBillion  float64 `json:"market_size_billion"`
	RiskScorePercent   int     `json:"risk_score_percent"`
	TimeToProfitMonths int     `json:"time_to_profit_months"`
}

// Synthesize derives the KPI snapshot for an idea. It is total over any
// string, the empty id included.
func Synthesize(ideaID string) Snapshot {
	r1 := Hash(ideaID + growthSeed)
	r2 := Hash(ideaID + marketSeed)
	r3 := Hash(ideaID + riskSeed)

	return Snapshot{
		CAGRPercent:        int(math.Floor(cagrBase + r1*cagrSpan)),
		MarketSizeBillion:  roundTenth(marketBase + r2*marketSpan),
		RiskScorePercent:   int(math.Floor(riskBase + r3*riskSpan)),
		TimeToProfitMonths: int(math.Floor(profitBase + r1*profitSpan)),
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// Bar is one row of the feasibility analysis.
type Bar struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
	Level   string `json:"level"`
}

const (
	LevelNominal  = "nominal"
	LevelElevated = "elevated"
)

// Feasibility returns the analysis bars for a snapshot. Scalability and tech
// maturity are fixed; regulatory risk follows the risk score and turns
// elevated above 50.
func Feasibility(s Snapshot) []Bar {
	riskLevel := LevelNominal
	if s.RiskScorePercent > riskElevatedThreshold {
		riskLevel = LevelElevated
	}

	return []Bar{
		{Label: "Scalability", Percent: scalabilityPercent, Level: LevelNominal},
		{Label: "Tech Maturity", Percent: techMaturityPercent, Level: LevelNominal},
		{Label: "Reg. Risk", Percent: s.RiskScorePercent, Level: riskLevel},
	}
}
