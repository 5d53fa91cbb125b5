package venture

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// TrendLength is the number of periods in every trend series.
	TrendLength = 7

	trendStart     = 20.0
	growthFloor    = 5.0
	growthSpan     = 15.0
	normalizedPeak = 100.0
	chartExtent    = 100.0
	firstTrendYear = 2024
)

// Series is a normalized growth curve: TrendLength points in (0,100], the
// largest exactly 100.
type Series []float64

// BuildTrend accumulates seeded growth increments from a base of 20 and
// scales the curve so its peak is 100. Each raw value is divided by the
// peak before multiplying, so the peak itself lands on exactly 100.
func BuildTrend(ideaID string) Series {
	raw := make([]float64, TrendLength)
	value := trendStart
	for i := range raw {
		growth := Hash(ideaID+strconv.Itoa(i))*growthSpan + growthFloor
		value += growth
		raw[i] = value
	}

	peak := floats.Max(raw)
	series := make(Series, TrendLength)
	for i, v := range raw {
		series[i] = (v / peak) * normalizedPeak
	}
	return series
}

// TrendYears labels the periods of a series.
func TrendYears() []int {
	years := make([]int, TrendLength)
	for i := range years {
		years[i] = firstTrendYear + i
	}
	return years
}

// Point is a chart coordinate in a 100x100 box with y growing downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Points spreads the series evenly across the chart width and inverts the
// values so that larger values sit higher.
func (s Series) Points() []Point {
	points := make([]Point, len(s))
	for i, v := range s {
		x := 0.0
		if len(s) > 1 {
			x = float64(i) / float64(len(s)-1) * chartExtent
		}
		points[i] = Point{X: x, Y: chartExtent - v}
	}
	return points
}

// LinePath renders the series as an SVG path ("M x y L x y ...").
func (s Series) LinePath() string {
	var sb strings.Builder
	for i, p := range s.Points() {
		if i == 0 {
			sb.WriteString("M ")
		} else {
			sb.WriteString(" L ")
		}
		sb.WriteString(formatCoord(p.X))
		sb.WriteByte(' ')
		sb.WriteString(formatCoord(p.Y))
	}
	return sb.String()
}

// AreaPath closes the line path along the chart baseline so it can be filled.
func (s Series) AreaPath() string {
	return s.LinePath() + " L 100 100 L 0 100 Z"
}

// Stats summarizes the normalized series.
type Stats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Stats returns mean, spread and bounds of the series.
func (s Series) Stats() Stats {
	if len(s) == 0 {
		return Stats{}
	}
	values := []float64(s)
	return Stats{
		Mean:   stat.Mean(values, nil),
		StdDev: stat.StdDev(values, nil),
		Min:    floats.Min(values),
		Max:    floats.Max(values),
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
