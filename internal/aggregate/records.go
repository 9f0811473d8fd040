// Package aggregate derives the frequency matrices, facts, breakdowns and
// combined daily aggregates the dashboard renders from a payload.
package aggregate

import (
	"strava-heatmaps/internal/calendar"
	"strava-heatmaps/internal/palette"
	"strava-heatmaps/internal/payload"
)

// Metric is a day aggregate field that can weight the frequency matrices
// instead of raw counts
type Metric string

const (
	MetricDistance      Metric = "distance"
	MetricMovingTime    Metric = "moving_time"
	MetricElevationGain Metric = "elevation_gain"
)

// Metrics lists every metric in display order
var Metrics = []Metric{MetricDistance, MetricMovingTime, MetricElevationGain}

// ParseMetric maps a key to a Metric
func ParseMetric(s string) (Metric, bool) {
	for _, m := range Metrics {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// Label returns the human name of the metric
func (m Metric) Label() string {
	switch m {
	case MetricDistance:
		return "Distance"
	case MetricMovingTime:
		return "Moving Time"
	case MetricElevationGain:
		return "Elevation Gain"
	}
	return string(m)
}

// Value reads the metric off a day aggregate
func (m Metric) Value(d payload.DayAggregate) float64 {
	switch m {
	case MetricDistance:
		return d.Distance
	case MetricMovingTime:
		return d.MovingTime
	case MetricElevationGain:
		return d.ElevationGain
	}
	return 0
}

// Record is an activity resolved onto the calendar, ready for bucketing
type Record struct {
	Type    string
	Subtype string
	Year    int
	DateKey string

	DayIndex   int // 0 = Sunday
	MonthIndex int // 0 = January
	WeekIndex  int // 1-based week of year
	Hour       int
	HasHour    bool

	// per-activity share of the day aggregate, see MetricWeight
	Distance      float64
	MovingTime    float64
	ElevationGain float64
}

// Weight is the amount the record adds to a matrix cell: 1 when counting,
// otherwise its share of metric
func (r Record) Weight(metric Metric) float64 {
	switch metric {
	case MetricDistance:
		return r.Distance
	case MetricMovingTime:
		return r.MovingTime
	case MetricElevationGain:
		return r.ElevationGain
	}
	return 1
}

// Predicate selects records, used by facts to narrow the matrices
type Predicate func(Record) bool

// MetricWeight apportions a day's aggregate metric evenly across that day's
// activities. It is 0 when the aggregate is missing or its count is zero.
func MetricWeight(p *payload.Payload, a payload.Activity, metric Metric) float64 {
	day, ok := p.Day(a.Year, a.Type, a.Date)
	if !ok || day.Count <= 0 {
		return 0
	}
	return metric.Value(day) / float64(day.Count)
}

// Prepare filters the payload's activities down to types and years and
// resolves each onto the calendar. Activities with unparseable dates are
// dropped.
func Prepare(p *payload.Payload, pal *palette.Palette, types []string, years []int) []Record {
	typeSet := make(map[string]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}
	yearSet := make(map[int]bool, len(years))
	for _, y := range years {
		yearSet[y] = true
	}

	records := make([]Record, 0, len(p.Activities))
	for _, a := range p.Activities {
		if !typeSet[a.Type] || !yearSet[a.Year] {
			continue
		}
		date, ok := calendar.ParseDateKey(a.Date)
		if !ok {
			continue
		}

		r := Record{
			Type:          a.Type,
			Subtype:       pal.SubtypeLabel(a),
			Year:          a.Year,
			DateKey:       a.Date,
			DayIndex:      int(date.Weekday()),
			MonthIndex:    int(date.Month()) - 1,
			WeekIndex:     calendar.WeekOfYear(date),
			Distance:      MetricWeight(p, a, MetricDistance),
			MovingTime:    MetricWeight(p, a, MetricMovingTime),
			ElevationGain: MetricWeight(p, a, MetricElevationGain),
		}
		if a.HasHour() {
			r.Hour = *a.Hour
			r.HasHour = true
		}
		records = append(records, r)
	}
	return records
}
