package aggregate

import (
	"fmt"
	"math"
	"strconv"

	"strava-heatmaps/internal/calendar"
	"strava-heatmaps/internal/palette"
	"strava-heatmaps/internal/units"
)

// Fact keys
const (
	FactMostActiveDay   = "most-active-day"
	FactMostActiveMonth = "most-active-month"
	FactPeakHour        = "peak-hour"
	FactMostActiveWeek  = "most-active-week"
)

const (
	noTimeData = "Not enough time data yet"
	noData     = "Not enough data yet"
)

// Fact is a "most active" statistic. Its Filter narrows the frequency
// matrices to the activities behind it.
type Fact struct {
	Key        string
	Label      string
	Value      string
	Filter     Predicate
	Filterable bool
}

// Facts derives the best day, month, hour and week from unfiltered data
func Facts(base FrequencyData) []Fact {
	bestDay := BestIndex(base.DayTotals)
	bestMonth := BestIndex(base.MonthTotals)
	bestHour := BestIndex(base.HourTotals)
	bestWeek := BestWeek(base.WeekTotals)

	weekTotal := 0.0
	if bestWeek < len(base.WeekTotals) {
		weekTotal = base.WeekTotals[bestWeek]
	}

	hourValue := noTimeData
	if base.HourActivityCount > 0 {
		hourValue = fmt.Sprintf("%s (%s)", units.HourLabel(bestHour), formatTotal(base.HourTotals[bestHour]))
	}
	weekValue := noData
	if weekTotal > 0 {
		weekValue = fmt.Sprintf("Week %d (%s)", bestWeek, formatTotal(weekTotal))
	}

	return []Fact{
		{
			Key:        FactMostActiveDay,
			Label:      "Most active day",
			Value:      fmt.Sprintf("%s (%s)", calendar.Days[bestDay], formatTotal(base.DayTotals[bestDay])),
			Filter:     func(r Record) bool { return r.DayIndex == bestDay },
			Filterable: base.ActivityCount > 0,
		},
		{
			Key:        FactMostActiveMonth,
			Label:      "Most Active Month",
			Value:      fmt.Sprintf("%s (%s)", calendar.Months[bestMonth], formatTotal(base.MonthTotals[bestMonth])),
			Filter:     func(r Record) bool { return r.MonthIndex == bestMonth },
			Filterable: base.ActivityCount > 0,
		},
		{
			Key:        FactPeakHour,
			Label:      "Peak hour",
			Value:      hourValue,
			Filter:     func(r Record) bool { return r.HasHour && r.Hour == bestHour },
			Filterable: base.HourActivityCount > 0,
		},
		{
			Key:        FactMostActiveWeek,
			Label:      "Most active week",
			Value:      weekValue,
			Filter:     func(r Record) bool { return r.WeekIndex == bestWeek },
			Filterable: weekTotal > 0,
		},
	}
}

// FilterableKeys lists the keys of facts that can currently be selected
func FilterableKeys(facts []Fact) []string {
	keys := make([]string, 0, len(facts))
	for _, f := range facts {
		if f.Filterable {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// FindFact returns the fact with key
func FindFact(facts []Fact, key string) (Fact, bool) {
	for _, f := range facts {
		if f.Key == key {
			return f, true
		}
	}
	return Fact{}, false
}

// MetricItem is a metric toggle with the selection's total for it
type MetricItem struct {
	Metric     Metric
	Label      string
	Value      string
	Total      float64
	Filterable bool
}

// MetricItems totals each metric over records. A metric can only weight the
// matrices when its total is non-zero.
func MetricItems(records []Record, u units.Units) []MetricItem {
	items := make([]MetricItem, 0, len(Metrics))
	for _, m := range Metrics {
		total := 0.0
		for _, r := range records {
			total += r.Weight(m)
		}
		items = append(items, MetricItem{
			Metric:     m,
			Label:      m.Label(),
			Value:      FormatMetric(u, m, total),
			Total:      total,
			Filterable: total > 0,
		})
	}
	return items
}

// FilterableMetrics lists the metrics that can currently be selected
func FilterableMetrics(items []MetricItem) []Metric {
	out := make([]Metric, 0, len(items))
	for _, item := range items {
		if item.Filterable {
			out = append(out, item.Metric)
		}
	}
	return out
}

// FormatMetric renders a metric total in display units
func FormatMetric(u units.Units, m Metric, v float64) string {
	switch m {
	case MetricDistance:
		return u.FormatDistance(v)
	case MetricMovingTime:
		return units.FormatDuration(v)
	case MetricElevationGain:
		return u.FormatElevation(v)
	}
	return formatTotal(v)
}

// MatrixTooltip renders the hover text of a frequency matrix cell
func MatrixTooltip(pal *palette.Palette, u units.Units, year int, label string, value float64, b Breakdown, types []string, metric Metric) string {
	text := fmt.Sprintf("%d · %s\n%s", year, label, FormatBreakdown(pal, b.Total(), b, types))
	if metric != "" {
		text += fmt.Sprintf("\n%s: %s", metric.Label(), FormatMetric(u, metric, value))
	}
	return text
}

// formatTotal prints whole numbers without decimals and anything else
// rounded to one decimal
func formatTotal(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
