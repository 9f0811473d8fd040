package aggregate

import (
	"sort"

	"strava-heatmaps/internal/palette"
	"strava-heatmaps/internal/payload"
)

// CombinedEntry is the sum of several types' aggregates on one day
type CombinedEntry struct {
	Count         int
	Distance      float64
	MovingTime    float64
	ElevationGain float64

	// Types with a non-zero count that day, in selection order
	Types []string
}

// CombineYearAggregates merges the per-type aggregates of one year by date
func CombineYearAggregates(yearData map[string]map[string]payload.DayAggregate, types []string) map[string]CombinedEntry {
	combined := make(map[string]CombinedEntry)
	for _, t := range types {
		for date, entry := range yearData[t] {
			c := combined[date]
			c.Count += entry.Count
			c.Distance += entry.Distance
			c.MovingTime += entry.MovingTime
			c.ElevationGain += entry.ElevationGain
			if entry.Count > 0 {
				c.Types = append(c.Types, t)
			}
			combined[date] = c
		}
	}
	return combined
}

// SingleTypeAggregates lifts one type's aggregates into combined entries
func SingleTypeAggregates(entries map[string]payload.DayAggregate, t string) map[string]CombinedEntry {
	return CombineYearAggregates(map[string]map[string]payload.DayAggregate{t: entries}, []string{t})
}

// CombineAggregatesByDate sums every selected type and year by date
func CombineAggregatesByDate(p *payload.Payload, types []string, years []int) map[string]payload.DayAggregate {
	combined := make(map[string]payload.DayAggregate)
	for _, y := range years {
		yearData := p.Aggregates[y]
		for _, t := range types {
			for date, entry := range yearData[t] {
				c := combined[date]
				c.Count += entry.Count
				c.Distance += entry.Distance
				c.MovingTime += entry.MovingTime
				c.ElevationGain += entry.ElevationGain
				combined[date] = c
			}
		}
	}
	return combined
}

// TypeYearTotals counts one type's activities per year
func TypeYearTotals(p *payload.Payload, t string, years []int) map[int]int {
	totals := make(map[int]int, len(years))
	for _, y := range years {
		total := 0
		for _, entry := range p.Aggregates[y][t] {
			total += entry.Count
		}
		totals[y] = total
	}
	return totals
}

// TypesYearTotals counts the activities of several types per year
func TypesYearTotals(p *payload.Payload, types []string, years []int) map[int]int {
	if len(types) == 1 {
		return TypeYearTotals(p, types[0], years)
	}
	totals := make(map[int]int, len(years))
	for _, y := range years {
		total := 0
		for _, t := range types {
			for _, entry := range p.Aggregates[y][t] {
				total += entry.Count
			}
		}
		totals[y] = total
	}
	return totals
}

type dateDetails struct {
	normalTypes    map[string]bool
	otherSubtypes  map[string]bool
	hasOtherSports bool
}

// CombinedTypeLabelsByDate lists, per date, the labels of the types active
// that day: selected types in order, then unselected ones alphabetically,
// then catch-all subtypes (or the catch-all label when none are known).
func CombinedTypeLabelsByDate(p *payload.Payload, pal *palette.Palette, types []string, years []int) map[string][]string {
	typeSet := make(map[string]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}
	yearSet := make(map[int]bool, len(years))
	for _, y := range years {
		yearSet[y] = true
	}

	details := make(map[string]*dateDetails)
	for _, a := range p.Activities {
		if !typeSet[a.Type] || !yearSet[a.Year] || a.Date == "" {
			continue
		}
		d, ok := details[a.Date]
		if !ok {
			d = &dateDetails{normalTypes: make(map[string]bool), otherSubtypes: make(map[string]bool)}
			details[a.Date] = d
		}
		if pal.IsOther(a.Type) {
			d.hasOtherSports = true
			if subtype := pal.SubtypeLabel(a); subtype != "" {
				d.otherSubtypes[subtype+" subtype"] = true
			}
			continue
		}
		d.normalTypes[a.Type] = true
	}

	result := make(map[string][]string, len(details))
	for date, d := range details {
		var labels []string
		for _, t := range types {
			if !pal.IsOther(t) && d.normalTypes[t] {
				labels = append(labels, pal.DisplayType(t))
			}
		}

		var extra []string
		for t := range d.normalTypes {
			if !pal.IsOther(t) && !typeSet[t] {
				extra = append(extra, pal.DisplayType(t))
			}
		}
		sort.Strings(extra)
		labels = append(labels, extra...)

		subtypes := make([]string, 0, len(d.otherSubtypes))
		for s := range d.otherSubtypes {
			subtypes = append(subtypes, s)
		}
		sort.Strings(subtypes)
		if len(subtypes) > 0 {
			labels = append(labels, subtypes...)
		} else if d.hasOtherSports {
			labels = append(labels, pal.DisplayType(pal.OtherBucket()))
		}

		result[date] = labels
	}
	return result
}
