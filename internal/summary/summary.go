// Package summary computes the headline totals and stat cards
package summary

import (
	"sort"

	"strava-heatmaps/internal/aggregate"
	"strava-heatmaps/internal/calendar"
	"strava-heatmaps/internal/palette"
	"strava-heatmaps/internal/payload"
	"strava-heatmaps/internal/units"
)

// Placeholder is shown for a distance or elevation total of zero
const Placeholder = "- - -"

// Totals sums the selected aggregates
type Totals struct {
	Count         int
	Distance      float64
	MovingTime    float64
	ElevationGain float64

	// ActiveDates are the distinct dates with activity, sorted
	ActiveDates []string

	// TypeTotals counts every type shown as a breakdown card
	TypeTotals map[string]int
}

// ActiveDays is the number of distinct dates with activity
func (t Totals) ActiveDays() int {
	return len(t.ActiveDates)
}

// BuildTotals sums count, distance, time and elevation over every selected
// (year, type) aggregate. typeCardTypes are counted separately so that
// unselected types can still show a card; a single card type is not shown.
func BuildTotals(p *payload.Payload, types []string, years []int, typeCardTypes []string) Totals {
	cardTypes := typeCardTypes
	if len(cardTypes) == 0 {
		cardTypes = types
	}
	if len(cardTypes) <= 1 {
		cardTypes = nil
	}

	carded := make(map[string]bool, len(cardTypes))
	for _, t := range cardTypes {
		carded[t] = true
	}

	totals := Totals{TypeTotals: make(map[string]int, len(cardTypes))}
	for _, t := range cardTypes {
		totals.TypeTotals[t] = 0
	}
	totals.ActiveDates = []string{}
	for date, entry := range aggregate.CombineAggregatesByDate(p, types, years) {
		if entry.Count > 0 {
			totals.ActiveDates = append(totals.ActiveDates, date)
		}
		totals.Count += entry.Count
		totals.Distance += entry.Distance
		totals.MovingTime += entry.MovingTime
		totals.ElevationGain += entry.ElevationGain
	}

	for _, y := range years {
		for t, entries := range p.Aggregates[y] {
			if !carded[t] {
				continue
			}
			for _, entry := range entries {
				totals.TypeTotals[t] += entry.Count
			}
		}
	}

	sort.Strings(totals.ActiveDates)
	return totals
}

// YearCardTotals sums one year card's entries
func YearCardTotals(entries map[string]aggregate.CombinedEntry) Totals {
	var totals Totals
	for _, e := range entries {
		totals.Count += e.Count
		totals.Distance += e.Distance
		totals.MovingTime += e.MovingTime
		totals.ElevationGain += e.ElevationGain
	}
	return totals
}

// Card is a titled stat
type Card struct {
	Title string
	Value string
}

// Cards renders the headline stats. Active days are only included when
// showActiveDays is set.
func Cards(t Totals, u units.Units, showActiveDays bool) []Card {
	cards := []Card{
		{Title: "Total Activities", Value: units.FormatCount(t.Count)},
		{Title: "Total Distance", Value: Placeholder},
		{Title: "Total Time", Value: units.FormatDuration(t.MovingTime)},
		{Title: "Total Elevation", Value: Placeholder},
	}
	if t.Distance > 0 {
		cards[1].Value = u.FormatDistance(t.Distance)
	}
	if t.ElevationGain > 0 {
		cards[3].Value = u.FormatElevation(t.ElevationGain)
	}
	if showActiveDays {
		cards = append(cards, Card{Title: "Active Days", Value: units.FormatCount(t.ActiveDays())})
	}
	return cards
}

// TypeCard is a per-type summary card that doubles as a type toggle
type TypeCard struct {
	Type   string
	Title  string
	Accent string
	Value  string
	Active bool
}

// TypeCards renders one card per type in order. Cards are only shown when
// there is more than one type; active marks the explicitly selected ones.
func TypeCards(pal *palette.Palette, t Totals, order []string, active func(string) bool) []TypeCard {
	if len(order) <= 1 {
		return nil
	}
	cards := make([]TypeCard, 0, len(order))
	for _, typ := range order {
		cards = append(cards, TypeCard{
			Type:   typ,
			Title:  pal.DisplayType(typ),
			Accent: pal.Accent(typ),
			Value:  units.FormatCount(t.TypeTotals[typ]),
			Active: active != nil && active(typ),
		})
	}
	return cards
}

// Streaks are runs of consecutive active days
type Streaks struct {
	Longest int
	Latest  int
}

// CalculateStreaks finds the longest run of consecutive dates and the run
// ending at the most recent date. Unparseable keys are ignored.
func CalculateStreaks(dateKeys []string) Streaks {
	days := make([]int, 0, len(dateKeys))
	seen := make(map[int]bool, len(dateKeys))
	for _, key := range dateKeys {
		d, ok := calendar.ParseDateKey(key)
		if !ok {
			continue
		}
		n := calendar.LocalDayNumber(d)
		if !seen[n] {
			seen[n] = true
			days = append(days, n)
		}
	}
	if len(days) == 0 {
		return Streaks{}
	}
	sort.Ints(days)

	longest, current := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i]-days[i-1] == 1 {
			current++
			continue
		}
		if current > longest {
			longest = current
		}
		current = 1
	}
	if current > longest {
		longest = current
	}
	return Streaks{Longest: longest, Latest: current}
}
