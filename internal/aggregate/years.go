package aggregate

import (
	"sort"

	"strava-heatmaps/internal/payload"
)

// VisibleYears decides which years get a card for the selected types
type VisibleYears func(p *payload.Payload, types []string, years []int) []int

// AllYearsDescending shows every year, newest first. Years without matching
// activity get an empty-state card.
func AllYearsDescending(_ *payload.Payload, _ []string, years []int) []int {
	out := append([]int(nil), years...)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// TrimLeadingEmptyYears hides the oldest years until the first one with
// activity for types. Gaps after that year are kept.
func TrimLeadingEmptyYears(p *payload.Payload, types []string, years []int) []int {
	desc := AllYearsDescending(p, types, years)
	totals := TypesYearTotals(p, types, desc)

	end := len(desc)
	for end > 0 && totals[desc[end-1]] == 0 {
		end--
	}
	return desc[:end]
}

// VisibleYearsPolicy resolves a policy by its config name. Unknown names
// fall back to AllYearsDescending.
func VisibleYearsPolicy(name string) VisibleYears {
	if name == "trim-leading-empty" {
		return TrimLeadingEmptyYears
	}
	return AllYearsDescending
}
