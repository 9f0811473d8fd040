package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"strava-heatmaps/internal/palette"
)

// Breakdown counts the activities behind one matrix cell, per type and per
// subtype of the catch-all bucket
type Breakdown struct {
	TypeCounts         map[string]int
	OtherSubtypeCounts map[string]int
}

// NewBreakdown returns an empty breakdown
func NewBreakdown() Breakdown {
	return Breakdown{
		TypeCounts:         make(map[string]int),
		OtherSubtypeCounts: make(map[string]int),
	}
}

// Add counts one activity. Catch-all activities with a subtype are counted
// under the subtype instead of the type.
func (b *Breakdown) Add(activityType, subtype string, isOther bool) {
	if b.TypeCounts == nil {
		*b = NewBreakdown()
	}
	if isOther && subtype != "" {
		b.OtherSubtypeCounts[subtype]++
		return
	}
	b.TypeCounts[activityType]++
}

// Total is the number of activities counted
func (b Breakdown) Total() int {
	total := 0
	for _, c := range b.TypeCounts {
		total += c
	}
	for _, c := range b.OtherSubtypeCounts {
		total += c
	}
	return total
}

type countEntry struct {
	name  string
	count int
}

// sortedCounts orders entries by count descending, then by name
func sortedCounts(counts map[string]int) []countEntry {
	entries := make([]countEntry, 0, len(counts))
	for name, c := range counts {
		if c > 0 {
			entries = append(entries, countEntry{name: name, count: c})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	return entries
}

// FormatBreakdown renders the tooltip body of a matrix cell: the total, then
// one line per selected type when several are selected, then the catch-all
// subtypes.
func FormatBreakdown(pal *palette.Palette, total int, b Breakdown, types []string) string {
	lines := []string{"Total: " + pal.FormatActivityCountLabel(total, types)}
	subtypes := sortedCounts(b.OtherSubtypeCounts)
	showTypes := len(types) > 1

	if !showTypes && len(subtypes) == 0 {
		return lines[0]
	}

	if showTypes {
		for _, t := range types {
			count := b.TypeCounts[t]
			if pal.IsOther(t) && len(subtypes) > 0 && count <= 0 {
				continue
			}
			if count > 0 {
				lines = append(lines, fmt.Sprintf("%s: %d", pal.DisplayType(t), count))
			}
		}
	}

	for _, e := range subtypes {
		lines = append(lines, fmt.Sprintf("%s: %d", e.name, e.count))
	}
	return strings.Join(lines, "\n")
}
