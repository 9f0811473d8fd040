package aggregate

import (
	"strings"

	"strava-heatmaps/internal/palette"
	"strava-heatmaps/internal/units"
)

// CombinedType is the pseudo type of a card merging several types. The NUL
// byte keeps it apart from any payload type key.
const CombinedType = "\x00combined"

// CellTooltip renders the hover text of a calendar cell. For combined cards
// typeLabels (from CombinedTypeLabelsByDate) names the types of the day,
// falling back to the entry's own types.
func CellTooltip(pal *palette.Palette, u units.Units, dateKey string, entry CombinedEntry, cardType string, typeLabels []string) string {
	var countTypes []string
	if cardType != CombinedType {
		countTypes = []string{cardType}
	}

	lines := []string{
		dateKey,
		pal.FormatActivityCountLabel(entry.Count, countTypes),
	}

	if cardType == CombinedType {
		if len(typeLabels) > 0 {
			lines = append(lines, "Types: "+strings.Join(typeLabels, ", "))
		} else if len(entry.Types) > 0 {
			lines = append(lines, "Types: "+strings.Join(pal.DisplayTypes(entry.Types), ", "))
		}
	}

	if entry.Distance > 0 || entry.ElevationGain > 0 {
		lines = append(lines,
			"Distance: "+u.FormatCellDistance(entry.Distance),
			"Elevation: "+u.FormatCellElevation(entry.ElevationGain),
		)
	}

	lines = append(lines, "Duration: "+units.FormatCellDuration(entry.MovingTime))
	return strings.Join(lines, "\n")
}
