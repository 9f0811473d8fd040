package service

const (
	// AllKey is the value of the "all" filter button; it can't collide with
	// a payload type key
	AllKey = "\x00all"

	// Frequency panel titles
	DayPanelTitle   = "Activity Frequency by Day of Week"
	MonthPanelTitle = "Activity Frequency by Month"
	HourPanelTitle  = "Activity Frequency by Time of Day"

	// FrequencyCardTitle labels the overview card of each section
	FrequencyCardTitle = "Activity Frequency"

	// HourFallback replaces the hour matrix when no activity has a start time
	HourFallback = "Time-of-day stats require activity timestamps."

	// EmptyCardLabel titles empty-state cards
	EmptyCardLabel = "No activity"

	// UpdatedLayout formats the payload's generated_at timestamp
	UpdatedLayout = "1/2/2006, 3:04 PM"
)

// Axis labels of the frequency matrices. Blank entries are unlabeled
// columns; the full names are used in tooltips.
var (
	DayAxisLabels   = []string{"Sun", "", "", "Wed", "", "", "Sat"}
	MonthAxisLabels = []string{"Jan", "", "Mar", "", "May", "", "Jul", "", "Sep", "", "Nov", ""}
)
