package calendar

import "time"

// Grid is a full-week aligned calendar for one year: columns are weeks
// starting on Sunday, rows are weekdays (Sunday=0).
type Grid struct {
	Year  int
	Start time.Time // Sunday on or before Jan 1
	End   time.Time // Saturday on or after Dec 31
	Weeks int

	// MonthStarts holds the week column of the first day of each month
	MonthStarts [12]int
}

// Cell is a single day of a Grid
type Cell struct {
	Date    time.Time
	Key     string
	Week    int
	Weekday int
	InYear  bool
}

// YearGrid builds the grid bracketing the given calendar year
func YearGrid(year int) Grid {
	start := SundayOnOrBefore(Date(year, time.January, 1))
	end := SaturdayOnOrAfter(Date(year, time.December, 31))

	g := Grid{
		Year:  year,
		Start: start,
		End:   end,
		Weeks: WeekIndexFromSundayStart(end, start) + 1,
	}
	for m := 0; m < 12; m++ {
		g.MonthStarts[m] = WeekIndexFromSundayStart(Date(year, time.Month(m+1), 1), start)
	}
	return g
}

// Cells returns every day of the grid in date order, including the
// padding days before Jan 1 and after Dec 31 (InYear=false)
func (g Grid) Cells() []Cell {
	days := LocalDayNumber(g.End) - LocalDayNumber(g.Start) + 1
	cells := make([]Cell, 0, days)
	for d := g.Start; !d.After(g.End); d = d.AddDate(0, 0, 1) {
		cells = append(cells, Cell{
			Date:    d,
			Key:     FormatDateKey(d),
			Week:    WeekIndexFromSundayStart(d, g.Start),
			Weekday: int(d.Weekday()),
			InYear:  d.Year() == g.Year,
		})
	}
	return cells
}
