package calendar

import (
	"fmt"
	"time"
)

const (
	daysPerWeek   = 7
	secondsPerDay = 24 * 60 * 60
	dateKeyLayout = "2006-01-02"
)

// Months holds the short month labels, January first
var Months = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Days holds the short weekday labels, Sunday first
var Days = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Date returns the civil date y-m-d as midnight UTC.
// All calendar arithmetic in this package works on civil dates, so the
// location of the value only matters for reading its y/m/d fields.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// civil strips the clock and location from t, keeping its calendar fields
func civil(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// SundayOnOrBefore returns the closest Sunday that is not after d
func SundayOnOrBefore(d time.Time) time.Time {
	c := civil(d)
	return c.AddDate(0, 0, -int(c.Weekday()))
}

// SaturdayOnOrAfter returns the closest Saturday that is not before d
func SaturdayOnOrAfter(d time.Time) time.Time {
	c := civil(d)
	offset := (int(time.Saturday) - int(c.Weekday()) + daysPerWeek) % daysPerWeek
	return c.AddDate(0, 0, offset)
}

// LocalDayNumber returns the number of days since 1970-01-01 for the
// calendar fields of d. Two dates on consecutive calendar days always
// differ by exactly one, regardless of DST transitions in d's location.
func LocalDayNumber(d time.Time) int {
	return floorDiv(int(civil(d).Unix()), secondsPerDay)
}

// WeekIndexFromSundayStart returns the zero-based week column of d in a
// grid whose first column starts on start
func WeekIndexFromSundayStart(d, start time.Time) int {
	return floorDiv(LocalDayNumber(d)-LocalDayNumber(start), daysPerWeek)
}

// WeekOfYear returns the 1-based week of d, counted from the Sunday on or
// before January 1st of d's year
func WeekOfYear(d time.Time) int {
	start := SundayOnOrBefore(Date(d.Year(), time.January, 1))
	return WeekIndexFromSundayStart(d, start) + 1
}

// FormatDateKey formats d as YYYY-MM-DD using its own calendar fields
func FormatDateKey(d time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year(), int(d.Month()), d.Day())
}

// ParseDateKey parses a YYYY-MM-DD key into a civil date.
// It reports false for anything that is not a valid calendar date.
func ParseDateKey(key string) (time.Time, bool) {
	if len(key) != len(dateKeyLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(dateKeyLayout, key)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StartOfYear returns January 1st of d's year
func StartOfYear(d time.Time) time.Time {
	return Date(d.Year(), time.January, 1)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
