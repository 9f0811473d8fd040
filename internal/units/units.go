// Package units formats distances, durations and elevations for display
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"strava-heatmaps/internal/payload"
)

const (
	metersPerMile = 1609.344
	metersPerKm   = 1000.0
	feetPerMeter  = 3.28084
)

// Units formats values in the payload's unit system
type Units struct {
	distance  string
	elevation string
}

// New creates a Units for the given payload units. Anything other than
// km/m falls back to mi/ft.
func New(u payload.Units) Units {
	out := Units{distance: "mi", elevation: "ft"}
	if u.Distance == "km" {
		out.distance = "km"
	}
	if u.Elevation == "m" {
		out.elevation = "m"
	}
	return out
}

// Distance converts meters into the display unit
func (u Units) Distance(meters float64) float64 {
	if u.distance == "km" {
		return meters / metersPerKm
	}
	return meters / metersPerMile
}

// Elevation converts meters into the display unit
func (u Units) Elevation(meters float64) float64 {
	if u.elevation == "m" {
		return meters
	}
	return meters * feetPerMeter
}

// FormatDistance formats meters with one decimal and digit grouping
func (u Units) FormatDistance(meters float64) string {
	return fmt.Sprintf("%s %s", FormatNumber(u.Distance(meters), 1), u.distance)
}

// FormatCellDistance is the two-decimal variant used in calendar tooltips
func (u Units) FormatCellDistance(meters float64) string {
	return fmt.Sprintf("%.2f %s", u.Distance(meters), u.distance)
}

// FormatElevation formats meters as a rounded, grouped elevation
func (u Units) FormatElevation(meters float64) string {
	return fmt.Sprintf("%s %s", FormatNumber(math.Round(u.Elevation(meters)), 0), u.elevation)
}

// FormatCellElevation is the ungrouped variant used in calendar tooltips
func (u Units) FormatCellElevation(meters float64) string {
	return fmt.Sprintf("%d %s", int64(math.Round(u.Elevation(meters))), u.elevation)
}

// FormatDuration formats seconds as "Xh Ym", or "Ym" under an hour.
// Minutes are rounded before splitting into hours.
func FormatDuration(seconds float64) string {
	minutes := int64(math.Round(seconds / 60))
	if minutes >= 60 {
		return fmt.Sprintf("%sh %dm", humanize.Comma(minutes/60), minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatCellDuration is FormatDuration without grouping the hours
func FormatCellDuration(seconds float64) string {
	minutes := int64(math.Round(seconds / 60))
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatCount formats an integer with digit grouping
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatNumber rounds v to digits decimals and groups the integer part
func FormatNumber(v float64, digits int) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', digits, 64)
	whole, frac, _ := strings.Cut(s, ".")

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return strconv.FormatFloat(v, 'f', digits, 64)
	}

	out := humanize.Comma(n)
	if frac != "" {
		out += "." + frac
	}
	if v < 0 && strings.Trim(s, "0.") != "" {
		out = "-" + out
	}
	return out
}

// HourLabel renders an hour of day as 12a, 1a ... 11p
func HourLabel(hour int) string {
	suffix := "a"
	if hour >= 12 {
		suffix = "p"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d%s", h, suffix)
}

// HourTooltipLabel renders "7a (7:00)"
func HourTooltipLabel(hour int) string {
	return fmt.Sprintf("%s (%d:00)", HourLabel(hour), hour)
}
