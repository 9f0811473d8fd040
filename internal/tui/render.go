package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"strava-heatmaps/internal/calendar"
	"strava-heatmaps/internal/palette"
	"strava-heatmaps/internal/service"
)

const (
	dayGlyph    = "■"
	matrixGlyph = "██"
)

// weekdayLabels labels every other row of a calendar
var weekdayLabels = [7]string{"", "Mon", "", "Wed", "", "Fri", ""}

// renderCalendar draws a year card's cells as 7 weekday rows by week
// columns. The cell with key cursor is highlighted.
func renderCalendar(card service.YearCard, cursor string) string {
	weeks := card.Grid.Weeks
	rows := make([][]string, 7)
	for i := range rows {
		rows[i] = make([]string, weeks)
		for w := range rows[i] {
			rows[i][w] = "  "
		}
	}

	for _, c := range card.Cells {
		if c.Week < 0 || c.Week >= weeks || !c.InYear {
			continue
		}
		rows[c.Weekday][c.Week] = renderDayCell(c, c.Key == cursor)
	}

	lines := []string{"    " + monthHeader(card.Grid)}
	for d, cells := range rows {
		lines = append(lines, fmt.Sprintf("%-4s", weekdayLabels[d])+strings.Join(cells, ""))
	}
	return strings.Join(lines, "\n")
}

func renderDayCell(c service.DayCell, selected bool) string {
	style := lipgloss.NewStyle().Foreground(termColor(c.Color))
	glyph := dayGlyph

	// Terminals can't paint gradients; show two of the shares instead
	if c.Count > 0 && c.Background.Kind != palette.BackgroundFlat && !strings.HasPrefix(c.Color, "rgb(") {
		style = lipgloss.NewStyle().
			Foreground(termColor(c.Background.Colors[0])).
			Background(termColor(c.Background.Colors[1]))
		glyph = "▚"
	}
	if selected {
		style = style.Reverse(true)
	}
	return style.Render(glyph) + " "
}

// monthHeader places month names over the week column they start in,
// skipping names that would overlap the previous one
func monthHeader(g calendar.Grid) string {
	header := []rune(strings.Repeat(" ", g.Weeks*2))
	next := 0
	for m, week := range g.MonthStarts {
		pos := week * 2
		name := []rune(calendar.Months[m])
		if pos < next || pos+len(name) > len(header) {
			continue
		}
		copy(header[pos:], name)
		next = pos + len(name) + 1
	}
	return string(header)
}

// renderMatrix draws a frequency matrix with years as rows. A negative
// cursor row disables the highlight.
func renderMatrix(m service.MatrixView, cursorRow, cursorCol int) string {
	var header strings.Builder
	header.WriteString("      ")
	for _, label := range m.Columns {
		header.WriteString(fmt.Sprintf("%-3s", truncate(label, 3)))
	}

	lines := []string{cardTitleStyle.Render(m.Title), metricLabelStyle.Render(header.String())}
	for r, cells := range m.Cells {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%-6s", strconv.Itoa(m.Rows[r])))
		for c, cell := range cells {
			style := lipgloss.NewStyle().Foreground(termColor(cell.Color))
			if r == cursorRow && c == cursorCol {
				style = style.Reverse(true)
			}
			row.WriteString(style.Render(matrixGlyph) + " ")
		}
		lines = append(lines, row.String())
	}
	return strings.Join(lines, "\n")
}

// renderWeekly plots the weekly totals of a frequency card. Nothing is
// drawn when every week is zero.
func renderWeekly(weekly []float64) string {
	peak := 0.0
	for _, v := range weekly {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		return ""
	}
	return asciigraph.Plot(weekly,
		asciigraph.Height(6),
		asciigraph.Width(len(weekly)),
		asciigraph.Precision(0),
		asciigraph.Caption("Weekly totals"),
	)
}

// renderTooltip boxes a multi-line tooltip
func renderTooltip(text string) string {
	if text == "" {
		return ""
	}
	return tooltipStyle.Render(text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
