package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"strava-heatmaps/internal/palette"
)

// Colors
var (
	primaryColor   = lipgloss.Color(palette.MultiTypeColor) // Purple
	secondaryColor = lipgloss.Color(palette.StatHeatColor)  // Green
	errorColor     = lipgloss.Color("#EF4444")              // Red
	mutedColor     = lipgloss.Color("#6B7280")              // Gray
	textColor      = lipgloss.Color("#F9FAFB")              // Light gray
)

// Styles
var (
	// App chrome
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(primaryColor).
			Padding(0, 1).
			MarginBottom(1)

	// Navigation
	navStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginBottom(1)

	navActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	navInactiveStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	// Cards and boxes
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(textColor).
				MarginTop(1)

	// Metrics
	metricLabelStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	metricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(textColor)

	// Filter buttons
	buttonStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	buttonActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(textColor).
				Background(primaryColor).
				Padding(0, 1)

	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(palette.NeutralColor)).
				Padding(0, 1)

	// Table
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor).
				BorderBottom(true).
				BorderForeground(mutedColor).
				Padding(0, 1)

	tableRowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	tableSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Background(primaryColor).
				Foreground(textColor).
				Padding(0, 1)

	// Status
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	tooltipStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	// Help
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(secondaryColor)
)

// Helper functions

// RenderMetric renders a metric with label and value
func RenderMetric(label, value string) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		metricLabelStyle.Render(label+" "),
		metricValueStyle.Render(value),
	)
}

// RenderButton renders a toggle button. Disabled wins over active.
func RenderButton(label string, active, focused, disabled bool) string {
	style := buttonStyle
	switch {
	case disabled:
		style = buttonDisabledStyle
	case active:
		style = buttonActiveStyle
	}
	if focused {
		style = style.Underline(true)
	}
	return style.Render(label)
}

// RenderKeyHelp renders a key binding help item
func RenderKeyHelp(key, desc string) string {
	return helpKeyStyle.Render(key) + " " + helpDescStyle.Render(desc)
}

// termColor converts a "#rrggbb" or "rgb(r, g, b)" color to a lipgloss color
func termColor(c string) lipgloss.Color {
	if strings.HasPrefix(c, "rgb(") {
		if rgb, ok := palette.ParseRGB(c); ok {
			return lipgloss.Color(rgb.Hex())
		}
	}
	if c == "" {
		return lipgloss.Color(palette.NeutralColor)
	}
	return lipgloss.Color(c)
}
