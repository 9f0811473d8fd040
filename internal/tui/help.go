package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Keyboard Shortcuts")
	sections = append(sections, title)

	sections = append(sections, m.renderSection("Navigation", []keyHelp{
		{"1", "Heatmaps"},
		{"2", "Activity frequency"},
		{"3", "Cached snapshots"},
		{"?", "Help (this screen)"},
		{"q", "Quit"},
		{"esc", "Back / close help"},
	}))

	sections = append(sections, m.renderSection("Heatmaps", []keyHelp{
		{"tab", "Focus types, years or year cards"},
		{"h / l", "Move along the focused row, or a week on a card"},
		{"j / k", "Move a day on a card, otherwise scroll"},
		{"space", "Toggle the focused type or year"},
		{"c", "Clear the focused filter"},
		{"t / y", "Open the type or year menu"},
		{"[ / ]", "Previous / next year card"},
		{"m", "Cycle the card's color metric"},
	}))

	sections = append(sections, m.renderSection("Filter Menus", []keyHelp{
		{"j / k", "Move cursor"},
		{"space", "Toggle entry"},
		{"enter", "Apply selection"},
		{"esc", "Cancel"},
	}))

	sections = append(sections, m.renderSection("Activity Frequency", []keyHelp{
		{"tab", "Focus facts, metrics or matrix"},
		{"space", "Filter by fact / weight by metric"},
		{"v", "Next panel: day, month, hour"},
		{"h/j/k/l", "Move through the matrix"},
	}))

	sections = append(sections, m.renderSection("Snapshots", []keyHelp{
		{"enter", "Show the selected snapshot"},
		{"r", "Refresh list"},
	}))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, helpSectionStyle.Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}
