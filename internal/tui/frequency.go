package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"strava-heatmaps/internal/service"
)

// freqFocus is the row of the frequency screen receiving cursor keys
type freqFocus int

const (
	freqFocusFacts freqFocus = iota
	freqFocusMetrics
	freqFocusMatrix
)

// matrix panels in display order
const (
	panelDay = iota
	panelMonth
	panelHour
	panelCount
)

// FrequencyModel is the activity frequency screen model
type FrequencyModel struct {
	session *service.Session
	view    service.View

	viewport viewport.Model
	ready    bool

	focus        freqFocus
	factCursor   int
	metricCursor int
	panel        int
	row          int
	col          int
}

// NewFrequencyModel creates a new frequency model
func NewFrequencyModel(s *service.Session, width, height int) FrequencyModel {
	m := FrequencyModel{session: s}
	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-chromeHeight)
		m.ready = true
	}
	m.refresh()
	return m
}

// Init initializes the frequency screen
func (m FrequencyModel) Init() tea.Cmd {
	return nil
}

// card is the frequency card of the single rendered section
func (m FrequencyModel) card() (service.FrequencyCard, bool) {
	if len(m.view.Sections) == 0 {
		return service.FrequencyCard{}, false
	}
	return m.view.Sections[0].Frequency, true
}

func (m FrequencyModel) matrix() service.MatrixView {
	card, _ := m.card()
	switch m.panel {
	case panelMonth:
		return card.Month
	case panelHour:
		return card.Hour
	}
	return card.Day
}

func (m *FrequencyModel) refresh() {
	m.view = m.session.View()
	card, _ := m.card()
	m.factCursor = clamp(m.factCursor, len(card.Facts))
	m.metricCursor = clamp(m.metricCursor, len(card.Metrics))

	mx := m.matrix()
	m.row = clamp(m.row, len(mx.Cells))
	if len(mx.Cells) > 0 {
		m.col = clamp(m.col, len(mx.Cells[m.row]))
	} else {
		m.col = 0
	}

	if m.ready {
		m.viewport.SetContent(m.renderContent())
	}
}

// Update handles messages
func (m FrequencyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chromeHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chromeHeight
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.updateKeys(msg.String()) {
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *FrequencyModel) updateKeys(key string) bool {
	card, ok := m.card()
	if !ok || card.Empty {
		return false
	}

	switch key {
	case "tab":
		m.focus = (m.focus + 1) % 3
	case "shift+tab":
		m.focus = (m.focus + 2) % 3
	case "v":
		m.panel = (m.panel + 1) % panelCount
	case "left", "h":
		m.move(-1)
	case "right", "l":
		m.move(1)
	case "up", "k":
		if m.focus != freqFocusMatrix {
			return false
		}
		m.row--
	case "down", "j":
		if m.focus != freqFocusMatrix {
			return false
		}
		m.row++
	case " ", "enter":
		switch m.focus {
		case freqFocusFacts:
			if len(card.Facts) > 0 {
				m.session.ToggleFact(card.Facts[m.factCursor].Key)
			}
		case freqFocusMetrics:
			if len(card.Metrics) > 0 {
				m.session.ToggleMetric(card.Metrics[m.metricCursor].Metric)
			}
		default:
			return false
		}
	default:
		return false
	}
	return true
}

func (m *FrequencyModel) move(delta int) {
	switch m.focus {
	case freqFocusFacts:
		m.factCursor += delta
	case freqFocusMetrics:
		m.metricCursor += delta
	case freqFocusMatrix:
		m.col += delta
	}
}

// View renders the frequency screen
func (m FrequencyModel) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	parts := []string{m.viewport.View()}
	if m.focus == freqFocusMatrix {
		mx := m.matrix()
		if m.row < len(mx.Cells) && m.col < len(mx.Cells[m.row]) {
			parts = append(parts, renderTooltip(mx.Cells[m.row][m.col].Tooltip))
		}
	}
	parts = append(parts, statusStyle.Render("tab: focus  h/l: move  space: toggle  v: next panel  j/k: matrix row"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m FrequencyModel) renderContent() string {
	if len(m.view.Sections) == 0 {
		return metricLabelStyle.Render("\n  No activity types selected.")
	}
	sec := m.view.Sections[0]
	card := sec.Frequency

	title := sectionTitleStyle.Render(fmt.Sprintf("%s · %s", card.Title, sec.Title))
	if card.Empty {
		return lipgloss.JoinVertical(lipgloss.Left, title, cardStyle.Render(metricLabelStyle.Render(card.EmptyMessage)))
	}

	var facts []string
	for i, f := range card.Facts {
		label := fmt.Sprintf("%s: %s", f.Label, f.Value)
		facts = append(facts, RenderButton(label, f.Active, m.focus == freqFocusFacts && i == m.factCursor, !f.Filterable))
	}
	var metrics []string
	for i, item := range card.Metrics {
		label := fmt.Sprintf("%s: %s", item.Label, item.Value)
		metrics = append(metrics, RenderButton(label, item.Active, m.focus == freqFocusMetrics && i == m.metricCursor, !item.Filterable))
	}

	cursorRow := -1
	if m.focus == freqFocusMatrix {
		cursorRow = m.row
	}

	var panel string
	if m.panel == panelHour && card.HourFallback != "" {
		panel = lipgloss.JoinVertical(lipgloss.Left, cardTitleStyle.Render(card.Hour.Title), metricLabelStyle.Render(card.HourFallback))
	} else {
		panel = renderMatrix(m.matrix(), cursorRow, m.col)
	}

	parts := []string{
		title,
		lipgloss.JoinVertical(lipgloss.Left, facts...),
		lipgloss.JoinHorizontal(lipgloss.Top, metrics...),
		cardStyle.BorderForeground(termColor(card.Color)).Render(panel),
	}
	if chart := renderWeekly(card.Weekly); chart != "" {
		parts = append(parts, cardStyle.Render(chart))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
