package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"strava-heatmaps/internal/aggregate"
	"strava-heatmaps/internal/calendar"
	"strava-heatmaps/internal/service"
)

// focusArea is the part of the dashboard receiving cursor keys
type focusArea int

const (
	focusTypes focusArea = iota
	focusYears
	focusCards
)

// DashboardModel is the heatmap screen model
type DashboardModel struct {
	session *service.Session
	view    service.View

	viewport viewport.Model
	ready    bool
	width    int
	height   int

	focus      focusArea
	typeCursor int
	yearCursor int
	menuCursor int

	// cardCursor indexes the flattened year cards; day is the focused date
	cardCursor int
	day        time.Time
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(s *service.Session, width, height int) DashboardModel {
	m := DashboardModel{session: s, width: width, height: height}
	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-chromeHeight)
		m.ready = true
	}
	m.refresh()
	return m
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// refresh re-renders the session and keeps every cursor in range
func (m *DashboardModel) refresh() {
	m.view = m.session.View()
	m.typeCursor = clamp(m.typeCursor, len(m.view.TypeFilter.Options))
	m.yearCursor = clamp(m.yearCursor, len(m.view.YearFilter.Options))
	if m.view.Menu != nil {
		m.menuCursor = clamp(m.menuCursor, len(m.view.Menu.Options))
	} else {
		m.menuCursor = 0
	}

	cards := m.cards()
	m.cardCursor = clamp(m.cardCursor, len(cards))
	if len(cards) > 0 {
		year := cards[m.cardCursor].Year
		if m.day.IsZero() || m.day.Year() != year {
			m.day = calendar.Date(year, time.January, 1)
		}
	}

	if m.ready {
		m.viewport.SetContent(m.renderContent())
	}
}

// cards flattens every section's year cards
func (m DashboardModel) cards() []service.YearCard {
	var cards []service.YearCard
	for _, sec := range m.view.Sections {
		cards = append(cards, sec.Years...)
	}
	return cards
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
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
		if m.view.Menu != nil && m.updateMenu(msg.String()) {
			m.refresh()
			return m, nil
		}
		if m.updateKeys(msg.String()) {
			m.refresh()
			return m, nil
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// updateMenu handles keys while a filter menu is open. It reports whether
// the key was consumed.
func (m *DashboardModel) updateMenu(key string) bool {
	options := m.view.Menu.Options
	switch key {
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(options)-1 {
			m.menuCursor++
		}
	case " ", "x":
		if m.menuCursor == 0 {
			m.session.MenuToggleAll()
			break
		}
		value := options[m.menuCursor].Value
		if m.view.Menu.Kind == service.MenuTypes {
			m.session.MenuToggleType(value)
		} else if year, err := strconv.Atoi(value); err == nil {
			m.session.MenuToggleYear(year)
		}
	case "enter":
		m.session.MenuDone()
	case "esc":
		m.session.MenuDiscard()
	default:
		return false
	}
	return true
}

// updateKeys handles dashboard keys outside a menu
func (m *DashboardModel) updateKeys(key string) bool {
	switch key {
	case "tab":
		m.focus = (m.focus + 1) % 3
	case "shift+tab":
		m.focus = (m.focus + 2) % 3
	case "t":
		m.session.OpenTypeMenu()
		m.menuCursor = 0
	case "y":
		m.session.OpenYearMenu()
		m.menuCursor = 0
	case "c":
		switch m.focus {
		case focusTypes:
			m.session.ClearTypes()
		case focusYears:
			m.session.ClearYears()
		default:
			return false
		}
	case " ", "enter":
		return m.toggleFocused()
	case "m":
		return m.cycleYearMetric()
	case "[":
		if m.focus == focusCards && m.cardCursor > 0 {
			m.cardCursor--
		}
	case "]":
		if m.focus == focusCards {
			m.cardCursor++
		}
	case "left", "h":
		m.move(-1)
	case "right", "l":
		m.move(1)
	case "up", "k":
		if m.focus != focusCards {
			return false
		}
		m.moveDay(-1)
	case "down", "j":
		if m.focus != focusCards {
			return false
		}
		m.moveDay(1)
	default:
		return false
	}
	return true
}

// move steps the cursor of the focused row; on cards it moves by week
func (m *DashboardModel) move(delta int) {
	switch m.focus {
	case focusTypes:
		m.typeCursor = clamp(m.typeCursor+delta, len(m.view.TypeFilter.Options))
	case focusYears:
		m.yearCursor = clamp(m.yearCursor+delta, len(m.view.YearFilter.Options))
	case focusCards:
		m.moveDay(7 * delta)
	}
}

// moveDay moves the day cursor, staying inside the focused card's year
func (m *DashboardModel) moveDay(days int) {
	if m.day.IsZero() {
		return
	}
	next := m.day.AddDate(0, 0, days)
	if next.Year() == m.day.Year() {
		m.day = next
	}
}

func (m *DashboardModel) toggleFocused() bool {
	switch m.focus {
	case focusTypes:
		options := m.view.TypeFilter.Options
		if len(options) == 0 {
			return false
		}
		m.session.ToggleType(options[m.typeCursor].Value)
	case focusYears:
		options := m.view.YearFilter.Options
		if len(options) == 0 {
			return false
		}
		if options[m.yearCursor].Value == service.AllKey {
			m.session.ToggleAllYears()
		} else if year, err := strconv.Atoi(options[m.yearCursor].Value); err == nil {
			m.session.ToggleYear(year)
		}
	default:
		return false
	}
	return true
}

// cycleYearMetric advances the focused card's metric through the
// filterable ones and back to none
func (m *DashboardModel) cycleYearMetric() bool {
	cards := m.cards()
	if m.focus != focusCards || len(cards) == 0 {
		return false
	}
	card := cards[m.cardCursor]
	if card.Empty {
		return false
	}

	var filterable []aggregate.Metric
	active := -1
	for _, item := range card.Metrics {
		if !item.Filterable {
			continue
		}
		if item.Active {
			active = len(filterable)
		}
		filterable = append(filterable, item.Metric)
	}
	if len(filterable) == 0 {
		return false
	}

	switch {
	case active < 0:
		m.session.ToggleYearMetric(card.Type, card.Year, filterable[0])
	case active == len(filterable)-1:
		m.session.ToggleYearMetric(card.Type, card.Year, filterable[active])
	default:
		m.session.ToggleYearMetric(card.Type, card.Year, filterable[active+1])
	}
	return true
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if !m.ready {
		return "\n  Loading dashboard..."
	}

	parts := []string{m.renderFilters()}
	if m.view.Menu != nil {
		parts = append(parts, m.renderMenu())
	}
	parts = append(parts, m.viewport.View())
	if tip := m.focusedTooltip(); tip != "" {
		parts = append(parts, renderTooltip(tip))
	}
	parts = append(parts, statusStyle.Render(m.helpLine()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m DashboardModel) helpLine() string {
	if m.view.Menu != nil {
		return "j/k: move  space: toggle  enter: apply  esc: cancel"
	}
	return "tab: focus  h/l: move  space: toggle  c: clear  t/y: menus  [/]: card  m: metric"
}

func (m DashboardModel) renderFilters() string {
	row := func(title string, f service.FilterView, cursor int, focused bool) string {
		buttons := []string{metricLabelStyle.Render(title)}
		for i, o := range f.Options {
			buttons = append(buttons, RenderButton(o.Label, o.Active, focused && i == cursor, false))
		}
		label := f.Label.Full
		if f.Label.Short != "" && lipgloss.Width(label) > 30 {
			label = f.Label.Short
		}
		buttons = append(buttons, metricLabelStyle.Render("  "+label))
		buttons = append(buttons, RenderButton("Clear", false, false, f.ClearDisabled))
		return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
	}

	lines := []string{
		row("Types ", m.view.TypeFilter, m.typeCursor, m.focus == focusTypes),
		row("Years ", m.view.YearFilter, m.yearCursor, m.focus == focusYears),
	}
	if m.view.Updated != "" {
		lines = append(lines, metricLabelStyle.Render(m.view.Updated))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m DashboardModel) renderMenu() string {
	title := "Activity types"
	if m.view.Menu.Kind == service.MenuYears {
		title = "Years"
	}

	lines := []string{cardTitleStyle.Render(title)}
	for i, o := range m.view.Menu.Options {
		check := "[ ]"
		if o.Active {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s", check, o.Label)
		if i == m.menuCursor {
			lines = append(lines, tableSelectedStyle.Render(line))
		} else {
			lines = append(lines, tableRowStyle.Render(line))
		}
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderContent is the scrollable part: summary and every year card
func (m DashboardModel) renderContent() string {
	sections := []string{m.renderSummary()}

	if len(m.view.Sections) == 0 {
		sections = append(sections, metricLabelStyle.Render("\n  No activity types selected."))
	}

	index := 0
	for _, sec := range m.view.Sections {
		accent := lipgloss.NewStyle().Foreground(termColor(sec.Accent))
		sections = append(sections, sectionTitleStyle.Render(accent.Render("● ")+sec.Title))
		for _, card := range sec.Years {
			sections = append(sections, m.renderYearCard(card, index == m.cardCursor && m.focus == focusCards))
			index++
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderSummary() string {
	var cards []string
	for _, c := range m.view.Summary.Cards {
		cards = append(cards, cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			metricLabelStyle.Render(c.Title), metricValueStyle.Render(c.Value))))
	}
	streaks := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		metricLabelStyle.Render("Streaks"),
		RenderMetric("Longest", strconv.Itoa(m.view.Summary.Streaks.Longest)),
		RenderMetric("Latest", strconv.Itoa(m.view.Summary.Streaks.Latest))))
	cards = append(cards, streaks)

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, cards...)}

	if len(m.view.Summary.TypeCards) > 0 {
		var types []string
		for _, tc := range m.view.Summary.TypeCards {
			accent := lipgloss.NewStyle().Foreground(termColor(tc.Accent))
			label := accent.Render("■ ") + tc.Title + " " + metricValueStyle.Render(tc.Value)
			if tc.Active {
				types = append(types, buttonActiveStyle.Render(label))
			} else {
				types = append(types, buttonStyle.Render(label))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, types...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m DashboardModel) renderYearCard(card service.YearCard, focused bool) string {
	style := cardStyle
	if focused {
		style = style.BorderForeground(primaryColor)
	}

	title := cardTitleStyle.Render(fmt.Sprintf("%d", card.Year))
	if card.Empty {
		return style.Render(lipgloss.JoinVertical(lipgloss.Left,
			title, metricLabelStyle.Render(service.EmptyCardLabel+": "+card.EmptyMessage)))
	}

	cursor := ""
	if focused {
		cursor = calendar.FormatDateKey(m.day)
	}

	var stats []string
	for _, s := range card.Stats {
		stats = append(stats, RenderMetric(s.Title, s.Value))
	}
	var metrics []string
	for _, item := range card.Metrics {
		metrics = append(metrics, RenderButton(item.Label, item.Active, false, !item.Filterable))
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		renderCalendar(card, cursor),
		"",
		strings.Join(stats, "   "),
		lipgloss.JoinHorizontal(lipgloss.Top, metrics...),
	))
}

// focusedTooltip is the tooltip of the day under the cursor
func (m DashboardModel) focusedTooltip() string {
	cards := m.cards()
	if m.focus != focusCards || len(cards) == 0 {
		return ""
	}
	key := calendar.FormatDateKey(m.day)
	for _, c := range cards[m.cardCursor].Cells {
		if c.Key == key && c.InYear {
			return c.Tooltip
		}
	}
	return ""
}

// clamp keeps a cursor inside [0, n)
func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
