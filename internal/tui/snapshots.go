package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"strava-heatmaps/internal/store"
)

// SnapshotsModel lists the cached payload snapshots
type SnapshotsModel struct {
	store     *store.Store
	snapshots []store.Snapshot
	cursor    int
	loading   bool
	err       error

	// lastFailure is the error of the most recent failed fetch, if any
	lastFailure string
}

// NewSnapshotsModel creates a new snapshots model. A nil store shows the
// cache as disabled.
func NewSnapshotsModel(s *store.Store) SnapshotsModel {
	return SnapshotsModel{store: s, loading: s != nil}
}

// Init initializes the snapshots screen
func (m SnapshotsModel) Init() tea.Cmd {
	if m.store == nil {
		return nil
	}
	return m.loadSnapshots
}

type snapshotsLoadedMsg struct {
	snapshots   []store.Snapshot
	lastFailure string
	err         error
}

// OpenSnapshotMsg asks the app to show a cached snapshot
type OpenSnapshotMsg struct {
	ID string
}

func (m SnapshotsModel) loadSnapshots() tea.Msg {
	snapshots, err := m.store.ListSnapshots(50)
	if err != nil {
		return snapshotsLoadedMsg{err: err}
	}
	failure, err := m.store.GetSyncState(store.StateLastFailure)
	return snapshotsLoadedMsg{snapshots: snapshots, lastFailure: failure, err: err}
}

// Update handles messages
func (m SnapshotsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.snapshots = msg.snapshots
		m.lastFailure = msg.lastFailure
		m.cursor = clamp(m.cursor, len(m.snapshots))

	case tea.KeyMsg:
		if m.store == nil {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.snapshots)-1 {
				m.cursor++
			}
		case "r":
			m.loading = true
			return m, m.loadSnapshots
		case "enter":
			if m.cursor < len(m.snapshots) {
				id := m.snapshots[m.cursor].ID
				return m, func() tea.Msg {
					return OpenSnapshotMsg{ID: id}
				}
			}
		}
	}
	return m, nil
}

// View renders the snapshot list
func (m SnapshotsModel) View() string {
	if m.store == nil {
		return "\n  Snapshot cache is disabled. Set cache.enabled in the config to keep history."
	}
	if m.loading {
		return "\n  Loading snapshots..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	var sections []string
	if m.lastFailure != "" {
		sections = append(sections, errorStyle.Render("  Last failed fetch: "+truncate(m.lastFailure, 80)))
	}
	if len(m.snapshots) == 0 {
		sections = append(sections, "\n  No snapshots cached yet.")
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections, cardTitleStyle.Render(fmt.Sprintf("Snapshots (%d)", len(m.snapshots))))

	header := tableHeaderStyle.Render(fmt.Sprintf("   %-16s  %10s  %5s  %5s  %-30s",
		"Fetched", "Activities", "Types", "Years", "Source"))
	sections = append(sections, header)

	for i, s := range m.snapshots {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		row := fmt.Sprintf("%s%-16s  %10s  %5d  %5d  %-30s",
			cursor,
			humanize.Time(s.FetchedAt),
			humanize.Comma(int64(s.ActivityCount)),
			s.TypeCount,
			s.YearCount,
			truncate(s.Source, 30),
		)

		if i == m.cursor {
			sections = append(sections, tableSelectedStyle.Render(row))
		} else {
			sections = append(sections, tableRowStyle.Render(row))
		}
	}

	help := statusStyle.Render("\n  enter: show snapshot  j/k: navigate  r: refresh")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
