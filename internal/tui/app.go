package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"strava-heatmaps/internal/payload"
	"strava-heatmaps/internal/service"
	"strava-heatmaps/internal/store"
)

// chromeHeight is the space reserved for header, nav, filters and footer
const chromeHeight = 12

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenFrequency
	ScreenSnapshots
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	dashboard DashboardModel
	frequency FrequencyModel
	snapshots SnapshotsModel
	help      HelpModel

	// Services
	session *service.Session
	store   *store.Store
	options []service.Option

	// Window dimensions
	width  int
	height int

	// Status message
	status string
}

// NewApp creates a new App. st may be nil when the cache is disabled;
// opts are reused when switching to a cached snapshot.
func NewApp(session *service.Session, st *store.Store, status string, opts ...service.Option) *App {
	return &App{
		screen:    ScreenDashboard,
		session:   session,
		store:     st,
		options:   opts,
		status:    status,
		dashboard: NewDashboardModel(session, 0, 0),
		frequency: NewFrequencyModel(session, 0, 0),
		snapshots: NewSnapshotsModel(st),
		help:      NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "1":
			a.screen = ScreenDashboard
			a.dashboard.refresh()
			return a, nil
		case "2":
			a.session.MenuDiscard()
			a.screen = ScreenFrequency
			a.frequency.refresh()
			return a, nil
		case "3":
			a.session.MenuDiscard()
			a.screen = ScreenSnapshots
			return a, a.snapshots.Init()
		case "?":
			a.prevScreen = a.screen
			a.screen = ScreenHelp
			return a, nil
		case "esc":
			if a.screen == ScreenHelp {
				a.screen = a.prevScreen
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Every screen with a viewport needs the size, not just the current one
		d, _ := a.dashboard.Update(msg)
		a.dashboard = d.(DashboardModel)
		f, _ := a.frequency.Update(msg)
		a.frequency = f.(FrequencyModel)
		return a, nil

	case OpenSnapshotMsg:
		a.openSnapshot(msg.ID)
		return a, nil
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenDashboard:
		var m tea.Model
		m, cmd = a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
	case ScreenFrequency:
		var m tea.Model
		m, cmd = a.frequency.Update(msg)
		a.frequency = m.(FrequencyModel)
	case ScreenSnapshots:
		var m tea.Model
		m, cmd = a.snapshots.Update(msg)
		a.snapshots = m.(SnapshotsModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// openSnapshot replaces the session with one over a cached payload
func (a *App) openSnapshot(id string) {
	snap, err := a.store.GetSnapshot(id)
	if err != nil {
		a.status = fmt.Sprintf("Error loading snapshot: %v", err)
		return
	}
	p, err := payload.Parse(snap.Body)
	if err != nil {
		log.WithError(err).WithField("snapshot", id).Error("cached snapshot is unreadable")
		a.status = payload.Unavailable(err)
		return
	}

	a.session = service.NewSession(p, a.options...)
	a.dashboard = NewDashboardModel(a.session, a.width, a.height)
	a.frequency = NewFrequencyModel(a.session, a.width, a.height)
	a.screen = ScreenDashboard
	a.status = fmt.Sprintf("Showing snapshot fetched %s from %s", snap.FetchedAt.Local().Format(service.UpdatedLayout), snap.Source)
	log.WithField("snapshot", id).Info("switched to cached snapshot")
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenFrequency:
		content = a.frequency.View()
	case ScreenSnapshots:
		content = a.snapshots.View()
	case ScreenHelp:
		content = a.help.View()
	}

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content, footer)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("Activity Heatmaps")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Heatmaps", ScreenDashboard},
		{"2", "Frequency", ScreenFrequency},
		{"3", "Snapshots", ScreenSnapshots},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

func (a *App) renderFooter() string {
	if a.status != "" {
		return statusStyle.Render(a.status)
	}
	return ""
}
