package models

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Joxx0r/devtoolhub/pkg/health"
	"github.com/Joxx0r/devtoolhub/pkg/tui"
	"github.com/Joxx0r/devtoolhub/pkg/tui/styles"
	"github.com/Joxx0r/devtoolhub/pkg/tui/widgets"
)

type ViewID string

const (
	ViewDashboard ViewID = "dashboard"
	ViewEvents    ViewID = "events"
)

type RootModel struct {
	width  int
	height int

	active ViewID

	dashboard DashboardModel
	events    EventLogModel

	last *tui.HealthSnapshot
}

// NewRootModel builds the top-level model. publish sends action requests
// onto the bus; the dashboard uses it for focus/start/open/refresh keys.
func NewRootModel(publish func(tui.ActionRequest) error) RootModel {
	return RootModel{
		active:    ViewDashboard,
		dashboard: NewDashboardModel(publish),
		events:    NewEventLogModel(),
	}
}

func (m RootModel) Init() tea.Cmd { return nil }

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.dashboard = m.dashboard.WithSize(v.Width, v.Height-4)
		var cmd tea.Cmd
		m.events, cmd = m.events.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch v.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.active == ViewEvents && m.eventsCapturesKeys() {
				break
			}
			return m, tea.Quit
		case "tab":
			if m.active == ViewDashboard {
				m.active = ViewEvents
			} else {
				m.active = ViewDashboard
			}
			return m, nil
		}

		var cmd tea.Cmd
		switch m.active {
		case ViewEvents:
			m.events, cmd = m.events.Update(msg)
		default:
			m.dashboard, cmd = m.dashboard.Update(msg)
		}
		return m, cmd
	case tui.HealthSnapshotMsg:
		m.last = &v.Snapshot
		m.dashboard = m.dashboard.WithSnapshot(v.Snapshot)
		return m, nil
	case tui.EventLogAppendMsg:
		m.events = m.events.Append(v.Entry)
		return m, nil
	}
	return m, nil
}

func (m RootModel) eventsCapturesKeys() bool {
	return m.events.searching
}

func (m RootModel) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	up, total := m.counts()
	header := widgets.NewHeader("devtoolhub").
		WithStatus(styles.IconSystem, fmt.Sprintf("%d/%d up", up, total), up == total && total > 0).
		WithWidth(width)

	var body string
	switch m.active {
	case ViewEvents:
		body = m.events.View()
	default:
		body = m.dashboard.View()
	}

	footer := widgets.NewFooter(m.keybinds()).WithWidth(width)

	return lipgloss.JoinVertical(lipgloss.Left, header.Render(), body, footer.Render())
}

func (m RootModel) keybinds() []widgets.Keybind {
	if m.active == ViewEvents {
		return []widgets.Keybind{
			{Key: "tab", Label: "dashboard"},
			{Key: "/", Label: "filter"},
			{Key: "c", Label: "clear"},
			{Key: "q", Label: "quit"},
		}
	}
	return []widgets.Keybind{
		{Key: "enter", Label: "focus"},
		{Key: "s", Label: "start"},
		{Key: "o", Label: "open url"},
		{Key: "r", Label: "refresh"},
		{Key: "tab", Label: "events"},
		{Key: "q", Label: "quit"},
	}
}

func (m RootModel) counts() (up, total int) {
	if m.last == nil {
		return 0, 0
	}
	total = len(m.last.Tools)
	for _, st := range m.last.Statuses {
		if st.Status == health.StatusUp {
			up++
		}
	}
	return up, total
}
