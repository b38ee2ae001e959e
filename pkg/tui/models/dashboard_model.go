package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Joxx0r/devtoolhub/pkg/health"
	"github.com/Joxx0r/devtoolhub/pkg/tui"
	"github.com/Joxx0r/devtoolhub/pkg/tui/styles"
	"github.com/Joxx0r/devtoolhub/pkg/tui/widgets"
)

// DashboardModel is the tool table view. Actions on the selected tool are
// published to the bus; the action runner executes them out of band and the
// outcome arrives back through the event log.
type DashboardModel struct {
	width  int
	height int

	last   *tui.HealthSnapshot
	cursor int

	// pendingStart holds the tool name awaiting y/n confirmation after
	// "s" was pressed on a tool that is currently up.
	pendingStart string

	publish func(tui.ActionRequest) error
}

func NewDashboardModel(publish func(tui.ActionRequest) error) DashboardModel {
	return DashboardModel{publish: publish}
}

func (m DashboardModel) WithSize(width, height int) DashboardModel {
	m.width, m.height = width, height
	return m
}

func (m DashboardModel) WithSnapshot(s tui.HealthSnapshot) DashboardModel {
	m.last = &s
	if m.cursor >= len(s.Tools) {
		m.cursor = maxInt(0, len(s.Tools)-1)
	}
	return m
}

func (m DashboardModel) selected() (tui.ToolSummary, health.ToolStatus, bool) {
	if m.last == nil || m.cursor < 0 || m.cursor >= len(m.last.Tools) {
		return tui.ToolSummary{}, health.ToolStatus{}, false
	}
	t := m.last.Tools[m.cursor]
	return t, m.last.Statuses[t.Name], true
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.pendingStart != "" {
		name := m.pendingStart
		m.pendingStart = ""
		if key.String() == "y" {
			m.send(tui.ActionStart, name)
		}
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.last != nil && m.cursor < len(m.last.Tools)-1 {
			m.cursor++
		}
	case "enter":
		if t, _, ok := m.selected(); ok {
			m.send(tui.ActionFocus, t.Name)
		}
	case "s":
		t, st, ok := m.selected()
		if !ok || !t.HasStart {
			break
		}
		if st.Status == health.StatusUp {
			m.pendingStart = t.Name
			break
		}
		m.send(tui.ActionStart, t.Name)
	case "o":
		if t, _, ok := m.selected(); ok && t.URL != "" {
			m.send(tui.ActionOpen, t.Name)
		}
	case "r":
		m.send(tui.ActionRefresh, "")
	}
	return m, nil
}

func (m DashboardModel) send(kind tui.ActionKind, tool string) {
	if m.publish == nil {
		return
	}
	_ = m.publish(tui.ActionRequest{Kind: kind, Tool: tool})
}

func (m DashboardModel) View() string {
	theme := styles.DefaultTheme()

	if m.last == nil {
		return theme.TitleMuted.Render("Waiting for first health round...")
	}

	cols := []widgets.TableColumn{
		{Header: "Tool", Width: 20},
		{Header: "Status", Width: 9},
		{Header: "Latency", Width: 10},
		{Header: "Details", Width: maxInt(20, m.width-45)},
	}

	rows := make([]widgets.TableRow, 0, len(m.last.Tools))
	for _, t := range m.last.Tools {
		st := m.last.Statuses[t.Name]

		latency := "-"
		if st.Status != health.StatusUnknown {
			latency = fmt.Sprintf("%d ms", st.LatencyMS)
		}

		var details []string
		for _, d := range st.Details {
			details = append(details, d.Key+"="+d.Value)
		}

		rows = append(rows, widgets.TableRow{
			Icon:  styles.StatusIcon(string(st.Status)),
			Cells: []string{t.Name, string(st.Status), latency, strings.Join(details, " ")},
		})
	}

	table := widgets.NewTable(cols).
		WithRows(rows).
		WithCursor(m.cursor).
		WithWidth(m.width)

	sections := []string{table.Render()}

	if m.pendingStart != "" {
		prompt := fmt.Sprintf("%s is up. Start anyway? [y/n]", m.pendingStart)
		sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.Warning).Render(prompt))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
