package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Joxx0r/devtoolhub/pkg/tui"
	"github.com/Joxx0r/devtoolhub/pkg/tui/styles"
	"github.com/Joxx0r/devtoolhub/pkg/tui/widgets"
)

// eventLogCap bounds the retained entries; older ones are dropped.
const eventLogCap = 200

// EventLogModel shows hub events newest-last in a scrollable box with an
// optional substring filter over the entry text.
type EventLogModel struct {
	entries []tui.EventLogEntry

	width  int
	height int

	searching bool
	search    textinput.Model
	filter    string

	vp viewport.Model
}

func NewEventLogModel() EventLogModel {
	search := textinput.New()
	search.Placeholder = "filter…"
	search.Prompt = "/ "
	search.CharLimit = 200

	return EventLogModel{search: search, vp: viewport.New(0, 0)}
}

func (m EventLogModel) WithSize(width, height int) EventLogModel {
	m.width, m.height = width, height
	m.vp.Width = maxInt(0, width)
	m.vp.Height = maxInt(3, height-4)
	return m.rebuild(false)
}

func (m EventLogModel) Update(msg tea.Msg) (EventLogModel, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		return m.WithSize(maxInt(1, v.Width), maxInt(1, v.Height)), nil
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(v)
		}
		switch v.String() {
		case "/":
			m.searching = true
			m.search.SetValue(m.filter)
			m.search.CursorEnd()
			m.search.Focus()
			return m, nil
		case "ctrl+l":
			m.filter = ""
			m.search.SetValue("")
			return m.rebuild(true), nil
		case "c":
			m.entries = nil
			return m.rebuild(true), nil
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(v)
		return m, cmd
	}
	return m, nil
}

func (m EventLogModel) updateSearch(key tea.KeyMsg) (EventLogModel, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.filter = strings.TrimSpace(m.search.Value())
		m.searching = false
		m.search.Blur()
		return m.rebuild(true), nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(key)
	return m, cmd
}

func (m EventLogModel) Append(e tui.EventLogEntry) EventLogModel {
	m.entries = append(m.entries, e)
	if n := len(m.entries) - eventLogCap; n > 0 {
		m.entries = append([]tui.EventLogEntry(nil), m.entries[n:]...)
	}
	return m.rebuild(true)
}

func (m EventLogModel) View() string {
	theme := styles.DefaultTheme()

	titleRight := "[/] filter  [c] clear  [↑/↓] scroll"
	if m.filter != "" {
		titleRight = fmt.Sprintf("filter=%q  %s", m.filter, titleRight)
	}

	content, boxHeight := m.vp.View(), m.vp.Height+3
	if len(m.entries) == 0 {
		content, boxHeight = theme.TitleMuted.Render("(no events yet)"), 5
	}

	box := widgets.NewBox(fmt.Sprintf("Events (%d)", len(m.entries))).
		WithTitleRight(titleRight).
		WithContent(content).
		WithSize(m.width, boxHeight).
		Render()

	if m.searching {
		return lipgloss.JoinVertical(lipgloss.Left, m.search.View(), box)
	}
	return box
}

// rebuild re-renders the filtered entries into the viewport.
func (m EventLogModel) rebuild(gotoBottom bool) EventLogModel {
	if len(m.entries) == 0 {
		m.vp.SetContent("")
		return m
	}

	var b strings.Builder
	for _, e := range m.entries {
		if m.filter != "" && !strings.Contains(e.Text, m.filter) {
			continue
		}
		b.WriteString(renderEventLine(e))
		b.WriteByte('\n')
	}
	m.vp.SetContent(b.String())
	if gotoBottom {
		m.vp.GotoBottom()
	}
	return m
}

func renderEventLine(e tui.EventLogEntry) string {
	theme := styles.DefaultTheme()

	ts := e.At
	if ts.IsZero() {
		ts = time.Now()
	}
	source := strings.TrimSpace(e.Source)
	if source == "" {
		source = "system"
	}
	level := e.Level
	if level == "" {
		level = tui.LogLevelInfo
	}

	style := theme.TitleMuted
	switch level {
	case tui.LogLevelError:
		style = theme.StatusDown
	case tui.LogLevelWarn:
		style = lipgloss.NewStyle().Foreground(theme.Warning)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		style.Render(styles.LogLevelIcon(string(level))),
		" ",
		theme.TitleMuted.Render(ts.Format("15:04:05")),
		" ",
		theme.TitleMuted.Render(fmt.Sprintf("[%s]", source)),
		"  ",
		style.Render(e.Text),
	)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
