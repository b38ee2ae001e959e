package models

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/Joxx0r/devtoolhub/pkg/tui"
)

func pressKey(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func eventAt(text string) tui.EventLogEntry {
	return tui.EventLogEntry{At: time.Now(), Source: "hub", Level: tui.LogLevelInfo, Text: text}
}

func TestEventLogCapsEntries(t *testing.T) {
	m := NewEventLogModel().WithSize(80, 24)
	for i := 0; i < eventLogCap+50; i++ {
		m = m.Append(eventAt(fmt.Sprintf("event %d", i)))
	}
	require.Len(t, m.entries, eventLogCap)
	require.Equal(t, "event 50", m.entries[0].Text)
}

func TestEventLogFilterHidesNonMatching(t *testing.T) {
	m := NewEventLogModel().WithSize(80, 24)
	m = m.Append(eventAt("ide: up -> down"))
	m = m.Append(eventAt("db: focused"))

	m, _ = m.Update(pressKey("/"))
	require.True(t, m.searching)
	m, _ = m.Update(pressKey("ide"))
	m, _ = m.Update(pressKey("enter"))
	require.False(t, m.searching)
	require.Equal(t, "ide", m.filter)

	view := m.View()
	require.Contains(t, view, "ide: up -> down")
	require.NotContains(t, view, "db: focused")
}

func TestEventLogEscCancelsSearch(t *testing.T) {
	m := NewEventLogModel().WithSize(80, 24)
	m, _ = m.Update(pressKey("/"))
	m, _ = m.Update(pressKey("esc"))
	require.False(t, m.searching)
	require.Empty(t, m.filter)
}

func TestEventLogClear(t *testing.T) {
	m := NewEventLogModel().WithSize(80, 24)
	m = m.Append(eventAt("ide: launched (pid 7)"))
	m, _ = m.Update(pressKey("c"))
	require.Empty(t, m.entries)
	require.Contains(t, m.View(), "(no events yet)")
}
