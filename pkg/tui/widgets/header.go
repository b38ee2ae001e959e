package widgets

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Joxx0r/devtoolhub/pkg/tui/styles"
)

// Keybind represents a keybinding hint.
type Keybind struct {
	Key   string
	Label string
}

// Header renders a styled title bar with a status summary.
type Header struct {
	Title      string
	Status     string
	StatusIcon string
	StatusOk   bool
	Width      int
	theme      styles.Theme
}

func NewHeader(title string) Header {
	return Header{
		Title: title,
		theme: styles.DefaultTheme(),
	}
}

// WithStatus sets the status text and icon.
func (h Header) WithStatus(icon, status string, ok bool) Header {
	h.StatusIcon = icon
	h.Status = status
	h.StatusOk = ok
	return h
}

func (h Header) WithWidth(w int) Header {
	h.Width = w
	return h
}

// Render returns the styled header as a string.
func (h Header) Render() string {
	theme := h.theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Text).
		Background(theme.Primary).
		Padding(0, 1)
	titlePart := titleStyle.Render(h.Title)

	statusPart := ""
	if h.Status != "" {
		var statusStyle lipgloss.Style
		if h.StatusOk {
			statusStyle = theme.StatusUp
		} else {
			statusStyle = theme.StatusDown
		}
		icon := h.StatusIcon
		if icon == "" {
			icon = styles.IconSystem
		}
		statusPart = statusStyle.Render(icon) + " " + lipgloss.NewStyle().Foreground(theme.Text).Render(h.Status)
	}

	headerLine := titlePart
	if statusPart != "" {
		leftWidth := lipgloss.Width(titlePart)
		rightWidth := lipgloss.Width(statusPart)
		spacing := h.Width - leftWidth - rightWidth
		if spacing < 1 {
			spacing = 1
		}
		spacer := lipgloss.NewStyle().Width(spacing).Render("")
		headerLine = lipgloss.JoinHorizontal(lipgloss.Top, titlePart, spacer, statusPart)
	}

	sepWidth := h.Width
	if sepWidth <= 0 {
		sepWidth = 80
	}
	sepChars := make([]rune, sepWidth)
	for i := range sepChars {
		sepChars[i] = '━'
	}
	separator := lipgloss.NewStyle().
		Foreground(theme.Muted).
		Render(string(sepChars))

	return lipgloss.JoinVertical(lipgloss.Left, headerLine, separator)
}

// RenderKeybinds renders a list of keybindings.
func RenderKeybinds(keybinds []Keybind, theme styles.Theme) string {
	parts := make([]string, 0, len(keybinds)*2)
	for i, kb := range keybinds {
		if i > 0 {
			parts = append(parts, theme.TitleMuted.Render(" "))
		}
		parts = append(parts, theme.KeybindKey.Render("["+kb.Key+"]"))
		parts = append(parts, theme.Keybind.Render(" "+kb.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
