package widgets

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Joxx0r/devtoolhub/pkg/tui/styles"
)

// Footer renders a styled keybindings bar.
type Footer struct {
	Keybinds []Keybind
	Width    int
	theme    styles.Theme
}

func NewFooter(keybinds []Keybind) Footer {
	return Footer{
		Keybinds: keybinds,
		theme:    styles.DefaultTheme(),
	}
}

func (f Footer) WithWidth(w int) Footer {
	f.Width = w
	return f
}

// Render returns the styled footer as a string.
func (f Footer) Render() string {
	theme := f.theme

	sepWidth := f.Width
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

	keybindsLine := RenderKeybinds(f.Keybinds, theme)

	keybindsWidth := lipgloss.Width(keybindsLine)
	padding := (f.Width - keybindsWidth) / 2
	if padding < 0 {
		padding = 0
	}
	paddedKeybinds := lipgloss.NewStyle().
		PaddingLeft(padding).
		Width(f.Width).
		Render(keybindsLine)

	return lipgloss.JoinVertical(lipgloss.Left, separator, paddedKeybinds)
}
