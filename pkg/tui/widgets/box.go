package widgets

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Joxx0r/devtoolhub/pkg/tui/styles"
)

// Box renders a bordered container with an optional title.
type Box struct {
	Title      string
	TitleRight string
	Content    string
	Width      int
	Height     int
	Style      lipgloss.Style
	theme      styles.Theme
}

func NewBox(title string) Box {
	theme := styles.DefaultTheme()
	return Box{
		Title: title,
		Style: theme.Border,
		theme: theme,
	}
}

func (b Box) WithContent(content string) Box {
	b.Content = content
	return b
}

// WithTitleRight sets the right-aligned title text (e.g., keybindings).
func (b Box) WithTitleRight(text string) Box {
	b.TitleRight = text
	return b
}

func (b Box) WithSize(width, height int) Box {
	b.Width = width
	b.Height = height
	return b
}

// Render returns the styled box as a string.
func (b Box) Render() string {
	titleStyle := b.theme.Title
	titleRightStyle := b.theme.TitleMuted

	titleLeft := ""
	if b.Title != "" {
		titleLeft = titleStyle.Render(b.Title)
	}

	titleRight := ""
	if b.TitleRight != "" {
		titleRight = titleRightStyle.Render(b.TitleRight)
	}

	contentWidth := b.Width - 2 // borders
	if contentWidth < 0 {
		contentWidth = 0
	}

	header := ""
	if titleLeft != "" || titleRight != "" {
		leftLen := lipgloss.Width(titleLeft)
		rightLen := lipgloss.Width(titleRight)
		spacing := contentWidth - leftLen - rightLen
		if spacing < 1 {
			spacing = 1
		}
		spacer := lipgloss.NewStyle().Width(spacing).Render("")
		header = lipgloss.JoinHorizontal(lipgloss.Top, titleLeft, spacer, titleRight)
	}

	fullContent := b.Content
	if header != "" {
		fullContent = header + "\n" + b.Content
	}

	style := b.Style
	if b.Width > 0 {
		style = style.Width(contentWidth)
	}
	if b.Height > 0 {
		innerHeight := b.Height - 2 // top and bottom borders
		if header != "" {
			innerHeight--
		}
		if innerHeight < 0 {
			innerHeight = 0
		}
		style = style.Height(innerHeight)
	}

	return style.Render(fullContent)
}
