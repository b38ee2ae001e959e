package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Joxx0r/devtoolhub/pkg/tui/styles"
)

// TableColumn defines a column in the table.
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

// TableRow represents a row in the table.
type TableRow struct {
	Icon  string
	Cells []string
}

// Table renders a styled table with selection support.
type Table struct {
	Columns []TableColumn
	Rows    []TableRow
	Cursor  int
	Width   int
	theme   styles.Theme
}

func NewTable(cols []TableColumn) Table {
	return Table{
		Columns: cols,
		theme:   styles.DefaultTheme(),
	}
}

func (t Table) WithRows(rows []TableRow) Table {
	t.Rows = rows
	return t
}

func (t Table) WithCursor(idx int) Table {
	t.Cursor = idx
	return t
}

func (t Table) WithWidth(width int) Table {
	t.Width = width
	return t
}

// Render returns the styled table as a string, header line first.
func (t Table) Render() string {
	theme := t.theme

	if len(t.Rows) == 0 {
		return theme.TitleMuted.Render("(no tools configured)")
	}

	var lines []string

	if len(t.Columns) > 0 {
		var parts []string
		parts = append(parts, "    ")
		for _, col := range t.Columns {
			style := theme.TitleMuted.Width(col.Width).Align(col.Align)
			parts = append(parts, style.Render(col.Header))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}

	for i, row := range t.Rows {
		isSelected := i == t.Cursor

		var parts []string

		cursor := "  "
		if isSelected {
			cursor = theme.KeybindKey.Render("> ")
		}
		parts = append(parts, cursor)

		if row.Icon != "" {
			iconStyle := theme.StatusUp
			switch row.Icon {
			case styles.IconDown:
				iconStyle = theme.StatusDown
			case styles.IconUnknown:
				iconStyle = theme.StatusDim
			}
			parts = append(parts, iconStyle.Render(row.Icon)+" ")
		}

		for j, cell := range row.Cells {
			width := 20
			if j < len(t.Columns) && t.Columns[j].Width > 0 {
				width = t.Columns[j].Width
			}

			cellStr := cell
			if len(cellStr) > width {
				cellStr = cellStr[:width-1] + "…"
			}

			cellStyle := lipgloss.NewStyle().Width(width)
			if j < len(t.Columns) {
				cellStyle = cellStyle.Align(t.Columns[j].Align)
			}

			if isSelected {
				cellStyle = cellStyle.Bold(true).Foreground(theme.Text)
			} else {
				cellStyle = cellStyle.Foreground(theme.TextDim)
			}

			parts = append(parts, cellStyle.Render(cellStr))
		}

		line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
		if isSelected {
			line = theme.Selected.Width(t.Width).Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
