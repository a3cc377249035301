package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders aligned columns. The first column is left aligned, the
// rest are right aligned.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends a row of preformatted cells.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// String renders the table. Missing cells render empty.
func (t *Table) String() string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var sb strings.Builder

	sb.WriteString(t.line(t.Headers, widths, HeaderStyle))
	for _, row := range t.Rows {
		sb.WriteString(t.line(row, widths, ValueStyle))
	}

	return sb.String()
}

func (t *Table) line(cells []string, widths []int, style lipgloss.Style) string {
	parts := make([]string, len(widths))

	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}

		pad := strings.Repeat(" ", w-lipgloss.Width(cell))
		if i == 0 {
			parts[i] = style.Render(cell) + pad
		} else {
			parts[i] = pad + style.Render(cell)
		}
	}

	return strings.Join(parts, "  ") + "\n"
}
