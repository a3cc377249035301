package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-drive/dsp/param"
)

const barWidth = 30

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#D75F00"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D75F00"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)
)

func renderPanel(m Model) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString("\n\n")

	for i, p := range m.Params.All() {
		b.WriteString(renderKnob(p, i == m.Selected))
		b.WriteString("\n")
	}

	if m.Status != nil {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(m.Status()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select  ←/→ adjust  shift fine  b bypass  r reset  q quit"))

	return b.String()
}

func renderKnob(p *param.Parameter, selected bool) string {
	name := p.Spec().Name
	if name == "" {
		name = p.ID()
	}

	cursor := "  "
	style := labelStyle
	if selected {
		cursor = "▸ "
		style = selectedStyle
	}

	return fmt.Sprintf("%s%s %s %s",
		cursor,
		style.Render(fmt.Sprintf("%-8s", name)),
		renderBar(p.Normalized()),
		style.Render(p.String()),
	)
}

func renderBar(n float64) string {
	filled := int(math.Round(n * barWidth))
	filled = max(0, min(barWidth, filled))

	return barStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("░", barWidth-filled)
}
