package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Card draws a rounded box with a bold title followed by lines.
func Card(title string, lines ...string) string {
	body := Bold(title)
	if len(lines) > 0 {
		body += "\n\n" + strings.Join(lines, "\n")
	}

	box := style().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2)
	if enabled {
		box = box.BorderForeground(colorCyan)
	}
	return box.Render(body)
}

// KeyValue aligns label/value pairs in two columns, labels dimmed.
func KeyValue(pairs [][2]string) []string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}

	lines := make([]string, len(pairs))
	for i, p := range pairs {
		pad := strings.Repeat(" ", width-lipgloss.Width(p[0]))
		lines[i] = Gray(p[0]) + pad + "  " + p[1]
	}
	return lines
}
