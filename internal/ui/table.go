// Package ui renders command results as static terminal tables.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const maxColumnWidth = 60

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	// No row is focused in static output.
	styles.Selected = lipgloss.NewStyle()
	if noColor {
		styles.Header = styles.Header.UnsetForeground()
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// renderTable lays out rows under titles with columns sized to their content.
func renderTable(titles []string, rows []table.Row, noColor bool) string {
	columns := make([]table.Column, len(titles))
	for i, title := range titles {
		width := lipgloss.Width(title)
		for _, row := range rows {
			if i < len(row) {
				width = max(width, lipgloss.Width(row[i]))
			}
		}
		columns[i] = table.Column{Title: title, Width: min(width, maxColumnWidth)}
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
	)
	t.SetStyles(tableStyles(noColor))
	// Room for the header and every row; blank padding is trimmed below.
	t.SetHeight(len(rows) + 3)
	return strings.TrimRight(t.View(), "\n ")
}

// stylize applies a foreground color unless color is disabled.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// truncate shortens text to limit runes, collapsing whitespace first.
func truncate(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	runes := []rune(normalized)
	if len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}
