package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ade80"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b7280"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#e5e7eb")).
			Background(lipgloss.Color("#1e1e2a"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d1d5db"))

	doneStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(lipgloss.Color("#6b7280"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ca3af"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4b5563"))

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4b5563")).
				Italic(true)

	fieldLabelStyle = lipgloss.NewStyle().
			Width(10).
			Foreground(lipgloss.Color("#9ca3af"))
)

// helpLine renders a key/label help bar, e.g. "a add · d delete".
func helpLine(pairs ...string) string {
	out := " "
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			out += helpLabelStyle.Render(" · ")
		}
		out += helpKeyStyle.Render(pairs[i]) + " " + helpLabelStyle.Render(pairs[i+1])
	}
	return out
}
