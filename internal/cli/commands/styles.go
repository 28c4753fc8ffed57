package commands

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#B4A7FF"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#9A9A9A"}
	warnColor   = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}

	titleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			MarginBottom(1)

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			PaddingLeft(2)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	warnStyle = lipgloss.NewStyle().
			Foreground(warnColor)
)

// column renders s left-aligned in a column of the given width.
func column(style lipgloss.Style, width int, s string) string {
	return style.Width(width).Render(s)
}
