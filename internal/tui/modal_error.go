package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// RenderErrorBanner renders the one-line error banner spec.md §7 calls for:
// ApiError surfaces as "a one-line banner in Input, conversation preserved."
// Grounded on hkdb-otui/ui/modal_error.go's title styling, narrowed from a
// full-screen pre-TUI modal (the teacher shows this before the main program
// even starts, for config-load failures) down to an inline banner, since
// spec.md keeps the conversation and view on screen around it.
func RenderErrorBanner(message string, width int) string {
	if message == "" {
		return ""
	}
	style := lipgloss.NewStyle().
		Foreground(dangerColor).
		Bold(true).
		Width(width).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dangerColor).
		Padding(0, 1)
	return style.Render("⚠ " + message)
}
