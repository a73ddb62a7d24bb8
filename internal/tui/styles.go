package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	dimColor     = lipgloss.Color("7")
	accentColor  = lipgloss.Color("12")
	successColor = lipgloss.Color("10")
	warningColor = lipgloss.Color("11")
	dangerColor  = lipgloss.Color("9")

	// UserStyle renders user-role log entries. No .Background() = transparent.
	UserStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	// ModelStyle renders model-role log entries.
	ModelStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	// SystemStyle is for system-role log entries (e.g. tool rejections);
	// renderLog leaves system messages out of the scrollback, so it is unused.
	SystemStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	BorderStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	DangerStyle = lipgloss.NewStyle().
			Foreground(dangerColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(dimColor)
)

// FormatFooter formats a footer string with alternating keys and
// descriptions: keys in default color, descriptions in accent+bold.
// Usage: FormatFooter("j/k", "Navigate", "Enter", "Select", "Esc", "Close")
func FormatFooter(parts ...string) string {
	descStyle := lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	var result []string
	for i := 0; i < len(parts); i += 2 {
		if i+1 < len(parts) {
			result = append(result, parts[i]+" "+descStyle.Render(parts[i+1]))
		}
	}
	return strings.Join(result, "  ")
}
