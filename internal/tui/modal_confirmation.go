package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Steff96/sabi-tui/internal/core"
)

// ConfirmationState describes the ReviewAction modal: the pending tool call
// description plus whether the dangerous-pattern screen flagged it. Grounded
// on hkdb-otui/ui/modal_confirmation.go's ConfirmationState, narrowed from a
// generic title/message pair to the one thing spec.md §4.3 asks this modal
// to show: the pending call's Describe() text plus a prominent (non-blocking) warning
// when the command matched a destructive pattern.
type ConfirmationState struct {
	Active    bool
	Action    string
	Dangerous bool
}

// RenderConfirmationModal renders the ReviewAction confirmation dialog, kept
// close to hkdb-otui/ui/modal_confirmation.go::RenderConfirmationModal since
// it already matches spec.md §4.3's "prominent warning, not a block"
// requirement; the dangerous-command variant swaps the title color and adds
// a warning line instead of rendering a separate modal (the teacher's
// RenderToolWarningModal handled an unrelated model/plugin mismatch, which
// has no SPEC_FULL.md component to attach to).
func RenderConfirmationModal(state ConfirmationState, width, height int) string {
	modalWidth := 60
	if width < modalWidth+10 {
		modalWidth = width - 10
	}

	titleColor := warningColor
	title := "Confirm Action"
	if state.Dangerous {
		titleColor = dangerColor
		title = "⚠ Dangerous Command Detected"
	}

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Foreground(titleColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render(title)

	var messageLines []string
	messageLines = append(messageLines, strings.Repeat(" ", modalWidth))

	messageStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Align(lipgloss.Center)

	// A long run_cmd/run_python body or a path full of wide characters can
	// overflow modalWidth; truncate display-width-aware rather than by byte
	// count (hkdb-otui/ui/plugin_manager_rendering.go's overflow handling).
	innerWidth := modalWidth - 4
	for _, line := range strings.Split(state.Action, "\n") {
		if runewidth.StringWidth(line) > innerWidth {
			line = runewidth.Truncate(line, innerWidth, "...")
		}
		messageLines = append(messageLines, messageStyle.Render(line))
	}
	if state.Dangerous {
		messageLines = append(messageLines, messageStyle.Render(""))
		messageLines = append(messageLines, messageStyle.Render(DangerStyle.Render("this command matches a destructive pattern")))
	}

	messageLines = append(messageLines, strings.Repeat(" ", modalWidth))

	messageSection := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Width(modalWidth).
		Render(strings.Join(messageLines, "\n"))

	footer := FormatFooter("y", "Execute", "n", "Cancel")
	footerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footer)

	sections := []string{titleSection, messageSection, footerSection}
	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// confirmationFor builds a ConfirmationState from the pending tool call.
func confirmationFor(tc *core.ToolCall, dangerous bool) ConfirmationState {
	if tc == nil {
		return ConfirmationState{}
	}
	return ConfirmationState{Active: true, Action: tc.Describe(), Dangerous: dangerous}
}
