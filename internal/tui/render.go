package tui

import (
	"fmt"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/charmbracelet/lipgloss"

	"github.com/Steff96/sabi-tui/internal/core"
)

// View renders the current frame: scrollback log, an optional modal
// (ReviewAction confirmation), the error banner, a status line showing the
// session state and spinner, and the input textarea. Grounded on
// hkdb-otui/ui/appview_rendering.go's section-stacking layout, narrowed from
// the teacher's many toggled panels (session manager, settings, plugin
// manager, model selector, ...) down to the one modal spec.md §4.3 needs.
func (a AppView) View() string {
	if !a.ready {
		return "initializing..."
	}

	if a.app.State == core.ReviewAction {
		return RenderConfirmationModal(confirmationFor(a.app.PendingToolCall, a.app.DangerousFlag), a.width, a.height)
	}

	var b strings.Builder
	b.WriteString(a.viewport.View())
	b.WriteString("\n")

	if banner := RenderErrorBanner(a.app.ErrorMessage, a.width); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	b.WriteString(a.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(a.textarea.View())

	return b.String()
}

// renderStatusLine shows the current session state, spinning while the
// agent is Thinking/Executing/Finalizing, and the footer help text.
func (a AppView) renderStatusLine() string {
	var left string
	switch a.app.State {
	case core.Thinking:
		left = fmt.Sprintf("%c thinking...", a.app.SpinnerChar())
	case core.Executing:
		left = fmt.Sprintf("%c executing: %s", a.app.SpinnerChar(), a.app.ActionBuffer)
	case core.Finalizing:
		left = fmt.Sprintf("%c finalizing...", a.app.SpinnerChar())
	default:
		left = a.app.State.String()
	}

	var footer string
	switch a.app.State {
	case core.Executing:
		footer = FormatFooter("esc", "Cancel")
	default:
		footer = FormatFooter("enter", "Send", "ctrl+c", "Quit")
	}

	line := StatusStyle.Render(left) + "  " + HelpStyle.Render(footer)
	return lipgloss.NewStyle().Width(a.width).Render(line)
}

// renderLog renders the full message log, rendering model-role replies as
// markdown (spec.md has no rendering requirement of its own; this mirrors
// hkdb-otui/ui/appview_rendering.go's one concrete rendering choice worth
// keeping: model text gets markdown treatment, everything else is plain).
func (a AppView) renderLog() string {
	messages := a.app.Log.Clone()
	if len(messages) == 0 {
		return DimStyle.Render("no messages yet")
	}

	var b strings.Builder
	for i, msg := range messages {
		if msg.Role == core.RoleSystem {
			// The system prompt and tool-rejection notices are long and
			// low-signal; keep them out of the scrollback view.
			continue
		}

		ts := DimStyle.Render(msg.Timestamp.Format("[15:04:05]"))
		var roleLabel string
		var content string

		switch msg.Role {
		case core.RoleUser:
			roleLabel = UserStyle.Render("you")
			content = msg.Content
		case core.RoleModel:
			roleLabel = ModelStyle.Render("sabi")
			content = renderMarkdown(msg.Content, a.width)
		}

		fmt.Fprintf(&b, "%s %s\n%s\n", ts, roleLabel, content)
		if i < len(messages)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderMarkdown(text string, width int) string {
	w := width - 4
	if w < 20 {
		w = 20
	}
	out := markdown.Render(text, w, 0)
	return strings.TrimRight(string(out), "\n")
}
