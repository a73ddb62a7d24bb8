package tui

import (
	"time"

	"github.com/Steff96/sabi-tui/internal/core"
)

// The tea.Msg catalog posted back from background tasks into the event
// loop (spec.md §4.8 step 2: "background tasks dispatched as independent
// concurrent tasks posting completion back to event channel"). Grounded on
// hkdb-otui/ui/messages.go's re-export idiom, narrowed from the teacher's
// streaming/session/plugin/editor message set down to the handful
// SPEC_FULL.md's event loop actually needs.

// tickMsg is not sent anywhere: the ~100ms tick that advances the spinner
// frame arrives as the bubbles spinner.TickMsg (see Update).
type tickMsg time.Time

// chatResultMsg carries the outcome of an in-flight LLM chat() call, already
// parsed into a ParsedResponse (spec.md §4.2) so the Update switch never
// handles raw provider text.
type chatResultMsg struct {
	parsed core.ParsedResponse
	err    error
}

// execResultMsg carries the outcome of an in-flight tool execution.
type execResultMsg struct {
	toolCall core.ToolCall
	result   core.ExecutionResult
}

// modelsResultMsg carries the outcome of a list_models() call.
type modelsResultMsg struct {
	models []string
	err    error
}
