package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Steff96/sabi-tui/internal/core"
)

// Update is the single-threaded cooperative dispatch loop (spec.md §4.8):
// per iteration, one event arrives and is dispatched by type; background
// tasks (chat/exec/MCP) run as independent tea.Cmd goroutines that post
// their completion back as a typed tea.Msg. Grounded on
// hkdb-otui/ui/appview_update.go's top-level message switch, narrowed to the
// message set messages.go declares.
func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.handleResize(msg), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		a.app.TickSpinner()
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)

	case chatResultMsg:
		return a.handleChatResult(msg)

	case execResultMsg:
		return a.handleExecResult(msg)

	case modelsResultMsg:
		// list_models() is surfaced for provider selection UIs outside this
		// core's scope (spec.md §1); nothing in the state machine reacts to it.
		return a, nil
	}

	if a.app.ShouldQuit {
		return a, tea.Quit
	}
	return a, nil
}

func (a AppView) handleResize(msg tea.WindowSizeMsg) AppView {
	a.width, a.height = msg.Width, msg.Height
	const footerHeight = 6
	vpHeight := msg.Height - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	a.viewport.Width = msg.Width
	a.viewport.Height = vpHeight
	a.textarea.SetWidth(msg.Width - 4)
	a.ready = true
	a.viewport.SetContent(a.renderLog())
	a.viewport.GotoBottom()
	return a
}

// handleKey routes a key event to the handler for the current session
// state (spec.md §4.7's states each accept a disjoint event set).
func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		if a.app.State == core.Executing && a.execCancel != nil {
			a.execCancel()
			return a, nil
		}
		a.app.ShouldQuit = true
		return a, tea.Quit
	}

	switch a.app.State {
	case core.Input:
		return a.handleInputKey(msg)
	case core.ReviewAction:
		return a.handleReviewActionKey(msg)
	case core.Executing:
		return a.handleExecutingKey(msg)
	default:
		// Thinking/Finalizing accept no keys; the agent is busy.
		return a, nil
	}
}

// handleInputKey implements spec.md §8 invariant 1/2: Enter submits the
// trimmed textarea content, empty input is silently rejected.
func (a AppView) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.app.InputBuffer = a.textarea.Value()
		a.app.ClearError()
		res := a.app.SubmitInput()
		if res.Outcome != core.Success {
			return a, nil
		}
		a.textarea.Reset()
		a.viewport.SetContent(a.renderLog())
		a.viewport.GotoBottom()
		return a, a.chatCmd()
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

// handleReviewActionKey implements the ReviewAction confirmation (spec.md
// §4.7: ExecuteConfirmed -> Executing, ExecuteCancelled -> Input).
func (a AppView) handleReviewActionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		a.app.Apply(core.Event{Kind: core.EvExecuteConfirmed})
		return a.execCmd()
	case "n", "N", "esc":
		a.app.Apply(core.Event{Kind: core.EvExecuteCancelled})
		a.app.PendingToolCall = nil
		a.app.DangerousFlag = false
		a.app.ClearAction()
		if a.quitAfterExec {
			a.lastExitCode = 0
			a.app.ShouldQuit = true
			return a, tea.Quit
		}
		return a, nil
	}
	return a, nil
}

// handleExecutingKey implements spec.md §4.4's cancellation: esc kills the
// running child and returns a cancelledResult through the normal
// CommandComplete -> Finalizing -> Input path, skipping the analysis call.
func (a AppView) handleExecutingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" && a.execCancel != nil {
		a.execCancel()
	}
	return a, nil
}

// chatCmd dispatches a background chat() call over the full message log,
// posting its parsed result back as chatResultMsg (spec.md §4.6).
func (a AppView) chatCmd() tea.Cmd {
	provider := a.provider
	messages := a.app.Log.Clone()
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		text, err := provider.Chat(ctx, messages)
		if err != nil {
			return chatResultMsg{err: err}
		}
		return chatResultMsg{parsed: core.ParseResponse(text)}
	}
}

// execCmd dispatches the pending tool call in a cancellable background
// task, storing the cancel func on the returned AppView so
// handleExecutingKey/ctrl+c can reach it.
func (a AppView) execCmd() (AppView, tea.Cmd) {
	if a.app.PendingToolCall == nil {
		return a, nil
	}
	tc := *a.app.PendingToolCall
	executor := a.executor

	ctx, cancel := context.WithCancel(context.Background())
	a.execCancel = cancel

	return a, func() tea.Msg {
		res := executor.Execute(ctx, tc)
		return execResultMsg{toolCall: tc, result: res}
	}
}

// handleChatResult implements spec.md §4.2/§4.3/§4.7: an LLM reply either
// carries an allow-listed, non-interactive tool call (-> ReviewAction), an
// interactive-TTY refusal (-> synthesized refusal, Input), a non-allow-listed
// call (-> synthesized rejection, Input), or plain text (-> Input). Shared
// between the first reply (Thinking) and the post-observation reply
// (Finalizing), since both states accept the same event set here.
func (a AppView) handleChatResult(msg chatResultMsg) (tea.Model, tea.Cmd) {
	a.execCancel = nil

	if msg.err != nil {
		a.app.Apply(core.Event{Kind: core.EvApiError})
		a.viewport.SetContent(a.renderLog())
		return a, nil
	}

	parsed := msg.parsed
	if !parsed.IsToolCall {
		a.app.Log.Push(core.Message{Role: core.RoleModel, Content: parsed.Text, Timestamp: time.Now()})
		a.app.Apply(core.Event{Kind: core.EvTextResponseReceived})
		a.viewport.SetContent(a.renderLog())
		a.viewport.GotoBottom()
		return a, nil
	}

	tc := parsed.ToolCall

	if !core.KnownTool(string(tc.Name)) {
		a.app.Log.Push(core.RejectionObservation(string(tc.Name)))
		a.app.Apply(core.Event{Kind: core.EvTextResponseReceived})
		a.viewport.SetContent(a.renderLog())
		a.viewport.GotoBottom()
		return a, nil
	}

	if cmd := core.CommandFor(tc); cmd != "" && a.app.Screens.IsInteractive(cmd) {
		a.app.Log.Push(core.InteractiveRefusalObservation(cmd, a.app.Screens.Suggestion(cmd)))
		a.app.Apply(core.Event{Kind: core.EvTextResponseReceived})
		a.viewport.SetContent(a.renderLog())
		a.viewport.GotoBottom()
		return a, nil
	}

	a.app.PendingToolCall = &tc
	a.app.SetActionText(tc.Describe())
	a.app.DangerousFlag = core.CommandFor(tc) != "" && a.app.Screens.IsDangerous(core.CommandFor(tc))
	a.app.Apply(core.Event{Kind: core.EvToolCallReceived})
	return a, nil
}

// handleExecResult implements spec.md §4.4/§5/§8 scenario S6: a cancelled
// execution appends "Command cancelled" and returns straight to Input
// without firing another LLM call; a completed execution appends the
// observation, enters Finalizing, and fires the analysis call.
func (a AppView) handleExecResult(msg execResultMsg) (tea.Model, tea.Cmd) {
	a.execCancel = nil
	a.app.PendingToolCall = nil
	a.app.DangerousFlag = false
	a.app.ClearAction()
	a.app.LastOutput = msg.result.Stdout
	a.lastExitCode = msg.result.ExitCode

	cancelled := msg.result.ExitCode == -1 && msg.result.Stderr == "cancelled"

	a.app.Apply(core.Event{Kind: core.EvCommandComplete})

	if cancelled {
		a.app.Log.Push(core.CancelledObservation())
	} else {
		a.app.Log.Push(core.Observation(msg.toolCall, msg.result))
	}

	if a.quitAfterExec {
		a.app.Apply(core.Event{Kind: core.EvAnalysisComplete})
		a.app.ShouldQuit = true
		return a, tea.Quit
	}

	if cancelled {
		a.app.Apply(core.Event{Kind: core.EvAnalysisComplete})
		a.viewport.SetContent(a.renderLog())
		a.viewport.GotoBottom()
		return a, nil
	}

	a.viewport.SetContent(a.renderLog())
	a.viewport.GotoBottom()
	return a, a.chatCmd()
}
