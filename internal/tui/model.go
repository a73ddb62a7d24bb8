// Package tui is the view model: the bubbletea event loop multiplexing key
// events, spinner ticks, and background task completions onto the pure
// core.App state machine (spec.md §4.8). Grounded on hkdb-otui/ui/appview.go's
// tea.Model shape, stripped of every field that belonged to the teacher's
// plugin-manager/session-manager/settings/welcome/passphrase modals — none
// of which SPEC_FULL.md names — down to the one modal spec.md §4.3 needs
// (the ReviewAction confirmation) plus the one-line error banner of §7.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Steff96/sabi-tui/internal/core"
	"github.com/Steff96/sabi-tui/internal/llm"
	"github.com/Steff96/sabi-tui/internal/mcpclient"
)

// AppView is the bubbletea tea.Model wrapping a core.App. All state-machine
// logic lives in core; AppView owns only UI widgets and in-flight task
// handles.
type AppView struct {
	app      *core.App
	provider llm.Provider
	mcp      *mcpclient.Manager
	executor *core.Executor

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	width  int
	height int
	ready  bool

	// execCancel cancels the in-flight command execution, if any (spec.md
	// §4.4 Cancellation / §5 "Executing -> abort task handle + kill child").
	execCancel context.CancelFunc

	// quitAfterExec and lastExitCode support the "-x" single-shot CLI mode
	// (spec.md §6): the TUI is launched pre-seated in ReviewAction for one
	// already-parsed tool call, and quits the instant that call finishes
	// executing instead of looping back into another chat call.
	quitAfterExec bool
	lastExitCode  int
}

// WithQuitAfterExec marks the view to quit immediately once the pending
// tool call finishes executing, surfacing its exit code via ExitCode.
// Used by the "-x" single-shot CLI mode (spec.md §6).
func (a AppView) WithQuitAfterExec() AppView {
	a.quitAfterExec = true
	return a
}

// ExitCode returns the exit code of the last executed command, read by the
// "-x" single-shot CLI mode once tea.Program.Run returns.
func (a AppView) ExitCode() int {
	return a.lastExitCode
}

// NewAppView constructs the initial view model around a fresh core.App.
func NewAppView(app *core.App, provider llm.Provider, mgr *mcpclient.Manager, executor *core.Executor) AppView {
	ta := textarea.New()
	ta.Placeholder = "Ask sabi anything..."
	ta.Focus()
	ta.ShowLineNumbers = false
	ta.SetHeight(3)

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	return AppView{
		app:      app,
		provider: provider,
		mcp:      mgr,
		executor: executor,
		viewport: vp,
		textarea: ta,
		spinner:  sp,
	}
}

// Init starts the cursor blink and the spinner tick loop.
func (a AppView) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, a.spinner.Tick)
}
