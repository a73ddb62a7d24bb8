package core

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"runtime"
	"strings"
	"time"

	"github.com/Steff96/sabi-tui/internal/config"
)

// App is the aggregate the event loop drives (spec.md §3). It owns
// everything except the MCP subclient, which the tui layer shares by
// reference. Grounded field-for-field on original_source/src/app.rs's App
// struct.
type App struct {
	State SessionState

	InputBuffer  string
	ActionBuffer string // display-only preview of the pending command; execution uses PendingToolCall

	Log *Log

	PendingToolCall *ToolCall
	DangerousFlag   bool

	LastOutput   string
	ErrorMessage string

	SpinnerFrame  int
	ScrollOffset  int
	ShouldQuit    bool

	Config  *config.Config
	Screens Screens
}

// spinnerFrames is the original's exact 10-frame braille sequence
// (original_source/src/app.rs), reused verbatim since spec.md leaves the
// glyph set unspecified.
var spinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// NewApp constructs a fresh App in the Input state with the system message
// already logged. mcpTools is the discovered MCP tool catalog (server name
// -> tool names), injected into the system message per spec.md §3; pass nil
// when no MCP servers are configured or discovery found nothing.
func NewApp(cfg *config.Config, mcpTools map[string][]string) *App {
	a := &App{
		State:   Input,
		Log:     &Log{},
		Config:  cfg,
		Screens: NewScreens(cfg.DangerousPatterns, cfg.InteractivePatterns),
	}
	a.Log.Push(Message{Role: RoleSystem, Content: BuildSystemPrompt(cfg, mcpTools), Timestamp: time.Now()})
	return a
}

// GetInputText returns the current input buffer.
func (a *App) GetInputText() string {
	return a.InputBuffer
}

// IsInputEmpty reports whether the trimmed input buffer is empty.
func (a *App) IsInputEmpty() bool {
	return strings.TrimSpace(a.InputBuffer) == ""
}

// ClearInput empties the input buffer.
func (a *App) ClearInput() {
	a.InputBuffer = ""
}

// ClearAction empties the action buffer.
func (a *App) ClearAction() {
	a.ActionBuffer = ""
}

// SetActionText sets the editable action-preview buffer, used when entering
// ReviewAction.
func (a *App) SetActionText(text string) {
	a.ActionBuffer = text
}

// SetError installs a non-empty error banner without touching the log.
func (a *App) SetError(msg string) {
	a.ErrorMessage = msg
}

// ClearError empties the error banner.
func (a *App) ClearError() {
	a.ErrorMessage = ""
}

// TickSpinner advances the spinner frame on a ~100ms Tick event.
func (a *App) TickSpinner() {
	a.SpinnerFrame = (a.SpinnerFrame + 1) % len(spinnerFrames)
}

// SpinnerChar returns the glyph for the current spinner frame.
func (a *App) SpinnerChar() rune {
	return spinnerFrames[a.SpinnerFrame]
}

// Apply runs the pure Transition function and moves App.State to res.Next
// on Success, or to res.Next plus the error banner on Errored. It never
// mutates state on Ignored (spec.md §4.7 invariant).
func (a *App) Apply(ev Event) TransitionResult {
	res := Transition(a.State, ev)
	switch res.Outcome {
	case Success:
		a.State = res.Next
	case Errored:
		a.State = res.Next
		a.SetError(res.Message)
	}
	return res
}

// SubmitInput implements spec.md §8 invariant 2: compute is_empty, and only
// on non-empty input push exactly one user message (trimmed) and clear the
// buffer, before transitioning. Returns the transition result so the caller
// can tell "rejected" (Ignored) apart from "accepted" (Success).
func (a *App) SubmitInput() TransitionResult {
	trimmed := strings.TrimSpace(a.InputBuffer)
	isEmpty := trimmed == ""

	res := a.Apply(Event{Kind: EvSubmitInput, IsEmpty: isEmpty})
	if res.Outcome == Success {
		a.Log.Push(Message{Role: RoleUser, Content: trimmed, Timestamp: time.Now()})
		a.ClearInput()
	}
	return res
}

// SystemContext is the live, per-session fact set spec.md §3/§6 requires in
// the system message: time, user, shell, cwd, and OS description.
type SystemContext struct {
	Time  time.Time
	User  string
	Shell string
	Cwd   string
	OS    string
}

// GatherSystemContext reads the live facts named in spec.md §6: SHELL, USER,
// the current working directory, and (Linux) /etc/os-release PRETTY_NAME or
// (macOS) `sw_vers -productVersion`.
func GatherSystemContext() SystemContext {
	ctx := SystemContext{Time: time.Now()}

	if u, err := user.Current(); err == nil {
		ctx.User = u.Username
	} else {
		ctx.User = os.Getenv("USER")
	}

	ctx.Shell = os.Getenv("SHELL")
	if cwd, err := os.Getwd(); err == nil {
		ctx.Cwd = cwd
	}

	ctx.OS = describeOS()
	return ctx
}

func describeOS() string {
	switch runtime.GOOS {
	case "linux":
		if data, err := os.ReadFile("/etc/os-release"); err == nil {
			for _, line := range strings.Split(string(data), "\n") {
				if strings.HasPrefix(line, "PRETTY_NAME=") {
					return strings.Trim(strings.TrimPrefix(line, "PRETTY_NAME="), `"`)
				}
			}
		}
		return "Linux"
	case "darwin":
		out, err := exec.Command("sw_vers", "-productVersion").Output()
		if err == nil {
			return "macOS " + strings.TrimSpace(string(out))
		}
		return "macOS"
	default:
		return runtime.GOOS
	}
}

// BuildSystemPrompt assembles the one-time system message: the static
// prompt text plus live system-context facts plus (if non-nil) the
// discovered MCP tool catalog (spec.md §3).
func BuildSystemPrompt(cfg *config.Config, mcpTools map[string][]string) string {
	ctx := GatherSystemContext()

	var b strings.Builder
	b.WriteString(cfg.DefaultSystemPrompt)
	b.WriteString("\n\n--- context ---\n")
	fmt.Fprintf(&b, "time: %s\n", ctx.Time.Format(time.RFC3339))
	fmt.Fprintf(&b, "user: %s\n", ctx.User)
	fmt.Fprintf(&b, "shell: %s\n", ctx.Shell)
	fmt.Fprintf(&b, "cwd: %s\n", ctx.Cwd)
	fmt.Fprintf(&b, "os: %s\n", ctx.OS)

	if len(mcpTools) > 0 {
		b.WriteString("\n--- available mcp tools ---\n")
		for server, tools := range mcpTools {
			for _, t := range tools {
				fmt.Fprintf(&b, "%s.%s\n", server, t)
			}
		}
	}

	return b.String()
}

// Observation builds the synthesized user-role message that re-introduces
// an ExecutionResult into the conversation (spec.md §3 "Observation").
func Observation(tc ToolCall, res ExecutionResult) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Tool: %s\n", tc.Describe())
	fmt.Fprintf(&b, "Exit code: %d\n", res.ExitCode)
	if res.Stdout != "" {
		fmt.Fprintf(&b, "Stdout:\n%s\n", res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprintf(&b, "Stderr:\n%s\n", res.Stderr)
	}
	return Message{Role: RoleUser, Content: b.String(), Timestamp: time.Now()}
}

// RejectionObservation builds the system-role message noting that a tool
// call outside the allow-list was rejected without executing (spec.md §7,
// §8 invariant 4).
func RejectionObservation(toolName string) Message {
	return Message{
		Role:      RoleSystem,
		Content:   fmt.Sprintf("tool %q is not in the allow-list; rejected without execution", toolName),
		Timestamp: time.Now(),
	}
}

// InteractiveRefusalObservation builds the model-role message noting an
// interactive command was refused, with its suggested alternative (spec.md
// §7, §8 invariant 5).
func InteractiveRefusalObservation(cmd, suggestion string) Message {
	content := fmt.Sprintf("refused to run %q: requires a controlling TTY.", cmd)
	if suggestion != "" {
		content += " Suggestion: " + suggestion
	}
	return Message{Role: RoleModel, Content: content, Timestamp: time.Now()}
}

// CancelledObservation builds the "Command cancelled" message for spec.md
// §8 scenario S6.
func CancelledObservation() Message {
	return Message{Role: RoleUser, Content: "Command cancelled", Timestamp: time.Now()}
}
