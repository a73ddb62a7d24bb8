package core

import (
	"strings"
	"testing"

	"github.com/Steff96/sabi-tui/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Provider:            "ollama",
		DefaultSystemPrompt: "test prompt",
		Providers:           map[string]config.ProviderConfig{},
		DangerousPatterns:   []string{"rm -rf /"},
		InteractivePatterns: []string{"vim"},
	}
}

// Grounded on original_source/src/app.rs's prop_empty_input_rejection /
// prop_empty_string_rejection: whitespace-only (and empty) input must not
// change state or append to the log (spec.md §8 invariant 2).
func TestSubmitInputRejectsWhitespaceOnly(t *testing.T) {
	whitespaceInputs := []string{"", "   ", "\t\t", "\n\n", " \t\n "}

	for _, in := range whitespaceInputs {
		t.Run("input="+in, func(t *testing.T) {
			app := NewApp(testConfig(), nil)
			before := app.Log.Len()

			app.InputBuffer = in
			res := app.SubmitInput()

			if res.Outcome != Ignored {
				t.Fatalf("outcome = %v, want Ignored", res.Outcome)
			}
			if app.State != Input {
				t.Fatalf("state = %v, want Input", app.State)
			}
			if app.Log.Len() != before {
				t.Fatalf("log length changed: %d -> %d", before, app.Log.Len())
			}
		})
	}
}

// Grounded on prop_valid_input_state_transition /
// prop_input_cleared_after_submission: non-empty input transitions to
// Thinking, appends exactly one trimmed User message, and clears the buffer.
func TestSubmitInputAcceptsNonEmpty(t *testing.T) {
	app := NewApp(testConfig(), nil)
	before := app.Log.Len()

	app.InputBuffer = "  list files  "
	res := app.SubmitInput()

	if res.Outcome != Success || res.Next != Thinking {
		t.Fatalf("outcome/next = %v/%v, want Success/Thinking", res.Outcome, res.Next)
	}
	if app.State != Thinking {
		t.Fatalf("state = %v, want Thinking", app.State)
	}
	if app.Log.Len() != before+1 {
		t.Fatalf("log length = %d, want %d", app.Log.Len(), before+1)
	}

	msgs := app.Log.Clone()
	last := msgs[len(msgs)-1]
	if last.Role != RoleUser {
		t.Fatalf("last message role = %v, want RoleUser", last.Role)
	}
	if last.Content != "list files" {
		t.Fatalf("last message content = %q, want %q", last.Content, "list files")
	}
	if !app.IsInputEmpty() {
		t.Fatalf("input buffer not cleared after submission")
	}
}

// Grounded on prop_api_error_recovery_from_thinking /
// prop_api_error_recovery_from_finalizing: an ApiError event always returns
// to Input and installs the error banner, from either state it is legal in.
func TestApplyApiErrorRecovery(t *testing.T) {
	for _, start := range []SessionState{Thinking, Finalizing} {
		app := NewApp(testConfig(), nil)
		app.State = start

		res := app.Apply(Event{Kind: EvApiError})

		if res.Outcome != Errored {
			t.Fatalf("from %v: outcome = %v, want Errored", start, res.Outcome)
		}
		if app.State != Input {
			t.Fatalf("from %v: state = %v, want Input", start, app.State)
		}
		if app.ErrorMessage == "" {
			t.Fatalf("from %v: error banner was not set", start)
		}
	}
}

// Grounded on prop_api_error_preserves_message_history: an ApiError never
// mutates the log.
func TestApplyApiErrorPreservesLog(t *testing.T) {
	app := NewApp(testConfig(), nil)
	app.InputBuffer = "test query"
	app.SubmitInput()

	before := app.Log.Len()
	app.Apply(Event{Kind: EvApiError})

	if app.Log.Len() != before {
		t.Fatalf("log length changed on ApiError: %d -> %d", before, app.Log.Len())
	}
}

func TestClearErrorEmptiesBanner(t *testing.T) {
	app := NewApp(testConfig(), nil)
	app.SetError("boom")
	if app.ErrorMessage != "boom" {
		t.Fatalf("SetError did not set ErrorMessage")
	}
	app.ClearError()
	if app.ErrorMessage != "" {
		t.Fatalf("ClearError left a non-empty banner: %q", app.ErrorMessage)
	}
}

func TestTickSpinnerWraps(t *testing.T) {
	app := NewApp(testConfig(), nil)
	seen := map[rune]bool{}
	for i := 0; i < len(spinnerFrames)*2; i++ {
		seen[app.SpinnerChar()] = true
		app.TickSpinner()
	}
	if len(seen) != len(spinnerFrames) {
		t.Fatalf("saw %d distinct spinner frames, want %d", len(seen), len(spinnerFrames))
	}
}

func TestObservationIncludesExitCodeAndStreams(t *testing.T) {
	tc := ToolCall{Name: ToolRunCmd, Command: "echo hi"}
	res := ExecutionResult{ExitCode: 0, Stdout: "hi\n", Stderr: ""}

	msg := Observation(tc, res)

	if msg.Role != RoleUser {
		t.Fatalf("Observation role = %v, want RoleUser", msg.Role)
	}
	if !strings.Contains(msg.Content, "Exit code: 0") {
		t.Fatalf("Observation content missing exit code: %q", msg.Content)
	}
	if !strings.Contains(msg.Content, "hi\n") {
		t.Fatalf("Observation content missing stdout: %q", msg.Content)
	}
}

func TestBuildSystemPromptIncludesMCPTools(t *testing.T) {
	cfg := testConfig()
	prompt := BuildSystemPrompt(cfg, map[string][]string{"filesystem": {"read", "write"}})

	if !strings.Contains(prompt, "filesystem.read") {
		t.Fatalf("system prompt missing mcp tool catalog entry: %q", prompt)
	}
}
