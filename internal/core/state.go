package core

// SessionState is the session's current phase (spec.md §4.7). Grounded on
// original_source/src/app.rs's AppState enum — the teacher (hkdb-otui) has
// no discrete state machine at all, tracking loose booleans like Streaming
// instead, so this module is ported from the Rust original's design and
// expressed as an idiomatic Go closed enum.
type SessionState int

const (
	Input SessionState = iota
	Thinking
	ReviewAction
	Executing
	Finalizing
)

func (s SessionState) String() string {
	switch s {
	case Input:
		return "Input"
	case Thinking:
		return "Thinking"
	case ReviewAction:
		return "ReviewAction"
	case Executing:
		return "Executing"
	case Finalizing:
		return "Finalizing"
	default:
		return "Unknown"
	}
}

// EventKind discriminates the events the state machine accepts.
type EventKind int

const (
	EvSubmitInput EventKind = iota
	EvToolCallReceived
	EvTextResponseReceived
	EvApiError
	EvExecuteConfirmed
	EvExecuteCancelled
	EvCommandComplete
	EvAnalysisComplete
)

// Event is a tagged union of everything the machine can react to.
// IsEmpty is only meaningful for EvSubmitInput.
type Event struct {
	Kind    EventKind
	IsEmpty bool
}

// Outcome is the closed result of attempting a transition, matching
// original_source/src/app.rs's TransitionResult: Success(new state), Ignored
// (no-op, not an error), or Error(msg) (the move to Next happens together
// with an error banner the caller must surface, as for ApiError -> Input).
// An illegal transition is always Ignored and never mutates state (spec.md
// §4.7 invariant).
type Outcome int

const (
	Success Outcome = iota
	Ignored
	Errored
)

// TransitionResult is returned by Transition.
type TransitionResult struct {
	Outcome Outcome
	Next    SessionState // meaningful only when Outcome == Success or Errored
	Message string       // error banner text, meaningful only when Outcome == Errored
}

// Transition is the pure function (state, event) -> {Success|Ignored|Error}
// from spec.md §4.7's table. It has no side effects and touches no App
// field; callers apply Next themselves.
func Transition(state SessionState, ev Event) TransitionResult {
	switch state {
	case Input:
		switch ev.Kind {
		case EvSubmitInput:
			if ev.IsEmpty {
				return TransitionResult{Outcome: Ignored}
			}
			return TransitionResult{Outcome: Success, Next: Thinking}
		}

	case Thinking:
		switch ev.Kind {
		case EvToolCallReceived:
			return TransitionResult{Outcome: Success, Next: ReviewAction}
		case EvTextResponseReceived:
			return TransitionResult{Outcome: Success, Next: Input}
		case EvApiError:
			return TransitionResult{Outcome: Errored, Next: Input, Message: "request failed"}
		}

	case ReviewAction:
		switch ev.Kind {
		case EvExecuteConfirmed:
			return TransitionResult{Outcome: Success, Next: Executing}
		case EvExecuteCancelled:
			return TransitionResult{Outcome: Success, Next: Input}
		}

	case Executing:
		switch ev.Kind {
		case EvCommandComplete:
			return TransitionResult{Outcome: Success, Next: Finalizing}
		}

	case Finalizing:
		switch ev.Kind {
		case EvApiError:
			return TransitionResult{Outcome: Errored, Next: Input, Message: "analysis request failed"}
		case EvAnalysisComplete:
			return TransitionResult{Outcome: Success, Next: Input}
		case EvTextResponseReceived:
			return TransitionResult{Outcome: Success, Next: Input}
		case EvToolCallReceived:
			return TransitionResult{Outcome: Success, Next: ReviewAction}
		}
	}

	return TransitionResult{Outcome: Ignored}
}
