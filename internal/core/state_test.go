package core

import "testing"

// Grounded on original_source/src/app.rs's StateEvent transition table tests,
// ported from property tests to an explicit table: the table itself IS the
// spec.md §4.7 transition diagram, so every legal edge and a representative
// illegal one per state are checked directly rather than generated.
func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		state   SessionState
		ev      Event
		outcome Outcome
		next    SessionState
	}{
		{"submit non-empty from Input", Input, Event{Kind: EvSubmitInput}, Success, Thinking},
		{"submit empty from Input is ignored", Input, Event{Kind: EvSubmitInput, IsEmpty: true}, Ignored, Input},
		{"tool call received from Input is ignored", Input, Event{Kind: EvToolCallReceived}, Ignored, Input},

		{"tool call from Thinking", Thinking, Event{Kind: EvToolCallReceived}, Success, ReviewAction},
		{"text response from Thinking", Thinking, Event{Kind: EvTextResponseReceived}, Success, Input},
		{"api error from Thinking", Thinking, Event{Kind: EvApiError}, Errored, Input},
		{"submit from Thinking is ignored", Thinking, Event{Kind: EvSubmitInput}, Ignored, Input},

		{"confirm from ReviewAction", ReviewAction, Event{Kind: EvExecuteConfirmed}, Success, Executing},
		{"cancel from ReviewAction", ReviewAction, Event{Kind: EvExecuteCancelled}, Success, Input},
		{"command complete from ReviewAction is ignored", ReviewAction, Event{Kind: EvCommandComplete}, Ignored, Input},

		{"command complete from Executing", Executing, Event{Kind: EvCommandComplete}, Success, Finalizing},
		{"confirm from Executing is ignored", Executing, Event{Kind: EvExecuteConfirmed}, Ignored, Input},

		{"api error from Finalizing", Finalizing, Event{Kind: EvApiError}, Errored, Input},
		{"analysis complete from Finalizing", Finalizing, Event{Kind: EvAnalysisComplete}, Success, Input},
		{"text response from Finalizing", Finalizing, Event{Kind: EvTextResponseReceived}, Success, Input},
		{"tool call from Finalizing", Finalizing, Event{Kind: EvToolCallReceived}, Success, ReviewAction},
		{"submit from Finalizing is ignored", Finalizing, Event{Kind: EvSubmitInput}, Ignored, Input},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Transition(tt.state, tt.ev)
			if res.Outcome != tt.outcome {
				t.Fatalf("outcome = %v, want %v", res.Outcome, tt.outcome)
			}
			if res.Outcome == Success && res.Next != tt.next {
				t.Fatalf("next = %v, want %v", res.Next, tt.next)
			}
		})
	}
}

// An Ignored outcome must never be mistaken for a state change
// by a caller that forgets to check Outcome before reading Next.
func TestTransitionIgnoredNextIsZeroValue(t *testing.T) {
	res := Transition(Input, Event{Kind: EvToolCallReceived})
	if res.Outcome != Ignored {
		t.Fatalf("expected Ignored, got %v", res.Outcome)
	}
	if res.Next != Input {
		t.Fatalf("Next on an Ignored result should be the zero value (Input), got %v", res.Next)
	}
}
