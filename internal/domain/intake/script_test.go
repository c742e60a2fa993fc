package intake

import "testing"

func TestScript_Reply_StepsThroughInOrder(t *testing.T) {
	s := DefaultScript()
	for i, want := range s {
		if got := s.Reply(i + 1); got != want {
			t.Errorf("reply %d: got %q, want %q", i+1, got, want)
		}
	}
}

func TestScript_Reply_RepeatsFinalMessage(t *testing.T) {
	s := DefaultScript()
	last := s[len(s)-1]
	for _, n := range []int{len(s) + 1, len(s) + 10, 100} {
		if got := s.Reply(n); got != last {
			t.Errorf("reply %d: got %q, want final message", n, got)
		}
	}
}

func TestScript_Reply_ClampsLowCounts(t *testing.T) {
	s := DefaultScript()
	if got := s.Reply(0); got != s[0] {
		t.Errorf("reply 0: got %q, want first message", got)
	}
	if got := s.Reply(-3); got != s[0] {
		t.Errorf("reply -3: got %q, want first message", got)
	}
}

func TestScript_Reply_Empty(t *testing.T) {
	if got := (Script{}).Reply(1); got != "" {
		t.Errorf("empty script: got %q, want empty string", got)
	}
}

func TestPriorityForTriage(t *testing.T) {
	cases := map[string]int{
		TriageImmediate: 1,
		TriageUrgent:    2,
		TriageRoutine:   3,
		"made-up-code":  3,
		"":              3,
	}
	for code, want := range cases {
		if got := PriorityForTriage(code); got != want {
			t.Errorf("PriorityForTriage(%q) = %d, want %d", code, got, want)
		}
	}
}
