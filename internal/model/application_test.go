package model

import "testing"

func TestApplicationStatusIsValid(t *testing.T) {
	t.Parallel()

	valid := []ApplicationStatus{ApplicationPending, ApplicationAccepted, ApplicationRejected}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}

	if ApplicationStatus("open").IsValid() {
		t.Error("unknown status should not be valid")
	}
	if ApplicationStatus("").IsValid() {
		t.Error("empty status should not be valid")
	}
}

func TestApplicationStatusTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from ApplicationStatus
		to   ApplicationStatus
		want bool
	}{
		{"pending_to_accepted", ApplicationPending, ApplicationAccepted, true},
		{"pending_to_rejected", ApplicationPending, ApplicationRejected, true},
		{"pending_to_pending", ApplicationPending, ApplicationPending, true},
		{"accepted_is_terminal", ApplicationAccepted, ApplicationRejected, false},
		{"accepted_to_pending", ApplicationAccepted, ApplicationPending, false},
		{"rejected_is_terminal", ApplicationRejected, ApplicationAccepted, false},
		{"rejected_to_pending", ApplicationRejected, ApplicationPending, false},
		{"terminal_self_noop", ApplicationAccepted, ApplicationAccepted, true},
		{"unknown_target", ApplicationPending, ApplicationStatus("open"), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.from.CanTransitionTo(test.to); got != test.want {
				t.Fatalf("CanTransitionTo(%s -> %s) = %v, want %v", test.from, test.to, got, test.want)
			}
		})
	}
}

func TestApplicationStatusIsTerminal(t *testing.T) {
	t.Parallel()

	if ApplicationPending.IsTerminal() {
		t.Error("pending should not be terminal")
	}
	if !ApplicationAccepted.IsTerminal() {
		t.Error("accepted should be terminal")
	}
	if !ApplicationRejected.IsTerminal() {
		t.Error("rejected should be terminal")
	}
}
