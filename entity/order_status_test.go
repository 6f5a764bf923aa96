package entity

import (
	"testing"
)

func TestValidStatus(t *testing.T) {
	for _, s := range StatusProgression() {
		if !ValidStatus(s) {
			t.Errorf("progression status %q should be valid", s)
		}
	}
	if !ValidStatus(StatusCancelled) {
		t.Error("cancelled should be valid")
	}
	if ValidStatus(OrderStatus("shipped")) {
		t.Error("unknown status should be invalid")
	}
	if ValidStatus(OrderStatus("")) {
		t.Error("empty status should be invalid")
	}
}

func TestIsTerminal(t *testing.T) {
	if !StatusDelivered.IsTerminal() {
		t.Error("delivered should be terminal")
	}
	if !StatusCancelled.IsTerminal() {
		t.Error("cancelled should be terminal")
	}
	for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusOutForDelivery} {
		if s.IsTerminal() {
			t.Errorf("%q should not be terminal", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	t.Run("forward steps", func(t *testing.T) {
		steps := StatusProgression()
		for i := 0; i < len(steps)-1; i++ {
			if !CanTransition(steps[i], steps[i+1]) {
				t.Errorf("%q -> %q should be allowed", steps[i], steps[i+1])
			}
		}
	})

	t.Run("cancel from any non-terminal state", func(t *testing.T) {
		for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusOutForDelivery} {
			if !CanTransition(s, StatusCancelled) {
				t.Errorf("%q -> cancelled should be allowed", s)
			}
		}
	})

	t.Run("terminal states are final", func(t *testing.T) {
		if CanTransition(StatusDelivered, StatusPending) {
			t.Error("delivered -> pending should not be canonical")
		}
		if CanTransition(StatusCancelled, StatusConfirmed) {
			t.Error("cancelled -> confirmed should not be canonical")
		}
	})

	t.Run("no skips, no backwards, no self", func(t *testing.T) {
		if CanTransition(StatusPending, StatusPreparing) {
			t.Error("pending -> preparing skips confirmed")
		}
		if CanTransition(StatusReady, StatusConfirmed) {
			t.Error("ready -> confirmed goes backwards")
		}
		if CanTransition(StatusPending, StatusPending) {
			t.Error("same-status move is not a transition")
		}
	})

	t.Run("unknown statuses", func(t *testing.T) {
		if CanTransition(OrderStatus("limbo"), StatusPending) {
			t.Error("unknown source should not transition")
		}
		if CanTransition(StatusPending, OrderStatus("limbo")) {
			t.Error("unknown target should not transition")
		}
	})
}

func TestStatusProgressionIsCopy(t *testing.T) {
	p := StatusProgression()
	p[0] = StatusCancelled
	if StatusProgression()[0] != StatusPending {
		t.Error("StatusProgression should return a copy")
	}
}
