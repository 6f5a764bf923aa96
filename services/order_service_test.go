package services

import (
	"strings"
	"testing"
	"time"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
)

func TestBuildTimelineProgress(t *testing.T) {
	steps := buildTimeline(entity.StatusPreparing)

	if len(steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(steps))
	}

	wantReached := map[entity.OrderStatus]bool{
		entity.StatusPending:        true,
		entity.StatusConfirmed:      true,
		entity.StatusPreparing:      true,
		entity.StatusReady:          false,
		entity.StatusOutForDelivery: false,
		entity.StatusDelivered:      false,
	}
	for _, step := range steps {
		if step.Reached != wantReached[step.Status] {
			t.Errorf("step %q reached = %v, want %v", step.Status, step.Reached, wantReached[step.Status])
		}
		if step.Current != (step.Status == entity.StatusPreparing) {
			t.Errorf("step %q current = %v", step.Status, step.Current)
		}
		if step.Label == "" {
			t.Errorf("step %q has no label", step.Status)
		}
	}
}

func TestBuildTimelineDelivered(t *testing.T) {
	steps := buildTimeline(entity.StatusDelivered)
	for _, step := range steps {
		if !step.Reached {
			t.Errorf("step %q should be reached on a delivered order", step.Status)
		}
	}
	last := steps[len(steps)-1]
	if last.Status != entity.StatusDelivered || !last.Current {
		t.Fatalf("last step should be delivered and current, got %+v", last)
	}
}

func TestBuildTimelineCancelled(t *testing.T) {
	steps := buildTimeline(entity.StatusCancelled)

	if len(steps) != 2 {
		t.Fatalf("cancelled timeline should have 2 steps, got %d", len(steps))
	}
	if steps[0].Status != entity.StatusPending || !steps[0].Reached || steps[0].Current {
		t.Errorf("first step should be a reached, non-current pending, got %+v", steps[0])
	}
	if steps[1].Status != entity.StatusCancelled || !steps[1].Reached || !steps[1].Current {
		t.Errorf("second step should be a reached, current cancelled, got %+v", steps[1])
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 30, 0, 0, time.UTC)

	n := generateOrderNumber(now)
	if !strings.HasPrefix(n, "MK-20260815-") {
		t.Fatalf("order number %q should carry the MK prefix and date", n)
	}
	frag := strings.TrimPrefix(n, "MK-20260815-")
	if len(frag) != 6 {
		t.Fatalf("fragment %q should be 6 chars", frag)
	}
	if frag != strings.ToUpper(frag) {
		t.Fatalf("fragment %q should be uppercase", frag)
	}

	if m := generateOrderNumber(now); m == n {
		t.Fatalf("two order numbers should not collide: %q", n)
	}
}
