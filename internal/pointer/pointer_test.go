package pointer

import (
	"testing"
	"time"
)

func TestTrackerSettles(t *testing.T) {
	var tr Tracker
	start := time.Unix(1000, 0)
	tr.Move(10, 20, start)

	if !tr.Active(start.Add(50 * time.Millisecond)) {
		t.Error("expected active 50ms after a move")
	}
	if tr.Settled(start.Add(SettleDelay)) {
		t.Error("exactly SettleDelay must not count as settled")
	}
	if !tr.Settled(start.Add(SettleDelay + time.Millisecond)) {
		t.Error("expected settled after SettleDelay")
	}
	if tr.Active(start.Add(time.Second)) {
		t.Error("settled pointer must not be active")
	}
}

func TestTrackerLeave(t *testing.T) {
	var tr Tracker
	now := time.Unix(1000, 0)
	tr.Move(1, 1, now)
	tr.Leave()
	if tr.Moving || tr.Active(now) {
		t.Error("pointer must be inactive after Leave")
	}
	if tr.X != 1 || tr.Y != 1 {
		t.Error("Leave must keep the last known position")
	}
}
