// Package pointer records the latest pointer sample for an effect instance.
package pointer

import "time"

// SettleDelay is how long the pointer must be still before it counts as settled.
const SettleDelay = 100 * time.Millisecond

// Tracker is owned by a single effect. Event handlers only store the sample;
// distance work happens on the next tick.
type Tracker struct {
	X, Y     float64
	Moving   bool
	LastMove time.Time
}

func (t *Tracker) Move(x, y float64, now time.Time) {
	t.X = x
	t.Y = y
	t.Moving = true
	t.LastMove = now
}

func (t *Tracker) Leave() {
	t.Moving = false
}

// Settled reports whether no movement arrived for longer than SettleDelay.
func (t *Tracker) Settled(now time.Time) bool {
	return now.Sub(t.LastMove) > SettleDelay
}

// Active reports a pointer that is inside the target and recently moved.
func (t *Tracker) Active(now time.Time) bool {
	return t.Moving && !t.Settled(now)
}
