package rain

import (
	"testing"
	"time"
)

func fieldEngine(t *testing.T, v Variant) (*Engine, *testClock) {
	t.Helper()
	o := DefaultOptions(v)
	o.PointerRadius = 100
	o.PointerForce = 2
	return newTestEngine(t, o, 42)
}

func restingStream() *Stream {
	return &Stream{X: 50, BaseX: 50, Y: 50, Speed: 2, BaseSpeed: 2, Length: 10}
}

func TestPointerTiers(t *testing.T) {
	const eps = 1e-6
	tests := []struct {
		name      string
		distance  float64
		wantTier  Tier
		wantSpeed float64
	}{
		{"on the stream", 0, TierInner, 4},
		{"just inside inner tier", 20 - eps, TierInner, 4},
		{"just outside inner tier", 20 + eps, TierOuter, 3},
		{"just inside radius", 100 - eps, TierOuter, 3},
		{"exactly at radius", 100, TierNone, 2},
		{"far away", 250, TierNone, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clock := fieldEngine(t, VariantMatrix)
			s := restingStream()
			e.PointerMove(s.X, s.Y+tt.distance)
			e.sample(s, clock.now())

			if s.Tier != tt.wantTier {
				t.Errorf("tier = %v, want %v", s.Tier, tt.wantTier)
			}
			if s.Speed != tt.wantSpeed {
				t.Errorf("speed = %v, want %v", s.Speed, tt.wantSpeed)
			}
		})
	}
}

func TestPointerInteractionDisabled(t *testing.T) {
	o := DefaultOptions(VariantMatrix)
	o.PointerInteraction = false
	e, clock := newTestEngine(t, o, 1)
	s := restingStream()
	e.PointerMove(s.X, s.Y)
	e.sample(s, clock.now())
	if s.Tier != TierNone || s.Speed != s.BaseSpeed {
		t.Fatalf("disabled interaction produced tier %v speed %v", s.Tier, s.Speed)
	}
}

func TestPointerLeaveResetsImmediately(t *testing.T) {
	e, clock := fieldEngine(t, VariantMatrix)
	s := restingStream()
	e.PointerMove(s.X+5, s.Y)
	e.sample(s, clock.now())
	if s.Tier != TierInner {
		t.Fatalf("tier = %v, want inner", s.Tier)
	}

	e.PointerLeave()
	e.sample(s, clock.now())
	if s.Tier != TierNone || s.Speed != s.BaseSpeed {
		t.Fatalf("after leave tier = %v speed = %v, want none at base speed", s.Tier, s.Speed)
	}
}

func TestSettledPointerRelaxesSpeed(t *testing.T) {
	tests := []struct {
		variant  Variant
		maxTicks int
	}{
		{VariantMatrix, 100},
		{VariantFire, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			e, clock := fieldEngine(t, tt.variant)
			s := restingStream()
			e.PointerMove(s.X+30, s.Y)
			e.sample(s, clock.now())
			if s.Tier != TierOuter || s.Speed != 3 {
				t.Fatalf("tier = %v speed = %v, want outer at 3", s.Tier, s.Speed)
			}

			clock.advance(150 * time.Millisecond)
			prev := s.Speed
			for tick := 1; tick <= tt.maxTicks; tick++ {
				e.sample(s, clock.now())
				if s.Tier != TierNone {
					t.Fatalf("tick %d: settled pointer kept tier %v", tick, s.Tier)
				}
				if s.Speed > prev {
					t.Fatalf("tick %d: speed rose from %v to %v", tick, prev, s.Speed)
				}
				prev = s.Speed
				if s.Speed == s.BaseSpeed {
					return
				}
			}
			t.Fatalf("speed %v did not reach base %v within %d ticks", s.Speed, s.BaseSpeed, tt.maxTicks)
		})
	}
}

func TestPointerDriftAndReturn(t *testing.T) {
	e, clock := fieldEngine(t, VariantMatrix)
	s := restingStream()
	e.PointerMove(s.X+30, s.Y)

	for i := 0; i < 5; i++ {
		e.sample(s, clock.now())
	}
	if s.X <= s.BaseX {
		t.Fatalf("x = %v, want pulled toward the pointer past %v", s.X, s.BaseX)
	}
	if s.X > s.BaseX+30 {
		t.Fatalf("x = %v overshot the pointer", s.X)
	}

	e.PointerLeave()
	prev := s.X
	for i := 0; i < 500 && s.X != s.BaseX; i++ {
		e.sample(s, clock.now())
		if s.X > prev {
			t.Fatalf("x moved away from base: %v -> %v", prev, s.X)
		}
		prev = s.X
	}
	if s.X != s.BaseX {
		t.Fatalf("x = %v did not return to %v", s.X, s.BaseX)
	}
}
