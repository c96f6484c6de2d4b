package starfield

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"
)

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func newTestField(t *testing.T, opts Options) (*Field, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Unix(1700000000, 0)}
	f, err := New(opts, WithRand(rand.New(rand.NewPCG(3, 4))), WithClock(clock.now))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return f, clock
}

func TestResizeGeneratesStars(t *testing.T) {
	f, _ := newTestField(t, DefaultOptions())
	f.Resize(800, 600)

	stars := f.Stars()
	if len(stars) != 200 {
		t.Fatalf("stars = %d, want 200", len(stars))
	}
	for i, s := range stars {
		if s.X < 0 || s.X >= 800 || s.Y < 0 || s.Y >= 600 {
			t.Fatalf("star %d at (%v, %v) outside the surface", i, s.X, s.Y)
		}
		if s.Size < 0.5 || s.Size >= 2.5 {
			t.Errorf("star %d size = %v, want [0.5, 2.5)", i, s.Size)
		}
		if s.Opacity < 0.5 || s.Opacity >= 1 {
			t.Errorf("star %d opacity = %v, want [0.5, 1)", i, s.Opacity)
		}
	}
}

func TestNewRejectsBadColor(t *testing.T) {
	o := DefaultOptions()
	o.StarColors = []string{"nope"}
	if _, err := New(o); err == nil {
		t.Fatal("New() accepted an invalid star color")
	}
}

func TestShootingStarLifecycle(t *testing.T) {
	o := DefaultOptions()
	o.StarCount = 0
	f, clock := newTestField(t, o)
	f.Resize(800, 600)

	for i := 0; i < 100; i++ {
		f.Update()
	}
	if len(f.ShootingStars()) != 0 {
		t.Fatal("shooting star launched before the interval elapsed")
	}

	clock.t = clock.t.Add(9 * time.Second)
	for i := 0; i < 1000 && len(f.ShootingStars()) == 0; i++ {
		f.Update()
	}
	if len(f.ShootingStars()) != 1 {
		t.Fatalf("shooting stars = %d, want 1", len(f.ShootingStars()))
	}
	s := f.ShootingStars()[0]
	if s.Angle < 30 || s.Angle >= 60 || s.Opacity > 1 {
		t.Fatalf("unexpected shooting star %+v", s)
	}
	for _, sp := range f.Sparks(s) {
		if sp.Color.R != 255 || sp.Color.G >= 150 {
			t.Fatalf("spark color %v is not fire-colored", sp.Color)
		}
	}

	for i := 0; i < 500 && len(f.ShootingStars()) > 0; i++ {
		f.Update()
	}
	if len(f.ShootingStars()) != 0 {
		t.Fatal("shooting star never left the field")
	}
}

func TestTwinkleAdvancesPhase(t *testing.T) {
	o := DefaultOptions()
	o.StarCount = 1
	f, _ := newTestField(t, o)
	f.Resize(100, 100)

	before := f.Stars()[0]
	f.Update()
	after := f.Stars()[0]
	if after.Phase != 0 && math.Abs(after.Phase-(before.Phase+before.Speed)) > 1e-12 {
		t.Fatalf("phase = %v, want %v", after.Phase, before.Phase+before.Speed)
	}
}
