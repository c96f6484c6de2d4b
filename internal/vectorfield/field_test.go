package vectorfield

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"
)

var line = Path{{-100, 0}, {100, 0}}

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func newTestField(t *testing.T, path Path, opts Options) (*Field, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Unix(1700000000, 0)}
	f, err := New(path, opts, WithRand(rand.New(rand.NewPCG(1, 2))), WithClock(clock.now))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return f, clock
}

func quietOptions() Options {
	o := DefaultOptions()
	o.Orbits = nil
	o.Turbulence = 0
	return o
}

func TestPathGeometry(t *testing.T) {
	if got := line.Length(); got != 200 {
		t.Fatalf("Length() = %v, want 200", got)
	}
	if p := line.PointAt(50); p.X != -50 || p.Y != 0 {
		t.Errorf("PointAt(50) = %+v, want (-50, 0)", p)
	}
	if p := line.PointAt(500); p != line[1] {
		t.Errorf("PointAt past end = %+v, want %+v", p, line[1])
	}
	if tg := line.Tangent(100); math.Abs(tg.X-1) > 1e-9 || tg.Y != 0 {
		t.Errorf("Tangent() = %+v, want (1, 0)", tg)
	}
	if Logo.Length() == 0 || Logo[0] != Logo[len(Logo)-1] {
		t.Error("Logo must be a closed outline")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(Path{{0, 0}}, DefaultOptions()); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("single point path error = %v", err)
	}
	o := DefaultOptions()
	o.Spacing = 0
	if _, err := New(line, o); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("zero spacing error = %v", err)
	}
}

func TestSamplesSpacedByArcLength(t *testing.T) {
	f, _ := newTestField(t, line, quietOptions())
	f.Resize(1000, 1000)

	samples := f.Samples()
	if len(samples) != 5 {
		t.Fatalf("samples = %d, want 5", len(samples))
	}
	// 200 path units span half of 1000 pixels
	for i, s := range samples {
		wantX := 500 + (-100+float64(i)*50)*2.5
		if math.Abs(s.X-wantX) > 1e-9 || s.Y != 500 {
			t.Errorf("sample %d at (%v, %v), want (%v, 500)", i, s.X, s.Y, wantX)
		}
		if want := float64(i) / 4; s.Offset != want {
			t.Errorf("sample %d offset = %v, want %v", i, s.Offset, want)
		}
	}
	if f.InfluenceRadius() != 50 {
		t.Errorf("influence radius = %v, want 50", f.InfluenceRadius())
	}
}

func TestInfluenceDecaysToFloor(t *testing.T) {
	f, _ := newTestField(t, line, quietOptions())
	f.Resize(1000, 1000)
	f.samples[0].Influence = 3

	prev := f.samples[0].Influence
	for i := 0; i < 200; i++ {
		f.Update()
		got := f.samples[0].Influence
		if got > prev {
			t.Fatalf("influence rose without sources: %v -> %v", prev, got)
		}
		prev = got
	}
	if prev != f.opts.MinInfluence {
		t.Fatalf("influence = %v, want floor %v", prev, f.opts.MinInfluence)
	}
}

func TestOrbitInfluenceIsLowPassed(t *testing.T) {
	o := quietOptions()
	o.Orbits = []OrbitConfig{{RadiusPct: 0, Intensity: 1}}
	f, _ := newTestField(t, line, o)
	f.Resize(1000, 1000)

	// sample 2 sits on the viewport center, where the orbit is
	f.Update()
	want := 0.1*0.92 + 1*2.5
	if got := f.samples[2].Influence; math.Abs(got-want) > 1e-9 {
		t.Fatalf("influence = %v, want %v", got, want)
	}
	f.Update()
	want = want*0.92 + 2.5
	if got := f.samples[2].Influence; math.Abs(got-want) > 1e-9 {
		t.Fatalf("second influence = %v, want %v", got, want)
	}
	if got := f.samples[0].Influence; got != 0.1 {
		t.Errorf("distant sample influence = %v, want 0.1", got)
	}
}

func TestPulseScalesOrbitWeight(t *testing.T) {
	o := quietOptions()
	o.Orbits = []OrbitConfig{{RadiusPct: 0, Intensity: 1}}
	f, _ := newTestField(t, line, o)
	f.Resize(1000, 1000)
	f.Pulse(1)
	f.Update()
	if got, want := f.samples[2].Influence, 0.1*0.92+2*2.5; math.Abs(got-want) > 1e-9 {
		t.Fatalf("pulsed influence = %v, want %v", got, want)
	}
}

func TestPointerInfluenceExpires(t *testing.T) {
	f, clock := newTestField(t, line, quietOptions())
	f.Resize(1000, 1000)

	f.PointerMove(500, 500)
	f.Update()
	if got := f.samples[2].Influence; got <= 0.1 {
		t.Fatalf("pointer did not raise influence: %v", got)
	}

	clock.t = clock.t.Add(200 * time.Millisecond)
	f.samples[2].Influence = 0.1
	f.Update()
	if got := f.samples[2].Influence; got != 0.1 {
		t.Fatalf("stale pointer still influenced: %v", got)
	}
}

func TestResizeDoesNotCompoundOrbitRadius(t *testing.T) {
	f, _ := newTestField(t, Logo, DefaultOptions())
	f.Resize(1000, 800)
	first := f.Orbits()[0].Radius
	f.Resize(1000, 800)
	if got := f.Orbits()[0].Radius; got != first || got != 400 {
		t.Fatalf("orbit radius = %v after second resize, want %v (400)", got, first)
	}
}

func TestStopsAndColorAt(t *testing.T) {
	f, _ := newTestField(t, line, quietOptions())
	f.Resize(1000, 1000)
	for i := range f.samples {
		f.samples[i].Flow = 0
	}
	f.samples[0].Influence = 1
	f.samples[1].Influence = 0.5
	f.updateStops()

	stops := f.Stops()
	if stops[0].Offset != 0 || stops[len(stops)-1].Offset != 1 {
		t.Fatalf("stops span [%v, %v], want [0, 1]", stops[0].Offset, stops[len(stops)-1].Offset)
	}
	if c := stops[0].Color; c.R != 255 || c.A != 204 {
		t.Errorf("full intensity stop = %v, want white at alpha 204", c)
	}
	mid := f.ColorAt(0.125)
	if mid.R >= stops[0].Color.R || mid.R <= stops[1].Color.R {
		t.Errorf("ColorAt(0.125) = %v, want between %v and %v", mid, stops[0].Color, stops[1].Color)
	}
}
