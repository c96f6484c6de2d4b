package soundtrack

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
)

func counter() beep.Streamer {
	next := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{next, -next}
			next++
		}
		return len(samples), true
	})
}

func TestTapSnapshotIsChronological(t *testing.T) {
	tap := NewTap(counter(), 8)
	buf := make([][2]float64, 5)
	tap.Stream(buf)
	tap.Stream(buf)

	got := tap.Snapshot(4)
	want := []float64{6, 7, 8, 9}
	for i, s := range got {
		if s[0] != want[i] {
			t.Fatalf("Snapshot(4)[%d] = %v, want %v", i, s[0], want[i])
		}
	}
	if n := len(tap.Snapshot(100)); n != 8 {
		t.Fatalf("oversized snapshot len = %d, want ring size 8", n)
	}
}

func TestMeterSmoothsAndDecays(t *testing.T) {
	m := NewMeter(SmoothingFactor)
	loud := make([][2]float64, 64)
	for i := range loud {
		loud[i] = [2]float64{1, 1}
	}

	first := m.Feed(loud)
	if first <= 0 || first >= 1 {
		t.Fatalf("first level = %v, want in (0, 1)", first)
	}
	second := m.Feed(loud)
	if second <= first {
		t.Fatalf("level did not rise: %v -> %v", first, second)
	}
	if got := m.Decay(); got >= second {
		t.Fatalf("decay did not lower the level: %v -> %v", second, got)
	}
	if got := m.Feed(nil); got != m.Level() {
		t.Fatal("empty window changed the level")
	}
}

func TestDecodeRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.ogg")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := Decode(path); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Decode() error = %v, want ErrUnsupported", err)
	}
}

func TestPlayerWithoutTrack(t *testing.T) {
	p := NewPlayer()
	if p.Playing() {
		t.Fatal("new player reports playing")
	}
	if got := p.Level(); got != 0 {
		t.Fatalf("idle level = %v, want 0", got)
	}
	p.TogglePause()
	p.Close()
	p.Close()
}
