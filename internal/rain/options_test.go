package rain

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestConfigureRejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"zero font size", func(o *Options) { o.FontSize = 0 }},
		{"negative font size", func(o *Options) { o.FontSize = -4 }},
		{"zero speed", func(o *Options) { o.Speed = 0 }},
		{"NaN speed", func(o *Options) { o.Speed = math.NaN() }},
		{"empty alphabet", func(o *Options) { o.Alphabet = "" }},
		{"bad color", func(o *Options) { o.Color = "not-a-color" }},
		{"unknown variant", func(o *Options) { o.Variant = "plasma" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions(VariantMatrix)
			tt.modify(&o)
			if _, err := Configure(o); !errors.Is(err, ErrConfiguration) {
				t.Fatalf("Configure() error = %v, want ErrConfiguration", err)
			}
			if _, err := New(o); !errors.Is(err, ErrConfiguration) {
				t.Fatalf("New() error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestConfigureClamps(t *testing.T) {
	o := DefaultOptions(VariantMatrix)
	o.Density = 2
	o.FadeLength = 3
	o.BlinkRate = -1
	o.BlinkIntensity = 0.5
	o.PointerRadius = 0
	o.PointerForce = -1

	s, err := Configure(o)
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if s.Density != 1 {
		t.Errorf("density = %v, want 1", s.Density)
	}
	if s.FadeLength != 1 {
		t.Errorf("fadeLength = %v, want 1", s.FadeLength)
	}
	if s.BlinkRate != 0 {
		t.Errorf("blinkRate = %v, want 0", s.BlinkRate)
	}
	if s.BlinkIntensity != 1 {
		t.Errorf("blinkIntensity = %v, want 1", s.BlinkIntensity)
	}
	if s.Pointer.Radius != defaultPointerRadius || s.Pointer.Force != defaultPointerForce {
		t.Errorf("pointer = %+v, want defaults", s.Pointer)
	}

	o.Density = 0
	if s, _ = Configure(o); s.Density != defaultDensity {
		t.Errorf("zero density = %v, want %v", s.Density, defaultDensity)
	}
}

func TestConfigureDefaults(t *testing.T) {
	s, err := Configure(DefaultOptions(""))
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if s.Variant != VariantMatrix {
		t.Errorf("variant = %q, want matrix", s.Variant)
	}
	if want := (color.NRGBA{G: 255, A: 255}); s.Color != want {
		t.Errorf("color = %v, want %v", s.Color, want)
	}
	if string(s.Alphabet) != "01" {
		t.Errorf("alphabet = %q, want 01", string(s.Alphabet))
	}
	if !s.Pointer.Enabled {
		t.Error("pointer interaction should default on")
	}

	fire, err := Configure(DefaultOptions(VariantFire))
	if err != nil {
		t.Fatalf("Configure(fire) error = %v", err)
	}
	if fire.BlinkRate == 0 {
		t.Error("fire variant should blink by default")
	}
}
