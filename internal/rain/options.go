package rain

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	css "github.com/mazznoer/csscolorparser"
)

// ErrConfiguration reports construction options the engine cannot run with.
var ErrConfiguration = errors.New("rain: invalid configuration")

type Variant string

const (
	VariantMatrix Variant = "matrix"
	VariantFire   Variant = "fire"
)

// Options is the construction-time configuration of an Engine. Start from
// DefaultOptions; Configure turns it into Settings.
type Options struct {
	Variant Variant `yaml:"variant"`
	// Density is the share of columns that carry a stream, in (0, 1].
	Density float64 `yaml:"density"`
	// Speed scales every stream's per-tick advance.
	Speed    float64 `yaml:"speed"`
	FontSize int     `yaml:"fontSize"`
	Alphabet string  `yaml:"alphabet"`
	// Color is any CSS color: "#0F0", "rgb(0, 255, 0)", "lime".
	Color string `yaml:"color"`
	// FadeLength is how much of the alpha the tail loses, in [0, 1].
	FadeLength float64 `yaml:"fadeLength"`
	// BlinkRate is the per-cell, per-frame blink probability (fire only).
	BlinkRate      float64 `yaml:"blinkRate"`
	BlinkIntensity float64 `yaml:"blinkIntensity"`

	PointerInteraction bool    `yaml:"pointerInteraction"`
	PointerRadius      float64 `yaml:"pointerRadius"`
	PointerForce       float64 `yaml:"pointerForce"`
}

const (
	defaultDensity        = 0.05
	defaultFontSize       = 14
	defaultAlphabet       = "01"
	defaultFadeLength     = 0.8
	defaultBlinkIntensity = 1.5
	defaultPointerRadius  = 100
	defaultPointerForce   = 2
)

func DefaultOptions(v Variant) Options {
	o := Options{
		Variant:            v,
		Density:            defaultDensity,
		Speed:              1,
		FontSize:           defaultFontSize,
		Alphabet:           defaultAlphabet,
		Color:              "#0F0",
		FadeLength:         defaultFadeLength,
		BlinkIntensity:     defaultBlinkIntensity,
		PointerInteraction: true,
		PointerRadius:      defaultPointerRadius,
		PointerForce:       defaultPointerForce,
	}
	if v == VariantFire {
		o.Color = "#FF4D00"
		o.BlinkRate = 0.02
	}
	return o
}

type PointerSettings struct {
	Enabled bool
	Radius  float64
	Force   float64
}

// Settings is the validated form of Options. It never changes after New.
type Settings struct {
	Variant        Variant
	Density        float64
	Speed          float64
	FontSize       int
	Alphabet       []rune
	Color          color.NRGBA
	FadeLength     float64
	BlinkRate      float64
	BlinkIntensity float64
	Pointer        PointerSettings
}

// Configure validates o and fills in defaults. Out-of-range values are
// clamped; only a missing font size, speed, alphabet, color or variant is an
// error.
func Configure(o Options) (Settings, error) {
	var s Settings

	switch o.Variant {
	case "":
		s.Variant = VariantMatrix
	case VariantMatrix, VariantFire:
		s.Variant = o.Variant
	default:
		return Settings{}, fmt.Errorf("%w: unknown variant %q", ErrConfiguration, o.Variant)
	}

	if o.FontSize <= 0 {
		return Settings{}, fmt.Errorf("%w: fontSize must be positive, got %d", ErrConfiguration, o.FontSize)
	}
	s.FontSize = o.FontSize

	if !(o.Speed > 0) || math.IsInf(o.Speed, 0) {
		return Settings{}, fmt.Errorf("%w: speed must be positive, got %v", ErrConfiguration, o.Speed)
	}
	s.Speed = o.Speed

	s.Alphabet = []rune(o.Alphabet)
	if len(s.Alphabet) == 0 {
		return Settings{}, fmt.Errorf("%w: alphabet is empty", ErrConfiguration)
	}

	clr, err := ParseColor(o.Color)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: color %q: %v", ErrConfiguration, o.Color, err)
	}
	s.Color = clr

	switch {
	case !(o.Density > 0):
		s.Density = defaultDensity
	case o.Density > 1:
		s.Density = 1
	default:
		s.Density = o.Density
	}

	s.FadeLength = clampUnit(o.FadeLength)
	s.BlinkRate = clampUnit(o.BlinkRate)
	s.BlinkIntensity = o.BlinkIntensity
	if !(s.BlinkIntensity >= 1) {
		s.BlinkIntensity = 1
	}

	s.Pointer = PointerSettings{
		Enabled: o.PointerInteraction,
		Radius:  o.PointerRadius,
		Force:   o.PointerForce,
	}
	if !(s.Pointer.Radius > 0) {
		s.Pointer.Radius = defaultPointerRadius
	}
	if !(s.Pointer.Force > 0) {
		s.Pointer.Force = defaultPointerForce
	}

	return s, nil
}

// clampUnit clamps into [0, 1], mapping NaN to 0.
func clampUnit(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ParseColor parses a CSS color string.
func ParseColor(str string) (color.NRGBA, error) {
	c, err := css.Parse(str)
	if err != nil {
		return color.NRGBA{}, err
	}
	return color.NRGBA{
		R: uint8(255 * c.R),
		G: uint8(255 * c.G),
		B: uint8(255 * c.B),
		A: uint8(255 * c.A),
	}, nil
}
