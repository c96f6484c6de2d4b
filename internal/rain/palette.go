package rain

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/neon-rain/internal/geom"
)

// Tier is the pointer response a stream is currently under.
type Tier int

const (
	TierNone Tier = iota
	TierOuter
	TierInner
)

func (t Tier) String() string {
	switch t {
	case TierOuter:
		return "outer"
	case TierInner:
		return "inner"
	default:
		return "none"
	}
}

const (
	coreBlend  = 0.85
	trailBlend = 0.45

	// fire cells lose this much red toward the tail
	fireDepthDim = 0.7
)

// palette holds the per-variant constants resolved once in New.
type palette struct {
	trailAlpha float64
	// easeSpeed selects the exponential speed relaxation; otherwise the
	// speed resets immediately.
	easeSpeed bool
	core      color.NRGBA
	trail     color.NRGBA
}

func newPalette(s Settings) palette {
	switch s.Variant {
	case VariantFire:
		return palette{
			trailAlpha: 0.12,
			core:       color.NRGBA{R: 0xFF, G: 0xF6, B: 0xD0, A: 0xFF},
			trail:      color.NRGBA{R: 0xFF, G: 0xA0, B: 0x40, A: 0xFF},
		}
	default:
		return palette{
			trailAlpha: 0.05,
			easeSpeed:  true,
			core:       towardWhite(s.Color, coreBlend),
			trail:      towardWhite(s.Color, trailBlend),
		}
	}
}

func towardWhite(c color.NRGBA, t float64) color.NRGBA {
	base := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	r, g, b := base.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, t).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}

func (p palette) override(t Tier) (color.NRGBA, bool) {
	switch t {
	case TierInner:
		return p.core, true
	case TierOuter:
		return p.trail, true
	default:
		return color.NRGBA{}, false
	}
}

// fadeAlpha is the opacity of cell i in a stream of the given length.
func fadeAlpha(i, length int, fadeLength float64) float64 {
	return 1 - float64(i)/float64(length)*fadeLength
}

// cellColor is the default color of a cell that is not under override.
func (s *Settings) cellColor(i, length int, alpha float64, blinking bool) color.NRGBA {
	a := uint8(math.Round(geom.Clamp01(alpha) * float64(s.Color.A)))
	if s.Variant != VariantFire {
		return color.NRGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: a}
	}

	scale := 1 - fireDepthDim*float64(i)/float64(length)
	if blinking {
		scale *= s.BlinkIntensity
	}
	r := geom.Clamp(float64(s.Color.R)*scale, 0, 255)
	// green stays the base color's fraction of red
	var g float64
	if s.Color.R > 0 {
		g = r * float64(s.Color.G) / float64(s.Color.R)
	} else {
		g = geom.Clamp(float64(s.Color.G)*scale, 0, 255)
	}
	b := geom.Clamp(float64(s.Color.B)*scale, 0, 255)
	return color.NRGBA{R: uint8(r), G: uint8(geom.Clamp(g, 0, 255)), B: uint8(b), A: a}
}
