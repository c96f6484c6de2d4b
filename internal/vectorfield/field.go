// Package vectorfield distorts a logo outline with a field of orbiting
// sources and the pointer. Influence along the outline is low-pass filtered
// and exposed as grayscale gradient stops.
package vectorfield

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/neon-rain/internal/geom"
	"github.com/iburimskiy/neon-rain/internal/pointer"
)

var ErrInvalidOptions = errors.New("vectorfield: invalid options")

type OrbitConfig struct {
	Angle float64 `yaml:"angle"`
	// RadiusPct is the orbit radius as a percentage of the viewport width.
	RadiusPct float64 `yaml:"radiusPct"`
	Speed     float64 `yaml:"speed"`
	Intensity float64 `yaml:"intensity"`
}

type Options struct {
	// Spacing is the arc length between samples, in path units.
	Spacing float64 `yaml:"spacing"`
	// InfluencePct is the influence radius as a percentage of viewport width.
	InfluencePct  float64 `yaml:"influencePct"`
	FieldStrength float64 `yaml:"fieldStrength"`
	// FadeSpeed is the per-frame retention of the previous influence.
	FadeSpeed     float64 `yaml:"fadeSpeed"`
	Turbulence    float64 `yaml:"turbulence"`
	PointerWeight float64 `yaml:"pointerWeight"`
	MinInfluence  float64 `yaml:"minInfluence"`
	// LogoScale is the share of the smaller viewport side the path spans.
	LogoScale float64       `yaml:"logoScale"`
	Orbits    []OrbitConfig `yaml:"orbits"`
}

func DefaultOptions() Options {
	return Options{
		Spacing:       50,
		InfluencePct:  5,
		FieldStrength: 2.5,
		FadeSpeed:     0.92,
		Turbulence:    0.15,
		PointerWeight: 1.5,
		MinInfluence:  0.1,
		LogoScale:     0.5,
		Orbits: []OrbitConfig{
			{Angle: 0, RadiusPct: 40, Speed: 0.002, Intensity: 1.2},
			{Angle: math.Pi * 0.3, RadiusPct: 35, Speed: 0.0015, Intensity: 1.0},
			{Angle: math.Pi * 0.6, RadiusPct: 30, Speed: 0.0018, Intensity: 0.9},
			{Angle: math.Pi * 0.9, RadiusPct: 35, Speed: 0.0012, Intensity: 1.1},
		},
	}
}

// Sample is one point of the outline in screen space.
type Sample struct {
	X, Y               float64
	TangentX, TangentY float64
	// Offset is the normalized arc-length position in [0, 1].
	Offset    float64
	Influence float64
	Flow      float64
}

type Orbit struct {
	OrbitConfig
	CenterX, CenterY float64
	Radius           float64
}

func (o Orbit) Position() (x, y float64) {
	return o.CenterX + math.Cos(o.Angle)*o.Radius, o.CenterY + math.Sin(o.Angle)*o.Radius
}

// Stop is one gradient stop along the outline.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

type Option func(*Field)

func WithRand(r *rand.Rand) Option {
	return func(f *Field) {
		if r != nil {
			f.rng = r
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(f *Field) {
		if now != nil {
			f.now = now
		}
	}
}

type Field struct {
	opts Options
	rng  *rand.Rand
	now  func() time.Time

	path   Path
	length float64

	width, height   float64
	scale           float64
	originX         float64
	originY         float64
	influenceRadius float64

	samples []Sample
	orbits  []Orbit
	stops   []Stop
	pulse   float64

	pointer pointer.Tracker
}

func New(path Path, opts Options, options ...Option) (*Field, error) {
	if len(path) < 2 || path.Length() == 0 {
		return nil, fmt.Errorf("%w: path needs at least two distinct points", ErrInvalidOptions)
	}
	if !(opts.Spacing > 0) {
		return nil, fmt.Errorf("%w: spacing must be positive, got %v", ErrInvalidOptions, opts.Spacing)
	}
	d := DefaultOptions()
	if !(opts.InfluencePct > 0) {
		opts.InfluencePct = d.InfluencePct
	}
	if !(opts.FieldStrength > 0) {
		opts.FieldStrength = d.FieldStrength
	}
	opts.FadeSpeed = geom.Clamp01(opts.FadeSpeed)
	if opts.LogoScale <= 0 {
		opts.LogoScale = d.LogoScale
	}

	f := &Field{
		opts:   opts,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:    time.Now,
		path:   path,
		length: path.Length(),
	}
	for _, o := range options {
		o(f)
	}
	f.orbits = make([]Orbit, len(opts.Orbits))
	for i, c := range opts.Orbits {
		f.orbits[i] = Orbit{OrbitConfig: c}
	}
	return f, nil
}

func (f *Field) Samples() []Sample { return f.samples }

func (f *Field) Orbits() []Orbit { return f.orbits }

func (f *Field) Stops() []Stop { return f.stops }

func (f *Field) InfluenceRadius() float64 { return f.influenceRadius }

// Resize fits the path into the viewport and regenerates the samples.
func (f *Field) Resize(width, height int) {
	f.width, f.height = float64(width), float64(height)
	f.influenceRadius = f.width * f.opts.InfluencePct / 100

	for i := range f.orbits {
		o := &f.orbits[i]
		o.Radius = f.width * o.RadiusPct / 100
		o.CenterX = f.width / 2
		o.CenterY = f.height / 2
	}

	lo, hi := f.path.Bounds()
	span := math.Max(hi.X-lo.X, hi.Y-lo.Y)
	f.scale = f.opts.LogoScale * math.Min(f.width, f.height) / span
	f.originX = f.width/2 - (lo.X+hi.X)/2*f.scale
	f.originY = f.height/2 - (lo.Y+hi.Y)/2*f.scale

	f.generate()
}

// ToScreen maps a path point into viewport coordinates.
func (f *Field) ToScreen(p Point) (x, y float64) {
	return f.originX + p.X*f.scale, f.originY + p.Y*f.scale
}

func (f *Field) generate() {
	f.samples = f.samples[:0]
	for dist := 0.0; dist <= f.length; dist += f.opts.Spacing {
		x, y := f.ToScreen(f.path.PointAt(dist))
		t := f.path.Tangent(dist)
		f.samples = append(f.samples, Sample{
			X:         x,
			Y:         y,
			TangentX:  t.X,
			TangentY:  t.Y,
			Influence: f.opts.MinInfluence,
			Flow:      f.rng.Float64() * 2 * math.Pi,
		})
	}
	if n := len(f.samples); n > 1 {
		for i := range f.samples {
			f.samples[i].Offset = float64(i) / float64(n-1)
		}
	}
	f.stops = make([]Stop, len(f.samples))
}

func (f *Field) PointerMove(x, y float64) {
	f.pointer.Move(x, y, f.now())
}

func (f *Field) PointerLeave() {
	f.pointer.Leave()
}

// Pulse scales every orbit's weight by 1+level until the next call.
func (f *Field) Pulse(level float64) {
	f.pulse = geom.Clamp01(level)
}

// Update advances the orbits and filters the influence at every sample.
func (f *Field) Update() {
	for i := range f.orbits {
		f.orbits[i].Angle += f.orbits[i].Speed
	}

	active := f.pointer.Active(f.now())
	r := f.influenceRadius
	for i := range f.samples {
		s := &f.samples[i]

		var total float64
		for _, o := range f.orbits {
			ox, oy := o.Position()
			total += geom.Proximity(geom.Distance(ox, oy, s.X, s.Y), r) * o.Intensity * (1 + f.pulse)
		}
		if active {
			total += geom.Proximity(geom.Distance(f.pointer.X, f.pointer.Y, s.X, s.Y), r) * f.opts.PointerWeight
		}

		s.Influence = math.Max(f.opts.MinInfluence, s.Influence*f.opts.FadeSpeed+total*f.opts.FieldStrength)
		s.Flow += (f.rng.Float64() - 0.5) * f.opts.Turbulence
	}

	f.updateStops()
}

func (f *Field) updateStops() {
	for i, s := range f.samples {
		intensity := s.Influence * (math.Cos(s.Flow)*0.5 + 0.5)
		alpha := math.Min(1, intensity*0.8)
		v := uint8(math.Min(255, math.Floor(255*intensity)))
		f.stops[i] = Stop{
			Offset: s.Offset,
			Color:  color.NRGBA{R: v, G: v, B: v, A: uint8(alpha * 255)},
		}
	}
}

// ColorAt interpolates the gradient at a normalized arc-length offset.
func (f *Field) ColorAt(offset float64) color.NRGBA {
	switch len(f.stops) {
	case 0:
		return color.NRGBA{}
	case 1:
		return f.stops[0].Color
	}
	offset = geom.Clamp01(offset)
	for i := 1; i < len(f.stops); i++ {
		a, b := f.stops[i-1], f.stops[i]
		if offset <= b.Offset {
			t := 0.0
			if b.Offset > a.Offset {
				t = (offset - a.Offset) / (b.Offset - a.Offset)
			}
			return color.NRGBA{
				R: lerp8(a.Color.R, b.Color.R, t),
				G: lerp8(a.Color.G, b.Color.G, t),
				B: lerp8(a.Color.B, b.Color.B, t),
				A: lerp8(a.Color.A, b.Color.A, t),
			}
		}
	}
	return f.stops[len(f.stops)-1].Color
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(math.Round(geom.Lerp(float64(a), float64(b), t)))
}

// Path returns the outline being distorted.
func (f *Field) Path() Path { return f.path }

// Length returns the arc length of the outline in path units.
func (f *Field) Length() float64 { return f.length }
