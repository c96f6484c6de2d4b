// Package starfield simulates twinkling stars and the occasional shooting
// star with a trail of sparks.
package starfield

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	css "github.com/mazznoer/csscolorparser"
)

type Options struct {
	StarCount            int           `yaml:"starCount"`
	ShootingStarInterval time.Duration `yaml:"shootingStarInterval"`
	BaseStarSize         float64       `yaml:"baseStarSize"`
	ShootingStarSize     float64       `yaml:"shootingStarSize"`
	ShootingStarSpeed    float64       `yaml:"shootingStarSpeed"`
	StarColors           []string      `yaml:"starColors"`
}

func DefaultOptions() Options {
	return Options{
		StarCount:            200,
		ShootingStarInterval: 8 * time.Second,
		BaseStarSize:         2,
		ShootingStarSize:     3,
		ShootingStarSpeed:    15,
		StarColors:           []string{"#ffffff", "#ffe9c4", "#d4fbff"},
	}
}

const (
	shootChance   = 0.1
	relocateBelow = -0.95
	relocateP     = 0.1
	margin        = 100
	sparksPerStar = 10
	sparkSpread   = 30
	fadeFloor     = 0.01
)

type Star struct {
	X, Y    float64
	Size    float64
	Phase   float64
	Speed   float64
	Opacity float64
	Color   color.NRGBA
}

// Alpha is the star's current twinkle opacity; non-positive means hidden.
func (s Star) Alpha() float64 {
	return math.Sin(s.Phase) * s.Opacity
}

type ShootingStar struct {
	X, Y      float64
	Length    float64
	Angle     float64 // degrees above the horizontal
	Speed     float64
	Opacity   float64
	FadeSpeed float64
}

// Tail returns the far end of the trail.
func (s ShootingStar) Tail() (x, y float64) {
	rad := s.Angle * math.Pi / 180
	return s.X - math.Cos(rad)*s.Length, s.Y + math.Sin(rad)*s.Length
}

type Spark struct {
	X, Y  float64
	Size  float64
	Color color.NRGBA
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
	opts   Options
	colors []color.NRGBA
	rng    *rand.Rand
	now    func() time.Time

	width, height float64
	stars         []Star
	shooting      []ShootingStar
	lastShooting  time.Time
}

func New(opts Options, options ...Option) (*Field, error) {
	d := DefaultOptions()
	if opts.StarCount < 0 {
		opts.StarCount = 0
	}
	if opts.ShootingStarInterval <= 0 {
		opts.ShootingStarInterval = d.ShootingStarInterval
	}
	if opts.BaseStarSize <= 0 {
		opts.BaseStarSize = d.BaseStarSize
	}
	if opts.ShootingStarSize <= 0 {
		opts.ShootingStarSize = d.ShootingStarSize
	}
	if opts.ShootingStarSpeed <= 0 {
		opts.ShootingStarSpeed = d.ShootingStarSpeed
	}
	if len(opts.StarColors) == 0 {
		opts.StarColors = d.StarColors
	}

	f := &Field{
		opts: opts,
		rng:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:  time.Now,
	}
	for _, s := range opts.StarColors {
		c, err := css.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("starfield: star color %q: %w", s, err)
		}
		r, g, b, _ := c.RGBA255()
		f.colors = append(f.colors, color.NRGBA{R: r, G: g, B: b, A: 255})
	}
	for _, o := range options {
		o(f)
	}
	f.lastShooting = f.now()
	return f, nil
}

func (f *Field) Stars() []Star { return f.stars }

func (f *Field) ShootingStars() []ShootingStar { return f.shooting }

func (f *Field) Options() Options { return f.opts }

// Resize regenerates the stars for the new surface.
func (f *Field) Resize(width, height int) {
	f.width, f.height = float64(width), float64(height)
	f.stars = make([]Star, f.opts.StarCount)
	for i := range f.stars {
		f.stars[i] = Star{
			X:       f.rng.Float64() * f.width,
			Y:       f.rng.Float64() * f.height,
			Size:    f.rng.Float64()*f.opts.BaseStarSize + 0.5,
			Phase:   f.rng.Float64() * 2 * math.Pi,
			Speed:   0.02 + f.rng.Float64()*0.04,
			Opacity: f.rng.Float64()*0.5 + 0.5,
			Color:   f.colors[f.rng.IntN(len(f.colors))],
		}
	}
}

// Update advances one frame.
func (f *Field) Update() {
	for i := range f.stars {
		s := &f.stars[i]
		s.Phase += s.Speed
		if math.Sin(s.Phase) < relocateBelow && f.rng.Float64() < relocateP {
			s.X = f.rng.Float64() * f.width
			s.Y = f.rng.Float64() * f.height
			s.Phase = 0
		}
	}

	now := f.now()
	if now.Sub(f.lastShooting) > f.opts.ShootingStarInterval && f.rng.Float64() < shootChance {
		f.shooting = append(f.shooting, f.newShootingStar())
		f.lastShooting = now
	}

	kept := f.shooting[:0]
	for _, s := range f.shooting {
		rad := s.Angle * math.Pi / 180
		s.X += math.Cos(rad) * s.Speed
		s.Y -= math.Sin(rad) * s.Speed
		s.Opacity = math.Max(0, s.Opacity-s.FadeSpeed*(1-s.Opacity*0.5))

		if s.Opacity > fadeFloor &&
			s.X > -margin && s.X < f.width+margin &&
			s.Y > -margin && s.Y < f.height+margin {
			kept = append(kept, s)
		}
	}
	f.shooting = kept
}

func (f *Field) newShootingStar() ShootingStar {
	return ShootingStar{
		X:         f.rng.Float64() * f.width,
		Y:         f.height,
		Length:    100 + f.rng.Float64()*100,
		Angle:     30 + f.rng.Float64()*30,
		Speed:     f.opts.ShootingStarSpeed + f.rng.Float64()*10,
		Opacity:   1,
		FadeSpeed: 0.01 + f.rng.Float64()*0.02,
	}
}

// Sparks scatters fire particles along the first half of a shooting star's
// trail. They are redrawn at random every frame.
func (f *Field) Sparks(s ShootingStar) []Spark {
	rad := s.Angle * math.Pi / 180
	out := make([]Spark, 0, sparksPerStar)
	for i := 0; i < sparksPerStar; i++ {
		spread := (f.rng.Float64() - 0.5) * sparkSpread
		dist := f.rng.Float64() * s.Length * 0.5
		opacity := (1 - dist/s.Length) * s.Opacity * f.rng.Float64()
		out = append(out, Spark{
			X:    s.X - math.Cos(rad)*dist + math.Cos(rad+math.Pi/2)*spread,
			Y:    s.Y + math.Sin(rad)*dist + math.Sin(rad+math.Pi/2)*spread,
			Size: f.rng.Float64()*2 + 1,
			Color: color.NRGBA{
				R: 255,
				G: uint8(f.rng.Float64() * 150),
				A: uint8(math.Round(opacity * 255)),
			},
		})
	}
	return out
}
