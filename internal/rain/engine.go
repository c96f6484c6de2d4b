// Package rain implements the falling glyph stream effect: a set of streams
// that advance every tick, react to a nearby pointer and are painted onto a
// persistent surface with a low-alpha fade that leaves motion trails.
//
// An Engine is driven by a single goroutine. Host callbacks and Tick must not
// run concurrently.
package rain

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/neon-rain/internal/misc"
	"github.com/iburimskiy/neon-rain/internal/pointer"
)

const (
	spawnChance = 0.01

	spawnMinY   = -100.0
	minSpeed    = 1.0
	speedRange  = 3.0
	minLength   = 5
	lengthRange = 15
)

type Option func(*Engine)

// WithRand replaces the engine's random source.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithClock replaces time.Now for pointer timestamps and settle checks.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

type Engine struct {
	settings Settings
	palette  palette
	rng      *rand.Rand
	now      func() time.Time

	width, height int
	columns, rows int
	streams       []*Stream

	pointer pointer.Tracker

	host    Host
	surface Surface
	cancels []func()
	closed  bool
}

// New validates opts and returns an engine with no streams. Streams appear on
// the first Resize.
func New(opts Options, options ...Option) (*Engine, error) {
	s, err := Configure(opts)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		settings: s,
		palette:  newPalette(s),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:      time.Now,
	}
	for _, o := range options {
		o(e)
	}
	return e, nil
}

func (e *Engine) Settings() Settings { return e.settings }

func (e *Engine) Columns() int { return e.columns }

func (e *Engine) Rows() int { return e.rows }

// Streams returns the live stream set. Callers must not modify it.
func (e *Engine) Streams() []*Stream { return e.streams }

// Pointer returns the last recorded pointer sample.
func (e *Engine) Pointer() pointer.Tracker { return e.pointer }

// Attach registers the engine's resize and pointer handlers on h. The host is
// expected to report the current size through the resize callback.
func (e *Engine) Attach(h Host) {
	if e.closed || h == nil {
		return
	}
	e.detach()
	e.host = h
	e.cancels = append(e.cancels,
		h.OnResize(e.Resize),
		h.OnPointerMove(e.PointerMove),
		h.OnPointerLeave(e.PointerLeave),
	)
	misc.InfoLogger.Printf("%s rain attached", e.settings.Variant)
}

// Resize recomputes the grid, reacquires the surface from the attached host
// and regenerates every stream. In-flight streams are discarded.
func (e *Engine) Resize(width, height int) {
	if e.closed {
		return
	}
	e.width, e.height = max(width, 0), max(height, 0)
	e.columns = e.width / e.settings.FontSize
	e.rows = e.height / e.settings.FontSize

	if e.host != nil {
		e.acquire()
	}
	e.populate()
}

func (e *Engine) acquire() {
	if e.surface != nil {
		e.surface.Release()
		e.surface = nil
	}
	s, err := e.host.Acquire(e.width, e.height)
	if err != nil {
		misc.WarnLogger.Printf("%s rain paused: %v", e.settings.Variant, err)
		return
	}
	e.surface = s
}

// SetSurface paints into s directly, bypassing Host.Acquire.
func (e *Engine) SetSurface(s Surface) {
	if e.closed {
		return
	}
	e.surface = s
}

func (e *Engine) PointerMove(x, y float64) {
	e.pointer.Move(x, y, e.now())
}

func (e *Engine) PointerLeave() {
	e.pointer.Leave()
}

// Tick advances, paints and recycles every stream once and may spawn a new
// one. It does nothing while the surface is missing or detached.
func (e *Engine) Tick() {
	if e.closed || e.surface == nil || !e.surface.Ready() {
		return
	}
	now := e.now()
	fontSize := float64(e.settings.FontSize)

	e.surface.Fade(color.NRGBA{A: uint8(math.Round(e.palette.trailAlpha * 255))})

	for _, s := range e.streams {
		s.Y += s.Speed * e.settings.Speed
		e.sample(s, now)
		e.drawStream(s)

		if s.Y-float64(s.Length)*fontSize > float64(e.height) {
			e.recycle(s)
		}
	}

	if e.rng.Float64() < spawnChance && float64(len(e.streams)) < float64(e.columns)*e.settings.Density {
		e.streams = append(e.streams, e.newStream(e.rng.IntN(e.columns)))
	}
}

// Close detaches all handlers and releases the surface. It is safe to call
// more than once and without Attach.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.detach()
	if e.surface != nil {
		e.surface.Release()
		e.surface = nil
	}
	e.closed = true
	misc.InfoLogger.Printf("%s rain closed", e.settings.Variant)
}

func (e *Engine) detach() {
	for _, cancel := range e.cancels {
		if cancel != nil {
			cancel()
		}
	}
	e.cancels = nil
	e.host = nil
}

func (e *Engine) populate() {
	e.streams = make([]*Stream, 0, int(float64(e.columns)*e.settings.Density)+1)
	for col := 0; col < e.columns; col++ {
		if e.rng.Float64() < e.settings.Density {
			e.streams = append(e.streams, e.newStream(col))
		}
	}
}

func (e *Engine) newStream(col int) *Stream {
	x := float64(col * e.settings.FontSize)
	speed := minSpeed + e.rng.Float64()*speedRange
	return &Stream{
		X:         x,
		BaseX:     x,
		Y:         e.spawnY(),
		Speed:     speed,
		BaseSpeed: speed,
		Length:    minLength + e.rng.IntN(lengthRange),
	}
}

// recycle puts s back above the top edge, reusing its cell storage.
func (e *Engine) recycle(s *Stream) {
	s.Y = e.spawnY()
	s.Cells = s.Cells[:0]
}

// spawnY is uniform in [spawnMinY, 0).
func (e *Engine) spawnY() float64 {
	return spawnMinY - spawnMinY*e.rng.Float64()
}
