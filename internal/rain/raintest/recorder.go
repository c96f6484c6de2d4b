// Package raintest provides a recording surface for tests of rain hosts and
// the rain engine.
package raintest

import "image/color"

// Glyph is one recorded DrawGlyph call.
type Glyph struct {
	Rune  rune
	X, Y  float64
	Color color.NRGBA
}

// Recorder is an in-memory rain.Surface. Every Fade starts a new frame;
// Glyphs holds the draws of the current frame only.
type Recorder struct {
	Width, Height int

	Frames   int
	Fades    []color.NRGBA
	Glyphs   []Glyph
	Released bool
	// Detached simulates a surface that was removed by its host.
	Detached bool
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) Ready() bool {
	return r != nil && !r.Released && !r.Detached
}

func (r *Recorder) Fade(c color.NRGBA) {
	r.Frames++
	r.Fades = append(r.Fades, c)
	r.Glyphs = r.Glyphs[:0]
}

func (r *Recorder) DrawGlyph(glyph rune, x, y float64, c color.NRGBA) {
	r.Glyphs = append(r.Glyphs, Glyph{Rune: glyph, X: x, Y: y, Color: c})
}

func (r *Recorder) Release() {
	r.Released = true
}

// At returns the glyphs of the current frame drawn at column x.
func (r *Recorder) At(x float64) []Glyph {
	var out []Glyph
	for _, g := range r.Glyphs {
		if g.X == x {
			out = append(out, g)
		}
	}
	return out
}
