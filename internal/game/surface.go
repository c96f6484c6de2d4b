package game

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"
)

var monoSource *text.GoTextFaceSource

func init() {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		panic(err)
	}
	monoSource = s
}

func monoFace(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: monoSource, Size: size}
}

// surface is an offscreen image a rain engine paints into during Update.
// Draw blits it onto the screen at the region origin.
type surface struct {
	img      *ebiten.Image
	face     *text.GoTextFace
	ascent   float64
	released bool
}

func newSurface(width, height int, face *text.GoTextFace) *surface {
	return &surface{
		img:    ebiten.NewImage(width, height),
		face:   face,
		ascent: face.Metrics().HAscent,
	}
}

func (s *surface) Ready() bool {
	return s.img != nil && !s.released
}

func (s *surface) Fade(c color.NRGBA) {
	if !s.Ready() {
		return
	}
	b := s.img.Bounds()
	vector.DrawFilledRect(s.img, 0, 0, float32(b.Dx()), float32(b.Dy()), c, false)
}

func (s *surface) DrawGlyph(glyph rune, x, y float64, c color.NRGBA) {
	if !s.Ready() {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-s.ascent)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.img, string(glyph), s.face, op)
}

func (s *surface) Release() {
	if s.released {
		return
	}
	s.released = true
	if s.img != nil {
		s.img.Deallocate()
	}
}
