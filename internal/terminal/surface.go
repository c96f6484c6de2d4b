// Package terminal hosts a rain engine in a terminal through tcell. One
// terminal cell is one surface pixel, so engines run with a font size of 1.
package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// cells dimmer than this are cleared on flush
const visibleFloor = 6

type cell struct {
	glyph   rune
	r, g, b float64
}

// Surface emulates a persistent raster on a cell grid: Fade darkens every
// cell, DrawGlyph alpha-blends a glyph into one cell.
type Surface struct {
	screen        tcell.Screen
	width, height int
	cells         []cell
	released      bool
}

func NewSurface(screen tcell.Screen, width, height int) *Surface {
	return &Surface{
		screen: screen,
		width:  width,
		height: height,
		cells:  make([]cell, width*height),
	}
}

func (s *Surface) Ready() bool {
	return !s.released && s.screen != nil
}

func (s *Surface) Fade(c color.NRGBA) {
	a := float64(c.A) / 255
	for i := range s.cells {
		cl := &s.cells[i]
		cl.r = cl.r*(1-a) + float64(c.R)*a
		cl.g = cl.g*(1-a) + float64(c.G)*a
		cl.b = cl.b*(1-a) + float64(c.B)*a
	}
}

// DrawGlyph puts glyph in the cell whose bottom edge is the baseline y.
func (s *Surface) DrawGlyph(glyph rune, x, y float64, c color.NRGBA) {
	col := int(math.Floor(x))
	row := int(math.Ceil(y)) - 1
	if col < 0 || row < 0 || col >= s.width || row >= s.height {
		return
	}
	a := float64(c.A) / 255
	cl := &s.cells[row*s.width+col]
	cl.glyph = glyph
	cl.r = cl.r*(1-a) + float64(c.R)*a
	cl.g = cl.g*(1-a) + float64(c.G)*a
	cl.b = cl.b*(1-a) + float64(c.B)*a
}

func (s *Surface) Release() {
	s.released = true
	s.cells = nil
}

// Cell reports the glyph and color currently held at col, row.
func (s *Surface) Cell(col, row int) (rune, color.NRGBA) {
	if col < 0 || row < 0 || col >= s.width || row >= s.height || s.cells == nil {
		return 0, color.NRGBA{}
	}
	cl := s.cells[row*s.width+col]
	return cl.glyph, color.NRGBA{R: to8(cl.r), G: to8(cl.g), B: to8(cl.b), A: 255}
}

// Flush copies the cell grid to the screen.
func (s *Surface) Flush() {
	if !s.Ready() {
		return
	}
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			cl := &s.cells[row*s.width+col]
			if cl.glyph == 0 || math.Max(cl.r, math.Max(cl.g, cl.b)) < visibleFloor {
				cl.glyph = 0
				s.screen.SetContent(col, row, ' ', nil, base)
				continue
			}
			fg := tcell.NewRGBColor(int32(to8(cl.r)), int32(to8(cl.g)), int32(to8(cl.b)))
			s.screen.SetContent(col, row, cl.glyph, nil, base.Foreground(fg))
		}
	}
	s.screen.Show()
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}
