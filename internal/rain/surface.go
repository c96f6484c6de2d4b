package rain

import (
	"errors"
	"image/color"
)

// ErrSurfaceUnavailable is returned by a Host that cannot provide a surface.
var ErrSurfaceUnavailable = errors.New("rain: surface unavailable")

// Surface is the raster an Engine paints into. Its contents persist between
// ticks; the engine never reads them back.
type Surface interface {
	// Ready reports whether the surface can still be drawn on.
	Ready() bool
	// Fade composites c over the whole surface.
	Fade(c color.NRGBA)
	// DrawGlyph draws glyph with its baseline at y and left edge at x.
	DrawGlyph(glyph rune, x, y float64, c color.NRGBA)
	Release()
}

// Host owns placement of the surface relative to a target region and
// delivers resize and pointer signals in region coordinates. The cancel funcs
// it returns detach the registered callback and must be safe to call twice.
type Host interface {
	Acquire(width, height int) (Surface, error)
	OnResize(fn func(width, height int)) (cancel func())
	OnPointerMove(fn func(x, y float64)) (cancel func())
	OnPointerLeave(fn func()) (cancel func())
}
