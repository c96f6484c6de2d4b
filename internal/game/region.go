package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/neon-rain/internal/rain"
)

// region is a rectangle of the window that hosts one rain engine. Pointer
// coordinates are reported relative to its top-left corner.
type region struct {
	bounds   image.Rectangle
	fontSize float64
	surface  *surface

	nextID int
	resize map[int]func(int, int)
	move   map[int]func(float64, float64)
	leave  map[int]func()

	inside       bool
	lastX, lastY int
}

func newRegion(fontSize int) *region {
	return &region{
		fontSize: float64(fontSize),
		resize:   map[int]func(int, int){},
		move:     map[int]func(float64, float64){},
		leave:    map[int]func(){},
	}
}

func (r *region) Acquire(width, height int) (rain.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, rain.ErrSurfaceUnavailable
	}
	r.surface = newSurface(width, height, monoFace(r.fontSize))
	return r.surface, nil
}

func (r *region) OnResize(fn func(width, height int)) func() {
	r.nextID++
	id := r.nextID
	r.resize[id] = fn
	return func() { delete(r.resize, id) }
}

func (r *region) OnPointerMove(fn func(x, y float64)) func() {
	r.nextID++
	id := r.nextID
	r.move[id] = fn
	return func() { delete(r.move, id) }
}

func (r *region) OnPointerLeave(fn func()) func() {
	r.nextID++
	id := r.nextID
	r.leave[id] = fn
	return func() { delete(r.leave, id) }
}

// setBounds moves the region and reports a size change to its listeners.
func (r *region) setBounds(b image.Rectangle) {
	if b == r.bounds {
		return
	}
	sizeChanged := b.Size() != r.bounds.Size()
	r.bounds = b
	if sizeChanged {
		r.fireResize()
	}
}

func (r *region) fireResize() {
	for _, fn := range r.resize {
		fn(r.bounds.Dx(), r.bounds.Dy())
	}
}

// track delivers move and leave signals for the cursor at x, y. Only actual
// movement counts as a move so a resting cursor can settle.
func (r *region) track(x, y int, focused bool) {
	in := focused && image.Pt(x, y).In(r.bounds)
	if !in {
		if r.inside {
			r.inside = false
			for _, fn := range r.leave {
				fn()
			}
		}
		return
	}
	if r.inside && x == r.lastX && y == r.lastY {
		return
	}
	r.inside = true
	r.lastX, r.lastY = x, y
	px, py := float64(x-r.bounds.Min.X), float64(y-r.bounds.Min.Y)
	for _, fn := range r.move {
		fn(px, py)
	}
}

func (r *region) draw(screen *ebiten.Image) {
	if r.surface == nil || !r.surface.Ready() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(r.bounds.Min.X), float64(r.bounds.Min.Y))
	screen.DrawImage(r.surface.img, op)
}
