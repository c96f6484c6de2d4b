package vectorfield

import "math"

type Point struct {
	X, Y float64
}

// Path is a polyline. Repeat the first point at the end to close it.
type Path []Point

func (p Path) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += math.Hypot(p[i].X-p[i-1].X, p[i].Y-p[i-1].Y)
	}
	return total
}

// PointAt returns the point at arc length dist, clamped to the path ends.
func (p Path) PointAt(dist float64) Point {
	if len(p) == 0 {
		return Point{}
	}
	if dist <= 0 {
		return p[0]
	}
	for i := 1; i < len(p); i++ {
		a, b := p[i-1], p[i]
		seg := math.Hypot(b.X-a.X, b.Y-a.Y)
		if dist <= seg {
			if seg == 0 {
				return a
			}
			t := dist / seg
			return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
		}
		dist -= seg
	}
	return p[len(p)-1]
}

// Tangent returns the unit direction of the path at dist.
func (p Path) Tangent(dist float64) Point {
	const delta = 0.1
	length := p.Length()
	a := p.PointAt(math.Max(0, dist-delta))
	b := p.PointAt(math.Min(length, dist+delta))
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return Point{}
	}
	return Point{X: dx / l, Y: dy / l}
}

// Bounds returns the axis-aligned bounding box of the path.
func (p Path) Bounds() (lo, hi Point) {
	if len(p) == 0 {
		return
	}
	lo, hi = p[0], p[0]
	for _, pt := range p[1:] {
		lo.X = math.Min(lo.X, pt.X)
		lo.Y = math.Min(lo.Y, pt.Y)
		hi.X = math.Max(hi.X, pt.X)
		hi.Y = math.Max(hi.Y, pt.Y)
	}
	return
}

// Logo is the outline the demo distorts: a block "T" inside a hexagon frame,
// drawn as one closed stroke.
var Logo = Path{
	{0, -100}, {87, -50}, {87, 50}, {0, 100}, {-87, 50}, {-87, -50}, {0, -100},
	{0, -60}, {-50, -60}, {-50, -35}, {-12, -35}, {-12, 70}, {12, 70}, {12, -35},
	{50, -35}, {50, -60}, {0, -60},
}
