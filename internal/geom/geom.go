// Package geom holds the small numeric helpers shared by the visual effects.
package geom

import (
	"math"

	"golang.org/x/exp/constraints"
)

func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func Distance(x0, y0, x1, y1 float64) float64 {
	return math.Hypot(x1-x0, y1-y0)
}

// Proximity returns the linear falloff weight of a source at distance d from
// a target: 1 at the source, 0 at and beyond radius.
func Proximity(d, radius float64) float64 {
	if radius <= 0 || d >= radius {
		return 0
	}
	return 1 - d/radius
}

// Approach moves v toward target by factor and snaps once within eps, so a
// repeated Approach reaches target in a finite number of steps.
func Approach(v, target, factor, eps float64) float64 {
	v += (target - v) * factor
	if math.Abs(target-v) < eps {
		return target
	}
	return v
}
