package rain

import (
	"time"

	"github.com/iburimskiy/neon-rain/internal/geom"
)

const (
	innerTierRatio = 0.2
	innerSpeedMul  = 2
	outerSpeedMul  = 1.5

	speedEase = 0.1
	driftEase = 0.05
	settleEps = 0.01
)

// sample applies the pointer field to s for this tick.
func (e *Engine) sample(s *Stream, now time.Time) {
	p := &e.pointer
	radius := e.settings.Pointer.Radius

	if !e.settings.Pointer.Enabled || !p.Moving {
		s.release()
		e.relaxX(s)
		return
	}

	d := geom.Distance(s.X, s.Y, p.X, p.Y)
	if d >= radius {
		s.release()
		e.relaxX(s)
		return
	}

	if p.Settled(now) {
		s.Tier = TierNone
		if e.palette.easeSpeed {
			s.Speed = geom.Approach(s.Speed, s.BaseSpeed, speedEase, settleEps)
		} else {
			s.Speed = s.BaseSpeed
		}
		e.relaxX(s)
		return
	}

	if d < innerTierRatio*radius {
		s.Tier = TierInner
		s.Speed = s.BaseSpeed * innerSpeedMul
	} else {
		s.Tier = TierOuter
		s.Speed = s.BaseSpeed * outerSpeedMul
	}

	if d > 0 {
		step := min(geom.Proximity(d, radius)*e.settings.Pointer.Force, d)
		s.X += (p.X - s.X) / d * step
	}
}

func (e *Engine) relaxX(s *Stream) {
	if s.X != s.BaseX {
		s.X = geom.Approach(s.X, s.BaseX, driftEase, settleEps)
	}
}
