package soundtrack

import "math"

// Meter turns recent samples into a smoothed loudness level in [0, 1].
type Meter struct {
	Smoothing float64
	level     float64
}

func NewMeter(smoothing float64) *Meter {
	return &Meter{Smoothing: smoothing}
}

func (m *Meter) Level() float64 { return m.level }

// Feed folds a window of stereo samples into the level.
func (m *Meter) Feed(samples [][2]float64) float64 {
	if len(samples) == 0 {
		return m.level
	}
	var sumSquares float64
	for _, s := range samples {
		mono := (s[0] + s[1]) * 0.5
		sumSquares += mono * mono
	}
	rms := math.Sqrt(sumSquares / float64(len(samples)))
	mag := math.Min(1, math.Pow(rms, 0.3))

	m.level = m.Smoothing*m.level + (1-m.Smoothing)*mag
	return m.level
}

// Decay lets the level fall while nothing is playing.
func (m *Meter) Decay() float64 {
	m.level *= m.Smoothing
	return m.level
}
