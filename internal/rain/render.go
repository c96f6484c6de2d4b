package rain

import "image/color"

const (
	mutationRate         = 0.05
	agitatedMutationRate = 0.2
)

// drawStream grows the stream to its full length and paints its cells.
func (e *Engine) drawStream(s *Stream) {
	for len(s.Cells) < s.Length {
		s.Cells = append(s.Cells, Cell{Glyph: e.randomGlyph()})
	}

	fontSize := float64(e.settings.FontSize)
	override, overridden := e.palette.override(s.Tier)
	mutate := mutationRate
	if overridden {
		mutate = agitatedMutationRate
	}
	blink := e.settings.Variant == VariantFire && e.settings.BlinkRate > 0

	for i := range s.Cells {
		c := &s.Cells[i]
		y := s.Y - float64(i)*fontSize

		if y > 0 && y-fontSize < float64(e.height) {
			var clr color.NRGBA
			if overridden {
				clr = override
			} else {
				if blink && e.rng.Float64() < e.settings.BlinkRate {
					c.blinking = true
				}
				clr = e.settings.cellColor(i, s.Length, fadeAlpha(i, s.Length, e.settings.FadeLength), c.blinking)
			}
			e.surface.DrawGlyph(c.Glyph, s.X, y, clr)
		}
		c.blinking = false

		if e.rng.Float64() < mutate {
			c.Glyph = e.randomGlyph()
		}
	}
}

func (e *Engine) randomGlyph() rune {
	return e.settings.Alphabet[e.rng.IntN(len(e.settings.Alphabet))]
}
