package rain

// Cell is one glyph slot of a stream.
type Cell struct {
	Glyph rune
	// blinking lives for the single paint that set it.
	blinking bool
}

// Stream is one falling column. Cells[0] is the leading edge.
type Stream struct {
	X, BaseX         float64
	Y                float64
	Speed, BaseSpeed float64
	Length           int
	Cells            []Cell
	Tier             Tier
}

// release drops any pointer override at once.
func (s *Stream) release() {
	s.Tier = TierNone
	s.Speed = s.BaseSpeed
}
