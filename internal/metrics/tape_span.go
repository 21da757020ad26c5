package metrics

import "github.com/san-kum/tmsim/internal/machine"

// TapeSpan is the number of materialised cells at the end of the run.
// Tapes never shrink, so the last observation is also the maximum.
type TapeSpan struct {
	name  string
	cells int
}

func NewTapeSpan() *TapeSpan {
	return &TapeSpan{name: "tape_span"}
}

func (s *TapeSpan) Name() string { return s.name }

func (s *TapeSpan) Observe(step int, c machine.Configuration) {
	if n := c.Tape.Len(); n > s.cells {
		s.cells = n
	}
}

func (s *TapeSpan) Value() float64 { return float64(s.cells) }

func (s *TapeSpan) Reset() { s.cells = 0 }
