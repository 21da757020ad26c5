package metrics

import "github.com/san-kum/tmsim/internal/machine"

// HeadTravel counts the cells the head has moved across.
type HeadTravel struct {
	name     string
	lastHead int
	lastLen  int
	travel   int
	samples  int
}

func NewHeadTravel() *HeadTravel {
	return &HeadTravel{name: "head_travel"}
}

func (h *HeadTravel) Name() string { return h.name }

// Observe diffs the head index between steps. A left move off the edge of
// the tape keeps the index at 0 and grows the tape instead.
func (h *HeadTravel) Observe(step int, c machine.Configuration) {
	head, n := c.Tape.Head(), c.Tape.Len()
	if h.samples > 0 {
		d := head - h.lastHead
		if d < 0 {
			d = -d
		}
		if d == 0 && head == 0 && n > max(h.lastLen, 1) {
			d = 1
		}
		h.travel += d
	}
	h.lastHead, h.lastLen = head, n
	h.samples++
}

func (h *HeadTravel) Value() float64 { return float64(h.travel) }

func (h *HeadTravel) Reset() {
	h.lastHead, h.lastLen, h.travel, h.samples = 0, 0, 0, 0
}
