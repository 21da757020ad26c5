package metrics

import "github.com/san-kum/tmsim/internal/machine"

// Marks counts non-blank cells on the latest tape, the busy beaver score.
type Marks struct {
	name  string
	marks int
}

func NewMarks() *Marks {
	return &Marks{name: "marks"}
}

func (m *Marks) Name() string { return m.name }

func (m *Marks) Observe(step int, c machine.Configuration) {
	m.marks = 0
	for _, s := range c.Tape.Cells() {
		if !s.IsBlank() {
			m.marks++
		}
	}
}

func (m *Marks) Value() float64 { return float64(m.marks) }

func (m *Marks) Reset() { m.marks = 0 }
