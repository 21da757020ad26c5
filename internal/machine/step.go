package machine

import "strings"

// Configuration is the instantaneous description of a machine: control
// state plus tape, head included. It is an immutable value.
type Configuration struct {
	State State
	Tape  Tape
}

// Initial is the configuration a run starts from: state [Start] with the
// head on the first input symbol.
func Initial(input string) Configuration {
	return Configuration{State: Start, Tape: ParseTape(input)}
}

func (c Configuration) Equal(o Configuration) bool {
	return c.State == o.State && c.Tape.Equal(o.Tape)
}

// Step applies one transition. It reports false when no rule matches the
// current state and the symbol under the head, which includes every
// terminal state. Neither argument is modified.
func Step(rules *RuleSet, c Configuration) (Configuration, bool) {
	r, ok := rules.Lookup(c.State, c.Tape.Read())
	if !ok {
		return Configuration{}, false
	}
	return Configuration{
		State: r.Next,
		Tape:  c.Tape.Write(r.Write).Move(r.Move),
	}, true
}

// Output renders the tape of c with leading and trailing blanks removed.
// Interior blanks are kept.
func Output(c Configuration) string {
	cells := c.Tape.Cells()
	lo, hi := 0, len(cells)
	for lo < hi && cells[lo].IsBlank() {
		lo++
	}
	for hi > lo && cells[hi-1].IsBlank() {
		hi--
	}
	var b strings.Builder
	for _, s := range cells[lo:hi] {
		b.WriteRune(s.Rune())
	}
	return b.String()
}
