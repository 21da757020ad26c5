package machine

import "strings"

// cell is a node of an immutable singly-linked list. Cells are shared
// between tapes and never modified after construction.
type cell struct {
	sym  Symbol
	next *cell
}

// Tape is a doubly-infinite tape split at the head. left holds the cells
// left of the head nearest-first; right holds the head cell followed by the
// cells to its right. Cells never visited are not stored and read as Blank.
//
// Tape is a value: every operation returns a new Tape and leaves the
// receiver intact, so earlier tapes stay valid.
type Tape struct {
	left, right *cell
	nl, nr      int
}

// NewTape places syms with the head on the first one.
func NewTape(syms ...Symbol) Tape {
	var t Tape
	for i := len(syms) - 1; i >= 0; i-- {
		t.right = &cell{sym: syms[i], next: t.right}
	}
	t.nr = len(syms)
	return t
}

// ParseTape builds the initial tape for an input string.
func ParseTape(input string) Tape {
	return NewTape(Symbols(input)...)
}

func (t Tape) Read() Symbol {
	if t.right == nil {
		return Blank
	}
	return t.right.sym
}

func (t Tape) Write(s Symbol) Tape {
	if t.right == nil {
		t.right = &cell{sym: s}
		t.nr = 1
		return t
	}
	t.right = &cell{sym: s, next: t.right.next}
	return t
}

// Move shifts the head one cell. Crossing into unvisited territory
// materialises a Blank cell on the side being left behind or entered.
func (t Tape) Move(m Move) Tape {
	switch m {
	case Right:
		if t.right == nil {
			t.left = &cell{sym: Blank, next: t.left}
		} else {
			t.left = &cell{sym: t.right.sym, next: t.left}
			t.right = t.right.next
			t.nr--
		}
		t.nl++
	case Left:
		if t.left == nil {
			t.right = &cell{sym: Blank, next: t.right}
		} else {
			t.right = &cell{sym: t.left.sym, next: t.right}
			t.left = t.left.next
			t.nl--
		}
		t.nr++
	case Stay:
	}
	return t
}

// Head is the index of the head cell within [Tape.Cells].
func (t Tape) Head() int { return t.nl }

// Len is the number of materialised cells.
func (t Tape) Len() int { return t.nl + t.nr }

// Cells returns the materialised cells left to right.
func (t Tape) Cells() []Symbol {
	out := make([]Symbol, t.nl+t.nr)
	i := t.nl - 1
	for c := t.left; c != nil; c = c.next {
		out[i] = c.sym
		i--
	}
	i = t.nl
	for c := t.right; c != nil; c = c.next {
		out[i] = c.sym
		i++
	}
	return out
}

// Equal reports whether both tapes hold the same cells with the head in the
// same place.
func (t Tape) Equal(o Tape) bool {
	if t.nl != o.nl || t.nr != o.nr {
		return false
	}
	return sameCells(t.left, o.left) && sameCells(t.right, o.right)
}

func sameCells(a, b *cell) bool {
	for a != nil && b != nil {
		if a == b {
			return true
		}
		if a.sym != b.sym {
			return false
		}
		a, b = a.next, b.next
	}
	return a == nil && b == nil
}

// String renders every materialised cell, blanks included, using
// [Symbol.Rune].
func (t Tape) String() string {
	var b strings.Builder
	for _, s := range t.Cells() {
		b.WriteRune(s.Rune())
	}
	return b.String()
}
