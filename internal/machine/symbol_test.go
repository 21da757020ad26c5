package machine

import (
	"errors"
	"testing"
)

func TestSymbolFor(t *testing.T) {
	tests := []struct {
		r    rune
		kind SymbolKind
	}{
		{'0', SymbolZero},
		{'1', SymbolOne},
		{' ', SymbolBlank},
		{'a', SymbolOther},
		{'B', SymbolOther},
		{'é', SymbolOther},
	}

	for _, tt := range tests {
		s := SymbolFor(tt.r)
		if s.Kind() != tt.kind {
			t.Errorf("SymbolFor(%q).Kind() = %v, want %v", tt.r, s.Kind(), tt.kind)
		}
		if s.Rune() != tt.r {
			t.Errorf("SymbolFor(%q).Rune() = %q", tt.r, s.Rune())
		}
	}
}

func TestOtherIsCanonical(t *testing.T) {
	if Other('1') != One || Other(' ') != Blank {
		t.Error("Other did not resolve dedicated characters")
	}
	if Other('x') != SymbolFor('x') {
		t.Error("Other('x') differs from SymbolFor")
	}
	var zero Symbol
	if zero != Blank {
		t.Error("zero Symbol is not Blank")
	}
}

func TestStateVariants(t *testing.T) {
	if !Named("q0").IsNamed() || Named("q0") != Start {
		t.Error("Named(q0) is not the start state")
	}
	if !Accept.IsTerminal() || !Reject.IsTerminal() {
		t.Error("terminal states not terminal")
	}
	if Named("accept") == Accept {
		t.Error("named state collides with Accept")
	}
	if Accept.String() != "accept" || Reject.String() != "reject" {
		t.Errorf("String() = %q, %q", Accept, Reject)
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
	}{
		{"L", Left}, {"r", Right}, {"N", Stay}, {"s", Stay}, {" R ", Right},
	}
	for _, tt := range tests {
		got, err := ParseMove(tt.in)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseMove("up"); !errors.Is(err, ErrUnknownMove) {
		t.Errorf("expected ErrUnknownMove, got %v", err)
	}
}
