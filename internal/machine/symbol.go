package machine

// SymbolKind enumerates the variants of [Symbol].
type SymbolKind uint8

const (
	SymbolBlank SymbolKind = iota
	SymbolZero
	SymbolOne
	SymbolOther
)

// Symbol is a tape symbol. The zero value is Blank, which is also the
// content of every cell the head has never visited.
type Symbol struct {
	kind SymbolKind
	char rune
}

var (
	Blank = Symbol{kind: SymbolBlank}
	Zero  = Symbol{kind: SymbolZero}
	One   = Symbol{kind: SymbolOne}
)

// SymbolFor maps an input character to its symbol: '0' is Zero, '1' is One,
// ' ' is Blank and any other character is kept verbatim.
func SymbolFor(r rune) Symbol {
	switch r {
	case '0':
		return Zero
	case '1':
		return One
	case ' ':
		return Blank
	default:
		return Symbol{kind: SymbolOther, char: r}
	}
}

// Other returns the symbol carrying r. Characters with a dedicated variant
// resolve to it, so every character has exactly one representation.
func Other(r rune) Symbol {
	return SymbolFor(r)
}

// Symbols maps every character of input through [SymbolFor].
func Symbols(input string) []Symbol {
	syms := make([]Symbol, 0, len(input))
	for _, r := range input {
		syms = append(syms, SymbolFor(r))
	}
	return syms
}

func (s Symbol) Kind() SymbolKind { return s.kind }

// Rune is the inverse of [SymbolFor].
func (s Symbol) Rune() rune {
	switch s.kind {
	case SymbolZero:
		return '0'
	case SymbolOne:
		return '1'
	case SymbolOther:
		return s.char
	default:
		return ' '
	}
}

func (s Symbol) IsBlank() bool { return s.kind == SymbolBlank }

// String renders Blank as "_" so it stays visible in traces and rule dumps.
func (s Symbol) String() string {
	if s.kind == SymbolBlank {
		return "_"
	}
	return string(s.Rune())
}
