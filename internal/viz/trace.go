package viz

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/san-kum/tmsim/internal/machine"
)

// blankGlyph keeps blank cells apart from a literal underscore symbol.
const blankGlyph = '␣'

// Glyph is how a single cell is drawn.
func Glyph(s machine.Symbol) string {
	if s.IsBlank() {
		return string(blankGlyph)
	}
	return string(s.Rune())
}

// TapeText renders cells with blanks made visible.
func TapeText(cells []machine.Symbol) string {
	var b strings.Builder
	for _, s := range cells {
		b.WriteString(Glyph(s))
	}
	return b.String()
}

// StoredTapeText converts a stored tape, where blanks are spaces.
func StoredTapeText(tape string) string {
	return strings.ReplaceAll(tape, " ", string(blankGlyph))
}

// FormatStep renders one configuration as two lines, the second carrying a
// caret under the head cell. A head past the last materialised cell points
// at an implicit blank, which is drawn. Padding goes by display width, so
// the caret stays under wide characters.
//
//	Step 2: State: q0     | Tape: 101
//	                      | Head:   ^
func FormatStep(step int, state string, head int, tape string) string {
	cells := []rune(tape)
	for len(cells) <= head {
		cells = append(cells, blankGlyph)
	}
	prefix := fmt.Sprintf("Step %d: State: %-6s", step, state)
	return fmt.Sprintf("%s | Tape: %s\n%s | Head: %s^\n",
		prefix, string(cells),
		strings.Repeat(" ", runewidth.StringWidth(prefix)),
		strings.Repeat(" ", runewidth.StringWidth(string(cells[:head]))))
}

func FormatConfiguration(step int, c machine.Configuration) string {
	return FormatStep(step, c.State.String(), c.Tape.Head(), TapeText(c.Tape.Cells()))
}

// WriteTrace prints every configuration of res followed by a summary.
func WriteTrace(w io.Writer, res *machine.Result) error {
	for i, c := range res.Trace() {
		if _, err := io.WriteString(w, FormatConfiguration(i, c)); err != nil {
			return err
		}
	}
	return WriteSummary(w, res)
}

func WriteSummary(w io.Writer, res *machine.Result) error {
	_, err := fmt.Fprintf(w,
		"\n--- finished in %d steps ---\nfinal state: %s\nfinal tape:  %s\noutput:      %q\nverdict:     %s\n",
		res.Steps,
		res.Final.State,
		TapeText(res.Final.Tape.Cells()),
		res.Output(),
		res.Outcome,
	)
	return err
}
