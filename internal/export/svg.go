package export

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/san-kum/tmsim/internal/storage"
)

var cellColors = map[rune]string{
	'0': "#3a6ea5",
	'1': "#00ff00",
}

const (
	otherColor = "#d08770"
	headColor  = "#ff5555"
)

// Offsets aligns stored rows on a common origin. offsets[i] is the column of
// the first cell of rows[i]. A row whose head stays at index 0 while the tape
// grows has been extended to the left, which shifts every later row.
func Offsets(rows []storage.TraceRow) []int {
	growth := make([]int, len(rows))
	for i := 1; i < len(rows); i++ {
		growth[i] = growth[i-1]
		prev, cur := rows[i-1], rows[i]
		prevLen, curLen := utf8.RuneCountInString(prev.Tape), utf8.RuneCountInString(cur.Tape)
		if prev.Head == 0 && cur.Head == 0 && curLen > max(prevLen, 1) {
			growth[i]++
		}
	}

	offsets := make([]int, len(rows))
	if len(rows) == 0 {
		return offsets
	}
	total := growth[len(rows)-1]
	for i := range rows {
		offsets[i] = total - growth[i]
	}
	return offsets
}

// SpaceTimeSVG draws a trace as a grid: one row per step, one column per
// tape cell. Blank cells are left empty and the head is outlined.
func SpaceTimeSVG(rows []storage.TraceRow, scale int) string {
	if len(rows) == 0 {
		return ""
	}
	if scale <= 0 {
		scale = 8
	}

	offsets := Offsets(rows)
	cols := 0
	for i, r := range rows {
		n := max(utf8.RuneCountInString(r.Tape), r.Head+1)
		cols = max(cols, offsets[i]+n)
	}

	width, height := cols*scale, len(rows)*scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i, r := range rows {
		y := i * scale
		col := offsets[i]
		for _, ch := range r.Tape {
			if ch != ' ' {
				color, ok := cellColors[ch]
				if !ok {
					color = otherColor
				}
				fmt.Fprintf(&sb, `<rect class="cell" x="%d" y="%d" width="%d" height="%d" fill="%s"/>
`, col*scale, y, scale, scale, color)
			}
			col++
		}
		fmt.Fprintf(&sb, `<rect class="head" x="%d" y="%d" width="%d" height="%d" fill="none" stroke="%s"/>
`, (offsets[i]+r.Head)*scale, y, scale, scale, headColor)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
