package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/tmsim/internal/storage"
)

// Series splits a stored trace into head index and tape length per step.
func Series(rows []storage.TraceRow) (heads, cells []float64) {
	heads = make([]float64, len(rows))
	cells = make([]float64, len(rows))
	for i, r := range rows {
		heads[i] = float64(r.Head)
		cells[i] = float64(len([]rune(r.Tape)))
	}
	return heads, cells
}

// PlotTrace draws head position and tape growth over the steps of a run.
// It returns "" when there is nothing to plot.
func PlotTrace(rows []storage.TraceRow, width, height int) string {
	if len(rows) == 0 {
		return ""
	}
	heads, cells := Series(rows)
	if len(rows) == 1 {
		heads = append(heads, heads[0])
		cells = append(cells, cells[0])
	}

	head := asciigraph.Plot(heads,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("head position"),
	)
	tape := asciigraph.Plot(cells,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("tape cells"),
	)
	return head + "\n\n" + tape
}
