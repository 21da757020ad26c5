package metrics

import "github.com/san-kum/tmsim/internal/machine"

// Defaults returns fresh instances of every built-in metric.
func Defaults() []machine.Metric {
	return []machine.Metric{
		NewHeadTravel(),
		NewTapeSpan(),
		NewMarks(),
	}
}
