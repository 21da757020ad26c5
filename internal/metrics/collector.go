package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/tmsim/internal/machine"
)

// Collector aggregates finished runs into Prometheus series on its own
// registry.
type Collector struct {
	registry  *prometheus.Registry
	runs      *prometheus.CounterVec
	steps     *prometheus.HistogramVec
	tapeCells *prometheus.GaugeVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tmsim_runs_total",
				Help: "Finished runs by machine and outcome",
			},
			[]string{"machine", "outcome"},
		),
		steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tmsim_run_steps",
				Help:    "Transitions taken per run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"machine"},
		),
		tapeCells: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tmsim_tape_cells",
				Help: "Materialised tape cells at the end of the latest run",
			},
			[]string{"machine"},
		),
	}
	c.registry.MustRegister(c.runs, c.steps, c.tapeCells)
	return c
}

func (c *Collector) Record(name string, res *machine.Result) {
	c.runs.WithLabelValues(name, OutcomeLabel(res.Outcome)).Inc()
	c.steps.WithLabelValues(name).Observe(float64(res.Steps))
	c.tapeCells.WithLabelValues(name).Set(float64(res.Final.Tape.Len()))
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// WriteTextfile dumps the registry in the node exporter textfile format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

// OutcomeLabel is a label-safe outcome name.
func OutcomeLabel(o machine.Outcome) string {
	switch o {
	case machine.Accepted:
		return "accepted"
	case machine.RejectedExplicit:
		return "rejected_explicit"
	case machine.RejectedImplicit:
		return "rejected_implicit"
	case machine.StepLimitReached:
		return "step_limit"
	default:
		return "running"
	}
}
