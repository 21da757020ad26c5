package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/tmsim/internal/config"
	"github.com/san-kum/tmsim/internal/machine"
	"github.com/san-kum/tmsim/internal/metrics"
)

// Experiment binds a machine definition to a configured runner with the
// default metrics attached.
type Experiment struct {
	def       *config.Definition
	rules     *machine.RuleSet
	opts      []machine.Option
	runner    *machine.Runner
	collector *metrics.Collector
}

// New compiles def. Options in opts are applied after the definition's own
// settings and so override them.
func New(def *config.Definition, opts ...machine.Option) (*Experiment, error) {
	rules, err := def.RuleSet()
	if err != nil {
		return nil, fmt.Errorf("machine %s: %w", def.Name, err)
	}
	base, err := def.RunnerOptions()
	if err != nil {
		return nil, fmt.Errorf("machine %s: %w", def.Name, err)
	}
	all := append(base, opts...)

	runner := machine.NewRunner(rules, all...)
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}

	return &Experiment{def: def, rules: rules, opts: all, runner: runner}, nil
}

// WithCollector records every finished run in c.
func (e *Experiment) WithCollector(c *metrics.Collector) *Experiment {
	e.collector = c
	return e
}

func (e *Experiment) Name() string             { return e.def.Name }
func (e *Experiment) Rules() *machine.RuleSet   { return e.rules }
func (e *Experiment) Options() []machine.Option { return e.opts }

// Runner returns the underlying runner for adding observers.
func (e *Experiment) Runner() *machine.Runner { return e.runner }

func (e *Experiment) Run(ctx context.Context, input string) (*machine.Result, error) {
	res, err := e.runner.Run(ctx, input)
	if err != nil {
		return res, err
	}
	if e.collector != nil {
		e.collector.Record(e.def.Name, res)
	}
	return res, nil
}
