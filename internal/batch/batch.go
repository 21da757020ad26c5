package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/tmsim/internal/machine"
)

// Batch runs one rule set over many inputs. Every input gets its own
// Runner, so runs share nothing but the read-only rule set.
type Batch struct {
	rules   *machine.RuleSet
	opts    []machine.Option
	workers int
	metrics func() []machine.Metric
}

func New(rules *machine.RuleSet, workers int, opts ...machine.Option) *Batch {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Batch{rules: rules, opts: opts, workers: workers}
}

// WithMetrics attaches fresh metrics from newMetrics to every run.
func (b *Batch) WithMetrics(newMetrics func() []machine.Metric) *Batch {
	b.metrics = newMetrics
	return b
}

// Run returns results in input order. The first error cancels the rest.
func (b *Batch) Run(ctx context.Context, inputs []string) ([]*machine.Result, error) {
	results := make([]*machine.Result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i, input := range inputs {
		g.Go(func() error {
			r := machine.NewRunner(b.rules, b.opts...)
			if b.metrics != nil {
				for _, m := range b.metrics() {
					r.AddMetric(m)
				}
			}
			res, err := r.Run(ctx, input)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
