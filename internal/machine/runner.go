package machine

import (
	"context"
	"io"
	"log/slog"
)

// DefaultMaxSteps is the step ceiling used when none is configured.
const DefaultMaxSteps = 1000

// Observer is notified with every configuration a run passes through,
// starting with the initial one at step 0.
type Observer interface {
	OnStep(step int, c Configuration)
}

// Metric accumulates a value over the configurations of a run.
type Metric interface {
	Name() string
	Observe(step int, c Configuration)
	Value() float64
	Reset()
}

// Runner wraps the bounded run loop with observers, metrics, logging and
// cancellation.
type Runner struct {
	rules     *RuleSet
	start     State
	maxSteps  int
	logger    *slog.Logger
	metrics   []Metric
	observers []Observer
}

// Option configures a Runner.
type Option func(*Runner)

func WithMaxSteps(n int) Option {
	return func(r *Runner) {
		r.maxSteps = n
	}
}

// WithStartState overrides [Start].
func WithStartState(s State) Option {
	return func(r *Runner) {
		r.start = s
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

func NewRunner(rules *RuleSet, opts ...Option) *Runner {
	r := &Runner{
		rules:     rules,
		start:     Start,
		maxSteps:  DefaultMaxSteps,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return r
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) MaxSteps() int { return r.maxSteps }

// Start is the configuration Run begins from for input.
func (r *Runner) Start(input string) Configuration {
	return Configuration{State: r.start, Tape: ParseTape(input)}
}

// Run executes the machine on input. A non-nil error is always ctx.Err();
// the partial result is returned with it and has Outcome Running.
func (r *Runner) Run(ctx context.Context, input string) (*Result, error) {
	for _, m := range r.metrics {
		m.Reset()
	}

	r.logger.Debug("run started", "input", input, "start", r.start.String(), "max_steps", r.maxSteps, "rules", r.rules.Len())

	res, err := execute(ctx, r.Start(input), r.rules, r.maxSteps, func(step int, c Configuration) {
		for _, m := range r.metrics {
			m.Observe(step, c)
		}
		for _, o := range r.observers {
			o.OnStep(step, c)
		}
	})

	res.Metrics = make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		res.Metrics[m.Name()] = m.Value()
	}

	if err != nil {
		r.logger.Warn("run canceled", "steps", res.Steps, "error", err)
		return res, err
	}

	switch res.Outcome {
	case StepLimitReached:
		r.logger.Info("step limit reached", "steps", res.Steps, "state", res.Final.State.String())
	case RejectedImplicit:
		stuck := res.Final.Tape.Read()
		r.logger.Debug("no applicable rule", "steps", res.Steps, "symbol", stuck.String())
	default:
		r.logger.Debug("run halted", "outcome", res.Outcome.String(), "steps", res.Steps)
	}
	return res, nil
}
