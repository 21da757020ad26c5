package machine

import (
	"context"
	"iter"
)

// Outcome classifies a bounded run.
type Outcome uint8

const (
	Running Outcome = iota
	Accepted
	RejectedExplicit
	RejectedImplicit
	StepLimitReached
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case RejectedExplicit:
		return "rejected"
	case RejectedImplicit:
		return "rejected (no rule)"
	case StepLimitReached:
		return "step limit reached"
	default:
		return "running"
	}
}

// Halted reports whether the machine stopped on its own, as opposed to being
// cut off by the step ceiling.
func (o Outcome) Halted() bool {
	return o == Accepted || o == RejectedExplicit || o == RejectedImplicit
}

func (o Outcome) Rejected() bool {
	return o == RejectedExplicit || o == RejectedImplicit
}

// Result describes a finished run. For RejectedImplicit, Final carries the
// Reject state over the tape the machine got stuck on.
type Result struct {
	Initial Configuration
	Final   Configuration
	Outcome Outcome
	Steps   int
	Metrics map[string]float64

	rules *RuleSet
}

// Output is the trimmed final tape.
func (r *Result) Output() string {
	return Output(r.Final)
}

// Trace yields the configuration after each step, starting with step 0
// (the initial configuration) and ending with step Steps. Configurations are
// recomputed on demand from Initial, so an unconsumed trace costs nothing.
func (r *Result) Trace() iter.Seq2[int, Configuration] {
	return func(yield func(int, Configuration) bool) {
		c := r.Initial
		if !yield(0, c) {
			return
		}
		for i := 1; i <= r.Steps; i++ {
			next, ok := Step(r.rules, c)
			if !ok {
				return
			}
			c = next
			if !yield(i, c) {
				return
			}
		}
	}
}

// Run drives rules from [Initial] of input until the machine halts or
// maxSteps transitions have fired. It is deterministic for rule sets without
// duplicate (state, symbol) pairs.
func Run(input string, rules *RuleSet, maxSteps int) *Result {
	res, _ := execute(context.Background(), Initial(input), rules, maxSteps, nil)
	return res
}

// execute is the bounded loop shared by [Run] and [Runner]. The only error it
// returns is ctx.Err(), alongside the partial result.
func execute(ctx context.Context, start Configuration, rules *RuleSet, maxSteps int, onStep func(int, Configuration)) (*Result, error) {
	res := &Result{Initial: start, rules: rules}

	cur := Begin(rules, start, maxSteps)
	if onStep != nil {
		onStep(0, cur.Config)
	}

	for !cur.Done() {
		if err := ctx.Err(); err != nil {
			res.Final, res.Steps = cur.Config, cur.Steps
			return res, err
		}

		cur = cur.Next()
		if onStep != nil && cur.Outcome != RejectedImplicit {
			onStep(cur.Steps, cur.Config)
		}
	}

	res.Final, res.Steps, res.Outcome = cur.Config, cur.Steps, cur.Outcome
	return res, nil
}
