package automation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tmsim/internal/config"
	"github.com/san-kum/tmsim/internal/experiment"
	"github.com/san-kum/tmsim/internal/machine"
	"github.com/san-kum/tmsim/internal/storage"
)

// Scenario is a scripted list of runs with their expected verdicts.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep runs one machine on one input. Machine names a preset unless
// Config points at a definition file. A nil Input uses the machine's own
// example input. Expect and ExpectOutput are checked only when set.
type ScenarioStep struct {
	Machine      string  `yaml:"machine"`
	Config       string  `yaml:"config,omitempty"`
	Input        *string `yaml:"input,omitempty"`
	MaxSteps     int     `yaml:"max_steps,omitempty"`
	Expect       string  `yaml:"expect,omitempty"`
	ExpectOutput *string `yaml:"expect_output,omitempty"`
	Save         bool    `yaml:"save,omitempty"`
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Index    int
	Machine  string
	Input    string
	Result   *machine.Result
	RunID    string
	Failures []string
}

func (r StepResult) Passed() bool { return len(r.Failures) == 0 }

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	return &scenario, nil
}

type options struct {
	logger *slog.Logger
	store  *storage.Store
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithStore saves the steps marked save.
func WithStore(st *storage.Store) Option {
	return func(o *options) { o.store = st }
}

func newOptions(opts []Option) *options {
	o := &options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RunScenario executes every step in order. A failed expectation is
// recorded in the step's result; only a step that cannot be set up or run
// stops the scenario.
func RunScenario(ctx context.Context, scenario *Scenario, opts ...Option) ([]StepResult, error) {
	o := newOptions(opts)
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		def, err := config.Resolve(step.Machine, step.Config)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		runOpts := []machine.Option{machine.WithLogger(o.logger.With("machine", def.Name))}
		if step.MaxSteps > 0 {
			runOpts = append(runOpts, machine.WithMaxSteps(step.MaxSteps))
		}
		exp, err := experiment.New(def, runOpts...)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		input := def.Input
		if step.Input != nil {
			input = *step.Input
		}

		o.logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "machine", def.Name, "input", input)

		res, err := exp.Run(ctx, input)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Index: i + 1, Machine: def.Name, Input: input, Result: res}
		sr.Failures, err = check(step, res)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		if step.Save && o.store != nil {
			sr.RunID, err = o.store.Save(def.Name, input, exp.Runner().MaxSteps(), res)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, sr)
	}

	return results, nil
}

func check(step ScenarioStep, res *machine.Result) ([]string, error) {
	var failures []string
	if step.Expect != "" {
		ok, err := MatchOutcome(step.Expect, res.Outcome)
		if err != nil {
			return nil, err
		}
		if !ok {
			failures = append(failures, fmt.Sprintf("expected %s, got %s", step.Expect, res.Outcome))
		}
	}
	if step.ExpectOutput != nil && res.Output() != *step.ExpectOutput {
		failures = append(failures, fmt.Sprintf("expected output %q, got %q", *step.ExpectOutput, res.Output()))
	}
	return failures, nil
}

// MatchOutcome compares an expectation word with an outcome. "reject"
// matches both kinds of rejection; "implicit" and "explicit" pick one.
func MatchOutcome(expect string, o machine.Outcome) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(expect)) {
	case "accept", "accepted":
		return o == machine.Accepted, nil
	case "reject", "rejected":
		return o.Rejected(), nil
	case "explicit":
		return o == machine.RejectedExplicit, nil
	case "implicit", "no rule":
		return o == machine.RejectedImplicit, nil
	case "halt", "halted":
		return o.Halted(), nil
	case "limit", "step limit", "step limit reached":
		return o == machine.StepLimitReached, nil
	default:
		return false, fmt.Errorf("unknown expectation %q", expect)
	}
}

// RandomConfig drives a survey of random inputs.
type RandomConfig struct {
	Alphabet string
	MaxLen   int
	Trials   int
	Seed     int64
}

// Trial is one random input and how the machine handled it.
type Trial struct {
	ID      int
	Input   string
	Outcome machine.Outcome
	Steps   int
	Output  string
}

// RunRandom feeds exp random strings over cfg.Alphabet of length 0 to
// cfg.MaxLen. A zero seed picks one from the clock.
func RunRandom(ctx context.Context, exp *experiment.Experiment, cfg RandomConfig) ([]Trial, error) {
	alphabet := []rune(cfg.Alphabet)
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("empty alphabet")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	trials := make([]Trial, 0, cfg.Trials)
	for i := 0; i < cfg.Trials; i++ {
		n := rng.Intn(max(cfg.MaxLen, 0) + 1)
		var sb strings.Builder
		for j := 0; j < n; j++ {
			sb.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		input := sb.String()

		res, err := exp.Run(ctx, input)
		if err != nil {
			return trials, err
		}

		trials = append(trials, Trial{
			ID:      i,
			Input:   input,
			Outcome: res.Outcome,
			Steps:   res.Steps,
			Output:  res.Output(),
		})
	}

	return trials, nil
}

// Tally counts trials per outcome.
func Tally(trials []Trial) map[machine.Outcome]int {
	counts := make(map[machine.Outcome]int)
	for _, t := range trials {
		counts[t.Outcome]++
	}
	return counts
}
