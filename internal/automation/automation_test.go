package automation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/tmsim/internal/config"
	"github.com/san-kum/tmsim/internal/experiment"
	"github.com/san-kum/tmsim/internal/machine"
	"github.com/san-kum/tmsim/internal/storage"
)

const scenarioYAML = `
name: smoke
steps:
  - machine: bin_increment
    input: "111"
    expect: accept
    expect_output: "1000"
    save: true
  - machine: anbn
    input: "aab"
    expect: accept
  - machine: anbn
    input: "ba"
    expect: implicit
  - machine: busy_beaver_2
    max_steps: 5
    expect: limit
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)
	require.Len(t, sc.Steps, 4)

	st := storage.New(t.TempDir())
	require.NoError(t, st.Init())

	results, err := RunScenario(t.Context(), sc, WithStore(st))
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.True(t, results[0].Passed())
	assert.NotEmpty(t, results[0].RunID)

	assert.False(t, results[1].Passed())
	assert.Contains(t, results[1].Failures[0], "rejected")

	assert.True(t, results[2].Passed())
	assert.True(t, results[3].Passed())
	assert.Equal(t, 5, results[3].Result.Steps)

	runs, err := st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRunScenarioDefaultInput(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Machine: "bin_increment"}}}
	results, err := RunScenario(t.Context(), sc)
	require.NoError(t, err)
	assert.Equal(t, config.GetPreset("bin_increment").Input, results[0].Input)
	assert.Equal(t, "110", results[0].Result.Output())
}

func TestRunScenarioUnknownMachine(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Machine: "nope"}}}
	_, err := RunScenario(t.Context(), sc)
	var unknown *config.UnknownPresetError
	assert.ErrorAs(t, err, &unknown)
}

func TestRunScenarioBadExpectation(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Machine: "bin_increment", Expect: "maybe"}}}
	_, err := RunScenario(t.Context(), sc)
	assert.ErrorContains(t, err, "unknown expectation")
}

func TestMatchOutcome(t *testing.T) {
	tests := []struct {
		expect  string
		outcome machine.Outcome
		want    bool
	}{
		{"accept", machine.Accepted, true},
		{"Accepted", machine.RejectedExplicit, false},
		{"reject", machine.RejectedExplicit, true},
		{"reject", machine.RejectedImplicit, true},
		{"explicit", machine.RejectedImplicit, false},
		{"no rule", machine.RejectedImplicit, true},
		{"halt", machine.Accepted, true},
		{"halt", machine.StepLimitReached, false},
		{"step limit reached", machine.StepLimitReached, true},
	}
	for _, tt := range tests {
		got, err := MatchOutcome(tt.expect, tt.outcome)
		require.NoError(t, err, tt.expect)
		assert.Equal(t, tt.want, got, "%s vs %s", tt.expect, tt.outcome)
	}
}

func TestRunRandom(t *testing.T) {
	exp, err := experiment.New(config.GetPreset("anbn"))
	require.NoError(t, err)

	cfg := RandomConfig{Alphabet: "ab", MaxLen: 6, Trials: 40, Seed: 7}
	trials, err := RunRandom(t.Context(), exp, cfg)
	require.NoError(t, err)
	require.Len(t, trials, 40)

	for _, tr := range trials {
		assert.LessOrEqual(t, len(tr.Input), 6)
		assert.Empty(t, strings.Trim(tr.Input, "ab"))
		assert.True(t, tr.Outcome.Halted(), tr.Input)
	}

	total := 0
	for _, n := range Tally(trials) {
		total += n
	}
	assert.Equal(t, 40, total)

	again, err := RunRandom(t.Context(), exp, cfg)
	require.NoError(t, err)
	for i := range trials {
		assert.Equal(t, trials[i].Input, again[i].Input)
		assert.Equal(t, trials[i].Outcome, again[i].Outcome)
	}
}

func TestRunRandomEmptyAlphabet(t *testing.T) {
	exp, err := experiment.New(config.GetPreset("anbn"))
	require.NoError(t, err)
	_, err = RunRandom(t.Context(), exp, RandomConfig{Trials: 1})
	assert.Error(t, err)
}
