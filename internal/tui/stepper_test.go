package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/tmsim/internal/machine"
)

func flipper() *machine.RuleSet {
	return machine.NewRuleSet(
		machine.Rule{State: machine.Start, Read: machine.Zero, Next: machine.Start, Write: machine.One, Move: machine.Right},
		machine.Rule{State: machine.Start, Read: machine.Blank, Next: machine.Accept, Write: machine.Blank, Move: machine.Stay},
	)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestStepperSteps(t *testing.T) {
	m := New("flip", flipper(), machine.Initial("00"), 100)
	m = press(t, m, "n", "n")

	cur := m.Current()
	assert.Equal(t, 2, cur.Steps)
	assert.Equal(t, machine.Running, cur.Outcome)

	m = press(t, m, "n", "n", "n")
	cur = m.Current()
	assert.Equal(t, 3, cur.Steps, "stepping past the end is a no-op")
	assert.Equal(t, machine.Accepted, cur.Outcome)
}

func TestStepperBackAndReset(t *testing.T) {
	m := New("flip", flipper(), machine.Initial("00"), 100)
	m = press(t, m, "n", "n", "b")
	assert.Equal(t, 1, m.Current().Steps)

	m = press(t, m, "b", "b")
	assert.Equal(t, 0, m.Current().Steps)

	m = press(t, m, "n", "n", "r")
	assert.Equal(t, 0, m.Current().Steps)
	assert.Equal(t, "00", m.Current().Config.Tape.String())
}

func TestStepperBackKeepsBranchesIndependent(t *testing.T) {
	m := New("flip", flipper(), machine.Initial("00"), 100)
	m = press(t, m, "n", "n")
	earlier := m
	m = press(t, m, "b", "n")
	assert.Equal(t, earlier.Current().Config.Tape.String(), m.Current().Config.Tape.String())
}

func TestStepperAutoRun(t *testing.T) {
	m := New("flip", flipper(), machine.Initial("0"), 100)

	next, cmd := m.Update(key("a"))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.Auto())

	for i := 0; i < 10 && m.Auto(); i++ {
		next, _ = m.Update(tickMsg{gen: m.gen})
		m = next.(Model)
	}
	assert.False(t, m.Auto())
	assert.Equal(t, machine.Accepted, m.Current().Outcome)

	next, cmd = m.Update(key("a"))
	assert.Nil(t, cmd, "auto run does not start on a finished machine")
	assert.False(t, next.(Model).Auto())
}

func TestStepperAutoToggleKeepsOneTickChain(t *testing.T) {
	m := New("flip", flipper(), machine.Initial("00000"), 100)

	m = press(t, m, "a")
	first := m.gen
	m = press(t, m, "a", "a")
	require.True(t, m.Auto())
	current := m.gen
	require.NotEqual(t, first, current)

	next, cmd := m.Update(tickMsg{gen: first})
	m = next.(Model)
	assert.Nil(t, cmd, "a tick from an abandoned chain is not re-armed")
	assert.Equal(t, 0, m.Current().Steps)

	next, cmd = m.Update(tickMsg{gen: current})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.Current().Steps)
}

func TestStepperSpeedChangeRestartsChain(t *testing.T) {
	m := New("flip", flipper(), machine.Initial("00000"), 100)
	m = press(t, m, "a")
	before := m.gen

	next, cmd := m.Update(key("+"))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, defaultInterval/2, m.interval)

	next, _ = m.Update(tickMsg{gen: before})
	m = next.(Model)
	assert.Equal(t, 0, m.Current().Steps)

	m = press(t, m, "r")
	next, cmd = m.Update(tickMsg{gen: m.gen})
	assert.Nil(t, cmd, "reset stops auto run")
	assert.Equal(t, 0, next.(Model).Current().Steps)
}

func TestStepperQuit(t *testing.T) {
	m := New("flip", flipper(), machine.Initial("0"), 100)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStepperView(t *testing.T) {
	m := New("flip", flipper(), machine.Initial("0"), 100)
	view := m.View()
	assert.Contains(t, view, "flip")
	assert.Contains(t, view, "q0")
	assert.Contains(t, view, "0 / 100")
	assert.Contains(t, view, "running")

	m = press(t, m, "n", "n")
	view = m.View()
	assert.Contains(t, view, "accept")
	assert.Contains(t, view, "accepted")
}

func TestStepperViewStepLimit(t *testing.T) {
	m := New("flip", flipper(), machine.Initial("000"), 1)
	m = press(t, m, "n")
	assert.Contains(t, m.View(), "step limit reached")
}
