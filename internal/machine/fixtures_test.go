package machine_test

import "github.com/san-kum/tmsim/internal/machine"

var (
	qCarry = machine.Named("q_carry")
	qB     = machine.Named("b")
	q1     = machine.Named("q1")
)

func rule(state machine.State, read machine.Symbol, next machine.State, write machine.Symbol, move machine.Move) machine.Rule {
	return machine.Rule{State: state, Read: read, Next: next, Write: write, Move: move}
}

func incrementer() *machine.RuleSet {
	q0 := machine.Start
	return machine.NewRuleSet(
		rule(q0, machine.Zero, q0, machine.Zero, machine.Right),
		rule(q0, machine.One, q0, machine.One, machine.Right),
		rule(q0, machine.Blank, qCarry, machine.Blank, machine.Left),
		rule(qCarry, machine.One, qCarry, machine.Zero, machine.Left),
		rule(qCarry, machine.Zero, machine.Accept, machine.One, machine.Stay),
		rule(qCarry, machine.Blank, machine.Accept, machine.One, machine.Stay),
	)
}

func busyBeaver2() *machine.RuleSet {
	a := machine.Start
	return machine.NewRuleSet(
		rule(a, machine.Blank, qB, machine.One, machine.Right),
		rule(a, machine.One, qB, machine.One, machine.Left),
		rule(qB, machine.Blank, a, machine.One, machine.Left),
		rule(qB, machine.One, machine.Accept, machine.One, machine.Right),
	)
}

// runaway walks right forever over blanks.
func runaway() *machine.RuleSet {
	return machine.NewRuleSet(
		rule(machine.Start, machine.Blank, machine.Start, machine.Blank, machine.Right),
	)
}

// splitter rejects explicitly on '0' and gets stuck on the blank after '1'.
func splitter() *machine.RuleSet {
	return machine.NewRuleSet(
		rule(machine.Start, machine.Zero, machine.Reject, machine.Zero, machine.Right),
		rule(machine.Start, machine.One, q1, machine.One, machine.Right),
	)
}
