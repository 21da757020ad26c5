// Package machine implements a deterministic single-tape Turing machine
// interpreter.
//
// The package is organised leaf-first:
//
//   - [Symbol] and [State]: closed variants for tape symbols and control states
//   - [Tape]: persistent, doubly-infinite tape addressed relative to the head
//   - [Rule] and [RuleSet]: the transition relation, looked up by (state, symbol)
//   - [Step]: pure single-transition evaluator
//   - [Run] and [Runner]: bounded drivers that classify a run as an [Outcome]
//   - [Output]: trimmed rendering of the final tape
//
// # Example
//
//	rules := machine.NewRuleSet(
//		machine.Rule{State: machine.Start, Read: machine.One, Next: machine.Accept, Write: machine.Zero, Move: machine.Right},
//		machine.Rule{State: machine.Start, Read: machine.Zero, Next: machine.Start, Write: machine.Zero, Move: machine.Right},
//	)
//	res := machine.Run("0010", rules, 1000)
//	fmt.Println(res.Outcome, machine.Output(res.Final))
//
// # Thread Safety
//
// Configurations and tapes are immutable values built from shared,
// never-mutated cells, so they may be read from any number of goroutines.
// A [RuleSet] is read-only after construction. A [Runner] owns its metrics
// and observers and must not be used concurrently.
package machine
