package machine

import (
	"errors"
	"fmt"
)

// Domain errors for parsing and validating machine definitions. Runs
// themselves never fail; see [Outcome].
var (
	// ErrUnknownMove indicates a move token other than L, R, N or S.
	ErrUnknownMove = errors.New("machine: unknown head move")

	// ErrBadSymbol indicates a symbol token longer than one character.
	ErrBadSymbol = errors.New("machine: symbol must be a single character")

	// ErrEmptyState indicates a state token with no name.
	ErrEmptyState = errors.New("machine: empty state name")

	// ErrDuplicateRule indicates two rules for the same (state, symbol) pair.
	ErrDuplicateRule = errors.New("machine: duplicate rule for state and symbol")

	// ErrTerminalSource indicates a rule whose source state is Accept or Reject.
	ErrTerminalSource = errors.New("machine: rule starts from a terminal state")
)

// RuleError wraps a validation failure with the offending rule.
type RuleError struct {
	Index   int
	Rule    Rule
	Wrapped error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %d (%s): %v", e.Index, e.Rule, e.Wrapped)
}

func (e *RuleError) Unwrap() error {
	return e.Wrapped
}
