package machine

import (
	"errors"
	"fmt"
)

// Rule maps (State, Read) to (Next, Write, Move).
type Rule struct {
	State State
	Read  Symbol
	Next  State
	Write Symbol
	Move  Move
}

func (r Rule) String() string {
	return fmt.Sprintf("(%s, %s) -> (%s, %s, %s)", r.State, r.Read, r.Next, r.Write, r.Move)
}

type ruleKey struct {
	state State
	read  Symbol
}

// RuleSet is the transition relation. It keeps the declaration order and an
// index from (state, symbol) to the first rule declared for that pair.
type RuleSet struct {
	rules []Rule
	index map[ruleKey]int
}

// NewRuleSet never rejects its input. Rules leaving a terminal state are
// kept but can never fire, and when two rules share a (state, symbol) pair
// the first one declared wins. Use [RuleSet.Validate] to surface either.
func NewRuleSet(rules ...Rule) *RuleSet {
	rs := &RuleSet{
		rules: append([]Rule(nil), rules...),
		index: make(map[ruleKey]int, len(rules)),
	}
	for i, r := range rs.rules {
		if !r.State.IsNamed() {
			continue
		}
		k := ruleKey{r.State, r.Read}
		if _, ok := rs.index[k]; !ok {
			rs.index[k] = i
		}
	}
	return rs
}

// Lookup returns the rule for (state, read). Terminal states never match.
func (rs *RuleSet) Lookup(state State, read Symbol) (Rule, bool) {
	if rs == nil || !state.IsNamed() {
		return Rule{}, false
	}
	i, ok := rs.index[ruleKey{state, read}]
	if !ok {
		return Rule{}, false
	}
	return rs.rules[i], true
}

// Rules returns a copy of the rules in declaration order.
func (rs *RuleSet) Rules() []Rule {
	if rs == nil {
		return nil
	}
	return append([]Rule(nil), rs.rules...)
}

func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// States lists the named states mentioned by any rule, in first-seen order.
func (rs *RuleSet) States() []State {
	if rs == nil {
		return nil
	}
	seen := make(map[State]bool)
	var out []State
	add := func(s State) {
		if s.IsNamed() && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, r := range rs.rules {
		add(r.State)
		add(r.Next)
	}
	return out
}

// Validate reports every rule that is shadowed by an earlier one or that
// starts from a terminal state. Running a set that fails validation is
// still well defined.
func (rs *RuleSet) Validate() error {
	if rs == nil {
		return nil
	}
	var errs []error
	for i, r := range rs.rules {
		if !r.State.IsNamed() {
			errs = append(errs, &RuleError{Index: i, Rule: r, Wrapped: ErrTerminalSource})
			continue
		}
		if first := rs.index[ruleKey{r.State, r.Read}]; first != i {
			errs = append(errs, &RuleError{
				Index:   i,
				Rule:    r,
				Wrapped: fmt.Errorf("%w (shadowed by rule %d)", ErrDuplicateRule, first),
			})
		}
	}
	return errors.Join(errs...)
}
