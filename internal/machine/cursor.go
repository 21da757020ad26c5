package machine

// Cursor is a position in a bounded run: the current configuration, the
// number of transitions taken and the outcome so far. It is a value and
// [Cursor.Next] returns a new one, so a stepping UI can keep earlier cursors
// around to step back.
type Cursor struct {
	Config   Configuration
	Steps    int
	Outcome  Outcome
	rules    *RuleSet
	maxSteps int
}

// Begin starts a run at start. A terminal start state or a ceiling of zero
// yields a cursor that is already done.
func Begin(rules *RuleSet, start Configuration, maxSteps int) Cursor {
	c := Cursor{Config: start, rules: rules, maxSteps: maxSteps}
	c.Outcome = c.classify()
	return c
}

// Done reports whether the run has reached an outcome.
func (c Cursor) Done() bool { return c.Outcome != Running }

func (c Cursor) MaxSteps() int { return c.maxSteps }

// Next applies one transition. A cursor that is done is returned unchanged.
// When no rule matches, the configuration moves to Reject over the same
// tape and the outcome is RejectedImplicit.
func (c Cursor) Next() Cursor {
	if c.Done() {
		return c
	}
	next, ok := Step(c.rules, c.Config)
	if !ok {
		c.Config = Configuration{State: Reject, Tape: c.Config.Tape}
		c.Outcome = RejectedImplicit
		return c
	}
	c.Config = next
	c.Steps++
	c.Outcome = c.classify()
	return c
}

func (c Cursor) classify() Outcome {
	switch c.Config.State.Kind() {
	case StateAccept:
		return Accepted
	case StateReject:
		return RejectedExplicit
	}
	if c.Steps >= c.maxSteps {
		return StepLimitReached
	}
	return Running
}
