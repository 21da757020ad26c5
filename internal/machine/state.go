package machine

// StateKind enumerates the variants of [State].
type StateKind uint8

const (
	StateNamed StateKind = iota
	StateAccept
	StateReject
)

// State is a control state. Only Named states can match rules; Accept and
// Reject are terminal.
type State struct {
	kind StateKind
	name string
}

var (
	Accept = State{kind: StateAccept}
	Reject = State{kind: StateReject}

	// Start is the state every run begins in unless a Runner overrides it.
	Start = Named("q0")
)

func Named(name string) State {
	return State{kind: StateNamed, name: name}
}

func (s State) Kind() StateKind { return s.kind }

// Name is empty for terminal states.
func (s State) Name() string { return s.name }

func (s State) IsNamed() bool    { return s.kind == StateNamed }
func (s State) IsTerminal() bool { return s.kind != StateNamed }

func (s State) String() string {
	switch s.kind {
	case StateAccept:
		return "accept"
	case StateReject:
		return "reject"
	default:
		return s.name
	}
}
