package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tmsim/internal/machine"
)

const (
	DefaultStart    = "q0"
	DefaultMaxSteps = machine.DefaultMaxSteps

	acceptToken = "accept"
	rejectToken = "reject"
	blankToken  = "blank"
	blankShort  = "_"
	escape      = '\\'
)

// Definition is a machine as written in a YAML file.
type Definition struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Start       string     `yaml:"start"`
	MaxSteps    int        `yaml:"max_steps"`
	Input       string     `yaml:"input,omitempty"`
	Rules       []RuleSpec `yaml:"rules"`
}

// RuleSpec is one transition. Read and Write take a single character, or
// "_", "blank" or "" for the blank symbol. A backslash before a character
// takes it literally, so `\_` is the underscore symbol. State and Next take a state name
// or one of "accept" and "reject". Move takes L, R, N or S.
type RuleSpec struct {
	State string `yaml:"state"`
	Read  string `yaml:"read"`
	Next  string `yaml:"next"`
	Write string `yaml:"write"`
	Move  string `yaml:"move"`
}

func DefaultDefinition() *Definition {
	return &Definition{
		Name:     "untitled",
		Start:    DefaultStart,
		MaxSteps: DefaultMaxSteps,
	}
}

func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Definition, error) {
	def := DefaultDefinition()
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("parse machine definition: %w", err)
	}
	return def, nil
}

func Save(path string, def *Definition) error {
	data, err := yaml.Marshal(def)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RuleSet converts the rule specs, in order. Every malformed rule is
// reported; duplicates are left for [machine.RuleSet.Validate].
func (d *Definition) RuleSet() (*machine.RuleSet, error) {
	rules := make([]machine.Rule, 0, len(d.Rules))
	var errs []error
	for i, spec := range d.Rules {
		r, err := spec.Rule()
		if err != nil {
			errs = append(errs, fmt.Errorf("rule %d: %w", i, err))
			continue
		}
		rules = append(rules, r)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return machine.NewRuleSet(rules...), nil
}

// StartState resolves Start, defaulting to q0.
func (d *Definition) StartState() (machine.State, error) {
	if strings.TrimSpace(d.Start) == "" {
		return machine.Start, nil
	}
	return ParseState(d.Start)
}

// RunnerOptions builds the runner settings carried by the definition.
func (d *Definition) RunnerOptions() ([]machine.Option, error) {
	start, err := d.StartState()
	if err != nil {
		return nil, err
	}
	maxSteps := d.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return []machine.Option{machine.WithStartState(start), machine.WithMaxSteps(maxSteps)}, nil
}

func (s RuleSpec) Rule() (machine.Rule, error) {
	state, err := ParseState(s.State)
	if err != nil {
		return machine.Rule{}, err
	}
	read, err := ParseSymbol(s.Read)
	if err != nil {
		return machine.Rule{}, err
	}
	next, err := ParseState(s.Next)
	if err != nil {
		return machine.Rule{}, err
	}
	write, err := ParseSymbol(s.Write)
	if err != nil {
		return machine.Rule{}, err
	}
	move, err := machine.ParseMove(s.Move)
	if err != nil {
		return machine.Rule{}, err
	}
	return machine.Rule{State: state, Read: read, Next: next, Write: write, Move: move}, nil
}

// Canonical returns a copy of d with every rule rewritten in the tokens
// FormatState, FormatSymbol and [machine.Move.String] produce.
func (d *Definition) Canonical() (*Definition, error) {
	rules, err := d.RuleSet()
	if err != nil {
		return nil, err
	}
	cp := *d
	cp.Rules = make([]RuleSpec, 0, rules.Len())
	for _, r := range rules.Rules() {
		cp.Rules = append(cp.Rules, Spec(r))
	}
	return &cp, nil
}

// Spec is the inverse of [RuleSpec.Rule].
func Spec(r machine.Rule) RuleSpec {
	return RuleSpec{
		State: FormatState(r.State),
		Read:  FormatSymbol(r.Read),
		Next:  FormatState(r.Next),
		Write: FormatSymbol(r.Write),
		Move:  r.Move.String(),
	}
}

func ParseState(s string) (machine.State, error) {
	name := strings.TrimSpace(s)
	switch strings.ToLower(name) {
	case "":
		return machine.State{}, machine.ErrEmptyState
	case acceptToken:
		return machine.Accept, nil
	case rejectToken:
		return machine.Reject, nil
	}
	return machine.Named(name), nil
}

func FormatState(s machine.State) string {
	switch s.Kind() {
	case machine.StateAccept:
		return acceptToken
	case machine.StateReject:
		return rejectToken
	default:
		return s.Name()
	}
}

func ParseSymbol(s string) (machine.Symbol, error) {
	if s == "" || s == blankShort || strings.EqualFold(s, blankToken) {
		return machine.Blank, nil
	}
	if len(s) > 1 && s[0] == escape {
		s = s[1:]
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return machine.Blank, fmt.Errorf("%w: %q", machine.ErrBadSymbol, s)
	}
	return machine.SymbolFor(r), nil
}

// FormatSymbol writes the token ParseSymbol reads back as s. A literal
// underscore is escaped so it does not read as blank.
func FormatSymbol(s machine.Symbol) string {
	if s.IsBlank() {
		return blankShort
	}
	text := string(s.Rune())
	if text == blankShort {
		return string(escape) + text
	}
	return text
}
