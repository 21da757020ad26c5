package config

import (
	"sort"
	"strings"
)

var Presets = map[string]*Definition{
	"replace_one": {
		Name: "replace_one", Description: "replace the first 1 with 0",
		Start: DefaultStart, MaxSteps: DefaultMaxSteps, Input: "00100",
		Rules: []RuleSpec{
			{State: "q0", Read: "1", Next: "accept", Write: "0", Move: "R"},
			{State: "q0", Read: "0", Next: "q0", Write: "0", Move: "R"},
			{State: "q0", Read: "_", Next: "reject", Write: "_", Move: "N"},
		},
	},
	"anbn": {
		Name: "anbn", Description: "accepts a^n b^n for n >= 1",
		Start: DefaultStart, MaxSteps: DefaultMaxSteps, Input: "aabb",
		Rules: []RuleSpec{
			{State: "q0", Read: "a", Next: "q1", Write: "X", Move: "R"},
			{State: "q0", Read: "Y", Next: "q3", Write: "Y", Move: "R"},
			{State: "q0", Read: "_", Next: "reject", Write: "_", Move: "N"},
			{State: "q0", Read: "X", Next: "q0", Write: "X", Move: "R"},

			{State: "q1", Read: "a", Next: "q1", Write: "a", Move: "R"},
			{State: "q1", Read: "Y", Next: "q1", Write: "Y", Move: "R"},
			{State: "q1", Read: "b", Next: "q2", Write: "Y", Move: "L"},
			{State: "q1", Read: "X", Next: "q1", Write: "X", Move: "R"},
			{State: "q1", Read: "_", Next: "reject", Write: "_", Move: "N"},

			{State: "q2", Read: "a", Next: "q2", Write: "a", Move: "L"},
			{State: "q2", Read: "Y", Next: "q2", Write: "Y", Move: "L"},
			{State: "q2", Read: "X", Next: "q0", Write: "X", Move: "R"},
			{State: "q2", Read: "_", Next: "reject", Write: "_", Move: "N"},

			{State: "q3", Read: "Y", Next: "q3", Write: "Y", Move: "R"},
			{State: "q3", Read: "_", Next: "accept", Write: "_", Move: "N"},
			{State: "q3", Read: "a", Next: "reject", Write: "a", Move: "N"},
			{State: "q3", Read: "b", Next: "reject", Write: "b", Move: "N"},
		},
	},
	"bin_increment": {
		Name: "bin_increment", Description: "binary incrementer (+1)",
		Start: DefaultStart, MaxSteps: DefaultMaxSteps, Input: "101",
		Rules: []RuleSpec{
			{State: "q0", Read: "0", Next: "q0", Write: "0", Move: "R"},
			{State: "q0", Read: "1", Next: "q0", Write: "1", Move: "R"},
			{State: "q0", Read: "_", Next: "q_carry", Write: "_", Move: "L"},

			{State: "q_carry", Read: "1", Next: "q_carry", Write: "0", Move: "L"},
			{State: "q_carry", Read: "0", Next: "accept", Write: "1", Move: "N"},
			{State: "q_carry", Read: "_", Next: "accept", Write: "1", Move: "N"},
		},
	},
	"busy_beaver_2": {
		Name: "busy_beaver_2", Description: "2-state busy beaver, 4 ones in 6 steps",
		Start: DefaultStart, MaxSteps: DefaultMaxSteps,
		Rules: []RuleSpec{
			{State: "q0", Read: "_", Next: "b", Write: "1", Move: "R"},
			{State: "q0", Read: "1", Next: "b", Write: "1", Move: "L"},
			{State: "b", Read: "_", Next: "q0", Write: "1", Move: "L"},
			{State: "b", Read: "1", Next: "accept", Write: "1", Move: "R"},
		},
	},
	"busy_beaver_3": {
		Name: "busy_beaver_3", Description: "3-state busy beaver, 6 ones in 14 steps",
		Start: DefaultStart, MaxSteps: DefaultMaxSteps,
		Rules: []RuleSpec{
			{State: "q0", Read: "_", Next: "b", Write: "1", Move: "R"},
			{State: "q0", Read: "1", Next: "accept", Write: "1", Move: "R"},
			{State: "b", Read: "_", Next: "c", Write: "_", Move: "R"},
			{State: "b", Read: "1", Next: "b", Write: "1", Move: "R"},
			{State: "c", Read: "_", Next: "c", Write: "1", Move: "L"},
			{State: "c", Read: "1", Next: "q0", Write: "1", Move: "L"},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Definition {
	def, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *def
	cp.Rules = append([]RuleSpec(nil), def.Rules...)
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve loads path when it is set and falls back to the named preset.
func Resolve(name, path string) (*Definition, error) {
	if path != "" {
		return Load(path)
	}
	def := GetPreset(name)
	if def == nil {
		return nil, &UnknownPresetError{Name: name, Available: ListPresets()}
	}
	return def, nil
}

type UnknownPresetError struct {
	Name      string
	Available []string
}

func (e *UnknownPresetError) Error() string {
	return "unknown machine: " + e.Name + " (available: " + strings.Join(e.Available, ", ") + ")"
}
