package ir

import "fmt"

// DefinitionKind tags what a registry entry holds.
type DefinitionKind string

const (
	KindString DefinitionKind = "string"
	KindBool   DefinitionKind = "bool"
	KindDFA    DefinitionKind = "dfa"
	KindNFA    DefinitionKind = "nfa"
)

// IsAutomaton reports whether k is one of the automaton kinds.
func (k DefinitionKind) IsAutomaton() bool {
	return k == KindDFA || k == KindNFA
}

// Valid reports whether k is a known kind.
func (k DefinitionKind) Valid() bool {
	switch k {
	case KindString, KindBool, KindDFA, KindNFA:
		return true
	}
	return false
}

// AutomatonDoc is the document form of a built automaton.
//
// Symbols are spelled as in definitions, so epsilon is "..". States are in
// declaration order. On maps a symbol to its targets; a DFA has at most one
// target per symbol and missing symbols have no transition.
type AutomatonDoc struct {
	Label    string         `json:"label"`
	Kind     DefinitionKind `json:"kind"`
	Alphabet []string       `json:"alphabet"`
	Start    string         `json:"start"`
	States   []StateDoc     `json:"states"`
}

// StateDoc is one state row of an AutomatonDoc.
type StateDoc struct {
	Name   string              `json:"name"`
	Accept bool                `json:"accept"`
	On     map[string][]string `json:"on"`
}

// Definition is one named registry entry. Exactly one of Text, Bool and
// Automaton is meaningful, selected by Kind.
type Definition struct {
	Name      string         `json:"name"`
	Kind      DefinitionKind `json:"kind"`
	Text      string         `json:"text,omitempty"`
	Bool      bool           `json:"bool,omitempty"`
	Automaton *AutomatonDoc  `json:"automaton,omitempty"`
}

// Check reports the first structural problem with d, if any.
func (d Definition) Check() error {
	if d.Name == "" {
		return fmt.Errorf("definition has no name")
	}
	if !d.Kind.Valid() {
		return fmt.Errorf("definition %q: unknown kind %q", d.Name, d.Kind)
	}
	if d.Kind.IsAutomaton() {
		if d.Automaton == nil {
			return fmt.Errorf("definition %q: kind %s without automaton", d.Name, d.Kind)
		}
		if d.Automaton.Kind != d.Kind {
			return fmt.Errorf("definition %q: kind %s but automaton is %s", d.Name, d.Kind, d.Automaton.Kind)
		}
	} else if d.Automaton != nil {
		return fmt.Errorf("definition %q: kind %s must not carry an automaton", d.Name, d.Kind)
	}
	return nil
}

// RunRecord is one logged evaluation of an automaton against an input.
type RunRecord struct {
	ID       string `json:"id"`
	Session  string `json:"session"`
	Target   string `json:"target"`
	Input    string `json:"input"`
	Accepted bool   `json:"accepted"`
	Seq      int64  `json:"seq"`
}
