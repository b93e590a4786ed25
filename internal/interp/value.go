package interp

import (
	"fmt"
	"strconv"

	"github.com/roach88/lexaard/internal/compiler"
	"github.com/roach88/lexaard/internal/fsa"
	"github.com/roach88/lexaard/internal/ir"
)

// ValueKind tags what a Value holds.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueBool
	ValueAutomaton
)

func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueBool:
		return "bool"
	case ValueAutomaton:
		return "automaton"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is anything a name can hold.
type Value struct {
	Kind ValueKind
	Text string
	Bool bool
	FSA  fsa.Automaton
}

// StringValue wraps s.
func StringValue(s string) Value { return Value{Kind: ValueString, Text: s} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{Kind: ValueBool, Bool: b} }

// AutomatonValue wraps a.
func AutomatonValue(a fsa.Automaton) Value { return Value{Kind: ValueAutomaton, FSA: a} }

// Render is the print form: the text of a string, true or false, or the
// table rendering of an automaton.
func (v Value) Render() string {
	switch v.Kind {
	case ValueString:
		return v.Text
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueAutomaton:
		return v.FSA.String()
	}
	return ""
}

// describe names the value's kind for error messages, splitting automata
// into dfa and nfa.
func (v Value) describe() string {
	if v.Kind == ValueAutomaton {
		return v.FSA.Kind().String()
	}
	return v.Kind.String()
}

// Definition converts v to its persisted form under name.
func (v Value) Definition(name string) ir.Definition {
	switch v.Kind {
	case ValueBool:
		return ir.Definition{Name: name, Kind: ir.KindBool, Bool: v.Bool}
	case ValueAutomaton:
		doc := compiler.ToDoc(v.FSA)
		return ir.Definition{Name: name, Kind: doc.Kind, Automaton: &doc}
	default:
		return ir.Definition{Name: name, Kind: ir.KindString, Text: v.Text}
	}
}

// ValueFromDefinition rebuilds a value from its persisted form.
func ValueFromDefinition(def ir.Definition) (Value, error) {
	if err := def.Check(); err != nil {
		return Value{}, err
	}
	switch def.Kind {
	case ir.KindString:
		return StringValue(def.Text), nil
	case ir.KindBool:
		return BoolValue(def.Bool), nil
	}
	a, err := compiler.FromDoc(*def.Automaton)
	if err != nil {
		return Value{}, fmt.Errorf("definition %q: %w", def.Name, err)
	}
	return AutomatonValue(a), nil
}
