package compiler

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/lexaard/internal/fsa"
)

// CompileAutomaton builds an automaton from a CUE value.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
//
// The value is the automaton struct itself:
//
//	automaton: div3: {
//		label:    "div3"            // optional, defaults to the field name
//		kind:     "nfa"             // optional, forces the NFA variant
//		alphabet: ["0", "1"]        // ".." enables epsilon moves
//		states: [
//			{name: "q0", accept: true, on: {"0": "q1", "1": "q0"}},
//			{name: "q1", on: {"0": ["q2"], "1": "q1"}},
//			...
//		]
//	}
//
// The first state is the start state. A target list (even a singleton)
// marks the row nondeterministic, exactly like a comma token in a text
// definition, and promotes the build to an NFA.
func CompileAutomaton(v cue.Value) (fsa.Automaton, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	name := ""
	if sels := v.Path().Selectors(); len(sels) > 0 {
		name = sels[len(sels)-1].String()
	}

	label := name
	if lv := v.LookupPath(cue.ParsePath("label")); lv.Exists() {
		s, err := lv.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		label = s
	}
	if label == "" {
		return nil, &CompileError{Field: "label", Message: "label is required", Pos: v.Pos()}
	}

	b := fsa.NewBuilder(label)

	alphabet, err := parseAlphabet(v)
	if err != nil {
		return nil, err
	}
	if err := b.SetAlphabet(strings.Join(alphabet, " ")); err != nil {
		return nil, &CompileError{Field: "alphabet", Message: err.Error(), Pos: v.LookupPath(cue.ParsePath("alphabet")).Pos()}
	}

	kindVal := v.LookupPath(cue.ParsePath("kind"))
	kind := ""
	if kindVal.Exists() {
		if kind, err = kindVal.String(); err != nil {
			return nil, formatCUEError(err)
		}
		switch kind {
		case "dfa":
		case "nfa":
			b.Promote()
		default:
			return nil, &CompileError{Field: "kind", Message: fmt.Sprintf("kind must be \"dfa\" or \"nfa\", got %q", kind), Pos: kindVal.Pos()}
		}
	}

	statesVal := v.LookupPath(cue.ParsePath("states"))
	if !statesVal.Exists() {
		return nil, &CompileError{Field: "states", Message: "states is required", Pos: v.Pos()}
	}
	iter, err := statesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		row, err := parseState(iter.Value(), alphabet)
		if err != nil {
			return nil, err
		}
		if err := b.AddRow(row); err != nil {
			return nil, &CompileError{Field: "states", Message: err.Error(), Pos: iter.Value().Pos()}
		}
	}

	a, err := b.Build()
	if err != nil {
		return nil, &CompileError{Field: "states", Message: err.Error(), Pos: statesVal.Pos()}
	}

	if kind == "dfa" && a.Kind() != fsa.KindDFA {
		return nil, &CompileError{Field: "kind", Message: "declared dfa but the rows are nondeterministic", Pos: kindVal.Pos()}
	}
	return a, nil
}

// parseAlphabet reads the alphabet list as definition tokens.
func parseAlphabet(v cue.Value) ([]string, error) {
	av := v.LookupPath(cue.ParsePath("alphabet"))
	if !av.Exists() {
		return nil, &CompileError{Field: "alphabet", Message: "alphabet is required", Pos: v.Pos()}
	}
	iter, err := av.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var alphabet []string
	for iter.Next() {
		sym, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		if strings.ContainsAny(sym, " \t") || sym == "" {
			return nil, &CompileError{Field: "alphabet", Message: fmt.Sprintf("invalid symbol %q", sym), Pos: iter.Value().Pos()}
		}
		alphabet = append(alphabet, sym)
	}
	return alphabet, nil
}

// parseState converts one state struct into a row in alphabet order.
func parseState(v cue.Value, alphabet []string) (fsa.Row, error) {
	var row fsa.Row

	nv := v.LookupPath(cue.ParsePath("name"))
	if !nv.Exists() {
		return row, &CompileError{Field: "states.name", Message: "state name is required", Pos: v.Pos()}
	}
	name, err := nv.String()
	if err != nil {
		return row, formatCUEError(err)
	}
	if err := fsa.CheckStateName(name); err != nil {
		return row, &CompileError{Field: "states.name", Message: err.Error(), Pos: nv.Pos()}
	}
	row.Name = name

	if av := v.LookupPath(cue.ParsePath("accept")); av.Exists() {
		accept, err := av.Bool()
		if err != nil {
			return row, formatCUEError(err)
		}
		row.Accept = accept
	}

	row.Targets = make([][]string, len(alphabet))
	ov := v.LookupPath(cue.ParsePath("on"))
	if !ov.Exists() {
		return row, nil
	}

	position := make(map[string]int, len(alphabet))
	for i, sym := range alphabet {
		position[sym] = i
	}

	fields, err := ov.Fields()
	if err != nil {
		return row, formatCUEError(err)
	}
	for fields.Next() {
		sym := fields.Label()
		i, ok := position[sym]
		if !ok {
			return row, &CompileError{
				Field:   "states.on",
				Message: fmt.Sprintf("state %q moves on %q, which is not in the alphabet", name, sym),
				Pos:     fields.Value().Pos(),
			}
		}
		targets, list, err := parseTargets(fields.Value())
		if err != nil {
			return row, err
		}
		for _, t := range targets {
			if err := fsa.CheckStateName(t); err != nil {
				return row, &CompileError{Field: "states.on", Message: err.Error(), Pos: fields.Value().Pos()}
			}
		}
		row.Targets[i] = targets
		if list {
			row.Nondeterministic = true
		}
	}
	return row, nil
}

// parseTargets accepts a single state name or a list of names. The second
// result reports the list form.
func parseTargets(v cue.Value) ([]string, bool, error) {
	if s, err := v.String(); err == nil {
		return []string{s}, false, nil
	}

	iter, err := v.List()
	if err != nil {
		return nil, false, &CompileError{
			Field:   "states.on",
			Message: "target must be a state name or a list of state names",
			Pos:     v.Pos(),
		}
	}
	var targets []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, false, formatCUEError(err)
		}
		targets = appendUnique(targets, s)
	}
	return targets, true, nil
}

func appendUnique(list []string, s string) []string {
	for _, x := range list {
		if x == s {
			return list
		}
	}
	return append(list, s)
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
