package compiler

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/roach88/lexaard/internal/fsa"
	"github.com/roach88/lexaard/internal/ir"
)

// Validation error codes (E100-E199)
const (
	ErrUnsupportedType = "E100" // unsupported value for validation

	// AutomatonDoc errors (E101-E119)
	ErrUnknownKind       = "E101" // kind is neither dfa nor nfa
	ErrBadSymbol         = "E102" // symbol is not one character or ".."
	ErrDuplicateSymbol   = "E103" // symbol listed twice
	ErrNoStates          = "E104" // no states declared
	ErrDuplicateState    = "E105" // state declared twice
	ErrEmptyStateName    = "E106" // state with empty name
	ErrBadStart          = "E107" // start state is not a declared state
	ErrUnknownSymbol     = "E108" // transition on a symbol outside the alphabet
	ErrUndeclaredTarget  = "E109" // transition to an undeclared state
	ErrNondeterministic  = "E110" // dfa with a multi-target or epsilon move
	ErrMissingDefinition = "E111" // definition without a value of its kind
)

// ValidationError represents a document validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate validates documents against structural rules.
// Returns all errors found (does not fail-fast).
// Supports ir.AutomatonDoc and ir.Definition.
func Validate(v any) []ValidationError {
	switch doc := v.(type) {
	case ir.AutomatonDoc:
		return ValidateDoc(doc)
	case *ir.AutomatonDoc:
		return ValidateDoc(*doc)
	case ir.Definition:
		return validateDefinition(doc)
	case *ir.Definition:
		return validateDefinition(*doc)
	default:
		return []ValidationError{{
			Field:   "type",
			Message: fmt.Sprintf("unsupported type: %T", v),
			Code:    ErrUnsupportedType,
		}}
	}
}

func validateDefinition(def ir.Definition) []ValidationError {
	if err := def.Check(); err != nil {
		return []ValidationError{{Field: "definition", Message: err.Error(), Code: ErrMissingDefinition}}
	}
	if def.Automaton != nil {
		return ValidateDoc(*def.Automaton)
	}
	return nil
}

// ValidateDoc checks an automaton document: a known kind, well-formed
// distinct symbols, distinct non-empty state names, a declared start state,
// and transitions that use alphabet symbols and declared targets. A dfa
// document must also be deterministic.
func ValidateDoc(doc ir.AutomatonDoc) []ValidationError {
	var errs []ValidationError
	add := func(field, code, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Code: code, Message: fmt.Sprintf(format, args...)})
	}

	if doc.Kind != ir.KindDFA && doc.Kind != ir.KindNFA {
		add("kind", ErrUnknownKind, "kind must be dfa or nfa, got %q", doc.Kind)
	}

	symbols := make(map[string]bool, len(doc.Alphabet))
	for _, sym := range doc.Alphabet {
		if sym != fsa.EpsilonToken && utf8.RuneCountInString(sym) != 1 {
			add("alphabet", ErrBadSymbol, "symbol %q must be a single character or %q", sym, fsa.EpsilonToken)
		}
		if symbols[sym] {
			add("alphabet", ErrDuplicateSymbol, "symbol %q appears twice", sym)
		}
		symbols[sym] = true
	}

	if len(doc.States) == 0 {
		add("states", ErrNoStates, "automaton %q declares no states", doc.Label)
		return errs
	}

	declared := make(map[string]bool, len(doc.States))
	for _, s := range doc.States {
		if s.Name == "" {
			add("states.name", ErrEmptyStateName, "state name must not be empty")
			continue
		}
		if declared[s.Name] {
			add("states.name", ErrDuplicateState, "state %q declared twice", s.Name)
		}
		declared[s.Name] = true
	}
	if !declared[doc.Start] {
		add("start", ErrBadStart, "start state %q is not declared", doc.Start)
	}

	for _, s := range doc.States {
		syms := make([]string, 0, len(s.On))
		for sym := range s.On {
			syms = append(syms, sym)
		}
		sort.Strings(syms)
		for _, sym := range syms {
			targets := s.On[sym]
			if !symbols[sym] {
				add("states.on", ErrUnknownSymbol, "state %q moves on %q, which is not in the alphabet", s.Name, sym)
				continue
			}
			if doc.Kind == ir.KindDFA && (len(targets) > 1 || sym == fsa.EpsilonToken) {
				add("states.on", ErrNondeterministic, "dfa state %q has a nondeterministic move on %q", s.Name, sym)
			}
			for _, t := range targets {
				if !declared[t] {
					add("states.on", ErrUndeclaredTarget, "state %q moves on %q to undeclared state %q", s.Name, sym, t)
				}
			}
		}
	}
	return errs
}
