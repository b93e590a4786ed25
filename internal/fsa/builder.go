package fsa

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Builder interprets the declarations of one automaton under construction.
//
// It starts from a DFA and promotes it to an NFA the first time a state line
// proves nondeterministic, or immediately if the alphabet enables epsilon.
// Promotion copies every state, accept flag and transition declared so far.
type Builder struct {
	fsa Automaton
}

// NewBuilder starts a DFA-in-progress with the given label.
func NewBuilder(label string) *Builder {
	return &Builder{fsa: NewDFA(label)}
}

// Kind reports the variant currently under construction.
func (b *Builder) Kind() Kind { return b.fsa.Kind() }

// SetAlphabet declares the alphabet. An epsilon-enabled alphabet switches
// the build to an NFA before any state line is seen.
func (b *Builder) SetAlphabet(line string) error {
	kind, err := b.fsa.SetAlphabet(line)
	if err != nil {
		return err
	}
	if kind == KindNFA {
		b.Promote()
	}
	return nil
}

// AddLine declares one state line, promoting and retrying if the current
// DFA cannot represent it.
func (b *Builder) AddLine(line string) error {
	row, err := ParseRow(line)
	if err != nil {
		return err
	}
	return b.AddRow(row)
}

// AddRow is AddLine for an already tokenized row.
func (b *Builder) AddRow(row Row) error {
	ok, err := b.addRow(row)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	b.Promote()
	ok, err = b.addRow(row)
	if err != nil {
		return err
	}
	if !ok {
		return newParseError(ErrCodeStateLine, "state %q rejected after promotion", row.Name)
	}
	return nil
}

func (b *Builder) addRow(row Row) (bool, error) {
	switch v := b.fsa.(type) {
	case *DFA:
		return v.AddRow(row)
	case *NFA:
		return v.AddRow(row)
	default:
		return false, fmt.Errorf("unsupported automaton type %T", b.fsa)
	}
}

// Promote replaces a DFA-in-progress with its NFA form. It is a no-op once
// the build is already nondeterministic.
func (b *Builder) Promote() {
	if d, ok := b.fsa.(*DFA); ok {
		b.fsa = Promote(d)
	}
}

// Build validates and returns the automaton. The builder must not be used
// afterwards.
func (b *Builder) Build() (Automaton, error) {
	if err := Validate(b.fsa); err != nil {
		return nil, err
	}
	return b.fsa, nil
}

// Validate checks the structural invariants of a built automaton: at least
// one state, and every transition target declared as a state.
func Validate(a Automaton) error {
	if len(a.States()) == 0 {
		return newParseError(ErrCodeNoStates, "automaton %q declares no states", a.Label())
	}
	for _, q := range a.States() {
		for _, sym := range a.Alphabet() {
			for _, t := range a.Successors(q, sym) {
				if !a.HasState(t) {
					return newParseError(ErrCodeUndeclaredState,
						"state %q moves on %s to undeclared state %q", q, SymbolString(sym), t)
				}
			}
		}
	}
	return nil
}

// Parse builds an automaton from a definition block:
//
//	<label>
//	<symbol> <symbol> ... [..]
//	[*]<state> <tok> <tok> ...
//	...
//	<blank line or end of input>
//
// Leading blank lines are skipped. Anything after the terminating blank
// line is ignored. Errors carry the 1-based line number within text.
func Parse(text string) (Automaton, error) {
	return ParseReader(strings.NewReader(text))
}

// ParseReader is Parse over a reader. It stops reading at the blank line
// that terminates the state list.
func ParseReader(r io.Reader) (Automaton, error) {
	sc := bufio.NewScanner(r)
	lineNo := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		lineNo++
		return strings.TrimSpace(sc.Text()), true
	}

	label, ok := next()
	for ok && label == "" {
		label, ok = next()
	}
	if !ok {
		return nil, newParseError(ErrCodeEmptyDefinition, "missing label line")
	}

	b := NewBuilder(label)
	alphabet, ok := next()
	if !ok {
		return nil, atLine(newParseError(ErrCodeAlphabet, "missing alphabet line"), lineNo+1)
	}
	if err := b.SetAlphabet(alphabet); err != nil {
		return nil, atLine(err, lineNo)
	}

	for {
		line, ok := next()
		if !ok || line == "" {
			break
		}
		if err := b.AddLine(line); err != nil {
			return nil, atLine(err, lineNo)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	return b.Build()
}
