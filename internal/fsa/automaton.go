package fsa

import (
	"strconv"
	"strings"
)

// Epsilon is the alphabet entry for transitions that consume no input.
// It is never a valid input character, so no input string can contain it.
const Epsilon rune = -1

// EpsilonToken marks an epsilon-enabled alphabet in definitions and renderings.
const EpsilonToken = ".."

// AcceptMarker prefixes the name of an accept state in a definition.
const AcceptMarker = "*"

// EmptyToken is an explicit "no transition" token in a state line.
const EmptyToken = "-"

// Kind identifies the variant of an automaton.
type Kind int

const (
	// KindDFA is the deterministic variant.
	KindDFA Kind = iota + 1
	// KindNFA is the nondeterministic variant.
	KindNFA
)

func (k Kind) String() string {
	switch k {
	case KindDFA:
		return "dfa"
	case KindNFA:
		return "nfa"
	default:
		return "unknown"
	}
}

// Automaton is the capability shared by both variants.
//
// The mutating methods (SetAlphabet, AddState, AddStateLine) belong to the
// build phase. Constructions never call them on their operands.
type Automaton interface {
	Label() string
	Kind() Kind

	// Alphabet returns a copy of the ordered alphabet; Epsilon may appear.
	Alphabet() []rune
	// States returns a copy of the states in declaration order.
	States() []string
	// Start returns the start state, or "" if no state was declared.
	Start() string
	// AcceptStates returns the accept states in declaration order.
	AcceptStates() []string
	IsAccept(state string) bool
	HasState(state string) bool
	HasEpsilon() bool

	// Successors returns a copy of the targets for (state, sym).
	// sym may be Epsilon. A missing transition yields nil.
	Successors(state string, sym rune) []string

	// SetAlphabet declares the alphabet from a whitespace-separated symbol
	// line. It returns KindNFA if the line enables epsilon transitions.
	SetAlphabet(line string) (Kind, error)

	// AddState adds a state and returns the name actually stored.
	// A leading AcceptMarker registers the state as accepting.
	AddState(name string) string

	// AddStateLine declares one state and its transition row. It returns
	// false (mutating nothing) when the line cannot be represented by this
	// variant, so the caller must promote and retry.
	AddStateLine(line string) (bool, error)

	// Run reports whether the automaton accepts input.
	Run(input string) bool

	// String renders the canonical multi-line form.
	String() string
}

// edge keys a transition row entry.
type edge struct {
	state string
	sym   rune
}

// base holds the representation shared by both variants.
type base struct {
	label    string
	alphabet []rune
	states   []string
	index    map[string]int
	start    string
	accept   map[string]bool
}

func newBase(label string) base {
	return base{
		label:  label,
		index:  make(map[string]int),
		accept: make(map[string]bool),
	}
}

func (b *base) Label() string { return b.label }

func (b *base) Alphabet() []rune {
	return append([]rune(nil), b.alphabet...)
}

func (b *base) States() []string {
	return append([]string(nil), b.states...)
}

func (b *base) Start() string { return b.start }

func (b *base) AcceptStates() []string {
	var out []string
	for _, q := range b.states {
		if b.accept[q] {
			out = append(out, q)
		}
	}
	return out
}

func (b *base) IsAccept(state string) bool { return b.accept[state] }

func (b *base) HasState(state string) bool {
	_, ok := b.index[state]
	return ok
}

func (b *base) HasEpsilon() bool { return b.hasSymbol(Epsilon) }

func (b *base) hasSymbol(sym rune) bool {
	for _, a := range b.alphabet {
		if a == sym {
			return true
		}
	}
	return false
}

func (b *base) SetAlphabet(line string) (Kind, error) {
	alphabet, err := parseAlphabet(line)
	if err != nil {
		return 0, err
	}
	b.alphabet = alphabet
	if b.HasEpsilon() {
		return KindNFA, nil
	}
	return KindDFA, nil
}

func (b *base) AddState(name string) string {
	accept := false
	if strings.HasPrefix(name, AcceptMarker) {
		name = strings.TrimPrefix(name, AcceptMarker)
		accept = true
	}
	if name == "" || b.HasState(name) {
		name = freshName(b.HasState)
	}
	b.insertState(name)
	if b.start == "" {
		b.start = name
	}
	if accept {
		b.accept[name] = true
	}
	return name
}

// insertState appends a state without touching the start state.
func (b *base) insertState(name string) {
	if b.HasState(name) {
		return
	}
	b.index[name] = len(b.states)
	b.states = append(b.states, name)
}

// copyBase returns an independent copy with a new label.
func (b *base) copyBase(label string) base {
	c := newBase(label)
	c.alphabet = b.Alphabet()
	for _, q := range b.states {
		c.insertState(q)
		if b.accept[q] {
			c.accept[q] = true
		}
	}
	c.start = b.start
	return c
}

// checkRow validates a parsed row against the current alphabet and states.
// It runs before anything is stored so a rejected row mutates nothing.
func (b *base) checkRow(row Row) error {
	if len(row.Targets) > len(b.alphabet) {
		return newParseError(ErrCodeTooManyTokens,
			"state %q has %d transition tokens for %d alphabet symbols",
			row.Name, len(row.Targets), len(b.alphabet))
	}
	if b.HasState(row.Name) {
		return newParseError(ErrCodeDuplicateState, "state %q declared twice", row.Name)
	}
	return nil
}

// declare records the row's state, the start state if first, and its accept flag.
func (b *base) declare(row Row) {
	b.insertState(row.Name)
	if b.start == "" {
		b.start = row.Name
	}
	if row.Accept {
		b.accept[row.Name] = true
	}
}

// freshName returns the first of q0, q1, q2, ... for which taken is false.
func freshName(taken func(string) bool) string {
	for i := 0; ; i++ {
		name := "q" + strconv.Itoa(i)
		if !taken(name) {
			return name
		}
	}
}

// unionAlphabet returns a's symbols followed by b's new symbols. Epsilon,
// if present in either, is moved to the end.
func unionAlphabet(a, b []rune) []rune {
	var out []rune
	seen := make(map[rune]bool)
	eps := false
	for _, list := range [][]rune{a, b} {
		for _, sym := range list {
			if sym == Epsilon {
				eps = true
				continue
			}
			if !seen[sym] {
				seen[sym] = true
				out = append(out, sym)
			}
		}
	}
	if eps {
		out = append(out, Epsilon)
	}
	return out
}

func withEpsilon(alphabet []rune) []rune {
	return unionAlphabet(alphabet, []rune{Epsilon})
}

func withoutEpsilon(alphabet []rune) []rune {
	out := make([]rune, 0, len(alphabet))
	for _, sym := range alphabet {
		if sym != Epsilon {
			out = append(out, sym)
		}
	}
	return out
}

// SymbolString renders one alphabet entry the way definitions spell it.
func SymbolString(sym rune) string {
	if sym == Epsilon {
		return EpsilonToken
	}
	return string(sym)
}
