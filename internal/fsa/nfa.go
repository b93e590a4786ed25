package fsa

import "strings"

// NFA is a nondeterministic finite-state automaton.
//
// Each (state, symbol-or-Epsilon) maps to a set of targets, kept in
// insertion order for stable rendering. Absent and empty entries are
// equivalent.
type NFA struct {
	base
	delta map[edge][]string
}

// NewNFA creates an empty NFA with the given label.
func NewNFA(label string) *NFA {
	return &NFA{
		base:  newBase(label),
		delta: make(map[edge][]string),
	}
}

// Kind returns KindNFA.
func (n *NFA) Kind() Kind { return KindNFA }

// Delta returns a copy of the target set for (state, sym).
func (n *NFA) Delta(state string, sym rune) []string {
	targets := n.delta[edge{state, sym}]
	if len(targets) == 0 {
		return nil
	}
	return append([]string(nil), targets...)
}

// Successors implements Automaton.
func (n *NFA) Successors(state string, sym rune) []string {
	return n.Delta(state, sym)
}

// AddStateLine implements Automaton. An NFA accepts every well-formed line.
func (n *NFA) AddStateLine(line string) (bool, error) {
	row, err := ParseRow(line)
	if err != nil {
		return false, err
	}
	return n.AddRow(row)
}

// AddRow is AddStateLine for an already tokenized row.
func (n *NFA) AddRow(row Row) (bool, error) {
	if err := n.checkRow(row); err != nil {
		return false, err
	}
	n.declare(row)
	for i, targets := range row.Targets {
		for _, t := range targets {
			n.addTarget(row.Name, n.alphabet[i], t)
		}
	}
	return true, nil
}

// addTarget adds target to the set for (state, sym).
func (n *NFA) addTarget(state string, sym rune, target string) {
	k := edge{state, sym}
	n.delta[k] = appendUnique(n.delta[k], target)
}

// Run reports whether some path consumes the whole input and ends in an
// accept state.
//
// The search is an explicit work list over (state, position) pairs. Each
// pair is expanded at most once, which bounds the work by
// |states| * (len(input)+1) and cuts epsilon cycles.
func (n *NFA) Run(input string) bool {
	if n.start == "" {
		return false
	}
	symbols := []rune(input)

	type config struct {
		state string
		pos   int
	}
	seen := make(map[config]bool)
	stack := []config{{n.start, 0}}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[c] {
			continue
		}
		seen[c] = true

		if c.pos == len(symbols) && n.accept[c.state] {
			return true
		}
		for _, next := range n.delta[edge{c.state, Epsilon}] {
			stack = append(stack, config{next, c.pos})
		}
		if c.pos < len(symbols) {
			for _, next := range n.delta[edge{c.state, symbols[c.pos]}] {
				stack = append(stack, config{next, c.pos + 1})
			}
		}
	}
	return false
}

// String renders the NFA with comma-joined target sets per field.
//
// Without epsilon or a multi-target field the table would read back as a
// DFA, so the first field then carries a trailing comma.
func (n *NFA) String() string {
	mark := !n.HasEpsilon() && !n.hasJoinedField()
	return render(&n.base, func(state string, sym rune) string {
		cell := EmptyToken
		if targets := n.delta[edge{state, sym}]; len(targets) > 0 {
			cell = strings.Join(targets, ",")
		}
		if mark && state == n.states[0] && sym == n.alphabet[0] {
			cell += ","
		}
		return cell
	})
}

func (n *NFA) hasJoinedField() bool {
	for _, targets := range n.delta {
		if len(targets) > 1 {
			return true
		}
	}
	return false
}

// clone returns an independent copy with a new label.
func (n *NFA) clone(label string) *NFA {
	c := &NFA{base: n.copyBase(label), delta: make(map[edge][]string, len(n.delta))}
	for k, v := range n.delta {
		c.delta[k] = append([]string(nil), v...)
	}
	return c
}

// Promote converts a DFA into the equivalent NFA. Every DFA target becomes
// a singleton target set. The result shares nothing with d.
func Promote(d *DFA) *NFA {
	n := &NFA{base: d.copyBase(d.label), delta: make(map[edge][]string, len(d.delta))}
	for k, v := range d.delta {
		n.delta[k] = []string{v}
	}
	return n
}

// ToNFA returns a as an independent NFA: a promoted copy for a DFA and a
// deep copy for an NFA. Applying it twice yields the same structure.
func ToNFA(a Automaton) *NFA {
	switch v := a.(type) {
	case *DFA:
		return Promote(v)
	case *NFA:
		return v.clone(v.label)
	default:
		return copyAny(a)
	}
}

// copyAny rebuilds an NFA from any Automaton through its read-only view.
func copyAny(a Automaton) *NFA {
	n := NewNFA(a.Label())
	n.alphabet = a.Alphabet()
	for _, q := range a.States() {
		n.insertState(q)
		if a.IsAccept(q) {
			n.accept[q] = true
		}
		for _, sym := range n.alphabet {
			for _, t := range a.Successors(q, sym) {
				n.addTarget(q, sym, t)
			}
		}
	}
	n.start = a.Start()
	return n
}
