package fsa

// Char returns the NFA accepting exactly the one-symbol string c.
func Char(c rune) *NFA {
	n := NewNFA(string(c))
	n.alphabet = []rune{c}
	q0 := n.AddState("q0")
	q1 := n.AddState(AcceptMarker + "q1")
	n.addTarget(q0, c, q1)
	return n
}

// EmptyString returns the NFA accepting only the empty string.
func EmptyString() *NFA {
	n := NewNFA(EpsilonToken)
	n.AddState(AcceptMarker + "q0")
	return n
}

// EmptyLanguage returns the NFA accepting nothing.
func EmptyLanguage() *NFA {
	n := NewNFA("∅")
	n.AddState("q0")
	return n
}

// Relabel returns a copy of a carrying label. Everything else is kept.
func Relabel(a Automaton, label string) Automaton {
	switch v := a.(type) {
	case *DFA:
		return v.clone(label)
	case *NFA:
		return v.clone(label)
	default:
		c := copyAny(a)
		c.label = label
		return c
	}
}
