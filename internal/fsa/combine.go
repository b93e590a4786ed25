package fsa

// Labels of derived automata. They are display-only.
const (
	unionSep     = " U "
	concatSep    = " ○ "
	intersectSep = " ∩ "
	xorSep       = " ⊕ "
)

// DFAUnion is the product construction for d1 ∪ d2.
//
// Every pair of states is materialized, named "(q1,q2)", even when it is
// unreachable; Prune removes those separately. The alphabet is d1's symbols
// followed by any new symbols of d2. Where an operand has no transition on
// a symbol, it is first completed with a fresh non-accepting sink so the
// other component keeps running.
func DFAUnion(d1, d2 *DFA) *DFA {
	return product(d1, d2, d1.label+unionSep+d2.label, func(a, b bool) bool { return a || b })
}

// Intersect is the product construction for d1 ∩ d2.
func Intersect(d1, d2 *DFA) *DFA {
	return product(d1, d2, d1.label+intersectSep+d2.label, func(a, b bool) bool { return a && b })
}

// SymmetricDifference is the product construction accepting the strings
// accepted by exactly one of d1 and d2.
func SymmetricDifference(d1, d2 *DFA) *DFA {
	return product(d1, d2, d1.label+xorSep+d2.label, func(a, b bool) bool { return a != b })
}

// Complement accepts exactly the strings over d's alphabet that d rejects.
func Complement(d *DFA) *DFA {
	c := Complete(d, nil)
	c.label = "^" + d.label
	for _, q := range c.states {
		if c.accept[q] {
			delete(c.accept, q)
		} else {
			c.accept[q] = true
		}
	}
	return c
}

// Complete returns a copy of d over d's alphabet extended by extra in which
// every (state, symbol) has a transition. Missing entries go to a fresh
// non-accepting sink that loops on every symbol. No sink is added when
// nothing is missing. Epsilon in extra is ignored.
func Complete(d *DFA, extra []rune) *DFA {
	c := d.clone(d.label)
	c.alphabet = withoutEpsilon(unionAlphabet(d.alphabet, extra))

	missing := len(c.states) == 0
	for _, q := range c.states {
		for _, sym := range c.alphabet {
			if _, ok := c.delta[edge{q, sym}]; !ok {
				missing = true
			}
		}
	}
	if !missing {
		return c
	}

	sink := freshName(c.HasState)
	c.insertState(sink)
	if c.start == "" {
		c.start = sink
	}
	for _, q := range c.states {
		for _, sym := range c.alphabet {
			if _, ok := c.delta[edge{q, sym}]; !ok {
				c.setDelta(q, sym, sink)
			}
		}
	}
	return c
}

type pair struct{ left, right string }

func product(d1, d2 *DFA, label string, accept func(a, b bool) bool) *DFA {
	alphabet := withoutEpsilon(unionAlphabet(d1.alphabet, d2.alphabet))
	c1 := Complete(d1, alphabet)
	c2 := Complete(d2, alphabet)

	p := NewDFA(label)
	p.alphabet = alphabet

	names := make(map[pair]string, len(c1.states)*len(c2.states))
	for _, q1 := range c1.states {
		for _, q2 := range c2.states {
			name := "(" + q1 + "," + q2 + ")"
			if p.HasState(name) {
				name = freshName(p.HasState)
			}
			p.insertState(name)
			names[pair{q1, q2}] = name
			if accept(c1.accept[q1], c2.accept[q2]) {
				p.accept[name] = true
			}
		}
	}
	p.start = names[pair{c1.start, c2.start}]

	for _, q1 := range c1.states {
		for _, q2 := range c2.states {
			from := names[pair{q1, q2}]
			for _, sym := range alphabet {
				t1 := c1.delta[edge{q1, sym}]
				t2 := c2.delta[edge{q2, sym}]
				p.setDelta(from, sym, names[pair{t1, t2}])
			}
		}
	}
	return p
}

// absorb copies src's states, accept flags and transitions into dst. A src
// state whose name is already used in dst gets a fresh name that is unused
// in both. It returns the mapping from src names to names in dst.
func absorb(dst, src *NFA) map[string]string {
	taken := func(s string) bool { return dst.HasState(s) || src.HasState(s) }
	rename := make(map[string]string, len(src.states))
	for _, q := range src.states {
		name := q
		if dst.HasState(name) {
			name = freshName(taken)
		}
		dst.insertState(name)
		rename[q] = name
		if src.accept[q] {
			dst.accept[name] = true
		}
	}
	for _, q := range src.states {
		for _, sym := range src.alphabet {
			for _, t := range src.delta[edge{q, sym}] {
				to, ok := rename[t]
				if !ok {
					to = t
				}
				dst.addTarget(rename[q], sym, to)
			}
		}
	}
	return rename
}

// Union builds n1 ∪ n2: a fresh start state with epsilon moves to both
// operands' start states and no other transitions. Operand states, moves
// and accept states are carried over; clashing names in n2 are renamed.
func Union(n1, n2 *NFA) *NFA {
	u := NewNFA(n1.label + unionSep + n2.label)
	u.alphabet = withEpsilon(unionAlphabet(n1.alphabet, n2.alphabet))

	start := freshName(func(s string) bool { return n1.HasState(s) || n2.HasState(s) })
	u.insertState(start)
	u.start = start

	absorb(u, n1)
	r2 := absorb(u, n2)
	if n1.start != "" {
		u.addTarget(start, Epsilon, n1.start)
	}
	if n2.start != "" {
		u.addTarget(start, Epsilon, r2[n2.start])
	}
	return u
}

// Concat builds n1 · n2. The start state is n1's; only n2's accept states
// accept; every accept state of n1 gains an epsilon move to n2's start.
func Concat(n1, n2 *NFA) *NFA {
	c := NewNFA(n1.label + concatSep + n2.label)
	c.alphabet = withEpsilon(unionAlphabet(n1.alphabet, n2.alphabet))

	absorb(c, n1)
	c.start = n1.start
	for _, f := range n1.AcceptStates() {
		delete(c.accept, f)
	}

	r2 := absorb(c, n2)
	if n2.start != "" {
		for _, f := range n1.AcceptStates() {
			c.addTarget(f, Epsilon, r2[n2.start])
		}
	}
	return c
}

// Star builds n*: a fresh accepting start state with a single epsilon move
// to n's start, and an epsilon move from every accept state of n back to
// n's start. The empty string is always accepted.
func Star(n *NFA) *NFA {
	s := NewNFA(n.label + "*")
	s.alphabet = withEpsilon(n.alphabet)

	start := freshName(n.HasState)
	s.insertState(start)
	s.start = start
	s.accept[start] = true

	absorb(s, n)
	if n.start != "" {
		s.addTarget(start, Epsilon, n.start)
		for _, f := range n.AcceptStates() {
			s.addTarget(f, Epsilon, n.start)
		}
	}
	return s
}
