package fsa

// Reachable returns the states reachable from a's start state, in
// declaration order. Epsilon moves count as ordinary edges.
//
// Seeded with the start state, it rescans every state seen so far and adds
// newly discovered targets, stopping after a pass that adds nothing.
func Reachable(a Automaton) []string {
	start := a.Start()
	if start == "" {
		return nil
	}
	alphabet := a.Alphabet()
	seen := map[string]bool{start: true}
	frontier := []string{start}

	for added := true; added; {
		added = false
		for i := 0; i < len(frontier); i++ {
			for _, sym := range alphabet {
				for _, t := range a.Successors(frontier[i], sym) {
					if !seen[t] {
						seen[t] = true
						frontier = append(frontier, t)
						added = true
					}
				}
			}
		}
	}

	reachable := make([]string, 0, len(seen))
	for _, q := range a.States() {
		if seen[q] {
			reachable = append(reachable, q)
		}
	}
	return reachable
}

// Prune returns a copy of a without the states unreachable from its start
// state. The alphabet, start state, and the transitions and accept flags
// of reachable states are kept unchanged, so the language is the same.
// The result has the same variant as a.
func Prune(a Automaton) Automaton {
	switch v := a.(type) {
	case *DFA:
		return PruneDFA(v)
	case *NFA:
		return PruneNFA(v)
	default:
		return PruneNFA(copyAny(a))
	}
}

// PruneDFA is Prune for a DFA.
func PruneDFA(d *DFA) *DFA {
	p := NewDFA(d.label)
	p.alphabet = d.Alphabet()
	for _, q := range Reachable(d) {
		p.insertState(q)
		if d.accept[q] {
			p.accept[q] = true
		}
		for _, sym := range d.alphabet {
			if t, ok := d.delta[edge{q, sym}]; ok {
				p.setDelta(q, sym, t)
			}
		}
	}
	p.start = d.start
	return p
}

// PruneNFA is Prune for an NFA.
func PruneNFA(n *NFA) *NFA {
	p := NewNFA(n.label)
	p.alphabet = n.Alphabet()
	for _, q := range Reachable(n) {
		p.insertState(q)
		if n.accept[q] {
			p.accept[q] = true
		}
		for _, sym := range n.alphabet {
			for _, t := range n.delta[edge{q, sym}] {
				p.addTarget(q, sym, t)
			}
		}
	}
	p.start = n.start
	return p
}
