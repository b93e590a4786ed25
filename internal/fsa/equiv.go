package fsa

// Equivalent reports whether a and b accept exactly the same strings.
//
// Both operands are taken to NFAs, determinized over their combined
// alphabet, and combined into the automaton for
// (L(a) ∩ ¬L(b)) ∪ (¬L(a) ∩ L(b)). They are equivalent iff no accept
// state of that automaton is reachable from its start.
func Equivalent(a, b Automaton) bool {
	diff := difference(a, b)
	for _, q := range Reachable(diff) {
		if diff.IsAccept(q) {
			return false
		}
	}
	return true
}

// Distinguish returns a shortest string accepted by exactly one of a and
// b, ordered by the combined alphabet, and true. It returns "", false when
// the automata are equivalent.
func Distinguish(a, b Automaton) (string, bool) {
	diff := difference(a, b)

	type step struct {
		prev string
		sym  rune
	}
	parent := map[string]step{diff.start: {}}
	queue := []string{diff.start}
	for i := 0; i < len(queue); i++ {
		q := queue[i]
		if diff.accept[q] {
			var witness []rune
			for q != diff.start {
				s := parent[q]
				witness = append(witness, s.sym)
				q = s.prev
			}
			for l, r := 0, len(witness)-1; l < r; l, r = l+1, r-1 {
				witness[l], witness[r] = witness[r], witness[l]
			}
			return string(witness), true
		}
		for _, sym := range diff.alphabet {
			t := diff.delta[edge{q, sym}]
			if _, ok := parent[t]; !ok {
				parent[t] = step{prev: q, sym: sym}
				queue = append(queue, t)
			}
		}
	}
	return "", false
}

// difference builds the symmetric-difference DFA of a and b over their
// combined alphabet.
func difference(a, b Automaton) *DFA {
	alphabet := withoutEpsilon(unionAlphabet(a.Alphabet(), b.Alphabet()))
	da := subsetConstruct(ToNFA(a), alphabet)
	db := subsetConstruct(ToNFA(b), alphabet)
	return SymmetricDifference(da, db)
}
