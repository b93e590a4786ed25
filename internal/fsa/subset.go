package fsa

import (
	"sort"
	"strings"
)

// EpsilonClosure returns the smallest superset of states closed under
// epsilon moves, ordered by n's declaration order. Names that are not
// states of n are dropped.
func EpsilonClosure(n *NFA, states []string) []string {
	in := make(map[string]bool, len(states))
	work := append([]string(nil), states...)
	for len(work) > 0 {
		q := work[len(work)-1]
		work = work[:len(work)-1]
		if in[q] {
			continue
		}
		in[q] = true
		work = append(work, n.delta[edge{q, Epsilon}]...)
	}

	closure := make([]string, 0, len(in))
	for _, q := range n.states {
		if in[q] {
			closure = append(closure, q)
		}
	}
	return closure
}

// ToDFA converts n into an equivalent DFA by subset construction.
//
// DFA states are the epsilon-closed subsets of n's states reachable from
// the closure of n's start, labelled "{q0,q2}" with members sorted. The
// empty subset "{}" appears as a rejecting sink when reachable, so the
// result has a transition for every (state, symbol). A subset accepts iff
// it contains an accept state of n.
func ToDFA(n *NFA) *DFA {
	return subsetConstruct(n, n.alphabet)
}

func subsetConstruct(n *NFA, alphabet []rune) *DFA {
	symbols := withoutEpsilon(alphabet)
	d := NewDFA(n.label)
	d.alphabet = symbols

	names := make(map[string]string)
	var queue [][]string
	register := func(set []string) string {
		key := subsetLabel(set)
		if name, ok := names[key]; ok {
			return name
		}
		name := key
		if d.HasState(name) {
			name = freshName(d.HasState)
		}
		d.insertState(name)
		names[key] = name
		for _, q := range set {
			if n.accept[q] {
				d.accept[name] = true
				break
			}
		}
		queue = append(queue, set)
		return name
	}

	var initial []string
	if n.start != "" {
		initial = EpsilonClosure(n, []string{n.start})
	}
	d.start = register(initial)

	for i := 0; i < len(queue); i++ {
		set := queue[i]
		from := names[subsetLabel(set)]
		for _, sym := range symbols {
			var moved []string
			for _, q := range set {
				moved = append(moved, n.delta[edge{q, sym}]...)
			}
			d.setDelta(from, sym, register(EpsilonClosure(n, moved)))
		}
	}
	return d
}

func subsetLabel(set []string) string {
	sorted := append([]string(nil), set...)
	sort.Strings(sorted)
	return "{" + strings.Join(sorted, ",") + "}"
}
