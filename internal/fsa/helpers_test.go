package fsa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Zero count divisible by three.
const div3Def = `div3
0 1
*q0 q1 q0
q1 q2 q1
q2 q0 q2
`

// Even number of 1s.
const evenOnesDef = `even ones
0 1
*e e o
o o e
`

// Strings over {1,2} ending in 2.
const end2Def = `end2
1 2
s s f
*f s f
`

// Strings over {0,1} ending in 01.
const endsWith01Def = `ends with 01
0 1
q0 q0,q1 q0
q1 - q2
*q2 - -
`

// a* ∪ b* via epsilon moves.
const aStarOrBStarDef = `a* or b*
a b ..
p - - q,r
*q q - -
*r - r -
`

// Epsilon cycle between s and t.
const cycleDef = `cycle
a ..
s u t
t - s
*u - -
`

func mustParse(t *testing.T, def string) Automaton {
	t.Helper()
	a, err := Parse(def)
	require.NoError(t, err)
	return a
}

func mustDFA(t *testing.T, def string) *DFA {
	t.Helper()
	d, ok := mustParse(t, def).(*DFA)
	require.True(t, ok, "definition should build a DFA")
	return d
}

func mustNFA(t *testing.T, def string) *NFA {
	t.Helper()
	n, ok := mustParse(t, def).(*NFA)
	require.True(t, ok, "definition should build an NFA")
	return n
}

// allStrings enumerates every string over alphabet up to maxLen symbols.
func allStrings(alphabet string, maxLen int) []string {
	out := []string{""}
	layer := []string{""}
	for n := 1; n <= maxLen; n++ {
		var next []string
		for _, s := range layer {
			for _, c := range alphabet {
				next = append(next, s+string(c))
			}
		}
		out = append(out, next...)
		layer = next
	}
	return out
}

// walk is the ground-truth DFA semantics: follow Delta symbol by symbol.
func walk(d *DFA, w string) bool {
	q := d.Start()
	for _, c := range w {
		next, ok := d.Delta(q, c)
		if !ok {
			return false
		}
		q = next
	}
	return d.IsAccept(q)
}

// splits reports whether w = uv with left accepting u and right accepting v.
func splits(left, right Automaton, w string) bool {
	for i := 0; i <= len(w); i++ {
		if left.Run(w[:i]) && right.Run(w[i:]) {
			return true
		}
	}
	return false
}

// iterates reports whether w is a concatenation of zero or more strings
// accepted by a.
func iterates(a Automaton, w string) bool {
	ok := make([]bool, len(w)+1)
	ok[0] = true
	for j := 1; j <= len(w); j++ {
		for i := 0; i < j && !ok[j]; i++ {
			ok[j] = ok[i] && a.Run(w[i:j])
		}
	}
	return ok[len(w)]
}

// sameOn reports the first string on which a and b disagree.
func sameOn(a, b Automaton, inputs []string) (string, bool) {
	for _, w := range inputs {
		if a.Run(w) != b.Run(w) {
			return w, false
		}
	}
	return "", true
}
