package fsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquivalent(t *testing.T) {
	div3 := mustDFA(t, div3Def)
	ends := mustNFA(t, endsWith01Def)

	tests := []struct {
		name string
		a, b Automaton
		want bool
	}{
		{"promoted and determinized", div3, ToDFA(Promote(div3)), true},
		{"nfa and its dfa", ends, ToDFA(ends), true},
		{"reflexive", ends, ends, true},
		{"different languages", div3, mustDFA(t, evenOnesDef), false},
		{"union of characters", Union(Char('a'), Char('b')), mustDFA(t, "a or b\na b\ns f f\n*f - -\n"), true},
		{"star of a character", Star(Char('a')), mustDFA(t, "a star\na\n*s s\n"), true},
		{"unused extra symbol", div3, mustDFA(t, "div3 wide\n0 1 2\n*q0 q1 q0 -\nq1 q2 q1 -\nq2 q0 q2 -\n"), true},
		{"empty languages", EmptyLanguage(), mustDFA(t, "dead\na\ns s\n"), true},
		{"empty string vs empty language", EmptyString(), EmptyLanguage(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equivalent(tt.a, tt.b))
			assert.Equal(t, tt.want, Equivalent(tt.b, tt.a), "equivalence is symmetric")
		})
	}
}

func TestDistinguish(t *testing.T) {
	d1 := mustDFA(t, div3Def)
	d2 := mustDFA(t, evenOnesDef)

	w, ok := Distinguish(d1, d2)
	require.True(t, ok)
	assert.Equal(t, "0", w)
	assert.NotEqual(t, d1.Run(w), d2.Run(w))

	w, ok = Distinguish(d1, ToDFA(Promote(d1)))
	assert.False(t, ok)
	assert.Empty(t, w)

	w, ok = Distinguish(EmptyString(), EmptyLanguage())
	require.True(t, ok)
	assert.Equal(t, "", w)
}

// Equivalent must agree with brute force: a "false" answer must come with a
// real witness, and a "true" answer must survive every short input.
func TestEquivalentAgreesWithBoundedSearch(t *testing.T) {
	ends := mustNFA(t, endsWith01Def)
	div3 := mustDFA(t, div3Def)
	pool := []Automaton{
		div3,
		mustDFA(t, evenOnesDef),
		ends,
		ToDFA(ends),
		Prune(DFAUnion(div3, mustDFA(t, evenOnesDef))),
		Union(ends, Promote(div3)),
		Star(Char('0')),
		Concat(Star(Char('0')), Char('1')),
		EmptyLanguage(),
	}
	inputs := allStrings("01", 6)

	for i, a := range pool {
		for j, b := range pool {
			if Equivalent(a, b) {
				w, same := sameOn(a, b, inputs)
				assert.True(t, same, "pool[%d] and pool[%d] reported equivalent but differ on %q", i, j, w)
				continue
			}
			w, ok := Distinguish(a, b)
			require.True(t, ok, "pool[%d] and pool[%d]", i, j)
			assert.NotEqual(t, a.Run(w), b.Run(w), "witness %q for pool[%d] and pool[%d]", w, i, j)
		}
	}
}
