package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lexaard/internal/fsa"
	"github.com/roach88/lexaard/internal/ir"
)

const endsWith01 = `ends with 01
0 1
q0 q0,q1 q0
q1 - q2
*q2 - -
`

func TestToDoc(t *testing.T) {
	a, err := fsa.Parse(endsWith01)
	require.NoError(t, err)

	doc := ToDoc(a)
	assert.Equal(t, "ends with 01", doc.Label)
	assert.Equal(t, ir.KindNFA, doc.Kind)
	assert.Equal(t, []string{"0", "1"}, doc.Alphabet)
	assert.Equal(t, "q0", doc.Start)
	require.Len(t, doc.States, 3)
	assert.Equal(t, map[string][]string{"0": {"q0", "q1"}, "1": {"q0"}}, doc.States[0].On)
	assert.Equal(t, map[string][]string{}, doc.States[2].On)
	assert.True(t, doc.States[2].Accept)
	assert.Empty(t, ValidateDoc(doc))
}

func TestToDocEpsilon(t *testing.T) {
	doc := ToDoc(fsa.Star(fsa.Char('a')))
	assert.Equal(t, []string{"a", ".."}, doc.Alphabet)
	assert.Equal(t, []string{"q0"}, doc.States[0].On[".."], "fresh start moves to the operand start")
}

func TestDocRoundTrip(t *testing.T) {
	div3, err := fsa.Parse("div3\n0 1\n*q0 q1 q0\nq1 q2 q1\nq2 q0 q2\n")
	require.NoError(t, err)
	ends, err := fsa.Parse(endsWith01)
	require.NoError(t, err)
	d1 := div3.(*fsa.DFA)

	tests := []struct {
		name string
		a    fsa.Automaton
	}{
		{"parsed dfa", div3},
		{"parsed nfa", ends},
		{"product names", fsa.DFAUnion(d1, d1)},
		{"subset names", fsa.ToDFA(ends.(*fsa.NFA))},
		{"epsilon", fsa.Union(fsa.Char('a'), fsa.Star(fsa.Char('b')))},
		{"deterministic nfa", fsa.Promote(d1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back, err := FromDoc(ToDoc(tt.a))
			require.NoError(t, err)
			assert.Equal(t, tt.a.Kind(), back.Kind())
			assert.Equal(t, tt.a.String(), back.String())
			assert.True(t, fsa.Equivalent(tt.a, back))
		})
	}
}

func TestFromDocStartFirst(t *testing.T) {
	doc := ir.AutomatonDoc{
		Label:    "late start",
		Kind:     ir.KindDFA,
		Alphabet: []string{"a"},
		Start:    "s",
		States: []ir.StateDoc{
			{Name: "t", Accept: true},
			{Name: "s", On: map[string][]string{"a": {"t"}}},
		},
	}

	a, err := FromDoc(doc)
	require.NoError(t, err)
	assert.Equal(t, "s", a.Start())
	assert.True(t, a.Run("a"))
}

func TestFromDocRejectsInvalid(t *testing.T) {
	doc := ir.AutomatonDoc{
		Label:    "bad",
		Kind:     ir.KindDFA,
		Alphabet: []string{"a"},
		Start:    "s",
		States:   []ir.StateDoc{{Name: "s", On: map[string][]string{"a": {"s", "t"}}}},
	}

	_, err := FromDoc(doc)
	require.Error(t, err)
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ErrNondeterministic, ve.Code)
}
