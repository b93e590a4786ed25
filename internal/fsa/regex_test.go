package fsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Even number of a's.
const evenADef = `even a
a
*e o
o e
`

func TestRegexString(t *testing.T) {
	a, b, c := RegexChar('a'), RegexChar('b'), RegexChar('c')

	tests := []struct {
		name string
		re   *Regex
		want string
	}{
		{"char", a, "a"},
		{"empty", RegexEmpty(), "r."},
		{"null", RegexNull(), "r/"},
		{"union", RegexUnion(a, b), "(r| a b )"},
		{"concat", RegexConcat(a, b, c), "(r. a b c )"},
		{"star", RegexStar(a), "(r* a)"},
		{"nested", RegexStar(RegexConcat(a, RegexUnion(b, RegexEmpty()))), "(r* (r. a (r| b r. ) ))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.re.String())
		})
	}
}

func TestRegexFolding(t *testing.T) {
	a, b := RegexChar('a'), RegexChar('b')

	tests := []struct {
		name string
		re   *Regex
		want string
	}{
		{"union drops null", RegexUnion(RegexNull(), a), "a"},
		{"union of nothing", RegexUnion(), "r/"},
		{"union drops repeats", RegexUnion(a, b, a), "(r| a b )"},
		{"union flattens", RegexUnion(RegexUnion(a, b), RegexChar('c')), "(r| a b c )"},
		{"concat with null", RegexConcat(a, RegexNull(), b), "r/"},
		{"concat drops empty", RegexConcat(RegexEmpty(), a, RegexEmpty()), "a"},
		{"concat of nothing", RegexConcat(), "r."},
		{"concat flattens", RegexConcat(RegexConcat(a, b), a), "(r. a b a )"},
		{"star of null", RegexStar(RegexNull()), "r."},
		{"star of empty", RegexStar(RegexEmpty()), "r."},
		{"star of star", RegexStar(RegexStar(a)), "(r* a)"},
		{"missing operand", RegexConcat(a, nil), "r/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.re.String())
		})
	}
}

func TestRegexNFA(t *testing.T) {
	re := RegexConcat(RegexStar(RegexUnion(RegexChar('0'), RegexChar('1'))), RegexChar('0'), RegexChar('1'))
	n := re.NFA()

	assert.Equal(t, re.String(), n.Label())
	assert.True(t, Equivalent(n, mustNFA(t, endsWith01Def)))

	assert.False(t, RegexNull().NFA().Run(""))
	assert.True(t, RegexEmpty().NFA().Run(""))
}

func TestToRegexText(t *testing.T) {
	tests := []struct {
		name string
		fsa  func(t *testing.T) Automaton
		want string
	}{
		{"one symbol", func(t *testing.T) Automaton { return Char('a') }, "a"},
		{"empty string", func(t *testing.T) Automaton { return EmptyString() }, "r."},
		{"empty language", func(t *testing.T) Automaton { return EmptyLanguage() }, "r/"},
		{"even a", func(t *testing.T) Automaton { return mustDFA(t, evenADef) }, "(r| (r. a (r* (r. a a )) a ) r. )"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToRegex(tt.fsa(t)).String())
		})
	}
}

func TestToRegexLanguage(t *testing.T) {
	tests := []struct {
		name     string
		fsa      func(t *testing.T) Automaton
		alphabet string
	}{
		{"div3", func(t *testing.T) Automaton { return mustDFA(t, div3Def) }, "01"},
		{"even ones", func(t *testing.T) Automaton { return mustDFA(t, evenOnesDef) }, "01"},
		{"end2", func(t *testing.T) Automaton { return mustDFA(t, end2Def) }, "12"},
		{"ends with 01", func(t *testing.T) Automaton { return mustNFA(t, endsWith01Def) }, "01"},
		{"epsilon branches", func(t *testing.T) Automaton { return mustNFA(t, aStarOrBStarDef) }, "ab"},
		{"epsilon cycle", func(t *testing.T) Automaton { return mustNFA(t, cycleDef) }, "a"},
		{"union", func(t *testing.T) Automaton { return Union(Char('a'), Star(Char('b'))) }, "ab"},
		{"complement", func(t *testing.T) Automaton { return Complement(mustDFA(t, div3Def)) }, "01"},
		{"unreachable state", func(t *testing.T) Automaton { return mustDFA(t, "island\na\n*s s\nx s\n") }, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.fsa(t)
			n := ToRegex(a).NFA()

			w, same := sameOn(a, n, allStrings(tt.alphabet, 6))
			assert.True(t, same, "regex disagrees on %q", w)
			assert.True(t, Equivalent(a, n))
		})
	}
}

func TestToRegexLeavesInputUnchanged(t *testing.T) {
	n := mustNFA(t, endsWith01Def)
	before := n.String()

	re := ToRegex(n)
	require.NotEqual(t, OpNull, re.Op)
	assert.Equal(t, before, n.String())
}
