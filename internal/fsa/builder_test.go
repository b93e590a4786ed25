package fsa

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDFA(t *testing.T) {
	d := mustDFA(t, div3Def)

	assert.Equal(t, "div3", d.Label())
	assert.Equal(t, KindDFA, d.Kind())
	assert.Equal(t, []rune{'0', '1'}, d.Alphabet())
	assert.Equal(t, []string{"q0", "q1", "q2"}, d.States())
	assert.Equal(t, "q0", d.Start())
	assert.Equal(t, []string{"q0"}, d.AcceptStates())

	target, ok := d.Delta("q2", '0')
	require.True(t, ok)
	assert.Equal(t, "q0", target)
}

func TestParsePromotesOnCommaToken(t *testing.T) {
	n := mustNFA(t, endsWith01Def)

	// The first line was stored while still a DFA; promotion must keep it.
	assert.Equal(t, "q0", n.Start())
	assert.Equal(t, []string{"q0", "q1", "q2"}, n.States())
	assert.Equal(t, []string{"q2"}, n.AcceptStates())
	assert.Equal(t, []string{"q0", "q1"}, n.Delta("q0", '0'))
	assert.Equal(t, []string{"q0"}, n.Delta("q0", '1'))
	assert.Equal(t, []string{"q2"}, n.Delta("q1", '1'))
	assert.Nil(t, n.Delta("q2", '0'))
}

func TestParsePromotionKeepsEarlierRows(t *testing.T) {
	n := mustNFA(t, `late
a b
*s t s
t s t,s
`)
	assert.Equal(t, "s", n.Start())
	assert.True(t, n.IsAccept("s"))
	assert.Equal(t, []string{"t"}, n.Delta("s", 'a'))
	assert.Equal(t, []string{"s"}, n.Delta("s", 'b'))
	assert.Equal(t, []string{"t", "s"}, n.Delta("t", 'b'))
}

func TestParseEpsilonAlphabetBuildsNFA(t *testing.T) {
	b := NewBuilder("eps")
	require.NoError(t, b.SetAlphabet("a .."))
	assert.Equal(t, KindNFA, b.Kind(), "epsilon alphabet must switch before any state line")

	require.NoError(t, b.AddLine("s s -"))
	a, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, KindNFA, a.Kind())
	assert.True(t, a.HasEpsilon())
}

func TestDFAAddStateLineRejectsCommaWithoutMutation(t *testing.T) {
	d := NewDFA("d")
	_, err := d.SetAlphabet("a b")
	require.NoError(t, err)

	ok, err := d.AddStateLine("s s t")
	require.NoError(t, err)
	require.True(t, ok)

	before := d.String()
	ok, err = d.AddStateLine("*t s,t t")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, d.String())
	assert.False(t, d.HasState("t"))

	// A trailing comma still marks the token as nondeterministic.
	ok, err = d.AddStateLine("t s, t")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDFAAcceptsEmptyToken(t *testing.T) {
	d := mustDFA(t, `partial
a b
s - s
`)
	_, ok := d.Delta("s", 'a')
	assert.False(t, ok)
	assert.False(t, d.Run("a"))
	assert.False(t, d.Run("b"))
}

func TestPromoteIsIndependentAndIdempotent(t *testing.T) {
	d := NewDFA("grow")
	_, err := d.SetAlphabet("a")
	require.NoError(t, err)
	_, err = d.AddStateLine("*s s")
	require.NoError(t, err)

	n := Promote(d)
	once := n.String()
	assert.Equal(t, once, ToNFA(n).String())
	assert.Equal(t, once, ToNFA(ToNFA(d)).String())

	_, err = d.AddStateLine("t t")
	require.NoError(t, err)
	assert.Equal(t, once, n.String(), "later DFA mutation must not leak into the promoted copy")
}

func TestAddStateFreshNames(t *testing.T) {
	d := NewDFA("names")

	assert.Equal(t, "q0", d.AddState("q0"))
	assert.Equal(t, "q1", d.AddState("q0"))
	assert.Equal(t, "f", d.AddState("*f"))
	assert.Equal(t, "q2", d.AddState(""))

	assert.Equal(t, "q0", d.Start(), "start state is fixed by the first state")
	assert.True(t, d.IsAccept("f"))
	assert.False(t, d.HasState("*f"))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		def  string
		code ParseErrorCode
		line int
	}{
		{"empty", "\n\n", ErrCodeEmptyDefinition, 0},
		{"missing alphabet", "lonely", ErrCodeAlphabet, 2},
		{"multi-char symbol", "x\nab c\n", ErrCodeAlphabet, 2},
		{"duplicate symbol", "x\na a\n", ErrCodeAlphabet, 2},
		{"too many tokens", "x\na\ns s s\n", ErrCodeTooManyTokens, 3},
		{"duplicate state", "x\na\ns s\ns s\n", ErrCodeDuplicateState, 4},
		{"bad state name", "x\na\n* s\n", ErrCodeStateLine, 3},
		{"undeclared target", "x\na\ns t\n", ErrCodeUndeclaredState, 0},
		{"no states", "x\na\n\n", ErrCodeNoStates, 0},
		{"duplicate state after promotion", "x\na\ns s,s\ns s\n", ErrCodeDuplicateState, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse(tt.def)
			require.Error(t, err)
			assert.Nil(t, a)

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
			assert.Equal(t, tt.code, pe.Code)
			assert.Equal(t, tt.line, pe.Line)
			assert.True(t, IsParseError(err))
		})
	}
}

func TestParseStopsAtBlankLine(t *testing.T) {
	a, err := Parse("\nfirst\na\n*s s\n\nsecond\nb\n")
	require.NoError(t, err)
	assert.Equal(t, "first", a.Label())
	assert.Equal(t, []string{"s"}, a.States())
}

func TestParseErrorFormat(t *testing.T) {
	err := &ParseError{Code: ErrCodeAlphabet, Line: 2, Message: "bad"}
	assert.Equal(t, "line 2: BAD_ALPHABET: bad", err.Error())

	err = &ParseError{Code: ErrCodeNoStates, Message: "none"}
	assert.Equal(t, "NO_STATES: none", err.Error())
}

func TestParseRow(t *testing.T) {
	row, err := ParseRow("*s a,b,a - c ,")
	require.NoError(t, err)

	assert.Equal(t, "s", row.Name)
	assert.True(t, row.Accept)
	assert.True(t, row.Nondeterministic)
	assert.Equal(t, [][]string{{"a", "b"}, nil, {"c"}, nil}, row.Targets)

	_, err = ParseRow("   ")
	assert.True(t, IsParseError(err))
}

func TestParseRowBracketedNames(t *testing.T) {
	row, err := ParseRow("*(q0,q1) {q0,q1} (q0,q1),({a,b},q2)")
	require.NoError(t, err)

	assert.Equal(t, "(q0,q1)", row.Name)
	assert.True(t, row.Accept)
	assert.True(t, row.Nondeterministic)
	assert.Equal(t, [][]string{{"{q0,q1}"}, {"(q0,q1)", "({a,b},q2)"}}, row.Targets)

	row, err = ParseRow("(A,q0) (B,q1) {}")
	require.NoError(t, err)
	assert.False(t, row.Nondeterministic, "a bracketed comma does not join targets")
	assert.Equal(t, [][]string{{"(B,q1)"}, {"{}"}}, row.Targets)
}

func TestCheckStateName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"q0", true},
		{"(q0,q1)", true},
		{"{q0,q1}", true},
		{"({q0},(a,b))", true},
		{"{}", true},
		{"", false},
		{"-", false},
		{"a*", false},
		{"q0,q1", false},
		{"(q0,q1", false},
		{"q0)", false},
		{"(q0}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckStateName(tt.name)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, IsParseError(err), "%q should be rejected", tt.name)
			}
		})
	}
}

func TestParseProductDFA(t *testing.T) {
	a, err := Parse("pairs\n0\n*(q0,q0) (q1,q1)\n(q1,q1) (q0,q0)\n")
	require.NoError(t, err)

	assert.Equal(t, KindDFA, a.Kind())
	assert.Equal(t, []string{"(q0,q0)", "(q1,q1)"}, a.States())
	assert.True(t, a.Run("00"))
	assert.False(t, a.Run("0"))
}
