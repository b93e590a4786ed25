package fsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDFAUnion(t *testing.T) {
	d1 := mustDFA(t, div3Def)
	d2 := mustDFA(t, end2Def)

	u := DFAUnion(d1, d2)

	assert.Equal(t, "div3 U end2", u.Label())
	assert.Equal(t, []rune{'0', '1', '2'}, u.Alphabet())
	// div3 gains sink q3 for '2'; end2 gains sink q0 for '0'.
	assert.Len(t, u.States(), 12)
	assert.Equal(t, "(q0,s)", u.Start())

	for _, w := range allStrings("012x", 5) {
		assert.Equal(t, d1.Run(w) || d2.Run(w), u.Run(w), "input %q", w)
	}
}

func TestDFAUnionIsTotal(t *testing.T) {
	u := DFAUnion(mustDFA(t, div3Def), mustDFA(t, end2Def))
	for _, q := range u.States() {
		for _, sym := range u.Alphabet() {
			target, ok := u.Delta(q, sym)
			assert.True(t, ok, "missing transition for (%s, %c)", q, sym)
			assert.True(t, u.HasState(target))
		}
	}
}

func TestIntersectAndDifference(t *testing.T) {
	d1 := mustDFA(t, div3Def)
	d2 := mustDFA(t, evenOnesDef)

	and := Intersect(d1, d2)
	xor := SymmetricDifference(d1, d2)
	for _, w := range allStrings("01", 6) {
		assert.Equal(t, d1.Run(w) && d2.Run(w), and.Run(w), "intersect on %q", w)
		assert.Equal(t, d1.Run(w) != d2.Run(w), xor.Run(w), "difference on %q", w)
	}
}

func TestComplement(t *testing.T) {
	d := mustDFA(t, `partial
a b
*s s
`)
	c := Complement(d)

	assert.Equal(t, "^partial", c.Label())
	for _, w := range allStrings("ab", 4) {
		assert.Equal(t, !d.Run(w), c.Run(w), "input %q", w)
	}
}

func TestCompleteAddsSinkOnlyWhenNeeded(t *testing.T) {
	d := mustDFA(t, div3Def)

	same := Complete(d, nil)
	assert.Equal(t, d.States(), same.States())

	wider := Complete(d, []rune{'2', Epsilon})
	assert.Equal(t, []rune{'0', '1', '2'}, wider.Alphabet())
	assert.Equal(t, []string{"q0", "q1", "q2", "q3"}, wider.States())
	target, ok := wider.Delta("q1", '2')
	require.True(t, ok)
	assert.Equal(t, "q3", target)
	assert.False(t, wider.IsAccept("q3"))

	assert.Len(t, d.States(), 3, "operand must be unchanged")
}

func TestUnion(t *testing.T) {
	u := Union(Char('a'), Char('b'))

	assert.Equal(t, "a U b", u.Label())
	assert.Equal(t, []rune{'a', 'b', Epsilon}, u.Alphabet())
	assert.Equal(t, []string{"q2", "q0", "q1", "q3", "q4"}, u.States())
	assert.Equal(t, "q2", u.Start())
	assert.Equal(t, []string{"q1", "q4"}, u.AcceptStates())
	assert.Equal(t, []string{"q0", "q3"}, u.Delta("q2", Epsilon))

	assert.True(t, u.Run("a"))
	assert.True(t, u.Run("b"))
	assert.False(t, u.Run("c"))
	assert.False(t, u.Run(""))
	assert.False(t, u.Run("ab"))
}

func TestUnionLanguage(t *testing.T) {
	n1 := mustNFA(t, endsWith01Def)
	n2 := mustNFA(t, aStarOrBStarDef)
	u := Union(n1, n2)

	for _, w := range allStrings("01ab", 4) {
		assert.Equal(t, n1.Run(w) || n2.Run(w), u.Run(w), "input %q", w)
	}
}

func TestConcat(t *testing.T) {
	n1 := mustNFA(t, endsWith01Def)
	n2 := mustNFA(t, aStarOrBStarDef)
	c := Concat(n1, n2)

	assert.Equal(t, "ends with 01 ○ a* or b*", c.Label())
	assert.Equal(t, n1.Start(), c.Start())
	for _, w := range allStrings("01ab", 5) {
		assert.Equal(t, splits(n1, n2, w), c.Run(w), "input %q", w)
	}
}

func TestConcatSelf(t *testing.T) {
	a := Char('a')
	c := Concat(a, a)

	assert.True(t, c.Run("aa"))
	assert.False(t, c.Run("a"))
	assert.False(t, c.Run("aaa"))
	assert.Len(t, c.States(), 4, "second copy must be renamed apart")
}

func TestStar(t *testing.T) {
	s := Star(Char('a'))

	assert.Equal(t, "a*", s.Label())
	for _, w := range []string{"", "a", "aaaa"} {
		assert.True(t, s.Run(w), "input %q", w)
	}
	assert.False(t, s.Run("ab"))
	assert.False(t, s.Run("b"))
}

func TestStarLanguage(t *testing.T) {
	for _, def := range []string{endsWith01Def, aStarOrBStarDef} {
		n := mustNFA(t, def)
		s := Star(n)
		for _, w := range allStrings(string(withoutEpsilon(n.Alphabet())), 5) {
			assert.Equal(t, iterates(n, w), s.Run(w), "%s on %q", s.Label(), w)
		}
	}
}

func TestStarOfEmptyLanguage(t *testing.T) {
	s := Star(EmptyLanguage())
	assert.True(t, s.Run(""))
	assert.False(t, s.Run("a"))
}

func TestCombinatorsDoNotAliasOperands(t *testing.T) {
	n1 := Char('a')
	n2 := Char('b')

	u := Union(n1, n2)
	c := Concat(n1, n2)
	s := Star(n1)
	before := []string{u.String(), c.String(), s.String()}

	n1.AddState("*extra")
	n1.addTarget("q1", 'a', "extra")
	n2.accept["q0"] = true

	assert.Equal(t, before, []string{u.String(), c.String(), s.String()})

	u.addTarget("q0", 'b', "q0")
	assert.Nil(t, n1.Delta("q0", 'b'))
}

func TestDFAUnionDoesNotAliasOperands(t *testing.T) {
	d1 := mustDFA(t, div3Def)
	d2 := mustDFA(t, evenOnesDef)
	u := DFAUnion(d1, d2)
	before := u.String()

	d1.setDelta("q0", '0', "q0")
	d2.accept["o"] = true

	assert.Equal(t, before, u.String())
}
