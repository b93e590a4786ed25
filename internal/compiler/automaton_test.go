package compiler

import (
	"errors"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lexaard/internal/fsa"
)

func compileNamed(t *testing.T, src, name string) (fsa.Automaton, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src, cue.Filename("test.cue"))
	require.NoError(t, v.Err())
	return CompileAutomaton(v.LookupPath(cue.ParsePath("automaton." + name)))
}

func TestCompileAutomatonDFA(t *testing.T) {
	a, err := compileNamed(t, `
		automaton: div3: {
			alphabet: ["0", "1"]
			states: [
				{name: "q0", accept: true, on: {"0": "q1", "1": "q0"}},
				{name: "q1", on: {"0": "q2", "1": "q1"}},
				{name: "q2", on: {"0": "q0", "1": "q2"}},
			]
		}
	`, "div3")
	require.NoError(t, err)

	assert.Equal(t, fsa.KindDFA, a.Kind())
	assert.Equal(t, "div3", a.Label(), "label defaults to the field name")
	assert.Equal(t, "q0", a.Start())
	assert.True(t, a.Run("000"))
	assert.False(t, a.Run("0"))
}

func TestCompileAutomatonListPromotes(t *testing.T) {
	a, err := compileNamed(t, `
		automaton: ends01: {
			label: "ends with 01"
			alphabet: ["0", "1"]
			states: [
				{name: "a", on: {"0": ["a", "b"], "1": "a"}},
				{name: "b", on: {"1": ["c"]}},
				{name: "c", accept: true},
			]
		}
	`, "ends01")
	require.NoError(t, err)

	assert.Equal(t, fsa.KindNFA, a.Kind())
	assert.Equal(t, "ends with 01", a.Label())
	assert.True(t, a.Run("1101"))
	assert.False(t, a.Run("0110"))
}

func TestCompileAutomatonEpsilon(t *testing.T) {
	a, err := compileNamed(t, `
		automaton: eps: {
			alphabet: ["a", ".."]
			states: [
				{name: "s", on: {"..": "t"}},
				{name: "t", accept: true, on: {"a": "t"}},
			]
		}
	`, "eps")
	require.NoError(t, err)

	assert.Equal(t, fsa.KindNFA, a.Kind())
	assert.True(t, a.Run(""))
	assert.True(t, a.Run("aa"))
}

func TestCompileAutomatonKind(t *testing.T) {
	a, err := compileNamed(t, `
		automaton: forced: {
			kind: "nfa"
			alphabet: ["a"]
			states: [{name: "s", accept: true, on: {a: "s"}}]
		}
	`, "forced")
	require.NoError(t, err)
	assert.Equal(t, fsa.KindNFA, a.Kind())

	_, err = compileNamed(t, `
		automaton: liar: {
			kind: "dfa"
			alphabet: ["a"]
			states: [{name: "s", on: {a: ["s", "t"]}}, {name: "t"}]
		}
	`, "liar")
	requireCompileError(t, err, "kind")
}

func TestCompileAutomatonErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{
			"missing alphabet",
			`automaton: x: {states: [{name: "s"}]}`,
			"alphabet",
		},
		{
			"multi-char symbol",
			`automaton: x: {alphabet: ["ab"], states: [{name: "s"}]}`,
			"alphabet",
		},
		{
			"missing states",
			`automaton: x: {alphabet: ["a"]}`,
			"states",
		},
		{
			"empty states",
			`automaton: x: {alphabet: ["a"], states: []}`,
			"states",
		},
		{
			"missing state name",
			`automaton: x: {alphabet: ["a"], states: [{accept: true}]}`,
			"states.name",
		},
		{
			"bad state name",
			`automaton: x: {alphabet: ["a"], states: [{name: "a,b"}]}`,
			"states.name",
		},
		{
			"symbol outside alphabet",
			`automaton: x: {alphabet: ["a"], states: [{name: "s", on: {b: "s"}}]}`,
			"states.on",
		},
		{
			"undeclared target",
			`automaton: x: {alphabet: ["a"], states: [{name: "s", on: {a: "t"}}]}`,
			"states",
		},
		{
			"duplicate state",
			`automaton: x: {alphabet: ["a"], states: [{name: "s"}, {name: "s"}]}`,
			"states",
		},
		{
			"bad target type",
			`automaton: x: {alphabet: ["a"], states: [{name: "s", on: {a: 3}}]}`,
			"states.on",
		},
		{
			"unknown kind",
			`automaton: x: {kind: "pda", alphabet: ["a"], states: [{name: "s"}]}`,
			"kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileNamed(t, tt.src, "x")
			requireCompileError(t, err, tt.field)
		})
	}
}

func TestCompileErrorPosition(t *testing.T) {
	_, err := compileNamed(t, `automaton: x: {
	alphabet: ["a"]
	states: [{name: "s", on: {z: "s"}}]
}`, "x")

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	require.True(t, ce.Pos.IsValid())
	assert.Equal(t, 3, ce.Pos.Line())
	assert.Contains(t, ce.Error(), "test.cue:3:")
}

func TestCompileCUE(t *testing.T) {
	named, err := CompileCUE("inline.cue", []byte(`
		automaton: a: {alphabet: ["a"], states: [{name: "s", accept: true, on: {a: "s"}}]}
		automaton: b: {alphabet: ["b"], states: [{name: "s", accept: true}]}
	`))
	require.NoError(t, err)
	require.Len(t, named, 2)
	assert.Equal(t, "a", named[0].Name)
	assert.Equal(t, "b", named[1].Name)
	assert.Equal(t, "inline.cue", named[0].Source)
}

func requireCompileError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var ce *CompileError
	require.True(t, errors.As(err, &ce), "expected *CompileError, got %T: %v", err, err)
	assert.Equal(t, field, ce.Field, "error: %v", err)
}
