package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lexaard/internal/fsa"
	"github.com/roach88/lexaard/internal/ir"
)

// parseOutput reads a command's text output back as an automaton.
func parseOutput(t *testing.T, out string) fsa.Automaton {
	t.Helper()
	a, err := fsa.Parse(out)
	require.NoError(t, err, out)
	return a
}

func assertLanguage(t *testing.T, a fsa.Automaton, accepts, rejects []string) {
	t.Helper()
	for _, in := range accepts {
		assert.True(t, a.Run(in), "should accept %q", in)
	}
	for _, in := range rejects {
		assert.False(t, a.Run(in), "should reject %q", in)
	}
}

func TestPrint(t *testing.T) {
	stdout, _, err := execute(t, "", "print", defsPath("div3.fsa"))
	require.NoError(t, err)
	assert.Equal(t, div3Rendering, stdout)
}

func TestPrint_CUEReference(t *testing.T) {
	stdout, _, err := execute(t, "", "print", defsPath("automata.cue")+"#evenA")
	require.NoError(t, err)

	a := parseOutput(t, stdout)
	assert.Equal(t, "even a", a.Label())
	assert.Equal(t, fsa.KindDFA, a.Kind())
	assertLanguage(t, a, []string{"", "aa"}, []string{"a", "aaa"})
}

func TestPrint_JSON(t *testing.T) {
	stdout, _, err := execute(t, "", "--format", "json", "print", defsPath("ends01.fsa"))
	require.NoError(t, err)

	var out AutomatonOutput
	resp := decodeResponse(t, stdout, &out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, ir.KindNFA, out.Document.Kind)
	assert.Equal(t, "ends with 01", out.Document.Label)
	assert.Equal(t, "q0", out.Document.Start)
	assert.NotEmpty(t, out.Hash)
}

func TestUnion(t *testing.T) {
	stdout, _, err := execute(t, "", "union", defsPath("ends01.fsa"), defsPath("div3.fsa"))
	require.NoError(t, err)

	a := parseOutput(t, stdout)
	assert.Equal(t, fsa.KindNFA, a.Kind())
	assert.Equal(t, "ends with 01 U div3", a.Label())
	assertLanguage(t, a, []string{"", "01", "000", "1101"}, []string{"0", "10", "00"})
}

func TestUnion_DFA(t *testing.T) {
	stdout, _, err := execute(t, "", "union", "--dfa", defsPath("ends01-dfa.fsa"), defsPath("div3.fsa"))
	require.NoError(t, err)

	a := parseOutput(t, stdout)
	assert.Equal(t, fsa.KindDFA, a.Kind())
	assert.Equal(t, "ends with 01 (dfa) U div3", a.Label())
	assert.Equal(t, "(A,q0)", a.Start())
	// Both operands are complete, so the product has every pair.
	assert.Len(t, a.States(), 9)
	assertLanguage(t, a, []string{"", "01", "000", "1101"}, []string{"0", "10", "00"})
}

func TestUnion_DFAJSON(t *testing.T) {
	stdout, _, err := execute(t, "", "--format", "json", "union", "--dfa", defsPath("ends01-dfa.fsa"), defsPath("div3.fsa"))
	require.NoError(t, err)

	var out AutomatonOutput
	decodeResponse(t, stdout, &out)
	assert.Equal(t, ir.KindDFA, out.Document.Kind)
	assert.Equal(t, "(A,q0)", out.Document.Start)
	assert.Len(t, out.Document.States, 9)
}

// Saved output of one command is valid input to the next.
func TestTransform_ChainsThroughFiles(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := execute(t, "", "todfa", defsPath("ends01.fsa"))
	require.NoError(t, err)
	subsets := writeFile(t, dir, "subsets.fsa", stdout)

	stdout, _, err = execute(t, "", "union", "--dfa", subsets, defsPath("div3.fsa"))
	require.NoError(t, err)
	product := writeFile(t, dir, "product.fsa", stdout)

	stdout, _, err = execute(t, "", "print", product)
	require.NoError(t, err)
	a := parseOutput(t, stdout)
	assert.Equal(t, fsa.KindDFA, a.Kind())
	assert.Equal(t, "({q0},q0)", a.Start())
	assertLanguage(t, a, []string{"", "01", "000"}, []string{"0", "10"})

	single := writeFile(t, dir, "single.fsa", "single\na\n*s s,\n")
	stdout, _, err = execute(t, "", "prune", single)
	require.NoError(t, err)
	assert.Equal(t, fsa.KindNFA, parseOutput(t, stdout).Kind())
}

func TestUnion_DFAWrongKind(t *testing.T) {
	stdout, _, err := execute(t, "", "union", "--dfa", defsPath("div3.fsa"), defsPath("ends01.fsa"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E007]")
	assert.Contains(t, stdout, `operand 2 ("ends with 01") is a nfa`)
}

func TestConcat(t *testing.T) {
	stdout, _, err := execute(t, "", "concat", defsPath("div3.fsa"), defsPath("ends01.fsa"))
	require.NoError(t, err)

	a := parseOutput(t, stdout)
	assert.Equal(t, fsa.KindNFA, a.Kind())
	assertLanguage(t, a, []string{"01", "10001"}, []string{"", "0", "10"})
}

func TestStar(t *testing.T) {
	stdout, _, err := execute(t, "", "star", defsPath("ends01.fsa"))
	require.NoError(t, err)

	a := parseOutput(t, stdout)
	assert.Equal(t, "ends with 01*", a.Label())
	assertLanguage(t, a, []string{"", "01", "0101", "1101"}, []string{"0", "010"})
}

func TestToDFA(t *testing.T) {
	stdout, _, err := execute(t, "", "todfa", defsPath("ends01.fsa"))
	require.NoError(t, err)

	a := parseOutput(t, stdout)
	assert.Equal(t, fsa.KindDFA, a.Kind())

	want, err := LoadAutomaton(defsPath("ends01-dfa.fsa"))
	require.NoError(t, err)
	assert.True(t, fsa.Equivalent(a, want))
}

func TestToDFA_KeepsDFA(t *testing.T) {
	stdout, _, err := execute(t, "", "todfa", defsPath("div3.fsa"))
	require.NoError(t, err)
	assert.Equal(t, div3Rendering, stdout)
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "island.fsa", "island\na\n*s s\nx s\n")

	stdout, _, err := execute(t, "", "prune", path)
	require.NoError(t, err)

	a := parseOutput(t, stdout)
	assert.Equal(t, []string{"s"}, a.States())
	assertLanguage(t, a, []string{"", "aaa"}, nil)
}

func TestTransform_Label(t *testing.T) {
	stdout, _, err := execute(t, "", "star", "--label", "loop", defsPath("div3.fsa"))
	require.NoError(t, err)
	assert.Equal(t, "loop", parseOutput(t, stdout).Label())
}

func TestTransform_LoadErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"missing file", []string{"print", "nope.fsa"}, ErrCodeNotFound},
		{"ambiguous cue", []string{"print", defsPath("automata.cue")}, ErrCodeGeneric},
		{"second operand missing", []string{"union", defsPath("div3.fsa"), "missing.fsa"}, ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, stdout, "Error ["+tt.code+"]")
		})
	}
}
