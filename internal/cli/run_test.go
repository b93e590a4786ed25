package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	stdout, _, err := execute(t, "", "run", defsPath("ends01.fsa"), "01", "110", "")
	require.NoError(t, err)
	assert.Equal(t, "accept\t\"01\"\nreject\t\"110\"\nreject\t\"\"\n", stdout)
}

func TestRun_JSON(t *testing.T) {
	stdout, _, err := execute(t, "", "--format", "json", "run", defsPath("automata.cue")+"#evenA", "aa", "a")
	require.NoError(t, err)

	var out RunOutput
	resp := decodeResponse(t, stdout, &out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "even a", out.Label)
	assert.Equal(t, "dfa", out.Kind)
	assert.Equal(t, []RunResult{
		{Input: "aa", Accepted: true},
		{Input: "a", Accepted: false},
	}, out.Results)
}

func TestRun_SymbolOutsideAlphabet(t *testing.T) {
	stdout, _, err := execute(t, "", "run", defsPath("div3.fsa"), "000", "0x0")
	require.NoError(t, err)
	assert.Equal(t, "accept\t\"000\"\nreject\t\"0x0\"\n", stdout)
}

func TestRun_Errors(t *testing.T) {
	_, _, err := execute(t, "", "run", defsPath("div3.fsa"))
	require.Error(t, err, "an input is required")

	stdout, _, err := execute(t, "", "run", "missing.fsa", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "definition file not found: missing.fsa")
}
