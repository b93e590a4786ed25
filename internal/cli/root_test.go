package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "lexaard", cmd.Use)
	assert.Contains(t, cmd.Long, "finite-state automata")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{
		"repl", "run", "print", "union", "concat", "star", "todfa",
		"prune", "equiv", "validate", "test", "history",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		command string
		flag    string
		def     string
	}{
		{"repl", "db", ""},
		{"repl", "defs", ""},
		{"repl", "prompt", "lexaard> "},
		{"union", "dfa", "false"},
		{"union", "label", ""},
		{"concat", "label", ""},
		{"star", "label", ""},
		{"todfa", "label", ""},
		{"prune", "label", ""},
		{"test", "update", "false"},
		{"test", "filter", ""},
		{"test", "golden", ""},
		{"history", "db", ""},
		{"history", "session", ""},
	}

	root := NewRootCommand()
	for _, tt := range tests {
		t.Run(tt.command+"/"+tt.flag, func(t *testing.T) {
			cmd, _, err := root.Find([]string{tt.command})
			require.NoError(t, err)
			flag := cmd.Flags().Lookup(tt.flag)
			require.NotNil(t, flag)
			assert.Equal(t, tt.def, flag.DefValue)
		})
	}
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "", "--format", "yaml", "print", defsPath("div3.fsa"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
}
