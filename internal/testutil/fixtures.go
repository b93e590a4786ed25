package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/roach88/lexaard/internal/fsa"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MustParse parses a definition block or fails the test.
func MustParse(t testing.TB, text string) fsa.Automaton {
	t.Helper()
	a, err := fsa.Parse(text)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	return a
}

// Div3 is a DFA over {0,1} accepting strings whose number of 0s is a
// multiple of three.
const Div3 = `div3
0 1
*q0 q1 q0
q1 q2 q1
q2 q0 q2
`

// EndsWith01 is an NFA over {0,1} accepting strings that end in "01".
const EndsWith01 = `ends with 01
0 1
q0 q0,q1 q0
q1 - q2
*q2 - -
`
