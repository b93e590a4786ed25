package interp

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/lexaard/internal/store"
	"github.com/roach88/lexaard/internal/testutil"
)

const charBlocks = `define a fsa
char a
a
s t
*t -

define b fsa
char b
b
s t
*t -

`

func newTestInterpreter(t *testing.T, opts ...Option) *Interpreter {
	t.Helper()
	base := []Option{
		WithLogger(testutil.DiscardLogger()),
		WithClock(testutil.NewDeterministicClock()),
		WithSessionGenerator(testutil.NewFixedSessionGenerator("")),
	}
	in, err := New(context.Background(), append(base, opts...)...)
	require.NoError(t, err)
	return in
}

// script runs a whole session and returns its output.
func script(t *testing.T, in *Interpreter, text string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, in.Run(context.Background(), strings.NewReader(text), &out))
	return out.String()
}

func openStore(t *testing.T, path string) *store.Store {
	t.Helper()
	s, err := store.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}
