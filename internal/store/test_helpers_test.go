package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/lexaard/internal/ir"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// loopDoc is a one-state DFA accepting a*.
func loopDoc(label string) *ir.AutomatonDoc {
	return &ir.AutomatonDoc{
		Label:    label,
		Kind:     ir.KindDFA,
		Alphabet: []string{"a"},
		Start:    "s",
		States: []ir.StateDoc{
			{Name: "s", Accept: true, On: map[string][]string{"a": {"s"}}},
		},
	}
}

func stringDef(name, text string) ir.Definition {
	return ir.Definition{Name: name, Kind: ir.KindString, Text: text}
}

func runRecord(session, target, input string, seq int64, accepted bool) ir.RunRecord {
	return ir.RunRecord{
		Session:  session,
		Target:   target,
		Input:    input,
		Accepted: accepted,
		Seq:      seq,
	}
}
