package interp

import "github.com/google/uuid"

// SessionGenerator produces the token that groups one session's runs in
// the run log. Implemented by UUIDv7Generator and the testutil generators.
type SessionGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session tokens, so the
// run log's sessions sort by start time. Stateless and safe for concurrent
// use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
