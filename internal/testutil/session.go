package testutil

import (
	"fmt"
	"sync/atomic"
)

// DefaultSession is the token FixedSessionGenerator falls back to.
const DefaultSession = "test-session-default"

// FixedSessionGenerator returns the same session token on every call, so
// run-log rows and golden outputs are byte-identical across test runs.
// Safe for concurrent use.
type FixedSessionGenerator struct {
	token string
}

// NewFixedSessionGenerator returns a generator for token, or for
// DefaultSession when token is empty.
func NewFixedSessionGenerator(token string) *FixedSessionGenerator {
	if token == "" {
		token = DefaultSession
	}
	return &FixedSessionGenerator{token: token}
}

// Generate implements interp.SessionGenerator.
func (g *FixedSessionGenerator) Generate() string {
	return g.token
}

// CountingSessionGenerator hands out "<prefix>-1", "<prefix>-2", ... for
// tests that open several sessions against one store.
type CountingSessionGenerator struct {
	prefix string
	n      atomic.Int64
}

// NewCountingSessionGenerator creates a generator with the given prefix.
func NewCountingSessionGenerator(prefix string) *CountingSessionGenerator {
	return &CountingSessionGenerator{prefix: prefix}
}

// Generate implements interp.SessionGenerator.
func (g *CountingSessionGenerator) Generate() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.n.Add(1))
}
