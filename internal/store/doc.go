// Package store provides SQLite-backed persistence for the Lexaard registry.
//
// Two tables:
//   - definitions: the current value of every registered name (string,
//     boolean, or automaton document), keyed by name
//   - runs: an append-only log of automaton evaluations
//
// A name holds exactly one definition at a time. Saving a definition under
// an existing name replaces it, whatever kind the old entry was.
//
// # Ordering
//
// Every row carries a seq from the interpreter's logical clock. Queries
// order by seq ASC, then name or id with COLLATE BINARY, so results never
// depend on insertion timing or wall time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Definition hashes and run IDs come from internal/ir (RFC 8785 canonical
// JSON, SHA-256 with domain separation).
package store
