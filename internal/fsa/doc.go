// Package fsa models finite-state automata and the constructions over them.
//
// Two variants implement the Automaton interface:
//   - *DFA: exactly one target per (state, symbol); a missing entry rejects.
//   - *NFA: a set of targets per (state, symbol), plus epsilon transitions.
//
// # Lifecycle
//
// An automaton is created empty with a label, then populated one declaration
// at a time (SetAlphabet, AddState, AddStateLine). The Builder drives that
// phase from the textual definition format and promotes a DFA-in-progress to
// an NFA when a transition line turns out to be nondeterministic.
//
// Once built, automata are treated as read-only values. Every construction
// (Promote, Union, DFAUnion, Concat, Star, ToDFA, Prune, Complement,
// Intersect, SymmetricDifference) returns a new automaton that owns freshly
// allocated states, alphabet and transition rows. Nothing aliases an operand.
//
// # Fresh names
//
// When a synthesized state name (a product tuple, a subset label, an auxiliary
// start state) collides with one already present, the first unused name in
// the sequence q0, q1, q2, ... is used instead.
//
// The package is strictly single-threaded and never logs; failures on user
// input are returned as *ParseError values, never panics.
package fsa
