// Package harness runs Lexaard conformance scenarios.
//
// A scenario names some automata, derives more from them with interpreter
// expressions, and checks what they accept. Every check runs through an
// interp.Interpreter backed by an in-memory store, so the run log it
// leaves is the scenario's trace.
//
// # Scenario Format
//
//	name: ends_with_01
//	description: "What this scenario validates"
//	session: optional-fixed-session-token
//	automata:
//	  - name: ends
//	    fsa: |
//	      ends with 01
//	      0 1
//	      q0 q0,q1 q0
//	      q1 - q2
//	      *q2 - -
//	  - name: div3
//	    file: defs/div3.fsa        # relative to the scenario file
//	  - name: evenA
//	    cue: defs/automata.cue     # field automaton.evenA of that file
//	derive:
//	  - name: big
//	    expr: nfaUnion(ends, div3)
//	checks:
//	  - type: accepts
//	    automaton: big
//	    inputs: ["01", "000"]
//	  - type: rejects
//	    automaton: big
//	    inputs: ["0"]
//	  - type: equivalent
//	    automata: [big, big_dfa]
//	  - type: distinct
//	    automata: [ends, div3]
//	    witness: ""
//	  - type: kind
//	    automaton: big
//	    kind: nfa
//	  - type: states
//	    automaton: div3
//	    count: 3
//	script: |
//	  run ends "101"
//	output: |
//	  accept
//
// # Deterministic Testing
//
// Scenarios run with testutil.DeterministicClock and a fixed session token,
// so the trace is byte-identical across runs and can be compared against a
// golden file with RunWithGolden.
package harness
