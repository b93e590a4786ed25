// Package interp implements the Lexaard command interpreter.
//
// A session reads one command per line:
//
//	define <name> <expr>     register a value under name
//	print <expr>             render a value
//	run <expr> <expr>        evaluate an automaton on a string: accept|reject
//	quit                     end the session
//
// An expression is a registered name, a quoted string, true or false, an
// inline automaton, or a function application:
//
//	fsa                      read a definition block from the following lines
//	nfa2dfa X                subset construction
//	dfaUnion X Y             product union of two DFAs
//	nfaUnion X Y             epsilon union (DFAs are promoted)
//	nfaConcat X Y            concatenation (DFAs are promoted)
//	nfaStar X                Kleene star (DFAs are promoted)
//	pruneFSA X               drop unreachable states
//	fsaEquivP X Y            language equivalence, a boolean
//
// Arguments may be wrapped as f(x, y); parentheses and commas outside
// quotes are separators. A name holds one value at a time: defining it
// again replaces whatever was there, string or automaton.
//
// With a store attached, definitions survive between sessions and every
// run is appended to the run log with a logical seq and the session token.
package interp
