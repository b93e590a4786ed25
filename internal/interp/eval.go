package interp

import (
	"strings"

	"github.com/roach88/lexaard/internal/fsa"
)

// LineSource supplies the lines that follow a command, for inline fsa
// blocks.
type LineSource interface {
	NextLine() (string, bool)
}

type function struct {
	arity int
	apply func(name string, args []Value) (Value, error)
}

var functions = map[string]function{
	"nfa2dfa": {1, func(name string, args []Value) (Value, error) {
		a, err := wantAutomaton(name, 1, args[0])
		if err != nil {
			return Value{}, err
		}
		if n, ok := a.(*fsa.NFA); ok {
			return AutomatonValue(fsa.ToDFA(n)), nil
		}
		return AutomatonValue(a), nil
	}},
	"dfaUnion": {2, func(name string, args []Value) (Value, error) {
		d1, err := wantDFA(name, 1, args[0])
		if err != nil {
			return Value{}, err
		}
		d2, err := wantDFA(name, 2, args[1])
		if err != nil {
			return Value{}, err
		}
		return AutomatonValue(fsa.DFAUnion(d1, d2)), nil
	}},
	"nfaUnion":  {2, binaryNFA(fsa.Union)},
	"nfaConcat": {2, binaryNFA(fsa.Concat)},
	"nfaStar": {1, func(name string, args []Value) (Value, error) {
		a, err := wantAutomaton(name, 1, args[0])
		if err != nil {
			return Value{}, err
		}
		return AutomatonValue(fsa.Star(fsa.ToNFA(a))), nil
	}},
	"pruneFSA": {1, func(name string, args []Value) (Value, error) {
		a, err := wantAutomaton(name, 1, args[0])
		if err != nil {
			return Value{}, err
		}
		return AutomatonValue(fsa.Prune(a)), nil
	}},
	"fsa2regex": {1, func(name string, args []Value) (Value, error) {
		a, err := wantAutomaton(name, 1, args[0])
		if err != nil {
			return Value{}, err
		}
		return StringValue(fsa.ToRegex(a).String()), nil
	}},
	"fsaEquivP": {2, func(name string, args []Value) (Value, error) {
		a, err := wantAutomaton(name, 1, args[0])
		if err != nil {
			return Value{}, err
		}
		b, err := wantAutomaton(name, 2, args[1])
		if err != nil {
			return Value{}, err
		}
		return BoolValue(fsa.Equivalent(a, b)), nil
	}},
}

// binaryNFA lifts an NFA combinator to any two automata, promoting DFAs.
func binaryNFA(op func(n1, n2 *fsa.NFA) *fsa.NFA) func(string, []Value) (Value, error) {
	return func(name string, args []Value) (Value, error) {
		a, err := wantAutomaton(name, 1, args[0])
		if err != nil {
			return Value{}, err
		}
		b, err := wantAutomaton(name, 2, args[1])
		if err != nil {
			return Value{}, err
		}
		return AutomatonValue(op(fsa.ToNFA(a), fsa.ToNFA(b))), nil
	}
}

func wantAutomaton(fn string, pos int, v Value) (fsa.Automaton, error) {
	if v.Kind != ValueAutomaton {
		return nil, newCommandError(ErrCodeTypeMismatch, "%s: argument %d is a %s, want an automaton", fn, pos, v.describe())
	}
	return v.FSA, nil
}

func wantDFA(fn string, pos int, v Value) (*fsa.DFA, error) {
	a, err := wantAutomaton(fn, pos, v)
	if err != nil {
		return nil, err
	}
	d, ok := a.(*fsa.DFA)
	if !ok {
		return nil, newCommandError(ErrCodeTypeMismatch, "%s: argument %d is a %s, want a dfa", fn, pos, v.describe())
	}
	return d, nil
}

// evaluator reduces the expressions of one command.
type evaluator struct {
	reg   *Registry
	toks  *tokenStream
	lines LineSource
}

func (e *evaluator) expr() (Value, error) {
	t, ok := e.toks.next()
	if !ok {
		return Value{}, newCommandError(ErrCodeMalformedCommand, "missing argument")
	}
	if t.kind == tokQuoted {
		return StringValue(t.text), nil
	}

	switch t.text {
	case "true":
		return BoolValue(true), nil
	case "false":
		return BoolValue(false), nil
	case "fsa":
		return e.block()
	}

	if fn, ok := functions[t.text]; ok {
		args := make([]Value, fn.arity)
		for i := range args {
			if e.toks.done() {
				return Value{}, newCommandError(ErrCodeMalformedCommand, "%s takes %d argument(s), got %d", t.text, fn.arity, i)
			}
			v, err := e.expr()
			if err != nil {
				return Value{}, err
			}
			args[i] = v
		}
		return fn.apply(t.text, args)
	}

	if v, ok := e.reg.Lookup(t.text); ok {
		return v, nil
	}
	if !validName(t.text) {
		return Value{}, newCommandError(ErrCodeMalformedCommand, "unexpected %q", t.text)
	}
	return Value{}, newCommandError(ErrCodeNotFound, "nothing is defined as %q", t.text)
}

// block reads an inline definition block: leading blank lines are skipped,
// then lines are taken up to the next blank line or the end of input.
func (e *evaluator) block() (Value, error) {
	var lines []string
	for {
		line, ok := e.lines.NextLine()
		if !ok {
			break
		}
		blank := strings.TrimSpace(line) == ""
		if blank && len(lines) > 0 {
			break
		}
		if !blank {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return Value{}, newCommandError(ErrCodeMalformedDefinition, "fsa block is missing")
	}

	a, err := fsa.Parse(strings.Join(lines, "\n"))
	if err != nil {
		return Value{}, &CommandError{
			Code:    ErrCodeMalformedDefinition,
			Message: "fsa block " + strings.TrimSpace(lines[0]),
			Err:     err,
		}
	}
	return AutomatonValue(a), nil
}
