package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/lexaard/internal/fsa"
	"github.com/roach88/lexaard/internal/interp"
)

// CheckError is returned when a check fails.
type CheckError struct {
	Type     string // Check type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Check failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateChecks runs every check against the interpreter's definitions
// and returns one message per failure. Accepts and rejects checks go
// through Interpreter.Evaluate, so their runs land in the run log.
func EvaluateChecks(ctx context.Context, in *interp.Interpreter, checks []Check) []string {
	var errors []string
	for i, c := range checks {
		if err := evaluateCheck(ctx, in, c); err != nil {
			errors = append(errors, fmt.Sprintf("checks[%d]: %v", i, err))
		}
	}
	return errors
}

func evaluateCheck(ctx context.Context, in *interp.Interpreter, c Check) error {
	switch c.Type {
	case CheckAccepts:
		return checkRuns(ctx, in, c, true)
	case CheckRejects:
		return checkRuns(ctx, in, c, false)
	case CheckEquivalent, CheckDistinct:
		return checkEquivalence(in, c)
	case CheckKind:
		a, err := lookupAutomaton(in, c.Automaton)
		if err != nil {
			return err
		}
		if got := a.Kind().String(); got != c.Kind {
			return &CheckError{
				Type:     CheckKind,
				Expected: fmt.Sprintf("%s is a %s", c.Automaton, c.Kind),
				Actual:   got,
			}
		}
		return nil
	case CheckStates:
		a, err := lookupAutomaton(in, c.Automaton)
		if err != nil {
			return err
		}
		if got := len(a.States()); got != c.Count {
			return &CheckError{
				Type:     CheckStates,
				Expected: fmt.Sprintf("%s has %d states", c.Automaton, c.Count),
				Actual:   fmt.Sprintf("%d states %v", got, a.States()),
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown check type: %s", c.Type)
	}
}

// checkRuns evaluates every input and reports those whose verdict differs
// from want.
func checkRuns(ctx context.Context, in *interp.Interpreter, c Check, want bool) error {
	var wrong []string
	for _, input := range c.Inputs {
		got, err := in.Evaluate(ctx, c.Automaton, input)
		if err != nil {
			return err
		}
		if got != want {
			wrong = append(wrong, fmt.Sprintf("%q", input))
		}
	}
	if len(wrong) == 0 {
		return nil
	}

	verb := "accepts"
	if !want {
		verb = "rejects"
	}
	return &CheckError{
		Type:     c.Type,
		Expected: fmt.Sprintf("%s %s %s", c.Automaton, verb, strings.Join(quoteAll(c.Inputs), ", ")),
		Actual:   fmt.Sprintf("wrong verdict for %s", strings.Join(wrong, ", ")),
	}
}

func checkEquivalence(in *interp.Interpreter, c Check) error {
	a, err := lookupAutomaton(in, c.Automata[0])
	if err != nil {
		return err
	}
	b, err := lookupAutomaton(in, c.Automata[1])
	if err != nil {
		return err
	}

	witness, distinct := fsa.Distinguish(a, b)
	pair := fmt.Sprintf("%s and %s", c.Automata[0], c.Automata[1])

	if c.Type == CheckEquivalent {
		if distinct {
			return &CheckError{
				Type:     CheckEquivalent,
				Expected: pair + " accept the same strings",
				Actual:   fmt.Sprintf("they disagree on %q", witness),
			}
		}
		return nil
	}

	if !distinct {
		return &CheckError{
			Type:     CheckDistinct,
			Expected: pair + " differ",
			Actual:   "they are equivalent",
		}
	}
	if c.Witness != nil && *c.Witness != witness {
		return &CheckError{
			Type:     CheckDistinct,
			Expected: fmt.Sprintf("shortest witness %q", *c.Witness),
			Actual:   fmt.Sprintf("%q", witness),
		}
	}
	return nil
}

func lookupAutomaton(in *interp.Interpreter, name string) (fsa.Automaton, error) {
	v, ok := in.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("nothing is defined as %q", name)
	}
	if v.Kind != interp.ValueAutomaton {
		return nil, fmt.Errorf("%s is a %s, want an automaton", name, v.Kind)
	}
	return v.FSA, nil
}

func quoteAll(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
