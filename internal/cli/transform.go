package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lexaard/internal/fsa"
)

// TransformOptions holds flags shared by commands that print a new
// automaton.
type TransformOptions struct {
	*RootOptions
	Label string // replaces the result's label when set
	DFA   bool   // union only: product construction instead of the NFA union
}

// transformFunc builds a result from loaded operands. A returned
// *LoadError is reported with its code.
type transformFunc func(opts *TransformOptions, operands []fsa.Automaton) (fsa.Automaton, error)

func newTransformCommand(rootOpts *RootOptions, use, short, long string, nargs int, fn transformFunc) (*cobra.Command, *TransformOptions) {
	opts := &TransformOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		Args:          cobra.ExactArgs(nargs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(opts, args, fn, cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Label, "label", "", "label for the resulting automaton")
	return cmd, opts
}

func runTransform(opts *TransformOptions, refs []string, fn transformFunc, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	operands, err := loadAll(refs)
	if err != nil {
		return failLoad(formatter, err)
	}
	for i, a := range operands {
		formatter.VerboseLog("Loaded %s: %s %q with %d state(s)", refs[i], a.Kind(), a.Label(), len(a.States()))
	}

	result, err := fn(opts, operands)
	if err != nil {
		return failLoad(formatter, err)
	}
	if opts.Label != "" {
		result = fsa.Relabel(result, opts.Label)
	}
	return formatter.Automaton(result)
}

// NewPrintCommand creates the print command.
func NewPrintCommand(rootOpts *RootOptions) *cobra.Command {
	cmd, _ := newTransformCommand(rootOpts,
		"print <automaton>",
		"Render an automaton",
		`Render an automaton as its definition table.

The rendering is itself a valid definition block, so its output can be
saved to a .fsa file and read back. Derived state names such as (q0,q1)
and {q0,q1} read back as single states, and an nfa stays an nfa.

Examples:
  lexaard print ends01.fsa
  lexaard print defs.cue#evenA --format json`,
		1,
		func(_ *TransformOptions, in []fsa.Automaton) (fsa.Automaton, error) {
			return in[0], nil
		})
	return cmd
}

// NewUnionCommand creates the union command.
func NewUnionCommand(rootOpts *RootOptions) *cobra.Command {
	cmd, opts := newTransformCommand(rootOpts,
		"union <automaton> <automaton>",
		"Union of two automata",
		`Build an automaton accepting the strings either operand accepts.

By default the result is an NFA with a fresh start state and epsilon moves
into both operands. With --dfa both operands must be DFAs and the result
is their product DFA.

Examples:
  lexaard union a.fsa b.fsa
  lexaard union --dfa a.fsa b.fsa --label "a or b"`,
		2,
		func(opts *TransformOptions, in []fsa.Automaton) (fsa.Automaton, error) {
			if !opts.DFA {
				return fsa.Union(fsa.ToNFA(in[0]), fsa.ToNFA(in[1])), nil
			}
			d1, err := wantDFA(in[0], 1)
			if err != nil {
				return nil, err
			}
			d2, err := wantDFA(in[1], 2)
			if err != nil {
				return nil, err
			}
			return fsa.DFAUnion(d1, d2), nil
		})
	cmd.Flags().BoolVar(&opts.DFA, "dfa", false, "product construction over two DFAs")
	return cmd
}

// NewConcatCommand creates the concat command.
func NewConcatCommand(rootOpts *RootOptions) *cobra.Command {
	cmd, _ := newTransformCommand(rootOpts,
		"concat <automaton> <automaton>",
		"Concatenation of two automata",
		`Build an NFA accepting a string from the first operand followed by a
string from the second.

Example:
  lexaard concat a.fsa b.fsa`,
		2,
		func(_ *TransformOptions, in []fsa.Automaton) (fsa.Automaton, error) {
			return fsa.Concat(fsa.ToNFA(in[0]), fsa.ToNFA(in[1])), nil
		})
	return cmd
}

// NewStarCommand creates the star command.
func NewStarCommand(rootOpts *RootOptions) *cobra.Command {
	cmd, _ := newTransformCommand(rootOpts,
		"star <automaton>",
		"Kleene star of an automaton",
		`Build an NFA accepting zero or more strings of the operand in sequence.

Example:
  lexaard star a.fsa`,
		1,
		func(_ *TransformOptions, in []fsa.Automaton) (fsa.Automaton, error) {
			return fsa.Star(fsa.ToNFA(in[0])), nil
		})
	return cmd
}

// NewToDFACommand creates the todfa command.
func NewToDFACommand(rootOpts *RootOptions) *cobra.Command {
	cmd, _ := newTransformCommand(rootOpts,
		"todfa <automaton>",
		"Subset construction",
		`Convert an NFA to an equivalent DFA by subset construction. A DFA
operand is printed unchanged.

Example:
  lexaard todfa ends01.fsa`,
		1,
		func(_ *TransformOptions, in []fsa.Automaton) (fsa.Automaton, error) {
			if n, ok := in[0].(*fsa.NFA); ok {
				return fsa.ToDFA(n), nil
			}
			return in[0], nil
		})
	return cmd
}

// NewPruneCommand creates the prune command.
func NewPruneCommand(rootOpts *RootOptions) *cobra.Command {
	cmd, _ := newTransformCommand(rootOpts,
		"prune <automaton>",
		"Drop unreachable states",
		`Remove the states that cannot be reached from the start state. The
result has the same variant and language as the operand.

Example:
  lexaard prune big.fsa`,
		1,
		func(_ *TransformOptions, in []fsa.Automaton) (fsa.Automaton, error) {
			return fsa.Prune(in[0]), nil
		})
	return cmd
}

func wantDFA(a fsa.Automaton, position int) (*fsa.DFA, error) {
	d, ok := a.(*fsa.DFA)
	if !ok {
		return nil, &LoadError{
			Code:    ErrCodeWrongKind,
			Message: fmt.Sprintf("operand %d (%q) is a %s; --dfa needs two DFAs", position, a.Label(), a.Kind()),
		}
	}
	return d, nil
}
