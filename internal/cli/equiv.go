package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lexaard/internal/fsa"
)

// EquivResult holds the outcome of an equivalence check.
type EquivResult struct {
	Equivalent bool `json:"equivalent"`

	// Witness is a shortest string accepted by exactly one operand. Only
	// set when the automata differ.
	Witness *string `json:"witness,omitempty"`
}

// NewEquivCommand creates the equiv command.
func NewEquivCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equiv <automaton> <automaton>",
		Short: "Decide whether two automata accept the same strings",
		Long: `Decide language equivalence of two automata of either variant.

When they differ, a shortest string accepted by exactly one of them is
printed as a witness.

Exit codes:
  0 - Equivalent
  1 - Not equivalent
  2 - Command error (unreadable definitions, etc.)

Example:
  lexaard equiv ends01.fsa ends01-dfa.fsa`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEquiv(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runEquiv(opts *RootOptions, refs []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	operands, err := loadAll(refs)
	if err != nil {
		return failLoad(formatter, err)
	}

	witness, distinct := fsa.Distinguish(operands[0], operands[1])
	result := EquivResult{Equivalent: !distinct}
	if distinct {
		result.Witness = &witness
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else if distinct {
		fmt.Fprintf(cmd.OutOrStdout(), "✗ Not equivalent: %q is accepted by exactly one\n", witness)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Equivalent")
	}

	if distinct {
		return NewExitError(ExitFailure, fmt.Sprintf("automata differ on %q", witness))
	}
	return nil
}
