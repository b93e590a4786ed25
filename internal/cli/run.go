package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RunResult is one evaluated input.
type RunResult struct {
	Input    string `json:"input"`
	Accepted bool   `json:"accepted"`
}

// RunOutput holds the run command's results.
type RunOutput struct {
	Label   string      `json:"label"`
	Kind    string      `json:"kind"`
	Results []RunResult `json:"results"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <automaton> <input>...",
		Short: "Evaluate inputs against an automaton",
		Long: `Evaluate one or more input strings against an automaton and print
accept or reject for each, in order.

Pass "" for the empty string.

Examples:
  lexaard run ends01.fsa 01 110 ""
  lexaard run defs.cue#evenA aa --format json`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAutomaton(rootOpts, args[0], args[1:], cmd)
		},
	}

	return cmd
}

func runAutomaton(opts *RootOptions, ref string, inputs []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	a, err := LoadAutomaton(ref)
	if err != nil {
		return failLoad(formatter, err)
	}
	formatter.VerboseLog("Loaded %s: %s %q", ref, a.Kind(), a.Label())

	out := RunOutput{
		Label:   a.Label(),
		Kind:    a.Kind().String(),
		Results: make([]RunResult, 0, len(inputs)),
	}
	for _, input := range inputs {
		out.Results = append(out.Results, RunResult{Input: input, Accepted: a.Run(input)})
	}

	if opts.Format == "json" {
		return formatter.Success(out)
	}

	w := cmd.OutOrStdout()
	for _, r := range out.Results {
		fmt.Fprintf(w, "%s\t%q\n", verdict(r.Accepted), r.Input)
	}
	return nil
}

func verdict(accepted bool) string {
	if accepted {
		return "accept"
	}
	return "reject"
}
