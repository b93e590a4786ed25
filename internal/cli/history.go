package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/lexaard/internal/ir"
	"github.com/roach88/lexaard/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Session  string // optional - filter to one session
}

// HistoryDefinition is one persisted definition.
type HistoryDefinition struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	Hash string `json:"hash"`
	Seq  int64  `json:"seq"`
}

// HistoryResult holds the history command's output.
type HistoryResult struct {
	Definitions []HistoryDefinition `json:"definitions"`
	Sessions    []string            `json:"sessions"`
	Runs        []ir.RunRecord      `json:"runs"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List persisted definitions and logged runs",
		Long: `List what a repl --db session left behind: the current definitions,
the sessions in the run log, and every logged run in seq order.

Examples:
  lexaard history --db ./lexaard.db
  lexaard history --db ./lexaard.db --session 0193...
  lexaard history --db ./lexaard.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "show only runs from this session")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.Database))
	}
	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, fmt.Sprintf("failed to open database: %v", err))
	}
	defer st.Close()

	result, err := loadHistory(ctx, st, opts.Session)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, err.Error())
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return outputHistoryText(cmd, result)
}

func loadHistory(ctx context.Context, st *store.Store, session string) (HistoryResult, error) {
	defs, err := st.LoadDefinitions(ctx)
	if err != nil {
		return HistoryResult{}, err
	}
	sessions, err := st.Sessions(ctx)
	if err != nil {
		return HistoryResult{}, err
	}
	runs, err := st.Runs(ctx, session)
	if err != nil {
		return HistoryResult{}, err
	}

	result := HistoryResult{
		Definitions: make([]HistoryDefinition, 0, len(defs)),
		Sessions:    sessions,
		Runs:        runs,
	}
	for _, d := range defs {
		result.Definitions = append(result.Definitions, HistoryDefinition{
			Name: d.Name,
			Kind: string(d.Kind),
			Hash: d.Hash,
			Seq:  d.Seq,
		})
	}
	return result, nil
}

func outputHistoryText(cmd *cobra.Command, result HistoryResult) error {
	w := cmd.OutOrStdout()

	if len(result.Definitions) == 0 && len(result.Runs) == 0 {
		fmt.Fprintln(w, "No history.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Definitions (%d):\n", len(result.Definitions))
	for _, d := range result.Definitions {
		fmt.Fprintf(tw, "  [%d]\t%s\t%s\n", d.Seq, d.Name, d.Kind)
	}
	fmt.Fprintf(tw, "\nRuns (%d):\n", len(result.Runs))
	for _, r := range result.Runs {
		fmt.Fprintf(tw, "  [%d]\t%s\t%s\t%q\t%s\n", r.Seq, r.Session, r.Target, r.Input, verdict(r.Accepted))
	}
	return tw.Flush()
}
