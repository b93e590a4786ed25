package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/lexaard/internal/compiler"
	"github.com/roach88/lexaard/internal/interp"
	"github.com/roach88/lexaard/internal/store"
)

// ReplOptions holds flags for the repl command.
type ReplOptions struct {
	*RootOptions
	Database string
	Defs     string
	Prompt   string

	// SessionGenerator allows overriding the session token source (for
	// testing). If nil, defaults to interp.UUIDv7Generator.
	SessionGenerator interp.SessionGenerator
}

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive interpreter",
		Long: `Read Lexaard commands from standard input until quit or end of input.

  define <name> <expr>     bind a name to a string, boolean or automaton
  print <expr>             print a value
  run <expr> <string>      print accept or reject
  quit                     leave

An expression is a name, a quoted string, true, false, the keyword fsa
followed by a definition block ended by a blank line, or a function
application: nfa2dfa, dfaUnion, nfaUnion, nfaConcat, nfaStar, pruneFSA,
fsaEquivP.

With --db, definitions persist across sessions and every run is logged.
With --defs, the automata of a definitions directory are defined first.

Examples:
  lexaard repl
  lexaard repl --db ./lexaard.db --defs ./defs
  lexaard repl --prompt "" < script.lex`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (optional)")
	cmd.Flags().StringVar(&opts.Defs, "defs", "", "definitions directory to load at start")
	cmd.Flags().StringVar(&opts.Prompt, "prompt", "lexaard> ", "prompt written before each command")

	return cmd
}

func runRepl(opts *ReplOptions, cmd *cobra.Command) error {
	logger := setupLogging(opts.RootOptions)
	formatter := newFormatter(opts.RootOptions, cmd.ErrOrStderr(), cmd.ErrOrStderr())

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	interpOpts := []interp.Option{
		interp.WithLogger(logger),
		interp.WithPrompt(opts.Prompt),
	}
	if opts.SessionGenerator != nil {
		interpOpts = append(interpOpts, interp.WithSessionGenerator(opts.SessionGenerator))
	}

	if opts.Database != "" {
		slog.Info("opening database", "path", opts.Database)
		st, err := store.Open(opts.Database)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeDatabase, err.Error())
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		interpOpts = append(interpOpts, interp.WithStore(st))
	}

	in, err := interp.New(ctx, interpOpts...)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, err.Error())
	}

	if opts.Defs != "" {
		loaded, errs := LoadDefinitions(opts.Defs, compiler.LoadModeFailFast)
		if len(errs) > 0 {
			return failLoad(formatter, errs[0])
		}
		for _, n := range loaded.Automata {
			err := in.Define(ctx, n.Name, interp.AutomatonValue(n.FSA))
			var ce *interp.CommandError
			switch {
			case errors.As(err, &ce):
				slog.Warn("skipping definition", "name", n.Name, "source", n.Source, "error", ce)
			case err != nil:
				return formatter.Fail(ExitCommandError, ErrCodeDatabase, err.Error())
			}
		}
		slog.Info("definitions loaded", "dir", opts.Defs, "automata", len(loaded.Automata))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	err = in.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return WrapExitError(ExitFailure, "interpreter error", err)
	}
	return nil
}
