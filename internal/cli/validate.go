package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lexaard/internal/compiler"
)

// ValidationIssue is one problem found by validate.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Automata []string          `json:"automata"`
	Errors   []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <defs-dir>",
		Short: "Validate a definitions directory",
		Long: `Validate every automaton in a definitions directory: the automaton
fields of its CUE package and each .fsa file directly inside it.

All problems are reported, not just the first. Each automaton that loads
is also converted to its document form and checked structurally.

Exit codes:
  0 - All definitions valid
  1 - One or more definitions invalid
  2 - Command error (missing directory, no definition files)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	loadResult, loadErrors := LoadDefinitions(dir, compiler.LoadModeCollectAll)
	if loadResult == nil && len(loadErrors) > 0 {
		return failLoad(formatter, loadErrors[0])
	}

	formatter.VerboseLog("Found %d definition file(s) in %s", loadResult.FileCount, dir)

	result := ValidationResult{Automata: []string{}}
	for _, err := range loadErrors {
		result.Errors = append(result.Errors, issueFromError(err))
	}
	for _, n := range loadResult.Automata {
		formatter.VerboseLog("Validating automaton: %s (%s)", n.Name, n.Source)
		result.Automata = append(result.Automata, n.Name)
		for _, ve := range compiler.ValidateDoc(compiler.ToDoc(n.FSA)) {
			result.Errors = append(result.Errors, ValidationIssue{
				Code:    ve.Code,
				Message: fmt.Sprintf("%s: %s: %s", n.Name, ve.Field, ve.Message),
			})
		}
	}
	result.Valid = len(result.Errors) == 0

	if result.Valid {
		return outputValidateSuccess(formatter, result)
	}
	return outputValidationErrors(formatter, result)
}

func issueFromError(err error) ValidationIssue {
	var le *LoadError
	if !errors.As(err, &le) {
		le = convertLoadError(err)
	}
	issue := ValidationIssue{Code: le.Code, Message: le.Message, Line: le.Line}
	if le.Pos.IsValid() {
		issue.Line = le.Pos.Line()
		issue.Message = fmt.Sprintf("%s: %s", le.Pos.Filename(), le.Message)
	}
	return issue
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ All definitions valid (%d automata)\n", len(result.Automata))
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	errs := result.Errors
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
