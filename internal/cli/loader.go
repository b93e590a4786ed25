package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue/token"

	"github.com/roach88/lexaard/internal/compiler"
	"github.com/roach88/lexaard/internal/fsa"
)

// Error code constants, unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No definition files or automata found
	ErrCodeLoadFailed  = "E004" // A definition failed to parse or compile
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeDatabase    = "E006" // Database error
	ErrCodeWrongKind   = "E007" // Operand is not the variant the command needs
	ErrCodeWriteFailed = "E008" // File write error
)

// LoadError represents an error that occurred while loading definitions.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
	Line    int       // .fsa line if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadDefinitions loads every automaton in a definitions directory.
// If mode is compiler.LoadModeFailFast, returns on the first error.
// If mode is compiler.LoadModeCollectAll, collects all errors.
func LoadDefinitions(dir string, mode compiler.LoadMode) (*compiler.LoadResult, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("definitions directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing definitions directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, fsaFiles, err := compiler.FindDefinitionFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 && len(fsaFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no .cue or .fsa files found in %s", dir)}}
	}

	result, errs := compiler.LoadDir(dir, mode)
	converted := make([]error, len(errs))
	for i, err := range errs {
		converted[i] = convertLoadError(err)
	}
	if result != nil && len(result.Automata) == 0 && len(converted) == 0 {
		converted = append(converted, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no automata found in %s", dir)})
	}
	return result, converted
}

// LoadAutomaton resolves one automaton reference: a .fsa file, or a .cue
// file optionally followed by #name. The name may be omitted when the CUE
// file declares exactly one automaton.
func LoadAutomaton(ref string) (fsa.Automaton, error) {
	path, name := ref, ""
	if i := strings.LastIndex(ref, "#"); i >= 0 {
		path, name = ref[:i], ref[i+1:]
	}

	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("definition file not found: %s", path)}
	}

	switch filepath.Ext(path) {
	case compiler.ExtFSA:
		if name != "" {
			return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("%s holds a single automaton; drop #%s", path, name)}
		}
		a, err := compiler.LoadFSAFile(path)
		if err != nil {
			return nil, convertLoadError(err)
		}
		return a, nil

	case compiler.ExtCUE:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
		}
		named, err := compiler.CompileCUE(path, data)
		if err != nil {
			return nil, convertLoadError(err)
		}
		return pickAutomaton(path, name, named)

	default:
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("%s: expected a %s or %s file", path, compiler.ExtFSA, compiler.ExtCUE)}
	}
}

func pickAutomaton(path, name string, named []compiler.NamedAutomaton) (fsa.Automaton, error) {
	if len(named) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("%s declares no automata", path)}
	}
	if name == "" {
		if len(named) > 1 {
			names := make([]string, len(named))
			for i, n := range named {
				names[i] = n.Name
			}
			return nil, &LoadError{
				Code:    ErrCodeGeneric,
				Message: fmt.Sprintf("%s declares %d automata (%s); pick one with %s#<name>", path, len(named), strings.Join(names, ", "), path),
			}
		}
		return named[0].FSA, nil
	}
	for _, n := range named {
		if n.Name == name {
			return n.FSA, nil
		}
	}
	return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("%s declares no automaton %q", path, name)}
}

// loadAll resolves every reference, stopping at the first failure.
func loadAll(refs []string) ([]fsa.Automaton, error) {
	automata := make([]fsa.Automaton, len(refs))
	for i, ref := range refs {
		a, err := LoadAutomaton(ref)
		if err != nil {
			return nil, err
		}
		automata[i] = a
	}
	return automata, nil
}

// convertLoadError converts a compiler or parse error to a LoadError with
// position info.
func convertLoadError(err error) *LoadError {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr
	}
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    ErrCodeLoadFailed,
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	}
	var parseErr *fsa.ParseError
	if errors.As(err, &parseErr) {
		return &LoadError{
			Code:    ErrCodeLoadFailed,
			Message: err.Error(),
			Line:    parseErr.Line,
		}
	}
	return &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
}

// failLoad reports a load error through the formatter with the command
// error exit code.
func failLoad(f *OutputFormatter, err error) error {
	le := convertLoadError(err)
	_ = f.Error(le.Code, le.Message, nil)
	return WrapExitError(ExitCommandError, le.Code, err)
}
