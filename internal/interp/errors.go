package interp

import (
	"errors"
	"fmt"
)

// CommandErrorCode categorizes a failed command.
type CommandErrorCode string

const (
	// ErrCodeUnknownCommand indicates the first word is not a command.
	ErrCodeUnknownCommand CommandErrorCode = "UNKNOWN_COMMAND"

	// ErrCodeMalformedCommand indicates missing, extra, or unparsable arguments.
	ErrCodeMalformedCommand CommandErrorCode = "MALFORMED_COMMAND"

	// ErrCodeMalformedDefinition indicates an inline fsa block failed to build.
	// Nothing is registered.
	ErrCodeMalformedDefinition CommandErrorCode = "MALFORMED_DEFINITION"

	// ErrCodeNotFound indicates a name with no registered value.
	ErrCodeNotFound CommandErrorCode = "NOT_FOUND"

	// ErrCodeTypeMismatch indicates a value of the wrong kind for its position.
	ErrCodeTypeMismatch CommandErrorCode = "TYPE_MISMATCH"
)

// CommandError reports a command the interpreter could not carry out.
// The session continues after it.
type CommandError struct {
	Code    CommandErrorCode
	Message string

	// Err is the underlying cause, such as an *fsa.ParseError.
	Err error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CommandError) Unwrap() error { return e.Err }

func newCommandError(code CommandErrorCode, format string, args ...any) *CommandError {
	return &CommandError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func codeOf(err error) (CommandErrorCode, bool) {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Code, true
	}
	return "", false
}

// IsNotFound reports whether err is a lookup of an unregistered name.
func IsNotFound(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrCodeNotFound
}

// IsMalformed reports whether err is a formatting problem: an unknown
// command, bad arguments, or a broken definition block.
func IsMalformed(err error) bool {
	code, ok := codeOf(err)
	return ok && (code == ErrCodeUnknownCommand ||
		code == ErrCodeMalformedCommand ||
		code == ErrCodeMalformedDefinition)
}

// IsTypeMismatch reports whether err is a value used where another kind
// was required.
func IsTypeMismatch(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrCodeTypeMismatch
}
