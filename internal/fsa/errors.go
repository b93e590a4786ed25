package fsa

import (
	"errors"
	"fmt"
)

// ParseErrorCode categorizes malformed definitions.
type ParseErrorCode string

const (
	// ErrCodeEmptyDefinition indicates the definition has no label line.
	ErrCodeEmptyDefinition ParseErrorCode = "EMPTY_DEFINITION"

	// ErrCodeAlphabet indicates the alphabet line is missing or malformed.
	ErrCodeAlphabet ParseErrorCode = "BAD_ALPHABET"

	// ErrCodeStateLine indicates a state line could not be tokenized.
	ErrCodeStateLine ParseErrorCode = "BAD_STATE_LINE"

	// ErrCodeDuplicateState indicates a state was declared twice.
	ErrCodeDuplicateState ParseErrorCode = "DUPLICATE_STATE"

	// ErrCodeTooManyTokens indicates more transition tokens than alphabet symbols.
	ErrCodeTooManyTokens ParseErrorCode = "TOO_MANY_TOKENS"

	// ErrCodeUndeclaredState indicates a transition targets a state with no line.
	ErrCodeUndeclaredState ParseErrorCode = "UNDECLARED_STATE"

	// ErrCodeNoStates indicates the definition declares no states at all.
	ErrCodeNoStates ParseErrorCode = "NO_STATES"
)

// ParseError reports a malformed automaton definition.
// Line is 1-based within the definition block, or 0 when unknown.
type ParseError struct {
	Code    ParseErrorCode
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsParseError reports whether err is (or wraps) a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

func newParseError(code ParseErrorCode, format string, args ...any) *ParseError {
	return &ParseError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// atLine stamps a line number onto a *ParseError that does not have one yet.
func atLine(err error, line int) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.Line == 0 {
		pe.Line = line
	}
	return err
}
