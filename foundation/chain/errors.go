// File: errors.go
// Title: Match Failures and Dispatch Errors
// Description: Value parse errors raised by leaf types, the tagged match
//              failure produced by the matcher and the not-found error
//              returned by Execute.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package chain

import (
	"errors"
	"fmt"
	"strings"

	clerror "github.com/msto63/chainlib/foundation/core/error"
)

// ParseError is returned by value types for input they do not accept
type ParseError struct {
	Argument string
	Reason   string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Argument == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Argument, e.Reason)
}

// Expected creates a ParseError for a missing kind of value
func Expected(what string) *ParseError {
	return &ParseError{Reason: "expected " + what}
}

// Rejectf creates a ParseError with a formatted reason
func Rejectf(format string, args ...interface{}) *ParseError {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}

// Reason tags why a chain did not match
type Reason int

const (
	// ReasonMissingSeparator: a token was not followed by exactly one space
	ReasonMissingSeparator Reason = iota
	// ReasonInputExhausted: input ended before the chain did
	ReasonInputExhausted
	// ReasonExtraInput: the chain ended but input remained
	ReasonExtraInput
	// ReasonGuardFailed: a node's guard rejected the state
	ReasonGuardFailed
	// ReasonValueRejected: a value did not parse or failed validation
	ReasonValueRejected
	// ReasonInternalError: parsing failed unexpectedly
	ReasonInternalError
	// ReasonHandled: an error hook consumed the failure
	ReasonHandled
)

// String returns the name of the reason
func (r Reason) String() string {
	switch r {
	case ReasonMissingSeparator:
		return "missing_separator"
	case ReasonInputExhausted:
		return "input_exhausted"
	case ReasonExtraInput:
		return "extra_input"
	case ReasonGuardFailed:
		return "guard_failed"
	case ReasonValueRejected:
		return "value_rejected"
	case ReasonInternalError:
		return "internal_error"
	case ReasonHandled:
		return "handled"
	default:
		return "unknown"
	}
}

// severity ranks how close a failure is to what the user meant
func (r Reason) severity() int {
	switch r {
	case ReasonMissingSeparator, ReasonInputExhausted:
		return 4
	case ReasonExtraInput:
		return 3
	case ReasonValueRejected:
		return 2
	case ReasonInternalError:
		return 1
	default:
		return 0
	}
}

// MatchFailure describes where and why a chain stopped matching
type MatchFailure struct {
	Reason Reason
	// Index is the 0-based chain position of the failing node
	Index int
	// Cursor is the scanner position the failure refers to
	Cursor int
	// Argument names the failing node, if any
	Argument string
	// Extra holds the leftover input or the missing chain suffix
	Extra string
	Cause error
	// Wrapped is the reason a Handled failure stands in for
	Wrapped Reason
}

// Error implements the error interface
func (f *MatchFailure) Error() string {
	var b strings.Builder
	b.WriteString(f.Reason.String())
	fmt.Fprintf(&b, " at index %d (cursor %d)", f.Index, f.Cursor)
	if f.Argument != "" {
		fmt.Fprintf(&b, " argument %q", f.Argument)
	}
	if f.Extra != "" {
		fmt.Fprintf(&b, " extra %q", f.Extra)
	}
	if f.Cause != nil {
		b.WriteString(": ")
		b.WriteString(f.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause
func (f *MatchFailure) Unwrap() error {
	return f.Cause
}

// Severity returns the ranking severity; Handled failures inherit the
// severity of the reason they wrap
func (f *MatchFailure) Severity() int {
	if f.Reason == ReasonHandled {
		return f.Wrapped.severity()
	}
	return f.Reason.severity()
}

// Message renders a short user facing description
func (f *MatchFailure) Message() string {
	switch f.Reason {
	case ReasonMissingSeparator:
		return "expected a space after the argument"
	case ReasonInputExhausted:
		return "missing arguments: " + f.Extra
	case ReasonExtraInput:
		return "unexpected input: " + strings.TrimSpace(f.Extra)
	case ReasonGuardFailed:
		return "not permitted"
	default:
		if f.Cause != nil {
			return f.Cause.Error()
		}
		return f.Reason.String()
	}
}

// classify maps a parse error to its failure reason
func classify(err error) Reason {
	var parseErr *ParseError
	var scanErr *ScanError
	if errors.As(err, &parseErr) || errors.As(err, &scanErr) {
		return ReasonValueRejected
	}
	return ReasonInternalError
}

// panicError carries a recovered panic from a value parser or action
type panicError struct {
	value interface{}
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// ErrNotFound is the sentinel matched by errors.Is for NotFoundError
var ErrNotFound = errors.New("command not found")

// NotFoundError is returned by Execute when no chain matches the input
type NotFoundError struct {
	// Word is the first word of the input
	Word string
	// Closest holds the ranked failures most likely meant by the user
	Closest []MatchOutcome
	// Suggestions lists root names similar to Word
	Suggestions []string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Word == "" {
		return "no command given"
	}
	return fmt.Sprintf("unknown or incomplete command %q", e.Word)
}

// Unwrap exposes a coded error so clerror.HasCode and errors.Is work
func (e *NotFoundError) Unwrap() error {
	return clerror.New(ErrNotFound.Error()).
		WithCode(clerror.CodeCommandNotFound).
		WithDetail("word", e.Word).
		WithCause(ErrNotFound)
}

func buildError(code clerror.Code, format string, args ...interface{}) *clerror.Error {
	return clerror.Newf(format, args...).WithCode(code).WithOperation("compile")
}
