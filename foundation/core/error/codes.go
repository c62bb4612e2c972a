// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across chainlib. Codes separate
//              grammar build errors, command lookup failures and host level
//              configuration problems so callers can branch on them.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: Grammar and dispatch codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Grammar construction
	CodeDuplicateArgumentName Code = "DUPLICATE_ARGUMENT_NAME"
	CodeUnterminatedChain     Code = "UNTERMINATED_CHAIN"
	CodeInvalidNode           Code = "INVALID_NODE"

	// Dispatch
	CodeCommandNotFound Code = "COMMAND_NOT_FOUND"
	CodeCommandFailed   Code = "COMMAND_FAILED"
	CodeInputTooLong    Code = "INPUT_TOO_LONG"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Validation
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeValueOutOfRange  Code = "VALUE_OUT_OF_RANGE"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeInvalidInput,
		CodeDuplicateArgumentName, CodeUnterminatedChain, CodeInvalidNode,
		CodeCommandNotFound, CodeCommandFailed, CodeInputTooLong,
		CodeConfigError, CodeInvalidConfig,
		CodeValidationFailed, CodeValueOutOfRange:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeDuplicateArgumentName, CodeUnterminatedChain, CodeInvalidNode:
		return "grammar"
	case CodeCommandNotFound, CodeCommandFailed, CodeInputTooLong:
		return "dispatch"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeValidationFailed, CodeValueOutOfRange, CodeInvalidInput:
		return "validation"
	default:
		return "generic"
	}
}

// GetSeverityFromCode maps a code to its default severity
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeDuplicateArgumentName, CodeUnterminatedChain, CodeInvalidNode, CodeInternal:
		return SeverityHigh
	case CodeCommandNotFound, CodeInvalidInput, CodeValidationFailed, CodeValueOutOfRange, CodeInputTooLong:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
