// File: doc.go
// Title: Structured Errors
// Description: Package documentation for the chainlib error type.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: Initial documentation

// Package error provides the structured error type used by chainlib.
//
// An Error carries a Code, a Severity, optional key/value details and an
// optional cause. Grammar build failures are reported with the grammar
// codes (CodeDuplicateArgumentName, CodeUnterminatedChain, CodeInvalidNode)
// at registration time; CodeCommandNotFound is attached to dispatch failures.
//
//	err := clerror.New("duplicate argument name").
//		WithCode(clerror.CodeDuplicateArgumentName).
//		WithDetail("argument", "value")
//
//	if clerror.HasCode(err, clerror.CodeDuplicateArgumentName) { ... }
//
// Errors compose with the standard library: Unwrap exposes the cause, so
// errors.Is and errors.As walk through a wrapped Error.
package error
