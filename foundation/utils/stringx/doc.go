// File: doc.go
// Title: Package Documentation for stringx
// Description: Package stringx provides the small string helpers shared by
//              the engine and the shell hosts.
// Author: msto63
// Version: v0.3.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.3.0: Reduced to blank checks, quoting and layout helpers

// Package stringx provides extended string operations for chainlib.
//
// Blank checks:
//
//	stringx.IsBlank("  ")        // true
//	stringx.FirstNonBlank("", "x") // "x"
//
// Quoting, as used for completions that contain whitespace:
//
//	stringx.Quote(`say "hi"`)       // "\"say \\\"hi\\\"\""
//	stringx.Unquote(stringx.Quote(s)) // s
//
// Layout helpers are Unicode aware and never split a multi-byte rune.
package stringx
