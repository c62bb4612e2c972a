// File: stringx.go
// Title: Core String Utility Functions
// Description: Blank checks, whitespace detection, double-quote quoting
//              with backslash escapes and Unicode aware padding.
// Author: msto63
// Version: v0.3.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.3.0: Added Quote/Unquote, removed unused helpers

package stringx

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrUnterminatedQuote is returned by Unquote for a missing closing quote
var ErrUnterminatedQuote = errors.New("unterminated quoted string")

// IsBlank returns true if the string is empty or contains only whitespace.
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsNotBlank is the inverse of IsBlank.
func IsNotBlank(s string) bool {
	return !IsBlank(s)
}

// FirstNonBlank returns the first non-blank string of values.
func FirstNonBlank(values ...string) string {
	for _, s := range values {
		if IsNotBlank(s) {
			return s
		}
	}
	return ""
}

// ContainsWhitespace reports whether s contains any Unicode space.
func ContainsWhitespace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// Quote wraps s in double quotes, escaping backslashes and double quotes.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

// Unquote reverses Quote. Single-quoted input is accepted as well; any
// backslash escapes the following byte.
func Unquote(s string) (string, error) {
	if len(s) == 0 || (s[0] != '"' && s[0] != '\'') {
		return s, nil
	}
	quote := s[0]
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			i++
			b.WriteByte(s[i])
		case c == quote:
			if i != len(s)-1 {
				return "", errors.New("trailing characters after closing quote")
			}
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}
	return "", ErrUnterminatedQuote
}

// Truncate shortens s to maxLen runes, ending in ellipsis when cut.
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if ellipsisLen >= maxLen {
		return string([]rune(s)[:maxLen])
	}
	return string([]rune(s)[:maxLen-ellipsisLen]) + ellipsis
}

// PadRight pads s with pad runes up to width runes.
func PadRight(s string, width int, pad rune) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(string(pad), width-n)
}
