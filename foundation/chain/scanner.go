// File: scanner.go
// Title: Input Scanner
// Description: Cursor based reader over one command line. Provides word,
//              quoted string and number tokenization; callers save and
//              restore the cursor for speculative parsing.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package chain

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	integerNumber = regexp.MustCompile(`^-?\d+$`)
	decimalNumber = regexp.MustCompile(`^-?\d+[,.]?\d*$`)
)

// ScanError reports a read failure at a cursor position
type ScanError struct {
	Cursor  int
	Message string
}

// Error implements the error interface
func (e *ScanError) Error() string {
	return fmt.Sprintf("%s (at %d)", e.Message, e.Cursor)
}

// Scanner reads tokens from a single input string. Cursor positions are
// byte offsets into the input. Failed reads may leave the cursor moved;
// callers doing lookahead restore it with SetCursor.
type Scanner struct {
	input  string
	cursor int
}

// NewScanner creates a scanner positioned at the start of input
func NewScanner(input string) *Scanner {
	return &Scanner{input: input}
}

// Input returns the complete input string
func (s *Scanner) Input() string {
	return s.input
}

// Cursor returns the current read position
func (s *Scanner) Cursor() int {
	return s.cursor
}

// SetCursor moves the read position, clamped to the input bounds
func (s *Scanner) SetCursor(cursor int) {
	switch {
	case cursor < 0:
		s.cursor = 0
	case cursor > len(s.input):
		s.cursor = len(s.input)
	default:
		s.cursor = cursor
	}
}

// Len returns the total input length
func (s *Scanner) Len() int {
	return len(s.input)
}

// Remaining returns the number of unread bytes
func (s *Scanner) Remaining() int {
	return len(s.input) - s.cursor
}

// CanRead reports whether n more bytes can be read
func (s *Scanner) CanRead(n int) bool {
	return s.cursor+n <= len(s.input)
}

// HasMore reports whether at least one byte is left
func (s *Scanner) HasMore() bool {
	return s.CanRead(1)
}

// Peek returns the byte at cursor+offset without consuming it
func (s *Scanner) Peek(offset int) (byte, bool) {
	if offset < 0 || !s.CanRead(offset+1) {
		return 0, false
	}
	return s.input[s.cursor+offset], true
}

// PeekRemaining returns the unread input without consuming it
func (s *Scanner) PeekRemaining() string {
	return s.input[s.cursor:]
}

// Read consumes one byte
func (s *Scanner) Read() (byte, error) {
	if !s.HasMore() {
		return 0, s.errorf("expected a character but got end of input")
	}
	c := s.input[s.cursor]
	s.cursor++
	return c, nil
}

// ReadN consumes exactly n bytes
func (s *Scanner) ReadN(n int) (string, error) {
	if n < 0 || !s.CanRead(n) {
		return "", s.errorf("cannot read %d characters", n)
	}
	start := s.cursor
	s.cursor += n
	return s.input[start:s.cursor], nil
}

// Skip advances the cursor by n bytes
func (s *Scanner) Skip(n int) error {
	if n < 0 || !s.CanRead(n) {
		return s.errorf("cannot skip %d characters", n)
	}
	s.cursor += n
	return nil
}

// ReadUntil reads up to, not including, the stop byte. With allowEscape a
// backslash escapes the next byte and is removed from the result.
func (s *Scanner) ReadUntil(stop byte, allowEscape bool) string {
	return s.ReadUntilAny(allowEscape, stop)
}

// ReadUntilAny reads up to the first of the stop bytes
func (s *Scanner) ReadUntilAny(allowEscape bool, stops ...byte) string {
	start := s.cursor
	for s.cursor < len(s.input) {
		c := s.input[s.cursor]
		if strings.IndexByte(string(stops), c) >= 0 {
			break
		}
		if allowEscape && c == '\\' && s.cursor+1 < len(s.input) {
			s.cursor++
		}
		s.cursor++
	}
	raw := s.input[start:s.cursor]
	if allowEscape {
		return unescape(raw)
	}
	return raw
}

// ReadRemaining consumes and returns all unread input
func (s *Scanner) ReadRemaining() string {
	rest := s.input[s.cursor:]
	s.cursor = len(s.input)
	return rest
}

// ReadWord reads up to the next space. The space is not consumed.
func (s *Scanner) ReadWord() string {
	return s.ReadUntil(' ', false)
}

// ReadString reads a single or double quoted string and unescapes it
func (s *Scanner) ReadString() (string, error) {
	quote, ok := s.Peek(0)
	if !ok {
		return "", s.errorf("expected quote but got end of input")
	}
	if quote != '"' && quote != '\'' {
		return "", s.errorf("expected quote but got %q", quote)
	}
	start := s.cursor
	s.cursor++
	value := s.ReadUntil(quote, true)
	if !s.HasMore() {
		return "", errorAt(start, "unterminated quoted string")
	}
	s.cursor++
	return value, nil
}

// ReadWordOrString reads a quoted string if the next byte is a quote,
// a word otherwise
func (s *Scanner) ReadWordOrString() (string, error) {
	c, ok := s.Peek(0)
	if !ok {
		return "", s.errorf("expected a word but got end of input")
	}
	if c == '"' || c == '\'' {
		return s.ReadString()
	}
	return s.ReadWord(), nil
}

// ReadIntegerNumber reads a word that must be an optionally negative integer
func (s *Scanner) ReadIntegerNumber() (string, error) {
	start := s.cursor
	word := s.ReadWord()
	if !integerNumber.MatchString(word) {
		return "", errorAt(start, "expected integer but got %q", word)
	}
	return word, nil
}

// ReadDecimalNumber reads a decimal number. Both ',' and '.' are accepted
// as separator; the result always uses '.'.
func (s *Scanner) ReadDecimalNumber() (string, error) {
	start := s.cursor
	word := s.ReadWord()
	if !decimalNumber.MatchString(word) {
		return "", errorAt(start, "expected decimal number but got %q", word)
	}
	return strings.Replace(word, ",", ".", 1), nil
}

func (s *Scanner) errorf(format string, args ...interface{}) *ScanError {
	return errorAt(s.cursor, format, args...)
}

func errorAt(cursor int, format string, args ...interface{}) *ScanError {
	return &ScanError{Cursor: cursor, Message: fmt.Sprintf(format, args...)}
}

func unescape(raw string) string {
	if strings.IndexByte(raw, '\\') < 0 {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
		}
		b.WriteByte(raw[i])
	}
	return b.String()
}
