// File: value.go
// Title: Value Type Contracts
// Description: Interfaces implemented by leaf value types consumed by
//              typed, list and array nodes, and the function types used
//              to customize nodes.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Recovering wrappers for completion overrides and raw completers

package chain

// ValueType parses one argument value from the scanner
type ValueType interface {
	Parse(s *State, sc *Scanner) (any, error)
}

// Weighted is implemented by value types with a disambiguation weight.
// Types without it weigh 0.
type Weighted interface {
	Weight() int
}

// Suggester is implemented by value types offering completions
type Suggester interface {
	Suggest(s *State, sc *Scanner) []string
}

// Action is the terminal handler of a chain
type Action func(s *State) (any, error)

// Guard gates whether a node may match
type Guard func(s *State) bool

// Validator accepts or rejects a parsed value
type Validator func(value any) bool

// CompletionProvider replaces a node's default suggestions
type CompletionProvider func(s *State, sc *Scanner) []string

// ErrorHook converts a parse error into a handled failure during
// execution. Returning nil keeps the original error as cause.
type ErrorHook func(s *State, err error) error

// RawCompleter suggests the next raw argument given the complete ones
type RawCompleter func(s *State, args []string) []string

// Run adapts a function without arguments or result to an Action
func Run(fn func()) Action {
	return func(*State) (any, error) {
		fn()
		return nil, nil
	}
}

func weightOf(t ValueType) int {
	if w, ok := t.(Weighted); ok {
		return w.Weight()
	}
	return 0
}

// suggestValues asks a value type for suggestions, tolerating panics
func suggestValues(t ValueType, s *State, sc *Scanner) (out []string) {
	sg, ok := t.(Suggester)
	if !ok {
		return nil
	}
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	return sg.Suggest(s, sc)
}

// callProvider runs a completion override; a panic yields no suggestions
func callProvider(p CompletionProvider, s *State, sc *Scanner) (out []string) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	return p(s, sc)
}

// callRaw runs a raw argument completer; a panic yields no suggestions
func callRaw(c RawCompleter, s *State, args []string) (out []string) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	return c(s, args)
}
