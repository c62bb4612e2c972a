// File: state.go
// Title: Execution State
// Description: Per-call state handed to guards, value types and actions:
//              the executor, the comparison policy, parsed arguments and
//              whether the call executes or only probes for completions.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package chain

// State is created per Execute or Complete call and is not shared
type State struct {
	executor   any
	comparator Comparator
	args       map[string]any
	execution  bool
}

// NewState creates a state for one call
func NewState(executor any, comparator Comparator, execution bool) *State {
	if comparator == nil {
		comparator = CaseInsensitive
	}
	return &State{
		executor:   executor,
		comparator: comparator,
		args:       make(map[string]any),
		execution:  execution,
	}
}

// Executor returns the value the call was made for
func (s *State) Executor() any {
	return s.executor
}

// Comparator returns the active comparison policy
func (s *State) Comparator() Comparator {
	return s.comparator
}

// IsExecution reports whether the call runs actions, as opposed to
// probing for completions
func (s *State) IsExecution() bool {
	return s.execution
}

// Value returns a parsed argument by name
func (s *State) Value(name string) (any, bool) {
	v, ok := s.args[name]
	return v, ok
}

// Args returns a copy of all parsed arguments
func (s *State) Args() map[string]any {
	out := make(map[string]any, len(s.args))
	for k, v := range s.args {
		out[k] = v
	}
	return out
}

func (s *State) set(name string, value any) {
	s.args[name] = value
}

// ExecutorOf returns the executor as E
func ExecutorOf[E any](s *State) E {
	e, _ := s.executor.(E)
	return e
}

// Arg returns the argument name converted to T. ok is false when the
// argument is missing or has another type.
func Arg[T any](s *State, name string) (T, bool) {
	var zero T
	v, ok := s.args[name]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// ListArg returns a list or array argument with every element converted
// to T
func ListArg[T any](s *State, name string) ([]T, bool) {
	v, ok := s.args[name]
	if !ok {
		return nil, false
	}
	values, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]T, 0, len(values))
	for _, item := range values {
		t, ok := item.(T)
		if !ok {
			return nil, false
		}
		out = append(out, t)
	}
	return out, true
}
