package demo

import (
	"sort"
	"sync"
)

// Modes accepted by the mode command
var Modes = []string{"normal", "verbose", "quiet"}

// Colors accepted by the tags command
var Colors = []string{"red", "green", "blue", "yellow"}

// Session is the executor the demo grammar runs against. All methods are
// safe on a nil *Session, which completion uses when no session exists.
type Session struct {
	mu    sync.RWMutex
	vars  map[string]string
	tags  []string
	mode  string
	admin bool
}

// NewSession creates an empty session in normal mode
func NewSession() *Session {
	return &Session{
		vars: make(map[string]string),
		mode: Modes[0],
	}
}

// Set stores a variable
func (s *Session) Set(name, value string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[name] = value
}

// Get returns a variable
func (s *Session) Get(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vars[name]
	return v, ok
}

// Unset removes a variable and reports whether it existed
func (s *Session) Unset(name string) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.vars[name]
	delete(s.vars, name)
	return ok
}

// Names returns the sorted variable names
func (s *Session) Names() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tags returns the current tags
func (s *Session) Tags() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.tags...)
}

// SetTags replaces the tags
func (s *Session) SetTags(tags []string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags = append([]string(nil), tags...)
}

// Mode returns the output mode
func (s *Session) Mode() string {
	if s == nil {
		return Modes[0]
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode changes the output mode
func (s *Session) SetMode(mode string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// IsAdmin reports whether the admin commands are unlocked
func (s *Session) IsAdmin() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

// SetAdmin locks or unlocks the admin commands
func (s *Session) SetAdmin(admin bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = admin
}

// Reset drops all variables and tags
func (s *Session) Reset() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars = make(map[string]string)
	s.tags = nil
}
