// File: compare.go
// Title: String Comparison Policies
// Description: Case policies used for literal matching, root replacement
//              and completion ordering, plus the completion match modes.
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
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"
)

// Comparator is a string comparison policy
type Comparator interface {
	// Equal reports whether a and b name the same thing
	Equal(a, b string) bool
	// HasPrefix reports whether s starts with prefix
	HasPrefix(s, prefix string) bool
	// Contains reports whether sub occurs in s
	Contains(s, sub string) bool
	// Compare orders a and b lexicographically
	Compare(a, b string) int
	// CaseSensitive reports the policy kind
	CaseSensitive() bool
}

var (
	// CaseSensitive compares strings byte for byte
	CaseSensitive Comparator = caseSensitive{}
	// CaseInsensitive compares Unicode case-folded strings
	CaseInsensitive Comparator = caseInsensitive{}
)

type caseSensitive struct{}

func (caseSensitive) Equal(a, b string) bool          { return a == b }
func (caseSensitive) HasPrefix(s, prefix string) bool { return strings.HasPrefix(s, prefix) }
func (caseSensitive) Contains(s, sub string) bool     { return strings.Contains(s, sub) }
func (caseSensitive) Compare(a, b string) int         { return strings.Compare(a, b) }
func (caseSensitive) CaseSensitive() bool             { return true }

type caseInsensitive struct{}

// fold returns the case-folded form of s. A Caser keeps state, so each
// call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

func (caseInsensitive) Equal(a, b string) bool { return a == b || fold(a) == fold(b) }
func (caseInsensitive) HasPrefix(s, prefix string) bool {
	return strings.HasPrefix(fold(s), fold(prefix))
}
func (caseInsensitive) Contains(s, sub string) bool { return strings.Contains(fold(s), fold(sub)) }
func (caseInsensitive) Compare(a, b string) int     { return strings.Compare(fold(a), fold(b)) }
func (caseInsensitive) CaseSensitive() bool         { return false }

// MatchMode selects how completion candidates are filtered against the
// text the user already typed
type MatchMode int

const (
	// MatchPrefix keeps candidates starting with the typed text
	MatchPrefix MatchMode = iota
	// MatchSubstring keeps candidates containing the typed text
	MatchSubstring
	// MatchFuzzy keeps candidates containing the typed characters in order
	MatchFuzzy
)

// String returns the configuration name of the mode
func (m MatchMode) String() string {
	switch m {
	case MatchPrefix:
		return "prefix"
	case MatchSubstring:
		return "substring"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// ParseMatchMode parses a configuration value into a MatchMode
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prefix", "":
		return MatchPrefix, nil
	case "substring":
		return MatchSubstring, nil
	case "fuzzy":
		return MatchFuzzy, nil
	default:
		return MatchPrefix, fmt.Errorf("unknown match mode %q", s)
	}
}

// Matches reports whether candidate is acceptable for the typed text
func (m MatchMode) Matches(cmp Comparator, candidate, typed string) bool {
	switch m {
	case MatchSubstring:
		return cmp.Contains(candidate, typed)
	case MatchFuzzy:
		if cmp.CaseSensitive() {
			return fuzzy.Match(typed, candidate)
		}
		return fuzzy.MatchFold(typed, candidate)
	default:
		return cmp.HasPrefix(candidate, typed)
	}
}
