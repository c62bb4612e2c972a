// File: dispatch.go
// Title: Multi-Chain Matching
// Description: Runs a set of chains against the same input, splices
//              redirect target chains into matching redirect chains and
//              filters unrelated first-token failures.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Index-0 filter skips the separator before the first word

package chain

import (
	"fmt"
)

// matcher holds the limits for one findMatches run
type matcher struct {
	maxDepth int
}

// findMatches matches every chain from the scanner's current cursor and
// splits the outcomes into successes and failures
func (m matcher) findMatches(chains []*Chain, s *State, sc *Scanner, depth int) (successes, failures []MatchOutcome) {
	start := sc.Cursor()
	for _, c := range chains {
		sc.SetCursor(start)
		out := Match(c, s, sc)
		if !out.OK() {
			if out.Failure.Index == 0 && s.IsExecution() && !firstWordMatches(c, s, sc, out.Failure.Cursor) {
				continue
			}
			failures = append(failures, out)
			continue
		}
		if !c.IsRedirect() {
			successes = append(successes, out)
			continue
		}

		ok, failed := m.splice(out, s, sc, depth)
		successes = append(successes, ok...)
		failures = append(failures, failed...)
	}
	sc.SetCursor(start)
	return successes, failures
}

// firstWordMatches reports whether the word at cursor is a prefix of the
// chain's first node name. A separator space at cursor is skipped, so a
// root followed by unrelated input is judged by that input.
func firstWordMatches(c *Chain, s *State, sc *Scanner, cursor int) bool {
	sc.SetCursor(cursor)
	if ch, ok := sc.Peek(0); ok && ch == ' ' {
		_ = sc.Skip(1)
	}
	word, err := sc.ReadWordOrString()
	if err != nil {
		word = ""
	}
	return s.Comparator().HasPrefix(c.Node(0).name, word)
}

// splice continues a matched redirect chain with its target's chains
func (m matcher) splice(prefix MatchOutcome, s *State, sc *Scanner, depth int) (successes, failures []MatchOutcome) {
	redirect := prefix.Chain.Last()
	fail := func(err error) []MatchOutcome {
		return []MatchOutcome{{
			Chain:  prefix.Chain,
			Tokens: prefix.Tokens,
			Failure: &MatchFailure{
				Reason:   ReasonInternalError,
				Index:    prefix.Chain.Len() - 1,
				Cursor:   sc.Cursor(),
				Argument: redirect.name,
				Cause:    err,
			},
		}}
	}

	if depth >= m.maxDepth {
		return nil, fail(fmt.Errorf("redirect %q exceeds the maximum depth of %d", redirect.name, m.maxDepth))
	}
	targets, err := redirect.TargetChains()
	if err != nil {
		return nil, fail(err)
	}

	subOK, subFailed := m.findMatches(targets, s, sc, depth+1)
	for _, out := range subOK {
		merged, err := Merge(prefix.Chain, out.Chain)
		if err != nil {
			failures = append(failures, fail(err)...)
			continue
		}
		tokens := make([]MatchedToken, 0, len(prefix.Tokens)+len(out.Tokens))
		tokens = append(tokens, prefix.Tokens...)
		tokens = append(tokens, out.Tokens...)
		successes = append(successes, MatchOutcome{Chain: merged, Tokens: tokens})
	}
	for _, out := range subFailed {
		merged, err := Merge(prefix.Chain, out.Chain)
		if err != nil {
			failures = append(failures, fail(err)...)
			continue
		}
		f := *out.Failure
		f.Index += prefix.Chain.Len()
		tokens := make([]MatchedToken, 0, len(prefix.Tokens)+len(out.Tokens))
		tokens = append(tokens, prefix.Tokens...)
		tokens = append(tokens, out.Tokens...)
		failures = append(failures, MatchOutcome{Chain: merged, Tokens: tokens, Failure: &f})
	}
	return successes, failures
}
