// File: complete.go
// Title: Completion Engine
// Description: Replays all chains without running hooks or actions, asks
//              the node at the point of divergence for suggestions and
//              returns them filtered, deduplicated, sorted and quoted.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package chain

import (
	clstringx "github.com/msto63/chainlib/foundation/utils/stringx"
)

// Completion is a suggestion replacing the input from Offset on
type Completion struct {
	Offset int    `json:"offset"`
	Text   string `json:"text"`
}

type completionKey struct {
	offset int
	text   string
}

// completer gathers completions for one Complete call
type completer struct {
	state *State
	sc    *Scanner
	mode  MatchMode
	seen  map[completionKey]bool
	out   []Completion
}

func newCompleter(s *State, sc *Scanner, mode MatchMode) *completer {
	return &completer{
		state: s,
		sc:    sc,
		mode:  mode,
		seen:  make(map[completionKey]bool),
	}
}

func (c *completer) add(offset int, text string) {
	key := completionKey{offset: offset, text: text}
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.out = append(c.out, Completion{Offset: offset, Text: text})
}

// collect asks n for suggestions for the input at cursor
func (c *completer) collect(n *Node, cursor int) {
	c.sc.SetCursor(cursor)
	typed := c.sc.PeekRemaining()
	suggestions, trim := n.suggestions(c.state, c.sc)
	if trim < 0 {
		trim = 0
	}
	if trim > len(typed) {
		trim = len(typed)
	}
	typed = typed[trim:]
	for _, s := range suggestions {
		if c.mode.Matches(c.state.Comparator(), s, typed) {
			c.add(cursor+trim, s)
		}
	}
}

// fromOutcomes collects suggestions for every success and every failure
// not caused by a guard
func (c *completer) fromOutcomes(successes, failures []MatchOutcome) {
	for _, o := range successes {
		if len(o.Tokens) == 0 {
			continue
		}
		i := len(o.Tokens) - 1
		c.collect(o.Chain.Node(i), o.Tokens[i].Cursor)
	}
	for _, o := range failures {
		f := o.Failure
		if f.Reason == ReasonGuardFailed || f.Index >= o.Chain.Len() {
			continue
		}
		c.collect(o.Chain.Node(f.Index), f.Cursor)
	}
}

// result sorts the completions and quotes texts containing whitespace
func (c *completer) result() []Completion {
	sortCompletions(c.state.Comparator(), c.out)
	for i := range c.out {
		if clstringx.ContainsWhitespace(c.out[i].Text) {
			c.out[i].Text = clstringx.Quote(c.out[i].Text)
		}
	}
	return c.out
}
