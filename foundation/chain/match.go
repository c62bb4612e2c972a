// File: match.go
// Title: Chain Matcher
// Description: Replays one chain against the input node by node and
//              reports the matched tokens or a tagged failure with the
//              chain index and cursor where matching stopped.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Panicking guards fail with an internal error

package chain

// MatchedToken is the input consumed by one chain node
type MatchedToken struct {
	// Cursor is the scanner position where the token starts
	Cursor int
	Text   string
	Value  any
}

// MatchOutcome is the result of matching one chain
type MatchOutcome struct {
	Chain   *Chain
	Tokens  []MatchedToken
	Failure *MatchFailure
}

// OK reports whether the chain matched
func (o MatchOutcome) OK() bool {
	return o.Failure == nil
}

// Match replays c from the scanner's cursor. A chain ending in a redirect
// stops at the redirect with a placeholder token; the caller continues
// with the redirect's target chains at the returned cursor.
func Match(c *Chain, s *State, sc *Scanner) MatchOutcome {
	tokens := make([]MatchedToken, 0, c.Len())
	failed := func(f *MatchFailure) MatchOutcome {
		return MatchOutcome{Chain: c, Tokens: tokens, Failure: f}
	}

	last := c.Len() - 1
	for i, n := range c.nodes {
		cursor := sc.Cursor()
		if f := guardFailure(n, s, i, cursor); f != nil {
			f.Extra = sc.ReadRemaining()
			return failed(f)
		}

		if n.kind == KindRedirect {
			tokens = append(tokens, MatchedToken{Cursor: cursor, Value: n.name})
			return MatchOutcome{Chain: c, Tokens: tokens}
		}

		value, err := n.parse(s, sc)
		if err != nil {
			return failed(parseFailure(n, s, i, cursor, sc.Input()[cursor:sc.Cursor()], err))
		}
		tokens = append(tokens, MatchedToken{
			Cursor: cursor,
			Text:   sc.Input()[cursor:sc.Cursor()],
			Value:  value,
		})

		if i < last {
			sep := sc.Cursor()
			if ch, err := sc.Read(); err != nil || ch != ' ' {
				sc.SetCursor(sep)
				return failed(&MatchFailure{
					Reason:   ReasonMissingSeparator,
					Index:    i,
					Cursor:   cursor,
					Argument: n.name,
					Extra:    sc.ReadRemaining(),
				})
			}
			if !sc.HasMore() {
				next := c.nodes[i+1]
				if f := guardFailure(next, s, i+1, sc.Cursor()); f != nil {
					return failed(f)
				}
				return failed(&MatchFailure{
					Reason:   ReasonInputExhausted,
					Index:    i + 1,
					Cursor:   sc.Cursor(),
					Argument: next.name,
					Extra:    formatNodes(c.nodes[i+1:], false),
				})
			}
		} else if sc.HasMore() {
			return failed(&MatchFailure{
				Reason: ReasonExtraInput,
				Index:  i,
				Cursor: sc.Cursor(),
				Extra:  sc.ReadRemaining(),
			})
		}
	}
	return MatchOutcome{Chain: c, Tokens: tokens}
}

// guardFailure evaluates the guard of n at chain index i. It returns nil
// when the node may match; a panicking guard is an internal error.
func guardFailure(n *Node, s *State, i, cursor int) *MatchFailure {
	ok, err := n.allows(s)
	switch {
	case err != nil:
		return &MatchFailure{Reason: ReasonInternalError, Index: i, Cursor: cursor, Argument: n.name, Cause: err}
	case !ok:
		return &MatchFailure{Reason: ReasonGuardFailed, Index: i, Cursor: cursor, Argument: n.name}
	}
	return nil
}

// parseFailure classifies a parse error and lets the node's error hook
// handle it during execution
func parseFailure(n *Node, s *State, index, cursor int, consumed string, err error) *MatchFailure {
	f := &MatchFailure{
		Reason:   classify(err),
		Index:    index,
		Cursor:   cursor,
		Argument: n.name,
		Extra:    consumed,
		Cause:    err,
	}
	if n.onError == nil || !s.IsExecution() {
		return f
	}

	handled := runHook(n.onError, s, err)
	if handled == nil {
		handled = err
	}
	f.Wrapped = f.Reason
	f.Reason = ReasonHandled
	f.Cause = handled
	return f
}

func runHook(hook ErrorHook, s *State, err error) (out error) {
	defer func() {
		if r := recover(); r != nil {
			out = &panicError{value: r}
		}
	}()
	return hook(s, err)
}
