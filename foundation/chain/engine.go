// File: engine.go
// Title: Command Engine
// Description: Registry of grammar roots with execution, disambiguation,
//              not-found diagnostics and completion. Safe for concurrent
//              use; registration swaps an immutable snapshot.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Comparator accessor

package chain

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	clerror "github.com/msto63/chainlib/foundation/core/error"
	cllog "github.com/msto63/chainlib/foundation/core/log"
)

const (
	// DefaultMaxInputLength is the input limit used when none is configured
	DefaultMaxInputLength = 4096
	// DefaultMaxRedirectDepth bounds nested redirect splicing
	DefaultMaxRedirectDepth = 16

	maxDidYouMean = 3
)

// Options configures an Engine
type Options struct {
	// Comparator defaults to CaseInsensitive
	Comparator Comparator
	MatchMode  MatchMode
	// MaxInputLength limits Execute and Complete input in bytes
	MaxInputLength   int
	MaxRedirectDepth int
	Logger           *cllog.Logger
	// Metrics may be nil
	Metrics *Metrics
}

// Engine dispatches input to the registered grammar trees. E is the type
// of the executor passed to Execute and Complete.
type Engine[E any] struct {
	options  Options
	logger   *cllog.Logger
	mu       sync.Mutex
	snapshot atomic.Pointer[registry]
}

// New creates an engine without registered roots
func New[E any](opts Options) (*Engine[E], error) {
	if opts.Comparator == nil {
		opts.Comparator = CaseInsensitive
	}
	if opts.Logger == nil {
		opts.Logger = cllog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.MaxRedirectDepth == 0 {
		opts.MaxRedirectDepth = DefaultMaxRedirectDepth
	}

	if opts.MaxInputLength < 0 || opts.MaxRedirectDepth < 0 {
		return nil, clerror.New("limits must not be negative").
			WithCode(clerror.CodeInvalidConfig).
			WithDetail("max_input_length", opts.MaxInputLength).
			WithDetail("max_redirect_depth", opts.MaxRedirectDepth)
	}
	switch opts.MatchMode {
	case MatchPrefix, MatchSubstring, MatchFuzzy:
	default:
		return nil, clerror.Newf("unknown match mode %d", int(opts.MatchMode)).
			WithCode(clerror.CodeInvalidConfig)
	}

	e := &Engine[E]{
		options: opts,
		logger:  opts.Logger.WithField("component", "chain-engine"),
	}
	e.snapshot.Store(&registry{})
	return e, nil
}

// Register compiles root and replaces any root with the same name. The
// root must be a literal. Chains of reachable redirect targets are
// compiled as well so grammar errors surface here.
func (e *Engine[E]) Register(root *Node) error {
	if root == nil || root.kind != KindLiteral {
		err := clerror.New("root must be a literal node").
			WithCode(clerror.CodeInvalidNode).
			WithOperation("register")
		e.logger.LogError(err)
		return err
	}

	chains, err := Compile(root)
	if err == nil {
		err = compileRedirects(root, make(map[*Node]bool))
	}
	if err != nil {
		e.logger.ErrorWithErr("grammar rejected", err, cllog.Fields{"root": root.name})
		return err
	}

	e.mu.Lock()
	next := e.snapshot.Load().with(root, chains, e.options.Comparator)
	e.snapshot.Store(next)
	e.mu.Unlock()

	total := len(next.chains())
	e.options.Metrics.setChains(total)
	e.logger.Debug("root registered", cllog.Fields{
		"root":         root.name,
		"chains":       len(chains),
		"total_chains": total,
	})
	return nil
}

// Unregister removes the root called name
func (e *Engine[E]) Unregister(name string) bool {
	e.mu.Lock()
	next, removed := e.snapshot.Load().without(name, e.options.Comparator)
	if removed {
		e.snapshot.Store(next)
	}
	e.mu.Unlock()

	if removed {
		e.options.Metrics.setChains(len(next.chains()))
		e.logger.Debug("root unregistered", cllog.Fields{"root": name})
	}
	return removed
}

// Roots returns the registered root names in registration order
func (e *Engine[E]) Roots() []string {
	return e.snapshot.Load().names()
}

// Chains returns all compiled chains in registration order
func (e *Engine[E]) Chains() []*Chain {
	return e.snapshot.Load().chains()
}

// Comparator returns the comparator names and completions are matched with
func (e *Engine[E]) Comparator() Comparator {
	return e.options.Comparator
}

func (e *Engine[E]) matcher() matcher {
	return matcher{maxDepth: e.options.MaxRedirectDepth}
}

func (e *Engine[E]) checkLength(text, operation string) error {
	if len(text) <= e.options.MaxInputLength {
		return nil
	}
	return clerror.Newf("input of %d bytes exceeds the limit of %d", len(text), e.options.MaxInputLength).
		WithCode(clerror.CodeInputTooLong).
		WithOperation(operation)
}

// Execute matches text and runs the action of the best matching chain.
// When nothing matches the error is a *NotFoundError.
func (e *Engine[E]) Execute(executor E, text string) (any, error) {
	start := time.Now()
	logger := e.logger.WithRequestID(uuid.NewString())

	if err := e.checkLength(text, "execute"); err != nil {
		e.options.Metrics.observeExecution(OutcomeRejected, nil, time.Since(start))
		logger.WarnWithErr("input rejected", err)
		return nil, err
	}

	snap := e.snapshot.Load()
	s := NewState(executor, e.options.Comparator, true)
	sc := NewScanner(text)

	var successes, failures []MatchOutcome
	if text != "" {
		successes, failures = e.matcher().findMatches(snap.chains(), s, sc, 0)
	}
	logger.Debug("input matched", cllog.Fields{
		"input":     text,
		"successes": len(successes),
		"failures":  len(failures),
	})

	result, err := e.dispatch(snap, s, sc, successes, failures)

	elapsed := time.Since(start)
	switch nf := err.(type) {
	case nil:
		e.options.Metrics.observeExecution(OutcomeSuccess, nil, elapsed)
		logger.Debug("command executed", cllog.Fields{"input": text, "duration": elapsed.String()})
	case *NotFoundError:
		e.options.Metrics.observeExecution(OutcomeNotFound, failures, elapsed)
		logger.Warn("command not found", cllog.Fields{
			"word":    nf.Word,
			"closest": len(nf.Closest),
		})
	default:
		e.options.Metrics.observeExecution(OutcomeFailed, nil, elapsed)
		logger.WarnWithErr("command failed", err, cllog.Fields{"input": text})
	}
	return result, err
}

// dispatch runs the single success, reduces several to the best one or
// reports that nothing matched
func (e *Engine[E]) dispatch(snap *registry, s *State, sc *Scanner, successes, failures []MatchOutcome) (any, error) {
	switch len(successes) {
	case 0:
		return nil, e.notFound(snap, s, sc, failures)
	case 1:
		return run(s, successes[0])
	default:
		return e.dispatch(snap, s, sc, []MatchOutcome{best(successes)}, nil)
	}
}

func (e *Engine[E]) notFound(snap *registry, s *State, sc *Scanner, failures []MatchOutcome) *NotFoundError {
	sc.SetCursor(0)
	word, err := sc.ReadWordOrString()
	if err != nil {
		word = ""
	}
	return &NotFoundError{
		Word:        word,
		Closest:     RankClosest(failures),
		Suggestions: didYouMean(word, snap.names(), s.Comparator()),
	}
}

// didYouMean returns up to three root names close to word
func didYouMean(word string, names []string, cmp Comparator) []string {
	if word == "" {
		return nil
	}
	for _, name := range names {
		if cmp.Equal(name, word) {
			return nil
		}
	}

	var ranks fuzzy.Ranks
	if cmp.CaseSensitive() {
		ranks = fuzzy.RankFind(word, names)
	} else {
		ranks = fuzzy.RankFindFold(word, names)
	}
	seen := make(map[string]bool, len(ranks))
	for _, r := range ranks {
		seen[r.Target] = true
	}
	for i, name := range names {
		if seen[name] {
			continue
		}
		a, b := word, name
		if !cmp.CaseSensitive() {
			a, b = fold(a), fold(b)
		}
		if d := fuzzy.LevenshteinDistance(a, b); d <= 2 {
			ranks = append(ranks, fuzzy.Rank{Source: word, Target: name, Distance: d, OriginalIndex: i})
		}
	}
	sort.Stable(ranks)

	out := make([]string, 0, maxDidYouMean)
	for _, r := range ranks {
		if len(out) == maxDidYouMean {
			break
		}
		out = append(out, r.Target)
	}
	return out
}

// run stores the chain's arguments in s and invokes its action
func run(s *State, out MatchOutcome) (result any, err error) {
	for i, n := range out.Chain.nodes {
		if n.ProvidesArgument() && i < len(out.Tokens) {
			s.set(n.name, out.Tokens[i].Value)
		}
	}

	action := out.Chain.Action()
	if action == nil {
		return nil, clerror.Newf("chain %q has no action", out.Chain.Format(false)).
			WithCode(clerror.CodeInternal)
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("command %q failed: %w", out.Chain.String(),
				clerror.Wrap(&panicError{value: r}, "action panicked").WithCode(clerror.CodeInternal))
		}
	}()
	result, err = action(s)
	if err != nil {
		return nil, fmt.Errorf("command %q failed: %w", out.Chain.String(), err)
	}
	return result, nil
}

// Complete returns the completions for text. Actions and error hooks are
// not run.
func (e *Engine[E]) Complete(executor E, text string) []Completion {
	start := time.Now()
	logger := e.logger.WithRequestID(uuid.NewString())

	if err := e.checkLength(text, "complete"); err != nil {
		logger.WarnWithErr("input rejected", err)
		return nil
	}

	snap := e.snapshot.Load()
	s := NewState(executor, e.options.Comparator, false)
	sc := NewScanner(text)
	c := newCompleter(s, sc, e.options.MatchMode)

	if text == "" {
		for _, name := range snap.names() {
			c.add(0, name)
		}
	} else {
		c.fromOutcomes(e.matcher().findMatches(snap.chains(), s, sc, 0))
	}
	out := c.result()

	elapsed := time.Since(start)
	e.options.Metrics.observeCompletion(len(out), elapsed)
	logger.Debug("completions computed", cllog.Fields{
		"input":    text,
		"results":  len(out),
		"duration": elapsed.String(),
	})
	return out
}
