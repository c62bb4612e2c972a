// File: node.go
// Title: Grammar Nodes
// Description: The grammar tree element. A node is one of a closed set of
//              kinds (literal, typed value, list, array, raw arguments,
//              redirect) and carries children, a weight, an optional guard,
//              validator, completion override, error hook and action.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Guards and completion callbacks recover panics

package chain

import (
	"fmt"
	"sync"

	clerror "github.com/msto63/chainlib/foundation/core/error"
)

// Kind is the variant of a node
type Kind int

const (
	// KindLiteral matches its own name
	KindLiteral Kind = iota
	// KindTyped parses one value of a ValueType
	KindTyped
	// KindList parses space separated values up to the end of input
	KindList
	// KindArray parses comma separated values
	KindArray
	// KindRawArgs collects all remaining words as []string
	KindRawArgs
	// KindRedirect hands matching over to the chains of another node
	KindRedirect
)

// LiteralWeight is the weight of literal nodes
const LiteralWeight = 100

// maxRedirectHops bounds redirect-to-redirect walks
const maxRedirectHops = 16

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindTyped:
		return "typed"
	case KindList:
		return "list"
	case KindArray:
		return "array"
	case KindRawArgs:
		return "raw"
	case KindRedirect:
		return "redirect"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is an element of a grammar tree. Nodes are built once, registered
// and must not be modified afterwards.
type Node struct {
	kind        Kind
	name        string
	description string
	children    []*Node

	valueType ValueType
	completer RawCompleter
	target    *Node

	guard       Guard
	validator   Validator
	completions CompletionProvider
	onError     ErrorHook
	action      Action

	redirectOnce   sync.Once
	redirectChains []*Chain
	redirectErr    error
}

// Literal creates a node matching its name
func Literal(name string) *Node {
	return &Node{kind: KindLiteral, name: name}
}

// Typed creates a node parsing a single value
func Typed(name string, t ValueType) *Node {
	return &Node{kind: KindTyped, name: name, valueType: t}
}

// List creates a node parsing space separated values of t until the end
// of input. It must be the last node of its chain.
func List(name string, t ValueType) *Node {
	return &Node{kind: KindList, name: name, valueType: t}
}

// Array creates a node parsing comma separated values of t
func Array(name string, t ValueType) *Node {
	return &Node{kind: KindArray, name: name, valueType: t}
}

// RawArgs creates a node collecting all remaining words. completer may be nil.
func RawArgs(name string, completer RawCompleter) *Node {
	return &Node{kind: KindRawArgs, name: name, completer: completer}
}

// Redirect creates a node continuing matching with the chains of target
func Redirect(name string, target *Node) *Node {
	return &Node{kind: KindRedirect, name: name, target: target}
}

// Then appends children and returns the node
func (n *Node) Then(children ...*Node) *Node {
	n.children = append(n.children, children...)
	return n
}

// Describe sets the description
func (n *Node) Describe(description string) *Node {
	n.description = description
	return n
}

// Requires sets the guard
func (n *Node) Requires(guard Guard) *Node {
	n.guard = guard
	return n
}

// Validate sets the value validator
func (n *Node) Validate(validator Validator) *Node {
	n.validator = validator
	return n
}

// Suggest overrides the default suggestions
func (n *Node) Suggest(provider CompletionProvider) *Node {
	n.completions = provider
	return n
}

// OnError sets the error hook
func (n *Node) OnError(hook ErrorHook) *Node {
	n.onError = hook
	return n
}

// Executes sets the terminal action
func (n *Node) Executes(action Action) *Node {
	n.action = action
	return n
}

// Kind returns the variant
func (n *Node) Kind() Kind { return n.kind }

// Name returns the argument or literal name
func (n *Node) Name() string { return n.name }

// Description returns the description, possibly empty
func (n *Node) Description() string { return n.description }

// Target returns the redirect target, nil for other kinds
func (n *Node) Target() *Node { return n.target }

// HasAction reports whether the node terminates a chain
func (n *Node) HasAction() bool { return n.action != nil }

// Children returns the children in insertion order
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Weight returns the disambiguation weight
func (n *Node) Weight() int {
	switch n.kind {
	case KindLiteral:
		return LiteralWeight
	case KindTyped, KindList, KindArray:
		return weightOf(n.valueType)
	default:
		return 0
	}
}

// ProvidesArgument reports whether a match stores a value under the name
func (n *Node) ProvidesArgument() bool {
	return n.kind != KindLiteral && n.kind != KindRedirect
}

// TargetChains returns the compiled chains of the redirect target. They
// are compiled on first use and cached.
func (n *Node) TargetChains() ([]*Chain, error) {
	if n.kind != KindRedirect {
		return nil, buildError(clerror.CodeInvalidNode, "node %q is not a redirect", n.name)
	}
	n.redirectOnce.Do(func() {
		n.redirectChains, n.redirectErr = Compile(n.target)
	})
	return n.redirectChains, n.redirectErr
}

// allows evaluates the guard. A panicking guard is reported as err.
func (n *Node) allows(s *State) (ok bool, err error) {
	if n.guard == nil {
		return true, nil
	}
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, &panicError{value: r}
		}
	}()
	return n.guard(s), nil
}

// parse reads the node's value. Panics are recovered into errors and the
// validator runs on success.
func (n *Node) parse(s *State, sc *Scanner) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, err = nil, &panicError{value: r}
		}
	}()

	switch n.kind {
	case KindLiteral:
		value, err = n.parseLiteral(s, sc)
	case KindTyped:
		value, err = n.valueType.Parse(s, sc)
	case KindList:
		value, err = n.parseList(s, sc)
	case KindArray:
		value, err = n.parseArray(s, sc)
	case KindRawArgs:
		value, err = n.parseRaw(sc)
	case KindRedirect:
		err = fmt.Errorf("redirect %q is not matchable", n.name)
	}
	if err != nil {
		return nil, n.named(err)
	}
	if n.validator != nil && !n.validator(value) {
		return nil, &ParseError{Argument: n.name, Reason: "invalid value"}
	}
	return value, nil
}

// named fills in the node name on anonymous parse errors
func (n *Node) named(err error) error {
	if pe, ok := err.(*ParseError); ok && pe.Argument == "" {
		return &ParseError{Argument: n.name, Reason: pe.Reason}
	}
	return err
}

func (n *Node) parseLiteral(s *State, sc *Scanner) (any, error) {
	word, err := sc.ReadWordOrString()
	if err != nil {
		return nil, err
	}
	if !s.Comparator().Equal(n.name, word) {
		return nil, Expected(fmt.Sprintf("'%s'", n.name))
	}
	return n.name, nil
}

func (n *Node) parseList(s *State, sc *Scanner) (any, error) {
	var values []any
	for sc.HasMore() {
		v, err := n.valueType.Parse(s, sc)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if sc.HasMore() {
			if c, _ := sc.Read(); c != ' ' {
				return nil, Expected("space")
			}
			if !sc.HasMore() {
				return nil, Expected("value")
			}
		}
	}
	return values, nil
}

// readArrayPart reads one array element, quoted or up to ',' or ' '
func readArrayPart(sc *Scanner) (string, error) {
	if c, ok := sc.Peek(0); ok && (c == '"' || c == '\'') {
		return sc.ReadString()
	}
	return sc.ReadUntilAny(false, ',', ' '), nil
}

// parseArrayPart parses one element; the value must consume the whole part
func (n *Node) parseArrayPart(s *State, part string) (any, error) {
	ps := NewScanner(part)
	v, err := n.valueType.Parse(s, ps)
	if err != nil {
		return nil, err
	}
	if ps.HasMore() {
		return nil, Rejectf("unexpected %q after value", ps.PeekRemaining())
	}
	return v, nil
}

func (n *Node) parseArray(s *State, sc *Scanner) (any, error) {
	var values []any
	for sc.HasMore() {
		part, err := readArrayPart(sc)
		if err != nil {
			return nil, err
		}
		v, err := n.parseArrayPart(s, part)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if next, ok := sc.Peek(0); ok {
			switch next {
			case ',':
				_ = sc.Skip(1)
			case ' ':
				return values, nil
			default:
				return nil, Expected("comma or space")
			}
		}
	}
	return values, nil
}

func (n *Node) parseRaw(sc *Scanner) (any, error) {
	var args []string
	for sc.HasMore() {
		arg, err := sc.ReadWordOrString()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if sc.HasMore() {
			if c, _ := sc.Read(); c != ' ' {
				return nil, Expected("space")
			}
			if !sc.HasMore() {
				return nil, Expected("value")
			}
		}
	}
	return args, nil
}

// suggestions returns candidates for the input at the scanner cursor and
// how many bytes of that input they replace from the cursor on
func (n *Node) suggestions(s *State, sc *Scanner) ([]string, int) {
	if n.completions != nil {
		return callProvider(n.completions, s, sc), 0
	}
	switch n.kind {
	case KindLiteral:
		return []string{n.name}, 0
	case KindTyped:
		return suggestValues(n.valueType, s, sc), 0
	case KindList:
		return n.suggestList(s, sc)
	case KindArray:
		return n.suggestArray(s, sc)
	case KindRawArgs:
		return n.suggestRaw(s, sc)
	case KindRedirect:
		target := n.target
		for i := 0; target != nil && target.kind == KindRedirect && i < maxRedirectHops; i++ {
			target = target.target
		}
		if target == nil || target.kind == KindRedirect {
			return nil, 0
		}
		return target.suggestions(s, sc)
	}
	return nil, 0
}

// tryParse parses a value for lookahead, reporting failure as false
func (n *Node) tryParse(s *State, sc *Scanner) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	_, err := n.valueType.Parse(s, sc)
	return err == nil
}

func (n *Node) suggestList(s *State, sc *Scanner) ([]string, int) {
	if !sc.HasMore() {
		return suggestValues(n.valueType, s, sc), 0
	}

	start := sc.Cursor()
	lastCursor := start
	endsWithSpace := false
	for sc.HasMore() {
		lastCursor = sc.Cursor()
		if !n.tryParse(s, sc) {
			break
		}
		if !sc.HasMore() {
			break
		}
		if c, _ := sc.Read(); c != ' ' {
			break
		}
		if !sc.HasMore() {
			endsWithSpace = true
		}
	}

	trim := lastCursor - start
	if endsWithSpace {
		trim = sc.Len() - start
	}
	return suggestValues(n.valueType, s, NewScanner(sc.Input()[start+trim:])), trim
}

func (n *Node) suggestArray(s *State, sc *Scanner) ([]string, int) {
	if !sc.HasMore() {
		return suggestValues(n.valueType, s, sc), 0
	}

	start := sc.Cursor()
	lastCursor := start
	for sc.HasMore() {
		lastCursor = sc.Cursor()
		part, err := readArrayPart(sc)
		if err != nil {
			break
		}
		if _, err := n.parseArrayPart(s, part); err != nil {
			break
		}
		next, ok := sc.Peek(0)
		if !ok {
			break
		}
		if next != ',' {
			break
		}
		_ = sc.Skip(1)
		if !sc.HasMore() {
			lastCursor = sc.Cursor()
		}
	}

	trim := lastCursor - start
	return suggestValues(n.valueType, s, NewScanner(sc.Input()[lastCursor:])), trim
}

func (n *Node) suggestRaw(s *State, sc *Scanner) ([]string, int) {
	if n.completer == nil {
		return nil, 0
	}
	if !sc.HasMore() {
		return callRaw(n.completer, s, nil), 0
	}

	start := sc.Cursor()
	lastCursor := start
	endsWithSpace := false
	unreadable := false
	var args []string
	for sc.HasMore() {
		lastCursor = sc.Cursor()
		arg, err := sc.ReadWordOrString()
		if err != nil {
			unreadable = true
			break
		}
		args = append(args, arg)
		if !sc.HasMore() {
			break
		}
		if c, _ := sc.Read(); c != ' ' {
			break
		}
		if !sc.HasMore() {
			endsWithSpace = true
		}
	}

	switch {
	case endsWithSpace:
		return callRaw(n.completer, s, args), sc.Len() - start
	case unreadable:
		return callRaw(n.completer, s, args), lastCursor - start
	case len(args) == 0:
		return callRaw(n.completer, s, nil), 0
	default:
		return callRaw(n.completer, s, args[:len(args)-1]), lastCursor - start
	}
}
