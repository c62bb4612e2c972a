// File: text.go
// Title: Text Value Types
// Description: Word, quotable string and greedy string types, enumerations
//              of fixed names, booleans and closure based dynamic types.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package types

import (
	"strings"

	"github.com/msto63/chainlib/foundation/chain"
)

// TextWeight is the weight of free text types
const TextWeight = 10

type textMode int

const (
	textWord textMode = iota
	textString
	textGreedy
)

// TextType parses free text
type TextType struct {
	mode textMode
}

// Word parses up to the next space
func Word() *TextType { return &TextType{mode: textWord} }

// String parses a word or a single or double quoted string
func String() *TextType { return &TextType{mode: textString} }

// Greedy consumes all remaining input
func Greedy() *TextType { return &TextType{mode: textGreedy} }

// Weight implements chain.Weighted
func (t *TextType) Weight() int { return TextWeight }

// Parse implements chain.ValueType
func (t *TextType) Parse(_ *chain.State, sc *chain.Scanner) (any, error) {
	var (
		text string
		err  error
	)
	switch t.mode {
	case textString:
		text, err = sc.ReadWordOrString()
		if err != nil {
			return nil, err
		}
		return text, nil
	case textGreedy:
		text = sc.ReadRemaining()
	default:
		text = sc.ReadWord()
	}
	if text == "" {
		return nil, chain.Expected("text")
	}
	return text, nil
}

// EnumType accepts one of a fixed set of names, ignoring case
type EnumType struct {
	values []string
}

// Enum creates an enumeration of values. The parsed value is the
// canonical spelling from values.
func Enum(values ...string) *EnumType {
	v := make([]string, len(values))
	copy(v, values)
	return &EnumType{values: v}
}

// Values returns the accepted names
func (t *EnumType) Values() []string {
	out := make([]string, len(t.values))
	copy(out, t.values)
	return out
}

// Parse implements chain.ValueType
func (t *EnumType) Parse(_ *chain.State, sc *chain.Scanner) (any, error) {
	word := sc.ReadWord()
	for _, v := range t.values {
		if strings.EqualFold(v, word) {
			return v, nil
		}
	}
	return nil, chain.Rejectf("unknown value '%s'", word)
}

// Suggest implements chain.Suggester
func (t *EnumType) Suggest(_ *chain.State, _ *chain.Scanner) []string {
	return t.Values()
}

// BooleanType parses true/false and common aliases
type BooleanType struct{}

// Boolean creates a boolean type
func Boolean() *BooleanType { return &BooleanType{} }

// Parse implements chain.ValueType
func (BooleanType) Parse(_ *chain.State, sc *chain.Scanner) (any, error) {
	switch strings.ToLower(sc.ReadWord()) {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	default:
		return nil, chain.Expected("boolean")
	}
}

// Suggest implements chain.Suggester
func (BooleanType) Suggest(_ *chain.State, _ *chain.Scanner) []string {
	return []string{"true", "false"}
}

// ParseFunc parses a value for a DynamicType
type ParseFunc func(s *chain.State, sc *chain.Scanner) (any, error)

// SuggestFunc suggests values for a DynamicType
type SuggestFunc func(s *chain.State, sc *chain.Scanner) []string

// DynamicType is a value type built from closures
type DynamicType struct {
	parse   ParseFunc
	suggest SuggestFunc
	weight  int
}

// Dynamic creates a type from parse and an optional suggest function
func Dynamic(parse ParseFunc, suggest SuggestFunc) *DynamicType {
	return &DynamicType{parse: parse, suggest: suggest}
}

// WithWeight sets the disambiguation weight
func (t *DynamicType) WithWeight(weight int) *DynamicType {
	t.weight = weight
	return t
}

// Weight implements chain.Weighted
func (t *DynamicType) Weight() int { return t.weight }

// Parse implements chain.ValueType
func (t *DynamicType) Parse(s *chain.State, sc *chain.Scanner) (any, error) {
	if t.parse == nil {
		return nil, chain.Rejectf("no parser configured")
	}
	return t.parse(s, sc)
}

// Suggest implements chain.Suggester
func (t *DynamicType) Suggest(s *chain.State, sc *chain.Scanner) []string {
	if t.suggest == nil {
		return nil
	}
	return t.suggest(s, sc)
}
