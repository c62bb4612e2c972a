// File: sort.go
// Title: Completion Ordering
// Description: Numeric aware ordering of completion texts. Integers and
//              decimals compare by magnitude with arbitrary precision,
//              everything else by the active comparator.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package chain

import (
	"math/big"
	"regexp"
	"sort"
	"strings"
)

var (
	integerText = regexp.MustCompile(`^[+-]?\d+$`)
	decimalText = regexp.MustCompile(`^[+-]?(?:\d+(\.\d*)?|\d*\.\d+)$`)
)

// compareText orders two completion texts
func compareText(cmp Comparator, a, b string) int {
	if integerText.MatchString(a) && integerText.MatchString(b) {
		x, okA := new(big.Int).SetString(strings.TrimPrefix(a, "+"), 10)
		y, okB := new(big.Int).SetString(strings.TrimPrefix(b, "+"), 10)
		if okA && okB {
			return x.Cmp(y)
		}
	}
	if decimalText.MatchString(a) && decimalText.MatchString(b) {
		x, okA := parseDecimal(a)
		y, okB := parseDecimal(b)
		if okA && okB {
			return x.Cmp(y)
		}
	}
	return cmp.Compare(a, b)
}

// parseDecimal parses texts like "1.", ".5" and "-.5" exactly
func parseDecimal(s string) (*big.Rat, bool) {
	sign := ""
	if s[0] == '+' || s[0] == '-' {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	s = strings.TrimSuffix(s, ".")
	return new(big.Rat).SetString(sign + s)
}

func sortCompletions(cmp Comparator, completions []Completion) {
	sort.SliceStable(completions, func(i, j int) bool {
		if c := compareText(cmp, completions[i].Text, completions[j].Text); c != 0 {
			return c < 0
		}
		return completions[i].Offset < completions[j].Offset
	})
}
