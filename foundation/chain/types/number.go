// File: number.go
// Title: Numeric Value Types
// Description: Integer and float value types with optional inclusive
//              bounds and bound-derived suggestions.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package types

import (
	"fmt"
	"math"
	"strconv"

	"github.com/msto63/chainlib/foundation/chain"
)

// NumberWeight is the weight of numeric types
const NumberWeight = 50

// IntegerType parses base 10 integers
type IntegerType struct {
	min, max       int
	hasMin, hasMax bool
}

// Integer accepts any int
func Integer() *IntegerType {
	return &IntegerType{}
}

// MinInteger accepts ints >= min
func MinInteger(min int) *IntegerType {
	return &IntegerType{min: min, hasMin: true}
}

// MaxInteger accepts ints <= max
func MaxInteger(max int) *IntegerType {
	return &IntegerType{max: max, hasMax: true}
}

// IntegerRange accepts ints in [min, max]. It panics if min > max.
func IntegerRange(min, max int) *IntegerType {
	if min > max {
		panic(fmt.Sprintf("types: integer range min %d is greater than max %d", min, max))
	}
	return &IntegerType{min: min, max: max, hasMin: true, hasMax: true}
}

// Weight implements chain.Weighted
func (t *IntegerType) Weight() int { return NumberWeight }

// Parse implements chain.ValueType
func (t *IntegerType) Parse(_ *chain.State, sc *chain.Scanner) (any, error) {
	text, err := sc.ReadIntegerNumber()
	if err != nil {
		return nil, chain.Expected(t.describe())
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return nil, chain.Expected(t.describe())
	}
	if t.hasMin && v < t.min {
		return nil, chain.Rejectf("number is too small (min: %d)", t.min)
	}
	if t.hasMax && v > t.max {
		return nil, chain.Rejectf("number is too big (max: %d)", t.max)
	}
	return v, nil
}

func (t *IntegerType) describe() string {
	switch {
	case t.hasMin && t.hasMax:
		return fmt.Sprintf("int >= %d & <= %d", t.min, t.max)
	case t.hasMin:
		return fmt.Sprintf("int >= %d", t.min)
	case t.hasMax:
		return fmt.Sprintf("int <= %d", t.max)
	default:
		return "int"
	}
}

// Suggest implements chain.Suggester
func (t *IntegerType) Suggest(_ *chain.State, _ *chain.Scanner) []string {
	var out []string
	add := func(v int) { out = append(out, strconv.Itoa(v)) }

	switch {
	case t.hasMin && t.hasMax:
		// unsigned arithmetic keeps the full int range from overflowing
		diff := uint64(t.max) - uint64(t.min)
		step := diff / 10
		if step == 0 {
			step = 1
		}
		for off := uint64(0); ; off += step {
			add(t.min + int(off))
			if diff-off < step {
				break
			}
		}
		if out[len(out)-1] != strconv.Itoa(t.max) {
			add(t.max)
		}
	case t.hasMin:
		for i := 0; i <= 10 && t.min <= math.MaxInt-i; i++ {
			add(t.min + i)
		}
	case t.hasMax:
		for i := 10; i >= 0; i-- {
			if t.max >= math.MinInt+i {
				add(t.max - i)
			}
		}
	default:
		for v := -5; v <= 10; v++ {
			add(v)
		}
	}
	return out
}

// FloatType parses decimal numbers; ',' and '.' are both accepted
type FloatType struct {
	min, max       float64
	hasMin, hasMax bool
}

// Float accepts any finite float64
func Float() *FloatType {
	return &FloatType{}
}

// MinFloat accepts values >= min
func MinFloat(min float64) *FloatType {
	return &FloatType{min: min, hasMin: true}
}

// MaxFloat accepts values <= max
func MaxFloat(max float64) *FloatType {
	return &FloatType{max: max, hasMax: true}
}

// FloatRange accepts values in [min, max]. It panics if min > max.
func FloatRange(min, max float64) *FloatType {
	if min > max {
		panic(fmt.Sprintf("types: float range min %g is greater than max %g", min, max))
	}
	return &FloatType{min: min, max: max, hasMin: true, hasMax: true}
}

// Weight implements chain.Weighted
func (t *FloatType) Weight() int { return NumberWeight }

// Parse implements chain.ValueType
func (t *FloatType) Parse(_ *chain.State, sc *chain.Scanner) (any, error) {
	text, err := sc.ReadDecimalNumber()
	if err != nil {
		return nil, chain.Expected(t.describe())
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(v, 0) {
		return nil, chain.Expected(t.describe())
	}
	if t.hasMin && v < t.min {
		return nil, chain.Rejectf("number is too small (min: %s)", formatFloat(t.min))
	}
	if t.hasMax && v > t.max {
		return nil, chain.Rejectf("number is too big (max: %s)", formatFloat(t.max))
	}
	return v, nil
}

func (t *FloatType) describe() string {
	switch {
	case t.hasMin && t.hasMax:
		return fmt.Sprintf("float >= %s & <= %s", formatFloat(t.min), formatFloat(t.max))
	case t.hasMin:
		return "float >= " + formatFloat(t.min)
	case t.hasMax:
		return "float <= " + formatFloat(t.max)
	default:
		return "float"
	}
}

// Suggest implements chain.Suggester
func (t *FloatType) Suggest(_ *chain.State, _ *chain.Scanner) []string {
	var out []string
	add := func(v float64) { out = append(out, formatFloat(v)) }

	switch {
	case t.hasMin && t.hasMax:
		step := math.Max(1, (t.max-t.min)/10)
		for i := 0; i <= 10; i++ {
			v := t.min + float64(i)*step
			if v > t.max {
				break
			}
			add(v)
		}
		if out[len(out)-1] != formatFloat(t.max) {
			add(t.max)
		}
	case t.hasMin:
		for i := 0; i <= 10; i++ {
			add(t.min + float64(i))
		}
	case t.hasMax:
		for i := 10; i >= 0; i-- {
			add(t.max - float64(i))
		}
	default:
		for v := -5; v <= 10; v++ {
			add(float64(v))
		}
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
