// File: types_test.go
// Title: Value Type Tests
// Description: Parsing, bounds and suggestions of the leaf value types.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/chainlib/foundation/chain"
)

func parse(vt chain.ValueType, input string) (any, *chain.Scanner, error) {
	sc := chain.NewScanner(input)
	v, err := vt.Parse(chain.NewState(nil, chain.CaseInsensitive, true), sc)
	return v, sc, err
}

func TestInteger_Parse(t *testing.T) {
	tests := []struct {
		name    string
		typ     *IntegerType
		input   string
		want    int
		wantErr string
	}{
		{"plain", Integer(), "42", 42, ""},
		{"negative", Integer(), "-7", -7, ""},
		{"not a number", Integer(), "abc", 0, "expected int"},
		{"too small", MinInteger(10), "9", 0, "too small"},
		{"too big", MaxInteger(10), "11", 0, "too big"},
		{"range describe", IntegerRange(1, 5), "x", 0, "expected int >= 1 & <= 5"},
		{"range ok", IntegerRange(1, 5), "5", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _, err := parse(tt.typ, tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				var pe *chain.ParseError
				assert.True(t, errors.As(err, &pe))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestInteger_StopsAtSpace(t *testing.T) {
	v, sc, err := parse(Integer(), "12 34")
	require.NoError(t, err)
	assert.Equal(t, 12, v)
	assert.Equal(t, 2, sc.Cursor())
}

func TestInteger_Suggest(t *testing.T) {
	assert.Equal(t,
		[]string{"0", "10", "20", "30", "40", "50", "60", "70", "80", "90", "100"},
		IntegerRange(0, 100).Suggest(nil, nil))
	assert.Equal(t, []string{"0", "1", "2", "3"}, IntegerRange(0, 3).Suggest(nil, nil))
	assert.Equal(t, []string{"7"}, IntegerRange(7, 7).Suggest(nil, nil))
	assert.Len(t, MinInteger(5).Suggest(nil, nil), 11)
	assert.Equal(t, "5", MinInteger(5).Suggest(nil, nil)[0])
	assert.Equal(t, "-5", MaxInteger(5).Suggest(nil, nil)[0])
	assert.Len(t, Integer().Suggest(nil, nil), 16)
}

func TestIntegerRange_PanicsOnInvertedBounds(t *testing.T) {
	assert.Panics(t, func() { IntegerRange(5, 1) })
	assert.Panics(t, func() { FloatRange(5, 1) })
}

func TestFloat_Parse(t *testing.T) {
	v, _, err := parse(Float(), "1,5")
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	v, _, err = parse(FloatRange(0, 1), "0.25")
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)

	_, _, err = parse(FloatRange(0, 1), "2")
	assert.ErrorContains(t, err, "too big (max: 1)")

	_, _, err = parse(MinFloat(0), "x")
	assert.ErrorContains(t, err, "expected float >= 0")
}

func TestFloat_Suggest(t *testing.T) {
	assert.Equal(t, []string{"0", "1", "2", "2.5"}, FloatRange(0, 2.5).Suggest(nil, nil))
	assert.Len(t, Float().Suggest(nil, nil), 16)
}

func TestText(t *testing.T) {
	v, sc, err := parse(Word(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
	assert.Equal(t, 5, sc.Cursor())

	v, _, err = parse(String(), `"hello world" rest`)
	require.NoError(t, err)
	assert.Equal(t, "hello world", v)

	v, sc, err = parse(Greedy(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", v)
	assert.False(t, sc.HasMore())

	_, _, err = parse(Word(), " x")
	assert.Error(t, err)

	_, _, err = parse(String(), `"open`)
	var se *chain.ScanError
	assert.True(t, errors.As(err, &se))

	assert.Equal(t, TextWeight, Word().Weight())
}

func TestEnum(t *testing.T) {
	e := Enum("Fast", "Safe")
	v, _, err := parse(e, "fast")
	require.NoError(t, err)
	assert.Equal(t, "Fast", v)

	_, _, err = parse(e, "slow")
	assert.ErrorContains(t, err, "unknown value 'slow'")

	assert.Equal(t, []string{"Fast", "Safe"}, e.Suggest(nil, nil))
}

func TestBoolean(t *testing.T) {
	for input, want := range map[string]bool{"true": true, "ON": true, "no": false, "false": false} {
		v, _, err := parse(Boolean(), input)
		require.NoError(t, err, input)
		assert.Equal(t, want, v, input)
	}
	_, _, err := parse(Boolean(), "maybe")
	assert.Error(t, err)
}

func TestDynamic(t *testing.T) {
	d := Dynamic(func(_ *chain.State, sc *chain.Scanner) (any, error) {
		return len(sc.ReadWord()), nil
	}, func(*chain.State, *chain.Scanner) []string {
		return []string{"abc"}
	}).WithWeight(30)

	v, _, err := parse(d, "four")
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	assert.Equal(t, []string{"abc"}, d.Suggest(nil, nil))
	assert.Equal(t, 30, d.Weight())

	_, _, err = parse(Dynamic(nil, nil), "x")
	assert.Error(t, err)
	assert.Nil(t, Dynamic(nil, nil).Suggest(nil, nil))
}
