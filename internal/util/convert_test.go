// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package util

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/napalu/dispatch/errs"
	"github.com/napalu/dispatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertValue(t *testing.T) {
	tests := []struct {
		name  string
		value string
		typ   types.ValueType
		want  any
	}{
		{"string", "hello", types.TypeString, "hello"},
		{"decimal int", "42", types.TypeInt, 42},
		{"negative int", "-7", types.TypeInt, -7},
		{"leading zeros are decimal", "010", types.TypeInt, 10},
		{"float", "2.5", types.TypeFloat, 2.5},
		{"bool", "true", types.TypeBool, true},
		{"bool short form", "0", types.TypeBool, false},
		{"duration", "1m30s", types.TypeDuration, 90 * time.Second},
		{"enum stays raw", "fast", types.TypeEnumSet, "fast"},
		{"verbosity stays raw", "-EW", types.TypeVerbosity, "-EW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertValue(tt.value, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertValue_Time(t *testing.T) {
	got, err := ConvertValue("2024-03-01", types.TypeTime)
	require.NoError(t, err)
	ts, ok := got.(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, time.March, ts.Month())
	assert.Equal(t, 1, ts.Day())
}

func TestConvertValue_Errors(t *testing.T) {
	tests := []struct {
		name  string
		value string
		typ   types.ValueType
		want  error
	}{
		{"int", "abc", types.TypeInt, errs.ErrParseInt},
		{"hex prefix", "0x10", types.TypeInt, errs.ErrParseInt},
		{"digit separators", "1_000", types.TypeInt, errs.ErrParseInt},
		{"float", "x1", types.TypeFloat, errs.ErrParseFloat},
		{"bool", "maybe", types.TypeBool, errs.ErrParseBool},
		{"duration", "soon", types.TypeDuration, errs.ErrParseDuration},
		{"time", "not a date", types.TypeTime, errs.ErrParseTime},
		{"overflow", "99999999999999999999999", types.TypeInt, errs.ErrParseOverflow},
		{"unsupported", "x", types.ValueType(99), errs.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvertValue(tt.value, tt.typ)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestConvertValue_OverflowWrapsRangeError(t *testing.T) {
	_, err := ConvertValue("99999999999999999999999", types.TypeInt)
	assert.ErrorIs(t, err, strconv.ErrRange)
}

func TestConvertList(t *testing.T) {
	got, err := ConvertList([]string{"1", "2", "3"}, types.TypeInt)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)

	got, err = ConvertList([]string{"a", "b"}, types.TypeString)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	_, err = ConvertList([]string{"1", "x"}, types.TypeFloat)
	assert.ErrorIs(t, err, errs.ErrParseFloat)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "d"}, SplitList("a,b|c d", nil))
	assert.Equal(t, []string{"a,b", "c"}, SplitList("a,b;c", func(r rune) bool { return r == ';' }))
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		typ      types.ValueType
		sequence bool
		want     any
	}{
		{"nil", nil, types.TypeInt, false, nil},
		{"int64 widened", int64(4), types.TypeInt, false, 4},
		{"int for float", 3, types.TypeFloat, false, 3.0},
		{"string parsed", "12", types.TypeInt, false, 12},
		{"string kept", "x", types.TypeString, false, "x"},
		{"sequence of strings", []string{"1", "2"}, types.TypeInt, true, []int{1, 2}},
		{"sequence from any", []any{1, 2}, types.TypeInt, true, []int{1, 2}},
		{"sequence from inline", "a,b", types.TypeString, true, []string{"a", "b"}},
		{"typed sequence kept", []int{5}, types.TypeInt, true, []int{5}},
		{"uint widened", uint(7), types.TypeInt, false, 7},
		{"uint64 widened", uint64(7), types.TypeInt, false, 7},
		{"bool kept", true, types.TypeBool, false, true},
		{"duration kept", time.Second, types.TypeDuration, false, time.Second},
		{"leading zeros parsed as decimal", "010", types.TypeInt, false, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeValue(tt.value, tt.typ, tt.sequence)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeValue_RejectsMismatchedDefaults(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		typ      types.ValueType
		sequence bool
		want     error
	}{
		{"bool for int", true, types.TypeInt, false, errs.ErrInvalidValue},
		{"int for string", 5, types.TypeString, false, errs.ErrInvalidValue},
		{"float for int", 1.5, types.TypeInt, false, errs.ErrInvalidValue},
		{"uint64 out of range", uint64(1) << 63, types.TypeInt, false, errs.ErrParseOverflow},
		{"typed sequence of another type", []bool{true}, types.TypeInt, true, errs.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeValue(tt.value, tt.typ, tt.sequence)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "a,b", FormatValue([]string{"a", "b"}))
	assert.Equal(t, "5", FormatValue(5))
	assert.Equal(t, "1m0s", FormatValue(time.Minute))
}
