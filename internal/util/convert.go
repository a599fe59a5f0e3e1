// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package util

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/napalu/dispatch/errs"
	"github.com/napalu/dispatch/types"
)

// DefaultListDelimiter splits inline list values on ',', '|' and ' '
func DefaultListDelimiter(matchOn rune) bool {
	return matchOn == ',' || matchOn == '|' || matchOn == ' '
}

// ConvertValue converts a single token to the Go value of t.
// TypeEnumSet and TypeVerbosity values are returned unchanged: their
// validation needs the parameter they belong to.
func ConvertValue(value string, t types.ValueType) (any, error) {
	switch t {
	case types.TypeString, types.TypeEnumSet, types.TypeVerbosity:
		return value, nil
	case types.TypeInt:
		val, err := strconv.ParseInt(strings.TrimSpace(value), 10, strconv.IntSize)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
				return nil, errs.ErrParseOverflow.WithArgs(value).Wrap(err)
			}
			return nil, errs.ErrParseInt.WithArgs(value)
		}
		return int(val), nil
	case types.TypeFloat:
		val, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
				return nil, errs.ErrParseOverflow.WithArgs(value).Wrap(err)
			}
			return nil, errs.ErrParseFloat.WithArgs(value)
		}
		return val, nil
	case types.TypeBool:
		val, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, errs.ErrParseBool.WithArgs(value)
		}
		return val, nil
	case types.TypeTime:
		val, err := dateparse.ParseLocal(value)
		if err != nil {
			return nil, errs.ErrParseTime.WithArgs(value)
		}
		return val, nil
	case types.TypeDuration:
		val, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return nil, errs.ErrParseDuration.WithArgs(value)
		}
		return val, nil
	}

	return nil, errs.ErrUnsupportedType.WithArgs(t.String())
}

// ConvertList converts each token and returns a typed slice ([]string, []int, []float64,
// []bool, []time.Time or []time.Duration). The first failing token aborts the conversion.
func ConvertList(values []string, t types.ValueType) (any, error) {
	switch t {
	case types.TypeString, types.TypeEnumSet, types.TypeVerbosity:
		out := make([]string, len(values))
		copy(out, values)
		return out, nil
	case types.TypeInt:
		return convertList[int](values, t)
	case types.TypeFloat:
		return convertList[float64](values, t)
	case types.TypeBool:
		return convertList[bool](values, t)
	case types.TypeTime:
		return convertList[time.Time](values, t)
	case types.TypeDuration:
		return convertList[time.Duration](values, t)
	}

	return nil, errs.ErrUnsupportedType.WithArgs(t.String())
}

func convertList[T any](values []string, t types.ValueType) ([]T, error) {
	out := make([]T, 0, len(values))
	for _, v := range values {
		val, err := ConvertValue(v, t)
		if err != nil {
			return nil, err
		}
		out = append(out, val.(T))
	}
	return out, nil
}

// SplitList splits an inline list value using delimiterFunc, defaulting to DefaultListDelimiter
func SplitList(value string, delimiterFunc types.ListDelimiterFunc) []string {
	if delimiterFunc == nil {
		delimiterFunc = DefaultListDelimiter
	}
	return strings.FieldsFunc(value, delimiterFunc)
}

// NormalizeValue brings a declared default into the representation produced by
// ConvertValue / ConvertList: strings are parsed, Go integer and float kinds are widened
// to int and float64, and []string defaults of sequence parameters are converted element-wise.
// A value whose Go type cannot represent t is rejected with ErrInvalidValue.
func NormalizeValue(v any, t types.ValueType, sequence bool) (any, error) {
	if v == nil || t == types.TypeVerbosity {
		return v, nil
	}

	if sequence {
		switch s := v.(type) {
		case []string:
			return ConvertList(s, t)
		case []any:
			raw := make([]string, len(s))
			for i, item := range s {
				raw[i] = fmt.Sprint(item)
			}
			return ConvertList(raw, t)
		case string:
			return ConvertList(SplitList(s, nil), t)
		case []int:
			if t == types.TypeInt {
				return v, nil
			}
		case []float64:
			if t == types.TypeFloat {
				return v, nil
			}
		case []bool:
			if t == types.TypeBool {
				return v, nil
			}
		case []time.Time:
			if t == types.TypeTime {
				return v, nil
			}
		case []time.Duration:
			if t == types.TypeDuration {
				return v, nil
			}
		}
		return nil, errs.ErrInvalidValue.WithArgs(fmt.Sprint(v), t.String())
	}

	switch n := v.(type) {
	case string:
		if t == types.TypeString || t == types.TypeEnumSet {
			return n, nil
		}
		return ConvertValue(n, t)
	case int:
		return widenInt(int64(n), t)
	case int8:
		return widenInt(int64(n), t)
	case int16:
		return widenInt(int64(n), t)
	case int32:
		return widenInt(int64(n), t)
	case int64:
		return widenInt(n, t)
	case uint:
		return widenUint(uint64(n), t)
	case uint8:
		return widenUint(uint64(n), t)
	case uint16:
		return widenUint(uint64(n), t)
	case uint32:
		return widenUint(uint64(n), t)
	case uint64:
		return widenUint(n, t)
	case float32:
		if t == types.TypeFloat {
			return float64(n), nil
		}
	case float64:
		if t == types.TypeFloat {
			return n, nil
		}
	case bool:
		if t == types.TypeBool {
			return n, nil
		}
	case time.Duration:
		if t == types.TypeDuration {
			return n, nil
		}
	case time.Time:
		if t == types.TypeTime {
			return n, nil
		}
	}

	return nil, errs.ErrInvalidValue.WithArgs(fmt.Sprint(v), t.String())
}

func widenInt(n int64, t types.ValueType) (any, error) {
	switch t {
	case types.TypeInt:
		if n < math.MinInt || n > math.MaxInt {
			return nil, errs.ErrParseOverflow.WithArgs(strconv.FormatInt(n, 10))
		}
		return int(n), nil
	case types.TypeFloat:
		return float64(n), nil
	}
	return nil, errs.ErrInvalidValue.WithArgs(strconv.FormatInt(n, 10), t.String())
}

func widenUint(n uint64, t types.ValueType) (any, error) {
	if n > math.MaxInt64 {
		return nil, errs.ErrParseOverflow.WithArgs(strconv.FormatUint(n, 10))
	}
	return widenInt(int64(n), t)
}

// FormatValue renders a bound value for help output and re-tokenization
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	case []string:
		return strings.Join(val, ",")
	}
	return fmt.Sprint(v)
}
