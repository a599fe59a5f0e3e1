// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package types

import "strings"

// Kind tells the binder whether a parameter is matched by position or by name
type Kind int

const (
	KindUnset      Kind = iota // KindUnset lets inference decide (positional and keyword twins)
	KindPositional             // KindPositional is bound from bare tokens in declaration order
	KindKeyword                // KindKeyword is bound from --name / -n spellings
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindPositional:
		return "positional"
	case KindKeyword:
		return "keyword"
	}
	return "unset"
}

// Arity describes how many value tokens a parameter consumes
type Arity int

const (
	ArityUnset Arity = iota // ArityUnset lets inference decide
	Exactly1                // Exactly1 consumes exactly one value
	ZeroOrOne               // ZeroOrOne consumes one value when available
	ZeroOrMore              // ZeroOrMore consumes values until the next keyword token
	OneOrMore               // OneOrMore is ZeroOrMore requiring at least one value
	Flag                    // Flag consumes no value: presence switches it on
)

// String returns the string representation of an Arity
func (a Arity) String() string {
	switch a {
	case Exactly1:
		return "1"
	case ZeroOrOne:
		return "?"
	case ZeroOrMore:
		return "*"
	case OneOrMore:
		return "+"
	case Flag:
		return "flag"
	}
	return "unset"
}

// Variadic reports whether the arity accepts an open-ended number of values
func (a Arity) Variadic() bool {
	return a == ZeroOrMore || a == OneOrMore
}

// Optional reports whether the arity can be satisfied by zero values
func (a Arity) Optional() bool {
	return a == ZeroOrOne || a == ZeroOrMore || a == Flag
}

// ParseArity converts the textual arity used in manifests ("1", "?", "*", "+", "flag")
func ParseArity(s string) (Arity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unset":
		return ArityUnset, true
	case "1", "exactly1", "one":
		return Exactly1, true
	case "?", "zero-or-one", "optional":
		return ZeroOrOne, true
	case "*", "zero-or-more", "many":
		return ZeroOrMore, true
	case "+", "one-or-more":
		return OneOrMore, true
	case "flag", "0":
		return Flag, true
	}
	return ArityUnset, false
}

// ValueType tags the type a parameter value is converted to
type ValueType int

const (
	TypeString    ValueType = iota // TypeString keeps the raw token
	TypeInt                        // TypeInt parses base-10 integers
	TypeFloat                      // TypeFloat parses 64-bit floats
	TypeBool                       // TypeBool parses strconv booleans
	TypeEnumSet                    // TypeEnumSet restricts values to a set of choices
	TypeTime                       // TypeTime parses dates in any common layout
	TypeDuration                   // TypeDuration parses time.ParseDuration syntax
	TypeVerbosity                  // TypeVerbosity parses the quiet mini-language
)

// String returns the string representation of a ValueType
func (v ValueType) String() string {
	switch v {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeEnumSet:
		return "enum"
	case TypeTime:
		return "time"
	case TypeDuration:
		return "duration"
	case TypeVerbosity:
		return "verbosity"
	}
	return "string"
}

// ParseValueType converts the textual type used in manifests
func ParseValueType(s string) (ValueType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "string", "str":
		return TypeString, true
	case "int", "integer":
		return TypeInt, true
	case "float", "number":
		return TypeFloat, true
	case "bool", "boolean":
		return TypeBool, true
	case "enum", "enumset", "choice":
		return TypeEnumSet, true
	case "time", "date":
		return TypeTime, true
	case "duration":
		return TypeDuration, true
	case "verbosity", "quiet":
		return TypeVerbosity, true
	}
	return TypeString, false
}

// KeyValue denotes Key Value pairs
type KeyValue[K, V any] struct {
	Key   K
	Value V
}

// ListDelimiterFunc signature to match when supplying a user-defined function to check for the runes which form list delimiters.
// Defaults to ',' || r == '|' || r == ' '.
type ListDelimiterFunc func(matchOn rune) bool
