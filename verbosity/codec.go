// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package verbosity

import (
	"strings"

	"github.com/napalu/dispatch/errs"
)

// Parse decodes an explicitly passed quiet value against the configured default.
// An empty value suppresses every level.
func Parse(raw string, defaultSuppressed State) (State, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return All(), nil
	}

	switch raw[0] {
	case '-':
		set, err := parseLetters(raw[1:], "-")
		if err != nil {
			return State{}, err
		}
		return set.Complement(), nil
	case '+':
		set, err := parseLetters(raw[1:], "+")
		if err != nil {
			return State{}, err
		}
		return defaultSuppressed.Without(set), nil
	}

	return parseLetters(raw, "")
}

// Decode returns defaultSuppressed when the quiet flag was not passed and Parse(raw) otherwise
func Decode(raw string, defaultSuppressed State, explicitlyPassed bool) (State, error) {
	if !explicitlyPassed {
		return defaultSuppressed, nil
	}
	return Parse(raw, defaultSuppressed)
}

// DecodeCount converts a toggle count: k occurrences suppress the first k levels in canonical order
func DecodeCount(count int) (State, error) {
	if count < 0 {
		return State{}, errs.Grammar(errs.ErrNegativeCount.WithArgs(count))
	}
	if count > len(Levels) {
		count = len(Levels)
	}
	return NewState(Levels[:count]...), nil
}

// Encode is the inverse of Parse for a state decoded without a "+" modifier
func Encode(s State) string {
	return s.String()
}

// MustParse is like Parse with no default and panics on malformed input
func MustParse(raw string) State {
	s, err := Parse(raw, None())
	if err != nil {
		panic(err)
	}
	return s
}

func parseLetters(s, modifier string) (State, error) {
	if s == "" {
		return State{}, errs.Grammar(errs.ErrEmptyModifier.WithArgs(modifier))
	}
	var out State
	for _, r := range s {
		l, ok := LevelFromLetter(r)
		if !ok {
			return State{}, errs.Grammar(errs.ErrUnknownLevel.WithArgs(string(r)))
		}
		out.mask |= 1 << l
	}
	return out, nil
}
