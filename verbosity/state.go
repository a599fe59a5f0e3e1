// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package verbosity

import "strings"

// State is the set of suppressed levels for one invocation. The zero value suppresses nothing.
type State struct {
	mask uint8
}

const allMask = uint8(1<<len(letters)) - 1

// NewState returns a state suppressing levels
func NewState(levels ...Level) State {
	var s State
	for _, l := range levels {
		if l >= Debug && l <= Critical {
			s.mask |= 1 << l
		}
	}
	return s
}

// None suppresses no level
func None() State {
	return State{}
}

// All suppresses every level
func All() State {
	return State{mask: allMask}
}

// Suppresses reports whether l is suppressed
func (s State) Suppresses(l Level) bool {
	if l < Debug || l > Critical {
		return false
	}
	return s.mask&(1<<l) != 0
}

// Levels returns the suppressed levels in canonical order
func (s State) Levels() []Level {
	out := make([]Level, 0, len(Levels))
	for _, l := range Levels {
		if s.Suppresses(l) {
			out = append(out, l)
		}
	}
	return out
}

// Len returns the number of suppressed levels
func (s State) Len() int {
	n := 0
	for m := s.mask; m != 0; m &= m - 1 {
		n++
	}
	return n
}

// Union suppresses the levels of both states
func (s State) Union(o State) State {
	return State{mask: s.mask | o.mask}
}

// Without un-suppresses the levels of o
func (s State) Without(o State) State {
	return State{mask: s.mask &^ o.mask}
}

// Complement suppresses exactly the levels s does not
func (s State) Complement() State {
	return State{mask: allMask &^ s.mask}
}

// Empty reports whether nothing is suppressed
func (s State) Empty() bool {
	return s.mask == 0
}

// String returns the canonical encoding of s: its letters in D, I, W, E, C order.
// The empty state is written "-DIWEC" because a bare quiet flag means "suppress everything".
func (s State) String() string {
	if s.Empty() {
		return "-" + letters
	}
	var sb strings.Builder
	for _, l := range s.Levels() {
		sb.WriteByte(l.Letter())
	}
	return sb.String()
}

// EncodeRelative encodes s against def. When s only un-suppresses levels of def
// the "+" form is used; otherwise the canonical encoding is returned.
func (s State) EncodeRelative(def State) string {
	removed := def.Without(s)
	if s.mask&^def.mask != 0 || removed.Empty() {
		return s.String()
	}
	var sb strings.Builder
	sb.WriteByte('+')
	for _, l := range removed.Levels() {
		sb.WriteByte(l.Letter())
	}
	return sb.String()
}
