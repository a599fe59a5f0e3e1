// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Package parse holds the token cursor used by the binder and the string tokenizer
// behind Engine.DispatchString.
package parse

import (
	"errors"
	"strings"

	"github.com/napalu/dispatch/internal/util"
)

// EndOfOptions stops keyword recognition: every later token is positional
const EndOfOptions = "--"

// State represents the current position of a scan over a token list
type State interface {
	Pos() int                                // Get the current position
	SetPos(pos int)                          // Set the current position
	Args() []string                          // Get the entire argument list
	InsertArgsAt(pos int, newArgs ...string) // Insert new arguments at a specific position
	ReplaceArgAt(pos int, newArgs ...string) // Replace one argument with zero or more arguments
	CurrentArg() string                      // Get the current argument
	ArgAt(pos int) (string, error)           // Get the argument at a specific position
	Peek() (string, bool)                    // Peek at the next argument
	Advance() bool                           // Advance to the next argument
	Len() int                                // Gets the length of the argument list
}

// ErrInvalidPosition is returned when an invalid position is accessed
var ErrInvalidPosition = errors.New("invalid position")

// DefaultState is the default implementation of the State interface.
// It works on its own copy of the tokens so callers' slices are never modified.
type DefaultState struct {
	pos  int
	args []string
}

// NewState creates a new State positioned before the first token
func NewState(args []string) State {
	owned := make([]string, len(args))
	copy(owned, args)
	return &DefaultState{
		pos:  -1,
		args: owned,
	}
}

// Pos returns the current position in the argument list
func (s *DefaultState) Pos() int {
	return s.pos
}

// SetPos sets the current position in the argument list
func (s *DefaultState) SetPos(pos int) {
	s.pos = pos
}

// Args returns the entire argument list
func (s *DefaultState) Args() []string {
	return s.args
}

// CurrentArg returns the current argument
func (s *DefaultState) CurrentArg() string {
	if s.pos < 0 || s.pos >= len(s.args) {
		return ""
	}
	return s.args[s.pos]
}

// InsertArgsAt inserts new arguments at a specific position
func (s *DefaultState) InsertArgsAt(pos int, newArgs ...string) {
	s.args = util.InsertSlice(s.args, pos, newArgs...)
}

// ReplaceArgAt replaces the argument at pos with newArgs
func (s *DefaultState) ReplaceArgAt(pos int, newArgs ...string) {
	if pos < 0 || pos >= len(s.args) {
		return
	}
	out := make([]string, 0, len(s.args)-1+len(newArgs))
	out = append(out, s.args[:pos]...)
	out = append(out, newArgs...)
	s.args = append(out, s.args[pos+1:]...)
}

// Advance advances to the next argument, returning true if successful
func (s *DefaultState) Advance() bool {
	if s.pos+1 < len(s.args) {
		s.pos++
		return true
	}
	return false
}

// Peek returns the next argument without advancing the current position
func (s *DefaultState) Peek() (string, bool) {
	if s.pos+1 < len(s.args) {
		return s.args[s.pos+1], true
	}

	return "", false
}

// ArgAt returns the argument at a specific position
func (s *DefaultState) ArgAt(pos int) (string, error) {
	if pos < 0 || pos >= len(s.args) {
		return "", ErrInvalidPosition
	}

	return s.args[pos], nil
}

// Len returns the length of the argument list
func (s *DefaultState) Len() int {
	return len(s.args)
}

// IsKeyword reports whether token is spelled like an option (-x, --name, --name=value).
// Negative numbers and a lone "-" are values, and EndOfOptions is not a keyword.
func IsKeyword(token string) bool {
	if len(token) < 2 || token[0] != '-' || token == EndOfOptions {
		return false
	}
	if token[1] != '-' && isNumeric(token[1:]) {
		return false
	}
	return true
}

// IsLong reports whether token uses the --name spelling
func IsLong(token string) bool {
	return strings.HasPrefix(token, "--") && len(token) > 2
}

// SplitKeyword splits --name=value / -n=value into its name (dashes removed), the inline value
// and whether one was present.
func SplitKeyword(token string) (name, value string, hasValue bool) {
	trimmed := strings.TrimLeft(token, "-")
	if idx := strings.IndexByte(trimmed, '='); idx >= 0 {
		return trimmed[:idx], trimmed[idx+1:], true
	}
	return trimmed, "", false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	dot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}
