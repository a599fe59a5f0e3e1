// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Package verbosity implements the quiet mini-language: a set of suppressed severity
// levels written as the letters D, I, W, E and C.
//
//	DW     suppress exactly debug and warning
//	-EW    suppress everything except error and warning
//	+E     un-suppress error relative to the configured default
//	(bare) suppress everything
//
// A repeated short flag (-qqq) suppresses the first k levels in the fixed order D, I, W, E, C.
package verbosity

import (
	"log/slog"
	"strings"
)

// Level is a log severity that can be suppressed
type Level int

const (
	Debug Level = iota
	Info
	Warning
	Error
	Critical
)

// LevelCritical is the slog level used for Critical records
const LevelCritical = slog.LevelError + 4

// Levels lists every level in canonical order
var Levels = []Level{Debug, Info, Warning, Error, Critical}

const letters = "DIWEC"

// Letter returns the grammar letter of l
func (l Level) Letter() byte {
	if l < Debug || l > Critical {
		return '?'
	}
	return letters[l]
}

// String returns the lower-case name of l
func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Critical:
		return "critical"
	}
	return "unknown"
}

// Slog returns the slog level l corresponds to
func (l Level) Slog() slog.Level {
	switch l {
	case Debug:
		return slog.LevelDebug
	case Info:
		return slog.LevelInfo
	case Warning:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	}
	return LevelCritical
}

// FromSlog maps any slog level onto the nearest level at or below it
func FromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelInfo:
		return Debug
	case l < slog.LevelWarn:
		return Info
	case l < slog.LevelError:
		return Warning
	case l < LevelCritical:
		return Error
	}
	return Critical
}

// LevelFromLetter parses one grammar letter, case-insensitively
func LevelFromLetter(r rune) (Level, bool) {
	idx := strings.IndexRune(letters, toUpper(r))
	if idx < 0 {
		return 0, false
	}
	return Level(idx), true
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}
