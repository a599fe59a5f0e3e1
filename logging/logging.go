// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Package logging builds the slog loggers used by the dispatch engine and handed to handlers.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/napalu/dispatch/verbosity"
	"golang.org/x/term"
)

// Format selects the record encoding
type Format int

const (
	FormatAuto Format = iota // FormatAuto picks FormatText on a terminal and FormatJSON otherwise
	FormatText
	FormatJSON
)

// Options configure New
type Options struct {
	Format    Format
	AddSource bool
}

// New returns a logger writing to w that drops the levels suppressed by state
func New(w io.Writer, state verbosity.State) *slog.Logger {
	return NewWithOptions(w, state, Options{})
}

// NewWithOptions is New with an explicit format
func NewWithOptions(w io.Writer, state verbosity.State, opts Options) *slog.Logger {
	return slog.New(NewHandler(w, state, opts))
}

// NewHandler returns the verbosity-filtered handler behind New
func NewHandler(w io.Writer, state verbosity.State, opts Options) *verbosity.Handler {
	if w == nil {
		w = io.Discard
	}
	ho := &slog.HandlerOptions{
		AddSource:   opts.AddSource,
		Level:       slog.LevelDebug,
		ReplaceAttr: replaceLevel,
	}

	var next slog.Handler
	if resolve(opts.Format, w) == FormatText {
		next = slog.NewTextHandler(w, ho)
	} else {
		next = slog.NewJSONHandler(w, ho)
	}
	return verbosity.NewHandler(next, state)
}

// Discard returns a logger that emits nothing
func Discard() *slog.Logger {
	return slog.New(verbosity.NewHandler(slog.NewTextHandler(io.Discard, nil), verbosity.All()))
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func resolve(f Format, w io.Writer) Format {
	if f != FormatAuto {
		return f
	}
	if IsTerminal(w) {
		return FormatText
	}
	return FormatJSON
}

// replaceLevel prints the critical level by name instead of ERROR+4
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) > 0 {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level >= verbosity.LevelCritical {
		a.Value = slog.StringValue("CRITICAL")
	}
	return a
}
