// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package dispatch

import (
	"io"
	"log/slog"

	"github.com/napalu/dispatch/env"
	"github.com/napalu/dispatch/errs"
	"github.com/napalu/dispatch/verbosity"
	"golang.org/x/text/language"
)

// WithEnvResolver sets where environment fallbacks are looked up. The default is the process environment.
func WithEnvResolver(resolver env.Resolver) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		if resolver == nil {
			*err = errs.ErrConfiguringEngine.Wrap(errNilResolver)
			return
		}
		e.env = resolver
	}
}

// WithStdout sets the writer receiving help and version output
func WithStdout(w io.Writer) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.stdout = w
	}
}

// WithStderr sets the writer receiving error messages and, unless WithLogger is used, log records
func WithStderr(w io.Writer) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.stderr = w
	}
}

// WithLogger sets the base logger handed to handlers through Call.Logger
func WithLogger(logger *slog.Logger) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.logger = logger
	}
}

// WithQuietFlag sets the spellings of the built-in quiet option (default --quiet and -q).
// Calling it without names disables the option.
func WithQuietFlag(names ...string) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		if len(names) == 0 {
			e.quiet.disabled = true
			return
		}
		e.quiet.names = append([]string(nil), names...)
		e.quiet.disabled = false
	}
}

// WithDefaultQuiet sets the levels suppressed when the quiet option is not passed.
// raw uses the quiet grammar, e.g. "D" to hide debug records by default.
func WithDefaultQuiet(raw string) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		state, parseErr := verbosity.Parse(raw, verbosity.None())
		if parseErr != nil {
			*err = parseErr
			return
		}
		e.quiet.def = state
	}
}

// WithQuietEnv names the environment variable consulted when the quiet option is not passed
func WithQuietEnv(name string) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.quiet.envName = name
	}
}

// WithSuggestionThreshold sets the maximum edit distance of "did you mean" suggestions; 0 disables them
func WithSuggestionThreshold(distance int) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.threshold = distance
	}
}

// WithHelpFlags sets the spellings that print help instead of running a command (default --help and -h)
func WithHelpFlags(names ...string) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.helpFlags = append([]string(nil), names...)
	}
}

// WithVersionFlags sets the spellings that print the version instead of running a command (default --version)
func WithVersionFlags(names ...string) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.versionFlags = append([]string(nil), names...)
	}
}

// WithProgramName sets the name shown in help, version output and error messages
func WithProgramName(name string) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.programName = name
	}
}

// WithLanguage sets the language of error messages and help labels
func WithLanguage(lang language.Tag) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.lang = lang
	}
}

// WithRenderer replaces the help renderer
func WithRenderer(r Renderer) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.renderer = r
	}
}

// WithTreeOptions passes options through to BuildTree
func WithTreeOptions(configs ...ConfigureTreeFunc) ConfigureEngineFunc {
	return func(e *Engine, err *error) {
		e.treeConfigs = append(e.treeConfigs, configs...)
	}
}
