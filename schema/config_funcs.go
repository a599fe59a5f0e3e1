// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package schema

import (
	"github.com/napalu/dispatch/errs"
	"github.com/napalu/dispatch/types"
)

// ConfigureParameterFunc is used when defining parameters and overrides
type ConfigureParameterFunc func(p *Parameter, err *error)

// WithNames sets the option spellings. Leading dashes are ignored, so "-c" and "c" are the same name.
func WithNames(names ...string) ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.Names = p.Names[:0]
		for _, n := range names {
			n = normalizeName(n)
			if n == "" {
				if err != nil {
					*err = errs.ErrInvalidParameter.WithArgs(p.Dest, "empty name")
				}
				continue
			}
			p.Names = append(p.Names, n)
		}
		p.set |= fieldNames
	}
}

// WithKind restricts the parameter to positional or keyword binding
func WithKind(kind types.Kind) ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.Kind = kind
		p.set |= fieldKind
	}
}

// WithArity sets how many values the parameter consumes
func WithArity(arity types.Arity) ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.Arity = arity
		p.set |= fieldArity
	}
}

// WithDefault sets the value used when no token supplies one
func WithDefault(value any) ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.Default = value
		p.HasDefault = true
		p.set |= fieldDefault
	}
}

// WithRequired marks the parameter as required. A required parameter has no default.
func WithRequired(required bool) ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.Required = required
		p.set |= fieldRequired
	}
}

// WithType sets the value type tokens are converted to
func WithType(t types.ValueType) ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.Type = t
		p.set |= fieldType
	}
}

// WithSequence marks the parameter as a list of values
func WithSequence(sequence bool) ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.Sequence = sequence
		p.set |= fieldSequence
	}
}

// WithChoices restricts values to choices and sets the type to TypeEnumSet
func WithChoices(choices ...string) ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.Choices = append([]string(nil), choices...)
		p.Type = types.TypeEnumSet
		p.set |= fieldChoices | fieldType
	}
}

// WithHelp sets the help text
func WithHelp(help string) ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.Help = help
		p.set |= fieldHelp
	}
}

// WithGroup sets the help group
func WithGroup(group string) ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.Group = group
		p.set |= fieldGroup
	}
}

// WithEnv names the environment variable consulted when no token and no default supply a value
func WithEnv(name string) ConfigureParameterFunc {
	return func(p *Parameter, err *error) {
		p.EnvFallback = name
		p.set |= fieldEnv
	}
}
