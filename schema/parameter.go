// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Package schema holds the parameter model of a command: the schema of every option and
// positional argument a handler accepts, how it is inferred from handler metadata and how
// schemas inherited from other declarations are merged.
package schema

import (
	"strings"

	"github.com/napalu/dispatch/internal/util"
	"github.com/napalu/dispatch/types"
)

type field uint16

const (
	fieldNames field = 1 << iota
	fieldKind
	fieldArity
	fieldDefault
	fieldRequired
	fieldType
	fieldSequence
	fieldChoices
	fieldHelp
	fieldGroup
	fieldEnv
)

// Parameter is one option or positional argument of a command.
//
// Names holds option spellings without leading dashes: single-character names are
// matched as -n, longer ones as --name. A positional's only name is its Dest.
// Parameters inferred from the same handler parameter share a Dest: one positional and
// one keyword candidate, of which the binder consumes one.
type Parameter struct {
	Names       []string
	Dest        string
	Kind        types.Kind
	Arity       types.Arity
	Default     any
	HasDefault  bool
	Required    bool
	Type        types.ValueType
	Sequence    bool
	Choices     []string
	Help        string
	Group       string
	EnvFallback string
	set         field
}

// NewParameter creates a parameter bound to dest. Only the fields configured through
// configs count as explicitly set when the parameter is used as an override.
func NewParameter(dest string, configs ...ConfigureParameterFunc) *Parameter {
	p := &Parameter{Dest: dest}
	for _, config := range configs {
		config(p, nil)
	}

	return p
}

// Set configures the parameter with the provided ConfigureParameterFunc(s) and
// returns the first configuration error.
func (p *Parameter) Set(configs ...ConfigureParameterFunc) error {
	var err error
	for _, config := range configs {
		config(p, &err)
		if err != nil {
			return err
		}
	}

	return nil
}

// isSet reports whether f was explicitly configured
func (p *Parameter) isSet(f field) bool {
	return p.set&f != 0
}

// Clone returns a deep copy
func (p *Parameter) Clone() *Parameter {
	if p == nil {
		return nil
	}
	c := *p
	c.Names = append([]string(nil), p.Names...)
	c.Choices = append([]string(nil), p.Choices...)
	c.Default = cloneValue(p.Default)
	return &c
}

// DisplayName returns the spelling used in messages: --name for keywords, the dest otherwise
func (p *Parameter) DisplayName() string {
	if p.Kind == types.KindKeyword {
		if long := p.LongNames(); len(long) > 0 {
			return "--" + long[0]
		}
		if len(p.Names) > 0 {
			return "-" + p.Names[0]
		}
	}
	return p.Dest
}

// LongNames returns the names matched as --name
func (p *Parameter) LongNames() []string {
	out := make([]string, 0, len(p.Names))
	for _, n := range p.Names {
		if len(n) > 1 {
			out = append(out, n)
		}
	}
	return out
}

// ShortNames returns the names matched as -n
func (p *Parameter) ShortNames() []string {
	out := make([]string, 0, 1)
	for _, n := range p.Names {
		if len(n) == 1 {
			out = append(out, n)
		}
	}
	return out
}

// Spellings returns every spelling with its dashes (--name, -n)
func (p *Parameter) Spellings() []string {
	out := make([]string, 0, len(p.Names))
	for _, n := range p.Names {
		if len(n) == 1 {
			out = append(out, "-"+n)
		} else {
			out = append(out, "--"+n)
		}
	}
	return out
}

// FlagValue is the value a Flag stores when present: the inverse of its default
func (p *Parameter) FlagValue() bool {
	if b, ok := p.Default.(bool); ok {
		return !b
	}
	return true
}

// Matches reports whether name is the dest or one of the names of p, ignoring case and separators
func (p *Parameter) Matches(name string) bool {
	canonical := util.Canonical(strings.TrimLeft(name, "-"))
	if canonical == "" {
		return false
	}
	if util.Canonical(p.Dest) == canonical {
		return true
	}
	for _, n := range p.Names {
		if len(n) > 1 && util.Canonical(n) == canonical {
			return true
		}
		if len(n) == 1 && n == strings.TrimLeft(name, "-") {
			return true
		}
	}
	return false
}

func (p *Parameter) sharesName(o *Parameter) bool {
	if p.Matches(o.Dest) {
		return true
	}
	for _, n := range o.Names {
		if p.Matches(n) {
			return true
		}
	}
	return false
}

func cloneValue(v any) any {
	switch s := v.(type) {
	case []string:
		return append([]string(nil), s...)
	case []int:
		return append([]int(nil), s...)
	case []float64:
		return append([]float64(nil), s...)
	case []bool:
		return append([]bool(nil), s...)
	case []any:
		return append([]any(nil), s...)
	}
	return v
}

// CloneValue returns a copy of v that shares no slice storage with it
func CloneValue(v any) any {
	return cloneValue(v)
}

func normalizeName(name string) string {
	return strings.TrimLeft(strings.TrimSpace(name), "-")
}
