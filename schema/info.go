// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package schema

import (
	"github.com/napalu/dispatch/internal/util"
	"github.com/napalu/dispatch/types"
)

// Info is the read-only view of a parameter offered to help renderers and completion generators
type Info struct {
	Names    []string // spellings with dashes for options, the dest for positionals
	Dest     string
	Kind     types.Kind
	Arity    types.Arity
	Type     types.ValueType
	Required bool
	Default  string
	Help     string
	Group    string
	Env      string
	Choices  []string
}

// HasDefault reports whether a default is displayed
func (i Info) HasDefault() bool {
	return i.Default != ""
}

// Project returns the Info of every parameter in order
func Project(params []*Parameter) []Info {
	out := make([]Info, 0, len(params))
	for _, p := range params {
		info := Info{
			Dest:     p.Dest,
			Kind:     p.Kind,
			Arity:    p.Arity,
			Type:     p.Type,
			Required: p.Required,
			Help:     p.Help,
			Group:    p.Group,
			Env:      p.EnvFallback,
			Choices:  append([]string(nil), p.Choices...),
		}
		if p.Kind == types.KindKeyword {
			info.Names = p.Spellings()
		} else {
			info.Names = []string{p.Dest}
		}
		if p.HasDefault && p.Arity != types.Flag && !isEmpty(p.Default) {
			info.Default = util.FormatValue(p.Default)
		}
		out = append(out, info)
	}
	return out
}

func isEmpty(v any) bool {
	e, ok := v.(interface{ Empty() bool })
	return ok && e.Empty()
}
