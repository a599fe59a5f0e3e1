// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package schema

import (
	"fmt"

	"github.com/napalu/dispatch/errs"
	"github.com/napalu/dispatch/internal/util"
	"github.com/napalu/dispatch/types"
)

// Validate checks the invariants of an effective schema: per-parameter consistency,
// unique (dest, kind) pairs, unique option names and positional ordering.
func Validate(params []*Parameter) error {
	for _, p := range params {
		if err := validateParameter(p); err != nil {
			return err
		}
	}

	seen := map[string]*Parameter{}
	names := map[string]*Parameter{}
	for _, p := range params {
		key := p.Dest + "\x00" + p.Kind.String()
		if _, dup := seen[key]; dup {
			return errs.ErrSchemaConflict.WithArgs(p.Dest, "declared twice as "+p.Kind.String())
		}
		seen[key] = p

		if p.Kind != types.KindKeyword {
			continue
		}
		for _, n := range p.Names {
			k := n
			if len(n) > 1 {
				k = util.Canonical(n)
			}
			if other, dup := names[k]; dup && other.Dest != p.Dest {
				return errs.ErrDuplicateName.WithArgs(n, other.Dest, p.Dest)
			}
			names[k] = p
		}
	}

	return validateOrder(params)
}

func validateParameter(p *Parameter) error {
	invalid := func(reason string) error {
		return errs.ErrInvalidParameter.WithArgs(p.Dest, reason)
	}

	switch {
	case p.Dest == "":
		return invalid("missing dest")
	case p.Kind == types.KindUnset:
		return invalid("kind not set")
	case p.Arity == types.ArityUnset:
		return invalid("arity not set")
	case p.Kind == types.KindKeyword && len(p.Names) == 0:
		return invalid("option without names")
	case p.Required && p.HasDefault:
		return invalid("a required parameter cannot have a default")
	case p.Arity == types.Flag && (p.Type != types.TypeBool || p.Kind != types.KindKeyword):
		return invalid("only boolean options can be flags")
	case p.Sequence && !p.Arity.Variadic():
		return invalid(fmt.Sprintf("list parameter with arity %s", p.Arity))
	case !p.Sequence && p.Arity.Variadic():
		return invalid(fmt.Sprintf("arity %s requires a list parameter", p.Arity))
	case p.Type == types.TypeEnumSet && len(p.Choices) == 0:
		return invalid("enum without choices")
	case p.Type == types.TypeVerbosity && p.Kind != types.KindKeyword:
		return invalid("verbosity parameters are options")
	}

	if p.Type == types.TypeEnumSet && p.HasDefault {
		for _, v := range defaultMembers(p.Default) {
			if !util.Contains(p.Choices, v) {
				return invalid(fmt.Sprintf("default '%s' is not one of the choices", v))
			}
		}
	}
	for _, n := range p.Names {
		if n == "" || n[0] == '-' {
			return invalid(fmt.Sprintf("bad name '%s'", n))
		}
	}

	return nil
}

func defaultMembers(v any) []string {
	switch d := v.(type) {
	case string:
		return []string{d}
	case []string:
		return d
	}
	return nil
}

func validateOrder(params []*Parameter) error {
	var variadic, optional *Parameter
	for _, p := range params {
		if p.Kind != types.KindPositional {
			continue
		}
		if variadic != nil {
			return errs.ErrPositionalOrder.WithArgs(p.Dest, variadic.Dest)
		}
		if optional != nil && !p.Arity.Optional() {
			return errs.ErrPositionalOrder.WithArgs(p.Dest, optional.Dest)
		}
		if p.Arity.Variadic() {
			variadic = p
		}
		if p.Arity.Optional() && optional == nil {
			optional = p
		}
	}
	return nil
}

func errSchemaConflict(p *Parameter, a, b string) error {
	return errs.ErrSchemaConflict.WithArgs(p.Dest, a+" / "+b)
}
