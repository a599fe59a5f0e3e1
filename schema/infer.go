// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package schema

import (
	"github.com/napalu/dispatch/errs"
	"github.com/napalu/dispatch/internal/util"
	"github.com/napalu/dispatch/types"
)

// Param describes one handler parameter as declared by the command author.
// A parameter has a default when HasDefault is set or Default is non-nil.
type Param struct {
	Name               string
	Type               types.ValueType
	Sequence           bool
	Default            any
	HasDefault         bool
	Choices            []string
	Help               string
	CatchAllPositional bool
	CatchAllKeyword    bool
}

// CatchAll reports whether the parameter absorbs unmatched tokens instead of binding by name
func (hp Param) CatchAll() bool {
	return hp.CatchAllPositional || hp.CatchAllKeyword
}

func (hp Param) hasDefault() bool {
	return hp.HasDefault || hp.Default != nil
}

// Infer derives the candidate schemas of params: a positional and a keyword candidate per
// named parameter. Catch-all parameters produce no schema.
func Infer(params []Param) ([]*Parameter, error) {
	return Own(params, nil)
}

// Own builds the own tier of a command: the candidates inferred from params with the
// explicitly declared overrides merged onto them field by field. Overrides that match no
// handler parameter become standalone parameters (keyword unless a kind is given).
func Own(params []Param, overrides []*Parameter) ([]*Parameter, error) {
	collapsed, err := collapse(overrides)
	if err != nil {
		return nil, err
	}
	used := make([]bool, len(collapsed))

	var groups [][]*Parameter
	for _, hp := range params {
		if hp.CatchAll() {
			continue
		}
		if hp.Name == "" {
			return nil, errs.ErrInvalidParameter.WithArgs("", "empty parameter name")
		}
		base, err := fromParam(hp)
		if err != nil {
			return nil, err
		}

		var matched []*Parameter
		for i, ov := range collapsed {
			if !used[i] && (util.Canonical(ov.Dest) == util.Canonical(hp.Name) || ov.Matches(hp.Name)) {
				used[i] = true
				matched = append(matched, ov)
			}
		}
		group, err := applyOverrides(base, matched)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	for i, ov := range collapsed {
		if used[i] {
			continue
		}
		p, err := standalone(ov)
		if err != nil {
			return nil, err
		}
		groups = append(groups, []*Parameter{p})
	}

	return orderPositionals(groups), nil
}

func fromParam(hp Param) (*Parameter, error) {
	p := &Parameter{
		Dest:     hp.Name,
		Type:     hp.Type,
		Sequence: hp.Sequence,
		Help:     hp.Help,
		Choices:  append([]string(nil), hp.Choices...),
	}
	if len(hp.Choices) > 0 {
		p.Type = types.TypeEnumSet
	}
	if hp.hasDefault() {
		def, err := util.NormalizeValue(hp.Default, p.Type, p.Sequence)
		if err != nil {
			return nil, errs.ErrInvalidParameter.WithArgs(hp.Name, "default").Wrap(err)
		}
		p.Default, p.HasDefault = def, true
	}
	return p, nil
}

// applyOverrides turns base into its positional and keyword candidates and merges the
// overrides onto them. An override with an explicit kind keeps only that candidate.
func applyOverrides(base *Parameter, overrides []*Parameter) ([]*Parameter, error) {
	kinds := []types.Kind{types.KindPositional, types.KindKeyword}
	merged := base.Clone()
	for _, ov := range overrides {
		if ov.isSet(fieldKind) && ov.Kind != types.KindUnset {
			kinds = []types.Kind{ov.Kind}
		}
		if err := overlay(merged, ov); err != nil {
			return nil, err
		}
	}

	if merged.Required && merged.HasDefault {
		if merged.isSet(fieldDefault) {
			return nil, errs.ErrInvalidParameter.WithArgs(merged.Dest, "a required parameter cannot have a default")
		}
		merged.Default, merged.HasDefault = nil, false
	}
	if merged.Type == types.TypeBool && !merged.Sequence && !merged.HasDefault && !merged.Required {
		merged.Default, merged.HasDefault = false, true
	}

	hasPositional := len(kinds) == 2 || kinds[0] == types.KindPositional
	out := make([]*Parameter, 0, len(kinds))
	for _, kind := range kinds {
		p := merged.Clone()
		p.Kind = kind
		if kind == types.KindPositional {
			p.Names = []string{p.Dest}
		} else if !p.isSet(fieldNames) || len(p.Names) == 0 {
			p.Names = []string{util.KeywordName(p.Dest)}
		}
		derive(p, hasPositional && kind == types.KindKeyword)
		out = append(out, p)
	}
	return out, nil
}

func standalone(ov *Parameter) (*Parameter, error) {
	p := ov.Clone()
	if p.Kind == types.KindUnset {
		p.Kind = types.KindKeyword
	}
	if p.Kind == types.KindPositional {
		p.Names = []string{p.Dest}
	} else if len(p.Names) == 0 {
		p.Names = []string{util.KeywordName(p.Dest)}
	}
	if p.Required && p.HasDefault {
		return nil, errs.ErrInvalidParameter.WithArgs(p.Dest, "a required parameter cannot have a default")
	}
	if p.HasDefault {
		def, err := util.NormalizeValue(p.Default, p.Type, p.Sequence)
		if err != nil {
			return nil, errs.ErrInvalidParameter.WithArgs(p.Dest, "default").Wrap(err)
		}
		p.Default = def
	}
	if p.Type == types.TypeBool && !p.Sequence && !p.HasDefault && !p.Required {
		p.Default, p.HasDefault = false, true
	}
	derive(p, false)
	return p, nil
}

// overlay copies the explicitly set fields of ov onto p
func overlay(p, ov *Parameter) error {
	if ov.isSet(fieldNames) {
		p.Names = append([]string(nil), ov.Names...)
	}
	if ov.isSet(fieldArity) {
		p.Arity = ov.Arity
	}
	if ov.isSet(fieldType) {
		p.Type = ov.Type
	}
	if ov.isSet(fieldSequence) {
		p.Sequence = ov.Sequence
	}
	if ov.isSet(fieldChoices) {
		p.Choices = append([]string(nil), ov.Choices...)
	}
	if ov.isSet(fieldRequired) {
		p.Required = ov.Required
	}
	if ov.isSet(fieldDefault) {
		def, err := util.NormalizeValue(ov.Default, p.Type, p.Sequence)
		if err != nil {
			return errs.ErrInvalidParameter.WithArgs(p.Dest, "default").Wrap(err)
		}
		p.Default, p.HasDefault = def, true
	}
	if ov.isSet(fieldHelp) {
		p.Help = ov.Help
	}
	if ov.isSet(fieldGroup) {
		p.Group = ov.Group
	}
	if ov.isSet(fieldEnv) {
		p.EnvFallback = ov.EnvFallback
	}
	p.set |= ov.set &^ fieldKind
	return nil
}

// derive fills arity and required-ness when they were not explicitly set
func derive(p *Parameter, positionalTwin bool) {
	if !p.isSet(fieldArity) {
		switch {
		case p.Type == types.TypeVerbosity:
			p.Arity = types.ZeroOrOne
		case p.Sequence && p.HasDefault:
			p.Arity = types.ZeroOrMore
		case p.Sequence:
			p.Arity = types.OneOrMore
		case p.Kind == types.KindKeyword && p.Type == types.TypeBool:
			p.Arity = types.Flag
		case p.Kind == types.KindPositional && p.HasDefault:
			p.Arity = types.ZeroOrOne
		default:
			p.Arity = types.Exactly1
		}
	}
	if !p.isSet(fieldRequired) {
		p.Required = !p.HasDefault && !positionalTwin && !p.Arity.Optional()
	}
}

// orderPositionals drops inferred positional candidates that would break positional
// ordering: nothing after a variadic positional and no required positional after an
// optional one. The keyword twin left behind becomes required when it has no default.
func orderPositionals(groups [][]*Parameter) []*Parameter {
	var out []*Parameter
	variadic, optional := false, false
	for _, group := range groups {
		var pos, kw *Parameter
		for _, p := range group {
			switch p.Kind {
			case types.KindPositional:
				pos = p
			case types.KindKeyword:
				kw = p
			}
		}
		if pos != nil && kw != nil {
			required := !pos.Arity.Optional()
			if variadic || (optional && required) {
				if !kw.isSet(fieldRequired) {
					kw.Required = !kw.HasDefault && !kw.Arity.Optional()
				}
				out = append(out, kw)
				continue
			}
		}
		if pos != nil {
			variadic = variadic || pos.Arity.Variadic()
			optional = optional || pos.Arity.Optional()
		}
		out = append(out, group...)
	}
	return out
}

// collapse merges overrides declared more than once for the same dest and kind.
// Two declarations that disagree on type or arity conflict.
func collapse(overrides []*Parameter) ([]*Parameter, error) {
	var out []*Parameter
	for _, ov := range overrides {
		if ov == nil {
			continue
		}
		if ov.Dest == "" {
			if len(ov.Names) == 0 {
				return nil, errs.ErrInvalidParameter.WithArgs("", "missing dest")
			}
			ov = ov.Clone()
			ov.Dest = util.KeywordKey(ov.LongOrFirstName())
		}

		var existing *Parameter
		for _, o := range out {
			if util.Canonical(o.Dest) == util.Canonical(ov.Dest) && o.Kind == ov.Kind {
				existing = o
				break
			}
		}
		if existing == nil {
			out = append(out, ov.Clone())
			continue
		}
		if err := conflict(existing, ov); err != nil {
			return nil, err
		}
		if err := fill(existing, ov); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func conflict(a, b *Parameter) error {
	if a.isSet(fieldType) && b.isSet(fieldType) && a.Type != b.Type {
		return errSchemaConflict(a, a.Type.String(), b.Type.String())
	}
	if a.isSet(fieldArity) && b.isSet(fieldArity) && a.Arity != b.Arity {
		return errSchemaConflict(a, a.Arity.String(), b.Arity.String())
	}
	return nil
}

// fill copies the fields set on src and unset on dst; names are unioned
func fill(dst, src *Parameter) error {
	partial := *src
	partial.set = src.set &^ dst.set
	if err := overlay(dst, &partial); err != nil {
		return err
	}
	if dst.isSet(fieldNames) && src.isSet(fieldNames) {
		dst.Names = util.UniqueAppend(dst.Names, src.Names...)
	}
	return nil
}

// LongOrFirstName returns the first long name, or the first name when there is none
func (p *Parameter) LongOrFirstName() string {
	if long := p.LongNames(); len(long) > 0 {
		return long[0]
	}
	if len(p.Names) > 0 {
		return p.Names[0]
	}
	return p.Dest
}
