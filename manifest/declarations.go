// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package manifest

import (
	"fmt"
	"strings"

	"github.com/napalu/dispatch"
	"github.com/napalu/dispatch/errs"
	"github.com/napalu/dispatch/schema"
	"github.com/napalu/dispatch/types"
)

// Declarations converts the commands of d into declarations, resolving handler names
// against reg and inheritance by command id. Errors are configuration errors.
func (d *Document) Declarations(reg *Registry) ([]*dispatch.Declaration, error) {
	decls, err := d.declarations(reg)
	if err != nil {
		return nil, errs.Config(err)
	}
	return decls, nil
}

func (d *Document) declarations(reg *Registry) ([]*dispatch.Declaration, error) {
	if reg == nil {
		reg = NewRegistry()
	}

	byID := make(map[string]*dispatch.Declaration, len(d.Commands))
	decls := make([]*dispatch.Declaration, 0, len(d.Commands))
	for i := range d.Commands {
		c := &d.Commands[i]
		decl, err := c.declaration(reg)
		if err != nil {
			return nil, err
		}
		if c.ID != "" {
			if _, dup := byID[c.ID]; dup {
				return nil, errs.ErrInvalidParameter.WithArgs(c.ID, "duplicate command id")
			}
			byID[c.ID] = decl
		}
		decls = append(decls, decl)
	}

	for i := range d.Commands {
		for _, id := range d.Commands[i].Inherits {
			parent, ok := byID[id]
			if !ok {
				return nil, errs.ErrManifestReference.WithArgs(id)
			}
			decls[i].InheritsFrom = append(decls[i].InheritsFrom, parent)
		}
	}

	return decls, nil
}

func (c *Command) declaration(reg *Registry) (*dispatch.Declaration, error) {
	decl := &dispatch.Declaration{
		Path:        strings.Fields(c.Path),
		Description: c.Description,
		Version:     c.Version,
		Hidden:      c.Hidden,
		Aliases:     append([]string(nil), c.Aliases...),
		AliasSeed:   c.AliasSeed,
		Omit:        append([]string(nil), c.Omit...),
	}
	if c.Default {
		decl.Path = append(decl.Path, "")
	}

	if c.Handler != "" {
		h, ok := reg.Lookup(c.Handler)
		if !ok {
			return nil, errs.ErrManifestHandler.WithArgs(c.Handler, c.Path)
		}
		handler := *h
		if len(c.Params) > 0 {
			params, err := handlerParams(c.Params)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", c.Path, err)
			}
			handler.Params = params
		}
		if handler.Description == "" {
			handler.Description = c.Description
		}
		decl.Handler = &handler
	}

	for _, o := range c.Overrides {
		p, err := o.Parameter()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Path, err)
		}
		decl.Overrides = append(decl.Overrides, p)
	}

	return decl, nil
}

func handlerParams(params []Param) ([]schema.Param, error) {
	out := make([]schema.Param, 0, len(params))
	for _, p := range params {
		t, ok := types.ParseValueType(p.Type)
		if !ok {
			return nil, errs.ErrInvalidParameter.WithArgs(p.Name, "type "+p.Type)
		}
		hp := schema.Param{
			Name:     p.Name,
			Type:     t,
			Sequence: p.Sequence,
			Choices:  append([]string(nil), p.Choices...),
			Help:     p.Help,
		}
		if p.Default != nil {
			hp.Default, hp.HasDefault = scalar(p.Default), true
		}
		switch strings.ToLower(p.CatchAll) {
		case "":
		case "positional", "args":
			hp.CatchAllPositional = true
		case "keyword", "kwargs":
			hp.CatchAllKeyword = true
		default:
			return nil, errs.ErrInvalidParameter.WithArgs(p.Name, "catch_all "+p.CatchAll)
		}
		out = append(out, hp)
	}
	return out, nil
}

// Parameter converts p to a schema parameter with only its declared fields set
func (p Parameter) Parameter() (*schema.Parameter, error) {
	var configs []schema.ConfigureParameterFunc
	if len(p.Names) > 0 {
		configs = append(configs, schema.WithNames(p.Names...))
	}
	if p.Kind != "" {
		kind, ok := parseKind(p.Kind)
		if !ok {
			return nil, errs.ErrInvalidParameter.WithArgs(p.Dest, "kind "+p.Kind)
		}
		configs = append(configs, schema.WithKind(kind))
	}
	if p.Arity != "" {
		arity, ok := types.ParseArity(p.Arity)
		if !ok {
			return nil, errs.ErrInvalidParameter.WithArgs(p.Dest, "arity "+p.Arity)
		}
		configs = append(configs, schema.WithArity(arity))
	}
	if p.Type != "" {
		t, ok := types.ParseValueType(p.Type)
		if !ok {
			return nil, errs.ErrInvalidParameter.WithArgs(p.Dest, "type "+p.Type)
		}
		configs = append(configs, schema.WithType(t))
	}
	if p.Default != nil {
		configs = append(configs, schema.WithDefault(scalar(p.Default)))
	}
	if p.Required != nil {
		configs = append(configs, schema.WithRequired(*p.Required))
	}
	if p.Sequence != nil {
		configs = append(configs, schema.WithSequence(*p.Sequence))
	}
	if len(p.Choices) > 0 {
		configs = append(configs, schema.WithChoices(p.Choices...))
	}
	if p.Help != "" {
		configs = append(configs, schema.WithHelp(p.Help))
	}
	if p.Group != "" {
		configs = append(configs, schema.WithGroup(p.Group))
	}
	if p.Env != "" {
		configs = append(configs, schema.WithEnv(p.Env))
	}

	param := &schema.Parameter{Dest: p.Dest}
	if err := param.Set(configs...); err != nil {
		return nil, err
	}
	return param, nil
}

// GlobalParameters converts the globals of d
func (d *Document) GlobalParameters() ([]*schema.Parameter, error) {
	out := make([]*schema.Parameter, 0, len(d.Globals))
	for _, g := range d.Globals {
		p, err := g.Parameter()
		if err != nil {
			return nil, errs.Config(err)
		}
		out = append(out, p)
	}
	return out, nil
}

// EngineOptions returns the engine configuration declared by d
func (d *Document) EngineOptions() ([]dispatch.ConfigureEngineFunc, error) {
	var opts []dispatch.ConfigureEngineFunc
	if d.Program != "" {
		opts = append(opts, dispatch.WithProgramName(d.Program))
	}
	globals, err := d.GlobalParameters()
	if err != nil {
		return nil, err
	}
	if len(globals) > 0 {
		opts = append(opts, dispatch.WithTreeOptions(dispatch.WithGlobalParameters(globals...)))
	}
	if q := d.Quiet; q != nil {
		switch {
		case q.Disable:
			opts = append(opts, dispatch.WithQuietFlag())
		case len(q.Names) > 0:
			opts = append(opts, dispatch.WithQuietFlag(q.Names...))
		}
		if q.Default != "" {
			opts = append(opts, dispatch.WithDefaultQuiet(q.Default))
		}
		if q.Env != "" {
			opts = append(opts, dispatch.WithQuietEnv(q.Env))
		}
	}
	return opts, nil
}

func parseKind(s string) (types.Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unset", "both":
		return types.KindUnset, true
	case "positional", "pos", "argument":
		return types.KindPositional, true
	case "keyword", "kw", "option", "flag":
		return types.KindKeyword, true
	}
	return types.KindUnset, false
}
