// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package dispatch

import (
	"errors"
	"reflect"
	"strings"

	"github.com/napalu/dispatch/env"
	"github.com/napalu/dispatch/errs"
	"github.com/napalu/dispatch/internal/parse"
	"github.com/napalu/dispatch/internal/util"
	"github.com/napalu/dispatch/schema"
	"github.com/napalu/dispatch/types"
	"github.com/napalu/dispatch/types/orderedmap"
	"github.com/napalu/dispatch/verbosity"
)

// Bind binds tokens to the effective schema of node. See (*Node).Bind.
func Bind(node *Node, tokens []string, resolver env.Resolver) (*Call, error) {
	return node.Bind(tokens, resolver)
}

// Bind binds the tokens left over by Resolve to the effective schema of n in three passes:
// options and their values are consumed first, the remaining tokens are assigned to
// positional parameters whose dest no option filled, and whatever is still unmatched is
// reconciled against the catch-all parameters of the handler. Environment fallbacks are
// looked up once before the first pass; a nil resolver means an empty environment.
//
// Bind keeps no state between calls and never modifies the node.
func (n *Node) Bind(tokens []string, resolver env.Resolver) (*Call, error) {
	if n.handler == nil {
		return nil, errs.Usage(errs.ErrCommandExpectsSubcommand.WithArgs(n.PathString()))
	}
	if resolver == nil {
		resolver = &env.Map{}
	}

	b := newBindState(n, tokens, resolver)
	call, err := b.run()
	if err != nil {
		if errors.Is(err, errs.ErrVerbosityGrammar) {
			return nil, err
		}
		return nil, errs.Bind(err)
	}
	return call, nil
}

// binding collects what the tokens supplied for one dest
type binding struct {
	param   *schema.Parameter
	value   any
	scalar  bool
	values  []string
	keyword bool
	toggles int
	toggle  string
	quiet   *string
}

type bindState struct {
	node       *Node
	resolver   env.Resolver
	state      parse.State
	dests      []string
	byDest     map[string][]*schema.Parameter
	long       map[string]*schema.Parameter
	short      map[string]*schema.Parameter
	bound      map[string]*binding
	envRaw     map[string]string
	candidates []string
	skipped    []string
	unknown    *orderedmap.OrderedMap[string, any]
	spelled    map[string]string
}

func newBindState(n *Node, tokens []string, resolver env.Resolver) *bindState {
	b := &bindState{
		node:     n,
		resolver: resolver,
		state:    parse.NewState(tokens),
		byDest:   map[string][]*schema.Parameter{},
		long:     map[string]*schema.Parameter{},
		short:    map[string]*schema.Parameter{},
		bound:    map[string]*binding{},
		envRaw:   map[string]string{},
		unknown:  orderedmap.NewOrderedMap[string, any](),
		spelled:  map[string]string{},
	}
	for _, p := range n.schema {
		if _, seen := b.byDest[p.Dest]; !seen {
			b.dests = append(b.dests, p.Dest)
		}
		b.byDest[p.Dest] = append(b.byDest[p.Dest], p)
		if p.Kind != types.KindKeyword {
			continue
		}
		for _, name := range p.Names {
			if len(name) == 1 {
				b.short[name] = p
			} else {
				b.long[util.Canonical(name)] = p
			}
		}
	}
	return b
}

func (b *bindState) run() (*Call, error) {
	b.resolveEnv()

	if err := b.scanKeywords(); err != nil {
		return nil, err
	}
	b.assignPositionals()

	extra, err := b.reconcileKeywords()
	if err != nil {
		return nil, err
	}
	positionals, err := b.reconcilePositionals()
	if err != nil {
		return nil, err
	}

	return b.finish(positionals, extra)
}

func (b *bindState) resolveEnv() {
	for _, dest := range b.dests {
		p := b.primary(dest)
		if p.EnvFallback == "" || (b.hasDefault(dest) && p.Type != types.TypeVerbosity) {
			continue
		}
		if v, ok := b.resolver.Lookup(p.EnvFallback); ok {
			b.envRaw[dest] = v
		}
	}
}

// scanKeywords is the first pass: options consume their values, everything else becomes a positional candidate
func (b *bindState) scanKeywords() error {
	for b.state.Advance() {
		tok := b.state.CurrentArg()
		if tok == parse.EndOfOptions {
			for b.state.Advance() {
				b.candidates = append(b.candidates, b.state.CurrentArg())
			}
			break
		}
		if !parse.IsKeyword(tok) {
			b.candidates = append(b.candidates, tok)
			continue
		}
		if err := b.keyword(tok); err != nil {
			return err
		}
	}
	return nil
}

func (b *bindState) keyword(tok string) error {
	name, inline, hasInline := parse.SplitKeyword(tok)
	long := parse.IsLong(tok)

	if !long && !hasInline && len(name) > 1 && b.expandCluster(name) {
		return nil
	}

	p := b.lookup(name)
	if p == nil && !long && len(name) > 1 && !hasInline {
		if sp, ok := b.short[name[:1]]; ok && sp.Arity != types.Flag && sp.Type != types.TypeVerbosity {
			p, inline, hasInline = sp, name[1:], true
		}
	}
	if p == nil {
		return b.unknownKeyword(tok, name, inline, hasInline)
	}

	switch {
	case p.Type == types.TypeVerbosity:
		return b.verbosity(p, tok, long, inline, hasInline)
	case p.Arity == types.Flag:
		value := p.FlagValue()
		if hasInline {
			v, err := b.convert(p, inline)
			if err != nil {
				return err
			}
			value = v.(bool)
		}
		return b.setScalar(p, value, true)
	case p.Arity.Variadic():
		var values []string
		if hasInline {
			values = util.SplitList(inline, nil)
		} else {
			values = b.takeValues()
		}
		if len(values) == 0 && p.Arity == types.OneOrMore {
			return errs.ErrFlagExpectsValue.WithArgs(tok)
		}
		bd := b.binding(p, true)
		bd.values = append(bd.values, values...)
		return nil
	}

	raw, found := inline, hasInline
	if !found {
		raw, found = b.takeValue()
	}
	if !found {
		switch {
		case p.Arity == types.ZeroOrOne && p.HasDefault:
			return b.setScalar(p, schema.CloneValue(p.Default), true)
		case p.Arity == types.ZeroOrOne && p.Type == types.TypeString:
			return b.setScalar(p, "", true)
		}
		return errs.ErrFlagExpectsValue.WithArgs(tok)
	}
	v, err := b.convert(p, raw)
	if err != nil {
		return err
	}
	return b.setScalar(p, v, true)
}

// expandCluster rewrites -abc into -a -b -c when every letter is a flag or a verbosity toggle
func (b *bindState) expandCluster(name string) bool {
	expanded := make([]string, 0, len(name))
	for _, r := range name {
		p, ok := b.short[string(r)]
		if !ok || (p.Arity != types.Flag && p.Type != types.TypeVerbosity) {
			return false
		}
		expanded = append(expanded, "-"+string(r))
	}
	pos := b.state.Pos()
	b.state.ReplaceArgAt(pos, expanded...)
	b.state.SetPos(pos - 1)
	return true
}

func (b *bindState) lookup(name string) *schema.Parameter {
	if len(name) == 1 {
		return b.short[name]
	}
	return b.long[util.Canonical(name)]
}

// takeValue consumes the next token when it is not an option
func (b *bindState) takeValue() (string, bool) {
	next, ok := b.state.Peek()
	if !ok || parse.IsKeyword(next) || next == parse.EndOfOptions {
		return "", false
	}
	b.state.Advance()
	return next, true
}

// takeValues consumes tokens up to the next option
func (b *bindState) takeValues() []string {
	var values []string
	for {
		v, ok := b.takeValue()
		if !ok {
			return values
		}
		values = append(values, v)
	}
}

// verbosity handles the quiet option: -q toggles count, --quiet takes an optional grammar value
func (b *bindState) verbosity(p *schema.Parameter, tok string, long bool, inline string, hasInline bool) error {
	bd := b.binding(p, true)
	if !long && !hasInline {
		if bd.quiet != nil {
			return errs.ErrConflictingValues.WithArgs(p.DisplayName(), *bd.quiet, tok)
		}
		bd.toggles++
		bd.toggle = tok
		return nil
	}

	raw := inline
	if !hasInline {
		if next, ok := b.state.Peek(); ok && isGrammarToken(next) && b.lookupToken(next) == nil {
			b.state.Advance()
			raw = next
		}
	}
	if bd.toggles > 0 {
		return errs.ErrConflictingValues.WithArgs(p.DisplayName(), bd.toggle, raw)
	}
	if bd.quiet != nil && *bd.quiet != raw {
		return errs.ErrConflictingValues.WithArgs(p.DisplayName(), *bd.quiet, raw)
	}
	bd.quiet = &raw
	return nil
}

// isGrammarToken accepts a separate quiet value: a +/- modifier followed by level letters,
// or upper-case level letters. Lower-case words are left to the positional pass.
func isGrammarToken(s string) bool {
	body := s
	modified := false
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		body, modified = s[1:], true
	}
	if body == "" {
		return false
	}
	for _, r := range body {
		if _, ok := verbosity.LevelFromLetter(r); !ok {
			return false
		}
		if !modified && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func (b *bindState) lookupToken(tok string) *schema.Parameter {
	if !parse.IsKeyword(tok) {
		return nil
	}
	name, _, _ := parse.SplitKeyword(tok)
	if p := b.lookup(name); p != nil {
		return p
	}
	if !parse.IsLong(tok) && len(name) > 1 {
		if _, ok := b.short[name[:1]]; ok {
			return b.short[name[:1]]
		}
	}
	return nil
}

func (b *bindState) unknownKeyword(tok, name, inline string, hasInline bool) error {
	key := util.KeywordKey(name)
	var value any = true
	if hasInline {
		value = inline
	} else if v, ok := b.takeValue(); ok {
		value = v
	}
	if existing, ok := b.unknown.Get(key); ok && !reflect.DeepEqual(existing, value) {
		return errs.ErrConflictingValues.WithArgs(tok, existing, value)
	}
	b.unknown.Set(key, value)
	if _, ok := b.spelled[key]; !ok {
		b.spelled[key] = strings.SplitN(tok, "=", 2)[0]
	}
	return nil
}

// assignPositionals is the second pass
func (b *bindState) assignPositionals() {
	candidates := b.candidates
	for _, dest := range b.dests {
		for _, p := range b.byDest[dest] {
			if p.Kind != types.KindPositional {
				continue
			}
			if bd, ok := b.bound[dest]; ok && bd.keyword {
				b.skipped = append(b.skipped, dest)
				continue
			}
			if len(candidates) == 0 {
				continue
			}
			if p.Arity.Variadic() {
				bd := b.binding(p, false)
				bd.values = append(bd.values, candidates...)
				candidates = nil
				continue
			}
			bd := b.binding(p, false)
			bd.values = append(bd.values, candidates[0])
			candidates = candidates[1:]
		}
	}
	b.candidates = candidates
}

// reconcileKeywords is the first half of the third pass
func (b *bindState) reconcileKeywords() (*orderedmap.OrderedMap[string, any], error) {
	if b.node.catchAllKw != "" {
		return b.unknown, nil
	}

	var err error
	b.unknown.Range(func(key string, value any) bool {
		p := b.matchHandlerParam(key)
		if p == nil {
			err = b.unknownError(key)
			return false
		}
		err = b.assignUnknown(p, key, value)
		return err == nil
	})
	return nil, err
}

// matchHandlerParam finds a handler parameter named key that has not received a value
func (b *bindState) matchHandlerParam(key string) *schema.Parameter {
	canonical := util.Canonical(key)
	for _, hp := range b.node.handler.Params {
		if hp.CatchAll() || util.Canonical(hp.Name) != canonical || b.isOmitted(hp.Name) {
			continue
		}
		if _, filled := b.bound[hp.Name]; filled {
			continue
		}
		if params, ok := b.byDest[hp.Name]; ok {
			return b.preferKeyword(params)
		}
	}
	return nil
}

func (b *bindState) assignUnknown(p *schema.Parameter, key string, value any) error {
	spelling := b.spelled[key]
	if flag, ok := value.(bool); ok {
		if p.Type != types.TypeBool || p.Sequence {
			return errs.ErrFlagExpectsValue.WithArgs(spelling)
		}
		if flag {
			return b.setScalar(p, p.FlagValue(), true)
		}
	}
	raw := value.(string)
	if p.Arity.Variadic() {
		bd := b.binding(p, true)
		bd.values = append(bd.values, util.SplitList(raw, nil)...)
		return nil
	}
	if p.Type == types.TypeVerbosity {
		bd := b.binding(p, true)
		bd.quiet = &raw
		return nil
	}
	v, err := b.convert(p, raw)
	if err != nil {
		return err
	}
	return b.setScalar(p, v, true)
}

func (b *bindState) unknownError(key string) error {
	spelling := b.spelled[key]
	var names []string
	for _, dest := range b.dests {
		for _, p := range b.byDest[dest] {
			if p.Kind == types.KindKeyword {
				names = append(names, p.LongNames()...)
			}
		}
	}
	suggestions := util.Suggestions(util.Canonical(key), names, b.node.suggest)
	if len(suggestions) == 0 {
		return errs.ErrUnknownKeyword.WithArgs(spelling)
	}
	for i, s := range suggestions {
		suggestions[i] = "--" + s
	}
	return errs.ErrUnknownKeywordSuggest.WithArgs(spelling, quoteJoin(suggestions))
}

// reconcilePositionals is the second half of the third pass
func (b *bindState) reconcilePositionals() ([]string, error) {
	leftover := b.candidates
	if b.node.catchAllPos != "" {
		return append([]string{}, leftover...), nil
	}
	if len(leftover) == 0 {
		return nil, nil
	}
	if len(b.skipped) > 0 {
		return nil, errs.ErrPositionalKeywordConflict.WithArgs(b.primary(b.skipped[0]).DisplayName(), leftover[0])
	}
	return nil, errs.ErrUnexpectedArgument.WithArgs(leftover[0])
}

func (b *bindState) finish(positionals []string, extra *orderedmap.OrderedMap[string, any]) (*Call, error) {
	call := &Call{
		Path:        b.node.Path(),
		Positionals: positionals,
		Keywords:    map[string]any{},
	}
	verbositySet := false

	for _, dest := range b.dests {
		p := b.primary(dest)
		var (
			value any
			err   error
		)
		bd, supplied := b.bound[dest]
		raw, fromEnv := b.envRaw[dest]
		switch {
		case supplied:
			value, err = b.finalValue(p, bd)
		case fromEnv:
			value, err = b.envValue(p, raw)
		case b.hasDefault(dest):
			value = schema.CloneValue(b.defaultOf(dest))
		case b.required(dest):
			return nil, errs.ErrRequiredParameter.WithArgs(p.DisplayName())
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		if state, ok := value.(verbosity.State); ok && !verbositySet {
			call.Verbosity, verbositySet = state, true
		}
		call.Keywords[dest] = value
	}

	var err error
	extra.Range(func(key string, value any) bool {
		if existing, clash := call.Keywords[key]; clash {
			err = errs.ErrConflictingValues.WithArgs(b.spelled[key], existing, value)
			return false
		}
		call.Keywords[key] = value
		return true
	})
	if err != nil {
		return nil, err
	}

	return call, nil
}

func (b *bindState) finalValue(p *schema.Parameter, bd *binding) (any, error) {
	switch {
	case p.Type == types.TypeVerbosity:
		def := b.verbosityDefault(p)
		if bd.toggles > 0 {
			return verbosity.DecodeCount(bd.toggles)
		}
		if bd.quiet != nil {
			return verbosity.Parse(*bd.quiet, def)
		}
		return def, nil
	case bd.scalar:
		return bd.value, nil
	case bd.param.Arity.Variadic():
		return b.convertList(bd.param, bd.values)
	}
	return b.convert(bd.param, bd.values[0])
}

func (b *bindState) envValue(p *schema.Parameter, raw string) (any, error) {
	switch {
	case p.Type == types.TypeVerbosity:
		return verbosity.Parse(raw, b.verbosityDefault(p))
	case p.Sequence:
		return b.convertList(p, util.SplitList(raw, nil))
	}
	return b.convert(p, raw)
}

func (b *bindState) verbosityDefault(p *schema.Parameter) verbosity.State {
	if state, ok := p.Default.(verbosity.State); ok {
		return state
	}
	if s, ok := p.Default.(string); ok {
		if state, err := verbosity.Parse(s, verbosity.None()); err == nil {
			return state
		}
	}
	return verbosity.None()
}

func (b *bindState) convert(p *schema.Parameter, raw string) (any, error) {
	v, err := util.ConvertValue(raw, p.Type)
	if err != nil {
		return nil, errs.ErrInvalidValue.WithArgs(raw, p.DisplayName()).Wrap(err)
	}
	if p.Type == types.TypeEnumSet && !util.Contains(p.Choices, raw) {
		return nil, errs.ErrInvalidChoice.WithArgs(raw, p.DisplayName(), strings.Join(p.Choices, ", "))
	}
	return v, nil
}

func (b *bindState) convertList(p *schema.Parameter, raws []string) (any, error) {
	if p.Type == types.TypeEnumSet {
		for _, raw := range raws {
			if !util.Contains(p.Choices, raw) {
				return nil, errs.ErrInvalidChoice.WithArgs(raw, p.DisplayName(), strings.Join(p.Choices, ", "))
			}
		}
	}
	v, err := util.ConvertList(raws, p.Type)
	if err != nil {
		return nil, errs.ErrInvalidValue.WithArgs(strings.Join(raws, " "), p.DisplayName()).Wrap(err)
	}
	return v, nil
}

// binding returns the binding of p's dest, creating it on first use
func (b *bindState) binding(p *schema.Parameter, keyword bool) *binding {
	bd, ok := b.bound[p.Dest]
	if !ok {
		bd = &binding{param: p}
		b.bound[p.Dest] = bd
	}
	bd.keyword = bd.keyword || keyword
	return bd
}

// setScalar records a converted scalar; a second, different value for the same dest conflicts
func (b *bindState) setScalar(p *schema.Parameter, value any, keyword bool) error {
	if bd, ok := b.bound[p.Dest]; ok {
		var previous any
		switch {
		case bd.scalar:
			previous = bd.value
		case len(bd.values) > 0:
			previous = strings.Join(bd.values, " ")
		}
		if !bd.scalar || !reflect.DeepEqual(previous, value) {
			return errs.ErrConflictingValues.WithArgs(p.DisplayName(), previous, value)
		}
		return nil
	}
	bd := b.binding(p, keyword)
	bd.value, bd.scalar = value, true
	return nil
}

// primary returns the parameter describing dest in messages: its option if it has one
func (b *bindState) primary(dest string) *schema.Parameter {
	return b.preferKeyword(b.byDest[dest])
}

func (b *bindState) preferKeyword(params []*schema.Parameter) *schema.Parameter {
	for _, p := range params {
		if p.Kind == types.KindKeyword {
			return p
		}
	}
	return params[0]
}

func (b *bindState) hasDefault(dest string) bool {
	for _, p := range b.byDest[dest] {
		if p.HasDefault {
			return true
		}
	}
	return false
}

func (b *bindState) defaultOf(dest string) any {
	for _, p := range b.byDest[dest] {
		if p.HasDefault {
			return p.Default
		}
	}
	return nil
}

func (b *bindState) required(dest string) bool {
	for _, p := range b.byDest[dest] {
		if p.Required {
			return true
		}
	}
	return false
}

func (b *bindState) isOmitted(name string) bool {
	canonical := util.Canonical(name)
	for _, o := range b.node.omitted {
		if util.Canonical(o) == canonical {
			return true
		}
	}
	return false
}
