// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Package dispatch routes a command line to the handler registered for it.
//
// Commands are declared as a flat list of Declarations whose paths form a tree
// (BuildTree). A command line is resolved to the deepest matching node (Resolve) and
// the remaining tokens are bound to the node's effective schema (Bind): the parameters
// inferred from its handler, adjusted by overrides and merged with the schemas of the
// declarations it inherits from. The Engine ties both steps together, invokes the
// handler and provides built-in help, version and quiet options.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/napalu/dispatch/env"
	"github.com/napalu/dispatch/errs"
	"github.com/napalu/dispatch/i18n"
	"github.com/napalu/dispatch/internal/parse"
	"github.com/napalu/dispatch/internal/util"
	"github.com/napalu/dispatch/logging"
	"github.com/napalu/dispatch/schema"
	"github.com/napalu/dispatch/types"
	"github.com/napalu/dispatch/verbosity"
	"golang.org/x/text/language"
)

// QuietDest is the key of the built-in quiet option in Call.Keywords
const QuietDest = "quiet"

var errNilResolver = errors.New("nil environment resolver")

// New creates an Engine for decls and builds its command tree. Any declaration error is
// returned here, wrapped as errs.ErrConfig.
//
//	engine, err := dispatch.New(decls,
//		dispatch.WithProgramName("tool"),
//		dispatch.WithDefaultQuiet("D"),
//		dispatch.WithQuietEnv("TOOL_QUIET"))
func New(decls []*Declaration, configs ...ConfigureEngineFunc) (*Engine, error) {
	e := &Engine{
		decls:        append([]*Declaration(nil), decls...),
		env:          env.OS{},
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		programName:  programName(),
		lang:         language.English,
		quiet:        &quietConfig{names: []string{"quiet", "q"}, dest: QuietDest, def: verbosity.None()},
		helpFlags:    []string{"help", "h"},
		versionFlags: []string{"version"},
		threshold:    defaultSuggestionDistance,
	}

	for _, config := range configs {
		var err error
		config(e, &err)
		if err != nil {
			return nil, errs.Config(err)
		}
	}

	if e.renderer == nil {
		e.renderer = NewRenderer(e.lang)
	}
	if e.logger == nil {
		e.logger = logging.New(e.stderr, e.quiet.def.Union(verbosity.NewState(verbosity.Debug)))
	}

	if err := e.Prepare(); err != nil {
		return nil, err
	}
	return e, nil
}

// Prepare (re)builds the command tree from the declarations. New calls it; it only needs
// calling again after the declarations passed to New were modified.
func (e *Engine) Prepare() error {
	configs := []ConfigureTreeFunc{
		WithTreeName(e.programName),
		WithSuggestionDistance(e.threshold),
	}
	if p := e.quietParameter(); p != nil {
		configs = append(configs, WithGlobalParameters(p))
	}
	configs = append(configs, e.treeConfigs...)

	tree, err := BuildTree(e.decls, configs...)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.tree = tree
	e.mu.Unlock()
	return nil
}

// Tree returns the command tree
func (e *Engine) Tree() *Tree {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tree
}

// ProgramName returns the name used in help and messages
func (e *Engine) ProgramName() string {
	return e.programName
}

func (e *Engine) quietParameter() *schema.Parameter {
	if e.quiet.disabled {
		return nil
	}
	configs := []schema.ConfigureParameterFunc{
		schema.WithNames(e.quiet.names...),
		schema.WithKind(types.KindKeyword),
		schema.WithType(types.TypeVerbosity),
		schema.WithDefault(e.quiet.def),
		schema.WithHelp("suppress log levels: D, I, W, E, C; -LEVELS keeps only those, +LEVELS un-suppresses"),
	}
	if e.quiet.envName != "" {
		configs = append(configs, schema.WithEnv(e.quiet.envName))
	}
	return schema.NewParameter(e.quiet.dest, configs...)
}

// Dispatch resolves args, binds the remaining tokens and invokes the handler. Help and
// version options are answered without binding. Errors from resolution and binding carry
// their class (errs.ErrUsage, errs.ErrBind, errs.ErrVerbosityGrammar); handler errors are
// returned unmodified.
func (e *Engine) Dispatch(ctx context.Context, args []string) error {
	tree := e.Tree()
	node, rest, err := tree.Resolve(args)

	switch {
	case e.requested(node, rest, e.helpFlags):
		return e.renderer.Usage(e.stdout, e.programName, node.Info())
	case e.requested(node, rest, e.versionFlags):
		_, err := fmt.Fprintln(e.stdout, strings.TrimSpace(e.programName+" "+node.Version()))
		return err
	case err != nil:
		return err
	}

	call, err := node.Bind(rest, e.env)
	if err != nil {
		return err
	}
	call.ID = uuid.NewString()
	call.logger = e.logger.With("call_id", call.ID, "command", node.PathString())

	log := call.Logger()
	log.Debug("dispatching", "handler", node.handler.Name, "keywords", len(call.Keywords), "positionals", len(call.Positionals))
	if err := node.handler.Run(ctx, call); err != nil {
		log.Debug("handler failed", "error", err)
		return err
	}
	log.Debug("handler finished")
	return nil
}

// DispatchString splits line with shell quoting rules and dispatches the result
func (e *Engine) DispatchString(ctx context.Context, line string) error {
	args, err := parse.Split(line)
	if err != nil {
		return errs.Usage(err)
	}
	return e.Dispatch(ctx, args)
}

// Run dispatches args, prints any error to stderr and returns the process exit status
func (e *Engine) Run(ctx context.Context, args []string) int {
	err := e.Dispatch(ctx, args)
	if err != nil {
		fmt.Fprintf(e.stderr, "%s: %s\n", e.programName, e.Localize(err))
		if errors.Is(err, errs.ErrUsage) || errors.Is(err, errs.ErrBind) {
			fmt.Fprintf(e.stderr, "%s\n", e.hint(args))
		}
	}
	return errs.ExitCode(err)
}

// Localize renders err in the engine's language
func (e *Engine) Localize(err error) string {
	var ce *errs.ClassError
	if errors.As(err, &ce) {
		return ce.Localize(e.lang)
	}
	var te i18n.TranslatableError
	if errors.As(err, &te) {
		return te.Localize(e.lang)
	}
	return err.Error()
}

func (e *Engine) hint(args []string) string {
	node, _ := e.Tree().Match(args)
	cmd := strings.TrimSpace(e.programName + " " + node.PathString())
	if len(e.helpFlags) == 0 {
		return cmd
	}
	return fmt.Sprintf("%s %s", cmd, spelling(e.helpFlags[0]))
}

// requested reports whether one of names appears among tokens before the end-of-options
// marker and is not claimed by a parameter of node
func (e *Engine) requested(node *Node, tokens []string, names []string) bool {
	if len(names) == 0 {
		return false
	}
	for _, tok := range tokens {
		if tok == parse.EndOfOptions {
			return false
		}
		if !parse.IsKeyword(tok) {
			continue
		}
		name, _, _ := parse.SplitKeyword(tok)
		for _, n := range names {
			if !sameSpelling(name, n) {
				continue
			}
			if node.claims(name) {
				return false
			}
			return true
		}
	}
	return false
}

func sameSpelling(a, b string) bool {
	if len(a) == 1 || len(b) == 1 {
		return a == b
	}
	return util.Canonical(a) == util.Canonical(b)
}

func spelling(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}

// claims reports whether a keyword parameter of n is spelled name
func (n *Node) claims(name string) bool {
	for _, p := range n.schema {
		if p.Kind != types.KindKeyword {
			continue
		}
		for _, pn := range p.Names {
			if sameSpelling(pn, name) {
				return true
			}
		}
	}
	return false
}

func programName() string {
	if len(os.Args) == 0 {
		return "dispatch"
	}
	name := os.Args[0]
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return name
}
