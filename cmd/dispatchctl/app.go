// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/napalu/dispatch"
	"github.com/napalu/dispatch/completion"
	"github.com/napalu/dispatch/env"
	"github.com/napalu/dispatch/internal/util"
	"github.com/napalu/dispatch/manifest"
	"github.com/napalu/dispatch/schema"
	"github.com/napalu/dispatch/types"
)

const version = "0.1.0"

type app struct {
	stdout io.Writer
	stderr io.Writer
	env    env.Resolver
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, env: env.OS{}}
}

func (a *app) declarations() []*dispatch.Declaration {
	manifestParam := schema.Param{Name: "manifest", Help: "manifest file (.yaml, .toml, .json, .jsonc)"}
	manifestOverride := func() []*schema.Parameter {
		return []*schema.Parameter{schema.NewParameter("manifest",
			schema.WithNames("manifest", "m"),
			schema.WithEnv("DISPATCHCTL_MANIFEST"))}
	}

	decls := []*dispatch.Declaration{
		{
			Path:        []string{"resolve"},
			Description: "Resolve and bind a command line against a manifest; pass the command line after --",
			Handler: &dispatch.Handler{
				Name:   "resolve",
				Params: []schema.Param{manifestParam, {Name: "tokens", CatchAllPositional: true}},
				Run:    a.resolve,
			},
			Overrides: manifestOverride(),
		},
		{
			Path:        []string{"tree"},
			Description: "Print the command tree of a manifest",
			Handler: &dispatch.Handler{
				Name: "tree",
				Params: []schema.Param{
					manifestParam,
					{Name: "hidden", Type: types.TypeBool, Help: "include hidden commands"},
				},
				Run: a.tree,
			},
			Overrides: manifestOverride(),
		},
		{
			Path:        []string{"completion"},
			Description: "Generate the completion script of a manifest's program",
			Handler: &dispatch.Handler{
				Name: "completion",
				Params: []schema.Param{
					{Name: "shell", Choices: completion.Shells(), Help: "target shell"},
					manifestParam,
					{Name: "install", Type: types.TypeBool, Help: "write the script to the shell's completion directory"},
				},
				Run: a.completion,
			},
			Overrides: manifestOverride(),
		},
		{
			Path:        []string{"run"},
			Description: "Run a command line against a manifest with handlers that print the bound call",
			Handler: &dispatch.Handler{
				Name: "run",
				Params: []schema.Param{
					manifestParam,
					{Name: "line", Help: "command line, quoted like a shell would"},
				},
				Run: a.exec,
			},
			Overrides: manifestOverride(),
		},
	}
	for _, d := range decls {
		d.Version = version
	}
	return decls
}

func (a *app) run(ctx context.Context, args []string) int {
	engine, err := dispatch.New(a.declarations(),
		dispatch.WithProgramName("dispatchctl"),
		dispatch.WithStdout(a.stdout),
		dispatch.WithStderr(a.stderr),
		dispatch.WithEnvResolver(a.env),
		dispatch.WithDefaultQuiet("D"),
		dispatch.WithQuietEnv("DISPATCHCTL_QUIET"),
	)
	if err != nil {
		fmt.Fprintf(a.stderr, "dispatchctl: %v\n", err)
		return 1
	}
	return engine.Run(ctx, args)
}

// load builds an engine for the manifest at path whose handlers print the bound call
func (a *app) load(path string) (*dispatch.Engine, *manifest.Document, error) {
	doc, err := manifest.Load(path)
	if err != nil {
		return nil, nil, err
	}

	reg := manifest.NewRegistry()
	for _, c := range doc.Commands {
		if c.Handler != "" {
			reg.Register(c.Handler, a.echo)
		}
	}
	decls, err := doc.Declarations(reg)
	if err != nil {
		return nil, nil, err
	}

	opts, err := doc.EngineOptions()
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts,
		dispatch.WithStdout(a.stdout),
		dispatch.WithStderr(a.stderr),
		dispatch.WithEnvResolver(a.env))
	engine, err := dispatch.New(decls, opts...)
	if err != nil {
		return nil, nil, err
	}
	return engine, doc, nil
}

type callReport struct {
	ID          string         `json:"id,omitempty"`
	Path        []string       `json:"path"`
	Keywords    map[string]any `json:"keywords"`
	Positionals []string       `json:"positionals,omitempty"`
	Quiet       string         `json:"quiet"`
}

func report(call *dispatch.Call) callReport {
	keywords := make(map[string]any, len(call.Keywords))
	for k, v := range call.Keywords {
		if s, ok := v.(fmt.Stringer); ok {
			keywords[k] = s.String()
			continue
		}
		keywords[k] = v
	}
	return callReport{
		ID:          call.ID,
		Path:        call.Path,
		Keywords:    keywords,
		Positionals: call.Positionals,
		Quiet:       call.Verbosity.String(),
	}
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) echo(ctx context.Context, call *dispatch.Call) error {
	call.Logger().Info("handler invoked", "path", strings.Join(call.Path, " "))
	return a.print(report(call))
}

func (a *app) resolve(ctx context.Context, call *dispatch.Call) error {
	engine, _, err := a.load(call.String("manifest"))
	if err != nil {
		return err
	}

	node, rest, err := engine.Tree().Resolve(call.Positionals)
	if err != nil {
		return err
	}
	bound, err := node.Bind(rest, a.env)
	if err != nil {
		return err
	}
	call.Logger().Debug("resolved", "command", node.PathString(), "rest", len(rest))
	return a.print(report(bound))
}

func (a *app) tree(ctx context.Context, call *dispatch.Call) error {
	engine, _, err := a.load(call.String("manifest"))
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, engine.ProgramName())
	a.printNode(engine.Tree().Root(), call.Bool("hidden"))
	return nil
}

func (a *app) printNode(n *dispatch.Node, showHidden bool) {
	for _, child := range n.Children() {
		if child.Hidden() && !showHidden {
			continue
		}
		indent := strings.Repeat("  ", len(child.Path()))
		line := indent + child.Segment()
		if !child.Runnable() {
			line += "/"
		}
		if d := child.Description(); d != "" {
			line += "  " + util.Truncate(d, 60)
		}
		fmt.Fprintln(a.stdout, line)
		for _, p := range child.Schema() {
			if p.Type == types.TypeVerbosity {
				continue
			}
			fmt.Fprintf(a.stdout, "%s  %s %s %s\n", indent, p.Kind, p.DisplayName(), p.Arity)
		}
		a.printNode(child, showHidden)
	}
}

func (a *app) completion(ctx context.Context, call *dispatch.Call) error {
	engine, _, err := a.load(call.String("manifest"))
	if err != nil {
		return err
	}

	shell := call.String("shell")
	if call.Bool("install") {
		m, err := completion.NewManager(shell, engine.ProgramName())
		if err != nil {
			return err
		}
		m.Accept(engine.CompletionData())
		path, err := m.Save()
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, path)
		return nil
	}

	g, err := completion.GetGenerator(shell)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.stdout, g.Generate(engine.ProgramName(), engine.CompletionData()))
	return err
}

func (a *app) exec(ctx context.Context, call *dispatch.Call) error {
	engine, _, err := a.load(call.String("manifest"))
	if err != nil {
		return err
	}
	return engine.DispatchString(ctx, call.String("line"))
}
