// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"testing"

	"github.com/napalu/dispatch/env"
	"github.com/napalu/dispatch/errs"
	"github.com/napalu/dispatch/schema"
	"github.com/napalu/dispatch/types"
	"github.com/napalu/dispatch/verbosity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type recorder struct {
	calls []*Call
	err   error
}

func (r *recorder) run(_ context.Context, call *Call) error {
	r.calls = append(r.calls, call)
	return r.err
}

type engineFixture struct {
	engine *Engine
	rec    *recorder
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newFixture(t *testing.T, configs ...ConfigureEngineFunc) *engineFixture {
	t.Helper()
	f := &engineFixture{rec: &recorder{}, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	decls := []*Declaration{
		{
			Path:        []string{"build"},
			Description: "Build a target",
			Version:     "1.2.3",
			Handler: &Handler{
				Name: "build",
				Params: []schema.Param{
					{Name: "target", Help: "what to build"},
					{Name: "jobs", Type: types.TypeInt, Default: 1, Help: "parallel jobs"},
				},
				Run: f.rec.run,
			},
			Overrides: []*schema.Parameter{schema.NewParameter("jobs", schema.WithNames("jobs", "j"))},
		},
		{
			Path:    []string{"remote", "add"},
			Handler: &Handler{Name: "remote-add", Params: []schema.Param{{Name: "name"}}, Run: f.rec.run},
		},
		{
			Path:    []string{"internal"},
			Hidden:  true,
			Handler: &Handler{Name: "internal", Run: f.rec.run},
		},
	}
	configs = append([]ConfigureEngineFunc{
		WithProgramName("tool"),
		WithStdout(f.stdout),
		WithStderr(f.stderr),
		WithEnvResolver(env.NewMap(nil)),
	}, configs...)

	engine, err := New(decls, configs...)
	require.NoError(t, err)
	f.engine = engine
	return f
}

func TestEngine_Dispatch(t *testing.T) {
	f := newFixture(t)

	err := f.engine.Dispatch(context.Background(), []string{"build", "app", "-j", "4"})
	require.NoError(t, err)
	require.Len(t, f.rec.calls, 1)

	call := f.rec.calls[0]
	assert.Equal(t, []string{"build"}, call.Path)
	assert.Equal(t, "app", call.String("target"))
	assert.Equal(t, 4, call.Int("jobs"))
	assert.NotEmpty(t, call.ID)
	assert.Equal(t, verbosity.None(), call.Verbosity)
	assert.Empty(t, f.stdout.String())

	require.NoError(t, f.engine.Dispatch(context.Background(), []string{"build", "app"}))
	require.Len(t, f.rec.calls, 2)
	assert.NotEqual(t, call.ID, f.rec.calls[1].ID)
}

func TestEngine_Help(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{name: "command", args: []string{"build", "--help"}, contains: []string{"Usage: tool build <target> [<jobs>] [options]", "Build a target", "--jobs, -j <int>", "parallel jobs", "(defaults to: 1)"}},
		{name: "short form", args: []string{"build", "-h"}, contains: []string{"Usage: tool build"}},
		{name: "root", args: []string{"--help"}, contains: []string{"Usage: tool <command>", "Commands:", "build", "remote"}},
		{name: "routing node", args: []string{"remote", "--help"}, contains: []string{"Usage: tool remote <command>", "add"}},
		{name: "before missing required", args: []string{"remote", "add", "--help"}, contains: []string{"Usage: tool remote add <name>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.engine.Dispatch(context.Background(), tt.args))
			assert.Empty(t, f.rec.calls)
			for _, s := range tt.contains {
				assert.Contains(t, f.stdout.String(), s)
			}
			assert.NotContains(t, f.stdout.String(), "internal")
		})
	}
}

func TestEngine_HelpAfterEndOfOptions(t *testing.T) {
	f := newFixture(t)

	err := f.engine.Dispatch(context.Background(), []string{"build", "--", "--help"})
	require.NoError(t, err)
	require.Len(t, f.rec.calls, 1)
	assert.Equal(t, "--help", f.rec.calls[0].String("target"))
}

func TestEngine_HelpClaimedBySchema(t *testing.T) {
	rec := &recorder{}
	var stdout bytes.Buffer
	engine, err := New([]*Declaration{{
		Path: []string{"man"},
		Handler: &Handler{Name: "man", Run: rec.run, Params: []schema.Param{
			{Name: "help", Type: types.TypeBool},
		}},
		Overrides: []*schema.Parameter{schema.NewParameter("help", schema.WithKind(types.KindKeyword))},
	}}, WithStdout(&stdout), WithEnvResolver(env.NewMap(nil)))
	require.NoError(t, err)

	require.NoError(t, engine.Dispatch(context.Background(), []string{"man", "--help"}))
	require.Len(t, rec.calls, 1)
	assert.True(t, rec.calls[0].Bool("help"))
	assert.Empty(t, stdout.String())
}

func TestEngine_Version(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.engine.Dispatch(context.Background(), []string{"build", "--version"}))
	assert.Equal(t, "tool 1.2.3\n", f.stdout.String())
	assert.Empty(t, f.rec.calls)

	f.stdout.Reset()
	require.NoError(t, f.engine.Dispatch(context.Background(), []string{"--version"}))
	assert.Equal(t, "tool\n", f.stdout.String())
}

func TestEngine_Run(t *testing.T) {
	handlerErr := errors.New("disk full")

	tests := []struct {
		name       string
		args       []string
		handlerErr error
		wantCode   int
		wantStderr []string
	}{
		{name: "success", args: []string{"build", "app"}, wantCode: errs.ExitOK},
		{name: "unknown command", args: []string{"biuld"}, wantCode: errs.ExitUsage, wantStderr: []string{"tool: command not found: 'biuld' (did you mean 'build'?)", "tool --help"}},
		{name: "missing parameter", args: []string{"build"}, wantCode: errs.ExitUsage, wantStderr: []string{"missing required parameter '--target'", "tool build --help"}},
		{name: "quiet grammar", args: []string{"build", "app", "--quiet=Z"}, wantCode: errs.ExitUsage, wantStderr: []string{"unknown verbosity level 'Z'"}},
		{name: "handler failure", args: []string{"build", "app"}, handlerErr: handlerErr, wantCode: errs.ExitError, wantStderr: []string{"tool: disk full"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.rec.err = tt.handlerErr

			code := f.engine.Run(context.Background(), tt.args)
			assert.Equal(t, tt.wantCode, code)
			for _, s := range tt.wantStderr {
				assert.Contains(t, f.stderr.String(), s)
			}
		})
	}
}

func TestEngine_HandlerErrorIsUnmodified(t *testing.T) {
	f := newFixture(t)
	want := errors.New("boom")
	f.rec.err = want

	err := f.engine.Dispatch(context.Background(), []string{"build", "app"})
	assert.Same(t, want, err)
}

func TestEngine_Quiet(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		f := newFixture(t, WithDefaultQuiet("D"))
		require.NoError(t, f.engine.Dispatch(context.Background(), []string{"build", "app"}))
		assert.Equal(t, verbosity.NewState(verbosity.Debug), f.rec.calls[0].Verbosity)
	})

	t.Run("environment", func(t *testing.T) {
		f := newFixture(t,
			WithDefaultQuiet("D"),
			WithQuietEnv("TOOL_QUIET"),
			WithEnvResolver(env.NewMap(map[string]string{"TOOL_QUIET": "IW"})))
		require.NoError(t, f.engine.Dispatch(context.Background(), []string{"build", "app"}))
		assert.Equal(t, verbosity.NewState(verbosity.Info, verbosity.Warning), f.rec.calls[0].Verbosity)
	})

	t.Run("custom spellings", func(t *testing.T) {
		f := newFixture(t, WithQuietFlag("silence", "s"))
		require.NoError(t, f.engine.Dispatch(context.Background(), []string{"build", "app", "-ss"}))
		assert.Equal(t, verbosity.NewState(verbosity.Debug, verbosity.Info), f.rec.calls[0].Verbosity)

		err := f.engine.Dispatch(context.Background(), []string{"build", "app", "-q"})
		assert.ErrorIs(t, err, errs.ErrUnknownKeyword)
	})

	t.Run("disabled", func(t *testing.T) {
		f := newFixture(t, WithQuietFlag())
		err := f.engine.Dispatch(context.Background(), []string{"build", "app", "--quiet"})
		assert.ErrorIs(t, err, errs.ErrBind)
		assert.Empty(t, f.rec.calls)
	})
}

func TestEngine_CallLogger(t *testing.T) {
	var stderr bytes.Buffer
	engine, err := New([]*Declaration{{
		Path: []string{"sync"},
		Handler: &Handler{Name: "sync", Run: func(ctx context.Context, call *Call) error {
			call.Logger().Info("syncing")
			call.Logger().Warn("slow mirror")
			return nil
		}},
	}}, WithStderr(&stderr), WithEnvResolver(env.NewMap(nil)))
	require.NoError(t, err)

	require.NoError(t, engine.Dispatch(context.Background(), []string{"sync"}))
	assert.Contains(t, stderr.String(), "syncing")
	assert.Contains(t, stderr.String(), "slow mirror")
	assert.Contains(t, stderr.String(), "call_id")

	stderr.Reset()
	require.NoError(t, engine.Dispatch(context.Background(), []string{"sync", "--quiet", "I"}))
	assert.NotContains(t, stderr.String(), "syncing")
	assert.Contains(t, stderr.String(), "slow mirror")

	stderr.Reset()
	require.NoError(t, engine.Dispatch(context.Background(), []string{"sync", "--quiet"}))
	assert.Empty(t, stderr.String())
}

func TestEngine_DispatchString(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.engine.DispatchString(context.Background(), `build "my app" --jobs=2`))
	require.Len(t, f.rec.calls, 1)
	assert.Equal(t, "my app", f.rec.calls[0].String("target"))
	assert.Equal(t, 2, f.rec.calls[0].Int("jobs"))

	err := f.engine.DispatchString(context.Background(), `build "unterminated`)
	assert.ErrorIs(t, err, errs.ErrUsage)
}

func TestEngine_Localize(t *testing.T) {
	f := newFixture(t, WithLanguage(language.German))

	code := f.engine.Run(context.Background(), []string{"publish"})
	assert.Equal(t, errs.ExitUsage, code)
	assert.Contains(t, f.stderr.String(), "Befehl nicht gefunden: 'publish'")
}

func TestNew_Errors(t *testing.T) {
	decls := []*Declaration{{Path: []string{"x"}, Handler: handler("x")}}

	_, err := New(decls, WithEnvResolver(nil))
	assert.ErrorIs(t, err, errs.ErrConfig)
	assert.ErrorIs(t, err, errs.ErrConfiguringEngine)

	_, err = New(decls, WithDefaultQuiet("Q"))
	assert.ErrorIs(t, err, errs.ErrConfig)
	assert.ErrorIs(t, err, errs.ErrUnknownLevel)

	_, err = New(nil)
	assert.ErrorIs(t, err, errs.ErrEmptyTree)

	_, err = New([]*Declaration{{Path: []string{"x"}}})
	assert.ErrorIs(t, err, errs.ErrRoutingNodeWithoutChildren)
}

func TestEngine_CompletionData(t *testing.T) {
	f := newFixture(t)
	data := f.engine.CompletionData()

	assert.Equal(t, []string{"build", "remote"}, data.Root.Subcommands)
	assert.NotNil(t, data.Root.Flags)

	build, ok := data.Find("build")
	require.True(t, ok)
	assert.Equal(t, "Build a target", build.Description)

	var spellings []string
	for _, fl := range build.Flags {
		spellings = append(spellings, fl.Spellings()...)
	}
	assert.Subset(t, spellings, []string{"--target", "--jobs", "-j", "--quiet", "-q", "--help", "-h", "--version"})

	_, ok = data.Find("remote", "add")
	assert.True(t, ok)
	_, ok = data.Find("internal")
	assert.False(t, ok)
}

type slotKey struct{}

func TestEngine_ConcurrentDispatch(t *testing.T) {
	const workers = 64
	results := make([]*Call, workers)
	record := func(ctx context.Context, call *Call) error {
		results[ctx.Value(slotKey{}).(int)] = call
		return nil
	}

	decls := []*Declaration{
		{
			Path: []string{"build"},
			Handler: &Handler{Name: "build", Run: record, Params: []schema.Param{
				{Name: "target"},
				{Name: "jobs", Type: types.TypeInt, Default: 1},
			}},
			Overrides: []*schema.Parameter{schema.NewParameter("jobs", schema.WithNames("jobs", "j"))},
		},
		{
			Path:    []string{"remote"},
			Handler: &Handler{Name: "remote", Run: record, Params: []schema.Param{{Name: "verbose", Type: types.TypeBool}}},
		},
		{
			Path:    []string{"remote", "add"},
			Handler: &Handler{Name: "remote-add", Run: record, Params: []schema.Param{{Name: "name"}}},
		},
	}
	engine, err := New(decls,
		WithStdout(io.Discard),
		WithStderr(io.Discard),
		WithEnvResolver(env.NewMap(nil)))
	require.NoError(t, err)

	dispatchErrs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var args []string
			switch i % 4 {
			case 0:
				args = []string{"build", fmt.Sprintf("t%d", i), "-j", strconv.Itoa(i)}
			case 1:
				args = []string{"remote", "add", fmt.Sprintf("r%d", i)}
			case 2:
				args = []string{"remote", "--verbose", "--quiet=DW"}
			case 3:
				args = []string{"build"}
			}
			ctx := context.WithValue(context.Background(), slotKey{}, i)
			dispatchErrs[i] = engine.Dispatch(ctx, args)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		call := results[i]
		switch i % 4 {
		case 0:
			require.NoError(t, dispatchErrs[i], i)
			require.NotNil(t, call, i)
			assert.Equal(t, []string{"build"}, call.Path, i)
			assert.Equal(t, fmt.Sprintf("t%d", i), call.String("target"), i)
			assert.Equal(t, i, call.Int("jobs"), i)
			assert.True(t, call.Verbosity.Empty(), i)
		case 1:
			require.NoError(t, dispatchErrs[i], i)
			require.NotNil(t, call, i)
			assert.Equal(t, []string{"remote", "add"}, call.Path, i)
			assert.Equal(t, fmt.Sprintf("r%d", i), call.String("name"), i)
		case 2:
			require.NoError(t, dispatchErrs[i], i)
			require.NotNil(t, call, i)
			assert.Equal(t, []string{"remote"}, call.Path, i)
			assert.True(t, call.Bool("verbose"), i)
			assert.Equal(t, verbosity.NewState(verbosity.Debug, verbosity.Warning), call.Verbosity, i)
		case 3:
			assert.ErrorIs(t, dispatchErrs[i], errs.ErrRequiredParameter, i)
			assert.Nil(t, call, i)
		}
	}
}
