// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package dispatch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/napalu/dispatch/schema"
	"github.com/napalu/dispatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestRenderer_Usage(t *testing.T) {
	node := commandNode(t, []schema.Param{
		{Name: "files", Sequence: true, Help: "files to upload"},
		{Name: "format", Choices: []string{"json", "yaml"}, Default: "json", Help: "output format"},
		{Name: "extra", CatchAllPositional: true},
	}, schema.NewParameter("token", schema.WithEnv("API_TOKEN"), schema.WithRequired(true), schema.WithHelp("access token")),
		schema.NewParameter("format", schema.WithKind(types.KindKeyword)))

	r := NewRenderer(language.English)
	r.SetWidth(100)

	var buf bytes.Buffer
	require.NoError(t, r.Usage(&buf, "tool", node.Info()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Usage: tool cmd <files>... [options] [<extra>...]\n"), out)
	assert.Contains(t, out, "Arguments:")
	assert.Contains(t, out, "files to upload")
	assert.Contains(t, out, "Options:")
	assert.Contains(t, out, "--format {json|yaml}")
	assert.Contains(t, out, "output format (defaults to: json)")
	assert.Contains(t, out, "--token <string>")
	assert.Contains(t, out, "access token (env: API_TOKEN) (required)")
	assert.Contains(t, out, "--quiet, -q [LEVELS]")
	assert.NotContains(t, out, "defaults to: -DIWEC", "an empty quiet default is not displayed")
}

func TestRenderer_Localized(t *testing.T) {
	node := commandNode(t, []schema.Param{{Name: "name"}})

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(language.German).Usage(&buf, "tool", node.Info()))
	assert.True(t, strings.HasPrefix(buf.String(), "Verwendung: tool cmd"), buf.String())
}

func TestRenderer_Synopsis(t *testing.T) {
	tree, err := BuildTree([]*Declaration{
		{Path: []string{"db"}, Handler: handler("db", schema.Param{Name: "dsn", Default: "local"})},
		{Path: []string{"db", "migrate"}, Handler: handler("migrate")},
	})
	require.NoError(t, err)
	db, _ := tree.Find("db")

	r := NewRenderer(language.English)
	assert.Equal(t, "tool db [<dsn>] [options] [<command>]", r.Synopsis("tool", db.Info()))
	assert.Equal(t, "tool <command>", r.Synopsis("tool", tree.Root().Info()))
}

func TestRenderer_FlagName(t *testing.T) {
	r := NewRenderer(language.English)

	tests := []struct {
		name string
		info schema.Info
		want string
	}{
		{name: "flag", info: schema.Info{Names: []string{"--force", "-f"}, Arity: types.Flag, Type: types.TypeBool}, want: "--force, -f"},
		{name: "value", info: schema.Info{Names: []string{"--jobs"}, Arity: types.Exactly1, Type: types.TypeInt}, want: "--jobs <int>"},
		{name: "list", info: schema.Info{Names: []string{"--tag"}, Arity: types.OneOrMore, Type: types.TypeString}, want: "--tag <string>..."},
		{name: "enum", info: schema.Info{Names: []string{"--level"}, Arity: types.Exactly1, Type: types.TypeEnumSet, Choices: []string{"a", "b"}}, want: "--level {a|b}"},
		{name: "verbosity", info: schema.Info{Names: []string{"--quiet"}, Arity: types.ZeroOrOne, Type: types.TypeVerbosity}, want: "--quiet [LEVELS]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.FlagName(tt.info))
		})
	}
}

func TestWrap(t *testing.T) {
	assert.Nil(t, wrap("   ", 10))
	assert.Equal(t, []string{"one two", "three"}, wrap("one two three", 8))
	assert.Equal(t, []string{"unbreakableword"}, wrap("unbreakableword", 4))
}
