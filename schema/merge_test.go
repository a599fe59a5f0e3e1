// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package schema

import (
	"testing"

	"github.com/napalu/dispatch/errs"
	"github.com/napalu/dispatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOwn(t *testing.T, params []Param, overrides ...*Parameter) []*Parameter {
	t.Helper()
	out, err := Own(params, overrides)
	require.NoError(t, err)
	return out
}

func TestMerge_HigherTierKeepsFieldsAndUnionsNames(t *testing.T) {
	own := mustOwn(t, nil, NewParameter("count", WithType(types.TypeInt), WithHelp("own help")))
	parent := mustOwn(t, nil, NewParameter("count", WithType(types.TypeInt), WithNames("count", "c"), WithHelp("parent help"), WithDefault(9)))

	merged, err := Merge(own, [][]*Parameter{parent}, nil)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, []string{"count", "c"}, merged[0].Names)
	assert.Equal(t, "own help", merged[0].Help)
	assert.False(t, merged[0].HasDefault, "fields come from the higher tier")
}

func TestMerge_MatchByName(t *testing.T) {
	own := mustOwn(t, nil, NewParameter("verbose", WithType(types.TypeBool), WithNames("verbose", "v")))
	parent := mustOwn(t, nil, NewParameter("trace", WithType(types.TypeBool), WithNames("v", "trace")))

	merged, err := Merge(own, [][]*Parameter{parent}, nil)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "verbose", merged[0].Dest)
	assert.Equal(t, []string{"verbose", "v", "trace"}, merged[0].Names)
}

func TestMerge_AppendsNewDests(t *testing.T) {
	own := mustOwn(t, []Param{{Name: "target"}})
	parent := mustOwn(t, nil, NewParameter("config", WithNames("config", "f")))

	merged, err := Merge(own, [][]*Parameter{parent}, nil)
	require.NoError(t, err)
	require.Len(t, merged, 3)
	assert.Equal(t, "config", merged[2].Dest)
	assert.NoError(t, Validate(merged))
}

func TestMerge_HigherTierDecidesKinds(t *testing.T) {
	own := mustOwn(t, []Param{{Name: "count", Type: types.TypeInt, Default: 1}},
		NewParameter("count", WithKind(types.KindKeyword)))
	parent := mustOwn(t, []Param{{Name: "count", Type: types.TypeInt, Default: 2}})
	require.Len(t, parent, 2)

	merged, err := Merge(own, [][]*Parameter{parent}, nil)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, types.KindKeyword, merged[0].Kind)
	assert.Equal(t, 1, merged[0].Default)
}

func TestMerge_EarlierInheritedWins(t *testing.T) {
	a := mustOwn(t, nil, NewParameter("level", WithHelp("from a")))
	b := mustOwn(t, nil, NewParameter("level", WithHelp("from b"), WithNames("level", "l")))

	merged, err := Merge(nil, [][]*Parameter{a, b}, nil)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "from a", merged[0].Help)
	assert.Equal(t, []string{"level", "l"}, merged[0].Names)
}

func TestMerge_Omit(t *testing.T) {
	own := mustOwn(t, []Param{{Name: "count", Type: types.TypeInt, Default: 1}})
	parent := mustOwn(t, nil, NewParameter("dry_run", WithType(types.TypeBool), WithNames("dry-run", "n")))

	merged, err := Merge(own, [][]*Parameter{parent}, []string{"n", "COUNT"})
	require.NoError(t, err)
	assert.Empty(t, merged, "omit drops every kind and works across tiers")
}

func TestMerge_SameTierConflict(t *testing.T) {
	tier := []*Parameter{
		{Dest: "level", Kind: types.KindKeyword, Names: []string{"level"}, Type: types.TypeInt, Arity: types.Exactly1},
		{Dest: "level", Kind: types.KindKeyword, Names: []string{"lvl"}, Type: types.TypeString, Arity: types.Exactly1},
	}
	_, err := Merge(nil, [][]*Parameter{tier}, nil)
	assert.ErrorIs(t, err, errs.ErrSchemaConflict)
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	own := mustOwn(t, nil, NewParameter("count", WithType(types.TypeInt)))
	parent := mustOwn(t, nil, NewParameter("count", WithType(types.TypeInt), WithNames("c")))

	_, err := Merge(own, [][]*Parameter{parent}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"count"}, own[0].Names)
	assert.Equal(t, []string{"c"}, parent[0].Names)
}

func TestMerge_OmitFromLowestTierEqualsPreRemoval(t *testing.T) {
	a := mustOwn(t, []Param{{Name: "target"}})
	b := mustOwn(t, nil, NewParameter("level", WithType(types.TypeInt), WithDefault(1)))
	c := mustOwn(t, nil,
		NewParameter("trace", WithType(types.TypeBool)),
		NewParameter("color", WithType(types.TypeBool)),
	)
	omit := []string{"trace"}

	afterwards, err := Merge(a, [][]*Parameter{b, c}, omit)
	require.NoError(t, err)
	before, err := Merge(a, [][]*Parameter{b, Omit(c, omit)}, nil)
	require.NoError(t, err)

	assert.Equal(t, Project(before), Project(afterwards))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		params []*Parameter
		want   error
	}{
		{
			name: "required with default",
			params: []*Parameter{
				{Dest: "x", Kind: types.KindKeyword, Names: []string{"x"}, Arity: types.Exactly1, Required: true, HasDefault: true, Default: "a"},
			},
			want: errs.ErrInvalidParameter,
		},
		{
			name: "non-boolean flag",
			params: []*Parameter{
				{Dest: "x", Kind: types.KindKeyword, Names: []string{"x"}, Arity: types.Flag, Type: types.TypeInt},
			},
			want: errs.ErrInvalidParameter,
		},
		{
			name: "enum without choices",
			params: []*Parameter{
				{Dest: "x", Kind: types.KindKeyword, Names: []string{"x"}, Arity: types.Exactly1, Type: types.TypeEnumSet},
			},
			want: errs.ErrInvalidParameter,
		},
		{
			name: "duplicate option name",
			params: []*Parameter{
				{Dest: "a", Kind: types.KindKeyword, Names: []string{"v"}, Arity: types.Exactly1},
				{Dest: "b", Kind: types.KindKeyword, Names: []string{"v"}, Arity: types.Exactly1},
			},
			want: errs.ErrDuplicateName,
		},
		{
			name: "dest declared twice",
			params: []*Parameter{
				{Dest: "a", Kind: types.KindPositional, Names: []string{"a"}, Arity: types.Exactly1},
				{Dest: "a", Kind: types.KindPositional, Names: []string{"a"}, Arity: types.Exactly1},
			},
			want: errs.ErrSchemaConflict,
		},
		{
			name: "positional after variadic",
			params: []*Parameter{
				{Dest: "files", Kind: types.KindPositional, Names: []string{"files"}, Arity: types.OneOrMore, Sequence: true},
				{Dest: "mode", Kind: types.KindPositional, Names: []string{"mode"}, Arity: types.ZeroOrOne},
			},
			want: errs.ErrPositionalOrder,
		},
		{
			name: "required positional after optional",
			params: []*Parameter{
				{Dest: "a", Kind: types.KindPositional, Names: []string{"a"}, Arity: types.ZeroOrOne},
				{Dest: "b", Kind: types.KindPositional, Names: []string{"b"}, Arity: types.Exactly1},
			},
			want: errs.ErrPositionalOrder,
		},
		{
			name: "enum default outside choices",
			params: []*Parameter{
				{Dest: "m", Kind: types.KindKeyword, Names: []string{"m"}, Arity: types.Exactly1, Type: types.TypeEnumSet,
					Choices: []string{"a"}, HasDefault: true, Default: "b"},
			},
			want: errs.ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(tt.params), tt.want)
		})
	}
}

func TestProject(t *testing.T) {
	params := mustOwn(t, []Param{{Name: "count", Type: types.TypeInt, Default: 1, Help: "how many"}},
		NewParameter("count", WithNames("count", "c")))
	infos := Project(params)
	require.Len(t, infos, 2)
	assert.Equal(t, []string{"count"}, infos[0].Names)
	assert.Equal(t, []string{"--count", "-c"}, infos[1].Names)
	assert.Equal(t, "1", infos[1].Default)
	assert.Equal(t, "how many", infos[1].Help)
}
