// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultState_Walk(t *testing.T) {
	state := NewState([]string{"a", "b"})
	assert.Equal(t, -1, state.Pos())
	assert.Equal(t, "", state.CurrentArg())

	next, ok := state.Peek()
	require.True(t, ok)
	assert.Equal(t, "a", next)

	require.True(t, state.Advance())
	assert.Equal(t, "a", state.CurrentArg())
	require.True(t, state.Advance())
	assert.Equal(t, "b", state.CurrentArg())
	assert.False(t, state.Advance())

	_, ok = state.Peek()
	assert.False(t, ok)

	_, err := state.ArgAt(5)
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestDefaultState_DoesNotModifyInput(t *testing.T) {
	in := []string{"-abc", "x"}
	state := NewState(in)
	state.ReplaceArgAt(0, "-a", "-b", "-c")
	assert.Equal(t, []string{"-a", "-b", "-c", "x"}, state.Args())
	assert.Equal(t, []string{"-abc", "x"}, in)
	assert.Equal(t, 4, state.Len())
}

func TestDefaultState_InsertArgsAt(t *testing.T) {
	state := NewState([]string{"a", "d"})
	state.InsertArgsAt(1, "b", "c")
	assert.Equal(t, []string{"a", "b", "c", "d"}, state.Args())

	state.ReplaceArgAt(10, "z")
	assert.Equal(t, 4, state.Len())
}

func TestIsKeyword(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"--count", true},
		{"--count=5", true},
		{"-c", true},
		{"-qqq", true},
		{"-", false},
		{"--", false},
		{"-5", false},
		{"-2.5", false},
		{"value", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsKeyword(tt.token), tt.token)
	}
	assert.True(t, IsLong("--x"))
	assert.False(t, IsLong("-x"))
}

func TestSplitKeyword(t *testing.T) {
	name, value, ok := SplitKeyword("--count=5")
	assert.Equal(t, "count", name)
	assert.Equal(t, "5", value)
	assert.True(t, ok)

	name, value, ok = SplitKeyword("--quiet=")
	assert.Equal(t, "quiet", name)
	assert.Equal(t, "", value)
	assert.True(t, ok)

	name, _, ok = SplitKeyword("-v")
	assert.Equal(t, "v", name)
	assert.False(t, ok)
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple command", "build --count 5", []string{"build", "--count", "5"}},
		{"quoted arguments", `echo "hello world"`, []string{"echo", "hello world"}},
		{"single quotes", `echo 'a b' c`, []string{"echo", "a b", "c"}},
		{"multiple spaces", "a    b", []string{"a", "b"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.input)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplit_UnterminatedQuote(t *testing.T) {
	_, err := Split(`echo "open`)
	assert.Error(t, err)
}
