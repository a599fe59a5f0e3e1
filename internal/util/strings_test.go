// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	for _, in := range []string{"FooBar", "foo_bar", "foo-bar", "fooBar", "FOO_BAR", " foo-bar "} {
		assert.Equal(t, "foo-bar", Canonical(in), in)
	}
	assert.Equal(t, "", Canonical(""))
}

func TestVariations(t *testing.T) {
	got := Variations("foo-bar")
	assert.Equal(t, "foo-bar", got[0])
	for _, want := range []string{"foo_bar", "FooBar", "fooBar", "FOO_BAR", "foobar"} {
		assert.Contains(t, got, want)
	}

	seen := map[string]bool{}
	for _, v := range got {
		assert.False(t, seen[v], "duplicate %s", v)
		seen[v] = true
	}

	assert.Equal(t, []string{"build"}, Variations("build")[:1])
	assert.Nil(t, Variations(""))
}

func TestKeywordKey(t *testing.T) {
	assert.Equal(t, "dry_run", KeywordKey("--dry-run"))
	assert.Equal(t, "foo", KeywordKey("foo"))
	assert.Equal(t, "dry-run", KeywordName("dry_run"))
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"build", "build", 0},
		{"biuld", "build", 2},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevenshteinDistance(tt.s1, tt.s2), "%s/%s", tt.s1, tt.s2)
	}
}

func TestSuggestions(t *testing.T) {
	candidates := []string{"build", "bundle", "test", "built"}
	assert.Equal(t, []string{"build"}, Suggestions("buld", candidates, 1))
	assert.Equal(t, []string{"build", "built"}, Suggestions("buld", candidates, 2))
	assert.Nil(t, Suggestions("buld", candidates, 0))
	assert.Empty(t, Suggestions("xyz", candidates, 1))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "long...", Truncate("longer text", 7))
	assert.Equal(t, "...", Truncate("abcdef", 2))
}
