// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package util

import (
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
)

// Canonical normalizes a command segment or option name to lower-case kebab form:
// "FooBar", "foo_bar" and "foo-bar" all become "foo-bar".
func Canonical(s string) string {
	return strcase.ToKebab(strings.TrimSpace(s))
}

// Variations returns every case/separator spelling of s that resolution should accept,
// canonical form first, without duplicates.
func Variations(s string) []string {
	canonical := Canonical(s)
	if canonical == "" {
		return nil
	}

	candidates := []string{
		canonical,
		strcase.ToSnake(canonical),
		strcase.ToCamel(canonical),
		strcase.ToLowerCamel(canonical),
		strcase.ToScreamingSnake(canonical),
		strings.ReplaceAll(canonical, "-", ""),
		s,
	}

	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	return out
}

// KeywordName converts a handler parameter name to its long option spelling ("dry_run" -> "dry-run")
func KeywordName(param string) string {
	return Canonical(param)
}

// KeywordKey converts an option spelling to the key used for catch-all keyword values ("dry-run" -> "dry_run")
func KeywordKey(name string) string {
	return strings.ReplaceAll(strings.TrimLeft(name, "-"), "-", "_")
}

// LevenshteinDistance calculates the Levenshtein distance between two strings
func LevenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}

// Suggestions returns the candidates within threshold edits of input, closest first
func Suggestions(input string, candidates []string, threshold int) []string {
	if threshold <= 0 || input == "" {
		return nil
	}

	type scored struct {
		name string
		dist int
	}
	var matches []scored
	seen := map[string]struct{}{}
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		if d := LevenshteinDistance(input, c); d <= threshold {
			matches = append(matches, scored{name: c, dist: d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].dist < matches[j].dist
	})

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

// Truncate truncates a string to the specified length
func Truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	if length <= 3 {
		return "..."
	}
	return s[:length-3] + "..."
}
