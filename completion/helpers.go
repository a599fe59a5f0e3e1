// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package completion

import (
	"strings"
)

func escapeBash(desc string) string {
	desc = strings.ReplaceAll(desc, `\`, `\\`)
	desc = strings.ReplaceAll(desc, `"`, `\"`)
	desc = strings.ReplaceAll(desc, `$`, `\$`)
	desc = strings.ReplaceAll(desc, "`", "\\`")
	return desc
}

func escapeFish(desc string) string {
	desc = strings.ReplaceAll(desc, `\`, `\\`)
	return strings.ReplaceAll(desc, "'", "\\'")
}

func escapePowerShell(desc string) string {
	return strings.ReplaceAll(desc, "'", "''")
}

// escapeZsh escapes a _describe item name for a single-quoted word
func escapeZsh(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ":", `\:`)
	return quoteZsh(s)
}

func quoteZsh(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}

// funcName turns a program name into a shell identifier
func funcName(programName string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, programName)
}

func allSpellings(c Command) []string {
	var out []string
	for _, f := range c.Flags {
		out = append(out, f.Spellings()...)
	}
	return out
}
