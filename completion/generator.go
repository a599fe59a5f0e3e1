// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package completion

import (
	"sort"

	"github.com/napalu/dispatch/errs"
)

// Generator renders the completion script of a program for one shell
type Generator interface {
	Generate(programName string, data Data) string
}

var generators = map[string]Generator{
	"bash":       &BashGenerator{},
	"zsh":        &ZshGenerator{},
	"fish":       &FishGenerator{},
	"powershell": &PowerShellGenerator{},
}

// GetGenerator returns the generator of shell
func GetGenerator(shell string) (Generator, error) {
	g, ok := generators[shell]
	if !ok {
		return nil, errs.ErrUnsupportedShell.WithArgs(shell)
	}
	return g, nil
}

// Shells returns the supported shell names, sorted
func Shells() []string {
	out := make([]string, 0, len(generators))
	for name := range generators {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
