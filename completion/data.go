// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Package completion generates shell completion scripts for a dispatch command tree and
// installs them where each shell looks for them.
package completion

import "strings"

// Flag is one option as offered by completion
type Flag struct {
	Long        string   // long spelling without dashes
	Short       string   // short spelling without dash
	Description string   // help text
	TakesValue  bool     // the option consumes a value
	Values      []string // the accepted values, when known
}

// Spellings returns the dashed spellings of f, long first
func (f Flag) Spellings() []string {
	var out []string
	if f.Long != "" {
		out = append(out, "--"+f.Long)
	}
	if f.Short != "" {
		out = append(out, "-"+f.Short)
	}
	return out
}

// Command is one command path with its options and visible sub-commands
type Command struct {
	Path        []string
	Description string
	Flags       []Flag
	Subcommands []string
}

// Key returns the path joined by spaces
func (c Command) Key() string {
	return strings.Join(c.Path, " ")
}

// Data is the input of every Generator: the root command followed by every visible
// command in depth-first order
type Data struct {
	Root     Command
	Commands []Command
}

// All returns the root followed by the other commands
func (d Data) All() []Command {
	return append([]Command{d.Root}, d.Commands...)
}

// Find returns the command at path
func (d Data) Find(path ...string) (Command, bool) {
	key := strings.Join(path, " ")
	for _, c := range d.All() {
		if c.Key() == key {
			return c, true
		}
	}
	return Command{}, false
}

func (d Data) description(key string) string {
	for _, c := range d.All() {
		if c.Key() == key {
			return c.Description
		}
	}
	return ""
}

func childKey(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + " " + child
}

// Paths holds the completion script locations of a shell
type Paths struct {
	Primary   string // Main completion path
	Fallback  string // Alternative path if primary isn't available
	Extension string // File extension for completion script (if any)
	Comment   string // Documentation about the path choice
}

// FileInfo holds shell-specific naming conventions
type FileInfo struct {
	Prefix    string // Some shells require specific prefixes
	Extension string // File extension if required
	Comment   string // Documentation about the naming convention
}
