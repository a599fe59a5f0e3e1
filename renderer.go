// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package dispatch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/napalu/dispatch/errs"
	"github.com/napalu/dispatch/i18n"
	"github.com/napalu/dispatch/schema"
	"github.com/napalu/dispatch/types"
	"golang.org/x/term"
	"golang.org/x/text/language"
)

const (
	defaultWidth = 80
	minWidth     = 40
	indent       = "  "
)

// DefaultRenderer prints plain text help for a node
type DefaultRenderer struct {
	lang   language.Tag
	bundle *i18n.Bundle
	width  int
}

// NewRenderer creates a renderer using lang for its labels. Output is wrapped to the
// terminal width when stdout is a terminal.
func NewRenderer(lang language.Tag) *DefaultRenderer {
	return &DefaultRenderer{lang: lang, bundle: i18n.Default(), width: terminalWidth()}
}

// SetWidth fixes the wrap width
func (r *DefaultRenderer) SetWidth(width int) {
	r.width = max(width, minWidth)
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w < minWidth {
		return defaultWidth
	}
	return w
}

func (r *DefaultRenderer) t(key string, args ...interface{}) string {
	return r.bundle.TL(r.lang, key, args...)
}

// Usage writes the help of info to w
func (r *DefaultRenderer) Usage(w io.Writer, program string, info NodeInfo) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s: %s\n", r.t(errs.MsgUsageKey), r.Synopsis(program, info))
	if info.Description != "" {
		fmt.Fprintln(bw)
		for _, line := range wrap(info.Description, r.width) {
			fmt.Fprintln(bw, line)
		}
	}
	if info.Version != "" && len(info.Path) == 0 {
		fmt.Fprintf(bw, "%s %s\n", r.t(errs.MsgVersionKey), info.Version)
	}

	var commands [][2]string
	for _, c := range info.Children {
		if c.Hidden {
			continue
		}
		commands = append(commands, [2]string{c.Name, r.CommandDescription(c)})
	}
	r.section(bw, r.t(errs.MsgCommandsKey), commands)

	var positionals, keywords [][2]string
	for _, p := range info.Params {
		if p.Kind == types.KindPositional {
			positionals = append(positionals, [2]string{p.Dest, r.FlagDescription(p)})
		} else {
			keywords = append(keywords, [2]string{r.FlagName(p), r.FlagDescription(p)})
		}
	}
	r.section(bw, r.t(errs.MsgArgumentsKey), positionals)
	r.section(bw, r.t(errs.MsgOptionsKey), keywords)

	return bw.Flush()
}

// Synopsis returns the one-line usage of info
func (r *DefaultRenderer) Synopsis(program string, info NodeInfo) string {
	parts := append([]string{program}, info.Path...)
	hasOptions := false
	for _, p := range info.Params {
		if p.Kind == types.KindKeyword {
			hasOptions = true
			continue
		}
		arg := "<" + p.Dest + ">"
		if p.Arity.Variadic() {
			arg += "..."
		}
		if !p.Required {
			arg = "[" + arg + "]"
		}
		parts = append(parts, arg)
	}
	if hasOptions {
		parts = append(parts, "[options]")
	}
	if info.CatchAllPositional != "" {
		parts = append(parts, "[<"+info.CatchAllPositional+">...]")
	}
	if len(info.Children) > 0 {
		cmd := "<command>"
		if info.Runnable {
			cmd = "[" + cmd + "]"
		}
		parts = append(parts, cmd)
	}
	return strings.Join(parts, " ")
}

// FlagName returns the spellings of an option followed by its value placeholder
func (r *DefaultRenderer) FlagName(p schema.Info) string {
	name := strings.Join(p.Names, ", ")
	switch {
	case p.Arity == types.Flag:
		return name
	case p.Type == types.TypeVerbosity:
		return name + " [LEVELS]"
	case p.Type == types.TypeEnumSet && len(p.Choices) > 0:
		name += " {" + strings.Join(p.Choices, "|") + "}"
	default:
		name += " <" + p.Type.String() + ">"
	}
	if p.Arity.Variadic() {
		name += "..."
	}
	return name
}

// FlagDescription returns the help of a parameter with its default, environment variable and requirement
func (r *DefaultRenderer) FlagDescription(p schema.Info) string {
	var sb strings.Builder
	sb.WriteString(p.Help)
	note := func(s string) {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString("(" + s + ")")
	}
	if p.HasDefault() {
		note(r.t(errs.MsgDefaultsToKey, p.Default))
	}
	if p.Env != "" {
		note(r.t(errs.MsgEnvKey, p.Env))
	}
	if p.Required {
		note(r.t(errs.MsgRequiredKey))
	}
	return sb.String()
}

// CommandDescription returns the description of a sub-command
func (r *DefaultRenderer) CommandDescription(c ChildInfo) string {
	return c.Description
}

func (r *DefaultRenderer) section(w io.Writer, title string, rows [][2]string) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)

	col := 0
	for _, row := range rows {
		col = max(col, len(row[0]))
	}
	col = min(col, r.width/3)

	for _, row := range rows {
		left := indent + row[0]
		textWidth := max(r.width-len(indent)-col-len(indent), minWidth/2)
		lines := wrap(row[1], textWidth)
		if len(lines) == 0 {
			fmt.Fprintln(w, left)
			continue
		}
		pad := strings.Repeat(" ", len(indent)+col+len(indent))
		if len(row[0]) > col {
			fmt.Fprintln(w, left)
			left = pad
		} else {
			left += strings.Repeat(" ", col-len(row[0])+len(indent))
		}
		fmt.Fprintln(w, left+lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintln(w, pad+line)
		}
	}
}

// wrap breaks text into lines of at most width runes, splitting on spaces
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
