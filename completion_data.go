// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package dispatch

import (
	"github.com/napalu/dispatch/completion"
	"github.com/napalu/dispatch/schema"
	"github.com/napalu/dispatch/types"
	"github.com/napalu/dispatch/types/queue"
)

// CompletionData collects the visible commands of tree and their options for completion
// script generators, breadth first. Hidden commands and everything below them are skipped.
// A routing root offers the global parameters.
func CompletionData(tree *Tree) completion.Data {
	var data completion.Data
	data.Root = completionCommand(tree, tree.root)

	q := queue.New[*Node]()
	for _, child := range tree.root.Children() {
		q.Enqueue(child)
	}
	for q.Len() > 0 {
		n, _ := q.Dequeue()
		if n.hidden {
			continue
		}
		data.Commands = append(data.Commands, completionCommand(tree, n))
		for _, child := range n.Children() {
			q.Enqueue(child)
		}
	}
	return data
}

func completionCommand(tree *Tree, n *Node) completion.Command {
	c := completion.Command{
		Path:        n.Path(),
		Description: n.description,
		Subcommands: n.childNames(),
	}
	params := n.schema
	if n.handler == nil {
		params = tree.globals
	}
	for _, p := range params {
		if p.Kind == types.KindKeyword {
			c.Flags = append(c.Flags, completionFlag(p))
		}
	}
	return c
}

// CompletionData is CompletionData of the engine's tree with the help and version
// options added to every command
func (e *Engine) CompletionData() completion.Data {
	data := CompletionData(e.Tree())
	extra := e.builtinFlags()
	data.Root.Flags = append(data.Root.Flags, extra...)
	for i := range data.Commands {
		data.Commands[i].Flags = append(data.Commands[i].Flags, extra...)
	}
	return data
}

func (e *Engine) builtinFlags() []completion.Flag {
	var out []completion.Flag
	if f, ok := spellingsFlag(e.helpFlags, "show help"); ok {
		out = append(out, f)
	}
	if f, ok := spellingsFlag(e.versionFlags, "show version"); ok {
		out = append(out, f)
	}
	return out
}

func spellingsFlag(names []string, description string) (completion.Flag, bool) {
	f := completion.Flag{Description: description}
	for _, n := range names {
		if len(n) == 1 && f.Short == "" {
			f.Short = n
		} else if len(n) > 1 && f.Long == "" {
			f.Long = n
		}
	}
	return f, f.Long != "" || f.Short != ""
}

func completionFlag(p *schema.Parameter) completion.Flag {
	f := completion.Flag{
		Description: p.Help,
		TakesValue:  p.Arity != types.Flag && p.Type != types.TypeVerbosity,
		Values:      append([]string(nil), p.Choices...),
	}
	if long := p.LongNames(); len(long) > 0 {
		f.Long = long[0]
	}
	if short := p.ShortNames(); len(short) > 0 {
		f.Short = short[0]
	}
	if p.Type == types.TypeBool && p.Arity != types.Flag {
		f.Values = []string{"true", "false"}
	}
	return f
}
