// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package dispatch

import (
	"strings"

	"github.com/napalu/dispatch/internal/parse"
	"github.com/napalu/dispatch/internal/util"
	"github.com/napalu/dispatch/schema"
)

// NodeInfo is the read-only projection of a node used by help renderers and completion
type NodeInfo struct {
	Path               []string
	Aliases            []string
	Description        string
	Version            string
	Runnable           bool
	Hidden             bool
	Params             []schema.Info
	Children           []ChildInfo
	CatchAllPositional string
	CatchAllKeyword    string
}

// ChildInfo summarizes a sub-command
type ChildInfo struct {
	Name        string
	Aliases     []string
	Description string
	Hidden      bool
}

// Segment returns the canonical segment of the node; the root's is empty
func (n *Node) Segment() string {
	return n.segment
}

// Path returns the canonical segments from the root to n
func (n *Node) Path() []string {
	var path []string
	for node := n; node != nil && node.parent != nil; node = node.parent {
		path = append([]string{node.segment}, path...)
	}
	return path
}

// PathString returns the canonical path joined by spaces
func (n *Node) PathString() string {
	return strings.Join(n.Path(), " ")
}

// Parent returns the parent node, nil for the root
func (n *Node) Parent() *Node {
	return n.parent
}

// Aliases returns the alternative spellings resolving to n
func (n *Node) Aliases() []string {
	return append([]string(nil), n.aliases...)
}

// Children returns the sub-commands in registration order
func (n *Node) Children() []*Node {
	return n.children.Values()
}

// Child returns the sub-command spelled name, canonically or through an alias
func (n *Node) Child(name string) (*Node, bool) {
	child := n.lookup(name)
	return child, child != nil
}

// Handler returns the handler of n, nil for routing nodes
func (n *Node) Handler() *Handler {
	return n.handler
}

// Runnable reports whether n has a handler
func (n *Node) Runnable() bool {
	return n.handler != nil
}

// Description returns the help text of n
func (n *Node) Description() string {
	return n.description
}

// Version returns the version declared on n or its nearest ancestor
func (n *Node) Version() string {
	for node := n; node != nil; node = node.parent {
		if node.version != "" {
			return node.version
		}
	}
	return ""
}

// Hidden reports whether n is left out of help and completion
func (n *Node) Hidden() bool {
	return n.hidden
}

// Schema returns a copy of the effective schema of n
func (n *Node) Schema() []*schema.Parameter {
	out := make([]*schema.Parameter, 0, len(n.schema))
	for _, p := range n.schema {
		out = append(out, p.Clone())
	}
	return out
}

// Info returns the read-only projection of n
func (n *Node) Info() NodeInfo {
	info := NodeInfo{
		Path:               n.Path(),
		Aliases:            n.Aliases(),
		Description:        n.description,
		Version:            n.Version(),
		Runnable:           n.handler != nil,
		Hidden:             n.hidden,
		Params:             schema.Project(n.schema),
		CatchAllPositional: n.catchAllPos,
		CatchAllKeyword:    n.catchAllKw,
	}
	for _, child := range n.children.Values() {
		info.Children = append(info.Children, ChildInfo{
			Name:        child.segment,
			Aliases:     child.Aliases(),
			Description: child.description,
			Hidden:      child.hidden,
		})
	}
	return info
}

// lookup finds a child by any of its spellings. Canonical segments and aliases share one
// index, so a spelling claimed by two children belongs to the one registered first.
func (n *Node) lookup(token string) *Node {
	if token == "" || parse.IsKeyword(token) || token == parse.EndOfOptions {
		return nil
	}
	if child, ok := n.spellings.Get(token); ok {
		return child
	}
	if child, ok := n.spellings.Get(util.Canonical(token)); ok {
		return child
	}
	return nil
}

func (n *Node) childNames() []string {
	names := make([]string, 0, n.children.Count())
	for _, child := range n.children.Values() {
		if !child.hidden {
			names = append(names, child.segment)
		}
	}
	return names
}
