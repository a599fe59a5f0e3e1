// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package dispatch

import (
	"fmt"
	"strings"

	"github.com/napalu/dispatch/errs"
	"github.com/napalu/dispatch/internal/util"
	"github.com/napalu/dispatch/schema"
	"github.com/napalu/dispatch/types/orderedmap"
)

const defaultSuggestionDistance = 2

// WithTreeName sets the name shown for the root command in messages
func WithTreeName(name string) ConfigureTreeFunc {
	return func(opts *TreeOptions, err *error) {
		opts.Name = name
	}
}

// WithGlobalParameters adds parameters every command with a handler inherits with the lowest precedence
func WithGlobalParameters(params ...*schema.Parameter) ConfigureTreeFunc {
	return func(opts *TreeOptions, err *error) {
		opts.Globals = append(opts.Globals, params...)
	}
}

// WithSuggestionDistance sets the maximum edit distance of suggestions for unknown commands and options
func WithSuggestionDistance(distance int) ConfigureTreeFunc {
	return func(opts *TreeOptions, err *error) {
		opts.SuggestionDistance = distance
	}
}

type treeBuilder struct {
	opts      TreeOptions
	globals   []*schema.Parameter
	effective map[*Declaration][]*schema.Parameter
	visiting  map[*Declaration]bool
}

// BuildTree builds the command tree of decls and computes the effective schema of every
// command with a handler. Any error is a configuration error and no tree is returned.
func BuildTree(decls []*Declaration, configs ...ConfigureTreeFunc) (*Tree, error) {
	opts := TreeOptions{SuggestionDistance: defaultSuggestionDistance}
	for _, config := range configs {
		var err error
		config(&opts, &err)
		if err != nil {
			return nil, errs.Config(err)
		}
	}

	tree, err := buildTree(decls, opts)
	if err != nil {
		return nil, errs.Config(err)
	}
	return tree, nil
}

func buildTree(decls []*Declaration, opts TreeOptions) (*Tree, error) {
	b := &treeBuilder{
		opts:      opts,
		effective: map[*Declaration][]*schema.Parameter{},
		visiting:  map[*Declaration]bool{},
	}
	globals, err := schema.Own(nil, opts.Globals)
	if err != nil {
		return nil, err
	}
	b.globals = globals

	tree := &Tree{root: newNode("", nil), name: opts.Name, threshold: opts.SuggestionDistance, globals: globals}
	declared := 0
	for _, d := range decls {
		if d == nil {
			continue
		}
		declared++
		if err := b.attach(tree, d); err != nil {
			return nil, err
		}
	}
	if declared == 0 {
		return nil, errs.ErrEmptyTree
	}

	var walkErr error
	tree.Walk(func(n *Node) bool {
		tree.size++
		if n.handler == nil {
			if n.children.Count() == 0 {
				walkErr = errs.ErrRoutingNodeWithoutChildren.WithArgs(tree.display(n))
				return false
			}
			return true
		}
		if walkErr = b.materialize(tree, n); walkErr != nil {
			return false
		}
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return tree, nil
}

func newNode(segment string, parent *Node) *Node {
	return &Node{
		segment:   segment,
		parent:    parent,
		children:  orderedmap.NewOrderedMap[string, *Node](),
		spellings: orderedmap.NewOrderedMap[string, *Node](),
	}
}

// attach walks to the node of d's path, creating routing nodes on the way
func (b *treeBuilder) attach(tree *Tree, d *Declaration) error {
	segments, err := splitPath(d.Path)
	if err != nil {
		return err
	}

	node := tree.root
	for _, seg := range segments {
		canonical := util.Canonical(seg)
		child, ok := node.children.Get(canonical)
		if !ok {
			child = newNode(canonical, node)
			node.children.Set(canonical, child)
			node.spellings.SetIfAbsent(canonical, child)
			node.registerAliases(child, seg)
		}
		node = child
	}

	if d.Handler != nil {
		if node.handler != nil {
			return errs.ErrDuplicatePath.WithArgs(tree.display(node))
		}
		if d.Handler.Run == nil {
			return errs.ErrNilHandlerFunc.WithArgs(handlerName(d, node))
		}
		node.handler = d.Handler
		node.decl = d
	}

	if d.Description != "" {
		node.description = d.Description
	} else if node.description == "" && d.Handler != nil {
		node.description = d.Handler.Description
	}
	if d.Version != "" {
		node.version = d.Version
	}
	node.hidden = node.hidden || d.Hidden

	if node.parent != nil {
		for _, alias := range d.Aliases {
			node.parent.registerAliases(node, alias)
		}
		if d.AliasSeed != "" {
			node.parent.registerAliases(node, d.AliasSeed)
		}
	}

	return nil
}

// materialize computes the effective schema of a node with a handler
func (b *treeBuilder) materialize(tree *Tree, n *Node) error {
	own, err := b.schemaOf(n.decl)
	if err != nil {
		return err
	}
	effective, err := schema.Merge(own, [][]*schema.Parameter{b.globals}, n.decl.Omit)
	if err != nil {
		return fmt.Errorf("%s: %w", tree.display(n), err)
	}
	if err := schema.Validate(effective); err != nil {
		return fmt.Errorf("%s: %w", tree.display(n), err)
	}

	n.schema = effective
	n.suggest = tree.threshold
	n.omitted = append([]string(nil), n.decl.Omit...)
	for _, p := range n.handler.Params {
		if p.CatchAllPositional && n.catchAllPos == "" {
			n.catchAllPos = p.Name
		}
		if p.CatchAllKeyword && n.catchAllKw == "" {
			n.catchAllKw = p.Name
		}
	}
	return nil
}

// schemaOf returns the merged schema of d and everything it inherits from
func (b *treeBuilder) schemaOf(d *Declaration) ([]*schema.Parameter, error) {
	if cached, ok := b.effective[d]; ok {
		return cached, nil
	}
	if b.visiting[d] {
		return nil, errs.ErrInheritanceCycle.WithArgs(declName(d))
	}
	b.visiting[d] = true
	defer delete(b.visiting, d)

	var params []schema.Param
	if d.Handler != nil {
		params = d.Handler.Params
	}
	own, err := schema.Own(params, d.Overrides)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", declName(d), err)
	}

	inherited := make([][]*schema.Parameter, 0, len(d.InheritsFrom))
	for _, parent := range d.InheritsFrom {
		if parent == nil {
			continue
		}
		tier, err := b.schemaOf(parent)
		if err != nil {
			return nil, err
		}
		inherited = append(inherited, tier)
	}

	merged, err := schema.Merge(own, inherited, d.Omit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", declName(d), err)
	}
	b.effective[d] = merged
	return merged, nil
}

// registerAliases makes every case and separator variation of spelling resolve to child.
// A spelling already taken by a sibling, canonically or as an alias, keeps pointing to
// that sibling and is not listed among the aliases of child.
func (n *Node) registerAliases(child *Node, spelling string) {
	for _, v := range util.Variations(spelling) {
		if v == child.segment {
			continue
		}
		if owner, ok := n.spellings.Get(util.Canonical(v)); ok && owner != child {
			continue
		}
		if n.spellings.SetIfAbsent(v, child) {
			child.aliases = append(child.aliases, v)
		}
	}
}

func splitPath(path []string) ([]string, error) {
	out := make([]string, 0, len(path))
	for i, seg := range path {
		var parts []string
		if strings.ContainsAny(seg, " /") {
			parts = strings.FieldsFunc(seg, func(r rune) bool { return r == ' ' || r == '/' })
		} else {
			parts = []string{seg}
		}
		if strings.TrimSpace(seg) == "" || len(parts) == 0 || util.Canonical(parts[0]) == "" {
			if i == len(path)-1 {
				// default marker: the handler belongs to the parent path
				break
			}
			return nil, errs.ErrEmptySegment.WithArgs(strings.Join(path, " "))
		}
		out = append(out, parts...)
	}
	return out, nil
}

func declName(d *Declaration) string {
	if len(d.Path) > 0 {
		return strings.Join(d.Path, " ")
	}
	if d.Handler != nil {
		return d.Handler.Name
	}
	return "<anonymous>"
}

func handlerName(d *Declaration, n *Node) string {
	if d.Handler != nil && d.Handler.Name != "" {
		return d.Handler.Name
	}
	return n.PathString()
}

// Root returns the root node
func (t *Tree) Root() *Node {
	return t.root
}

// Len returns the number of nodes including the root
func (t *Tree) Len() int {
	return t.size
}

// Find returns the node at the canonical form of path
func (t *Tree) Find(path ...string) (*Node, bool) {
	node := t.root
	for _, seg := range path {
		child, ok := node.children.Get(util.Canonical(seg))
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// Walk visits the nodes depth-first in registration order until fn returns false
func (t *Tree) Walk(fn func(n *Node) bool) {
	walk(t.root, fn)
}

func walk(n *Node, fn func(n *Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.children.Values() {
		if !walk(child, fn) {
			return false
		}
	}
	return true
}

func (t *Tree) display(n *Node) string {
	return strings.TrimSpace(t.name + " " + n.PathString())
}
