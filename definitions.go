// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package dispatch

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/napalu/dispatch/env"
	"github.com/napalu/dispatch/schema"
	"github.com/napalu/dispatch/types/orderedmap"
	"github.com/napalu/dispatch/verbosity"
	"golang.org/x/text/language"
)

// HandlerFunc is invoked with the bound call once a command has been resolved
type HandlerFunc func(ctx context.Context, call *Call) error

// Handler is the invocable part of a command: the function and the static table of
// parameters it accepts.
type Handler struct {
	Name        string
	Description string
	Params      []schema.Param
	Run         HandlerFunc
}

// Declaration describes one command. Path segments are matched case- and
// separator-insensitively; an empty last segment attaches the handler to the parent path
// (the default command of a group).
type Declaration struct {
	Path         []string
	Handler      *Handler
	Overrides    []*schema.Parameter
	Omit         []string
	InheritsFrom []*Declaration
	AliasSeed    string
	Aliases      []string
	Description  string
	Version      string
	Hidden       bool
}

// Node is one command of a Tree. Nodes are read-only once BuildTree returns.
type Node struct {
	segment     string
	aliases     []string
	parent      *Node
	children    *orderedmap.OrderedMap[string, *Node]
	spellings   *orderedmap.OrderedMap[string, *Node]
	handler     *Handler
	schema      []*schema.Parameter
	description string
	version     string
	hidden      bool
	decl        *Declaration
	catchAllPos string
	catchAllKw  string
	omitted     []string
	suggest     int
}

// Tree is the routing structure built from a declaration set
type Tree struct {
	root      *Node
	name      string
	threshold int
	size      int
	globals   []*schema.Parameter
}

// TreeOptions are applied by BuildTree
type TreeOptions struct {
	// Name is shown for the root command in messages
	Name string
	// Globals form the lowest-precedence tier of every command with a handler
	Globals []*schema.Parameter
	// SuggestionDistance is the maximum edit distance of "did you mean" suggestions; 0 disables them
	SuggestionDistance int
}

// ConfigureTreeFunc is used when building a Tree
type ConfigureTreeFunc func(opts *TreeOptions, err *error)

// Renderer produces help text from the read-only projection of a node
type Renderer interface {
	Usage(w io.Writer, program string, info NodeInfo) error
}

// ConfigureEngineFunc is used when defining Engine options
type ConfigureEngineFunc func(e *Engine, err *error)

// Engine resolves, binds and invokes commands
type Engine struct {
	mu           sync.RWMutex
	tree         *Tree
	decls        []*Declaration
	env          env.Resolver
	stdout       io.Writer
	stderr       io.Writer
	logger       *slog.Logger
	renderer     Renderer
	programName  string
	lang         language.Tag
	quiet        *quietConfig
	helpFlags    []string
	versionFlags []string
	threshold    int
	treeConfigs  []ConfigureTreeFunc
}

type quietConfig struct {
	names    []string
	dest     string
	def      verbosity.State
	envName  string
	disabled bool
}
