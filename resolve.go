// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package dispatch

import (
	"strings"

	"github.com/napalu/dispatch/errs"
	"github.com/napalu/dispatch/internal/parse"
	"github.com/napalu/dispatch/internal/util"
)

// Resolve walks tree along tokens. See (*Tree).Resolve.
func Resolve(tree *Tree, tokens []string) (*Node, []string, error) {
	return tree.Resolve(tokens)
}

// Match greedily consumes leading tokens naming sub-commands and returns the deepest node
// reached with the tokens left over. Matching stops at the first token that names no child
// of the current node; there is no backtracking.
func (t *Tree) Match(tokens []string) (*Node, []string) {
	node := t.root
	i := 0
	for ; i < len(tokens); i++ {
		child := node.lookup(tokens[i])
		if child == nil {
			break
		}
		node = child
	}
	return node, append([]string(nil), tokens[i:]...)
}

// Resolve is Match followed by a check that the node reached can be invoked. A routing
// node yields a usage error: an unknown command when a non-option token is left over,
// with suggestions drawn from the node's sub-commands, otherwise a missing sub-command.
// The node reached is returned along with the error.
func (t *Tree) Resolve(tokens []string) (*Node, []string, error) {
	node, rest := t.Match(tokens)
	if node.handler != nil {
		return node, rest, nil
	}

	if len(rest) > 0 && !parse.IsKeyword(rest[0]) && rest[0] != parse.EndOfOptions {
		return node, rest, errs.Usage(t.notFound(node, rest[0]))
	}
	return node, rest, errs.Usage(errs.ErrCommandExpectsSubcommand.WithArgs(t.display(node)))
}

func (t *Tree) notFound(node *Node, token string) error {
	name := strings.TrimSpace(node.PathString() + " " + token)
	suggestions := util.Suggestions(util.Canonical(token), node.childNames(), t.threshold)
	if len(suggestions) == 0 {
		return errs.ErrCommandNotFound.WithArgs(name)
	}
	return errs.ErrCommandNotFoundSuggest.WithArgs(name, quoteJoin(suggestions))
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return strings.Join(quoted, ", ")
}
