// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package dispatch

import (
	"context"
	"testing"

	"github.com/napalu/dispatch/schema"
	"github.com/napalu/dispatch/types"
	"github.com/napalu/dispatch/verbosity"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, *Call) error { return nil }

func handler(name string, params ...schema.Param) *Handler {
	return &Handler{Name: name, Params: params, Run: noop}
}

func quietGlobal() *schema.Parameter {
	return schema.NewParameter(QuietDest,
		schema.WithNames("quiet", "q"),
		schema.WithKind(types.KindKeyword),
		schema.WithType(types.TypeVerbosity),
		schema.WithDefault(verbosity.None()))
}

// commandNode builds a single-command tree with the quiet option as global and returns the command
func commandNode(t *testing.T, params []schema.Param, overrides ...*schema.Parameter) *Node {
	t.Helper()
	tree, err := BuildTree([]*Declaration{{
		Path:      []string{"cmd"},
		Handler:   handler("cmd", params...),
		Overrides: overrides,
	}}, WithGlobalParameters(quietGlobal()))
	require.NoError(t, err)

	node, ok := tree.Find("cmd")
	require.True(t, ok)
	return node
}
