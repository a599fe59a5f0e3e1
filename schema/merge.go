// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package schema

import (
	"github.com/napalu/dispatch/internal/util"
	"github.com/napalu/dispatch/types"
)

// Merge computes an effective schema. own has the highest precedence, followed by the
// inherited tiers in the order given. A lower-tier parameter whose dest or any name
// matches a parameter already present is merged into it: the higher parameter keeps all
// of its fields and gains the lower parameter's names. The higher tier also decides which
// kinds a dest has, so lower candidates of other kinds are dropped. omit removes every
// parameter matching one of its entries, whatever tier it came from.
//
// Merge never modifies its arguments.
func Merge(own []*Parameter, inherited [][]*Parameter, omit []string) ([]*Parameter, error) {
	if err := checkTier(own); err != nil {
		return nil, err
	}
	result := cloneAll(own)

	for _, tier := range inherited {
		if err := checkTier(tier); err != nil {
			return nil, err
		}
		for _, group := range groupByDest(tier) {
			target, found := findTarget(result, group)
			if !found {
				result = append(result, cloneAll(group)...)
				continue
			}
			for _, lower := range group {
				for _, higher := range result {
					if higher.Dest != target || higher.Kind != lower.Kind || higher.Kind == types.KindPositional {
						continue
					}
					for _, name := range lower.Names {
						if !nameTaken(result, name, target) {
							higher.Names = util.UniqueAppend(higher.Names, name)
						}
					}
				}
			}
		}
	}

	return Omit(result, omit), nil
}

// Omit returns the parameters of params matching none of names
func Omit(params []*Parameter, names []string) []*Parameter {
	if len(names) == 0 {
		return params
	}
	out := params[:0:0]
	for _, p := range params {
		drop := false
		for _, name := range names {
			if p.Matches(name) {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, p)
		}
	}
	return out
}

// checkTier reports conflicting declarations of one dest inside a single tier
func checkTier(tier []*Parameter) error {
	for i, a := range tier {
		for _, b := range tier[i+1:] {
			if a.Dest != b.Dest {
				continue
			}
			if a.Type != b.Type || a.Sequence != b.Sequence {
				return errSchemaConflict(a, a.Type.String(), b.Type.String())
			}
			if a.Kind == b.Kind && a.Arity != b.Arity {
				return errSchemaConflict(a, a.Arity.String(), b.Arity.String())
			}
		}
	}
	return nil
}

func groupByDest(tier []*Parameter) [][]*Parameter {
	var groups [][]*Parameter
	index := map[string]int{}
	for _, p := range tier {
		if i, ok := index[p.Dest]; ok {
			groups[i] = append(groups[i], p)
			continue
		}
		index[p.Dest] = len(groups)
		groups = append(groups, []*Parameter{p})
	}
	return groups
}

// findTarget returns the dest in result a lower group merges into: the same dest first,
// then any parameter sharing a name with the group.
func findTarget(result []*Parameter, group []*Parameter) (string, bool) {
	dest := util.Canonical(group[0].Dest)
	for _, p := range result {
		if util.Canonical(p.Dest) == dest {
			return p.Dest, true
		}
	}
	for _, p := range result {
		if p.Kind != types.KindKeyword {
			continue
		}
		for _, lower := range group {
			if lower.Kind == types.KindKeyword && p.sharesName(lower) {
				return p.Dest, true
			}
		}
	}
	return "", false
}

func nameTaken(params []*Parameter, name, exceptDest string) bool {
	for _, p := range params {
		if p.Dest != exceptDest && p.Kind == types.KindKeyword && p.Matches(name) {
			return true
		}
	}
	return false
}

func cloneAll(params []*Parameter) []*Parameter {
	out := make([]*Parameter, 0, len(params))
	for _, p := range params {
		out = append(out, p.Clone())
	}
	return out
}
