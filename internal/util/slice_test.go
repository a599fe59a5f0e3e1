// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertSlice(t *testing.T) {
	tests := []struct {
		name     string
		arr      []int
		pos      int
		elements []int
		want     []int
	}{
		{"middle", []int{1, 2, 4, 5}, 2, []int{3}, []int{1, 2, 3, 4, 5}},
		{"start", []int{3, 4}, 0, []int{1, 2}, []int{1, 2, 3, 4}},
		{"end", []int{1, 2}, 2, []int{3, 4}, []int{1, 2, 3, 4}},
		{"empty target", []int{}, 0, []int{1, 2}, []int{1, 2}},
		{"nothing to insert", []int{1, 2}, 1, []int{}, []int{1, 2}},
		{"negative position", []int{2}, -3, []int{1}, []int{1, 2}},
		{"position past end", []int{1}, 10, []int{2}, []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InsertSlice(tt.arr, tt.pos, tt.elements...))
		})
	}
}

func TestInsertSlice_DoesNotAliasInput(t *testing.T) {
	arr := make([]int, 2, 10)
	arr[0], arr[1] = 1, 3
	got := InsertSlice(arr, 1, 2)
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, []int{1, 3}, arr)
}

func TestUniqueAppend(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, UniqueAppend([]string{"a", "b"}, "b", "c", "a"))
	assert.True(t, Contains([]int{1, 2}, 2))
	assert.False(t, Contains(nil, "x"))
}
