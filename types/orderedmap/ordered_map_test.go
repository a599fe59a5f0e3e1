// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package orderedmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMap(t *testing.T) {
	t.Run("basic operations", func(t *testing.T) {
		om := NewOrderedMap[string, int]()
		om.Set("one", 1)
		om.Set("two", 2)
		om.Set("three", 3)

		val, exists := om.Get("two")
		assert.True(t, exists)
		assert.Equal(t, 2, val)

		om.Set("two", 22)
		val, exists = om.Get("two")
		assert.True(t, exists)
		assert.Equal(t, 22, val)
		assert.Equal(t, []string{"one", "two", "three"}, om.Keys(), "overwrite keeps position")

		val, exists = om.Get("four")
		assert.False(t, exists)
		assert.Equal(t, 0, val)
	})

	t.Run("set if absent keeps the first value", func(t *testing.T) {
		om := NewOrderedMap[string, string]()
		assert.True(t, om.SetIfAbsent("build", "first"))
		assert.False(t, om.SetIfAbsent("build", "second"))

		val, _ := om.Get("build")
		assert.Equal(t, "first", val)
	})

	t.Run("deletion", func(t *testing.T) {
		om := NewOrderedMap[string, int]()
		om.Set("one", 1)
		om.Set("two", 2)

		om.Delete("one")
		assert.False(t, om.Has("one"))
		om.Delete("non-existent")

		assert.Equal(t, 1, om.Count())
		assert.Equal(t, []int{2}, om.Values())
	})

	t.Run("range stops early", func(t *testing.T) {
		om := NewOrderedMap[string, int]()
		om.Set("a", 1)
		om.Set("b", 2)
		om.Set("c", 3)

		var seen []string
		om.Range(func(k string, _ int) bool {
			seen = append(seen, k)
			return k != "b"
		})
		assert.Equal(t, []string{"a", "b"}, seen)
	})

	t.Run("front to back iteration", func(t *testing.T) {
		om := NewOrderedMap[string, int]()
		om.Set("one", 1)
		om.Set("two", 2)
		om.Set("three", 3)

		iter := om.Front()
		require.NotNil(t, iter)
		assert.Equal(t, "one", *iter.Key)

		iter = iter.Next()
		require.NotNil(t, iter)
		assert.Equal(t, 2, iter.Value)

		iter = iter.Prev()
		require.NotNil(t, iter)
		assert.Equal(t, "one", *iter.Key)

		assert.Nil(t, iter.Next().Next().Next())
	})

	t.Run("back to front iteration", func(t *testing.T) {
		om := NewOrderedMap[string, int]()
		om.Set("one", 1)
		om.Set("two", 2)

		iter := om.Back()
		require.NotNil(t, iter)
		assert.Equal(t, "two", *iter.Key)

		iter = iter.Next()
		require.NotNil(t, iter)
		assert.Equal(t, "one", *iter.Key)
		assert.Nil(t, iter.Next())
	})

	t.Run("empty and nil maps", func(t *testing.T) {
		om := NewOrderedMap[string, int]()
		assert.Nil(t, om.Front())
		assert.Nil(t, om.Back())

		var nilMap *OrderedMap[string, int]
		assert.Equal(t, 0, nilMap.Count())
		assert.Nil(t, nilMap.Front())
	})

	t.Run("clone is independent", func(t *testing.T) {
		om := NewOrderedMap[string, int]()
		om.Set("a", 1)
		c := om.Clone()
		c.Set("b", 2)

		assert.Equal(t, 1, om.Count())
		assert.Equal(t, []string{"a", "b"}, c.Keys())
	})
}
