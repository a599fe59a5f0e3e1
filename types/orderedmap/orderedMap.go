// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Package orderedmap provides a generic map which remembers insertion order.
//
// The command tree uses it for child lookup so that registration order is
// observable in help output, completion data and tie-breaking.
package orderedmap

import (
	"container/list"
)

// OrderedMap stores key-value pairs in insertion order
type OrderedMap[K comparable, V any] struct {
	store map[K]*list.Element
	keys  *list.List
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Iterator walks an OrderedMap from Front or Back
type Iterator[K comparable, V any] struct {
	forward bool
	elem    *list.Element
	Key     *K
	Value   V
}

// NewOrderedMap creates a new OrderedMap
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		store: map[K]*list.Element{},
		keys:  list.New(),
	}
}

// Set stores a key-value pair. An existing key keeps its position.
func (o *OrderedMap[K, V]) Set(key K, val V) {
	if e, exists := o.store[key]; exists {
		e.Value = entry[K, V]{key: key, value: val}
		return
	}
	o.store[key] = o.keys.PushBack(entry[K, V]{key: key, value: val})
}

// SetIfAbsent stores the pair only when key is not present and reports whether it did
func (o *OrderedMap[K, V]) SetIfAbsent(key K, val V) bool {
	if _, exists := o.store[key]; exists {
		return false
	}
	o.store[key] = o.keys.PushBack(entry[K, V]{key: key, value: val})
	return true
}

// Get returns the value associated with key
func (o *OrderedMap[K, V]) Get(key K) (V, bool) {
	e, exists := o.store[key]
	if !exists {
		return *new(V), false
	}
	return e.Value.(entry[K, V]).value, true
}

// Has reports whether key is present
func (o *OrderedMap[K, V]) Has(key K) bool {
	_, exists := o.store[key]
	return exists
}

// Delete removes key and its value
func (o *OrderedMap[K, V]) Delete(key K) {
	e, exists := o.store[key]
	if !exists {
		return
	}
	o.keys.Remove(e)
	delete(o.store, key)
}

// Count returns the number of keys
func (o *OrderedMap[K, V]) Count() int {
	if o == nil {
		return 0
	}
	return o.keys.Len()
}

// Keys returns the keys in insertion order
func (o *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, 0, o.Count())
	for e := o.keys.Front(); e != nil; e = e.Next() {
		keys = append(keys, e.Value.(entry[K, V]).key)
	}
	return keys
}

// Values returns the values in insertion order
func (o *OrderedMap[K, V]) Values() []V {
	values := make([]V, 0, o.Count())
	for e := o.keys.Front(); e != nil; e = e.Next() {
		values = append(values, e.Value.(entry[K, V]).value)
	}
	return values
}

// Range calls fn for each pair in insertion order until fn returns false
func (o *OrderedMap[K, V]) Range(fn func(key K, value V) bool) {
	if o == nil {
		return
	}
	for e := o.keys.Front(); e != nil; e = e.Next() {
		kv := e.Value.(entry[K, V])
		if !fn(kv.key, kv.value) {
			return
		}
	}
}

// Clone returns a shallow copy preserving order
func (o *OrderedMap[K, V]) Clone() *OrderedMap[K, V] {
	c := NewOrderedMap[K, V]()
	o.Range(func(k K, v V) bool {
		c.Set(k, v)
		return true
	})
	return c
}

// Front returns an iterator positioned at the oldest pair, or nil when empty
func (o *OrderedMap[K, V]) Front() *Iterator[K, V] {
	if o == nil || o.keys.Len() == 0 {
		return nil
	}
	return newIterator[K, V](o.keys.Front(), true)
}

// Back returns an iterator positioned at the newest pair, or nil when empty
func (o *OrderedMap[K, V]) Back() *Iterator[K, V] {
	if o == nil || o.keys.Len() == 0 {
		return nil
	}
	return newIterator[K, V](o.keys.Back(), false)
}

func newIterator[K comparable, V any](e *list.Element, forward bool) *Iterator[K, V] {
	kv := e.Value.(entry[K, V])
	return &Iterator[K, V]{forward: forward, elem: e, Key: &kv.key, Value: kv.value}
}

// Next moves in the iterator's direction and returns nil past the end
func (n *Iterator[K, V]) Next() *Iterator[K, V] {
	if n == nil {
		return nil
	}
	next := n.elem.Next()
	if !n.forward {
		next = n.elem.Prev()
	}
	if next == nil {
		return nil
	}
	return newIterator[K, V](next, n.forward)
}

// Prev moves against the iterator's direction and returns nil past the start
func (n *Iterator[K, V]) Prev() *Iterator[K, V] {
	if n == nil {
		return nil
	}
	prev := n.elem.Prev()
	if !n.forward {
		prev = n.elem.Next()
	}
	if prev == nil {
		return nil
	}
	return newIterator[K, V](prev, n.forward)
}
