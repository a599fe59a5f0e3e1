// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Package queue provides a small generic FIFO/LIFO container.
package queue

// Q supports both queue (Enqueue/Dequeue) and stack (Push/Pop) access.
// Dequeue advances a head offset; storage is compacted once the consumed
// prefix outgrows the live items.
type Q[T any] struct {
	items []T
	head  int
}

// New creates a new Q
func New[T any]() *Q[T] {
	return &Q[T]{}
}

// Enqueue adds an item to the back
func (q *Q[T]) Enqueue(item T) {
	q.items = append(q.items, item)
}

// Dequeue removes and returns the front item
func (q *Q[T]) Dequeue() (T, bool) {
	var zero T
	if q.Len() == 0 {
		return zero, false
	}
	item := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	if q.head > len(q.items)/2 {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	return item, true
}

// Push adds an item to the top of the stack
func (q *Q[T]) Push(item T) {
	q.items = append(q.items, item)
}

// Pop removes and returns the most recently added item
func (q *Q[T]) Pop() (T, bool) {
	var zero T
	if q.Len() == 0 {
		return zero, false
	}
	last := len(q.items) - 1
	item := q.items[last]
	q.items[last] = zero
	q.items = q.items[:last]
	return item, true
}

// Peek returns the most recently added item without removing it
func (q *Q[T]) Peek() (T, bool) {
	if q.Len() == 0 {
		var zero T
		return zero, false
	}
	return q.items[len(q.items)-1], true
}

// Len returns the number of live items
func (q *Q[T]) Len() int {
	return len(q.items) - q.head
}

// Clear removes all items
func (q *Q[T]) Clear() {
	q.items = q.items[:0]
	q.head = 0
}
