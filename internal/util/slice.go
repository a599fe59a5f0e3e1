// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package util

// InsertSlice inserts item(s) T at position pos and returns a slice
func InsertSlice[T any](arr []T, pos int, element ...T) []T {
	if pos < 0 {
		pos = 0
	}
	if pos > len(arr) {
		pos = len(arr)
	}

	out := make([]T, 0, len(arr)+len(element))
	out = append(out, arr[:pos]...)
	out = append(out, element...)
	return append(out, arr[pos:]...)
}

// Contains reports whether item is in s
func Contains[T comparable](s []T, item T) bool {
	for _, v := range s {
		if v == item {
			return true
		}
	}
	return false
}

// UniqueAppend appends the items of src not already present in dst
func UniqueAppend[T comparable](dst []T, src ...T) []T {
	for _, v := range src {
		if !Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
