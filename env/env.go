// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Package env abstracts environment variable access so that binding can be tested
// without touching the process environment.
package env

import (
	"os"
	"sort"
	"strings"
	"sync"
)

// Resolver defines an interface for environment resolution.
type Resolver interface {
	// Lookup returns the value of the variable named by key and whether it is set.
	Lookup(key string) (string, bool)

	// Environ returns the environment as sorted "key=value" pairs.
	Environ() []string
}

// OS resolves variables from the process environment.
type OS struct{}

// Lookup returns the value of the environment variable named by key.
func (OS) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Environ returns a copy of the process environment.
func (OS) Environ() []string {
	e := os.Environ()
	sort.Strings(e)
	return e
}

// Map resolves variables from an in-memory map. The zero value is an empty environment.
type Map struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMap creates a Map pre-populated with vars
func NewMap(vars map[string]string) *Map {
	m := &Map{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		m.vars[k] = v
	}
	return m
}

// Lookup returns the value stored for key
func (m *Map) Lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vars[key]
	return v, ok
}

// Set stores value for key
func (m *Map) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vars == nil {
		m.vars = map[string]string{}
	}
	m.vars[key] = value
}

// Unset removes key
func (m *Map) Unset(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vars, key)
}

// Environ returns the stored variables as sorted "key=value" pairs
func (m *Map) Environ() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e := make([]string, 0, len(m.vars))
	for k, v := range m.vars {
		e = append(e, k+"="+v)
	}
	sort.Strings(e)
	return e
}

// Prefixed returns a Resolver which prepends prefix + "_" to every key looked up in r.
// An empty prefix returns r unchanged.
func Prefixed(r Resolver, prefix string) Resolver {
	if prefix == "" {
		return r
	}
	return &prefixed{next: r, prefix: strings.TrimSuffix(prefix, "_") + "_"}
}

type prefixed struct {
	next   Resolver
	prefix string
}

func (p *prefixed) Lookup(key string) (string, bool) {
	if strings.HasPrefix(key, p.prefix) {
		return p.next.Lookup(key)
	}
	return p.next.Lookup(p.prefix + key)
}

func (p *prefixed) Environ() []string {
	var e []string
	for _, kv := range p.next.Environ() {
		if strings.HasPrefix(kv, p.prefix) {
			e = append(e, kv)
		}
	}
	return e
}
