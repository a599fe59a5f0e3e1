// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package manifest

import (
	"sort"
	"sync"

	"github.com/napalu/dispatch"
)

// Registry maps the handler names used in manifests to code
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]*dispatch.Handler
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{handlers: map[string]*dispatch.Handler{}}
}

// Register adds fn under name. Its parameters come from the manifest.
func (r *Registry) Register(name string, fn dispatch.HandlerFunc) *Registry {
	return r.RegisterHandler(&dispatch.Handler{Name: name, Run: fn})
}

// RegisterHandler adds h under h.Name. Parameters declared in the manifest replace h.Params.
func (r *Registry) RegisterHandler(h *dispatch.Handler) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[h.Name] = h
	return r
}

// Lookup returns the handler registered under name
func (r *Registry) Lookup(name string) (*dispatch.Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns the registered names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
