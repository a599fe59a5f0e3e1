// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package verbosity

import (
	"context"
	"log/slog"
)

// Handler is a slog.Handler dropping records whose level is suppressed by a State
type Handler struct {
	next  slog.Handler
	state State
}

// NewHandler wraps next so that levels suppressed by state are never emitted.
// Wrapping a Handler replaces its state instead of stacking filters.
func NewHandler(next slog.Handler, state State) *Handler {
	if h, ok := next.(*Handler); ok {
		return &Handler{next: h.next, state: state}
	}
	return &Handler{next: next, state: state}
}

// State returns the suppressed levels
func (h *Handler) State() State {
	return h.state
}

// Enabled reports false for suppressed levels and defers to the wrapped handler otherwise
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.state.Suppresses(FromSlog(level)) {
		return false
	}
	return h.next.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if h.state.Suppresses(FromSlog(r.Level)) {
		return nil
	}
	return h.next.Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{next: h.next.WithAttrs(attrs), state: h.state}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{next: h.next.WithGroup(name), state: h.state}
}
