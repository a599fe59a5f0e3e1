// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package dispatch

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/napalu/dispatch/verbosity"
)

// Call is the result of binding tokens to a command. Keywords holds the value of every
// named parameter that received one, by dest, plus the entries absorbed by a catch-all
// keyword parameter. Positionals holds the values absorbed by a catch-all positional parameter.
type Call struct {
	ID          string
	Path        []string
	Positionals []string
	Keywords    map[string]any
	Verbosity   verbosity.State
	logger      *slog.Logger
}

// Has reports whether name received a value
func (c *Call) Has(name string) bool {
	_, ok := c.Keywords[name]
	return ok
}

// Value returns the value bound to name
func (c *Call) Value(name string) (any, bool) {
	v, ok := c.Keywords[name]
	return v, ok
}

// String returns the value bound to name formatted as a string
func (c *Call) String(name string) string {
	v, ok := c.Keywords[name]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the int bound to name, 0 when absent or of another type
func (c *Call) Int(name string) int {
	v, _ := c.Keywords[name].(int)
	return v
}

// Float returns the float64 bound to name
func (c *Call) Float(name string) float64 {
	v, _ := c.Keywords[name].(float64)
	return v
}

// Bool returns the bool bound to name
func (c *Call) Bool(name string) bool {
	v, _ := c.Keywords[name].(bool)
	return v
}

// Duration returns the time.Duration bound to name
func (c *Call) Duration(name string) time.Duration {
	v, _ := c.Keywords[name].(time.Duration)
	return v
}

// Time returns the time.Time bound to name
func (c *Call) Time(name string) time.Time {
	v, _ := c.Keywords[name].(time.Time)
	return v
}

// Strings returns the []string bound to name
func (c *Call) Strings(name string) []string {
	v, _ := c.Keywords[name].([]string)
	return v
}

// Ints returns the []int bound to name
func (c *Call) Ints(name string) []int {
	v, _ := c.Keywords[name].([]int)
	return v
}

// Logger returns a logger that drops the levels suppressed for this call
func (c *Call) Logger() *slog.Logger {
	base := c.logger
	if base == nil {
		base = slog.Default()
	}
	return slog.New(verbosity.NewHandler(base.Handler(), c.Verbosity))
}
