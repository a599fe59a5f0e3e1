// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package verbosity

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler_DropsSuppressedLevels(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewHandler(base, MustParse("-EW")))

	logger.Debug("debug line")
	logger.Info("info line")
	logger.Warn("warn line")
	logger.Error("error line")
	logger.Log(context.Background(), LevelCritical, "critical line")

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "warn line")
	assert.Contains(t, out, "error line")
	assert.NotContains(t, out, "critical line")
}

func TestHandler_WrapReplacesState(t *testing.T) {
	base := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})
	outer := NewHandler(NewHandler(base, All()), NewState(Debug))

	assert.Equal(t, NewState(Debug), outer.State())
	assert.True(t, outer.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, outer.Enabled(context.Background(), slog.LevelDebug))
}

func TestHandler_WithAttrsKeepsState(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	logger := slog.New(NewHandler(base, NewState(Info))).With("cmd", "build")

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "cmd=build")
}

func TestLevelMapping(t *testing.T) {
	for _, l := range Levels {
		assert.Equal(t, l, FromSlog(l.Slog()), l.String())
	}
	assert.Equal(t, Debug, FromSlog(slog.LevelDebug-4))
	assert.Equal(t, Critical, FromSlog(LevelCritical+10))

	l, ok := LevelFromLetter('w')
	assert.True(t, ok)
	assert.Equal(t, Warning, l)
	_, ok = LevelFromLetter('x')
	assert.False(t, ok)
	assert.Equal(t, byte('C'), Critical.Letter())
}

func TestState_Sets(t *testing.T) {
	s := NewState(Debug, Error)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []Level{Debug, Error}, s.Levels())
	assert.Equal(t, NewState(Info, Warning, Critical), s.Complement())
	assert.Equal(t, NewState(Debug, Error, Info), s.Union(NewState(Info)))
	assert.Equal(t, NewState(Error), s.Without(NewState(Debug)))
	assert.Equal(t, "DE", s.String())
	assert.True(t, None().Empty())
}
