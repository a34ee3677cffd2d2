package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	tests := []struct {
		name     string
		vv, v, q bool
		want     slog.Level
	}{
		{name: "vv", vv: true, want: slog.LevelDebug},
		{name: "v beats q", v: true, q: true, want: slog.LevelInfo},
		{name: "q", q: true, want: slog.LevelError},
		{name: "default", want: UserLevel},
		{name: "vv beats q", vv: true, q: true, want: slog.LevelDebug},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelFromFlags(tt.vv, tt.v, tt.q))
		})
	}
}

func TestParseLevel(t *testing.T) {
	l, ok := ParseLevel("warn")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, l)

	l, ok = ParseLevel("chatty")
	assert.False(t, ok)
	assert.Equal(t, UserLevel, l)
}

func TestHandlerPlainWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))
	log := slog.New(NewHandler(&buf, slog.LevelInfo, out))

	log.Debug("hidden")
	log.Warn("surface lost", "attempt", 2)

	s := buf.String()
	assert.NotContains(t, s, "hidden")
	assert.Contains(t, s, "WARN  surface lost")
	assert.Contains(t, s, "attempt=2")
	assert.NotContains(t, s, "\x1b[")
}

func TestHandlerColorsLevel(t *testing.T) {
	var buf bytes.Buffer
	out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.ANSI))
	slog.New(NewHandler(&buf, slog.LevelDebug, out)).Error("boom")
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	assert.False(t, log.Enabled(t.Context(), slog.LevelError))
}

func TestHandlerGroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, slog.LevelDebug, nil)).With("scene", "dvd").WithGroup("camera")
	log.Debug("reset", "yaw", -90, "label", "two words")

	s := buf.String()
	assert.Contains(t, s, "scene=dvd")
	assert.Contains(t, s, "camera.yaw=-90")
	assert.Contains(t, s, `camera.label="two words"`)
}
