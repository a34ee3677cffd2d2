package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/Carmen-Shannon/oxy-shapes/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*flags, *pflag.FlagSet) {
	t.Helper()
	f := &flags{}
	fs := pflag.NewFlagSet("oxy-shapes", pflag.ContinueOnError)
	f.bind(fs)
	require.NoError(t, fs.Parse(args))
	return f, fs
}

func TestApplyOnlyChangedFlags(t *testing.T) {
	f, fs := parse(t, "--width", "1024", "--scene", "life", "--profile", "--present-mode", "mailbox")

	cfg := config.Default()
	cfg.Window.Title = "from file"
	f.apply(fs, &cfg)

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "from file", cfg.Window.Title)
	assert.Equal(t, "windowed", cfg.Window.Mode)
	assert.Equal(t, "life", cfg.Scene)
	assert.Equal(t, "mailbox", cfg.Render.PresentMode)
	assert.True(t, cfg.Profile)
}

func TestApplyExplicitFalseProfile(t *testing.T) {
	f, fs := parse(t, "--profile=false")

	cfg := config.Default()
	cfg.Profile = true
	f.apply(fs, &cfg)

	assert.False(t, cfg.Profile)
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		logLevel string
		want     slog.Level
		wantErr  bool
	}{
		{"config level", nil, "warn", slog.LevelWarn, false},
		{"empty config level", nil, "", slog.LevelInfo, false},
		{"unknown config level", nil, "loud", slog.LevelInfo, true},
		{"flags win over unknown level", []string{"-q"}, "loud", slog.LevelError, false},
		{"vv beats config", []string{"--vv"}, "error", slog.LevelDebug, false},
		{"quiet", []string{"-q"}, "debug", slog.LevelError, false},
		{"verbose", []string{"-v"}, "error", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := parse(t, tt.args...)
			cfg := config.Default()
			cfg.LogLevel = tt.logLevel
			level, err := f.level(cfg)
			if tt.wantErr {
				assert.ErrorContains(t, err, `"loud"`)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
		})
	}
}

func TestRelayKeepsNewestAndReappliesFlags(t *testing.T) {
	f, fs := parse(t, "--scene", "life")
	in := make(chan config.Config)
	out := f.relay(context.Background(), fs, in)

	for _, title := range []string{"a", "b", "c"} {
		cfg := config.Default()
		cfg.Window.Title = title
		in <- cfg
	}
	close(in)

	var got []config.Config
	for cfg := range out {
		got = append(got, cfg)
	}
	require.NotEmpty(t, got)
	last := got[len(got)-1]
	assert.Equal(t, "c", last.Window.Title)
	assert.Equal(t, "life", last.Scene)
	for _, cfg := range got {
		assert.NotEqual(t, "a", cfg.Window.Title, "superseded config delivered")
	}
}
