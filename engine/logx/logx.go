// Package logx builds the slog loggers used across the engine.
// Components never log through a package-level logger; they receive a *slog.Logger
// through a WithLogger option and default to Nop.
package logx

import (
	"io"
	"log/slog"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity selected when no CLI flag overrides it.
var UserLevel = slog.LevelInfo

// LevelFromFlags returns the [slog.Level] corresponding to the given
// verbosity flags:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [UserLevel])
//
// The flags are evaluated in that order, so vv wins over q.
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return UserLevel
	}
}

// ParseLevel converts a config level name ("debug", "info", "warn", "error") into a level.
// Unknown names yield UserLevel and false.
func ParseLevel(name string) (slog.Level, bool) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return UserLevel, false
	}
	return l, true
}

// New returns a logger writing text records to w at the given level.
// Level tags are colored when w is a terminal that supports it.
//
// Parameters:
//   - w: the destination, typically os.Stderr
//   - level: the minimum level; a *slog.LevelVar allows changing it later
//
// Returns:
//   - *slog.Logger: the logger
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(NewHandler(w, level, termenv.NewOutput(w)))
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
