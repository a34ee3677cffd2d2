package window

import (
	"fmt"
	"strings"
)

// Mode is how the window occupies the screen.
type Mode int

const (
	// ModeWindowed is a decorated, resizable window.
	ModeWindowed Mode = iota

	// ModeFullscreen takes exclusive control of the primary monitor at its current video mode.
	ModeFullscreen

	// ModeFullscreenBorderless is an undecorated window covering the primary monitor.
	ModeFullscreenBorderless
)

var modeNames = map[Mode]string{
	ModeWindowed:             "windowed",
	ModeFullscreen:           "fullscreen",
	ModeFullscreenBorderless: "fullscreen_borderless",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Toggled returns the mode F11 switches to: windowed becomes borderless fullscreen,
// and either fullscreen mode returns to windowed.
//
// Returns:
//   - Mode: the toggled mode
func (m Mode) Toggled() Mode {
	if m == ModeWindowed {
		return ModeFullscreenBorderless
	}
	return ModeWindowed
}

// ParseMode converts a config or flag value into a Mode.
// Matching ignores case and accepts '-' in place of '_'.
//
// Parameters:
//   - name: the mode name, e.g. "fullscreen_borderless"
//
// Returns:
//   - Mode: the parsed mode
//   - error: an error naming the valid modes if name is unknown
func ParseMode(name string) (Mode, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for m, n := range modeNames {
		if n == key {
			return m, nil
		}
	}
	return ModeWindowed, fmt.Errorf("unknown window mode %q (want windowed, fullscreen or fullscreen_borderless)", name)
}
