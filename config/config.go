// Package config loads the application settings from TOML or YAML files and
// watches them for live edits.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Tuning ranges accepted by Validate.
const (
	MinSpeed       = 0.1
	MaxSpeed       = 20
	MinSensitivity = 0.1
	MaxSensitivity = 5
)

var (
	windowModes  = []string{"windowed", "fullscreen", "fullscreen_borderless"}
	presentModes = []string{"auto_vsync", "auto_no_vsync", "fifo", "fifo_relaxed", "immediate", "mailbox", "default"}
	logLevels    = []string{"debug", "info", "warn", "error"}
)

// Config is the complete set of user settings.
type Config struct {
	Window   WindowConfig `toml:"window" yaml:"window"`
	Render   RenderConfig `toml:"render" yaml:"render"`
	Camera   CameraConfig `toml:"camera" yaml:"camera"`
	Scene    string       `toml:"scene" yaml:"scene"`
	Profile  bool         `toml:"profile" yaml:"profile"`
	LogLevel string       `toml:"log_level" yaml:"log_level"`
}

// WindowConfig is read once at start-up.
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Mode   string `toml:"mode" yaml:"mode"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
}

// RenderConfig selects the present mode and the clear color. The background is live.
type RenderConfig struct {
	PresentMode string     `toml:"present_mode" yaml:"present_mode"`
	Background  [4]float64 `toml:"background" yaml:"background"`
}

// CameraConfig tunes the fly camera. Every field is live except ZoomSign.
type CameraConfig struct {
	Speed               float32 `toml:"speed" yaml:"speed"`
	RotationSensitivity float32 `toml:"rotation_sensitivity" yaml:"rotation_sensitivity"`
	ZoomSensitivity     float32 `toml:"zoom_sensitivity" yaml:"zoom_sensitivity"`
	ZoomSign            float32 `toml:"zoom_sign" yaml:"zoom_sign"`
}

// DefaultZoomSign is the scroll direction that zooms in. macOS reports natural
// scrolling with the opposite sign.
func DefaultZoomSign() float32 {
	if runtime.GOOS == "darwin" {
		return -1
	}
	return 1
}

// Default returns the built-in settings.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Oxy Shapes",
			Mode:   "windowed",
			Width:  800,
			Height: 600,
		},
		Render: RenderConfig{
			PresentMode: "auto_vsync",
			Background:  [4]float64{0.1, 0.2, 0.3, 1.0},
		},
		Camera: CameraConfig{
			Speed:               10,
			RotationSensitivity: 2,
			ZoomSensitivity:     2.5,
			ZoomSign:            DefaultZoomSign(),
		},
		Scene:    "dvd",
		LogLevel: "info",
	}
}

// Load reads path over the defaults and validates the result.
// The format is chosen by extension: .toml, .yaml or .yml.
//
// Parameters:
//   - path: the config file
//
// Returns:
//   - Config: the merged settings
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over the defaults and validates the result.
//
// Parameters:
//   - data: the file contents
//   - ext: the format extension, with or without the leading dot
//
// Returns:
//   - Config: the merged settings
//   - error: a decode or validation error
func Parse(data []byte, ext string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks names and ranges. All problems are reported together.
//
// Returns:
//   - error: the joined problems, or nil
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if !slices.Contains(windowModes, normalize(c.Window.Mode)) {
		errs = append(errs, fmt.Errorf("window mode %q is not one of %s", c.Window.Mode, strings.Join(windowModes, ", ")))
	}
	if !slices.Contains(presentModes, normalize(c.Render.PresentMode)) {
		errs = append(errs, fmt.Errorf("present mode %q is not one of %s", c.Render.PresentMode, strings.Join(presentModes, ", ")))
	}
	for i, v := range c.Render.Background {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("background[%d] = %v is outside 0..1", i, v))
		}
	}
	errs = append(errs,
		checkRange("camera speed", c.Camera.Speed, MinSpeed, MaxSpeed),
		checkRange("rotation sensitivity", c.Camera.RotationSensitivity, MinSensitivity, MaxSensitivity),
		checkRange("zoom sensitivity", c.Camera.ZoomSensitivity, MinSensitivity, MaxSensitivity),
	)
	if c.Camera.ZoomSign != 1 && c.Camera.ZoomSign != -1 {
		errs = append(errs, fmt.Errorf("zoom sign %v must be 1 or -1", c.Camera.ZoomSign))
	}
	if c.LogLevel != "" && !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, fmt.Errorf("log level %q is not one of %s", c.LogLevel, strings.Join(logLevels, ", ")))
	}
	return errors.Join(errs...)
}

func checkRange(name string, v, lo, hi float32) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s %v is outside %v..%v", name, v, lo, hi)
	}
	return nil
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}
