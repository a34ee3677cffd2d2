package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Oxy Shapes", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "auto_vsync", cfg.Render.PresentMode)
	assert.Equal(t, [4]float64{0.1, 0.2, 0.3, 1.0}, cfg.Render.Background)
	assert.Equal(t, float32(10), cfg.Camera.Speed)
	assert.Equal(t, float32(2), cfg.Camera.RotationSensitivity)
	assert.Equal(t, float32(2.5), cfg.Camera.ZoomSensitivity)
	assert.Equal(t, DefaultZoomSign(), cfg.Camera.ZoomSign)
}

func TestParseTOMLMergesOverDefaults(t *testing.T) {
	data := []byte(`
scene = "life"
profile = true

[camera]
speed = 4.5

[render]
background = [0.0, 0.0, 0.0, 1.0]
`)
	cfg, err := Parse(data, ".toml")
	require.NoError(t, err)
	assert.Equal(t, "life", cfg.Scene)
	assert.True(t, cfg.Profile)
	assert.Equal(t, float32(4.5), cfg.Camera.Speed)
	assert.Equal(t, float32(2), cfg.Camera.RotationSensitivity)
	assert.Equal(t, [4]float64{0, 0, 0, 1}, cfg.Render.Background)
	assert.Equal(t, "auto_vsync", cfg.Render.PresentMode)
	assert.Equal(t, 800, cfg.Window.Width)
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
window:
  title: demo
  mode: fullscreen-borderless
  width: 1920
  height: 1080
render:
  present_mode: mailbox
camera:
  zoom_sensitivity: 1
  zoom_sign: -1
`)
	for _, ext := range []string{"yaml", ".yml", ".YAML"} {
		cfg, err := Parse(data, ext)
		require.NoError(t, err, ext)
		assert.Equal(t, "demo", cfg.Window.Title)
		assert.Equal(t, 1920, cfg.Window.Width)
		assert.Equal(t, "mailbox", cfg.Render.PresentMode)
		assert.Equal(t, float32(1), cfg.Camera.ZoomSensitivity)
		assert.Equal(t, float32(-1), cfg.Camera.ZoomSign)
		assert.Equal(t, float32(10), cfg.Camera.Speed)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
		want string
	}{
		{name: "format", data: "", ext: ".json", want: "unsupported config format"},
		{name: "syntax", data: "speed = ", ext: ".toml", want: ""},
		{name: "speed", data: "[camera]\nspeed = 50.0", ext: ".toml", want: "camera speed"},
		{name: "sensitivity", data: "[camera]\nrotation_sensitivity = 0.0", ext: ".toml", want: "rotation sensitivity"},
		{name: "zoom", data: "camera:\n  zoom_sensitivity: 9\n", ext: ".yaml", want: "zoom sensitivity"},
		{name: "zoom sign", data: "camera:\n  zoom_sign: 0\n", ext: ".yaml", want: "zoom sign"},
		{name: "mode", data: "[window]\nmode = \"maximized\"", ext: ".toml", want: "window mode"},
		{name: "present", data: "[render]\npresent_mode = \"triple\"", ext: ".toml", want: "present mode"},
		{name: "size", data: "[window]\nwidth = 0", ext: ".toml", want: "window size"},
		{name: "background", data: "[render]\nbackground = [2.0, 0.0, 0.0, 1.0]", ext: ".toml", want: "background[0]"},
		{name: "log level", data: "log_level = \"loud\"", ext: ".toml", want: "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.ext)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Camera.Speed = 0
	cfg.Camera.ZoomSensitivity = 100
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera speed")
	assert.Contains(t, err.Error(), "zoom sensitivity")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oxy.toml")
	require.NoError(t, os.WriteFile(path, []byte("scene = \"life\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "life", cfg.Scene)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatchDeliversValidEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oxy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scene: dvd\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := Watch(ctx, path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("camera:\n  speed: 3\n"), 0o644))
	require.Eventually(t, func() bool {
		select {
		case cfg := <-ch:
			return cfg.Camera.Speed == 3
		default:
			return false
		}
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.Eventually(t, func() bool {
		for {
			select {
			case _, ok := <-ch:
				if !ok {
					return true
				}
			default:
				return false
			}
		}
	}, 5*time.Second, 20*time.Millisecond)
}

func TestDeliverKeepsNewest(t *testing.T) {
	out := make(chan Config, 1)
	a, b := Default(), Default()
	a.Scene, b.Scene = "a", "b"
	Deliver(out, a)
	Deliver(out, b)
	assert.Equal(t, "b", (<-out).Scene)
}
