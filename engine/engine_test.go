package engine

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-shapes/common"
	"github.com/Carmen-Shannon/oxy-shapes/config"
	"github.com/Carmen-Shannon/oxy-shapes/engine/camera"
	"github.com/Carmen-Shannon/oxy-shapes/engine/frame"
	"github.com/Carmen-Shannon/oxy-shapes/engine/logx"
	"github.com/Carmen-Shannon/oxy-shapes/engine/profiler"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-shapes/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow implements the parts of window.Window the frame loop touches.
type fakeWindow struct {
	window.Window

	mode          window.Mode
	width, height int
	closeRequests int

	onResize     func(width, height int)
	onKeyDown    func(code uint32)
	onKeyUp      func(code uint32)
	onLook       func(pressed bool)
	onMouseDelta func(dx, dy float64)
	onScroll     func(delta float32)
	onFocus      func(focused bool)
}

func (w *fakeWindow) Mode() window.Mode { return w.mode }
func (w *fakeWindow) SetMode(m window.Mode) error {
	w.mode = m
	return nil
}
func (w *fakeWindow) Width() int    { return w.width }
func (w *fakeWindow) Height() int   { return w.height }
func (w *fakeWindow) RequestClose() { w.closeRequests++ }

func (w *fakeWindow) SetResizeCallback(cb func(width, height int)) { w.onResize = cb }
func (w *fakeWindow) SetKeyDownCallback(cb func(code uint32))      { w.onKeyDown = cb }
func (w *fakeWindow) SetKeyUpCallback(cb func(code uint32))        { w.onKeyUp = cb }
func (w *fakeWindow) SetLookButtonCallback(cb func(pressed bool))  { w.onLook = cb }
func (w *fakeWindow) SetMouseDeltaCallback(cb func(dx, dy float64)) {
	w.onMouseDelta = cb
}
func (w *fakeWindow) SetScrollCallback(cb func(delta float32)) { w.onScroll = cb }
func (w *fakeWindow) SetFocusCallback(cb func(focused bool))   { w.onFocus = cb }

// fakeRenderer records resizes and background changes.
type fakeRenderer struct {
	renderer.Renderer

	resizes    [][2]int
	resizeErr  error
	background wgpu.Color
}

func (r *fakeRenderer) Resize(width, height int) error {
	r.resizes = append(r.resizes, [2]int{width, height})
	return r.resizeErr
}

func (r *fakeRenderer) SetBackground(c wgpu.Color) { r.background = c }

func newTestEngine() (*engine, *fakeWindow, *fakeRenderer) {
	w := &fakeWindow{mode: window.ModeWindowed, width: 800, height: 600}
	r := &fakeRenderer{}
	e := &engine{
		mu:       &sync.Mutex{},
		cfg:      config.Default(),
		logger:   logx.Nop(),
		window:   w,
		renderer: r,
		pipeline: frame.NewFramePipeline(w.width, w.height),
		profiler: profiler.NewProfiler(),
	}
	e.bindInput()
	// the first frame upload is not under test
	e.pipeline.PushIfDirty(discardWriter{})
	return e, w, r
}

type discardWriter struct{}

func (discardWriter) WriteBuffers([]bind_group_provider.BufferWrite) {}

func TestClassifyFrameError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want frameAction
	}{
		{"lost", fmt.Errorf("acquire: %w", renderer.ErrSurfaceLost), actionReconfigure},
		{"outdated", renderer.ErrSurfaceOutdated, actionReconfigure},
		{"timeout", renderer.ErrSurfaceTimeout, actionSkip},
		{"rebuild", fmt.Errorf("%w: shape #1: no memory", renderer.ErrRebuildFailed), actionSkip},
		{"out of memory", renderer.ErrOutOfMemory, actionFatal},
		{"draw failure", errors.New(`draw "cube": pipeline not found`), actionFatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyFrameError(tt.err))
		})
	}
}

func TestHandleFrameErrorReconfigures(t *testing.T) {
	e, w, r := newTestEngine()
	w.width, w.height = 1024, 512

	e.handleFrameError(renderer.ErrSurfaceOutdated)

	assert.Equal(t, [][2]int{{1024, 512}}, r.resizes)
	assert.InDelta(t, 2.0, e.pipeline.Projection().Aspect(), 1e-6)
	assert.True(t, e.pipeline.Dirty())
	assert.Zero(t, w.closeRequests)
	assert.NoError(t, e.err)
}

func TestHandleFrameErrorTimeoutSkips(t *testing.T) {
	e, w, r := newTestEngine()

	e.handleFrameError(renderer.ErrSurfaceTimeout)

	assert.Empty(t, r.resizes)
	assert.Zero(t, w.closeRequests)
	assert.NoError(t, e.err)
}

func TestHandleFrameErrorRebuildSkips(t *testing.T) {
	e, w, r := newTestEngine()

	e.handleFrameError(fmt.Errorf("%w: %w", renderer.ErrRebuildFailed, errors.New("no memory")))

	assert.Empty(t, r.resizes)
	assert.Zero(t, w.closeRequests)
	assert.NoError(t, e.err)
}

func TestHandleFrameErrorFatalKeepsFirst(t *testing.T) {
	e, w, _ := newTestEngine()

	e.handleFrameError(renderer.ErrOutOfMemory)
	e.handleFrameError(errors.New("later"))

	assert.ErrorIs(t, e.err, renderer.ErrOutOfMemory)
	assert.Equal(t, 1, w.closeRequests)
}

func TestResizeIgnoresZeroSize(t *testing.T) {
	e, w, r := newTestEngine()

	w.onResize(0, 0)
	assert.Empty(t, r.resizes)
	assert.False(t, e.pipeline.Dirty())

	r.resizeErr = errors.New("no device")
	w.onResize(640, 480)
	assert.Len(t, r.resizes, 1)
	assert.False(t, e.pipeline.Dirty(), "projection kept when the surface could not be resized")

	r.resizeErr = nil
	w.onResize(640, 480)
	assert.True(t, e.pipeline.Dirty())
}

func TestResetKey(t *testing.T) {
	e, w, _ := newTestEngine()
	e.pipeline.SetCamera(camera.CameraState{Position: [3]float32{5, 5, 5}, Yaw: 1, Pitch: 0.5})
	e.pipeline.PushIfDirty(discardWriter{})

	w.onKeyDown(common.KeyR)

	assert.Equal(t, camera.DefaultCameraState(), e.pipeline.Camera())
	assert.True(t, e.pipeline.Dirty())
}

func TestFullscreenToggleKey(t *testing.T) {
	_, w, _ := newTestEngine()

	w.onKeyDown(common.KeyF11)
	assert.Equal(t, window.ModeFullscreenBorderless, w.mode)

	w.onKeyUp(common.KeyF11)
	assert.Equal(t, window.ModeFullscreenBorderless, w.mode)

	w.onKeyDown(common.KeyF11)
	assert.Equal(t, window.ModeWindowed, w.mode)
}

func TestMovementKeysReachController(t *testing.T) {
	e, w, _ := newTestEngine()
	start := e.pipeline.Camera()

	w.onKeyDown(common.KeyW)
	require.True(t, e.pipeline.Update(0.1))
	assert.NotEqual(t, start.Position, e.pipeline.Camera().Position)

	w.onKeyUp(common.KeyW)
	assert.False(t, e.pipeline.Update(0.1))
}

func TestMouseLookGatedOnButton(t *testing.T) {
	e, w, _ := newTestEngine()
	start := e.pipeline.Camera()

	w.onMouseDelta(40, 0)
	assert.False(t, e.pipeline.Update(0.1))
	assert.Equal(t, start, e.pipeline.Camera())

	w.onLook(true)
	w.onMouseDelta(40, 0)
	require.True(t, e.pipeline.Update(0.1))
	assert.NotEqual(t, start.Yaw, e.pipeline.Camera().Yaw)

	w.onLook(false)
	w.onMouseDelta(40, 0)
	assert.False(t, e.pipeline.Update(0.1))
}

func TestFocusLossReleasesKeys(t *testing.T) {
	e, w, _ := newTestEngine()

	w.onLook(true)
	w.onKeyDown(common.KeyW)
	w.onFocus(false)

	assert.False(t, e.looking)
	assert.False(t, e.pipeline.Update(0.1))
}

func TestDrainConfigAppliesLatest(t *testing.T) {
	e, _, r := newTestEngine()
	updates := make(chan config.Config, 2)
	e.configUpdates = updates

	first := config.Default()
	first.Camera.Speed = 3
	second := config.Default()
	second.Camera.Speed = 4
	second.Camera.RotationSensitivity = 1.5
	second.Camera.ZoomSensitivity = 0.5
	second.Render.Background = [4]float64{1, 0, 0, 1}
	second.Profile = true
	updates <- first
	updates <- second

	e.drainConfig()

	controller := e.pipeline.Controller()
	assert.Equal(t, float32(4), controller.Speed())
	assert.Equal(t, float32(1.5), controller.RotationSensitivity())
	assert.Equal(t, float32(0.5), controller.ZoomSensitivity())
	assert.Equal(t, wgpu.Color{R: 1, G: 0, B: 0, A: 1}, r.background)
	assert.True(t, e.profilingEnabled)

	close(updates)
	e.drainConfig()
	assert.Nil(t, e.configUpdates)
}
