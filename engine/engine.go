package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-shapes/common"
	"github.com/Carmen-Shannon/oxy-shapes/config"
	"github.com/Carmen-Shannon/oxy-shapes/engine/camera"
	"github.com/Carmen-Shannon/oxy-shapes/engine/frame"
	"github.com/Carmen-Shannon/oxy-shapes/engine/logx"
	"github.com/Carmen-Shannon/oxy-shapes/engine/profiler"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shapes/engine/scene"
	"github.com/Carmen-Shannon/oxy-shapes/engine/window"
	"github.com/Carmen-Shannon/oxy-shapes/scenes"
	"github.com/cogentcore/webgpu/wgpu"
)

// engine implements the Engine interface.
// Everything runs on the thread that calls Run: input, camera, sync and submission.
type engine struct {
	mu *sync.Mutex

	ctx    context.Context
	cfg    config.Config
	logger *slog.Logger

	window       window.Window
	renderer     renderer.Renderer
	pipeline     frame.FramePipeline
	orchestrator frame.Orchestrator
	scene        scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled bool

	configUpdates <-chan config.Config
	forceSoftware bool

	looking   bool
	lastFrame time.Time
	now       func() time.Time

	err      error
	quitOnce sync.Once
}

// Engine is the main entry point for the engine.
// It owns the window, the renderer and the frame orchestrator, and drives one frame per
// window message pump iteration.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the GPU renderer.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// Orchestrator returns the frame orchestrator driving the active scene.
	//
	// Returns:
	//   - frame.Orchestrator: the orchestrator instance
	Orchestrator() frame.Orchestrator

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// ApplyConfig applies the live settings of cfg: camera speed and sensitivities,
	// background color and profiling. Window and present mode settings are start-up only.
	//
	// Parameters:
	//   - cfg: the new settings
	ApplyConfig(cfg config.Config)

	// Run starts the main loop and blocks until the window closes, the engine context is
	// cancelled or a fatal frame error occurs.
	// All GPU and window resources are released before it returns.
	//
	// Returns:
	//   - error: the fatal frame error, or nil on a normal close
	Run() error

	// Quit asks the window to close. The current frame finishes first.
	// Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates the window, renderer, camera frame pipeline and orchestrator for cfg.
// Start-up failures release whatever was already created and are returned.
//
// Parameters:
//   - cfg: the validated settings
//   - options: functional options for engine configuration (logger, scene, config updates, etc.)
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if the configuration is invalid or the GPU could not be initialized
func NewEngine(cfg config.Config, options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		mu:               &sync.Mutex{},
		ctx:              context.Background(),
		cfg:              cfg,
		logger:           logx.Nop(),
		profilingEnabled: cfg.Profile,
		now:              time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	presentMode, err := renderer.ParsePresentMode(cfg.Render.PresentMode)
	if err != nil {
		return nil, err
	}

	if e.scene == nil {
		if e.scene, err = scenes.New(cfg.Scene); err != nil {
			return nil, err
		}
	}

	if e.window == nil {
		mode, err := window.ParseMode(cfg.Window.Mode)
		if err != nil {
			return nil, err
		}
		e.window, err = window.NewWindow(
			window.WithTitle(common.Coalesce(cfg.Window.Title, config.Default().Window.Title)),
			window.WithMode(mode),
			window.WithSize(cfg.Window.Width, cfg.Window.Height),
		)
		if err != nil {
			return nil, fmt.Errorf("create window: %w", err)
		}
	}

	e.renderer, err = renderer.NewRenderer(renderer.BackendTypeWGPU, e.window,
		renderer.WithPipeline(renderer.NewShapePipeline()),
		renderer.WithPresentMode(presentMode),
		renderer.WithBackground(backgroundColor(cfg.Render.Background)),
		renderer.WithForceSoftwareRenderer(e.forceSoftware),
		renderer.WithLogger(e.logger),
	)
	if err != nil {
		e.release()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	e.pipeline = frame.NewFramePipeline(e.window.Width(), e.window.Height(),
		frame.WithControllerOptions(
			camera.WithSpeed(cfg.Camera.Speed),
			camera.WithRotationSensitivity(cfg.Camera.RotationSensitivity),
			camera.WithZoomSensitivity(cfg.Camera.ZoomSensitivity),
			camera.WithZoomSign(cfg.Camera.ZoomSign),
		),
		frame.WithCameraLogger(e.logger),
	)
	if err := e.renderer.InitBindGroup(e.pipeline.Provider(), renderer.CameraBindGroupLayout()); err != nil {
		e.release()
		return nil, fmt.Errorf("camera bind group: %w", err)
	}

	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))

	e.orchestrator, err = frame.NewOrchestrator(e.renderer, e.pipeline, e.scene,
		frame.WithRegistry(scene.NewRegistry(scene.WithLogger(e.logger))),
		frame.WithPhaseRecorder(e.profiler),
		frame.WithLogger(e.logger),
	)
	if err != nil {
		e.release()
		return nil, err
	}

	e.bindInput()
	return e, nil
}

// bindInput routes window callbacks into the camera and the renderer.
func (e *engine) bindInput() {
	e.window.SetResizeCallback(e.resize)
	e.window.SetKeyDownCallback(func(code uint32) { e.handleKey(code, true) })
	e.window.SetKeyUpCallback(func(code uint32) { e.handleKey(code, false) })
	e.window.SetLookButtonCallback(func(pressed bool) { e.looking = pressed })
	e.window.SetMouseDeltaCallback(func(dx, dy float64) {
		if e.looking {
			e.pipeline.Controller().ProcessMouseDelta(dx, dy)
		}
	})
	e.window.SetScrollCallback(func(delta float32) {
		e.pipeline.Controller().ProcessScroll(delta)
	})
	e.window.SetFocusCallback(func(focused bool) {
		if !focused {
			e.looking = false
			e.pipeline.Controller().ReleaseAll()
		}
	})
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Orchestrator() frame.Orchestrator {
	return e.orchestrator
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) ApplyConfig(cfg config.Config) {
	controller := e.pipeline.Controller()
	controller.SetSpeed(cfg.Camera.Speed)
	controller.SetRotationSensitivity(cfg.Camera.RotationSensitivity)
	controller.SetZoomSensitivity(cfg.Camera.ZoomSensitivity)
	e.renderer.SetBackground(backgroundColor(cfg.Render.Background))

	e.mu.Lock()
	e.profilingEnabled = cfg.Profile
	e.cfg = cfg
	e.mu.Unlock()

	e.logger.Info("config applied",
		"speed", cfg.Camera.Speed,
		"rotation_sensitivity", cfg.Camera.RotationSensitivity,
		"zoom_sensitivity", cfg.Camera.ZoomSensitivity,
		"profile", cfg.Profile,
	)
}

func (e *engine) Run() error {
	defer e.release()

	e.lastFrame = e.now()
	e.window.SetUpdateCallback(e.tick)
	e.window.ProcessMessages()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *engine) Quit() {
	e.quitOnce.Do(e.window.RequestClose)
}

// tick runs one frame. It is the window's update callback.
func (e *engine) tick() {
	if e.ctx.Err() != nil {
		e.Quit()
		return
	}

	now := e.now()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	e.drainConfig()

	if err := e.orchestrator.Frame(dt); err != nil {
		e.handleFrameError(err)
	}

	e.mu.Lock()
	profiling := e.profilingEnabled
	e.mu.Unlock()
	if profiling {
		e.profiler.Tick()
	}
}

// drainConfig applies every pending config without blocking.
func (e *engine) drainConfig() {
	for e.configUpdates != nil {
		select {
		case cfg, ok := <-e.configUpdates:
			if !ok {
				e.configUpdates = nil
				return
			}
			e.ApplyConfig(cfg)
		default:
			return
		}
	}
}

// frameAction is what the loop does after a failed frame.
type frameAction int

const (
	actionReconfigure frameAction = iota
	actionSkip
	actionFatal
)

func classifyFrameError(err error) frameAction {
	switch {
	case renderer.IsSurfaceRecoverable(err):
		return actionReconfigure
	case errors.Is(err, renderer.ErrSurfaceTimeout), errors.Is(err, renderer.ErrRebuildFailed):
		return actionSkip
	default:
		return actionFatal
	}
}

func (e *engine) handleFrameError(err error) {
	switch classifyFrameError(err) {
	case actionReconfigure:
		e.logger.Debug("reconfiguring surface", "err", err)
		e.resize(e.window.Width(), e.window.Height())
	case actionSkip:
		e.logger.Warn("frame skipped", "err", err)
	case actionFatal:
		e.logger.Error("frame failed", "err", err)
		e.mu.Lock()
		if e.err == nil {
			e.err = err
		}
		e.mu.Unlock()
		e.Quit()
	}
}

// resize ignores zero sizes so a minimized window keeps its last projection.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if err := e.renderer.Resize(width, height); err != nil {
		e.logger.Error("resize failed", "width", width, "height", height, "err", err)
		return
	}
	e.pipeline.Resize(width, height)
}

func (e *engine) handleKey(code uint32, pressed bool) {
	if pressed {
		switch code {
		case common.KeyR:
			e.pipeline.ResetCamera()
			return
		case common.KeyF11:
			mode := e.window.Mode().Toggled()
			if err := e.window.SetMode(mode); err != nil {
				e.logger.Warn("window mode change failed", "mode", mode, "err", err)
				return
			}
			e.logger.Debug("window mode", "mode", mode)
			return
		}
	}
	e.pipeline.Controller().ProcessKey(code, pressed)
}

// release frees GPU objects before the window that owns the surface.
func (e *engine) release() {
	if e.orchestrator != nil {
		e.orchestrator.Registry().Release()
	}
	if e.renderer != nil {
		e.renderer.Release()
	}
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			e.logger.Warn("close window", "err", err)
		}
	}
}

func backgroundColor(c [4]float64) wgpu.Color {
	return wgpu.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}
