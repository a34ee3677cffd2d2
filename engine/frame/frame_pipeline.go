package frame

import (
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-shapes/common"
	"github.com/Carmen-Shannon/oxy-shapes/engine/camera"
	"github.com/Carmen-Shannon/oxy-shapes/engine/logx"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraBinding is the binding index of the view-projection uniform inside the camera bind group.
const CameraBinding = 0

// UniformWriter queues writes into GPU uniform buffers. renderer.Renderer satisfies it.
type UniformWriter interface {
	WriteBuffers(writes []bind_group_provider.BufferWrite)
}

// CameraInfo is a human readable camera placement. Angles are degrees.
type CameraInfo struct {
	X, Y, Z  float32
	YawDeg   float32
	PitchDeg float32
}

// LogValue groups the camera fields when the info is passed to a slog logger.
func (c CameraInfo) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("x", float64(c.X)),
		slog.Float64("y", float64(c.Y)),
		slog.Float64("z", float64(c.Z)),
		slog.Float64("yaw", float64(c.YawDeg)),
		slog.Float64("pitch", float64(c.PitchDeg)),
	)
}

type framePipeline struct {
	mu *sync.Mutex

	controller camera.CameraController
	cam        camera.CameraState
	projection camera.ProjectionState
	uniform    camera.GPUCameraUniform
	provider   bind_group_provider.BindGroupProvider

	// hasBeenUpdated gates the uniform upload; it is raised by every recompute
	// and lowered only by a successful PushIfDirty.
	hasBeenUpdated bool

	logger *slog.Logger
}

// FramePipeline owns the camera, its controller, the projection and the CPU mirror of the
// camera uniform. It recomputes the view-projection only when something changed and uploads
// it only when the mirror is newer than the GPU copy.
type FramePipeline interface {
	// Update ticks the controller against the camera and recomputes the uniform if it moved.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous frame
	//
	// Returns:
	//   - bool: true if the camera changed
	Update(dt float32) bool

	// PushIfDirty writes the 64-byte view-projection to the camera provider at CameraBinding.
	// Does nothing when the uniform has not changed since the last push.
	//
	// Parameters:
	//   - w: the writer receiving the buffer write
	//
	// Returns:
	//   - bool: true if a write was issued
	PushIfDirty(w UniformWriter) bool

	// Resize recomputes the aspect ratio and the uniform. Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	Resize(width, height int)

	// ResetCamera restores the default camera placement and marks the uniform dirty
	// even if the camera was already at its defaults. The projection is untouched.
	ResetCamera()

	// SetCamera replaces the camera placement. Pitch is clamped.
	//
	// Parameters:
	//   - cam: the new placement
	SetCamera(cam camera.CameraState)

	// Camera returns a copy of the camera placement.
	//
	// Returns:
	//   - camera.CameraState: the placement
	Camera() camera.CameraState

	// Projection returns a copy of the projection parameters.
	//
	// Returns:
	//   - camera.ProjectionState: the projection
	Projection() camera.ProjectionState

	// Controller returns the input accumulator so the host can feed it events.
	//
	// Returns:
	//   - camera.CameraController: the controller
	Controller() camera.CameraController

	// Provider returns the bind group provider holding the camera uniform buffer.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider
	Provider() bind_group_provider.BindGroupProvider

	// Uniform returns the CPU mirror of the camera uniform.
	//
	// Returns:
	//   - camera.GPUCameraUniform: the uniform at the last recompute
	Uniform() camera.GPUCameraUniform

	// Dirty reports whether the mirror is newer than the last push.
	//
	// Returns:
	//   - bool: true if PushIfDirty would write
	Dirty() bool

	// CameraInfo returns the camera position and angles in degrees for logging.
	//
	// Returns:
	//   - CameraInfo: the info
	CameraInfo() CameraInfo
}

var _ FramePipeline = &framePipeline{}

// NewFramePipeline creates a FramePipeline at the default camera placement for a surface of
// the given size. The uniform starts dirty so the first frame uploads it.
//
// Parameters:
//   - width: surface width in pixels
//   - height: surface height in pixels
//   - options: functional options to configure the pipeline
//
// Returns:
//   - FramePipeline: the pipeline
func NewFramePipeline(width, height int, options ...FramePipelineBuilderOption) FramePipeline {
	fp := &framePipeline{
		mu:     &sync.Mutex{},
		cam:    camera.DefaultCameraState(),
		logger: logx.Nop(),
	}
	cfg := &framePipelineConfig{}
	for _, option := range options {
		option(fp, cfg)
	}
	if fp.controller == nil {
		fp.controller = camera.NewCameraController(cfg.controllerOptions...)
	}
	if fp.provider == nil {
		fp.provider = bind_group_provider.NewBindGroupProvider("Camera")
	}
	fp.projection = camera.NewProjectionState(width, height, cfg.projectionOptions...)
	fp.recompute()
	return fp
}

// recompute refreshes the uniform mirror and raises the dirty flag. Caller must hold the mutex.
func (fp *framePipeline) recompute() {
	viewProj := fp.projection.Matrix().Mul4(fp.cam.ViewMatrix())
	fp.uniform.ViewProj = [16]float32(viewProj)
	fp.hasBeenUpdated = true
}

func (fp *framePipeline) Update(dt float32) bool {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	if !fp.controller.Tick(&fp.cam, dt) {
		return false
	}
	fp.recompute()
	return true
}

func (fp *framePipeline) PushIfDirty(w UniformWriter) bool {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	if !fp.hasBeenUpdated {
		return false
	}
	w.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: fp.provider,
		Binding:  CameraBinding,
		Offset:   0,
		Data:     fp.uniform.Marshal(),
	}})
	fp.hasBeenUpdated = false
	return true
}

func (fp *framePipeline) Resize(width, height int) {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	if !fp.projection.Resize(width, height) {
		return
	}
	fp.recompute()
}

func (fp *framePipeline) ResetCamera() {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	fp.cam = camera.DefaultCameraState()
	fp.recompute()
	fp.logger.Debug("camera reset", "camera", fp.infoLocked())
}

func (fp *framePipeline) SetCamera(cam camera.CameraState) {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	cam.Pitch = common.ClampPitch(cam.Pitch, camera.PitchEpsilon)
	fp.cam = cam
	fp.recompute()
}

func (fp *framePipeline) Camera() camera.CameraState {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.cam
}

func (fp *framePipeline) Projection() camera.ProjectionState {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.projection
}

func (fp *framePipeline) Controller() camera.CameraController {
	return fp.controller
}

func (fp *framePipeline) Provider() bind_group_provider.BindGroupProvider {
	return fp.provider
}

func (fp *framePipeline) Uniform() camera.GPUCameraUniform {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.uniform
}

func (fp *framePipeline) Dirty() bool {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.hasBeenUpdated
}

func (fp *framePipeline) CameraInfo() CameraInfo {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.infoLocked()
}

func (fp *framePipeline) infoLocked() CameraInfo {
	return CameraInfo{
		X:        fp.cam.Position.X(),
		Y:        fp.cam.Position.Y(),
		Z:        fp.cam.Position.Z(),
		YawDeg:   mgl32.RadToDeg(fp.cam.Yaw),
		PitchDeg: mgl32.RadToDeg(fp.cam.Pitch),
	}
}
