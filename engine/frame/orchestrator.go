package frame

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-shapes/engine/logx"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-shapes/engine/scene"
)

// Frame phases reported to a PhaseRecorder.
const (
	PhaseUpdate = "update"
	PhaseDraw   = "draw"
)

// RenderTarget is the GPU surface an Orchestrator draws into. renderer.Renderer satisfies it.
type RenderTarget interface {
	renderer.BufferFactory
	UniformWriter

	BeginFrame() error
	SetBindGroup(group uint32, provider bind_group_provider.BindGroupProvider)
	DrawInstanced(pipelineKey string, buf *renderer.InstancedDrawBuffer) error
	EndFrame() error
	Present()
}

// PhaseRecorder receives the duration of each frame phase. profiler.Profiler satisfies it.
type PhaseRecorder interface {
	RecordPhase(phase string, d time.Duration)
}

type orchestrator struct {
	mu *sync.Mutex

	target   RenderTarget
	registry scene.Registry
	frame    FramePipeline
	scn      scene.Scene

	pipelineKey string
	phases      PhaseRecorder
	logger      *slog.Logger
}

// Orchestrator runs one frame at a time: scene update, camera update, draw buffer sync,
// uniform upload and a single render pass with one instanced draw per visible shape.
type Orchestrator interface {
	// Frame runs the scene update, camera update, registry sync, uniform push and render,
	// strictly in that order. A failed draw buffer rebuild abandons the frame before
	// anything is drawn; the shape stays dirty and the next frame retries it.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous frame
	//
	// Returns:
	//   - error: wraps renderer.ErrRebuildFailed for rebuild failures, otherwise the render
	//     error classified for surface failures
	Frame(dt float32) error

	// Render draws the current registry contents without updating anything.
	// Surface acquisition failures are returned immediately without retrying.
	//
	// Returns:
	//   - error: a classified surface error, a draw error or a submit error
	Render() error

	// Scene returns the active scene.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Registry returns the shape registry.
	//
	// Returns:
	//   - scene.Registry: the registry
	Registry() scene.Registry

	// FramePipeline returns the camera frame pipeline.
	//
	// Returns:
	//   - FramePipeline: the pipeline
	FramePipeline() FramePipeline
}

var _ Orchestrator = &orchestrator{}

// NewOrchestrator creates an Orchestrator and runs the scene's Setup against the registry.
//
// Parameters:
//   - target: the render target, usually the renderer
//   - fp: the camera frame pipeline
//   - scn: the scene to animate and draw
//   - options: functional options to configure the orchestrator
//
// Returns:
//   - Orchestrator: the orchestrator
//   - error: the scene setup error
func NewOrchestrator(target RenderTarget, fp FramePipeline, scn scene.Scene, options ...OrchestratorBuilderOption) (Orchestrator, error) {
	o := &orchestrator{
		mu:          &sync.Mutex{},
		target:      target,
		frame:       fp,
		scn:         scn,
		pipelineKey: renderer.ShapePipelineKey,
		logger:      logx.Nop(),
	}
	for _, option := range options {
		option(o)
	}
	if o.registry == nil {
		o.registry = scene.NewRegistry(scene.WithLogger(o.logger))
	}

	if err := scn.Setup(o.registry); err != nil {
		return nil, fmt.Errorf("setup scene %q: %w", scn.Name(), err)
	}
	o.logger.Info("scene ready", "scene", scn.Name(), "shapes", o.registry.Len())
	return o, nil
}

func (o *orchestrator) Frame(dt float32) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	start := time.Now()
	o.scn.Update(o.registry, dt)
	o.frame.Update(dt)
	rebuilt, syncErr := o.registry.Sync(o.target, o.scn.Shapes())
	o.frame.PushIfDirty(o.target)
	o.record(PhaseUpdate, time.Since(start))
	if syncErr != nil {
		return fmt.Errorf("%w: %w", renderer.ErrRebuildFailed, syncErr)
	}
	if rebuilt > 0 {
		o.logger.Debug("draw buffers rebuilt", "count", rebuilt)
	}

	start = time.Now()
	err := o.render()
	o.record(PhaseDraw, time.Since(start))
	return err
}

func (o *orchestrator) Render() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.render()
}

// render encodes and submits one pass. Caller must hold the mutex.
func (o *orchestrator) render() error {
	if err := o.target.BeginFrame(); err != nil {
		return err
	}

	o.target.SetBindGroup(0, o.frame.Provider())

	var drawErr error
	for _, buf := range o.registry.DrawList(o.scn.Shapes()) {
		if err := o.target.DrawInstanced(o.pipelineKey, buf); err != nil && drawErr == nil {
			drawErr = fmt.Errorf("draw %q: %w", buf.Label, err)
		}
	}

	if err := o.target.EndFrame(); err != nil {
		return err
	}
	o.target.Present()
	return drawErr
}

func (o *orchestrator) record(phase string, d time.Duration) {
	if o.phases != nil {
		o.phases.RecordPhase(phase, d)
	}
}

func (o *orchestrator) Scene() scene.Scene {
	return o.scn
}

func (o *orchestrator) Registry() scene.Registry {
	return o.registry
}

func (o *orchestrator) FramePipeline() FramePipeline {
	return o.frame
}
