package renderer

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption configures a renderer in NewRenderer, before any GPU object exists.
type RendererBuilderOption func(*renderer)

// WithPipeline queues a Pipeline for registration once the GPU device exists.
//
// Parameters:
//   - p: the Pipeline to register
//
// Returns:
//   - RendererBuilderOption: the option
func WithPipeline(p pipeline.Pipeline) RendererBuilderOption {
	return func(r *renderer) {
		r.pipelineCache[p.PipelineKey()] = p
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
// Modes the surface does not support fall back to its first supported mode with a warning.
//
// Parameters:
//   - mode: the PresentMode to use
//
// Returns:
//   - RendererBuilderOption: the option
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithBackground sets the clear color of the shape pass. SetBackground changes it later.
func WithBackground(color wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.background = color
	}
}

// WithLogger sets the logger for adapter, surface and present-mode diagnostics. Nil is ignored.
func WithLogger(logger *slog.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithForceSoftwareRenderer requests the fallback adapter when the renderer picks a GPU.
// Adapter selection fails unless a software driver such as lavapipe is installed.
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
