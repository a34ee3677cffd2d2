package frame

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-shapes/engine/camera"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/bind_group_provider"
)

// framePipelineConfig collects options that are consumed by constructors rather than stored.
type framePipelineConfig struct {
	controllerOptions []camera.CameraControllerOption
	projectionOptions []camera.ProjectionBuilderOption
}

// FramePipelineBuilderOption is a functional option for configuring a FramePipeline.
type FramePipelineBuilderOption func(fp *framePipeline, cfg *framePipelineConfig)

// WithController supplies a ready-made controller. Controller options are then ignored.
//
// Parameters:
//   - controller: the controller
//
// Returns:
//   - FramePipelineBuilderOption: option function to apply
func WithController(controller camera.CameraController) FramePipelineBuilderOption {
	return func(fp *framePipeline, _ *framePipelineConfig) {
		fp.controller = controller
	}
}

// WithControllerOptions configures the default controller.
//
// Parameters:
//   - options: the controller options, e.g. camera.WithSpeed
//
// Returns:
//   - FramePipelineBuilderOption: option function to apply
func WithControllerOptions(options ...camera.CameraControllerOption) FramePipelineBuilderOption {
	return func(_ *framePipeline, cfg *framePipelineConfig) {
		cfg.controllerOptions = append(cfg.controllerOptions, options...)
	}
}

// WithProjectionOptions configures the projection.
//
// Parameters:
//   - options: the projection options, e.g. camera.WithFovy
//
// Returns:
//   - FramePipelineBuilderOption: option function to apply
func WithProjectionOptions(options ...camera.ProjectionBuilderOption) FramePipelineBuilderOption {
	return func(_ *framePipeline, cfg *framePipelineConfig) {
		cfg.projectionOptions = append(cfg.projectionOptions, options...)
	}
}

// WithInitialCamera starts the camera somewhere other than the default placement.
// ResetCamera still restores the default.
//
// Parameters:
//   - cam: the starting placement
//
// Returns:
//   - FramePipelineBuilderOption: option function to apply
func WithInitialCamera(cam camera.CameraState) FramePipelineBuilderOption {
	return func(fp *framePipeline, _ *framePipelineConfig) {
		fp.cam = cam
	}
}

// WithCameraProvider sets the bind group provider that receives the uniform writes.
//
// Parameters:
//   - provider: the provider
//
// Returns:
//   - FramePipelineBuilderOption: option function to apply
func WithCameraProvider(provider bind_group_provider.BindGroupProvider) FramePipelineBuilderOption {
	return func(fp *framePipeline, _ *framePipelineConfig) {
		fp.provider = provider
	}
}

// WithCameraLogger sets the logger used for camera resets.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - FramePipelineBuilderOption: option function to apply
func WithCameraLogger(logger *slog.Logger) FramePipelineBuilderOption {
	return func(fp *framePipeline, _ *framePipelineConfig) {
		if logger != nil {
			fp.logger = logger
		}
	}
}
