package frame

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-shapes/engine/scene"
)

// OrchestratorBuilderOption is a functional option for configuring an Orchestrator.
type OrchestratorBuilderOption func(o *orchestrator)

// WithRegistry supplies the shape registry. A new registry is created when omitted.
//
// Parameters:
//   - r: the registry
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithRegistry(r scene.Registry) OrchestratorBuilderOption {
	return func(o *orchestrator) {
		o.registry = r
	}
}

// WithPipelineKey selects the render pipeline used for every draw. Defaults to renderer.ShapePipelineKey.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithPipelineKey(key string) OrchestratorBuilderOption {
	return func(o *orchestrator) {
		o.pipelineKey = key
	}
}

// WithPhaseRecorder reports update and draw durations every frame.
//
// Parameters:
//   - recorder: the recorder
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithPhaseRecorder(recorder PhaseRecorder) OrchestratorBuilderOption {
	return func(o *orchestrator) {
		o.phases = recorder
	}
}

// WithLogger sets the logger.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) OrchestratorBuilderOption {
	return func(o *orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}
