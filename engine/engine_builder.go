package engine

import (
	"context"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-shapes/config"
	"github.com/Carmen-Shannon/oxy-shapes/engine/scene"
	"github.com/Carmen-Shannon/oxy-shapes/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output, overriding the config value.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally. The engine still closes it when Run returns.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene sets the scene to run instead of looking up the config's scene name.
//
// Parameters:
//   - s: the Scene to run
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithConfigUpdates sets a channel of reloaded configs, typically from config.Watch.
// Pending configs are applied at the start of each frame.
//
// Parameters:
//   - updates: the channel to drain
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfigUpdates(updates <-chan config.Config) EngineBuilderOption {
	return func(e *engine) {
		e.configUpdates = updates
	}
}

// WithForceSoftwareRenderer requests a fallback (software) GPU adapter.
//
// Parameters:
//   - force: true to force the software fallback adapter
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithForceSoftwareRenderer(force bool) EngineBuilderOption {
	return func(e *engine) {
		e.forceSoftware = force
	}
}

// WithLogger sets the logger handed to every engine component.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithContext sets a context whose cancellation closes the window at the next frame.
//
// Parameters:
//   - ctx: the context, e.g. one cancelled on SIGINT
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithContext(ctx context.Context) EngineBuilderOption {
	return func(e *engine) {
		if ctx != nil {
			e.ctx = ctx
		}
	}
}
