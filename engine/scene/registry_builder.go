package scene

import "log/slog"

// RegistryBuilderOption is a functional option for configuring a Registry.
type RegistryBuilderOption func(r *registry)

// WithLogger sets the logger used for registration and rebuild failures.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) RegistryBuilderOption {
	return func(r *registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}
