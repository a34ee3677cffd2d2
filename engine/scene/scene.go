package scene

// Scene is a collaborator that owns a set of shapes and animates them.
// The engine calls Setup once after the renderer exists, then Update once per frame
// before the registry is synced. Scenes keep the Handles returned by Registry.Add and
// mutate their primitives only through Registry.Get inside Update.
type Scene interface {
	// Name returns the scene's identifier.
	//
	// Returns:
	//   - string: the name, e.g. "dvd"
	Name() string

	// Setup registers the scene's primitives with the registry.
	//
	// Parameters:
	//   - r: the registry to add primitives to
	//
	// Returns:
	//   - error: an error if the scene could not build its shapes
	Setup(r Registry) error

	// Update advances the simulation by dt seconds. Work must finish before Update returns.
	//
	// Parameters:
	//   - r: the registry holding the scene's primitives
	//   - dt: elapsed seconds since the previous frame
	Update(r Registry, dt float32)

	// Shapes returns the handles to draw this frame. Handles absent from the list are
	// neither synced nor drawn.
	//
	// Returns:
	//   - []Handle: the visible handles
	Shapes() []Handle
}
