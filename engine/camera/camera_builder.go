package camera

// ProjectionBuilderOption configures a ProjectionState during construction.
type ProjectionBuilderOption func(*ProjectionState)

// WithFovy sets the vertical field of view in radians.
//
// Parameters:
//   - fovy: field of view in radians
//
// Returns:
//   - ProjectionBuilderOption: a function that sets the field of view
func WithFovy(fovy float32) ProjectionBuilderOption {
	return func(p *ProjectionState) {
		p.Fovy = fovy
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - ProjectionBuilderOption: a function that sets the near plane
func WithNear(near float32) ProjectionBuilderOption {
	return func(p *ProjectionState) {
		p.Znear = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - ProjectionBuilderOption: a function that sets the far plane
func WithFar(far float32) ProjectionBuilderOption {
	return func(p *ProjectionState) {
		p.Zfar = far
	}
}
