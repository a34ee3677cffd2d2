package shape

// GeometryPrimitiveBuilderOption configures a geometryPrimitive during construction.
type GeometryPrimitiveBuilderOption func(*geometryPrimitive)

// WithLabel sets the debug label used when naming the primitive's GPU buffers.
//
// Parameters:
//   - label: the label
//
// Returns:
//   - GeometryPrimitiveBuilderOption: a function that sets the label
func WithLabel(label string) GeometryPrimitiveBuilderOption {
	return func(p *geometryPrimitive) {
		p.label = label
	}
}

// WithVertices sets the mesh vertices.
//
// Parameters:
//   - vertices: the vertex list, copied
//
// Returns:
//   - GeometryPrimitiveBuilderOption: a function that sets the vertices
func WithVertices(vertices []Vertex) GeometryPrimitiveBuilderOption {
	return func(p *geometryPrimitive) {
		p.vertices = append([]Vertex(nil), vertices...)
	}
}

// WithIndices sets the triangle index list.
//
// Parameters:
//   - indices: the indices, three per triangle, copied
//
// Returns:
//   - GeometryPrimitiveBuilderOption: a function that sets the indices
func WithIndices(indices []uint16) GeometryPrimitiveBuilderOption {
	return func(p *geometryPrimitive) {
		p.indices = append([]uint16(nil), indices...)
	}
}

// WithInstances sets the initial instance placements.
//
// Parameters:
//   - instances: the instances, copied
//
// Returns:
//   - GeometryPrimitiveBuilderOption: a function that sets the instances
func WithInstances(instances []Instance) GeometryPrimitiveBuilderOption {
	return func(p *geometryPrimitive) {
		p.instances = append([]Instance(nil), instances...)
	}
}
