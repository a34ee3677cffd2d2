package shape

import (
	"sync"
)

// geometryPrimitive is the implementation of the GeometryPrimitive interface.
type geometryPrimitive struct {
	mu        sync.Mutex
	label     string
	vertices  []Vertex
	indices   []uint16
	instances []Instance
	version   uint64
	synced    uint64
}

// Snapshot is a consistent copy of a GeometryPrimitive's data taken at a single version.
// Buffers built from a Snapshot are confirmed with MarkSynced(Snapshot.Version).
type Snapshot struct {
	Vertices  []Vertex
	Indices   []uint16
	Instances []Instance
	Version   uint64
}

// GeometryPrimitive defines the interface for a single logical shape: a fixed vertex/index
// mesh plus a mutable list of instance placements.
// The primitive tracks whether its CPU-side data has diverged from the GPU copy. It starts dirty,
// becomes dirty again whenever instances or colors are replaced, and is only cleaned by MarkSynced
// with the version that was uploaded.
type GeometryPrimitive interface {
	// Label retrieves the debug label used for GPU buffer names.
	//
	// Returns:
	//   - string: the label
	Label() string

	// Vertices retrieves a copy of the mesh vertices.
	//
	// Returns:
	//   - []Vertex: the vertices
	Vertices() []Vertex

	// Indices retrieves a copy of the triangle index list.
	//
	// Returns:
	//   - []uint16: the indices
	Indices() []uint16

	// Instances retrieves a copy of the current instance placements.
	//
	// Returns:
	//   - []Instance: the instances
	Instances() []Instance

	// SetInstances replaces the instance list wholesale and marks the primitive dirty.
	// A nil or empty list is valid and results in nothing being drawn.
	//
	// Parameters:
	//   - instances: the new instance placements
	SetInstances(instances []Instance)

	// SetColor recolors every vertex and marks the primitive dirty.
	//
	// Parameters:
	//   - color: the new RGB color
	SetColor(color [3]float32)

	// Dirty reports whether the primitive needs a GPU rebuild.
	//
	// Returns:
	//   - bool: true if CPU data changed since the last successful sync
	Dirty() bool

	// Snapshot copies the primitive's data together with its current version.
	//
	// Returns:
	//   - Snapshot: the copied data
	Snapshot() Snapshot

	// MarkSynced records that GPU buffers now reflect the given version.
	// The dirty flag only clears if no mutation happened after that version was snapshotted.
	//
	// Parameters:
	//   - version: the Snapshot.Version that was uploaded
	MarkSynced(version uint64)
}

var _ GeometryPrimitive = &geometryPrimitive{}

// NewGeometryPrimitive creates a new GeometryPrimitive with the specified options applied.
// The new primitive is dirty so its first sync always uploads it.
//
// Parameters:
//   - options: a variadic list of GeometryPrimitiveBuilderOption functions
//
// Returns:
//   - GeometryPrimitive: the new primitive
func NewGeometryPrimitive(options ...GeometryPrimitiveBuilderOption) GeometryPrimitive {
	p := &geometryPrimitive{version: 1}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *geometryPrimitive) Label() string {
	return p.label
}

func (p *geometryPrimitive) Vertices() []Vertex {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Vertex(nil), p.vertices...)
}

func (p *geometryPrimitive) Indices() []uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]uint16(nil), p.indices...)
}

func (p *geometryPrimitive) Instances() []Instance {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Instance(nil), p.instances...)
}

func (p *geometryPrimitive) SetInstances(instances []Instance) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.instances = append(p.instances[:0:0], instances...)
	p.version++
}

func (p *geometryPrimitive) SetColor(color [3]float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.vertices {
		p.vertices[i].Color = color
	}
	p.version++
}

func (p *geometryPrimitive) Dirty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.synced != p.version
}

func (p *geometryPrimitive) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		Vertices:  append([]Vertex(nil), p.vertices...),
		Indices:   append([]uint16(nil), p.indices...),
		Instances: append([]Instance(nil), p.instances...),
		Version:   p.version,
	}
}

func (p *geometryPrimitive) MarkSynced(version uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if version > p.synced && version <= p.version {
		p.synced = version
	}
}
