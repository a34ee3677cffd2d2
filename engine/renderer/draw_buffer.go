package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shapes/common"
	"github.com/Carmen-Shannon/oxy-shapes/engine/shape"
)

// InstancedDrawBuffer is the GPU copy of one GeometryPrimitive.
// It is always a full snapshot of the primitive at the time it was built and is never patched;
// a newer snapshot replaces the whole buffer set.
type InstancedDrawBuffer struct {
	Label          string
	VertexBuffer   Buffer
	IndexBuffer    Buffer
	InstanceBuffer Buffer
	IndexCount     uint32
	InstanceCount  uint32
}

// Drawable reports whether the buffer would produce any fragments.
// Buffers with no instances or no indices are never submitted.
//
// Returns:
//   - bool: true if a draw call is worth issuing
func (b *InstancedDrawBuffer) Drawable() bool {
	return b != nil && b.InstanceCount > 0 && b.IndexCount > 0
}

// Release releases all three GPU buffers. Safe on a nil or partially built buffer.
func (b *InstancedDrawBuffer) Release() {
	if b == nil {
		return
	}
	for _, buf := range []Buffer{b.VertexBuffer, b.IndexBuffer, b.InstanceBuffer} {
		if buf != nil {
			buf.Release()
		}
	}
	b.VertexBuffer, b.IndexBuffer, b.InstanceBuffer = nil, nil, nil
}

// SyncDrawBuffer rebuilds the GPU buffers of a dirty primitive.
// A clean primitive yields (nil, nil) and no factory calls. On success the primitive is marked
// synced at the snapshot version it was built from. On failure every buffer created in the
// attempt is released and the primitive stays dirty so the next frame retries.
//
// Parameters:
//   - factory: the buffer factory
//   - p: the primitive to mirror
//
// Returns:
//   - *InstancedDrawBuffer: the new buffers, or nil if the primitive was clean
//   - error: a wrapped factory error
func SyncDrawBuffer(factory BufferFactory, p shape.GeometryPrimitive) (*InstancedDrawBuffer, error) {
	if !p.Dirty() {
		return nil, nil
	}

	snap := p.Snapshot()
	raw := make([]shape.InstanceRaw, len(snap.Instances))
	for i, inst := range snap.Instances {
		raw[i] = inst.ToRaw()
	}

	out := &InstancedDrawBuffer{
		Label:         p.Label(),
		IndexCount:    uint32(len(snap.Indices)),
		InstanceCount: uint32(len(snap.Instances)),
	}

	var err error
	if out.VertexBuffer, err = factory.CreateBuffer(p.Label()+" Vertex Buffer", common.SliceToBytes(snap.Vertices), VertexUsage); err != nil {
		out.Release()
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}
	indexData := common.AlignBytes(common.SliceToBytes(snap.Indices), 4)
	if out.IndexBuffer, err = factory.CreateBuffer(p.Label()+" Index Buffer", indexData, IndexUsage); err != nil {
		out.Release()
		return nil, fmt.Errorf("create index buffer: %w", err)
	}
	if out.InstanceBuffer, err = factory.CreateBuffer(p.Label()+" Instance Buffer", common.SliceToBytes(raw), VertexUsage); err != nil {
		out.Release()
		return nil, fmt.Errorf("create instance buffer: %w", err)
	}

	p.MarkSynced(snap.Version)
	return out, nil
}
