package shape

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUVertexSource is the WGSL VertexInput struct matching Vertex.
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUInstanceSource is the WGSL InstanceInput struct matching InstanceRaw.
//
//go:embed assets/instance.wgsl
var GPUInstanceSource string

// Vertex is the GPU-aligned representation of a single shape vertex.
// Matches the WGSL VertexInput struct at locations 0 and 1.
// Size: 24 bytes (no padding required for vertex buffers).
type Vertex struct {
	Position [3]float32 // offset  0: position in model space (12 bytes)
	Color    [3]float32 // offset 12: linear RGB color (12 bytes)
}

// NewVertex builds a Vertex from a position and a color.
//
// Parameters:
//   - position: the model-space position
//   - color: the RGB color
//
// Returns:
//   - Vertex: the vertex
func NewVertex(position, color [3]float32) Vertex {
	return Vertex{Position: position, Color: color}
}

// Size returns the size of the Vertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (24)
func (v *Vertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// Marshal serializes the Vertex into a little-endian byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer
func (v *Vertex) Marshal() []byte {
	buf := make([]byte, 24)
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v.Position[i]))
		binary.LittleEndian.PutUint32(buf[12+i*4:], math.Float32bits(v.Color[i]))
	}
	return buf
}

// InstanceRaw is the GPU-aligned per-instance model matrix.
// Matches the WGSL InstanceInput struct at locations 5 through 8, one vec4 column each.
// Size: 64 bytes.
type InstanceRaw struct {
	Model [16]float32 // offset 0: column-major model matrix (mat4x4<f32>)
}

// Size returns the size of the InstanceRaw struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (64)
func (r *InstanceRaw) Size() int {
	return int(unsafe.Sizeof(*r))
}

// VertexLayout returns the vertex buffer layout for slot 0 (per-vertex data).
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout describing Vertex
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 24,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}
}

// InstanceLayout returns the vertex buffer layout for slot 1 (per-instance model matrix).
// A mat4x4 does not fit a single attribute, so each column takes its own location.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout describing InstanceRaw
func InstanceLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 64,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 5},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 6},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 7},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 8},
		},
	}
}
