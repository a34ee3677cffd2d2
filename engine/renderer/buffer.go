package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Buffer is a GPU buffer handle. *wgpu.Buffer satisfies it.
type Buffer interface {
	Release()
}

// BufferFactory creates initialized GPU buffers.
// The Renderer is the production factory; tests substitute a counting fake.
type BufferFactory interface {
	// CreateBuffer creates a GPU buffer holding contents.
	//
	// Parameters:
	//   - label: the debug label
	//   - contents: the initial bytes, length a multiple of 4
	//   - usage: the buffer usage flags
	//
	// Returns:
	//   - Buffer: the created buffer
	//   - error: an error if allocation fails
	CreateBuffer(label string, contents []byte, usage wgpu.BufferUsage) (Buffer, error)
}
