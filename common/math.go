package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// OpenGLToWGPU remaps OpenGL clip-space depth [-1, 1] into the WebGPU range [0, 1].
// mgl32.Perspective builds OpenGL-style projections, so every projection handed to
// the GPU is pre-multiplied by this matrix. Stored column-major like every mgl32.Mat4.
var OpenGLToWGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// AlignBytes returns data padded with zero bytes up to the next multiple of alignment.
// WebGPU requires buffer upload sizes to be a multiple of 4 (COPY_BUFFER_ALIGNMENT),
// which a uint16 index list with an odd length violates. The input is copied when
// padding is needed and returned as-is otherwise.
//
// Parameters:
//   - data: the bytes to pad
//   - alignment: the required size multiple (values <= 1 disable padding)
//
// Returns:
//   - []byte: data with a length that is a multiple of alignment
func AlignBytes(data []byte, alignment int) []byte {
	if alignment <= 1 {
		return data
	}
	rem := len(data) % alignment
	if rem == 0 {
		return data
	}
	padded := make([]byte, len(data)+alignment-rem)
	copy(padded, data)
	return padded
}

// ClampPitch clamps a pitch angle to the open interval (-π/2, π/2) shrunk by epsilon.
// Looking straight up or down makes the view basis degenerate, so the camera never gets there.
//
// Parameters:
//   - pitch: the pitch angle in radians
//   - epsilon: distance kept from ±π/2
//
// Returns:
//   - float32: the clamped pitch
func ClampPitch(pitch, epsilon float32) float32 {
	limit := mgl32.DegToRad(90) - epsilon
	return mgl32.Clamp(pitch, -limit, limit)
}
