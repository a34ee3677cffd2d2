package camera

import (
	"github.com/Carmen-Shannon/oxy-shapes/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PitchEpsilon is the distance kept between the pitch and ±π/2.
const PitchEpsilon float32 = 0.0001

// Default camera placement restored by a reset.
var (
	DefaultPosition = mgl32.Vec3{0, 1, 2}
	DefaultYaw      = mgl32.DegToRad(-90)
	DefaultPitch    = mgl32.DegToRad(-20)
)

// Default projection parameters.
var (
	DefaultFovy  = mgl32.DegToRad(45)
	DefaultZnear = float32(0.1)
	DefaultZfar  = float32(100)
)

var worldUp = mgl32.Vec3{0, 1, 0}

// CameraState is the position and yaw/pitch orientation of the fly camera.
// Angles are radians. Yaw 0 looks down +X, yaw -π/2 looks down -Z.
type CameraState struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
}

// DefaultCameraState returns the camera placement used at start-up and on reset.
//
// Returns:
//   - CameraState: position (0, 1, 2), yaw -90°, pitch -20°
func DefaultCameraState() CameraState {
	return CameraState{
		Position: DefaultPosition,
		Yaw:      DefaultYaw,
		Pitch:    DefaultPitch,
	}
}

// Forward returns the unit view direction derived from yaw and pitch.
//
// Returns:
//   - mgl32.Vec3: the direction the camera looks along
func (c CameraState) Forward() mgl32.Vec3 {
	sinPitch, cosPitch := math32.Sincos(c.Pitch)
	sinYaw, cosYaw := math32.Sincos(c.Yaw)
	return mgl32.Vec3{cosPitch * cosYaw, sinPitch, cosPitch * sinYaw}.Normalize()
}

// ViewMatrix returns the right-handed world-to-view transform.
//
// Returns:
//   - mgl32.Mat4: the view matrix
func (c CameraState) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), worldUp)
}

// ProjectionState holds the perspective parameters. Aspect only changes through Resize.
type ProjectionState struct {
	aspect float32
	Fovy   float32
	Znear  float32
	Zfar   float32
}

// NewProjectionState creates a ProjectionState for a surface of the given size.
// A zero height falls back to a square aspect.
//
// Parameters:
//   - width: surface width in pixels
//   - height: surface height in pixels
//   - options: functional options overriding fovy, znear or zfar
//
// Returns:
//   - ProjectionState: the projection
func NewProjectionState(width, height int, options ...ProjectionBuilderOption) ProjectionState {
	p := ProjectionState{
		aspect: 1,
		Fovy:   DefaultFovy,
		Znear:  DefaultZnear,
		Zfar:   DefaultZfar,
	}
	for _, option := range options {
		option(&p)
	}
	p.Resize(width, height)
	return p
}

// Aspect returns the width / height ratio from the last resize.
//
// Returns:
//   - float32: the aspect ratio
func (p *ProjectionState) Aspect() float32 {
	return p.aspect
}

// Resize recomputes the aspect ratio. Non-positive sizes are ignored so a
// minimized window keeps the last usable projection.
//
// Parameters:
//   - width: surface width in pixels
//   - height: surface height in pixels
//
// Returns:
//   - bool: true if the aspect was recomputed
func (p *ProjectionState) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	p.aspect = float32(width) / float32(height)
	return true
}

// Matrix returns the perspective projection with WebGPU depth range.
//
// Returns:
//   - mgl32.Mat4: the projection matrix
func (p *ProjectionState) Matrix() mgl32.Mat4 {
	return common.OpenGLToWGPU.Mul4(mgl32.Perspective(p.Fovy, p.aspect, p.Znear, p.Zfar))
}
