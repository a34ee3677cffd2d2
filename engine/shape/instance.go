package shape

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Instance is one placement of a GeometryPrimitive: a translation and a rotation.
type Instance struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// NewInstance creates an Instance from a position and a rotation.
//
// Parameters:
//   - position: world-space translation
//   - rotation: orientation quaternion
//
// Returns:
//   - Instance: the new instance
func NewInstance(position mgl32.Vec3, rotation mgl32.Quat) Instance {
	return Instance{Position: position, Rotation: rotation}
}

// IdentityInstance returns an instance at the origin with no rotation.
//
// Returns:
//   - Instance: the identity placement
func IdentityInstance() Instance {
	return Instance{Rotation: mgl32.QuatIdent()}
}

// WithTranslation returns a copy of the instance moved to position.
//
// Parameters:
//   - position: the new world-space translation
//
// Returns:
//   - Instance: the translated copy
func (i Instance) WithTranslation(position mgl32.Vec3) Instance {
	i.Position = position
	return i
}

// WithRotation returns a copy of the instance with the given orientation.
//
// Parameters:
//   - rotation: the new orientation quaternion
//
// Returns:
//   - Instance: the rotated copy
func (i Instance) WithRotation(rotation mgl32.Quat) Instance {
	i.Rotation = rotation
	return i
}

// ToRaw converts the instance into its GPU model matrix, translation * rotation.
// A zero quaternion is treated as identity so an Instance{} literal still renders.
//
// Returns:
//   - InstanceRaw: the column-major model matrix
func (i Instance) ToRaw() InstanceRaw {
	rot := i.Rotation
	if rot.W == 0 && rot.V == (mgl32.Vec3{}) {
		rot = mgl32.QuatIdent()
	}
	m := mgl32.Translate3D(i.Position.X(), i.Position.Y(), i.Position.Z()).Mul4(rot.Normalize().Mat4())
	return InstanceRaw{Model: m}
}
