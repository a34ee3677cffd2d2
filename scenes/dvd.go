package scenes

import (
	"github.com/Carmen-Shannon/oxy-shapes/engine/scene"
	"github.com/Carmen-Shannon/oxy-shapes/engine/shape"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DVDName is the command line name of the DVD scene.
const DVDName = "dvd"

var (
	dvdColor   = [3]float32{0, 0, 1}
	frameColor = [3]float32{1, 0, 0}
)

// DVD bounces a unit cube around the inside of a box, accelerating as it goes.
type DVD struct {
	min, max     mgl32.Vec3
	size         mgl32.Vec3
	center       mgl32.Vec3
	velocity     mgl32.Vec3
	acceleration mgl32.Vec3

	cube, frame scene.Handle
}

var _ scene.Scene = &DVD{}

// NewDVD creates the scene with the cube at the origin inside a [-10,10]^3 frame.
//
// Parameters:
//   - options: functional options overriding the motion
//
// Returns:
//   - *DVD: the scene
func NewDVD(options ...DVDOption) *DVD {
	d := &DVD{
		min:          mgl32.Vec3{-10, -10, -10},
		max:          mgl32.Vec3{10, 10, 10},
		size:         mgl32.Vec3{1, 1, 1},
		velocity:     mgl32.Vec3{2.5, 1, 0.3},
		acceleration: mgl32.Vec3{0.2, 0.2, 0.2},
	}
	for _, option := range options {
		option(d)
	}
	return d
}

func (d *DVD) Name() string {
	return DVDName
}

func (d *DVD) Setup(r scene.Registry) error {
	half := d.size.Mul(0.5)
	d.cube = r.Add(shape.Rect(half.Mul(-1), half, dvdColor, nil))
	// corners swapped so the frame faces inward
	d.frame = r.Add(shape.Rect(d.max, d.min, frameColor, []shape.Instance{shape.IdentityInstance()}))
	return nil
}

func (d *DVD) Update(r scene.Registry, dt float32) {
	d.velocity = d.velocity.Add(d.acceleration.Mul(dt))
	d.center = d.center.Add(d.velocity.Mul(dt))

	for i := range 3 {
		half := d.size[i] / 2
		switch {
		case d.center[i] > d.max[i]-half:
			d.velocity[i] = -math32.Abs(d.velocity[i])
		case d.center[i] < d.min[i]+half:
			d.velocity[i] = math32.Abs(d.velocity[i])
		}
	}

	if p := r.Get(d.cube); p != nil {
		p.SetInstances([]shape.Instance{shape.NewInstance(d.center, mgl32.QuatIdent())})
	}
}

func (d *DVD) Shapes() []scene.Handle {
	return []scene.Handle{d.cube, d.frame}
}

// Center returns the cube's current position.
func (d *DVD) Center() mgl32.Vec3 {
	return d.center
}

// Velocity returns the cube's current velocity.
func (d *DVD) Velocity() mgl32.Vec3 {
	return d.velocity
}

// DVDOption is a functional option for configuring a DVD scene.
type DVDOption func(d *DVD)

// WithStart sets the starting position and velocity of the cube.
//
// Parameters:
//   - center: the starting position
//   - velocity: the starting velocity in units per second
//
// Returns:
//   - DVDOption: option function to apply
func WithStart(center, velocity mgl32.Vec3) DVDOption {
	return func(d *DVD) {
		d.center = center
		d.velocity = velocity
	}
}

// WithAcceleration sets the constant acceleration of the cube.
//
// Parameters:
//   - acceleration: units per second squared
//
// Returns:
//   - DVDOption: option function to apply
func WithAcceleration(acceleration mgl32.Vec3) DVDOption {
	return func(d *DVD) {
		d.acceleration = acceleration
	}
}
