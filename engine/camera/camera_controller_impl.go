package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-shapes/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Default controller tuning.
const (
	DefaultSpeed               float32 = 10
	DefaultRotationSensitivity float32 = 2
	DefaultZoomSensitivity     float32 = 2.5
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	bindings map[uint32]Direction

	// 0 or 1 per direction
	intents [directionCount]float32

	// reset every tick
	rotateHorizontal float32
	rotateVertical   float32
	scroll           float32

	speed               float32
	rotationSensitivity float32
	zoomSensitivity     float32
	zoomSign            float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// DefaultKeyBindings returns the WASD/arrow-key layout with Space and Left Shift for vertical movement.
//
// Returns:
//   - map[uint32]Direction: key code to direction
func DefaultKeyBindings() map[uint32]Direction {
	return map[uint32]Direction{
		common.KeyW:         DirectionForward,
		common.KeyUp:        DirectionForward,
		common.KeyS:         DirectionBackward,
		common.KeyDown:      DirectionBackward,
		common.KeyA:         DirectionLeft,
		common.KeyLeft:      DirectionLeft,
		common.KeyD:         DirectionRight,
		common.KeyRight:     DirectionRight,
		common.KeySpace:     DirectionUp,
		common.KeyLeftShift: DirectionDown,
	}
}

// NewCameraController creates a new fly-camera controller with the default bindings and tuning.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:                  &sync.Mutex{},
		bindings:            DefaultKeyBindings(),
		speed:               DefaultSpeed,
		rotationSensitivity: DefaultRotationSensitivity,
		zoomSensitivity:     DefaultZoomSensitivity,
		zoomSign:            1,
	}

	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) ProcessKey(code uint32, pressed bool) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	dir, ok := cc.bindings[code]
	if !ok {
		return false
	}
	if pressed {
		cc.intents[dir] = 1
	} else {
		cc.intents[dir] = 0
	}
	return true
}

func (cc *cameraControllerImpl) ProcessMouseDelta(dx, dy float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.rotateHorizontal = float32(dx)
	cc.rotateVertical = float32(dy)
}

func (cc *cameraControllerImpl) ProcessScroll(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.scroll += delta
}

func (cc *cameraControllerImpl) ReleaseAll() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.intents = [directionCount]float32{}
}

func (cc *cameraControllerImpl) Tick(cam *CameraState, dt float32) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if cc.idle() {
		return false
	}

	sinYaw, cosYaw := math32.Sincos(cam.Yaw)
	forward := mgl32.Vec3{cosYaw, 0, sinYaw}.Normalize()
	right := mgl32.Vec3{-sinYaw, 0, cosYaw}.Normalize()

	move := cc.speed * dt
	cam.Position = cam.Position.
		Add(forward.Mul((cc.intents[DirectionForward] - cc.intents[DirectionBackward]) * move)).
		Add(right.Mul((cc.intents[DirectionRight] - cc.intents[DirectionLeft]) * move))

	if cc.scroll != 0 {
		cam.Position = cam.Position.Add(cam.Forward().Mul(cc.scroll * cc.zoomSign * cc.zoomSensitivity * dt))
	}

	cam.Position[1] += (cc.intents[DirectionUp] - cc.intents[DirectionDown]) * move

	cam.Yaw += cc.rotateHorizontal * cc.rotationSensitivity * dt
	// screen y grows downward
	cam.Pitch += -cc.rotateVertical * cc.rotationSensitivity * dt
	cam.Pitch = common.ClampPitch(cam.Pitch, PitchEpsilon)

	cc.rotateHorizontal = 0
	cc.rotateVertical = 0
	cc.scroll = 0
	return true
}

// idle reports whether there is nothing to apply. Caller must hold the mutex.
func (cc *cameraControllerImpl) idle() bool {
	for _, v := range cc.intents {
		if v != 0 {
			return false
		}
	}
	return cc.rotateHorizontal == 0 && cc.rotateVertical == 0 && cc.scroll == 0
}

func (cc *cameraControllerImpl) Speed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.speed
}

func (cc *cameraControllerImpl) SetSpeed(speed float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.speed = speed
}

func (cc *cameraControllerImpl) RotationSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rotationSensitivity
}

func (cc *cameraControllerImpl) SetRotationSensitivity(sensitivity float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.rotationSensitivity = sensitivity
}

func (cc *cameraControllerImpl) ZoomSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSensitivity
}

func (cc *cameraControllerImpl) SetZoomSensitivity(sensitivity float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.zoomSensitivity = sensitivity
}

func (cc *cameraControllerImpl) ZoomSign() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSign
}
