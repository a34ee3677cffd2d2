package camera

// Direction is one of the six translational intents of the fly camera.
type Direction int

const (
	DirectionForward Direction = iota
	DirectionBackward
	DirectionLeft
	DirectionRight
	DirectionUp
	DirectionDown
	directionCount
)

// CameraController defines the input accumulator driving a CameraState.
// Input events update intents and deltas at any time between frames; Tick applies
// them once per frame and clears the per-frame deltas. Directional intents persist
// until the matching key is released.
type CameraController interface {
	cameraInput
	cameraTuning

	// Tick applies the accumulated input to the camera.
	// With no intent, no rotation delta and no scroll the call does nothing and reports false.
	// Otherwise the rotation deltas and scroll accumulator are zeroed, pitch is clamped,
	// and the call reports true.
	//
	// Parameters:
	//   - cam: the camera state to mutate
	//   - dt: elapsed seconds since the previous tick
	//
	// Returns:
	//   - bool: true if the camera changed and its uniform needs a refresh
	Tick(cam *CameraState, dt float32) bool
}

// cameraInput defines the event-facing half of the controller.
type cameraInput interface {
	// ProcessKey maps a key event to a direction intent.
	//
	// Parameters:
	//   - code: the GLFW key code
	//   - pressed: true on press or repeat, false on release
	//
	// Returns:
	//   - bool: false if the key is not bound so the caller may route it elsewhere
	ProcessKey(code uint32, pressed bool) bool

	// ProcessMouseDelta overwrites the rotation deltas with raw mouse motion.
	// The last motion event before a tick wins.
	//
	// Parameters:
	//   - dx: horizontal motion in pixels
	//   - dy: vertical motion in pixels
	ProcessMouseDelta(dx, dy float64)

	// ProcessScroll adds a scroll contribution to the zoom accumulator.
	//
	// Parameters:
	//   - delta: scroll-wheel lines
	ProcessScroll(delta float32)

	// ReleaseAll clears every direction intent, for example when the window loses focus.
	ReleaseAll()
}

// cameraTuning defines the live-adjustable speeds of the controller.
type cameraTuning interface {
	// Speed returns the translation speed in units per second.
	//
	// Returns:
	//   - float32: the speed
	Speed() float32

	// SetSpeed sets the translation speed in units per second.
	//
	// Parameters:
	//   - speed: the new speed
	SetSpeed(speed float32)

	// RotationSensitivity returns the mouse-look multiplier.
	//
	// Returns:
	//   - float32: the sensitivity
	RotationSensitivity() float32

	// SetRotationSensitivity sets the mouse-look multiplier.
	//
	// Parameters:
	//   - sensitivity: the new sensitivity
	SetRotationSensitivity(sensitivity float32)

	// ZoomSensitivity returns the scroll zoom multiplier.
	//
	// Returns:
	//   - float32: the sensitivity
	ZoomSensitivity() float32

	// SetZoomSensitivity sets the scroll zoom multiplier.
	//
	// Parameters:
	//   - sensitivity: the new sensitivity
	SetZoomSensitivity(sensitivity float32)

	// ZoomSign returns +1 or -1, the platform convention applied to scroll deltas.
	//
	// Returns:
	//   - float32: the sign
	ZoomSign() float32
}
