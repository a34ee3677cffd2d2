package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithSpeed sets the translation speed in units per second.
//
// Parameters:
//   - speed: the speed
//
// Returns:
//   - CameraControllerOption: functional option to set the speed
func WithSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.speed = speed
	}
}

// WithRotationSensitivity sets the mouse-look multiplier.
//
// Parameters:
//   - sensitivity: the multiplier applied to mouse deltas
//
// Returns:
//   - CameraControllerOption: functional option to set the rotation sensitivity
func WithRotationSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotationSensitivity = sensitivity
	}
}

// WithZoomSensitivity sets the scroll zoom multiplier.
//
// Parameters:
//   - sensitivity: the multiplier applied to the scroll accumulator
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom sensitivity
func WithZoomSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSensitivity = sensitivity
	}
}

// WithZoomSign sets the scroll direction convention. Any negative value selects -1,
// anything else +1.
//
// Parameters:
//   - sign: the sign applied to scroll deltas
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom sign
func WithZoomSign(sign float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if sign < 0 {
			cc.zoomSign = -1
		} else {
			cc.zoomSign = 1
		}
	}
}

// WithKeyBinding binds a key code to a direction, replacing any previous binding of that key.
//
// Parameters:
//   - code: the GLFW key code
//   - dir: the direction it drives
//
// Returns:
//   - CameraControllerOption: functional option to add the binding
func WithKeyBinding(code uint32, dir Direction) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.bindings[code] = dir
	}
}

// WithoutKeyBinding removes a key from the bindings so ProcessKey reports it as unhandled.
//
// Parameters:
//   - code: the GLFW key code
//
// Returns:
//   - CameraControllerOption: functional option to drop the binding
func WithoutKeyBinding(code uint32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		delete(cc.bindings, code)
	}
}
