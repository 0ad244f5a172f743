package input

// ControllerBuilderOption is a functional option for configuring a Controller via NewController.
type ControllerBuilderOption func(*controllerImpl)

// WithOrbitSensitivity sets the degrees of rotation per pixel of orbit drag (default 0.5).
//
// Parameters:
//   - sensitivity: degrees per pixel
//
// Returns:
//   - ControllerBuilderOption: a function that sets the orbit sensitivity
func WithOrbitSensitivity(sensitivity float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.orbitSensitivity = sensitivity
	}
}

// WithPinchScale sets the radius change per pixel of pinch spread (default 0.02).
//
// Parameters:
//   - scale: radius units per pixel
//
// Returns:
//   - ControllerBuilderOption: a function that sets the pinch scale
func WithPinchScale(scale float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.pinchScale = scale
	}
}

// WithWheelStep sets the fraction of the current radius one wheel step zooms by (default 0.1).
//
// Parameters:
//   - step: fraction of the radius
//
// Returns:
//   - ControllerBuilderOption: a function that sets the wheel step
func WithWheelStep(step float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.wheelStep = step
	}
}
