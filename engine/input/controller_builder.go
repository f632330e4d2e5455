package input

// ControllerBuilderOption is a functional option for configuring a Controller via NewController.
type ControllerBuilderOption func(*controllerImpl)

// WithLockTarget sets the function returning the point the camera locks onto while the
// lock button is held. It is called every frame the button is held.
//
// Parameters:
//   - target: returns the current lock target
//
// Returns:
//   - ControllerBuilderOption: a function that applies the lock target to a controller
func WithLockTarget(target func() [3]float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.lockTarget = target
	}
}

// WithLockButton sets the mouse button that locks the camera onto the target.
// Defaults to the left button.
//
// Parameters:
//   - button: a GLFW mouse button code
//
// Returns:
//   - ControllerBuilderOption: a function that applies the lock button to a controller
func WithLockButton(button int) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.lockButton = button
	}
}
