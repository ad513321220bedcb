package interaction

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*Controller)

// WithSensitivity sets radians of yaw per pixel of drag.
func WithSensitivity(sensitivity float32) ControllerBuilderOption {
	return func(c *Controller) {
		c.sensitivity = sensitivity
	}
}

// WithDigitKeys replaces the key code to animation mapping used by KeyDown.
//
// Parameters:
//   - digits: key code to animation key
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithDigitKeys(digits map[uint32]string) ControllerBuilderOption {
	return func(c *Controller) {
		c.digits = digits
	}
}

// WithRotateMode sets the initial state of the rotate toggle.
func WithRotateMode(enabled bool) ControllerBuilderOption {
	return func(c *Controller) {
		c.rotateMode = enabled
	}
}
