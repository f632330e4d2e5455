package camera

type CameraBuilderOption func(*cameraImpl)

// WithViewport sets the initial viewport size used for the aspect ratio.
//
// Parameters:
//   - width, height: viewport size in pixels (height must be nonzero)
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's viewport
func WithViewport(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.width = width
		c.height = height
	}
}

// WithPosition sets the camera's initial position.
//
// Parameters:
//   - position: world-space eye position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(position [3]float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithYawPitch sets the initial orientation angles in degrees. Pitch is clamped.
//
// Parameters:
//   - yaw: yaw in degrees (-90 looks down -Z)
//   - pitch: pitch in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's orientation
func WithYawPitch(yaw, pitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.yaw = yaw
		c.pitch = min(max(pitch, MinPitch), MaxPitch)
	}
}

// WithWorldUp sets the world up vector used to derive the right vector.
//
// Parameters:
//   - up: the world up direction (unit length)
//
// Returns:
//   - CameraBuilderOption: a function that sets the world up vector
func WithWorldUp(up [3]float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.worldUp = up
	}
}

// WithFov sets the camera's vertical field of view in degrees.
//
// Parameters:
//   - fov: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithSensitivity sets the mouse-look sensitivity in degrees per pixel.
func WithSensitivity(sensitivity float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.sensitivity = sensitivity
	}
}

// WithSpeed sets the movement speed in world units per second.
func WithSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.speed = speed
	}
}
