package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW      = 87 // W key (ASCII)
	KeyA      = 65 // A key (ASCII)
	KeyS      = 83 // S key (ASCII)
	KeyD      = 68 // D key (ASCII)
	KeySpace  = 32 // Spacebar (ASCII)
	KeyEscape = 256

	KeyLeftShift = 340 // Left Shift (GLFW)
)

// Mouse button codes, matching GLFW's MouseButton values.
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)
