package input

// Snapshot is the input state of one frame as polled from the window.
// Keys and buttons are GLFW codes (see common key and mouse button constants).
type Snapshot struct {
	Keys         map[int]bool
	MouseButtons map[int]bool

	// CursorX and CursorY are the absolute cursor position in window coordinates.
	CursorX, CursorY float64

	// CursorValid is false until the window has reported a cursor position.
	CursorValid bool

	// ScrollY is the vertical scroll accumulated since the previous snapshot.
	ScrollY float64

	// CloseRequested is set when the window manager asked the window to close.
	CloseRequested bool
}

// Pressed reports whether a key is held.
func (s Snapshot) Pressed(key int) bool {
	return s.Keys[key]
}

// ButtonPressed reports whether a mouse button is held.
func (s Snapshot) ButtonPressed(button int) bool {
	return s.MouseButtons[button]
}
