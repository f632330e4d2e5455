package window

import (
	"github.com/Carmen-Shannon/oxy-shadow/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and per-frame input state.
// Wraps the GLFW implementation with a common interface; it also serves as the
// renderer's Surface.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// PollInput processes pending window events without blocking and returns the
	// input state of this frame.
	//
	// Returns:
	//   - input.Snapshot: keys, buttons, cursor, scroll and close request
	PollInput() input.Snapshot

	// CaptureCursor hides and locks the cursor for unbounded mouse look, or releases it.
	//
	// Parameters:
	//   - captured: true to capture
	CaptureCursor(captured bool)

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Time returns seconds since the window system was initialised.
	//
	// Returns:
	//   - float64: the timer value
	Time() float64

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// size limits applied while the user resizes, 0 for none
	minWidth, minHeight int
	maxWidth, maxHeight int

	// width and height are the framebuffer size in pixels.
	width  int
	height int

	captureCursor bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	recorder *input.Recorder

	// onResize is called when the framebuffer is resized.
	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow creates and opens a new Window with the specified options.
// Must be called from the main goroutine.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
//   - error: common.ErrWindowCreate wrapped with the platform error
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:    "oxy-shadow",
		width:    1600,
		height:   1200,
		recorder: input.NewRecorder(),
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	if w.captureCursor {
		w.CaptureCursor(true)
	}
	return w, nil
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) PollInput() input.Snapshot {
	platformProcessMessages(w)
	return w.recorder.Snapshot()
}

func (w *engineWindow) CaptureCursor(captured bool) {
	platformCaptureCursor(w, captured)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) Time() float64 {
	return platformTime()
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
