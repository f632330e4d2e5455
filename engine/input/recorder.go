package input

// Recorder accumulates window events between frames and hands them out as Snapshots.
// It is fed from the window's event callbacks, which run on the main thread during event
// polling, so it needs no locking.
type Recorder struct {
	keys    map[int]bool
	buttons map[int]bool

	x, y        float64
	cursorValid bool
	scroll      float64
	close       bool
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		keys:    make(map[int]bool),
		buttons: make(map[int]bool),
	}
}

// Key records a key press or release.
func (r *Recorder) Key(key int, pressed bool) {
	if pressed {
		r.keys[key] = true
	} else {
		delete(r.keys, key)
	}
}

// Button records a mouse button press or release.
func (r *Recorder) Button(button int, pressed bool) {
	if pressed {
		r.buttons[button] = true
	} else {
		delete(r.buttons, button)
	}
}

// Cursor records the absolute cursor position.
func (r *Recorder) Cursor(x, y float64) {
	r.x, r.y = x, y
	r.cursorValid = true
}

// Scroll adds a vertical scroll offset.
func (r *Recorder) Scroll(dy float64) {
	r.scroll += dy
}

// Close records a close request from the window manager.
func (r *Recorder) Close() {
	r.close = true
}

// Release drops every held key and button, e.g. when the window loses focus.
func (r *Recorder) Release() {
	clear(r.keys)
	clear(r.buttons)
}

// Snapshot returns the current state and resets the accumulated scroll.
// The returned maps are copies.
//
// Returns:
//   - Snapshot: the input state of the frame
func (r *Recorder) Snapshot() Snapshot {
	s := Snapshot{
		Keys:           make(map[int]bool, len(r.keys)),
		MouseButtons:   make(map[int]bool, len(r.buttons)),
		CursorX:        r.x,
		CursorY:        r.y,
		CursorValid:    r.cursorValid,
		ScrollY:        r.scroll,
		CloseRequested: r.close,
	}
	for k := range r.keys {
		s.Keys[k] = true
	}
	for b := range r.buttons {
		s.MouseButtons[b] = true
	}
	r.scroll = 0
	return s
}
