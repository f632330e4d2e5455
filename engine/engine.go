package engine

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/profiler"
	"github.com/Carmen-Shannon/oxy-shadow/engine/scene"
	"github.com/Carmen-Shannon/oxy-shadow/engine/window"
)

// engine implements the Engine interface.
// Drives the window, the scene and the profiler from a single thread.
type engine struct {
	window window.Window
	scene  scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled bool

	// frameLimit stops Run after this many frames, 0 for no limit
	frameLimit int
	frames     int

	running  bool
	lastTime float64
}

// Engine is the main entry point for the viewer.
// It runs the frame loop: poll input, update the scene, render, tick the profiler.
// Every GPU and window call happens on the goroutine that calls Run, which must be the
// goroutine that created the window.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene driven by the loop.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Frames returns the number of frames rendered so far.
	Frames() int

	// Run runs the frame loop until the window closes, the user quits or the frame limit
	// is reached. A panic inside a frame is recovered, logged and ends the loop.
	//
	// Returns:
	//   - error: the render error or recovered panic that ended the loop, nil on a normal exit
	Run() error

	// Quit stops the loop after the current frame.
	// Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an Engine over a window and a scene.
// Resizes of the window framebuffer are forwarded to the scene.
//
// Parameters:
//   - w: the window providing input and time
//   - s: the scene to update and render
//   - options: functional options for engine configuration (profiling, frame limit)
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if the window or the scene is missing
func NewEngine(w window.Window, s scene.Scene, options ...EngineBuilderOption) (Engine, error) {
	if w == nil || s == nil {
		return nil, fmt.Errorf("engine: window and scene are required")
	}

	e := &engine{
		window:   w,
		scene:    s,
		profiler: profiler.NewProfiler(0),
	}
	for _, opt := range options {
		opt(e)
	}

	e.window.SetResizeCallback(func(width, height int) {
		if err := e.scene.Resize(width, height); err != nil {
			common.LogError("resize failed", "width", width, "height", height, "err", err)
		}
	})
	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Frames() int {
	return e.frames
}

func (e *engine) Quit() {
	e.running = false
}

func (e *engine) Run() error {
	e.running = true
	e.lastTime = e.window.Time()

	for e.running && e.window.IsRunning() {
		if err := e.frame(); err != nil {
			e.running = false
			return err
		}
		if e.frameLimit > 0 && e.frames >= e.frameLimit {
			common.LogInfo("frame limit reached", "frames", e.frames)
			e.running = false
		}
	}
	return nil
}

// frame runs one iteration of the loop and turns a panic into an error.
func (e *engine) frame() (err error) {
	defer func() {
		if r := recover(); r != nil {
			common.LogError("frame recovered from panic", "frame", e.frames, "panic", r)
			err = fmt.Errorf("frame %d: panic: %v", e.frames, r)
		}
	}()

	snap := e.window.PollInput()

	now := e.window.Time()
	dt := float32(now - e.lastTime)
	e.lastTime = now

	if action := e.scene.Update(snap, dt); action.Quit {
		e.running = false
		return nil
	}

	if err := e.scene.Render(); err != nil {
		return fmt.Errorf("frame %d: %w", e.frames, err)
	}
	e.frames++

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
	return nil
}
