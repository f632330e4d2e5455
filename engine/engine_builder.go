package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-shadow/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfilerInterval sets how often the profiler logs a report.
// Values <= 0 fall back to one second.
//
// Parameters:
//   - interval: time between reports
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfilerInterval(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = profiler.NewProfiler(interval)
	}
}

// WithFrameLimit stops the loop after a number of rendered frames.
// Pass 0 to run until the window closes (default).
//
// Parameters:
//   - frames: maximum frames to render
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(frames int) EngineBuilderOption {
	return func(e *engine) {
		e.frameLimit = max(frames, 0)
	}
}
