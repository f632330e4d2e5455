package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-shadow/common"
)

// Stats is one profiler report.
type Stats struct {
	FPS          float64
	FrameTime    time.Duration
	HeapMB       float64
	AllocRateMB  float64
	GCCount      uint32
	LastPauseUs  uint64
	MaxPauseUs   uint64
	SysMB        float64
	FramesInTick int
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// NewProfiler creates a new Profiler reporting every interval.
// Intervals of zero or less default to 1 second.
//
// Parameters:
//   - interval: time between reports
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
	}
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	return p.tickAt(time.Now())
}

// Last returns the most recent report, zero before the first one.
func (p *Profiler) Last() Stats {
	return p.last
}

func (p *Profiler) tickAt(now time.Time) bool {
	p.frameCount++
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)

	s := Stats{
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		FrameTime:    elapsed / time.Duration(p.frameCount),
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:  float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:      p.memStats.NumGC,
		SysMB:        float64(p.memStats.Sys) / 1024 / 1024,
		FramesInTick: p.frameCount,
	}

	if s.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000
		start := p.lastGCCount
		if s.GCCount-start > 256 {
			start = s.GCCount - 256
		}
		for i := start; i < s.GCCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	common.LogInfo("profiler",
		"fps", s.FPS,
		"frame", s.FrameTime,
		"heapMB", s.HeapMB,
		"allocMBps", s.AllocRateMB,
		"gc", s.GCCount,
		"lastPauseUs", s.LastPauseUs,
		"maxPauseUs", s.MaxPauseUs,
		"sysMB", s.SysMB,
	)

	p.last = s
	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
