package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickReportsAfterInterval(t *testing.T) {
	p := NewProfiler(time.Second)
	start := p.lastTime

	for i := 1; i < 60; i++ {
		require.False(t, p.tickAt(start.Add(time.Duration(i)*10*time.Millisecond)))
	}
	require.True(t, p.tickAt(start.Add(2*time.Second)))

	s := p.Last()
	assert.Equal(t, 60, s.FramesInTick)
	assert.InDelta(t, 30, s.FPS, 1e-9)
	assert.Equal(t, 2*time.Second/60, s.FrameTime)
	assert.Greater(t, s.SysMB, 0.0)

	assert.False(t, p.tickAt(start.Add(2*time.Second+time.Millisecond)))
}

func TestDefaultInterval(t *testing.T) {
	assert.Equal(t, time.Second, NewProfiler(0).updateInterval)
}
