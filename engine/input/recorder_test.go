package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/stretchr/testify/assert"
)

func TestRecorderTracksHeldKeys(t *testing.T) {
	r := NewRecorder()
	r.Key(common.KeyW, true)
	r.Key(common.KeyA, true)
	r.Key(common.KeyA, false)
	r.Button(common.MouseButtonLeft, true)

	s := r.Snapshot()
	assert.True(t, s.Pressed(common.KeyW))
	assert.False(t, s.Pressed(common.KeyA))
	assert.True(t, s.ButtonPressed(common.MouseButtonLeft))

	// held state persists across snapshots
	assert.True(t, r.Snapshot().Pressed(common.KeyW))

	r.Release()
	assert.Empty(t, r.Snapshot().Keys)
}

func TestRecorderScrollResetsPerSnapshot(t *testing.T) {
	r := NewRecorder()
	r.Scroll(1)
	r.Scroll(2.5)

	assert.Equal(t, 3.5, r.Snapshot().ScrollY)
	assert.Zero(t, r.Snapshot().ScrollY)
}

func TestRecorderCursorAndClose(t *testing.T) {
	r := NewRecorder()
	s := r.Snapshot()
	assert.False(t, s.CursorValid)
	assert.False(t, s.CloseRequested)

	r.Cursor(12, 34)
	r.Close()
	s = r.Snapshot()
	assert.True(t, s.CursorValid)
	assert.Equal(t, 12.0, s.CursorX)
	assert.Equal(t, 34.0, s.CursorY)
	assert.True(t, s.CloseRequested)
}

func TestSnapshotIsACopy(t *testing.T) {
	r := NewRecorder()
	r.Key(common.KeyS, true)
	s := r.Snapshot()
	r.Key(common.KeyS, false)
	assert.True(t, s.Pressed(common.KeyS))
}
