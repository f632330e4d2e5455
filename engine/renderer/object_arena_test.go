package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectArenaSlotsAreAligned(t *testing.T) {
	a := newObjectArena(ObjectLayout("test").Size(), 4)
	assert.Equal(t, 256, a.slotSize)
	assert.Equal(t, uint64(1024), a.size())

	first, err := a.push([]byte{1, 2, 3})
	require.NoError(t, err)
	second, err := a.push([]byte{4})
	require.NoError(t, err)

	assert.Equal(t, uint32(0), first)
	assert.Equal(t, uint32(256), second)
	assert.Len(t, a.used(), 512)
	assert.Equal(t, byte(1), a.used()[0])
	assert.Equal(t, byte(4), a.used()[256])
}

func TestObjectArenaClearsStaleSlotBytes(t *testing.T) {
	a := newObjectArena(8, 1)
	_, err := a.push([]byte{9, 9, 9, 9})
	require.NoError(t, err)

	a.reset()
	_, err = a.push([]byte{1})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0, 0}, a.used()[:4])
}

func TestObjectArenaFull(t *testing.T) {
	a := newObjectArena(80, 2)
	for range 2 {
		_, err := a.push(make([]byte, 80))
		require.NoError(t, err)
	}
	_, err := a.push(make([]byte, 80))
	assert.Error(t, err)

	a.reset()
	assert.Empty(t, a.used())
	_, err = a.push(make([]byte, 80))
	assert.NoError(t, err)
}

func TestObjectArenaRejectsOversizedBlock(t *testing.T) {
	a := newObjectArena(80, 2)
	_, err := a.push(make([]byte, 300))
	assert.Error(t, err)
}
