package renderer

import "fmt"

// objectSlotAlignment is the WebGPU default minUniformBufferOffsetAlignment.
const objectSlotAlignment = 256

// defaultObjectSlots is the number of draws one pass can record.
const defaultObjectSlots = 1024

// objectArena stages the per-draw object blocks of one pass. Each draw copies its block
// into the next slot and binds the shared uniform buffer at that slot's dynamic offset.
// The staged range is written to the GPU once, before the pass is submitted.
type objectArena struct {
	slotSize int
	slots    int
	cursor   int
	staging  []byte
}

func newObjectArena(blockSize, slots int) *objectArena {
	slotSize := alignUp(max(blockSize, 1), objectSlotAlignment)
	return &objectArena{
		slotSize: slotSize,
		slots:    slots,
		staging:  make([]byte, slotSize*slots),
	}
}

// push copies block into the next free slot and returns its byte offset.
func (a *objectArena) push(block []byte) (uint32, error) {
	if a.cursor >= a.slots {
		return 0, fmt.Errorf("object arena full: %d draws in one pass", a.slots)
	}
	if len(block) > a.slotSize {
		return 0, fmt.Errorf("object block of %d bytes exceeds slot size %d", len(block), a.slotSize)
	}
	offset := a.cursor * a.slotSize
	slot := a.staging[offset : offset+a.slotSize]
	clear(slot)
	copy(slot, block)
	a.cursor++
	return uint32(offset), nil
}

// used returns the staged slots of the current pass.
func (a *objectArena) used() []byte {
	return a.staging[:a.cursor*a.slotSize]
}

func (a *objectArena) reset() {
	a.cursor = 0
}

// size is the byte size of the GPU buffer backing the arena.
func (a *objectArena) size() uint64 {
	return uint64(len(a.staging))
}
