package alloc

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// blockHeaderBytes is the per-block overhead requested from the provider on
// top of the chunk area. Chunk headers live in block.hdrs, outside provider
// memory, so nothing else is needed.
const blockHeaderBytes = 0

// block is one fixed-capacity region obtained from the base provider.
// The sizes of its chunks always sum to capUnits.
type block struct {
	id       uint32
	mem      []byte        // capUnits * unitSize bytes; cap as returned by the provider
	hdrs     []chunkHeader // one slot per unit; only chunk starts are populated
	capUnits uint32
	unitSize uint32

	// Global block list
	prev *block
	next *block
}

// first returns the chunk at unit 0.
func (b *block) first() chunk {
	return chunk{blk: b, idx: 0}
}

// createBlock obtains a new block from the provider, registers it and links it
// at the head of the block list. The returned chunk spans the whole block.
func (a *Allocator) createBlock() (chunk, error) {
	size := a.cfg.BlockBytes()
	mem, err := a.p.Alloc(size)
	if err != nil {
		a.stats.OutOfMemory++
		a.log.Warn("block allocation failed", zap.Int("bytes", size), zap.Error(err))
		return chunk{}, outOfMemory(err, size)
	}

	b := &block{
		mem:      mem[:size],
		hdrs:     make([]chunkHeader, a.cfg.BlockUnits),
		capUnits: uint32(a.cfg.BlockUnits),
		unitSize: uint32(a.cfg.UnitSize),
	}
	b.id = a.regions.add(region{blk: b})

	b.next = a.blocks
	if a.blocks != nil {
		a.blocks.prev = b
	}
	a.blocks = b

	c := b.first()
	c.init(b.capUnits)

	a.stats.BlocksCreated++
	a.stats.LiveBlocks++
	a.stats.ProviderBytes += int64(size)
	a.log.Debug("block created", zap.Uint32("block", b.id), zap.Int("bytes", size))
	return c, nil
}

// destroyBlock unlinks a fully free block and returns its memory to the provider.
func (a *Allocator) destroyBlock(b *block) error {
	if b.prev != nil {
		b.prev.next = b.next
	} else {
		a.blocks = b.next
	}
	if b.next != nil {
		b.next.prev = b.prev
	}
	b.prev, b.next = nil, nil
	a.regions.remove(b.id)

	a.stats.BlocksDestroyed++
	a.stats.LiveBlocks--
	a.stats.ProviderBytes -= int64(len(b.mem))
	a.log.Debug("block destroyed", zap.Uint32("block", b.id))

	if err := a.p.Free(b.mem); err != nil {
		return errors.Wrapf(err, "alloc: release block %d", b.id)
	}
	return nil
}
