package alloc

import "github.com/joshuapare/segalloc/internal/format"

// Validate walks every block, bucket and direct region and reports the first
// broken invariant as an error marked with ErrCorrupt. It is O(heap) and meant
// for tests and diagnostics.
func (a *Allocator) Validate() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}

	var (
		liveChunks, freeChunks int
		freeUnits, inUse       int64
		liveBlocks, liveDirect int
		providerBytes          int64
	)

	// Physical chains
	var prev *block
	for b := a.blocks; b != nil; b = b.next {
		if b.prev != prev {
			return corrupt("block %d: back-link does not point at the previous block", b.id)
		}
		prev = b
		if r, ok := a.regions.get(b.id); !ok || r.blk != b {
			return corrupt("block %d: not registered under its id", b.id)
		}
		liveBlocks++
		providerBytes += int64(len(b.mem))

		var sum, prevSize uint32
		prevFree := false
		for c := b.first(); c.valid(); c = c.nextInBlock() {
			h := c.hdr()
			if h.size == 0 || c.idx+h.size > b.capUnits {
				return corrupt("block %d unit %d: chunk size %d out of range", b.id, c.idx, h.size)
			}
			if c.isFirst() != (c.idx == 0) {
				return corrupt("block %d unit %d: FIRST flag misplaced", b.id, c.idx)
			}
			if c.isLast() != (c.idx+h.size == b.capUnits) {
				return corrupt("block %d unit %d: LAST flag misplaced", b.id, c.idx)
			}
			if h.prevSize != prevSize {
				return corrupt("block %d unit %d: prevSize %d, predecessor has %d units", b.id, c.idx, h.prevSize, prevSize)
			}
			if c.isFree() {
				if prevFree {
					return corrupt("block %d unit %d: two adjacent free chunks", b.id, c.idx)
				}
				if !a.inBucket(c) {
					return corrupt("block %d unit %d: free chunk missing from bucket %d", b.id, c.idx, h.size)
				}
				freeChunks++
				freeUnits += int64(h.size)
			} else {
				liveChunks++
				inUse += int64(h.size) * int64(b.unitSize)
			}
			for u := c.idx + 1; u < c.idx+h.size; u++ {
				if b.hdrs[u] != (chunkHeader{}) {
					return corrupt("block %d unit %d: stale header inside chunk at unit %d", b.id, u, c.idx)
				}
			}
			prevFree = c.isFree()
			prevSize = h.size
			sum += h.size
		}
		if sum != b.capUnits {
			return corrupt("block %d: chunk sizes sum to %d, capacity is %d", b.id, sum, b.capUnits)
		}
		if f := b.first(); f.isFree() && f.size() == b.capUnits {
			return corrupt("block %d: entirely free block was not released", b.id)
		}
	}

	// Buckets and bitmap
	var bucketed int
	for k := 1; k < len(a.buckets); k++ {
		head := a.buckets[k]
		if head.IsNil() != !a.bits.isSet(k) {
			return corrupt("bucket %d: bitmap bit disagrees with list", k)
		}
		prevLink := format.Link(format.NoLink)
		for l := head; !l.IsNil(); {
			r, ok := a.regions.get(l.BlockID())
			if !ok || r.blk == nil || l.Unit() >= r.blk.capUnits {
				return corrupt("bucket %d: dangling link %d:%d", k, l.BlockID(), l.Unit())
			}
			c := chunk{blk: r.blk, idx: l.Unit()}
			if !c.isFree() || c.size() != uint32(k) {
				return corrupt("bucket %d: chunk %d:%d is used or has %d units", k, l.BlockID(), l.Unit(), c.size())
			}
			if c.prevFree() != prevLink {
				return corrupt("bucket %d: chunk %d:%d has a broken back-link", k, l.BlockID(), l.Unit())
			}
			bucketed++
			if bucketed > freeChunks {
				return corrupt("bucket %d: more listed chunks than free chunks (cycle?)", k)
			}
			prevLink = l
			l = c.nextFree()
		}
	}
	if bucketed != freeChunks {
		return corrupt("buckets list %d chunks, blocks hold %d free chunks", bucketed, freeChunks)
	}
	for k := len(a.buckets); k < bitmapCapacity; k++ {
		if a.bits.isSet(k) {
			return corrupt("bitmap bit %d set beyond the last bucket", k)
		}
	}

	// Direct regions
	for id := 1; id < len(a.regions.slots); id++ {
		r := a.regions.slots[id]
		if r.direct == nil {
			continue
		}
		slot := format.DirectHeaderSlot(a.cfg.UnitSize)
		if len(r.direct) < slot || !format.IsDirectHeader(r.direct[slot-format.DirectHeaderSize:]) {
			return corrupt("direct region %d: no direct signature before the data", id)
		}
		h, err := a.directHeader(makeRef(uint32(id), uint32(slot)), r)
		if err != nil {
			return corrupt("direct region %d: %v", id, err)
		}
		if n := a.directLen(h); n != len(r.direct) {
			return corrupt("direct region %d: header records %d bytes, region has %d", id, n, len(r.direct))
		}
		liveDirect++
		inUse += int64(len(r.direct) - slot)
		providerBytes += int64(len(r.direct))
	}

	// Counters
	s := a.stats
	switch {
	case s.LiveBlocks != liveBlocks:
		return corrupt("stats: LiveBlocks %d, found %d", s.LiveBlocks, liveBlocks)
	case s.LiveDirect != liveDirect:
		return corrupt("stats: LiveDirect %d, found %d", s.LiveDirect, liveDirect)
	case s.LiveChunks != liveChunks:
		return corrupt("stats: LiveChunks %d, found %d", s.LiveChunks, liveChunks)
	case s.FreeChunks != freeChunks:
		return corrupt("stats: FreeChunks %d, found %d", s.FreeChunks, freeChunks)
	case s.FreeUnits != freeUnits:
		return corrupt("stats: FreeUnits %d, found %d", s.FreeUnits, freeUnits)
	case s.BytesInUse != inUse:
		return corrupt("stats: BytesInUse %d, found %d", s.BytesInUse, inUse)
	case s.ProviderBytes != providerBytes:
		return corrupt("stats: ProviderBytes %d, found %d", s.ProviderBytes, providerBytes)
	}
	return nil
}

// inBucket reports whether the free chunk c is reachable from its bucket head.
// The walk is bounded by the free-chunk counter so a cycle cannot hang it.
func (a *Allocator) inBucket(c chunk) bool {
	want := c.link()
	l := a.buckets[c.size()]
	for steps := 0; !l.IsNil() && steps <= a.stats.FreeChunks; steps++ {
		if l == want {
			return true
		}
		r, ok := a.regions.get(l.BlockID())
		if !ok || r.blk == nil || l.Unit() >= r.blk.capUnits {
			return false
		}
		l = chunk{blk: r.blk, idx: l.Unit()}.nextFree()
	}
	return false
}
