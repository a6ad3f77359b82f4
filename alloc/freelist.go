package alloc

import "github.com/joshuapare/segalloc/internal/format"

// Bucket k is a doubly linked list of free chunks of exactly k units, threaded
// through the chunks' own link slots. a.bits has bit k set iff bucket k is
// non-empty.

// chunkAt resolves a free-list link.
func (a *Allocator) chunkAt(l format.Link) chunk {
	return chunk{blk: a.regions.slots[l.BlockID()].blk, idx: l.Unit()}
}

// pushFree inserts the free chunk c at the head of its bucket.
func (a *Allocator) pushFree(c chunk) {
	k := c.size()
	head := a.buckets[k]

	c.setLinks(format.NoLink, head)
	if !head.IsNil() {
		a.chunkAt(head).setPrevFree(c.link())
	}
	a.buckets[k] = c.link()
	a.bits.set(int(k))

	a.stats.FreeChunks++
	a.stats.FreeUnits += int64(k)
}

// removeFree unlinks the free chunk c from its bucket.
func (a *Allocator) removeFree(c chunk) {
	k := c.size()
	prev, next := c.prevFree(), c.nextFree()

	if prev.IsNil() {
		a.buckets[k] = next
	} else {
		a.chunkAt(prev).setNextFree(next)
	}
	if !next.IsNil() {
		a.chunkAt(next).setPrevFree(prev)
	}
	if a.buckets[k].IsNil() {
		a.bits.reset(int(k))
	}
	c.setLinks(format.NoLink, format.NoLink)

	a.stats.FreeChunks--
	a.stats.FreeUnits -= int64(k)
}

// popFree removes and returns the head of bucket k, which must be non-empty.
func (a *Allocator) popFree(k uint32) chunk {
	c := a.chunkAt(a.buckets[k])
	a.removeFree(c)
	return c
}
