package alloc

import "github.com/joshuapare/segalloc/internal/format"

// chunkFlags are the status bits of a chunk header.
type chunkFlags uint8

const (
	chunkFirst chunkFlags = 1 << iota // no predecessor in the block
	chunkLast                         // no successor in the block
	chunkUsed                         // handed out to a caller
)

// chunkHeader is the record kept for the chunk that starts at a given unit of
// a block. Slots of units that are not a chunk start stay zeroed.
type chunkHeader struct {
	size     uint32 // units, including this one
	prevSize uint32 // units of the predecessor; 0 when first
	flags    chunkFlags
}

// chunk is a handle to the chunk starting at unit idx of blk.
// The zero value means "no chunk".
type chunk struct {
	blk *block
	idx uint32
}

func (c chunk) valid() bool { return c.blk != nil }

func (c chunk) hdr() *chunkHeader { return &c.blk.hdrs[c.idx] }

func (c chunk) size() uint32 { return c.hdr().size }

func (c chunk) isUsed() bool { return c.hdr().flags&chunkUsed != 0 }

func (c chunk) isFree() bool { return c.hdr().flags&chunkUsed == 0 }

func (c chunk) isFirst() bool { return c.hdr().flags&chunkFirst != 0 }

func (c chunk) isLast() bool { return c.hdr().flags&chunkLast != 0 }

// link encodes the chunk for an intrusive free-list pointer.
func (c chunk) link() format.Link {
	return format.MakeLink(c.blk.id, c.idx)
}

// offset returns the byte offset of the chunk's data inside its block.
func (c chunk) offset() uint32 {
	return c.idx * c.blk.unitSize
}

// data returns the chunk's bytes, capped at the chunk end.
func (c chunk) data() []byte {
	lo := c.offset()
	hi := lo + c.size()*c.blk.unitSize
	return c.blk.mem[lo:hi:hi]
}

// linkSlot returns the bytes a free chunk uses for its free-list links.
func (c chunk) linkSlot() []byte {
	lo := c.offset()
	return c.blk.mem[lo : lo+format.LinkSlotSize]
}

// init turns the chunk into the only chunk of its block.
func (c chunk) init(sizeUnits uint32) {
	*c.hdr() = chunkHeader{size: sizeUnits, flags: chunkFirst | chunkLast}
	c.setLinks(format.NoLink, format.NoLink)
}

// acquire marks the chunk used.
func (c chunk) acquire() {
	c.hdr().flags |= chunkUsed
}

// release marks the chunk free and clears its links. The caller reinserts it.
func (c chunk) release() {
	c.hdr().flags &^= chunkUsed
	c.setLinks(format.NoLink, format.NoLink)
}

// prevInBlock returns the physical predecessor, or the zero chunk when first.
func (c chunk) prevInBlock() chunk {
	h := c.hdr()
	if h.flags&chunkFirst != 0 {
		return chunk{}
	}
	return chunk{blk: c.blk, idx: c.idx - h.prevSize}
}

// nextInBlock returns the physical successor, or the zero chunk when last.
func (c chunk) nextInBlock() chunk {
	h := c.hdr()
	if h.flags&chunkLast != 0 {
		return chunk{}
	}
	return chunk{blk: c.blk, idx: c.idx + h.size}
}

// merge absorbs next, which must be c's free successor. c must be free.
func (c chunk) merge(next chunk) chunk {
	h, nh := c.hdr(), next.hdr()
	h.size += nh.size
	h.flags |= nh.flags & chunkLast
	*nh = chunkHeader{}

	if succ := c.nextInBlock(); succ.valid() {
		succ.hdr().prevSize = h.size
	}
	return c
}

// split shrinks the free chunk c to required units and returns the tail as a
// new free chunk. c.size() must be greater than required.
func (c chunk) split(required uint32) chunk {
	h := c.hdr()
	tail := chunk{blk: c.blk, idx: c.idx + required}
	*tail.hdr() = chunkHeader{
		size:     h.size - required,
		prevSize: required,
		flags:    h.flags & chunkLast,
	}
	h.size = required
	h.flags &^= chunkLast

	if succ := tail.nextInBlock(); succ.valid() {
		succ.hdr().prevSize = tail.size()
	}
	tail.setLinks(format.NoLink, format.NoLink)
	return tail
}

func (c chunk) setLinks(prev, next format.Link) {
	format.PutLinks(c.linkSlot(), prev, next)
}

func (c chunk) prevFree() format.Link { return format.ReadPrevLink(c.linkSlot()) }

func (c chunk) nextFree() format.Link { return format.ReadNextLink(c.linkSlot()) }

func (c chunk) setPrevFree(l format.Link) { format.PutPrevLink(c.linkSlot(), l) }

func (c chunk) setNextFree(l format.Link) { format.PutNextLink(c.linkSlot(), l) }
