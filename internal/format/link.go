package format

// Link is an encoded reference to a free chunk: the owning block ID in the
// high 32 bits and the chunk's first unit index in the low 32 bits.
// Block IDs start at 1, so a valid link is never NoLink.
type Link uint64

// MakeLink encodes a chunk reference.
func MakeLink(blockID, unit uint32) Link {
	return Link(uint64(blockID)<<32 | uint64(unit))
}

// BlockID returns the block half of the link.
func (l Link) BlockID() uint32 { return uint32(l >> 32) }

// Unit returns the unit-index half of the link.
func (l Link) Unit() uint32 { return uint32(l) }

// IsNil reports whether the link is empty.
func (l Link) IsNil() bool { return l == NoLink }

// PutLinks writes the prev/next links into the first LinkSlotSize bytes of b.
func PutLinks(b []byte, prev, next Link) {
	PutU64(b, LinkPrevOffset, uint64(prev))
	PutU64(b, LinkNextOffset, uint64(next))
}

// ReadPrevLink reads the prev link from a free chunk's link slot.
func ReadPrevLink(b []byte) Link {
	return Link(ReadU64(b, LinkPrevOffset))
}

// ReadNextLink reads the next link from a free chunk's link slot.
func ReadNextLink(b []byte) Link {
	return Link(ReadU64(b, LinkNextOffset))
}

// PutPrevLink overwrites only the prev link.
func PutPrevLink(b []byte, l Link) {
	PutU64(b, LinkPrevOffset, uint64(l))
}

// PutNextLink overwrites only the next link.
func PutNextLink(b []byte, l Link) {
	PutU64(b, LinkNextOffset, uint64(l))
}
