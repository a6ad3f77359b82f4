// Package format holds the low-level layout of segalloc's in-region records:
// unit arithmetic, the intrusive free-list link slot stored inside free chunks,
// and the header that precedes every direct allocation. Keeping the byte
// layout here lets the allocator stay focused on bookkeeping.
package format

var (
	// DirectSignature is the four-byte magic at the start of a direct header.
	// Layout:
	//   0x00  'S' 'G' 'D' 'R'
	DirectSignature = []byte{'S', 'G', 'D', 'R'}
)

const (
	// MinUnitSize is the smallest allowed allocation granularity. A free chunk
	// stores its two free-list links in its first unit, so a unit must hold
	// two 8-byte links.
	MinUnitSize = 16

	// DefaultUnitSize is the granularity used by the default configuration.
	DefaultUnitSize = 16

	// MaxUnitSize bounds the granularity so block offsets stay inside 32 bits.
	MaxUnitSize = 4096

	// MaxBlockUnits is the largest block capacity the two-level bitmap can index
	// (64 low words of 64 bits, bucket 0 unused).
	MaxBlockUnits = 64*64 - 1

	// MinBlockUnits is the smallest usable block capacity.
	MinBlockUnits = 2

	// ============================================================================
	// Free-list link slot
	// ============================================================================.

	// LinkSize is the encoded size of one chunk reference.
	LinkSize = 8

	// LinkPrevOffset and LinkNextOffset locate the two links inside the first
	// unit of a free chunk.
	LinkPrevOffset = 0x00
	LinkNextOffset = 0x08

	// LinkSlotSize is the number of bytes a free chunk reserves for its links.
	LinkSlotSize = 2 * LinkSize

	// NoLink is the encoded value of an empty link.
	NoLink = 0

	// ============================================================================
	// Direct header
	// ============================================================================.

	// DirectHeaderSize is the size of the record written immediately before the
	// user data of a direct allocation.
	DirectHeaderSize = 0x10

	// Direct header field offsets.
	DirectSignatureOffset = 0x00 // 4 bytes, "SGDR"
	DirectLeadOffset      = 0x04 // uint32, padding bytes before the header
	DirectSizeOffset      = 0x08 // uint64, requested size in bytes

	// DirectSignatureLen is the length of the direct signature.
	DirectSignatureLen = DirectLeadOffset - DirectSignatureOffset
)
