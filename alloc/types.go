package alloc

import "fmt"

// Ref is an opaque handle to a live allocation: the region ID in the high 32
// bits and the byte offset of the user data inside the region in the low 32
// bits. Region IDs start at 1, so NilRef never names an allocation.
type Ref uint64

// NilRef is the handle returned for zero-size allocations.
const NilRef Ref = 0

func makeRef(region, off uint32) Ref {
	return Ref(uint64(region)<<32 | uint64(off))
}

func (r Ref) region() uint32 { return uint32(r >> 32) }

func (r Ref) offset() uint32 { return uint32(r) }

// String formats the handle as region:offset.
func (r Ref) String() string {
	if r == NilRef {
		return "nil"
	}
	return fmt.Sprintf("%d:0x%X", r.region(), r.offset())
}
