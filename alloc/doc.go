// Package alloc provides a size-segregated, best-fit sub-allocator on top of a
// base memory provider.
//
// # Overview
//
// Memory is obtained from the provider in fixed-capacity blocks and carved into
// unit-quantized chunks. Free chunks of exactly k units sit in bucket k; a
// two-level bitmap over the buckets finds the smallest adequate free chunk with
// at most two word scans, so Alloc and Free are O(1) apart from provider calls.
//
// # Allocator Interface
//
//   - Alloc(size): Allocate size bytes, returning a Ref and the user slice
//   - Free(ref): Release an allocation, coalescing with free neighbours
//   - Realloc(ref, size): Resize, in place when the allocation already fits
//   - Bytes(ref): Full usable capacity of a live allocation
//   - Validate(): Check every structural invariant
//   - WriteMap(w): JSON dump of blocks, chunks and buckets
//
// # Usage Example
//
//	a, err := alloc.New(provider.NewHeap(), &alloc.ConfigDefault)
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	ref, buf, err := a.Alloc(48)
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//
//	// Later
//	err = a.Free(ref)
//
// # Chunks and Blocks
//
// Every block holds BlockUnits units and its chunks always tile it exactly.
// Allocation splits the front of the chosen chunk off for the caller and files
// the tail in its bucket. Freeing merges with the free physical neighbours on
// both sides, so no two adjacent chunks are ever both free; a block that
// becomes entirely free is handed back to the provider at once.
//
// Chunk headers (size, predecessor size, FIRST/LAST/USED flags) are kept in a
// per-block table indexed by unit, outside provider memory. A free chunk stores
// its two bucket links in its own first unit.
//
// # Direct Allocations
//
// Requests larger than Config.MaxChunkBytes bypass the blocks:
//
//	[lead][DirectHeader "SGDR" lead size][user data, unit-rounded]
//
// The header slot is one unit wide so the user data stays unit aligned.
//
// # References
//
// A Ref is regionID<<32 | offset of the user data. Region IDs start at 1, so
// NilRef (returned for zero-size requests) never names an allocation.
//
// # Thread Safety
//
// An Allocator is safe for concurrent use. One mutex serialises every method,
// including the provider calls made while it is held.
//
// # Related Packages
//
//   - github.com/joshuapare/segalloc/provider: Base memory providers
//   - github.com/joshuapare/segalloc/internal/format: In-region record layout
package alloc
