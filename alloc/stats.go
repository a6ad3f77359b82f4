package alloc

// Stats holds allocator counters. Live* and Free* fields describe the current
// state; the others are cumulative since New.
type Stats struct {
	AllocCalls       int // Alloc calls that reached the allocator (size > 0)
	FreeCalls        int // Free calls with a non-nil ref
	DirectAllocs     int // Allocations served by the direct path
	DirectFrees      int // Direct regions returned to the provider
	BlocksCreated    int // Blocks obtained from the provider
	BlocksDestroyed  int // Fully free blocks returned to the provider
	SplitCount       int // Chunk splits
	CoalesceForward  int // Merges with the following chunk
	CoalesceBackward int // Merges with the preceding chunk
	OutOfMemory      int // Provider refusals

	LiveBlocks    int   // Blocks currently held
	LiveDirect    int   // Direct regions currently held
	LiveChunks    int   // Chunks currently handed out
	FreeChunks    int   // Chunks currently in buckets
	FreeUnits     int64 // Units currently in buckets
	BytesInUse    int64 // Chunk and direct capacity handed to callers
	ProviderBytes int64 // Bytes currently held from the provider
}

// Stats returns a snapshot of the allocator counters.
func (a *Allocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}
