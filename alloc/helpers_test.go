package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/segalloc/provider"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestAllocator creates an allocator over a fresh Heap provider and closes
// it when the test ends.
func newTestAllocator(t testing.TB, cfg Config) (*Allocator, *provider.Heap) {
	t.Helper()
	h := provider.NewHeap()
	a, err := New(h, &cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a, h
}

// chunkView is a test-side snapshot of one chunk.
type chunkView struct {
	Units uint32
	Used  bool
}

// blockLayout returns the physical chunk sequence of the block holding ref.
func blockLayout(t testing.TB, a *Allocator, ref Ref) []chunkView {
	t.Helper()
	a.mu.Lock()
	defer a.mu.Unlock()

	r, ok := a.regions.get(ref.region())
	require.True(t, ok, "ref %s has no region", ref)
	require.NotNil(t, r.blk, "ref %s is not a block ref", ref)

	var out []chunkView
	for c := r.blk.first(); c.valid(); c = c.nextInBlock() {
		out = append(out, chunkView{Units: c.size(), Used: c.isUsed()})
	}
	return out
}

// requireValid fails the test if any allocator invariant is broken.
func requireValid(t testing.TB, a *Allocator) {
	t.Helper()
	require.NoError(t, a.Validate())
}

// requireNoLeak fails the test unless the provider has nothing outstanding.
func requireNoLeak(t testing.TB, h *provider.Heap) {
	t.Helper()
	bytes, regions := h.Outstanding()
	require.Zero(t, bytes, "provider bytes outstanding")
	require.Zero(t, regions, "provider regions outstanding")
}

// fill writes a per-allocation pattern so overlaps show up as corruption.
func fill(b []byte, seed byte) {
	for i := range b {
		b[i] = seed + byte(i)
	}
}

// requirePattern checks a pattern written by fill.
func requirePattern(t testing.TB, b []byte, seed byte) {
	t.Helper()
	for i := range b {
		if b[i] != seed+byte(i) {
			require.Failf(t, "pattern corrupted", "offset %d: got 0x%02X want 0x%02X", i, b[i], seed+byte(i))
		}
	}
}
