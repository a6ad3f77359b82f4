package provider

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// Heap is a Provider backed by the Go heap. It keeps counters of what is
// outstanding, which makes it the provider of choice for leak checks.
type Heap struct {
	mu          sync.Mutex
	outstanding int64 // bytes currently handed out
	regions     int   // regions currently handed out
	allocs      int   // total Alloc calls that succeeded
	frees       int   // total Free calls
}

// NewHeap creates a Go heap provider.
func NewHeap() *Heap {
	return &Heap{}
}

// Alloc allocates a zeroed region of size bytes.
func (h *Heap) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrBadSize, "heap: %d", size)
	}
	b := make([]byte, size)

	h.mu.Lock()
	h.outstanding += int64(size)
	h.regions++
	h.allocs++
	h.mu.Unlock()
	return b, nil
}

// Free forgets the region. The memory is reclaimed by the garbage collector.
func (h *Heap) Free(b []byte) error {
	h.mu.Lock()
	h.outstanding -= int64(len(b))
	h.regions--
	h.frees++
	h.mu.Unlock()
	return nil
}

// Outstanding returns the bytes and regions currently handed out.
func (h *Heap) Outstanding() (bytes int64, regions int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.outstanding, h.regions
}

// Calls returns the number of successful Alloc calls and Free calls.
func (h *Heap) Calls() (allocs, frees int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.allocs, h.frees
}
