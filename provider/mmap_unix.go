//go:build unix

package provider

import (
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// Mmap is a Provider that maps anonymous private memory for every region.
// Sizes are rounded up to the page size; the returned slice has len == size
// and cap == the mapped length.
type Mmap struct {
	pageSize int

	mu      sync.Mutex
	regions int
}

// NewMmap creates an anonymous-mapping provider.
func NewMmap() (*Mmap, error) {
	return &Mmap{pageSize: unix.Getpagesize()}, nil
}

// Alloc maps a fresh region of at least size bytes.
func (m *Mmap) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrBadSize, "mmap: %d", size)
	}
	mapped := (size + m.pageSize - 1) &^ (m.pageSize - 1)
	data, err := unix.Mmap(-1, 0, mapped, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap: map %d bytes", mapped)
	}

	m.mu.Lock()
	m.regions++
	m.mu.Unlock()
	return data[:size:mapped], nil
}

// Free unmaps the whole mapping behind b.
func (m *Mmap) Free(b []byte) error {
	if cap(b) == 0 {
		return nil
	}
	if err := unix.Munmap(b[:cap(b)]); err != nil {
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return errors.Wrap(err, "mmap: unmap")
	}

	m.mu.Lock()
	m.regions--
	m.mu.Unlock()
	return nil
}

// Regions returns the number of live mappings.
func (m *Mmap) Regions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.regions
}
