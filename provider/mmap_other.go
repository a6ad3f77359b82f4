//go:build !unix

package provider

// Mmap is unavailable on this platform; NewMmap always fails.
type Mmap struct{}

// NewMmap reports ErrNotSupported.
func NewMmap() (*Mmap, error) {
	return nil, ErrNotSupported
}

// Alloc reports ErrNotSupported.
func (m *Mmap) Alloc(size int) ([]byte, error) {
	return nil, ErrNotSupported
}

// Free is a no-op.
func (m *Mmap) Free(b []byte) error {
	return nil
}

// Regions always returns zero.
func (m *Mmap) Regions() int {
	return 0
}
