// Package provider defines the coarse-grained base memory capability that
// segalloc carves into blocks and chunks, together with the reference
// providers used by the library, its tests and the segallocctl tool.
//
// A Provider hands out whole regions. It is called rarely (once per block or
// direct allocation) and never re-entered by the allocator, so
// implementations are free to be slow or to take their own locks.
package provider

import "github.com/cockroachdb/errors"

// Provider is a base memory provider.
type Provider interface {
	// Alloc returns a region of exactly size bytes (len == size).
	// Implementations return an error when the memory cannot be supplied.
	Alloc(size int) ([]byte, error)

	// Free returns a region previously obtained from Alloc on the same
	// provider, with its original len and cap. Passing anything else is
	// undefined.
	Free(b []byte) error
}

var (
	// ErrExhausted indicates a Limited provider's budget would be exceeded.
	ErrExhausted = errors.New("provider: budget exhausted")

	// ErrBadSize indicates a non-positive region size.
	ErrBadSize = errors.New("provider: size must be positive")

	// ErrNotSupported indicates the provider is not available on this platform.
	ErrNotSupported = errors.New("provider: not supported on this platform")
)
