package alloc

import "github.com/cockroachdb/errors"

var (
	// ErrOutOfMemory indicates the base provider could not supply a new block
	// or a direct region. The provider's own error stays in the chain.
	ErrOutOfMemory = errors.New("alloc: base provider out of memory")

	// ErrBadRef indicates a reference that does not name a live region of this allocator.
	ErrBadRef = errors.New("alloc: bad reference")

	// ErrNotUsed indicates a reference to a chunk that is not currently allocated.
	ErrNotUsed = errors.New("alloc: chunk is not in use")

	// ErrBadSize indicates a negative allocation size.
	ErrBadSize = errors.New("alloc: size must not be negative")

	// ErrBadConfig indicates an invalid Config.
	ErrBadConfig = errors.New("alloc: invalid configuration")

	// ErrClosed indicates the allocator has been closed.
	ErrClosed = errors.New("alloc: allocator closed")

	// ErrCorrupt indicates Validate found a broken invariant.
	ErrCorrupt = errors.New("alloc: invariant violated")
)

// outOfMemory reports a provider failure as ErrOutOfMemory. The provider's
// error is quoted in the message and attached as a secondary error.
func outOfMemory(cause error, size int) error {
	return errors.WithSecondaryError(errors.Wrapf(ErrOutOfMemory, "%d bytes: %v", size, cause), cause)
}

// corrupt builds a Validate error.
func corrupt(format string, args ...any) error {
	return errors.Wrapf(ErrCorrupt, format, args...)
}
