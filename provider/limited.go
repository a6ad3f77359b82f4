package provider

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// Limited wraps a Provider with a byte budget. Requests that would push the
// outstanding total above the budget fail with ErrExhausted without reaching
// the wrapped provider.
type Limited struct {
	p     Provider
	limit int64

	mu   sync.Mutex
	used int64
}

// NewLimited wraps p with a budget of limit bytes.
func NewLimited(p Provider, limit int64) *Limited {
	return &Limited{p: p, limit: limit}
}

// Alloc forwards to the wrapped provider when the budget allows it.
func (l *Limited) Alloc(size int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if size <= 0 {
		return nil, errors.Wrapf(ErrBadSize, "limited: %d", size)
	}
	if l.used+int64(size) > l.limit {
		return nil, errors.Wrapf(ErrExhausted, "limited: need %d, used %d of %d", size, l.used, l.limit)
	}
	b, err := l.p.Alloc(size)
	if err != nil {
		return nil, err
	}
	l.used += int64(len(b))
	return b, nil
}

// Free returns b to the wrapped provider and credits the budget.
func (l *Limited) Free(b []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := int64(len(b))
	if err := l.p.Free(b); err != nil {
		return err
	}
	l.used -= n
	return nil
}

// Used returns the bytes currently charged against the budget.
func (l *Limited) Used() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used
}

// Limit returns the configured budget.
func (l *Limited) Limit() int64 {
	return l.limit
}
