package provider

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeap_AllocFreeCounters(t *testing.T) {
	h := NewHeap()

	a, err := h.Alloc(100)
	require.NoError(t, err)
	require.Len(t, a, 100)

	b, err := h.Alloc(28)
	require.NoError(t, err)

	bytes, regions := h.Outstanding()
	require.Equal(t, int64(128), bytes)
	require.Equal(t, 2, regions)

	require.NoError(t, h.Free(a))
	require.NoError(t, h.Free(b))

	bytes, regions = h.Outstanding()
	require.Zero(t, bytes)
	require.Zero(t, regions)

	allocs, frees := h.Calls()
	require.Equal(t, 2, allocs)
	require.Equal(t, 2, frees)
}

func TestHeap_RejectsBadSize(t *testing.T) {
	h := NewHeap()
	_, err := h.Alloc(0)
	require.ErrorIs(t, err, ErrBadSize)
	_, err = h.Alloc(-5)
	require.ErrorIs(t, err, ErrBadSize)
}

func TestLimited_Budget(t *testing.T) {
	inner := NewHeap()
	l := NewLimited(inner, 1000)

	a, err := l.Alloc(600)
	require.NoError(t, err)
	require.Equal(t, int64(600), l.Used())

	_, err = l.Alloc(500)
	require.ErrorIs(t, err, ErrExhausted)

	// Failed request never reached the wrapped provider.
	allocs, _ := inner.Calls()
	require.Equal(t, 1, allocs)

	b, err := l.Alloc(400)
	require.NoError(t, err)
	require.Equal(t, int64(1000), l.Used())

	require.NoError(t, l.Free(a))
	require.NoError(t, l.Free(b))
	require.Zero(t, l.Used())
	require.Equal(t, int64(1000), l.Limit())
}
