//go:build unix

package provider

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMmap_AllocWriteFree(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mmap test in short mode")
	}
	m, err := NewMmap()
	require.NoError(t, err)

	b, err := m.Alloc(1000)
	require.NoError(t, err)
	require.Len(t, b, 1000)
	require.GreaterOrEqual(t, cap(b), 1000)
	require.Equal(t, 1, m.Regions())

	// Anonymous mappings start zeroed and are writable.
	for i := range b {
		require.Zero(t, b[i])
		b[i] = byte(i)
	}
	require.Equal(t, byte(231), b[999])

	require.NoError(t, m.Free(b))
	require.Zero(t, m.Regions())
}

func TestMmap_RejectsBadSize(t *testing.T) {
	m, err := NewMmap()
	require.NoError(t, err)
	_, err = m.Alloc(0)
	require.ErrorIs(t, err, ErrBadSize)
}
