//go:build unix

package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/segalloc/provider"
)

func TestAlloc_MmapProviderReleasesEverything(t *testing.T) {
	m, err := provider.NewMmap()
	require.NoError(t, err)

	cfg := ConfigSmall
	a, err := New(m, &cfg)
	require.NoError(t, err)

	var refs []Ref
	for _, size := range []int{16, 4000, 100, 70000, 48} {
		ref, b, err := a.Alloc(size)
		require.NoError(t, err)
		fill(b, byte(size))
		refs = append(refs, ref)
	}
	require.Equal(t, 3, m.Regions(), "two blocks and one direct region")
	requireValid(t, a)

	require.NoError(t, a.Free(refs[3]))
	require.Equal(t, 2, m.Regions())

	require.NoError(t, a.Close())
	require.Zero(t, m.Regions())
}

func TestAlloc_MmapBlockDestroyedOnLastFree(t *testing.T) {
	m, err := provider.NewMmap()
	require.NoError(t, err)
	a, err := New(m, &ConfigSmall)
	require.NoError(t, err)
	defer a.Close()

	ref, _, err := a.Alloc(64)
	require.NoError(t, err)
	require.Equal(t, 1, m.Regions())

	require.NoError(t, a.Free(ref))
	require.Zero(t, m.Regions())
}
