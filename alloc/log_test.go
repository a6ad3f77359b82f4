package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/joshuapare/segalloc/provider"
)

func TestLogger_BlockLifecycle(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := ConfigSmall
	cfg.Logger = zap.New(core)

	a, err := New(provider.NewHeap(), &cfg)
	require.NoError(t, err)

	ref, _, err := a.Alloc(32)
	require.NoError(t, err)
	require.NoError(t, a.Free(ref))
	big, _, err := a.Alloc(10000)
	require.NoError(t, err)
	require.NoError(t, a.Free(big))
	require.NoError(t, a.Close())

	var msgs []string
	for _, e := range logs.All() {
		assert.Equal(t, "segalloc", e.LoggerName)
		msgs = append(msgs, e.Message)
	}
	assert.Equal(t, []string{
		"block created",
		"block destroyed",
		"direct allocation",
		"direct free",
		"allocator closed",
	}, msgs)
}

func TestLogger_ProviderFailureIsWarned(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cfg := ConfigSmall
	cfg.Logger = zap.New(core)

	a, err := New(provider.NewLimited(provider.NewHeap(), 0), &cfg)
	require.NoError(t, err)
	defer a.Close()

	_, _, err = a.Alloc(16)
	require.ErrorIs(t, err, ErrOutOfMemory)

	entries := logs.FilterMessage("block allocation failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(cfg.BlockBytes()), entries[0].ContextMap()["bytes"])
}

func TestNewLogger_NilIsNop(t *testing.T) {
	if logAlloc {
		t.Skip("SEGALLOC_LOG_ALLOC is set")
	}
	l := newLogger(nil)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}
