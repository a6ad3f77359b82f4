package alloc

import (
	"os"

	"go.uber.org/zap"
)

// Runtime toggle for allocation logging - controlled by SEGALLOC_LOG_ALLOC env var.
var logAlloc = os.Getenv("SEGALLOC_LOG_ALLOC") != ""

// newLogger picks the allocator's logger: the configured one, a development
// logger when the env toggle is set, or a no-op logger.
func newLogger(l *zap.Logger) *zap.Logger {
	if l != nil {
		return l.Named("segalloc")
	}
	if logAlloc {
		if dl, err := zap.NewDevelopment(); err == nil {
			return dl.Named("segalloc")
		}
	}
	return zap.NewNop()
}
