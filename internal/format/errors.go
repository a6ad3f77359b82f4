package format

import "github.com/cockroachdb/errors"

var (
	// ErrSignatureMismatch indicates a direct header had an unexpected magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a record.
	ErrTruncated = errors.New("format: truncated buffer")
)
