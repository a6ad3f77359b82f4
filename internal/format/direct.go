package format

import (
	"bytes"

	"github.com/cockroachdb/errors"
)

// DirectHeader is the record stored immediately before the user data of a
// direct allocation.
//
// Layout (little-endian):
//
//	Offset  Size  Description
//	0x00    4     Signature "SGDR"
//	0x04    4     Lead: bytes between region start and this header
//	0x08    8     Size: bytes requested by the caller
type DirectHeader struct {
	Lead uint32
	Size uint64
}

// PutDirectHeader writes h into b, which must be at least DirectHeaderSize long.
func PutDirectHeader(b []byte, h DirectHeader) {
	copy(b[DirectSignatureOffset:DirectSignatureOffset+DirectSignatureLen], DirectSignature)
	PutU32(b, DirectLeadOffset, h.Lead)
	PutU64(b, DirectSizeOffset, h.Size)
}

// DecodeDirectHeader parses a direct header from b.
func DecodeDirectHeader(b []byte) (DirectHeader, error) {
	if len(b) < DirectHeaderSize {
		return DirectHeader{}, errors.Wrapf(ErrTruncated, "direct header: %d bytes", len(b))
	}
	if !bytes.Equal(b[DirectSignatureOffset:DirectSignatureOffset+DirectSignatureLen], DirectSignature) {
		return DirectHeader{}, errors.Wrap(ErrSignatureMismatch, "direct header")
	}
	return DirectHeader{
		Lead: ReadU32(b, DirectLeadOffset),
		Size: ReadU64(b, DirectSizeOffset),
	}, nil
}

// IsDirectHeader reports whether b starts with a direct signature.
func IsDirectHeader(b []byte) bool {
	return len(b) >= DirectHeaderSize &&
		bytes.Equal(b[DirectSignatureOffset:DirectSignatureOffset+DirectSignatureLen], DirectSignature)
}
