// Package buf contains overflow-checked size arithmetic and bounds helpers
// used when turning caller sizes into provider requests and handle offsets
// into slices.
package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false when
// the result would overflow int or either operand is negative.
// This covers the units * unitSize calculations in the allocator.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// RegionSize returns units*unitSize + overhead, the byte count requested from
// a base provider, with ok = false on overflow.
func RegionSize(units, unitSize, overhead int) (int, bool) {
	body, ok := MulOverflowSafe(units, unitSize)
	if !ok {
		return 0, false
	}
	return AddOverflowSafe(body, overhead)
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}
