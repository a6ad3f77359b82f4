package alloc

import "math/bits"

const (
	bitmapWordBits = 64
	bitmapLowWords = 64

	// bitmapCapacity is the number of indices a bitmap can track.
	bitmapCapacity = bitmapWordBits * bitmapLowWords
)

// bitmap is a two-level bit set over bucket indices.
//
// Each low word covers 64 consecutive indices; bit i of high is set iff
// low[i] != 0. That lets findFirstAtOrAbove answer with at most two masked
// word scans instead of walking every bucket.
type bitmap struct {
	high uint64
	low  [bitmapLowWords]uint64
}

// set adds k to the set.
func (b *bitmap) set(k int) {
	w := k / bitmapWordBits
	b.low[w] |= 1 << uint(k%bitmapWordBits)
	b.high |= 1 << uint(w)
}

// reset removes k from the set.
func (b *bitmap) reset(k int) {
	w := k / bitmapWordBits
	b.low[w] &^= 1 << uint(k%bitmapWordBits)
	if b.low[w] == 0 {
		b.high &^= 1 << uint(w)
	}
}

// isSet reports whether k is in the set.
func (b *bitmap) isSet(k int) bool {
	return b.low[k/bitmapWordBits]&(1<<uint(k%bitmapWordBits)) != 0
}

// empty reports whether no index is set.
func (b *bitmap) empty() bool {
	return b.high == 0
}

// findFirstAtOrAbove returns the smallest member >= k.
// k must be below bitmapCapacity.
func (b *bitmap) findFirstAtOrAbove(k int) (int, bool) {
	w := k / bitmapWordBits

	// Bits at or above k in k's own word
	if m := b.low[w] & (^uint64(0) << uint(k%bitmapWordBits)); m != 0 {
		return w*bitmapWordBits + bits.TrailingZeros64(m), true
	}

	// Next non-empty word above w (a shift by 64 yields 0)
	hm := b.high & (^uint64(0) << uint(w+1))
	if hm == 0 {
		return 0, false
	}
	w = bits.TrailingZeros64(hm)
	return w*bitmapWordBits + bits.TrailingZeros64(b.low[w]), true
}
