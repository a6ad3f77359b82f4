package format

// Alignment utilities for unit-quantized sizes.
// All chunk sizes are whole units; unit sizes are powers of two so the helpers
// use masks instead of division.

// IsPow2 reports whether n is a positive power of two.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// AlignUnit returns n aligned up to the next multiple of unit.
// unit must be a power of two.
//
// Example (unit = 16):
//
//	AlignUnit(1, 16)  = 16
//	AlignUnit(16, 16) = 16
//	AlignUnit(17, 16) = 32
func AlignUnit(n, unit int) int {
	mask := unit - 1
	return (n + mask) & ^mask
}

// UnitsFor returns ceil(n / unit) for a power-of-two unit.
//
// Example (unit = 16):
//
//	UnitsFor(1, 16)  = 1
//	UnitsFor(32, 16) = 2
//	UnitsFor(33, 16) = 3
func UnitsFor(n, unit int) int {
	return AlignUnit(n, unit) / unit
}

// DirectHeaderSlot returns the bytes reserved in front of direct user data.
// The slot is one unit wide so user data keeps unit alignment; the direct
// header occupies its last DirectHeaderSize bytes.
func DirectHeaderSlot(unit int) int {
	return AlignUnit(DirectHeaderSize, unit)
}
