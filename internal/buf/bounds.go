// Package buf holds overflow-checked size arithmetic and small byte-order
// helpers shared by the allocator engines and the codec frames.
package buf

import (
	"math"
	"math/bits"
)

// AddSize adds a and b, returning ok = false when the result would wrap uintptr.
func AddSize(a, b uintptr) (uintptr, bool) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 || sum > uint64(^uintptr(0)) {
		return 0, false
	}
	return uintptr(sum), true
}

// MulSize multiplies count by size, returning ok = false when the product
// would wrap uintptr. This is the check behind every counted allocation
// (calloc, mallocn, reallocn, recalloc).
func MulSize(count, size uintptr) (uintptr, bool) {
	if count == 0 || size == 0 {
		return 0, true
	}
	hi, lo := bits.Mul64(uint64(count), uint64(size))
	if hi != 0 || lo > uint64(^uintptr(0)) {
		return 0, false
	}
	return uintptr(lo), true
}

// IsPow2 reports whether n is a non-zero power of two.
func IsPow2(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}

// AlignUp rounds n up to a multiple of align, which must be a power of two.
// ok is false when rounding would wrap.
func AlignUp(n, align uintptr) (uintptr, bool) {
	sum, ok := AddSize(n, align-1)
	if !ok {
		return 0, false
	}
	return sum &^ (align - 1), true
}

// IntLen converts a size to an int length, failing when it exceeds math.MaxInt.
func IntLen(n uintptr) (int, bool) {
	if uint64(n) > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	if n > len(b)-off {
		return nil, false
	}
	return b[off : off+n], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
