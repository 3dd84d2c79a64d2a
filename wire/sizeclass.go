package wire

import "math"

// SizeClass is the 2-bit code in a prefix byte's low bits naming the width
// of the following length or fixed-value field (spec.md §3.1).
type SizeClass uint8

const (
	Size1 SizeClass = 0 // 1-byte field
	Size2 SizeClass = 1 // 2-byte field
	Size4 SizeClass = 2 // 4-byte field
	Size8 SizeClass = 3 // 8-byte field
)

// Width returns the byte width named by sc.
func (sc SizeClass) Width() int {
	switch sc {
	case Size1:
		return 1
	case Size2:
		return 2
	case Size4:
		return 4
	case Size8:
		return 8
	default:
		return 0
	}
}

// MaxValue returns the largest unsigned value that fits in sc's width.
func (sc SizeClass) MaxValue() uint64 {
	switch sc {
	case Size1:
		return math.MaxUint8
	case Size2:
		return math.MaxUint16
	case Size4:
		return math.MaxUint32
	case Size8:
		return math.MaxUint64
	default:
		return 0
	}
}

// ClassFor returns the smallest SizeClass whose width can hold n.
//
// Encoder and decoder must agree this choice is deterministic (spec.md
// §4.1's testable contract): for any n, the returned class C is the
// minimum class with n <= 2^(8*width(C))-1.
func ClassFor(n uint64) SizeClass {
	switch {
	case n <= math.MaxUint8:
		return Size1
	case n <= math.MaxUint16:
		return Size2
	case n <= math.MaxUint32:
		return Size4
	default:
		return Size8
	}
}

// ClassForWidth maps an explicit byte width (1, 2, 4, or 8 — used for
// caller-specified integer/float widths where no narrowing is allowed) to
// its SizeClass. ok is false for any other width.
func ClassForWidth(width int) (sc SizeClass, ok bool) {
	switch width {
	case 1:
		return Size1, true
	case 2:
		return Size2, true
	case 4:
		return Size4, true
	case 8:
		return Size8, true
	default:
		return 0, false
	}
}
