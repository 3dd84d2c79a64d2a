package wire

import "github.com/tonbin/ton/endian"

// Prefix builds the trailing prefix byte for family f at size class sc:
// the high 6 bits name the family, the low 2 bits carry sc.
func Prefix(f Family, sc SizeClass) byte {
	return byte(f)<<2 | byte(sc&0x3)
}

// ParsePrefix splits a prefix byte back into its family and size class,
// the first step of spec.md §4.4's READ_PREFIX -> CLASSIFY transition.
func ParsePrefix(b byte) (Family, SizeClass) {
	return Family(b >> 2), SizeClass(b & 0x3)
}

// BoolPrefix builds the single-byte encoding of a boolean: BOOL's body is
// the low 2 bits of the prefix itself (spec.md §9, open question 2), never
// a separate size-classed value.
func BoolPrefix(v bool) byte {
	if v {
		return Prefix(Bool, Size2) // low bits = 1
	}

	return Prefix(Bool, Size1) // low bits = 0
}

// ParseBool extracts the boolean value from a BOOL prefix byte's low 2
// bits. ok is false if those bits are anything other than 0 or 1, which is
// an UnknownFormat condition on decode.
func ParseBool(sc SizeClass) (v bool, ok bool) {
	switch sc {
	case Size1:
		return false, true
	case Size2:
		return true, true
	default:
		return false, false
	}
}

// MaxHeaderLen is the largest number of trailing bytes GenerateHeader can
// produce: 8 length bytes plus 1 prefix byte.
const MaxHeaderLen = 9

// GenerateHeader builds the trailing (length bytes, prefix byte) tuple for
// a size-classed family (STRING, BYTES, DATETIME, WRAPPED_JSON, ARRAY,
// OBJECT, META, PADDING), choosing the smallest size class that fits
// payloadLen (spec.md §4.1).
//
// The returned slice is backed by buf and is valid only until buf's next
// use; buf must be at least MaxHeaderLen bytes.
func GenerateHeader(buf []byte, f Family, payloadLen uint64) []byte {
	sc := ClassFor(payloadLen)
	n := writeLen(buf, sc, payloadLen)
	buf[n] = Prefix(f, sc)

	return buf[:n+1]
}

// writeLen writes payloadLen into buf using sc's width, little-endian, and
// returns the number of bytes written.
func writeLen(buf []byte, sc SizeClass, payloadLen uint64) int {
	engine := endian.Wire()
	width := sc.Width()

	switch width {
	case 1:
		buf[0] = byte(payloadLen)
	case 2:
		engine.PutUint16(buf, uint16(payloadLen))
	case 4:
		engine.PutUint32(buf, uint32(payloadLen))
	case 8:
		engine.PutUint64(buf, payloadLen)
	}

	return width
}

// FixedPrefix builds the prefix byte for a fixed-width scalar family
// (INT, UINT, FLOAT, TIMESTAMP, DURATION) whose value occupies width bytes.
// ok is false if width isn't 1, 2, 4, or 8.
func FixedPrefix(f Family, width int) (prefix byte, ok bool) {
	sc, ok := ClassForWidth(width)
	if !ok {
		return 0, false
	}

	return Prefix(f, sc), true
}

// UUIDPrefix builds the prefix byte for a UUID value. UUID is always 16
// bytes; its size-class bits carry no meaning and are fixed at 0 so two
// encoders never disagree on a "don't-care" bit pattern.
func UUIDPrefix() byte {
	return Prefix(UUID, Size1)
}

// NonePrefix and UndefinedPrefix are the single-byte encodings of the two
// empty-shape families (spec.md §9, open question 1).
func NonePrefix() byte      { return Prefix(None, Size1) }
func UndefinedPrefix() byte { return Prefix(Undefined, Size1) }
