// Package endian provides the byte-order engine used to read and write the
// fixed-width integers embedded in a TON stream.
//
// TON's wire format fixes little-endian for every multi-byte integer and
// IEEE-754 float (spec.md §6.1). Every package in this module that touches
// a multi-byte field routes through this package instead of reaching for
// encoding/binary directly, so "TON is little-endian" has exactly one
// point of truth and a future format revision has exactly one place to
// change it.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into one interface, satisfied directly by binary.LittleEndian.
//
// Keeping the combined interface (rather than calling binary.LittleEndian
// inline everywhere) means the header codec and the reader/serializer
// implementations can accept an EndianEngine parameter and use its
// allocation-free Append* methods without an extra type assertion.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// wireEngine is the single byte order a TON stream is ever written or read
// in. The format does not negotiate endianness (spec.md §1 Non-goals).
var wireEngine EndianEngine = binary.LittleEndian

// Wire returns the byte-order engine mandated by the TON wire format.
func Wire() EndianEngine {
	return wireEngine
}
