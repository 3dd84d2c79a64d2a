// Package reader implements the byte-stream capability the reverse
// deserializer walks tail-first (spec.md §4.2): position tracking,
// peek/next/prev single-byte steps, little-endian fixed-width reads, and
// a forward ReadBytes for materializing a value's payload once its
// length is known.
package reader

import "github.com/tonbin/ton/endian"

// Whence names the reference point Seek moves from.
type Whence uint8

const (
	SeekStart   Whence = iota // absolute offset from stream start
	SeekEnd                   // offset from stream end (negative moves backward)
	SeekCurrent               // offset from the current position
)

// Reader is the capability set the deserializer requires of its backing
// source, satisfied by Slice, Buffer, and File (spec.md §4.2).
type Reader interface {
	// Position returns the current byte offset from stream start.
	Position() uint64
	// Seek moves the cursor and returns its new position.
	Seek(whence Whence, offset int64) (uint64, error)
	// StreamEnd returns the total stream length.
	StreamEnd() uint64

	// Peek returns the byte at the current position without advancing.
	// ok is false at end of stream.
	Peek() (b byte, ok bool)
	// Next returns the byte at the current position and advances by 1.
	// ok is false at end of stream.
	Next() (b byte, ok bool)
	// Prev moves back by 1 and returns the byte at the new position.
	// ok is false when already at position 0.
	Prev() (b byte, ok bool)

	// ReadU8, ReadU16LE, ReadU32LE, ReadU64LE read a fixed-width
	// little-endian integer starting at the current position, advancing
	// by its width.
	ReadU8() (uint8, error)
	ReadU16LE() (uint16, error)
	ReadU32LE() (uint32, error)
	ReadU64LE() (uint64, error)

	// ReadBytes reads n bytes forward from the current position and
	// advances past them. Slice and Buffer return a view directly into
	// their backing storage; File always returns an owned copy, since a
	// file offers no stable borrowed region (spec.md §9 open question 4).
	ReadBytes(n int) ([]byte, error)
}

var engine = endian.Wire()
