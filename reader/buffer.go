package reader

import (
	"github.com/tonbin/ton/errs"
	"github.com/tonbin/ton/internal/pool"
)

// Buffer is a Reader over an owned, pooled byte buffer. It behaves like
// Slice but Release returns its backing storage to the stream pool
// instead of leaving it for the garbage collector, for callers decoding
// many short-lived values back to back (spec.md §4.2).
type Buffer struct {
	buf *pool.ByteBuffer
	pos uint64
}

// NewBuffer copies data into a pooled buffer and wraps it for reading.
func NewBuffer(data []byte) *Buffer {
	bb := pool.GetStreamBuffer()
	bb.MustWrite(data)

	return &Buffer{buf: bb}
}

// Release returns the backing buffer to the pool. The Buffer must not be
// used afterward.
func (b *Buffer) Release() {
	pool.PutStreamBuffer(b.buf)
	b.buf = nil
}

func (b *Buffer) data() []byte      { return b.buf.Bytes() }
func (b *Buffer) Position() uint64  { return b.pos }
func (b *Buffer) StreamEnd() uint64 { return uint64(len(b.data())) }

func (b *Buffer) Seek(whence Whence, offset int64) (uint64, error) {
	pos, err := seekPosition(b.pos, b.StreamEnd(), whence, offset)
	if err != nil {
		return b.pos, err
	}
	b.pos = pos

	return b.pos, nil
}

func (b *Buffer) Peek() (byte, bool) {
	if b.pos >= b.StreamEnd() {
		return 0, false
	}

	return b.data()[b.pos], true
}

func (b *Buffer) Next() (byte, bool) {
	v, ok := b.Peek()
	if !ok {
		return 0, false
	}
	b.pos++

	return v, true
}

func (b *Buffer) Prev() (byte, bool) {
	if b.pos == 0 {
		return 0, false
	}
	b.pos--

	return b.data()[b.pos], true
}

func (b *Buffer) ReadU8() (uint8, error) {
	if b.pos+1 > b.StreamEnd() {
		return 0, errs.New(errs.Eof, b.pos, errs.ErrUnexpectedEOF)
	}
	v := b.data()[b.pos]
	b.pos++

	return v, nil
}

func (b *Buffer) ReadU16LE() (uint16, error) {
	if b.pos+2 > b.StreamEnd() {
		return 0, errs.New(errs.Eof, b.pos, errs.ErrUnexpectedEOF)
	}
	v := engine.Uint16(b.data()[b.pos:])
	b.pos += 2

	return v, nil
}

func (b *Buffer) ReadU32LE() (uint32, error) {
	if b.pos+4 > b.StreamEnd() {
		return 0, errs.New(errs.Eof, b.pos, errs.ErrUnexpectedEOF)
	}
	v := engine.Uint32(b.data()[b.pos:])
	b.pos += 4

	return v, nil
}

func (b *Buffer) ReadU64LE() (uint64, error) {
	if b.pos+8 > b.StreamEnd() {
		return 0, errs.New(errs.Eof, b.pos, errs.ErrUnexpectedEOF)
	}
	v := engine.Uint64(b.data()[b.pos:])
	b.pos += 8

	return v, nil
}

func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if n < 0 || b.pos+uint64(n) > b.StreamEnd() {
		return nil, errs.New(errs.Eof, b.pos, errs.ErrUnexpectedEOF)
	}
	out := b.data()[b.pos : b.pos+uint64(n)]
	b.pos += uint64(n)

	return out, nil
}
