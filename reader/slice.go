package reader

import (
	"github.com/tonbin/ton/errs"
)

// Slice is a zero-copy Reader over a borrowed byte slice. The caller
// must keep data alive for the Slice's lifetime.
type Slice struct {
	data []byte
	pos  uint64
}

// NewSlice wraps data for reading, cursor at position 0.
func NewSlice(data []byte) *Slice {
	return &Slice{data: data}
}

func (s *Slice) Position() uint64  { return s.pos }
func (s *Slice) StreamEnd() uint64 { return uint64(len(s.data)) }

func (s *Slice) Seek(whence Whence, offset int64) (uint64, error) {
	pos, err := seekPosition(s.pos, s.StreamEnd(), whence, offset)
	if err != nil {
		return s.pos, err
	}
	s.pos = pos

	return s.pos, nil
}

func (s *Slice) Peek() (byte, bool) {
	if s.pos >= s.StreamEnd() {
		return 0, false
	}

	return s.data[s.pos], true
}

func (s *Slice) Next() (byte, bool) {
	b, ok := s.Peek()
	if !ok {
		return 0, false
	}
	s.pos++

	return b, true
}

func (s *Slice) Prev() (byte, bool) {
	if s.pos == 0 {
		return 0, false
	}
	s.pos--

	return s.data[s.pos], true
}

func (s *Slice) ReadU8() (uint8, error) {
	if s.pos+1 > s.StreamEnd() {
		return 0, errs.New(errs.Eof, s.pos, errs.ErrUnexpectedEOF)
	}
	v := s.data[s.pos]
	s.pos++

	return v, nil
}

func (s *Slice) ReadU16LE() (uint16, error) {
	if s.pos+2 > s.StreamEnd() {
		return 0, errs.New(errs.Eof, s.pos, errs.ErrUnexpectedEOF)
	}
	v := engine.Uint16(s.data[s.pos:])
	s.pos += 2

	return v, nil
}

func (s *Slice) ReadU32LE() (uint32, error) {
	if s.pos+4 > s.StreamEnd() {
		return 0, errs.New(errs.Eof, s.pos, errs.ErrUnexpectedEOF)
	}
	v := engine.Uint32(s.data[s.pos:])
	s.pos += 4

	return v, nil
}

func (s *Slice) ReadU64LE() (uint64, error) {
	if s.pos+8 > s.StreamEnd() {
		return 0, errs.New(errs.Eof, s.pos, errs.ErrUnexpectedEOF)
	}
	v := engine.Uint64(s.data[s.pos:])
	s.pos += 8

	return v, nil
}

func (s *Slice) ReadBytes(n int) ([]byte, error) {
	if n < 0 || s.pos+uint64(n) > s.StreamEnd() {
		return nil, errs.New(errs.Eof, s.pos, errs.ErrUnexpectedEOF)
	}
	b := s.data[s.pos : s.pos+uint64(n)]
	s.pos += uint64(n)

	return b, nil
}

// seekPosition resolves whence/offset against cur/end, shared by all
// three Reader implementations.
func seekPosition(cur, end uint64, whence Whence, offset int64) (uint64, error) {
	var base int64
	switch whence {
	case SeekStart:
		base = 0
	case SeekEnd:
		base = int64(end)
	case SeekCurrent:
		base = int64(cur)
	}

	target := base + offset
	if target < 0 || uint64(target) > end {
		return cur, errs.New(errs.Eof, cur, errs.ErrUnexpectedEOF)
	}

	return uint64(target), nil
}
