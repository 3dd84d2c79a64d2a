package reader

import (
	"os"

	"github.com/tonbin/ton/errs"
)

// File is a seekable Reader backed by an *os.File. Unlike Slice and
// Buffer, it cannot hand out a borrowed view into its storage, so
// ReadBytes always materializes an owned copy (spec.md §9 open question
// 4, and §4.2's "file implementation is allowed to buffer internally
// but must honor seek semantics").
//
// File uses ReadAt internally and keeps its own cursor independent of
// the OS file offset, so it never calls Seek on the *os.File itself.
type File struct {
	f    *os.File
	size uint64
	pos  uint64
}

// NewFile wraps f, whose size is determined once via Stat.
func NewFile(f *os.File) (*File, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, errs.New(errs.Io, 0, err)
	}

	return &File{f: f, size: uint64(info.Size())}, nil
}

func (r *File) Position() uint64  { return r.pos }
func (r *File) StreamEnd() uint64 { return r.size }

func (r *File) Seek(whence Whence, offset int64) (uint64, error) {
	pos, err := seekPosition(r.pos, r.size, whence, offset)
	if err != nil {
		return r.pos, err
	}
	r.pos = pos

	return r.pos, nil
}

func (r *File) readAt(n int) ([]byte, error) {
	if r.pos+uint64(n) > r.size {
		return nil, errs.New(errs.Eof, r.pos, errs.ErrUnexpectedEOF)
	}

	buf := make([]byte, n)
	if _, err := r.f.ReadAt(buf, int64(r.pos)); err != nil {
		return nil, errs.New(errs.Io, r.pos, err)
	}

	return buf, nil
}

func (r *File) Peek() (byte, bool) {
	if r.pos >= r.size {
		return 0, false
	}
	b, err := r.readAt(1)
	if err != nil {
		return 0, false
	}

	return b[0], true
}

func (r *File) Next() (byte, bool) {
	b, ok := r.Peek()
	if !ok {
		return 0, false
	}
	r.pos++

	return b, true
}

func (r *File) Prev() (byte, bool) {
	if r.pos == 0 {
		return 0, false
	}
	r.pos--
	b, err := r.readAt(1)
	if err != nil {
		return 0, false
	}

	return b[0], true
}

func (r *File) ReadU8() (uint8, error) {
	b, err := r.readAt(1)
	if err != nil {
		return 0, err
	}
	r.pos++

	return b[0], nil
}

func (r *File) ReadU16LE() (uint16, error) {
	b, err := r.readAt(2)
	if err != nil {
		return 0, err
	}
	r.pos += 2

	return engine.Uint16(b), nil
}

func (r *File) ReadU32LE() (uint32, error) {
	b, err := r.readAt(4)
	if err != nil {
		return 0, err
	}
	r.pos += 4

	return engine.Uint32(b), nil
}

func (r *File) ReadU64LE() (uint64, error) {
	b, err := r.readAt(8)
	if err != nil {
		return 0, err
	}
	r.pos += 8

	return engine.Uint64(b), nil
}

func (r *File) ReadBytes(n int) ([]byte, error) {
	b, err := r.readAt(n)
	if err != nil {
		return nil, err
	}
	r.pos += uint64(n)

	return b, nil
}
