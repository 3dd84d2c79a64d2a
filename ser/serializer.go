// Package ser implements TON's reverse streaming encoder (spec.md §4.3):
// every composite writes its children first, in document order, and
// appends its trailing length-prefixed header only once their total size
// is known. Because the sink only ever receives bytes in append order,
// the encoder needs no buffering of its own beyond a small reusable
// header scratch array — the "reverse" in reverse-order serializer
// describes the logical read direction of the finished stream, not the
// order bytes leave the encoder.
package ser

import (
	"encoding/json"
	"io"
	"math"
	"time"
	"unicode/utf8"

	"github.com/tonbin/ton/endian"
	"github.com/tonbin/ton/errs"
	"github.com/tonbin/ton/internal/options"
	"github.com/tonbin/ton/wire"
)

// Option configures a Serializer at construction time.
type Option = options.Option[*Serializer]

// WithSelfDescribe makes Finish append the TON self-describe magic tag
// after the top-level value (spec.md §6.1).
func WithSelfDescribe() Option {
	return options.NoError[*Serializer](func(s *Serializer) {
		s.selfDescribe = true
	})
}

// Serializer drives TON's reverse encoding protocol against a sink.
//
// An instance is exclusive to one goroutine for its lifetime and must
// not be shared (spec.md §5's single-threaded contract, mirroring
// blob.NumericEncoder's documented thread-safety note in the source this
// design is grounded on).
type Serializer struct {
	w       io.Writer
	size    uint64
	depth   int
	scratch [wire.MaxHeaderLen]byte

	selfDescribe bool
	finished     bool
}

// New creates a Serializer writing to w.
func New(w io.Writer, opts ...Option) *Serializer {
	s := &Serializer{w: w}
	_ = options.Apply(s, opts...)

	return s
}

// Size returns the number of bytes written to the sink so far.
func (s *Serializer) Size() uint64 { return s.size }

// Depth returns the current composite nesting depth.
func (s *Serializer) Depth() int { return s.depth }

// Writer returns the underlying sink (spec.md §6.2's into_inner).
func (s *Serializer) Writer() io.Writer { return s.w }

// Finish closes out the stream: it fails if any composite is still open
// (depth != 0), otherwise optionally appends the self-describe tag and
// marks the Serializer unusable for further writes.
func (s *Serializer) Finish() (uint64, error) {
	if s.finished {
		return s.size, errs.Wrap(errs.Syntax, s.size, errs.ErrFinished, "Finish called twice")
	}
	if s.depth != 0 {
		return s.size, errs.Wrap(errs.Syntax, s.size, errs.ErrCompositeUnclosed, "Finish called with open composite")
	}

	if s.selfDescribe {
		if err := s.writeRaw(wire.SelfDescribe[:]); err != nil {
			return s.size, err
		}
	}

	s.finished = true

	return s.size, nil
}

func (s *Serializer) writeRaw(b []byte) error {
	if s.finished {
		return errs.Wrap(errs.Syntax, s.size, errs.ErrFinished, "write after Finish")
	}

	n, err := s.w.Write(b)
	s.size += uint64(n)
	if err != nil {
		return errs.New(errs.Io, s.size, err)
	}

	return nil
}

func (s *Serializer) writeHeader(f wire.Family, payloadLen uint64) error {
	header := wire.GenerateHeader(s.scratch[:], f, payloadLen)
	return s.writeRaw(header)
}

// SerializeBool emits a single byte: BOOL with the value in its low 2
// prefix bits (spec.md §4.3, §9 open question 2).
func (s *Serializer) SerializeBool(b bool) error {
	return s.writeRaw([]byte{wire.BoolPrefix(b)})
}

// SerializeI8/16/32/64 emit v little-endian followed by an INT prefix
// sized to width, with no narrowing (spec.md §6.1).
func (s *Serializer) SerializeI8(v int8) error   { return s.serializeInt(int64(v), 1) }
func (s *Serializer) SerializeI16(v int16) error { return s.serializeInt(int64(v), 2) }
func (s *Serializer) SerializeI32(v int32) error { return s.serializeInt(int64(v), 4) }
func (s *Serializer) SerializeI64(v int64) error { return s.serializeInt(v, 8) }

func (s *Serializer) serializeInt(v int64, width int) error {
	prefix, ok := wire.FixedPrefix(wire.Int, width)
	if !ok {
		return errs.Wrap(errs.InvalidType, s.size, errs.ErrInvalidType, "int width")
	}

	buf := s.scratch[:0]
	switch width {
	case 1:
		buf = append(buf, byte(v))
	case 2:
		buf = engine.AppendUint16(buf, uint16(v))
	case 4:
		buf = engine.AppendUint32(buf, uint32(v))
	case 8:
		buf = engine.AppendUint64(buf, uint64(v))
	}
	buf = append(buf, prefix)

	return s.writeRaw(buf)
}

// SerializeU8/16/32/64 emit v little-endian followed by a UINT prefix.
func (s *Serializer) SerializeU8(v uint8) error   { return s.serializeUint(uint64(v), 1) }
func (s *Serializer) SerializeU16(v uint16) error { return s.serializeUint(uint64(v), 2) }
func (s *Serializer) SerializeU32(v uint32) error { return s.serializeUint(uint64(v), 4) }
func (s *Serializer) SerializeU64(v uint64) error { return s.serializeUint(v, 8) }

func (s *Serializer) serializeUint(v uint64, width int) error {
	prefix, ok := wire.FixedPrefix(wire.Uint, width)
	if !ok {
		return errs.Wrap(errs.InvalidType, s.size, errs.ErrInvalidType, "uint width")
	}

	buf := s.scratch[:0]
	switch width {
	case 1:
		buf = append(buf, byte(v))
	case 2:
		buf = engine.AppendUint16(buf, uint16(v))
	case 4:
		buf = engine.AppendUint32(buf, uint32(v))
	case 8:
		buf = engine.AppendUint64(buf, v)
	}
	buf = append(buf, prefix)

	return s.writeRaw(buf)
}

// SerializeF16 emits a 2-byte IEEE 754 half-precision value.
func (s *Serializer) SerializeF16(bits uint16) error {
	prefix, ok := wire.FixedPrefix(wire.Float, 2)
	if !ok {
		return errs.Wrap(errs.InvalidType, s.size, errs.ErrInvalidType, "float width")
	}
	buf := engine.AppendUint16(s.scratch[:0], bits)
	buf = append(buf, prefix)

	return s.writeRaw(buf)
}

// SerializeF32 emits a 4-byte IEEE 754 single-precision value.
func (s *Serializer) SerializeF32(v float32) error {
	prefix, ok := wire.FixedPrefix(wire.Float, 4)
	if !ok {
		return errs.Wrap(errs.InvalidType, s.size, errs.ErrInvalidType, "float width")
	}
	buf := engine.AppendUint32(s.scratch[:0], math.Float32bits(v))
	buf = append(buf, prefix)

	return s.writeRaw(buf)
}

// SerializeF64 emits an 8-byte IEEE 754 double-precision value.
func (s *Serializer) SerializeF64(v float64) error {
	prefix, ok := wire.FixedPrefix(wire.Float, 8)
	if !ok {
		return errs.Wrap(errs.InvalidType, s.size, errs.ErrInvalidType, "float width")
	}
	buf := engine.AppendUint64(s.scratch[:0], math.Float64bits(v))
	buf = append(buf, prefix)

	return s.writeRaw(buf)
}

// SerializeChar serializes r's UTF-8 encoding as a STRING (spec.md §4.3).
func (s *Serializer) SerializeChar(r rune) error {
	return s.SerializeStr(string(r))
}

// SerializeStr emits str's UTF-8 bytes with a STRING header.
func (s *Serializer) SerializeStr(str string) error {
	if !utf8.ValidString(str) {
		return errs.Wrap(errs.InvalidType, s.size, errs.ErrNotUTF8, "string")
	}

	return s.serializeSized(wire.String, []byte(str))
}

// SerializeBytes emits b with a BYTES header.
func (s *Serializer) SerializeBytes(b []byte) error {
	return s.serializeSized(wire.Bytes, b)
}

func (s *Serializer) serializeSized(f wire.Family, payload []byte) error {
	if err := s.writeRaw(payload); err != nil {
		return err
	}

	return s.writeHeader(f, uint64(len(payload)))
}

// SerializeNone, SerializeUnit, and SerializeUnitStruct all emit the
// single-byte NONE prefix (spec.md §4.3).
func (s *Serializer) SerializeNone() error       { return s.writeRaw([]byte{wire.NonePrefix()}) }
func (s *Serializer) SerializeUnit() error       { return s.SerializeNone() }
func (s *Serializer) SerializeUnitStruct() error { return s.SerializeNone() }

// SerializeUndefined emits the single-byte UNDEFINED prefix (spec.md §9
// open question 1's resolution: Undefined is not the same no-op as
// padding(0)).
func (s *Serializer) SerializeUndefined() error {
	return s.writeRaw([]byte{wire.UndefinedPrefix()})
}

// SerializeSome transparently delegates to write, per spec.md §4.3: Some
// carries no tag of its own.
func (s *Serializer) SerializeSome(write func(*Serializer) error) error {
	return write(s)
}

// SerializeUUID emits u's 16 bytes with a UUID prefix.
func (s *Serializer) SerializeUUID(u [16]byte) error {
	buf := append(s.scratch[:0], u[:]...)
	buf = append(buf, wire.UUIDPrefix())

	return s.writeRaw(buf)
}

// SerializeDateTime emits t formatted as RFC3339 with a DATETIME header.
func (s *Serializer) SerializeDateTime(t time.Time) error {
	text := t.UTC().Format(time.RFC3339Nano)
	return s.serializeSized(wire.DateTime, []byte(text))
}

// SerializeDateTimeString emits an already-formatted RFC3339 string,
// validating it parses, with a DATETIME header.
func (s *Serializer) SerializeDateTimeString(text string) error {
	if _, err := time.Parse(time.RFC3339, text); err != nil {
		return errs.Wrap(errs.InvalidType, s.size, errs.ErrInvalidDateTime, text)
	}

	return s.serializeSized(wire.DateTime, []byte(text))
}

// SerializeTimestamp emits seconds as 8 LE bytes with a fixed TIMESTAMP
// prefix (spec.md §4.3: size class is always 8).
func (s *Serializer) SerializeTimestamp(seconds int64) error {
	prefix, _ := wire.FixedPrefix(wire.Timestamp, 8)
	buf := engine.AppendUint64(s.scratch[:0], uint64(seconds))
	buf = append(buf, prefix)

	return s.writeRaw(buf)
}

// SerializeDuration emits d as nanoseconds, 8 LE bytes, DURATION prefix.
func (s *Serializer) SerializeDuration(d time.Duration) error {
	prefix, _ := wire.FixedPrefix(wire.Duration, 8)
	buf := engine.AppendUint64(s.scratch[:0], uint64(d.Nanoseconds()))
	buf = append(buf, prefix)

	return s.writeRaw(buf)
}

// SerializeWrappedJSON emits jsonText, validated as JSON, with a
// WRAPPED_JSON header.
func (s *Serializer) SerializeWrappedJSON(jsonText string) error {
	if !json.Valid([]byte(jsonText)) {
		return errs.Wrap(errs.InvalidType, s.size, errs.ErrInvalidType, "wrapped_json: not valid JSON")
	}

	return s.serializeSized(wire.WrappedJSON, []byte(jsonText))
}

// SerializeMeta records the start offset, runs write to serialize the
// inner value, then emits a META header spanning the inner bytes
// (spec.md §4.3).
func (s *Serializer) SerializeMeta(write func(*Serializer) error) error {
	start := s.size
	s.depth++

	if err := write(s); err != nil {
		return err
	}
	s.depth--

	return s.writeHeader(wire.Meta, s.size-start)
}

// SerializePadding emits n zero bytes with a PADDING header. n must be
// >= 0; n == 0 is a transparent no-op that emits nothing at all, not
// even a prefix byte (spec.md §4.3 edge cases).
func (s *Serializer) SerializePadding(n int) error {
	if n < 0 {
		return errs.Wrap(errs.InvalidType, s.size, errs.ErrNegativeLength, "padding")
	}
	if n == 0 {
		return nil
	}

	zeros := make([]byte, n)
	if err := s.writeRaw(zeros); err != nil {
		return err
	}

	return s.writeHeader(wire.Padding, uint64(n))
}

// SerializeUnitVariant serializes name as a STRING (spec.md §4.3).
func (s *Serializer) SerializeUnitVariant(name string) error {
	return s.SerializeStr(name)
}

// SerializeNewtypeVariant serializes writeInner's ARRAY/OBJECT payload,
// then the variant tag as STRING, then wraps both in an outer OBJECT
// header (spec.md §4.3, §GLOSSARY "variant composite").
func (s *Serializer) SerializeNewtypeVariant(tag string, writeInner func(*Serializer) error) error {
	start := s.size
	s.depth += 2

	if err := writeInner(s); err != nil {
		return err
	}
	if err := s.SerializeStr(tag); err != nil {
		return err
	}
	s.depth -= 2

	return s.writeHeader(wire.Object, s.size-start)
}

// BeginArray captures the start offset for a sequence-like composite and
// increments depth. Call EndArray with the returned start once every
// element has been serialized in forward order.
func (s *Serializer) BeginArray() uint64 {
	s.depth++
	return s.size
}

// EndArray emits the ARRAY header spanning [start, Size()).
func (s *Serializer) EndArray(start uint64) error {
	if s.depth == 0 {
		return errs.Wrap(errs.Syntax, s.size, errs.ErrCompositeNotOpen, "EndArray")
	}
	s.depth--
	return s.writeHeader(wire.Array, s.size-start)
}

// BeginObject captures the start offset for a map-like composite and
// increments depth. Callers must emit each field as value-then-key
// (spec.md §4.3: "writer emits value first, then key").
func (s *Serializer) BeginObject() uint64 {
	s.depth++
	return s.size
}

// EndObject emits the OBJECT header spanning [start, Size()).
func (s *Serializer) EndObject(start uint64) error {
	if s.depth == 0 {
		return errs.Wrap(errs.Syntax, s.size, errs.ErrCompositeNotOpen, "EndObject")
	}
	s.depth--
	return s.writeHeader(wire.Object, s.size-start)
}

var engine = endian.Wire()
