// Package de implements TON's reverse streaming decoder (spec.md §4.4):
// it reads a stream tail-first, parsing each value's trailing header to
// discover type and length before recursing backward into the payload.
package de

import (
	"encoding/json"
	"math"
	"os"
	"time"
	"unicode/utf8"

	"github.com/tonbin/ton/errs"
	"github.com/tonbin/ton/internal/options"
	"github.com/tonbin/ton/reader"
	"github.com/tonbin/ton/value"
	"github.com/tonbin/ton/wire"
)

func float32FromBits(bits uint32) float32 { return math.Float32frombits(bits) }
func float64FromBits(bits uint64) float64 { return math.Float64frombits(bits) }

// Option configures a Deserializer at construction time.
type Option = options.Option[*Deserializer]

// WithTolerateSelfDescribe controls whether a trailing self-describe tag
// is accepted. Decoders MUST tolerate the tag's absence (spec.md §6.1);
// this option is about whether its presence is also tolerated, and
// defaults to true.
func WithTolerateSelfDescribe(tolerate bool) Option {
	return options.NoError[*Deserializer](func(d *Deserializer) {
		d.tolerateSelfDescribe = tolerate
	})
}

// Deserializer walks a TON stream backward, producing value.Value trees.
//
// Like Serializer, an instance is exclusive to one goroutine for its
// lifetime (spec.md §5).
type Deserializer struct {
	r                    reader.Reader
	end                  uint64 // effective stream end, after stripping any self-describe tag
	depth                int
	tolerateSelfDescribe bool
}

// New wraps r. It immediately inspects the trailing bytes for the
// self-describe tag so ParseValue doesn't need to repeat that check.
func New(r reader.Reader, opts ...Option) (*Deserializer, error) {
	d := &Deserializer{r: r, tolerateSelfDescribe: true}
	_ = options.Apply(d, opts...)

	end := r.StreamEnd()
	d.end = end

	if d.tolerateSelfDescribe && end >= uint64(len(wire.SelfDescribe)) {
		tagStart := end - uint64(len(wire.SelfDescribe))
		tag, err := d.readAt(tagStart, len(wire.SelfDescribe))
		if err == nil && matchesSelfDescribe(tag) {
			d.end = tagStart
		}
	}

	return d, nil
}

// FromSlice builds a Deserializer over a borrowed byte slice.
func FromSlice(data []byte, opts ...Option) (*Deserializer, error) {
	return New(reader.NewSlice(data), opts...)
}

// FromBuffer builds a Deserializer over an owned copy of data.
func FromBuffer(data []byte, opts ...Option) (*Deserializer, error) {
	return New(reader.NewBuffer(data), opts...)
}

// FromFile builds a Deserializer over f, a seekable file handle (spec.md
// §6.2). The caller retains ownership of f and must close it once the
// Deserializer is no longer needed.
func FromFile(f *os.File, opts ...Option) (*Deserializer, error) {
	fr, err := reader.NewFile(f)
	if err != nil {
		return nil, err
	}

	return New(fr, opts...)
}

func matchesSelfDescribe(tag []byte) bool {
	for i, b := range wire.SelfDescribe {
		if tag[i] != b {
			return false
		}
	}

	return true
}

// Reader returns the underlying Reader (spec.md §6.2's into_inner).
func (d *Deserializer) Reader() reader.Reader { return d.r }

// Depth returns the current composite nesting depth.
func (d *Deserializer) Depth() int { return d.depth }

// ParseValue decodes the single top-level value the stream holds.
func (d *Deserializer) ParseValue() (value.Value, error) {
	v, _, err := d.parseValueEndingAt(d.end)
	return v, err
}

// SkipValue walks the structure of the value ending at the stream's
// current effective end without materializing it, returning the number
// of bytes it occupies. This mirrors a counting-deserializer pass: a
// caller that only needs to know where a value starts (to, say, skip
// past an unwanted field) doesn't need parseValueEndingAt to allocate
// strings, byte copies, or Map entries along the way.
func (d *Deserializer) SkipValue() (uint64, error) {
	start, err := d.skipValueEndingAt(d.end)
	if err != nil {
		return 0, err
	}

	return d.end - start, nil
}

func (d *Deserializer) readAt(start uint64, n int) ([]byte, error) {
	if _, err := d.r.Seek(reader.SeekStart, int64(start)); err != nil {
		return nil, err
	}

	return d.r.ReadBytes(n)
}

func checkedSub(a, b, pos uint64) (uint64, error) {
	if a < b {
		return 0, errs.New(errs.Eof, pos, errs.ErrUnexpectedEOF)
	}

	return a - b, nil
}

// header reads the prefix byte ending at end, classifies it, and (for
// size-classed families) reads the length/value field immediately
// preceding it. It returns the family, size class, the field's value (0
// for empty-shape families), and the position where that field starts
// (i.e. where the prefix byte's preceding content ends).
func (d *Deserializer) header(end uint64) (f wire.Family, sc wire.SizeClass, fieldVal uint64, fieldStart uint64, err error) {
	prefixStart, err := checkedSub(end, 1, end)
	if err != nil {
		return 0, 0, 0, 0, err
	}

	b, err := d.readAt(prefixStart, 1)
	if err != nil {
		return 0, 0, 0, 0, err
	}

	f, sc = wire.ParsePrefix(b[0])
	if !wire.IsValid(f) {
		return 0, 0, 0, 0, errs.New(errs.InvalidType, prefixStart, errs.ErrInvalidType)
	}

	switch wire.ShapeOf(f) {
	case wire.ShapeEmpty:
		return f, sc, 0, prefixStart, nil
	case wire.ShapeBool:
		v, ok := wire.ParseBool(sc)
		if !ok {
			return 0, 0, 0, 0, errs.New(errs.UnknownFormat, prefixStart, errs.ErrUnknownFormat)
		}
		val := uint64(0)
		if v {
			val = 1
		}

		return f, sc, val, prefixStart, nil
	case wire.ShapeFixed:
		width := fixedWidthFor(f, sc)
		if width == 0 {
			return 0, 0, 0, 0, errs.New(errs.UnknownFormat, prefixStart, errs.ErrUnknownFormat)
		}

		valStart, err := checkedSub(prefixStart, uint64(width), prefixStart)
		if err != nil {
			return 0, 0, 0, 0, err
		}

		buf, err := d.readAt(valStart, width)
		if err != nil {
			return 0, 0, 0, 0, err
		}

		return f, sc, wire.ReadLen(buf, widthClass(width)), valStart, nil
	default: // ShapeSized, ShapeComposite, ShapeMeta
		lenWidth := sc.Width()

		lenStart, err := checkedSub(prefixStart, uint64(lenWidth), prefixStart)
		if err != nil {
			return 0, 0, 0, 0, err
		}

		buf, err := d.readAt(lenStart, lenWidth)
		if err != nil {
			return 0, 0, 0, 0, err
		}

		return f, sc, wire.ReadLen(buf, sc), lenStart, nil
	}
}

// fixedWidthFor validates sc for family f's fixed-scalar shape and
// returns the byte width to read, or 0 if sc is illegal for f.
func fixedWidthFor(f wire.Family, sc wire.SizeClass) int {
	switch f {
	case wire.UUID:
		return 16
	case wire.Timestamp, wire.Duration:
		if sc != wire.Size8 {
			return 0
		}

		return 8
	default: // Int, Uint, Float
		width := sc.Width()
		if f == wire.Float && width == 1 {
			return 0 // FLOAT has no 1-byte class (spec.md §3.1: 2/4/8 only)
		}

		return width
	}
}

func widthClass(width int) wire.SizeClass {
	switch width {
	case 16:
		return wire.Size8 // UUID: width is fixed, class is irrelevant to the read
	default:
		sc, _ := wire.ClassForWidth(width)
		return sc
	}
}

func signExtend(u uint64, width int) int64 {
	switch width {
	case 1:
		return int64(int8(uint8(u)))
	case 2:
		return int64(int16(uint16(u)))
	case 4:
		return int64(int32(uint32(u)))
	default:
		return int64(u)
	}
}

// parseValueEndingAt decodes the value whose header's prefix byte is the
// byte immediately before position end, returning it and the position
// where the value's bytes begin (spec.md §4.4's state machine).
func (d *Deserializer) parseValueEndingAt(end uint64) (value.Value, uint64, error) {
	f, sc, fieldVal, fieldStart, err := d.header(end)
	if err != nil {
		return value.Value{}, 0, err
	}

	switch wire.ShapeOf(f) {
	case wire.ShapeEmpty:
		if f == wire.None {
			return value.None(), fieldStart, nil
		}

		return value.Undefined(), fieldStart, nil

	case wire.ShapeBool:
		return value.Bool(fieldVal != 0), fieldStart, nil

	case wire.ShapeFixed:
		width := fixedWidthFor(f, sc)
		valStart := fieldStart

		switch f {
		case wire.Int:
			return value.Int(signExtend(fieldVal, width), width), valStart, nil
		case wire.Uint:
			return value.Uint(fieldVal, width), valStart, nil
		case wire.Float:
			switch width {
			case 2:
				return value.Float16Val(value.Float16(fieldVal)), valStart, nil
			case 4:
				return value.Float32Val(float32FromBits(uint32(fieldVal))), valStart, nil
			default:
				return value.Float64Val(float64FromBits(fieldVal)), valStart, nil
			}
		case wire.UUID:
			raw, err := d.readAt(valStart, width)
			if err != nil {
				return value.Value{}, 0, err
			}

			var u value.UUID
			copy(u[:], raw)

			return value.UUIDVal(u), valStart, nil
		case wire.Timestamp:
			return value.Timestamp(int64(fieldVal)), valStart, nil
		default: // Duration
			return value.Duration(time.Duration(int64(fieldVal))), valStart, nil
		}

	case wire.ShapeSized:
		n := fieldVal
		payloadStart, err := checkedSub(fieldStart, n, fieldStart)
		if err != nil {
			return value.Value{}, 0, err
		}

		payload, err := d.readAt(payloadStart, int(n))
		if err != nil {
			return value.Value{}, 0, err
		}

		v, err := sizedValue(f, payload, payloadStart)
		if err != nil {
			return value.Value{}, 0, err
		}

		return v, payloadStart, nil

	case wire.ShapeComposite:
		n := fieldVal
		payloadStart, err := checkedSub(fieldStart, n, fieldStart)
		if err != nil {
			return value.Value{}, 0, err
		}

		d.depth++
		children, err := d.parseChildren(payloadStart, fieldStart)
		d.depth--
		if err != nil {
			return value.Value{}, 0, err
		}

		if f == wire.Array {
			items := make([]value.Value, 0, len(children))
			for _, c := range children {
				if c.Kind() == value.KindPadding {
					continue // transparent, spec.md §4.4 step 6
				}
				items = append(items, c)
			}

			return value.Array(items), payloadStart, nil
		}

		return d.buildObject(children, payloadStart)

	default: // ShapeMeta
		n := fieldVal
		payloadStart, err := checkedSub(fieldStart, n, fieldStart)
		if err != nil {
			return value.Value{}, 0, err
		}

		inner, innerStart, err := d.parseValueEndingAt(fieldStart)
		if err != nil {
			return value.Value{}, 0, err
		}
		if innerStart != payloadStart {
			return value.Value{}, 0, errs.New(errs.Syntax, innerStart, errs.ErrSyntax)
		}

		return value.Meta(inner), payloadStart, nil
	}
}

// parseChildren repeatedly parses values ending at cur, walking backward
// until it reaches payloadStart exactly. Children are returned in their
// original forward stream order.
func (d *Deserializer) parseChildren(payloadStart, cur uint64) ([]value.Value, error) {
	var reversed []value.Value

	for cur > payloadStart {
		v, start, err := d.parseValueEndingAt(cur)
		if err != nil {
			return nil, err
		}
		if start < payloadStart {
			return nil, errs.New(errs.Syntax, start, errs.ErrSyntax)
		}

		reversed = append(reversed, v)
		cur = start
	}

	children := make([]value.Value, len(reversed))
	for i, v := range reversed {
		children[len(reversed)-1-i] = v
	}

	return children, nil
}

// skipValueEndingAt walks the header chain of the value ending at end
// without materializing a value.Value, returning the position where the
// value's bytes begin. It mirrors parseValueEndingAt's recursion exactly
// but skips the allocation-heavy leaf construction, matching the
// original's counting-deserializer technique (spec.md §10 supplement).
func (d *Deserializer) skipValueEndingAt(end uint64) (uint64, error) {
	f, sc, fieldVal, fieldStart, err := d.header(end)
	if err != nil {
		return 0, err
	}

	switch wire.ShapeOf(f) {
	case wire.ShapeEmpty, wire.ShapeBool, wire.ShapeFixed:
		return fieldStart, nil

	case wire.ShapeSized:
		return checkedSub(fieldStart, fieldVal, fieldStart)

	case wire.ShapeComposite:
		payloadStart, err := checkedSub(fieldStart, fieldVal, fieldStart)
		if err != nil {
			return 0, err
		}

		d.depth++
		cur := fieldStart
		for cur > payloadStart {
			start, err := d.skipValueEndingAt(cur)
			if err != nil {
				d.depth--
				return 0, err
			}
			if start < payloadStart {
				d.depth--
				return 0, errs.New(errs.Syntax, start, errs.ErrSyntax)
			}
			cur = start
		}
		d.depth--

		return payloadStart, nil

	default: // ShapeMeta
		payloadStart, err := checkedSub(fieldStart, fieldVal, fieldStart)
		if err != nil {
			return 0, err
		}

		innerStart, err := d.skipValueEndingAt(fieldStart)
		if err != nil {
			return 0, err
		}
		if innerStart != payloadStart {
			return 0, errs.New(errs.Syntax, innerStart, errs.ErrSyntax)
		}

		return payloadStart, nil
	}
}

// buildObject pairs up OBJECT children. The wire stream holds
// (value, key) pairs per field in forward emission order (spec.md
// §4.3), so children here already arrive as
// [val1, key1, val2, key2, ...] after parseChildren's reversal.
func (d *Deserializer) buildObject(children []value.Value, pos uint64) (value.Value, uint64, error) {
	if len(children)%2 != 0 {
		return value.Value{}, 0, errs.New(errs.Syntax, pos, errs.ErrSyntax)
	}

	m := value.NewMap()
	for i := 0; i+1 < len(children); i += 2 {
		val := children[i]
		keyVal := children[i+1]

		kv, ok := value.NewKeyValue(keyVal)
		if !ok {
			return value.Value{}, 0, errs.New(errs.InvalidType, pos, errs.ErrKeyNotKeyable)
		}

		if err := m.Insert(kv, val); err != nil {
			return value.Value{}, 0, errs.New(errs.Syntax, pos, err)
		}
	}

	return value.Object(m), pos, nil
}

func sizedValue(f wire.Family, payload []byte, pos uint64) (value.Value, error) {
	switch f {
	case wire.String:
		if !utf8.Valid(payload) {
			return value.Value{}, errs.New(errs.InvalidType, pos, errs.ErrNotUTF8)
		}

		return value.String(string(payload)), nil
	case wire.Bytes:
		owned := make([]byte, len(payload))
		copy(owned, payload)

		return value.Bytes(owned), nil
	case wire.DateTime:
		text := string(payload)
		if !utf8.Valid(payload) {
			return value.Value{}, errs.New(errs.InvalidType, pos, errs.ErrNotUTF8)
		}
		if _, err := time.Parse(time.RFC3339, text); err != nil {
			return value.Value{}, errs.New(errs.InvalidType, pos, errs.ErrInvalidDateTime)
		}

		return value.DateTimeString(text), nil
	case wire.WrappedJSON:
		if !json.Valid(payload) {
			return value.Value{}, errs.New(errs.InvalidType, pos, errs.ErrInvalidType)
		}

		return value.WrappedJSON(string(payload)), nil
	default: // Padding
		return value.Padding(len(payload)), nil
	}
}
