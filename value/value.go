// Package value implements the recursive tagged-union in-memory model
// TON's serializer and deserializer operate on (spec.md §3.3): a Value
// covers every wire family one-to-one, integers and floats are
// width-discriminated, and composites hold ordered children.
package value

import (
	"math"
	"time"

	"github.com/tonbin/ton/wire"
)

// Kind names which wire family a Value holds, reusing wire.Family's bit
// patterns directly since the two enumerations are defined to be the same
// thing (spec.md §3.3: "variants corresponding one-to-one to the type
// families").
type Kind = wire.Family

// Re-exported kind constants so callers don't need to import wire directly
// just to switch on a Value's Kind.
const (
	KindUndefined   = wire.Undefined
	KindNone        = wire.None
	KindBool        = wire.Bool
	KindInt         = wire.Int
	KindUint        = wire.Uint
	KindFloat       = wire.Float
	KindString      = wire.String
	KindBytes       = wire.Bytes
	KindUUID        = wire.UUID
	KindDateTime    = wire.DateTime
	KindTimestamp   = wire.Timestamp
	KindDuration    = wire.Duration
	KindArray       = wire.Array
	KindObject      = wire.Object
	KindWrappedJSON = wire.WrappedJSON
	KindMeta        = wire.Meta
	KindPadding     = wire.Padding
)

// UUID is a fixed 16-byte identifier, stored raw with no interpretation of
// its version/variant bits.
type UUID [16]byte

// Value is the recursive tagged union every TON type maps onto.
//
// A Value is immutable once constructed (spec.md §3.3's lifecycle note);
// callers build one with the constructor functions below and never mutate
// its fields directly, which is why they're unexported.
type Value struct {
	kind Kind

	boolVal bool

	intVal     int64
	intWidth   int // 1, 2, 4, or 8
	uintVal    uint64
	uintWidth  int // 1, 2, 4, or 8
	floatVal   float64
	floatWidth int // 2, 4, or 8

	strVal   string // STRING, DATETIME (RFC3339), WRAPPED_JSON (JSON text)
	bytesVal []byte // BYTES
	uuidVal  UUID

	timestampVal int64 // POSIX seconds
	durationVal  time.Duration

	arrayVal  []Value
	objectVal *Map
	metaVal   *Value

	paddingLen int
}

// Kind reports which wire family v holds.
func (v Value) Kind() Kind { return v.kind }

// Constructors. Each pins v's kind and the one field group it uses.

func Undefined() Value { return Value{kind: KindUndefined} }
func None() Value      { return Value{kind: KindNone} }

func Bool(b bool) Value { return Value{kind: KindBool, boolVal: b} }

func Int(v int64, width int) Value {
	return Value{kind: KindInt, intVal: v, intWidth: width}
}
func Int8(v int8) Value   { return Int(int64(v), 1) }
func Int16(v int16) Value { return Int(int64(v), 2) }
func Int32(v int32) Value { return Int(int64(v), 4) }
func Int64(v int64) Value { return Int(v, 8) }

func Uint(v uint64, width int) Value {
	return Value{kind: KindUint, uintVal: v, uintWidth: width}
}
func Uint8(v uint8) Value   { return Uint(uint64(v), 1) }
func Uint16(v uint16) Value { return Uint(uint64(v), 2) }
func Uint32(v uint32) Value { return Uint(uint64(v), 4) }
func Uint64(v uint64) Value { return Uint(v, 8) }

func Float(v float64, width int) Value {
	return Value{kind: KindFloat, floatVal: v, floatWidth: width}
}
func Float16Val(v Float16) Value { return Float(float64(v.ToFloat32()), 2) }
func Float32Val(v float32) Value { return Float(float64(v), 4) }
func Float64Val(v float64) Value { return Float(v, 8) }

func String(s string) Value { return Value{kind: KindString, strVal: s} }
func Bytes(b []byte) Value  { return Value{kind: KindBytes, bytesVal: b} }

func UUIDVal(u UUID) Value { return Value{kind: KindUUID, uuidVal: u} }

// DateTime stores t formatted as RFC3339 at construction time, matching
// the wire representation exactly so encode/decode round-trips the string.
func DateTime(t time.Time) Value {
	return Value{kind: KindDateTime, strVal: t.UTC().Format(time.RFC3339Nano)}
}

// DateTimeString builds a DATETIME value directly from an RFC3339 string,
// used by the decoder which only ever has the wire text.
func DateTimeString(s string) Value {
	return Value{kind: KindDateTime, strVal: s}
}

func Timestamp(seconds int64) Value {
	return Value{kind: KindTimestamp, timestampVal: seconds}
}

func Duration(d time.Duration) Value {
	return Value{kind: KindDuration, durationVal: d}
}

func WrappedJSON(jsonText string) Value {
	return Value{kind: KindWrappedJSON, strVal: jsonText}
}

// Meta wraps inner as a META value.
func Meta(inner Value) Value {
	return Value{kind: KindMeta, metaVal: &inner}
}

// Padding constructs a PADDING value of n zero bytes. n must be >= 0;
// Padding(0) is the transparent no-op case (spec.md §4.3 edge cases).
func Padding(n int) Value {
	return Value{kind: KindPadding, paddingLen: n}
}

func Array(items []Value) Value {
	return Value{kind: KindArray, arrayVal: items}
}

func Object(m *Map) Value {
	return Value{kind: KindObject, objectVal: m}
}

// Accessors. Each panics if called against the wrong Kind, mirroring the
// extended serializer's exhaustive-match dispatch (spec.md §9): a caller
// that mismatches Kind has a programming error, not a recoverable one.

func (v Value) Bool() bool { v.mustBe(KindBool); return v.boolVal }

func (v Value) Int() (val int64, width int) {
	v.mustBe(KindInt)
	return v.intVal, v.intWidth
}

func (v Value) Uint() (val uint64, width int) {
	v.mustBe(KindUint)
	return v.uintVal, v.uintWidth
}

func (v Value) Float() (val float64, width int) {
	v.mustBe(KindFloat)
	return v.floatVal, v.floatWidth
}

func (v Value) String() string {
	switch v.kind {
	case KindString, KindDateTime, KindWrappedJSON:
		return v.strVal
	default:
		v.mustBe(KindString)
		return ""
	}
}

func (v Value) Bytes() []byte { v.mustBe(KindBytes); return v.bytesVal }
func (v Value) UUID() UUID    { v.mustBe(KindUUID); return v.uuidVal }

func (v Value) Timestamp() int64        { v.mustBe(KindTimestamp); return v.timestampVal }
func (v Value) Duration() time.Duration { v.mustBe(KindDuration); return v.durationVal }

func (v Value) Array() []Value { v.mustBe(KindArray); return v.arrayVal }
func (v Value) Object() *Map   { v.mustBe(KindObject); return v.objectVal }
func (v Value) Meta() Value    { v.mustBe(KindMeta); return *v.metaVal }
func (v Value) PaddingLen() int {
	v.mustBe(KindPadding)
	return v.paddingLen
}

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic("value: wrong Kind accessor: have " + v.kind.String() + ", want " + k.String())
	}
}

// Equal reports whether v and other are byte-identical under TON's
// round-trip property (spec.md §8): same kind, same width discriminants,
// and recursively equal children. Float equality is bit-identity, per
// spec.md §3.3's invariant for KeyValue hashing/ordering.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindUndefined, KindNone:
		return true
	case KindBool:
		return v.boolVal == other.boolVal
	case KindInt:
		return v.intVal == other.intVal && v.intWidth == other.intWidth
	case KindUint:
		return v.uintVal == other.uintVal && v.uintWidth == other.uintWidth
	case KindFloat:
		return floatBitsEqual(v.floatVal, v.floatWidth, other.floatVal, other.floatWidth)
	case KindString, KindDateTime, KindWrappedJSON:
		return v.strVal == other.strVal
	case KindBytes:
		return bytesEqual(v.bytesVal, other.bytesVal)
	case KindUUID:
		return v.uuidVal == other.uuidVal
	case KindTimestamp:
		return v.timestampVal == other.timestampVal
	case KindDuration:
		return v.durationVal == other.durationVal
	case KindPadding:
		return v.paddingLen == other.paddingLen
	case KindArray:
		if len(v.arrayVal) != len(other.arrayVal) {
			return false
		}
		for i := range v.arrayVal {
			if !v.arrayVal[i].Equal(other.arrayVal[i]) {
				return false
			}
		}

		return true
	case KindObject:
		return v.objectVal.Equal(other.objectVal)
	case KindMeta:
		return v.metaVal.Equal(*other.metaVal)
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func floatBitsEqual(a float64, aw int, b float64, bw int) bool {
	if aw != bw {
		return false
	}

	switch aw {
	case 2:
		return Float16FromFloat32(float32(a)) == Float16FromFloat32(float32(b))
	case 4:
		return math.Float32bits(float32(a)) == math.Float32bits(float32(b))
	default:
		return math.Float64bits(a) == math.Float64bits(b)
	}
}
