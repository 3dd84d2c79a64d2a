// Package wire defines the TON type-tag space and the header codec that
// turns a (family, size class, payload length) triple into the trailing
// bytes a reverse stream actually carries (spec.md §3, §4.1).
//
// Nothing in this package touches an io.Reader/io.Writer; it is pure byte
// math, grounded the same way the teacher's section package keeps header
// byte-layout code free of any encoder/decoder control flow.
package wire

// Family identifies a TON value's type, carried in the high 6 bits of its
// prefix byte (spec.md §3.1).
type Family uint8

const (
	Undefined   Family = 0b111111
	None        Family = 0b000000
	Bool        Family = 0b000001
	Int         Family = 0b000010
	Uint        Family = 0b000011
	Float       Family = 0b000100
	String      Family = 0b000101
	Bytes       Family = 0b000110
	UUID        Family = 0b000111
	DateTime    Family = 0b001000
	Timestamp   Family = 0b001001
	Duration    Family = 0b001010
	Array       Family = 0b001011
	Object      Family = 0b001100
	WrappedJSON Family = 0b001101
	Meta        Family = 0b001110
	Padding     Family = 0b001111
)

// String names a family for error messages and debug output.
func (f Family) String() string {
	switch f {
	case Undefined:
		return "UNDEFINED"
	case None:
		return "NONE"
	case Bool:
		return "BOOL"
	case Int:
		return "INT"
	case Uint:
		return "UINT"
	case Float:
		return "FLOAT"
	case String:
		return "STRING"
	case Bytes:
		return "BYTES"
	case UUID:
		return "UUID"
	case DateTime:
		return "DATETIME"
	case Timestamp:
		return "TIMESTAMP"
	case Duration:
		return "DURATION"
	case Array:
		return "ARRAY"
	case Object:
		return "OBJECT"
	case WrappedJSON:
		return "WRAPPED_JSON"
	case Meta:
		return "META"
	case Padding:
		return "PADDING"
	default:
		return "INVALID"
	}
}

// IsValid reports whether f names a known family.
func IsValid(f Family) bool {
	switch f {
	case Undefined, None, Bool, Int, Uint, Float, String, Bytes, UUID,
		DateTime, Timestamp, Duration, Array, Object, WrappedJSON, Meta, Padding:
		return true
	default:
		return false
	}
}

// Shape classifies how a family's body is laid out on the wire, driving the
// deserializer's state machine (spec.md §4.4).
type Shape uint8

const (
	// ShapeEmpty values carry only a prefix byte: NONE, UNDEFINED.
	ShapeEmpty Shape = iota
	// ShapeBool carries its value in the prefix byte's low 2 bits.
	ShapeBool
	// ShapeFixed values carry a fixed-width value followed by the prefix:
	// INT, UINT, FLOAT, UUID, TIMESTAMP, DURATION.
	ShapeFixed
	// ShapeSized values carry <payload><length><prefix>, length chosen by
	// size class: STRING, BYTES, DATETIME, WRAPPED_JSON, PADDING.
	ShapeSized
	// ShapeComposite values carry <concatenated children><length><prefix>:
	// ARRAY, OBJECT.
	ShapeComposite
	// ShapeMeta wraps exactly one inner value: <inner><length><prefix>.
	ShapeMeta
)

// ShapeOf returns f's wire shape.
func ShapeOf(f Family) Shape {
	switch f {
	case None, Undefined:
		return ShapeEmpty
	case Bool:
		return ShapeBool
	case Int, Uint, Float, UUID, Timestamp, Duration:
		return ShapeFixed
	case String, Bytes, DateTime, WrappedJSON, Padding:
		return ShapeSized
	case Array, Object:
		return ShapeComposite
	case Meta:
		return ShapeMeta
	default:
		return ShapeEmpty
	}
}

// Keyable reports whether a value of family f may be used as an OBJECT key
// (spec.md §3.1 "Key-able" column).
func Keyable(f Family) bool {
	switch f {
	case Bool, Int, Uint, Float, String, Bytes, UUID, DateTime, Timestamp, Duration:
		return true
	default:
		return false
	}
}
