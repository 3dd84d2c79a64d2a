package value

import (
	"encoding/binary"
	"math"

	"github.com/tonbin/ton/wire"
)

// KeyValue is the restricted subset of Value usable as an OBJECT key
// (spec.md §3.3, §GLOSSARY): ARRAY, OBJECT, META, WRAPPED_JSON,
// PADDING, UNDEFINED and NONE are excluded, matching wire.Keyable.
type KeyValue struct {
	v Value
}

// NewKeyValue wraps v as a KeyValue. ok is false if v's Kind isn't
// keyable.
func NewKeyValue(v Value) (KeyValue, bool) {
	if !wire.Keyable(v.kind) {
		return KeyValue{}, false
	}

	return KeyValue{v: v}, true
}

// Value returns the underlying Value.
func (k KeyValue) Value() Value { return k.v }

// CanonicalBytes returns a stable byte encoding of k used internally by
// Map to hash and compare keys. It is not a wire encoding: it exists only
// so two KeyValues holding the same logical value produce identical
// bytes regardless of which constructor built them.
func CanonicalBytes(k KeyValue) []byte {
	v := k.v
	buf := make([]byte, 0, 24)
	buf = append(buf, byte(v.kind))

	switch v.kind {
	case KindBool:
		if v.boolVal {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	case KindInt:
		buf = append(buf, byte(v.intWidth))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v.intVal))
	case KindUint:
		buf = append(buf, byte(v.uintWidth))
		buf = binary.LittleEndian.AppendUint64(buf, v.uintVal)
	case KindFloat:
		buf = append(buf, byte(v.floatWidth))
		switch v.floatWidth {
		case 2:
			buf = binary.LittleEndian.AppendUint16(buf, Float16FromFloat32(float32(v.floatVal)).Bits())
		case 4:
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(v.floatVal)))
		default:
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.floatVal))
		}
	case KindString, KindDateTime:
		buf = append(buf, v.strVal...)
	case KindBytes:
		buf = append(buf, v.bytesVal...)
	case KindUUID:
		buf = append(buf, v.uuidVal[:]...)
	case KindTimestamp:
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v.timestampVal))
	case KindDuration:
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v.durationVal))
	}

	return buf
}
