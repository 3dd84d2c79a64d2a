package value

import "github.com/tonbin/ton/ser"

// MarshalTONExt drives enc through ser.ExtendedMarshaler, dispatching on
// v's Kind to the one matching extended call per variant (spec.md §4.5:
// "Value::ex_serialize dispatches to the matching extended call per
// variant"). Undefined and None each emit their own single-byte prefix,
// per spec.md §9's resolution of open question 1 — neither is the
// padding(0) no-op the original source used.
func (v Value) MarshalTONExt(enc *ser.Serializer) error {
	switch v.kind {
	case KindUndefined:
		return enc.SerializeUndefined()
	case KindNone:
		return enc.SerializeNone()
	case KindBool:
		return enc.SerializeBool(v.boolVal)
	case KindInt:
		return marshalInt(enc, v.intVal, v.intWidth)
	case KindUint:
		return marshalUint(enc, v.uintVal, v.uintWidth)
	case KindFloat:
		return marshalFloat(enc, v.floatVal, v.floatWidth)
	case KindString:
		return enc.SerializeStr(v.strVal)
	case KindBytes:
		return enc.SerializeBytes(v.bytesVal)
	case KindUUID:
		return enc.SerializeUUID([16]byte(v.uuidVal))
	case KindDateTime:
		return enc.SerializeDateTimeString(v.strVal)
	case KindTimestamp:
		return enc.SerializeTimestamp(v.timestampVal)
	case KindDuration:
		return enc.SerializeDuration(v.durationVal)
	case KindWrappedJSON:
		return enc.SerializeWrappedJSON(v.strVal)
	case KindMeta:
		inner := v.metaVal
		return enc.SerializeMeta(func(s *ser.Serializer) error {
			return inner.MarshalTONExt(s)
		})
	case KindPadding:
		return enc.SerializePadding(v.paddingLen)
	case KindArray:
		return marshalArray(enc, v.arrayVal)
	case KindObject:
		return marshalObject(enc, v.objectVal)
	default:
		return enc.SerializeUndefined()
	}
}

func marshalInt(enc *ser.Serializer, v int64, width int) error {
	switch width {
	case 1:
		return enc.SerializeI8(int8(v))
	case 2:
		return enc.SerializeI16(int16(v))
	case 4:
		return enc.SerializeI32(int32(v))
	default:
		return enc.SerializeI64(v)
	}
}

func marshalUint(enc *ser.Serializer, v uint64, width int) error {
	switch width {
	case 1:
		return enc.SerializeU8(uint8(v))
	case 2:
		return enc.SerializeU16(uint16(v))
	case 4:
		return enc.SerializeU32(uint32(v))
	default:
		return enc.SerializeU64(v)
	}
}

func marshalFloat(enc *ser.Serializer, v float64, width int) error {
	switch width {
	case 2:
		return enc.SerializeF16(Float16FromFloat32(float32(v)).Bits())
	case 4:
		return enc.SerializeF32(float32(v))
	default:
		return enc.SerializeF64(v)
	}
}

// marshalArray emits a sequence composite (ser.ExtendedMarshaler's
// ex_serialize_seq, spec.md §4.5): children in forward order, ARRAY
// header last.
func marshalArray(enc *ser.Serializer, items []Value) error {
	start := enc.BeginArray()
	for _, item := range items {
		if err := item.MarshalTONExt(enc); err != nil {
			return err
		}
	}

	return enc.EndArray(start)
}

// marshalObject emits a map composite (ex_serialize_map): each entry as
// value-then-key in sorted canonical-key order, OBJECT header last
// (spec.md §4.3: "writer emits value first, then key").
func marshalObject(enc *ser.Serializer, m *Map) error {
	start := enc.BeginObject()
	for _, pair := range m.Entries() {
		if err := pair.Val.MarshalTONExt(enc); err != nil {
			return err
		}
		if err := pair.Key.Value().MarshalTONExt(enc); err != nil {
			return err
		}
	}

	return enc.EndObject(start)
}
