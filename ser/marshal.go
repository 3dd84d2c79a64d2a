package ser

import "github.com/tonbin/ton/errs"

// Marshaler is the standard visitor-shaped contract (spec.md §4.5): the
// derive-macro-equivalent subset a user type implements to drive its own
// serialization using only scalar and composite primitives a typical
// schema language already has names for.
type Marshaler interface {
	MarshalTON(enc *Serializer) error
}

// ExtendedMarshaler is the superset that also names TON-native types
// (f16, UUID, DateTime, Duration, Timestamp, WrappedJSON, Meta, Padding)
// the standard contract cannot express. value.Value implements this.
type ExtendedMarshaler interface {
	MarshalTONExt(enc *Serializer) error
}

// Encode dispatches v to the extended contract if it implements one,
// falling back to the standard contract.
func Encode(enc *Serializer, v any) error {
	if ext, ok := v.(ExtendedMarshaler); ok {
		return ext.MarshalTONExt(enc)
	}
	if m, ok := v.(Marshaler); ok {
		return m.MarshalTON(enc)
	}

	return errs.Wrap(errs.InvalidType, enc.Size(), errs.ErrInvalidType, "value does not implement Marshaler or ExtendedMarshaler")
}
