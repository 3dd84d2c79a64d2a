// Package errs defines the categorized error model shared by the wire,
// reader, ser, de, and value packages.
//
// Every error that can surface from decoding or encoding a TON stream
// carries a Category (what kind of failure) and a byte Pos (where in the
// stream it happened, relative to the stream's start). Position 0 means
// "unknown" or "before any byte was consumed".
//
// Callers compare against the exported sentinel errors with errors.Is;
// the concrete *Error wraps them so errors.Is/errors.As keep working
// through fmt.Errorf("%w: ...", ...) chains the way the rest of this
// module wraps sentinels.
package errs

import (
	"errors"
	"fmt"
)

// Category classifies why an operation failed.
type Category uint8

const (
	// Io indicates the underlying reader or writer failed.
	Io Category = iota
	// Syntax indicates the stream structure was violated, e.g. a composite's
	// declared length didn't match the number of bytes its children occupied.
	Syntax
	// InvalidType indicates the stream holds a value the caller's decode
	// target cannot accept.
	InvalidType
	// UnknownFormat indicates a prefix byte had an unrecognized family or an
	// illegal size class for its family.
	UnknownFormat
	// Eof indicates the stream ended in the middle of a value.
	Eof
)

// String returns a lowercase category name, used in Error's message.
func (c Category) String() string {
	switch c {
	case Io:
		return "io"
	case Syntax:
		return "syntax"
	case InvalidType:
		return "invalid type"
	case UnknownFormat:
		return "unknown format"
	case Eof:
		return "eof"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by wire/reader/ser/de operations.
//
// It records the Category of failure and the byte position in the stream
// where it was detected. Pos is relative to the start of the stream (not
// the current reader window), so it remains meaningful after the error is
// propagated up through nested composite parsing.
type Error struct {
	Category Category
	Pos      uint64
	Err      error // wrapped sentinel or underlying I/O error, may be nil
}

// New creates an *Error for the given category and position, optionally
// wrapping an underlying error.
func New(cat Category, pos uint64, err error) *Error {
	return &Error{Category: cat, Pos: pos, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s at pos %d", e.Category, e.Err, e.Pos)
	}

	return fmt.Sprintf("%s at pos %d", e.Category, e.Pos)
}

// Unwrap exposes the wrapped sentinel/underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// PositionOf walks err's Unwrap chain looking for an *Error and returns its
// byte position. This is how a caller recovers the "at pos N" detail that
// New attaches when an error is rewrapped by higher-level code.
func PositionOf(err error) (uint64, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Pos, true
	}

	return 0, false
}

// CategoryOf walks err's Unwrap chain looking for an *Error and returns its
// category.
func CategoryOf(err error) (Category, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Category, true
	}

	return 0, false
}

// Sentinel errors wrapped by *Error (and by fmt.Errorf("%w: ...", ...)
// throughout wire/reader/ser/de) for errors.Is comparisons.
var (
	// ErrUnexpectedEOF is returned when the reader ran out of bytes before a
	// full header or value payload could be read.
	ErrUnexpectedEOF = errors.New("unexpected end of stream")

	// ErrInvalidType is returned when a prefix byte's high 6 bits do not
	// match any known type family, or a decode target rejects the family
	// the stream actually contains.
	ErrInvalidType = errors.New("invalid type")

	// ErrUnknownFormat is returned when a prefix byte names a known family
	// but carries a size-class value illegal for that family (e.g. BOOL
	// with size class other than 0 or 1).
	ErrUnknownFormat = errors.New("unknown format")

	// ErrSyntax is returned when a composite's declared byte length does
	// not match the bytes its parsed children actually occupied.
	ErrSyntax = errors.New("malformed stream syntax")

	// ErrCompositeUnclosed is returned by Serializer.Finish when a
	// Begin*/End* pair was left open (encoder depth != 0).
	ErrCompositeUnclosed = errors.New("composite not closed")

	// ErrCompositeNotOpen is returned by an End* call with no matching
	// Begin* on the current composite stack.
	ErrCompositeNotOpen = errors.New("no composite currently open")

	// ErrKeyNotKeyable is returned when a Value variant that is not part of
	// the KeyValue subset is used as an OBJECT key.
	ErrKeyNotKeyable = errors.New("value is not keyable")

	// ErrDuplicateKey is returned when inserting into a Map would create a
	// second entry for an already-present key.
	ErrDuplicateKey = errors.New("duplicate object key")

	// ErrNotUTF8 is returned when STRING, DATETIME, or WRAPPED_JSON bytes
	// fail UTF-8 validation.
	ErrNotUTF8 = errors.New("not valid utf-8")

	// ErrInvalidDateTime is returned when DATETIME bytes fail RFC3339
	// parsing.
	ErrInvalidDateTime = errors.New("not a valid RFC3339 datetime")

	// ErrFinished is returned by any Serializer write, or a second Finish,
	// after Finish has already been called.
	ErrFinished = errors.New("already finished")

	// ErrNegativeLength is returned by Serializer.SerializePadding when
	// asked for a negative number of padding bytes.
	ErrNegativeLength = errors.New("negative length")
)

// Wrap attaches position/category context to a sentinel error, the way
// %w wrapping is used everywhere else in this module. It is a thin
// convenience over New for call sites that only have a sentinel and a
// position in hand.
func Wrap(cat Category, pos uint64, sentinel error, detail string) error {
	if detail == "" {
		return New(cat, pos, sentinel)
	}

	return New(cat, pos, fmt.Errorf("%w: %s", sentinel, detail))
}
