// Package ton implements TON (Typed Object Notation), a self-describing
// tagged binary interchange format built around a reverse-order
// streaming encoder.
//
// A TON stream is written left-to-right but is meant to be read
// right-to-left: every composite (ARRAY, OBJECT, META) writes its
// children first and appends its length-prefixed header only once their
// total size is known, so a decoder walking the stream tail-first never
// needs look-ahead or a second pass.
//
// # Core features
//
//   - 17 value families (bool, sized integers/floats, string, bytes,
//     UUID, datetime, timestamp, duration, array, object, wrapped JSON,
//     meta, padding) under one tagged prefix byte
//   - Streaming encode with no buffering beyond a small header scratch
//     array — O(bytes), no backtracking
//   - Three reader backends (byte slice, pooled owned buffer, seekable
//     file) behind one capability interface
//   - Canonical OBJECT field ordering, so two logically-equal documents
//     encode to identical bytes
//
// # Basic usage
//
// Building and encoding a value tree:
//
//	m := value.NewMap()
//	k, _ := value.NewKeyValue(value.String("name"))
//	m.Insert(k, value.String("ton"))
//	doc := value.Object(m)
//
//	data, err := ton.Marshal(doc)
//
// Decoding it back:
//
//	doc, err := ton.Unmarshal(data)
//
// # Package structure
//
// This package provides convenient top-level wrappers around ser and de
// for the common case of encoding/decoding a single in-memory value.Value
// tree. For streaming a user type through the visitor contracts directly
// (without building a value.Value first), use the ser and de packages.
package ton

import (
	"bytes"
	"os"

	"github.com/tonbin/ton/de"
	"github.com/tonbin/ton/ser"
	"github.com/tonbin/ton/value"
)

// Marshal encodes v into a new TON byte slice via the reverse streaming
// encoder, appending the self-describe tag (spec.md §6.1).
func Marshal(v value.Value) ([]byte, error) {
	var buf bytes.Buffer

	s := ser.New(&buf, ser.WithSelfDescribe())
	if err := v.MarshalTONExt(s); err != nil {
		return nil, err
	}
	if _, err := s.Finish(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes the single top-level value a TON byte slice holds.
// It tolerates the self-describe tag's presence or absence.
func Unmarshal(data []byte) (value.Value, error) {
	d, err := de.FromSlice(data)
	if err != nil {
		return value.Value{}, err
	}

	return d.ParseValue()
}

// EncodeFile encodes v and writes it to path, creating or truncating the
// file.
func EncodeFile(path string, v value.Value) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// DecodeFile decodes the TON value stored in the file at path, using the
// seekable file reader backend so large documents are not loaded fully
// into memory before decoding begins (spec.md §4.2, §9 open question 4).
func DecodeFile(path string) (value.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return value.Value{}, err
	}
	defer f.Close()

	d, err := de.FromFile(f)
	if err != nil {
		return value.Value{}, err
	}

	return d.ParseValue()
}
