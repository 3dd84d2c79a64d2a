// Package hash computes the canonical hash used to index OBJECT keys in
// value.Map, so key lookup doesn't require comparing every prior key's
// full encoded form.
package hash

import "github.com/cespare/xxhash/v2"

// Key computes the xxHash64 of a KeyValue's canonical encoded form, as
// produced by value.CanonicalBytes. Two KeyValues with the same
// canonical bytes always hash equal, which is what value.Map relies on
// to detect candidate duplicate keys before falling back to a full
// byte comparison.
func Key(data []byte) uint64 {
	return xxhash.Sum64(data)
}
