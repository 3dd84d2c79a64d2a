package value

import (
	"bytes"
	"sort"

	"github.com/tonbin/ton/errs"
	"github.com/tonbin/ton/internal/hash"
)

type mapEntry struct {
	key      KeyValue
	keyBytes []byte
	val      Value
}

// Map is the ordered key->value container backing OBJECT (spec.md §4.6).
//
// It keeps a hash index alongside an insertion-ordered entry slice, the same
// dual structure internal/collision.Tracker uses to detect duplicate
// metric identifiers without an O(n) scan per insert: the index gives
// O(1) candidate lookup, and a canonical-byte comparison settles any
// hash collision.
//
// Iteration (Entries) always yields entries sorted by canonical key
// bytes, not insertion order, so two Maps with the same entries produce
// byte-identical OBJECT encodings regardless of how they were built.
type Map struct {
	index   map[uint64][]int
	entries []mapEntry
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{index: make(map[uint64][]int)}
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.entries) }

func (m *Map) find(key KeyValue) (idx int, keyBytes []byte) {
	keyBytes = CanonicalBytes(key)
	h := hash.Key(keyBytes)
	for _, i := range m.index[h] {
		if bytes.Equal(m.entries[i].keyBytes, keyBytes) {
			return i, keyBytes
		}
	}

	return -1, keyBytes
}

// Get returns the value stored under key, if any.
func (m *Map) Get(key KeyValue) (Value, bool) {
	idx, _ := m.find(key)
	if idx < 0 {
		return Value{}, false
	}

	return m.entries[idx].val, true
}

// Contains reports whether key has an entry.
func (m *Map) Contains(key KeyValue) bool {
	idx, _ := m.find(key)
	return idx >= 0
}

// Insert adds key -> val. It returns errs.ErrDuplicateKey if key is
// already present (spec.md §3.3: "OBJECT keys are unique").
func (m *Map) Insert(key KeyValue, val Value) error {
	idx, keyBytes := m.find(key)
	if idx >= 0 {
		return errs.ErrDuplicateKey
	}

	h := hash.Key(keyBytes)
	m.index[h] = append(m.index[h], len(m.entries))
	m.entries = append(m.entries, mapEntry{key: key, keyBytes: keyBytes, val: val})

	return nil
}

// Remove deletes key's entry, if present, reporting whether it existed.
func (m *Map) Remove(key KeyValue) bool {
	idx, keyBytes := m.find(key)
	if idx < 0 {
		return false
	}

	h := hash.Key(keyBytes)
	bucket := m.index[h]
	for i, v := range bucket {
		if v == idx {
			m.index[h] = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}

	m.entries = append(m.entries[:idx], m.entries[idx+1:]...)

	// Every index after the removed one shifted left by one.
	for h, bucket := range m.index {
		for i, v := range bucket {
			if v > idx {
				bucket[i] = v - 1
			}
		}
		m.index[h] = bucket
	}

	return true
}

// Entry is the vacant/occupied fork over a single key (spec.md §4.6).
type Entry struct {
	m   *Map
	key KeyValue
	idx int // -1 when vacant
}

// Entry looks up key without inserting, returning a handle that can
// check occupancy or insert on demand.
func (m *Map) Entry(key KeyValue) *Entry {
	idx, _ := m.find(key)
	return &Entry{m: m, key: key, idx: idx}
}

// Occupied reports whether the entry already has a value.
func (e *Entry) Occupied() bool { return e.idx >= 0 }

// Get returns the occupied value, if any.
func (e *Entry) Get() (Value, bool) {
	if e.idx < 0 {
		return Value{}, false
	}

	return e.m.entries[e.idx].val, true
}

// OrInsert returns the existing value if occupied, otherwise inserts val
// and returns it.
func (e *Entry) OrInsert(val Value) Value {
	if e.idx >= 0 {
		return e.m.entries[e.idx].val
	}

	_ = e.m.Insert(e.key, val) // vacant by construction; cannot fail
	e.idx = len(e.m.entries) - 1

	return val
}

// MapPair is one sorted (key, value) pair, as returned by Entries.
type MapPair struct {
	Key KeyValue
	Val Value
}

// Entries returns every entry sorted by canonical key bytes (spec.md
// §4.6: "iteration in sort order"). This is the order the serializer
// walks when emitting an OBJECT.
func (m *Map) Entries() []MapPair {
	sorted := make([]mapEntry, len(m.entries))
	copy(sorted, m.entries)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].keyBytes, sorted[j].keyBytes) < 0
	})

	pairs := make([]MapPair, len(sorted))
	for i, e := range sorted {
		pairs[i] = MapPair{Key: e.key, Val: e.val}
	}

	return pairs
}

// Equal reports whether m and other hold the same set of (key, value)
// pairs, independent of insertion order.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}

	for _, e := range m.entries {
		ov, ok := other.Get(e.key)
		if !ok || !e.val.Equal(ov) {
			return false
		}
	}

	return true
}
