// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package robintable

// dirSize is the fixed width of a HashMap's subtable directory. §9
// recommends keeping this a compile-time constant rather than a runtime
// knob, revisited only if measurements justify it; we follow that
// recommendation and hardcode it rather than threading it through as a
// type parameter (Go has no const generics, and a fixed array keeps the
// directory inline in the HashMap struct rather than behind a pointer).
const dirSize = 8

// dirShift is the number of low bits of a key's hash consumed by directory
// routing. Each Subtable is built with a hash function that discards these
// bits before reducing against its own capacity, so a Subtable's internal
// placement never collides with the bits that decided which Subtable it
// is -- without this, every Subtable would see identical low bits across
// all of its members (since routing already filtered on them) and every
// key would pile up on the same home slot. See HashMap.dirIndex.
const dirShift = 3 // log2(dirSize)

// HashMap is an unordered map from keys of type K to values of type V,
// implemented as a fixed-width directory of dirSize independent Robin Hood
// Subtables (§2). Every operation hashes the key, routes to the subtable
// selected by the low dirShift bits of the hash, and forwards the key (not
// the hash), so the subtable hashes the key again for placement; only the
// hit subtable ever grows.
//
// A HashMap is NOT goroutine-safe: concurrent mutation is undefined
// behavior, and concurrent readers are only safe when no writer is active
// (§5).
type HashMap[K comparable, V any] struct {
	dir   [dirSize]*Subtable[K, V]
	hash  HashFunc[K]
	equal EqualFunc[K]
	size  int
}

// New constructs an empty HashMap. By default keys are hashed with
// hash/maphash's generic comparable hashing and compared with ==; supply
// WithHash and/or WithEqual to override either.
func New[K comparable, V any](opts ...Option[K, V]) *HashMap[K, V] {
	m := &HashMap[K, V]{
		hash:  defaultHash[K](),
		equal: defaultEqual[K](),
	}
	for _, opt := range opts {
		opt.apply(m)
	}
	m.initDirectory()
	return m
}

// NewFromSeq constructs a HashMap from a sequence of key/value pairs,
// inserting each in order; for duplicate keys the first occurrence wins,
// consistent with Insert's semantics (§4.4).
func NewFromSeq[K comparable, V any](pairs []Pair[K, V], opts ...Option[K, V]) *HashMap[K, V] {
	m := New[K, V](opts...)
	for _, p := range pairs {
		m.Insert(p.Key, p.Value)
	}
	return m
}

// Pair is a key/value pair, used by NewFromSeq to seed a HashMap from an
// ordered sequence (the Go analogue of the original's initializer-list and
// input-iterator constructors).
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

func (m *HashMap[K, V]) initDirectory() {
	shiftedHash := func(k K) uint64 { return m.hash(k) >> dirShift }
	for i := range m.dir {
		m.dir[i] = NewSubtable[K, V](shiftedHash, m.equal)
	}
}

// dirIndex selects the subtable for hash h: the low dirShift bits, per
// §4.4. The map never reduces h any further before handing control to the
// subtable; the subtable performs its own reduction (via a hash function
// that has already discarded these bits, see dirShift's doc comment)
// against its own current capacity.
func dirIndex(h uint64) int {
	return int(h) & (dirSize - 1)
}

func (m *HashMap[K, V]) subtableFor(key K) *Subtable[K, V] {
	return m.dir[dirIndex(m.hash(key))]
}

// Len returns the number of entries across all subtables.
func (m *HashMap[K, V]) Len() int { return m.size }

// Empty reports whether the map holds no entries.
func (m *HashMap[K, V]) Empty() bool { return m.size == 0 }

// HashFunc returns the hash functor in use, for introspection.
func (m *HashMap[K, V]) HashFunc() HashFunc[K] { return m.hash }

// Get returns the value stored for key, if any.
func (m *HashMap[K, V]) Get(key K) (V, bool) {
	return m.subtableFor(key).Get(key)
}

// Insert stores (key, value) if key is not already present, forwarding to
// the subtable selected by hash(key). It reports whether the insertion
// happened; the aggregate size is incremented only on a genuine insert.
func (m *HashMap[K, V]) Insert(key K, value V) bool {
	inserted := m.subtableFor(key).Insert(key, value)
	if inserted {
		m.size++
	}
	return inserted
}

// Erase removes key if present. It reports whether key was present; the
// aggregate size is decremented only on a genuine removal.
func (m *HashMap[K, V]) Erase(key K) bool {
	erased := m.subtableFor(key).Erase(key)
	if erased {
		m.size--
	}
	return erased
}

// Find returns an iterator positioned on key's slot, and true, or an
// exhausted iterator and false if key is absent, per §4.4's composition of
// the selected subtable's index with its own iterator.
func (m *HashMap[K, V]) Find(key K) (Iterator[K, V], bool) {
	idx := dirIndex(m.hash(key))
	inner, found := m.dir[idx].Find(key)
	if !found {
		return Iterator[K, V]{dir: &m.dir, subIdx: dirSize}, false
	}
	return Iterator[K, V]{dir: &m.dir, subIdx: idx, inner: inner}, true
}

// GetOrInsert ensures key is present (inserting the zero value first if
// necessary) and returns a mutable pointer to its value, realizing §4.4's
// index(k). The pointer is valid only until the next mutating call on the
// map (it may trigger a resize of the subtable it points into).
func (m *HashMap[K, V]) GetOrInsert(key K) *V {
	t := m.subtableFor(key)
	before := t.Len()
	v := t.GetOrInsert(key)
	if t.Len() != before {
		m.size++
	}
	return v
}

// At returns the value stored for key, or ErrKeyNotFound if key is absent
// (§4.5's only explicit failure).
func (m *HashMap[K, V]) At(key K) (V, error) {
	return m.subtableFor(key).At(key)
}

// Clear empties every subtable and resets the aggregate size.
func (m *HashMap[K, V]) Clear() {
	for _, t := range m.dir {
		t.Clear()
	}
	m.size = 0
}

// Begin returns an iterator scanning the directory left to right for the
// first non-empty subtable, composed with that subtable's own begin
// iterator (§4.4).
func (m *HashMap[K, V]) Begin() Iterator[K, V] {
	it := Iterator[K, V]{dir: &m.dir, subIdx: -1}
	it.Next()
	return it
}

// Range calls yield for every (key, value) pair across the directory, in
// directory then slot order, stopping early if yield returns false.
func (m *HashMap[K, V]) Range(yield func(key K, value V) bool) {
	for _, t := range m.dir {
		done := false
		t.Range(func(k K, v V) bool {
			if !yield(k, v) {
				done = true
				return false
			}
			return true
		})
		if done {
			return
		}
	}
}

// Clone returns a deep copy: a new HashMap with the same hash/equal
// functors and an independent copy of every subtable, per §4.4 and §9 (the
// source was "internally inconsistent" on this point; this specification
// mandates deep copy for ownership clarity). Mutating the clone never
// affects the original and vice versa.
func (m *HashMap[K, V]) Clone() *HashMap[K, V] {
	c := &HashMap[K, V]{hash: m.hash, equal: m.equal, size: m.size}
	for i, t := range m.dir {
		c.dir[i] = t.clone()
	}
	return c
}
