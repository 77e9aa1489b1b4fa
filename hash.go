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

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// HashFunc maps a key to an unsigned integer. It must be deterministic and
// consistent with whatever EqualFunc is paired with it: equal(a,b) implies
// hash(a) == hash(b). The core treats it as a pure function of the key and
// never inspects it beyond calling it.
type HashFunc[K any] func(key K) uint64

// EqualFunc reports whether two keys are equal. It must be reflexive,
// symmetric, and transitive, and consistent with the paired HashFunc.
type EqualFunc[K any] func(a, b K) bool

// defaultHash returns a HashFunc built on hash/maphash's generic comparable
// hashing, seeded once per call. New calls it once per HashMap, and all of
// that map's Subtables share the result, so hash values are stable for the
// lifetime of the container but not predictable across processes.
//
// This mirrors homier-stablemap's MakeDefaultHashFunc: maphash.Comparable
// works for any comparable type without requiring the caller to hand-write a
// hasher, at the cost of a reflect-assisted dispatch that is slower than a
// type-specific hash. Callers on a hot path with string or []byte keys
// should prefer HashString/HashBytes below, or supply their own HashFunc via
// WithHash.
func defaultHash[K comparable]() HashFunc[K] {
	seed := maphash.MakeSeed()
	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

// defaultEqual returns the builtin == operator as an EqualFunc, valid for
// any comparable type.
func defaultEqual[K comparable]() EqualFunc[K] {
	return func(a, b K) bool { return a == b }
}

// HashBytes hashes a []byte key using xxhash, a considerably faster path
// than the generic maphash.Comparable dispatch for byte-slice keys.
func HashBytes(key []byte) uint64 {
	return xxhash.Sum64(key)
}

// HashString hashes a string key using xxhash, a considerably faster path
// than the generic maphash.Comparable dispatch for string keys.
func HashString(key string) uint64 {
	return xxhash.Sum64String(key)
}
