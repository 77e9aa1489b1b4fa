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

// Package robintable is a two-level, generic hash table aimed at lower
// memory overhead than a single monolithic open-addressed table while
// staying competitive on latency with a conventional Robin Hood hash table.
//
// # Layout
//
// A HashMap is a fixed-width directory of 8 Subtables. Every operation
// hashes the key and routes to the subtable selected by the low bits of the
// hash; only that one subtable is ever touched. The subtable then hashes the
// key again itself for its own placement, so the hash function is called
// more than once per operation. Each Subtable is a
// self-contained Robin Hood open-addressed table: a dense array of slots
// with power-of-two capacity, probed by walking forward from a key's home
// index and displacing whichever resident has a smaller probe sequence
// length (PSL) so probe distances stay roughly equalized across entries.
// Deletion uses back-shift compaction rather than tombstones, which is what
// lets a Subtable hold a hard load-factor ceiling (0.5) without ever
// degrading from accumulated deleted markers.
//
// Splitting the table into independently-growing subtables means a single
// hot key range can double its own subtable's capacity without doubling the
// memory committed to the other seven eighths of the map -- the design
// this package borrows its directory/bucket split from abseil-style Swiss
// tables, adapted here to Robin Hood probing within each bucket instead of
// Swiss tables' SIMD-friendly control-byte groups.
//
// # What this package does not do
//
// No ordered iteration, no thread safety, no stable addresses across
// growth, no persistence or serialization, and no allocator customization.
// Hashing and equality of keys are supplied by the caller (see HashFunc,
// EqualFunc, WithHash, WithEqual); the package assumes both are pure
// functions of the key and never validates that assumption.
//
// # Failure modes
//
// At is the only operation with an explicit failure: it returns
// ErrKeyNotFound when the key is absent. Everything else either succeeds or
// reports success/failure through a boolean return. Allocation failure
// during growth is not recovered -- it propagates as a panic from the
// runtime's make, the same way it would for any other Go data structure.
package robintable
