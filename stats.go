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

// SubtableStats summarizes one subtable's occupancy and probing behavior,
// for capacity planning and for diagnosing a poor hash function (a long
// MaxPSL relative to Size/Capacity is the signature of excessive
// clustering). Grounded in homier-stablemap's Stats type, extended with the
// probe-length figures that a Robin Hood table -- as opposed to a Swiss
// table -- makes cheap to report.
type SubtableStats struct {
	Size       int
	Capacity   int
	LoadFactor float64
	MaxPSL     int32
}

// Stats returns the current occupancy and probe-length summary for the
// subtable.
func (t *Subtable[K, V]) Stats() SubtableStats {
	cap := len(t.slots)
	return SubtableStats{
		Size:       t.size,
		Capacity:   cap,
		LoadFactor: float64(t.size) / float64(cap),
		MaxPSL:     t.maxPSL(),
	}
}

// MapStats summarizes a HashMap by aggregating each subtable's SubtableStats,
// which is what makes the two-level layout's memory-saving claim
// (independent per-subtable growth rather than one monolithic table)
// inspectable: a skewed hash function shows up here as a small number of
// subtables with much higher Capacity than the rest.
type MapStats struct {
	Size      int
	Subtables [dirSize]SubtableStats
}

// Stats returns the current per-subtable and aggregate occupancy summary.
func (m *HashMap[K, V]) Stats() MapStats {
	s := MapStats{Size: m.size}
	for i, t := range m.dir {
		s.Subtables[i] = t.Stats()
	}
	return s
}
