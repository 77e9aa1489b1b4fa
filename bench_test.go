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
	"fmt"
	"io"
	"strconv"
	"testing"

	"github.com/aclements/go-perfevent/perfbench"
)

type benchTypes interface {
	int32 | int64 | string
}

func benchSizes[T benchTypes](
	f func(b *testing.B, n int, genKeys func(start, end int) []T), genKeys func(start, end int) []T,
) func(*testing.B) {
	var cases = []int{6, 12, 24, 64, 256, 1024, 4096, 1 << 16}
	return func(b *testing.B) {
		for _, n := range cases {
			b.Run("len="+strconv.Itoa(n), func(b *testing.B) { f(b, n, genKeys) })
		}
	}
}

func genKeys[T benchTypes](start, end int) []T {
	var t T
	switch any(t).(type) {
	case int32:
		keys := make([]T, end-start)
		for i := range keys {
			keys[i] = any(int32(start + i)).(T)
		}
		return keys
	case int64:
		keys := make([]T, end-start)
		for i := range keys {
			keys[i] = any(int64(start + i)).(T)
		}
		return keys
	case string:
		keys := make([]T, end-start)
		for i := range keys {
			keys[i] = any(strconv.Itoa(start + i)).(T)
		}
		return keys
	default:
		panic("not reached")
	}
}

// BenchmarkMapGetHit compares a lookup hit rate against Go's builtin map,
// each instrumented with hardware performance counters via perfbench so
// the directory-of-subtables layout's cache behavior is directly visible
// in the counter deltas, not just wall-clock time.
func BenchmarkMapGetHit(b *testing.B) {
	b.Run("impl=builtin", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkBuiltinGetHit[int64], genKeys[int64]))
		b.Run("t=String", benchSizes(benchmarkBuiltinGetHit[string], genKeys[string]))
	})
	b.Run("impl=robintable", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkRobinGetHit[int64], genKeys[int64]))
		b.Run("t=String", benchSizes(benchmarkRobinGetHit[string], genKeys[string]))
	})
}

func benchmarkBuiltinGetHit[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	m := make(map[T]T, n)
	keys := genKeys(0, n)
	for _, k := range keys {
		m[k] = k
	}
	_ = perfbench.Open(b)
	b.ResetTimer()
	var ok bool
	for i := 0; i < b.N; i++ {
		_, ok = m[keys[i%n]]
	}
	b.StopTimer()
	fmt.Fprint(io.Discard, ok)
}

func benchmarkRobinGetHit[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	m := newBenchMap[T]()
	keys := genKeys(0, n)
	for _, k := range keys {
		m.Insert(k, k)
	}
	_ = perfbench.Open(b)
	b.ResetTimer()
	var ok bool
	for i := 0; i < b.N; i++ {
		_, ok = m.Get(keys[i%n])
	}
	b.StopTimer()
	fmt.Fprint(io.Discard, ok)
}

func BenchmarkMapGetMiss(b *testing.B) {
	b.Run("impl=builtin", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkBuiltinGetMiss[int64], genKeys[int64]))
	})
	b.Run("impl=robintable", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkRobinGetMiss[int64], genKeys[int64]))
	})
}

func benchmarkBuiltinGetMiss[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	m := make(map[T]T, n)
	keys := genKeys(0, n)
	miss := genKeys(-n, 0)
	for _, k := range keys {
		m[k] = k
	}
	_ = perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[miss[i%len(miss)]]
	}
}

func benchmarkRobinGetMiss[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	m := newBenchMap[T]()
	keys := genKeys(0, n)
	miss := genKeys(-n, 0)
	for _, k := range keys {
		m.Insert(k, k)
	}
	_ = perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Get(miss[i%len(miss)])
	}
}

func BenchmarkMapPutGrow(b *testing.B) {
	b.Run("impl=builtin", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkBuiltinPutGrow[int64], genKeys[int64]))
	})
	b.Run("impl=robintable", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkRobinPutGrow[int64], genKeys[int64]))
	})
}

func benchmarkBuiltinPutGrow[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	keys := genKeys(0, n)
	_ = perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := make(map[T]T)
		for _, k := range keys {
			m[k] = k
		}
	}
}

func benchmarkRobinPutGrow[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	keys := genKeys(0, n)
	_ = perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := newBenchMap[T]()
		for _, k := range keys {
			m.Insert(k, k)
		}
	}
}

func BenchmarkMapPutDelete(b *testing.B) {
	b.Run("impl=builtin", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkBuiltinPutDelete[int64], genKeys[int64]))
	})
	b.Run("impl=robintable", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkRobinPutDelete[int64], genKeys[int64]))
	})
}

func benchmarkBuiltinPutDelete[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	m := make(map[T]T, n)
	keys := genKeys(0, n)
	for _, k := range keys {
		m[k] = k
	}
	_ = perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		j := i % n
		delete(m, keys[j])
		m[keys[j]] = keys[j]
	}
}

func benchmarkRobinPutDelete[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	m := newBenchMap[T]()
	keys := genKeys(0, n)
	for _, k := range keys {
		m.Insert(k, k)
	}
	_ = perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		j := i % n
		m.Erase(keys[j])
		m.Insert(keys[j], keys[j])
	}
}

func BenchmarkMapIter(b *testing.B) {
	b.Run("impl=builtin", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkBuiltinIter[int64], genKeys[int64]))
	})
	b.Run("impl=robintable", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkRobinIter[int64], genKeys[int64]))
	})
}

func benchmarkBuiltinIter[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	m := make(map[T]T, n)
	keys := genKeys(0, n)
	for _, k := range keys {
		m[k] = k
	}
	_ = perfbench.Open(b)
	b.ResetTimer()
	var tmp int
	for i := 0; i < b.N; i++ {
		for range m {
			tmp++
		}
	}
}

func benchmarkRobinIter[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	m := newBenchMap[T]()
	keys := genKeys(0, n)
	for _, k := range keys {
		m.Insert(k, k)
	}
	_ = perfbench.Open(b)
	b.ResetTimer()
	var tmp int
	for i := 0; i < b.N; i++ {
		m.Range(func(k, v T) bool {
			tmp++
			return true
		})
	}
}

func newBenchMap[T benchTypes]() *HashMap[T, T] {
	var t T
	switch any(t).(type) {
	case string:
		return New[T, T](WithHash[T, T](func(k T) uint64 {
			return HashString(any(k).(string))
		}))
	default:
		return New[T, T]()
	}
}
