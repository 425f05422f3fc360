// Copyright 2025 The Hash-Table-API Authors
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

package hashtable

import (
	"fmt"
	"io"
	"strconv"
	"testing"

	"github.com/aclements/go-perfevent/perfbench"
)

func BenchmarkGetHit(b *testing.B) {
	b.Run("impl=runtimeMap", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkRuntimeMapGetHit[int64], genInt64Keys))
		b.Run("t=String", benchSizes(benchmarkRuntimeMapGetHit[string], genStringKeys))
	})
	b.Run("impl=hashTable", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkTableGetHit[int64], genInt64Keys))
		b.Run("t=String", benchSizes(benchmarkTableGetHit[string], genStringKeys))
	})
}

func BenchmarkGetMiss(b *testing.B) {
	b.Run("impl=runtimeMap", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkRuntimeMapGetMiss[int64], genInt64Keys))
		b.Run("t=String", benchSizes(benchmarkRuntimeMapGetMiss[string], genStringKeys))
	})
	b.Run("impl=hashTable", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkTableGetMiss[int64], genInt64Keys))
		b.Run("t=String", benchSizes(benchmarkTableGetMiss[string], genStringKeys))
	})
}

func BenchmarkPutGrow(b *testing.B) {
	b.Run("impl=runtimeMap", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkRuntimeMapPutGrow[int64], genInt64Keys))
		b.Run("t=String", benchSizes(benchmarkRuntimeMapPutGrow[string], genStringKeys))
	})
	b.Run("impl=hashTable", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkTablePutGrow[int64], genInt64Keys))
		b.Run("t=String", benchSizes(benchmarkTablePutGrow[string], genStringKeys))
	})
}

func BenchmarkPutDelete(b *testing.B) {
	b.Run("impl=runtimeMap", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkRuntimeMapPutDelete[int64], genInt64Keys))
		b.Run("t=String", benchSizes(benchmarkRuntimeMapPutDelete[string], genStringKeys))
	})
	b.Run("impl=hashTable", func(b *testing.B) {
		b.Run("t=Int64", benchSizes(benchmarkTablePutDelete[int64], genInt64Keys))
		b.Run("t=String", benchSizes(benchmarkTablePutDelete[string], genStringKeys))
	})
}

type benchTypes interface {
	int64 | string
}

func benchSizes[T benchTypes](
	f func(b *testing.B, n int, genKeys func(start, end int) []T), genKeys func(start, end int) []T,
) func(*testing.B) {
	var cases = []int{12, 64, 512, 4096, 1 << 16}

	return func(b *testing.B) {
		for _, n := range cases {
			b.Run("len="+strconv.Itoa(n), func(b *testing.B) { f(b, n, genKeys) })
		}
	}
}

func genInt64Keys(start, end int) []int64 {
	keys := make([]int64, end-start)
	for i := range keys {
		keys[i] = int64(start + i)
	}
	return keys
}

func genStringKeys(start, end int) []string {
	keys := make([]string, end-start)
	for i := range keys {
		keys[i] = strconv.Itoa(start + i)
	}
	return keys
}

func benchKeyOps[T benchTypes]() KeyOps[T] {
	var t T
	var hash func(T) uint64
	switch any(t).(type) {
	case int64:
		hash = func(k T) uint64 { return HashUint64(uint64(any(k).(int64))) }
	case string:
		hash = func(k T) uint64 { return HashString(any(k).(string)) }
	default:
		panic("not reached")
	}
	return KeyOps[T]{
		Hash:  hash,
		Equal: func(a, b T) bool { return a == b },
	}
}

func newBenchTable[T benchTypes](b *testing.B, options ...Option[T, T]) *Table[T, T] {
	m, err := New(benchKeyOps[T](), ValueOps[T]{}, options...)
	if err != nil {
		b.Fatal(err)
	}
	return m
}

func benchmarkRuntimeMapGetHit[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	m := make(map[T]T, n)
	keys := genKeys(0, n)
	for _, k := range keys {
		m[k] = k
	}

	// Defeat the builtin map's pointer-equality fast path for strings so
	// the comparison against our table is apples to apples.
	keys = genKeys(0, n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[keys[i%n]]
	}
}

func benchmarkTableGetHit[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	m := newBenchTable[T](b, WithCapacity[T, T](2*n))
	defer m.Close()
	keys := genKeys(0, n)
	for _, k := range keys {
		m.Put(k, k)
	}
	keys = genKeys(0, n)

	b.ResetTimer()
	var ok bool
	for i := 0; i < b.N; i++ {
		_, ok = m.Get(keys[i%n])
	}
	b.StopTimer()
	fmt.Fprint(io.Discard, ok)
}

func benchmarkRuntimeMapGetMiss[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	m := make(map[T]T)
	keys := genKeys(0, n)
	miss := genKeys(n, 2*n)
	for _, k := range keys {
		m[k] = k
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[miss[i%n]]
	}
}

func benchmarkTableGetMiss[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	m := newBenchTable[T](b)
	defer m.Close()
	keys := genKeys(0, n)
	miss := genKeys(n, 2*n)
	for _, k := range keys {
		m.Put(k, k)
	}
	b.ResetTimer()
	var ok bool
	for i := 0; i < b.N; i++ {
		_, ok = m.Get(miss[i%n])
	}
	b.StopTimer()
	fmt.Fprint(io.Discard, ok)
}

func benchmarkRuntimeMapPutGrow[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	keys := genKeys(0, n)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := make(map[T]T)
		for _, k := range keys {
			m[k] = k
		}
	}
}

func benchmarkTablePutGrow[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	cs := perfbench.Open(b)
	keys := genKeys(0, n)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := newBenchTable[T](b)
		for _, k := range keys {
			m.Put(k, k)
		}
		m.Close()
	}
	cs.Stop()
}

func benchmarkRuntimeMapPutDelete[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	m := make(map[T]T, n)
	keys := genKeys(0, n)
	for _, k := range keys {
		m[k] = k
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		j := i % n
		delete(m, keys[j])
		m[keys[j]] = keys[j]
	}
}

func benchmarkTablePutDelete[T benchTypes](b *testing.B, n int, genKeys func(start, end int) []T) {
	m := newBenchTable[T](b, WithCapacity[T, T](2*n))
	defer m.Close()
	keys := genKeys(0, n)
	for _, k := range keys {
		m.Put(k, k)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		j := i % n
		m.Delete(keys[j])
		m.Put(keys[j], keys[j])
	}
}
