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

// Option provides an interface to do work on a Table while it is being
// created.
type Option[K, V any] interface {
	apply(t *Table[K, V])
}

// Allocator specifies an interface for allocating and releasing the memory
// used by a Table: the slot array and the packed state vector. The default
// allocator utilizes Go's builtin make() and allows the GC to reclaim
// memory.
//
// Both Alloc methods must return zeroed storage of the requested length,
// or nil to signal that no memory is available. A nil return is the only
// allocation-failure signal the table recognizes.
//
// If the allocator is manually managing memory then Table.Close must be
// called in order to ensure FreeSlots and FreeStates are called.
type Allocator[K, V any] interface {
	// AllocSlots should return a slice equivalent to make([]Slot[K,V], n),
	// or nil on failure.
	AllocSlots(n int) []Slot[K, V]

	// AllocStates should return a slice equivalent to make([]uint8, n), or
	// nil on failure.
	AllocStates(n int) []uint8

	// FreeSlots can optionally release the memory associated with the
	// supplied slice that is guaranteed to have been allocated by
	// AllocSlots.
	FreeSlots(v []Slot[K, V])

	// FreeStates can optionally release the memory associated with the
	// supplied slice that is guaranteed to have been allocated by
	// AllocStates.
	FreeStates(v []uint8)
}

type defaultAllocator[K, V any] struct{}

func (defaultAllocator[K, V]) AllocSlots(n int) []Slot[K, V] {
	return make([]Slot[K, V], n)
}

func (defaultAllocator[K, V]) AllocStates(n int) []uint8 {
	return make([]uint8, n)
}

func (defaultAllocator[K, V]) FreeSlots(v []Slot[K, V]) {
}

func (defaultAllocator[K, V]) FreeStates(v []uint8) {
}

type allocatorOption[K, V any] struct {
	allocator Allocator[K, V]
}

func (op allocatorOption[K, V]) apply(t *Table[K, V]) {
	t.allocator = op.allocator
}

// WithAllocator is an option to specify the Allocator to use for a
// Table[K,V].
func WithAllocator[K, V any](allocator Allocator[K, V]) Option[K, V] {
	return allocatorOption[K, V]{allocator}
}

type capacityOption[K, V any] struct {
	capacity int
}

func (op capacityOption[K, V]) apply(t *Table[K, V]) {
	c := initialCapacity
	for c < op.capacity {
		c *= 2
	}
	t.capacity = c
}

// WithCapacity is an option to set the initial slot capacity of a
// Table[K,V], rounded up to a power of two and never below the default of
// 16. Useful when the eventual size is known up front, to avoid growth
// rehashes while loading.
func WithCapacity[K, V any](capacity int) Option[K, V] {
	return capacityOption[K, V]{capacity}
}
