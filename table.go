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

// Package hashtable implements a generic associative container built on
// open addressing with linear probing. If you're not familiar with
// open-addressing see https://en.wikipedia.org/wiki/Open_addressing.
//
// Unlike Go's builtin map, a Table is parameterized over caller-supplied
// capabilities rather than over comparable key types: the caller provides
// hash, equality, deep-copy and destroy functions for keys (KeyOps) and
// deep-copy and destroy functions for values (ValueOps). This keeps all
// type-specific behavior outside the container and lets keys be types the
// language would not otherwise allow in a map.
//
// # Ownership
//
// The table owns a deep copy of every key and value it stores, made via the
// Copy capability at insert time. It never aliases or retains the arguments
// passed to Put; callers keep ownership of those. The Destroy capability is
// invoked on the owned copy whenever a slot is vacated: on update (old
// value), on Delete (key and value), during growth (the pre-growth copies)
// and on Close (everything still live). The pointer returned by Get is a
// borrowed view into table-owned storage and is invalidated by the next
// mutating call.
//
// # Layout
//
// Slot states are tracked out-of-band in a packed vector holding 2 bits per
// slot (see stateVec), alongside a parallel slot array holding the owned
// entries. A slot is EMPTY, OCCUPIED or DELETED. EMPTY terminates a probe
// search. DELETED is a tombstone: the slot is logically absent but probing
// must continue through it, because a later key with the same home slot may
// have probed past it while it was still occupied. Insertion reuses the
// first tombstone seen on its probe chain when the chain ends at EMPTY
// without finding the key.
//
// Capacity is always a power of two, starting at 16 and doubling whenever
// an insert would push the load factor (count/capacity) above 3/4. Growth
// stages entirely new storage, migrates every live entry through the
// ordinary insert path (fresh deep copies, fresh placement under the new
// mask) and only then discards the old arrays, so a failed allocation
// leaves the table untouched.
//
// Backing storage is obtained from a pluggable Allocator (see options.go);
// the default uses make and leaves reclamation to the GC.
//
// A Table is NOT goroutine-safe.
package hashtable

import (
	"errors"
	"fmt"
	"strings"
)

const (
	debug = false

	initialCapacity = 16

	// Growth triggers when an insert would push count past
	// capacity * maxLoadNum / maxLoadDen.
	maxLoadNum = 3
	maxLoadDen = 4
)

// ErrAllocFailed is returned by New when the configured allocator cannot
// provide the table's initial storage.
var ErrAllocFailed = errors.New("hashtable: allocation failed")

// KeyOps bundles the capabilities the table needs for keys of type K.
//
// Hash and Equal are mandatory and must agree: Equal(a, b) implies
// Hash(a) == Hash(b). Copy may be nil when a plain value copy of K is
// already a deep copy; Destroy may be nil when owned keys need no release
// step. Both are the common case for GC-managed Go values.
type KeyOps[K any] struct {
	Hash    func(K) uint64
	Equal   func(K, K) bool
	Copy    func(K) K
	Destroy func(K)
}

func (o KeyOps[K]) copy(k K) K {
	if o.Copy == nil {
		return k
	}
	return o.Copy(k)
}

func (o KeyOps[K]) destroy(k K) {
	if o.Destroy != nil {
		o.Destroy(k)
	}
}

// ValueOps bundles the capabilities the table needs for values of type V.
// Copy and Destroy follow the same rules as in KeyOps.
type ValueOps[V any] struct {
	Copy    func(V) V
	Destroy func(V)
}

func (o ValueOps[V]) copy(v V) V {
	if o.Copy == nil {
		return v
	}
	return o.Copy(v)
}

func (o ValueOps[V]) destroy(v V) {
	if o.Destroy != nil {
		o.Destroy(v)
	}
}

// Slot holds the table-owned copy of one key/value pair. Only slots in the
// OCCUPIED state hold live data; the contents of EMPTY and DELETED slots
// are zero and must never be read as live.
type Slot[K, V any] struct {
	key   K
	value V
}

// Table is an unordered map from keys to values with Put, Get and Delete
// operations. The zero value is not usable; construct with New and release
// with Close.
//
// A Table is NOT goroutine-safe.
type Table[K, V any] struct {
	keyOps   KeyOps[K]
	valueOps ValueOps[V]
	// The allocator for the states and slots arrays.
	allocator Allocator[K, V]
	// states is stateBytes(capacity) in length and tracks the
	// EMPTY/OCCUPIED/DELETED state of each slot.
	states stateVec
	// slots is capacity in length.
	slots []Slot[K, V]
	// The total number of slots. Always a power of two, so capacity-1 is
	// used as a mask to compute i%capacity with a bitwise &.
	capacity int
	// The number of OCCUPIED slots.
	count int
}

// New constructs an empty Table with capacity 16 using the supplied key and
// value capabilities. KeyOps.Hash and KeyOps.Equal are required; passing
// either as nil panics. New fails only if the configured allocator cannot
// provide the initial storage, and retains nothing on that path.
func New[K, V any](keyOps KeyOps[K], valueOps ValueOps[V], options ...Option[K, V]) (*Table[K, V], error) {
	if keyOps.Hash == nil || keyOps.Equal == nil {
		panic("hashtable: KeyOps.Hash and KeyOps.Equal are required")
	}

	t := &Table[K, V]{
		keyOps:    keyOps,
		valueOps:  valueOps,
		allocator: defaultAllocator[K, V]{},
		capacity:  initialCapacity,
	}
	for _, op := range options {
		op.apply(t)
	}

	states := t.allocator.AllocStates(stateBytes(t.capacity))
	if states == nil {
		return nil, ErrAllocFailed
	}
	slots := t.allocator.AllocSlots(t.capacity)
	if slots == nil {
		t.allocator.FreeStates(states)
		return nil, ErrAllocFailed
	}
	t.states = stateVec{bytes: states}
	t.slots = slots
	return t, nil
}

// Close destroys the owned key and value of every occupied slot, then
// returns the backing storage to the allocator. It is unnecessary to close
// a table that uses the default allocator and carries no Destroy
// capabilities. Close is idempotent and a no-op on a nil table; it is
// invalid to use a Table after it has been closed.
func (t *Table[K, V]) Close() {
	if t == nil || t.slots == nil {
		return
	}
	for i := 0; i < t.capacity; i++ {
		if t.states.get(i) == stateOccupied {
			t.keyOps.destroy(t.slots[i].key)
			t.valueOps.destroy(t.slots[i].value)
		}
	}
	t.allocator.FreeSlots(t.slots)
	t.allocator.FreeStates(t.states.bytes)
	t.slots = nil
	t.states = stateVec{}
	t.capacity = 0
	t.count = 0
}

// findSlot walks the linear probe chain for key, starting at the key's home
// slot hash(key)&(capacity-1). An EMPTY slot ends the search: if
// reuseTombstone is set and a tombstone was passed earlier on the chain,
// the index of the first such tombstone is returned (for reuse), otherwise
// the EMPTY index. An OCCUPIED slot ends the search on key equality. A
// DELETED slot never ends the search; an equal key may legitimately sit
// beyond it, inserted while the slot was still occupied.
//
// The walk is bounded at one full pass over the table. The growth invariant
// guarantees an EMPTY slot exists whenever insertion probes, but a table
// whose free slots are all tombstones can be reached through delete/insert
// cycles; after a full pass every slot has been inspected, so -1 (not
// found) or the recorded tombstone is definitive.
func (t *Table[K, V]) findSlot(key K, reuseTombstone bool) int {
	mask := t.capacity - 1
	i := int(t.keyOps.Hash(key) & uint64(mask))
	tombstone := -1

	if debug {
		fmt.Printf("find(%v): home=%d reuse-tombstone=%t\n", key, i, reuseTombstone)
	}

	for probed := 0; probed < t.capacity; probed++ {
		switch t.states.get(i) {
		case stateEmpty:
			if reuseTombstone && tombstone >= 0 {
				return tombstone
			}
			return i
		case stateDeleted:
			if reuseTombstone && tombstone < 0 {
				tombstone = i
			}
		case stateOccupied:
			if t.keyOps.Equal(t.slots[i].key, key) {
				return i
			}
		}
		i = (i + 1) & mask
	}
	return tombstone
}

// Put inserts an entry into the table, storing deep copies of key and
// value. If an entry with an equal key already exists its value is
// destroyed and replaced (count unchanged); otherwise the pair occupies a
// vacant or tombstone slot and count grows. Ownership of the arguments
// stays with the caller.
//
// Put returns false only on allocation failure during growth, in which
// case the table is left exactly as it was before the call.
func (t *Table[K, V]) Put(key K, value V) bool {
	if maxLoadDen*(t.count+1) > maxLoadNum*t.capacity {
		if !t.resize(2 * t.capacity) {
			return false
		}
	}

	i := t.findSlot(key, true)
	if t.states.get(i) != stateOccupied {
		if debug {
			fmt.Printf("put(%v): inserting at %d\n", key, i)
		}
		t.states.set(i, stateOccupied)
		t.slots[i] = Slot[K, V]{
			key:   t.keyOps.copy(key),
			value: t.valueOps.copy(value),
		}
		t.count++
	} else {
		if debug {
			fmt.Printf("put(%v): updating at %d\n", key, i)
		}
		t.valueOps.destroy(t.slots[i].value)
		t.slots[i].value = t.valueOps.copy(value)
	}
	t.checkInvariants()
	return true
}

// Get retrieves the value stored for key, returning ok=false if the key is
// not present. The returned pointer is owned by the table: it stays valid
// only until the next mutating operation (Put, Delete, Close), any of
// which may destroy or relocate the value. Callers must not retain it
// across such calls.
func (t *Table[K, V]) Get(key K) (value *V, ok bool) {
	if t.count == 0 {
		return nil, false
	}
	i := t.findSlot(key, false)
	if i < 0 || t.states.get(i) != stateOccupied {
		return nil, false
	}
	return &t.slots[i].value, true
}

// Delete removes the entry for key, destroying the owned key and value and
// leaving a tombstone so that probe chains through this slot stay intact.
// It returns whether the key was present.
func (t *Table[K, V]) Delete(key K) bool {
	if t.count == 0 {
		return false
	}
	i := t.findSlot(key, false)
	if i < 0 || t.states.get(i) != stateOccupied {
		return false
	}

	s := &t.slots[i]
	t.keyOps.destroy(s.key)
	t.valueOps.destroy(s.value)
	*s = Slot[K, V]{}
	t.states.set(i, stateDeleted)
	t.count--
	t.checkInvariants()
	return true
}

// Len returns the number of entries in the table.
func (t *Table[K, V]) Len() int {
	return t.count
}

// resize replaces the table's storage with freshly allocated arrays of
// newCapacity slots and migrates every occupied entry through the ordinary
// Put path, so entries get fresh deep copies and fresh placement under the
// new mask. Each old entry's owned key/value is destroyed right after its
// re-insert, and the old arrays are freed last. Allocation failure returns
// false with the table wholly unmodified.
func (t *Table[K, V]) resize(newCapacity int) bool {
	newStates := t.allocator.AllocStates(stateBytes(newCapacity))
	if newStates == nil {
		return false
	}
	newSlots := t.allocator.AllocSlots(newCapacity)
	if newSlots == nil {
		t.allocator.FreeStates(newStates)
		return false
	}

	oldStates, oldSlots, oldCapacity := t.states, t.slots, t.capacity
	t.states = stateVec{bytes: newStates}
	t.slots = newSlots
	t.capacity = newCapacity
	t.count = 0

	if debug {
		fmt.Printf("resize: capacity=%d->%d\n", oldCapacity, newCapacity)
	}

	// Put cannot recurse into another resize here: the migrated count never
	// exceeds 3/4 of the old capacity, which is at most 3/8 of the new.
	for i := 0; i < oldCapacity; i++ {
		if oldStates.get(i) != stateOccupied {
			continue
		}
		s := &oldSlots[i]
		t.Put(s.key, s.value)
		t.keyOps.destroy(s.key)
		t.valueOps.destroy(s.value)
	}

	t.allocator.FreeSlots(oldSlots)
	t.allocator.FreeStates(oldStates.bytes)
	return true
}

func (t *Table[K, V]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d  count=%d\n", t.capacity, t.count)
	for i := 0; i < t.capacity; i++ {
		switch t.states.get(i) {
		case stateEmpty:
			fmt.Fprintf(&buf, "  %4d: empty\n", i)
		case stateDeleted:
			fmt.Fprintf(&buf, "  %4d: deleted\n", i)
		default:
			fmt.Fprintf(&buf, "  %4d: %v\n", i, t.slots[i].key)
		}
	}
	return buf.String()
}
