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

//go:build invariants

package hashtable

import "fmt"

const invariants = true

// checkInvariants runs after every mutation under the invariants build tag.
// It verifies that the state vector and count agree, that the load-factor
// bound holds and that every occupied slot's key can be found through Get.
func (t *Table[K, V]) checkInvariants() {
	var occupied int
	for i := 0; i < t.capacity; i++ {
		switch s := t.states.get(i); s {
		case stateEmpty, stateDeleted:
		case stateOccupied:
			occupied++
			if _, ok := t.Get(t.slots[i].key); !ok {
				panic(fmt.Sprintf("invariant failed: slot(%d): %v not found\n%s",
					i, t.slots[i].key, t.debugString()))
			}
		default:
			panic(fmt.Sprintf("invariant failed: slot(%d): invalid state %02b\n%s",
				i, s, t.debugString()))
		}
	}

	if occupied != t.count {
		panic(fmt.Sprintf("invariant failed: found %d occupied slots, but count is %d\n%s",
			occupied, t.count, t.debugString()))
	}
	if maxLoadDen*t.count > maxLoadNum*t.capacity {
		panic(fmt.Sprintf("invariant failed: count %d exceeds load factor bound for capacity %d\n%s",
			t.count, t.capacity, t.debugString()))
	}
}
