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

// Per-slot states, packed 2 bits per slot. stateEmpty must be zero so that
// freshly zeroed storage reads as all-EMPTY.
//
//	   empty: 00  never written, terminates a probe search
//	occupied: 01  holds a live key/value pair
//	 deleted: 10  tombstone, logically absent but probing continues
const (
	stateEmpty    uint8 = 0b00
	stateOccupied uint8 = 0b01
	stateDeleted  uint8 = 0b10

	stateMask  uint8 = 0b11
	slotsPerByte     = 4
)

// stateBytes returns the backing size in bytes for a vector of n slot
// states.
func stateBytes(n int) int {
	return (n + slotsPerByte - 1) / slotsPerByte
}

// stateVec is a packed tri-state vector, 4 slot states per byte. The
// packing is a cache-density choice: probe loops touch the vector far more
// often than the slot array, and 2 bits per slot keeps the whole vector of
// a modest table inside a couple of cache lines.
type stateVec struct {
	bytes []uint8
}

func (v stateVec) get(i int) uint8 {
	return (v.bytes[i>>2] >> uint((i&3)<<1)) & stateMask
}

func (v stateVec) set(i int, s uint8) {
	shift := uint((i & 3) << 1)
	v.bytes[i>>2] = v.bytes[i>>2]&^(stateMask<<shift) | s<<shift
}
