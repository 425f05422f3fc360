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
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// The table never hashes keys itself; callers supply KeyOps.Hash. The
// helpers below cover the common primitive shapes so a caller building
// KeyOps for byte, string or integer keys doesn't have to hand-roll a hash
// function. All of them are xxHash64.

// HashBytes hashes b. Suitable as the Hash capability for byte-slice keys.
func HashBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// HashString hashes s without copying it.
func HashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// HashUint64 hashes the fixed-width little-endian encoding of v. Useful
// for integer keys, whose raw bit patterns make poor hash values under a
// power-of-two mask.
func HashUint64(v uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return xxhash.Sum64(b[:])
}
