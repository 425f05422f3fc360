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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashHelpers(t *testing.T) {
	require.Equal(t, HashBytes([]byte("alpha")), HashString("alpha"))
	require.Equal(t, HashBytes(nil), HashString(""))
	require.NotEqual(t, HashString("alpha"), HashString("beta"))

	require.Equal(t, HashUint64(101), HashUint64(101))
	require.NotEqual(t, HashUint64(101), HashUint64(202))

	// Sequential integers should scatter across a power-of-two mask.
	seen := make(map[uint64]bool)
	for i := uint64(0); i < 64; i++ {
		seen[HashUint64(i)&63] = true
	}
	require.Greater(t, len(seen), 32)
}
