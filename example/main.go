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

// Command example walks through the hash table API with a small user
// record type: insert, lookup, update and delete, printing the table state
// along the way.
package main

import (
	"encoding/binary"
	"fmt"
	"log"

	hashtable "github.com/andrewthecodertx/Hash-Table-API"
	"github.com/cespare/xxhash/v2"
)

type userKey struct {
	id   int
	name string
}

type userValue struct {
	value    float64
	metadata string
}

func hashUserKey(k userKey) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(k.id))
	d := xxhash.New()
	d.Write(buf[:])
	d.WriteString(k.name)
	return d.Sum64()
}

func main() {
	fmt.Println("--- Generic Hash Table Demo ---")

	keyOps := hashtable.KeyOps[userKey]{
		Hash:  hashUserKey,
		Equal: func(a, b userKey) bool { return a == b },
	}

	table, err := hashtable.New(keyOps, hashtable.ValueOps[userValue]{})
	if err != nil {
		log.Fatalf("Failed to create hash table: %v", err)
	}
	defer table.Close()

	fmt.Printf("\nTable created. Initial count: %d\n", table.Len())

	fmt.Println("\nInserting data...")
	table.Put(userKey{101, "alpha"}, userValue{3.14, "First item"})
	table.Put(userKey{202, "beta"}, userValue{2.71, "Second item"})
	table.Put(userKey{303, "gamma"}, userValue{1.61, "Third item"})
	fmt.Printf("After insertions, count: %d\n", table.Len())

	fmt.Println("\nLooking up data...")
	if v, ok := table.Get(userKey{202, "beta"}); ok {
		fmt.Printf("Found key {202, 'beta'}. Value: {%.2f, %q}\n", v.value, v.metadata)
	} else {
		fmt.Println("Key {202, 'beta'} not found.")
	}
	if _, ok := table.Get(userKey{999, "omega"}); !ok {
		fmt.Println("Correctly did not find key {999, 'omega'}.")
	}

	fmt.Println("\nUpdating data...")
	table.Put(userKey{101, "alpha"}, userValue{9.81, "UPDATED first item"})
	if v, ok := table.Get(userKey{101, "alpha"}); ok {
		fmt.Printf("Looked up key {101, 'alpha'} again. New value: {%.2f, %q}\n", v.value, v.metadata)
	}
	fmt.Printf("Count after update (should be unchanged): %d\n", table.Len())

	fmt.Println("\nDeleting data...")
	if table.Delete(userKey{303, "gamma"}) {
		fmt.Println("Successfully deleted key {303, 'gamma'}.")
	} else {
		fmt.Println("Failed to delete key {303, 'gamma'}.")
	}
	if _, ok := table.Get(userKey{303, "gamma"}); !ok {
		fmt.Println("Correctly did not find deleted key.")
	}
	fmt.Printf("Count after deletion: %d\n", table.Len())

	fmt.Println("\nDestroying table.")
}
