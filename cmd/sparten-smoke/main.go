/*
 * Sparten - Sparse Multidimensional Array Storage
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command sparten-smoke exercises the storage engine end to end with
// randomized tensors: insertion, finalization, invariant verification,
// encode/decode round-trips and digest comparison. It runs until the
// requested number of iterations completes or an invariant breaks.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/onflow/sparten"
)

func main() {
	var iterations int
	var maxSize uint64
	var seedHex string
	var verbose bool

	flag.IntVar(&iterations, "n", 100, "number of random tensors to exercise")
	flag.Uint64Var(&maxSize, "maxsize", 64, "max size per dimension")
	flag.StringVar(&seedHex, "seed", "", "seed for prng in hex (default is Unix time)")
	flag.BoolVar(&verbose, "v", false, "dump every tensor")

	flag.Parse()

	seed := time.Now().UnixNano()
	if len(seedHex) != 0 {
		var err error
		seed, err = strconv.ParseInt(strings.ReplaceAll(seedHex, "0x", ""), 16, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to parse seed flag (hex string): %s\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("seed 0x%x\n", seed)

	r := rand.New(rand.NewSource(seed))

	for i := 0; i < iterations; i++ {
		if err := runOnce(r, maxSize, verbose); err != nil {
			fmt.Fprintf(os.Stderr, "iteration %d failed: %s\n", i, err)
			os.Exit(1)
		}
	}
	fmt.Printf("%d tensors exercised without invariant violations\n", iterations)
}

func runOnce(r *rand.Rand, maxSize uint64, verbose bool) error {
	lvlTypes, shape := randomEncoding(r, maxSize)

	tensor, err := sparten.NewTensor(lvlTypes, shape, nil, 0)
	if err != nil {
		return err
	}

	for _, e := range randomElements(r, shape) {
		if err := tensor.Insert(e.coords, e.value); err != nil {
			return err
		}
	}
	if err := tensor.EndInsert(); err != nil {
		return err
	}
	if err := sparten.VerifyTensor(tensor); err != nil {
		return err
	}

	if verbose {
		sparten.PrintTensor(tensor)
	}

	data, err := tensor.Bytes()
	if err != nil {
		return err
	}
	decoded, err := sparten.DecodeTensor(data)
	if err != nil {
		return err
	}
	if err := sparten.VerifyTensor(decoded); err != nil {
		return err
	}

	data2, err := decoded.Bytes()
	if err != nil {
		return err
	}
	if !bytes.Equal(data, data2) {
		return fmt.Errorf("re-encoding changed the byte representation")
	}

	d1, err := sparten.DigestTensor(tensor)
	if err != nil {
		return err
	}
	d2, err := sparten.DigestTensor(decoded)
	if err != nil {
		return err
	}
	if d1 != d2 {
		return fmt.Errorf("digest changed across an encode/decode round-trip")
	}

	f1, err := tensor.Fingerprint(0)
	if err != nil {
		return err
	}
	f2, err := decoded.Fingerprint(0)
	if err != nil {
		return err
	}
	if f1 != f2 {
		return fmt.Errorf("fingerprint changed across an encode/decode round-trip")
	}
	return nil
}

type element struct {
	coords []uint64
	value  float64
}

// randomEncoding picks a rank, a level-type sequence the insertion
// path supports, and a shape.
func randomEncoding(r *rand.Rand, maxSize uint64) ([]sparten.LevelType, []int64) {
	rank := 1 + r.Intn(3)
	lvlTypes := make([]sparten.LevelType, rank)
	for l := range lvlTypes {
		switch r.Intn(2) {
		case 0:
			lvlTypes[l] = sparten.DenseLevel
		default:
			lvlTypes[l] = sparten.CompressedLevel
		}
	}

	shape := make([]int64, rank)
	for d := range shape {
		shape[d] = 1 + int64(r.Intn(int(maxSize)))
	}
	return lvlTypes, shape
}

// randomElements draws a handful of distinct coordinate tuples and
// returns them in the lexicographic order insertion requires.
func randomElements(r *rand.Rand, shape []int64) []element {
	count := r.Intn(32)

	seen := make(map[string]struct{}, count)
	elements := make([]element, 0, count)
	for len(elements) < count {
		coords := make([]uint64, len(shape))
		for d, sz := range shape {
			coords[d] = uint64(r.Int63n(sz))
		}
		key := fmt.Sprint(coords)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		elements = append(elements, element{coords: coords, value: r.Float64()})
	}

	sort.Slice(elements, func(i, j int) bool {
		a, b := elements[i].coords, elements[j].coords
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	return elements
}
