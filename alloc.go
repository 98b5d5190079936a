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

package sparten

// DynamicSize marks a dimension whose size is supplied at allocation
// time instead of being declared statically.
const DynamicSize int64 = -1

// NewTensor allocates an empty tensor for the given level-type
// sequence and shape. Dimensions declared DynamicSize take their size
// from dynSizes, in order. sizeHint, when nonzero, is the expected
// number of stored elements and steers the initial buffer capacities;
// without it a small constant seeds every variable-length buffer and
// growth is left to amortization.
//
// The returned descriptor is ready for Insert: every compressed level
// already holds its leading sentinel position (the linear-plus-one
// invariant at one boundary, zero segments) and the all-zero address
// path is reserved so the first insertion needs no special casing.
func NewTensor(lvlTypes []LevelType, shape []int64, dynSizes []uint64, sizeHint uint64) (*TensorDescriptor, error) {
	rank := len(lvlTypes)
	if rank == 0 {
		return nil, NewShapeMismatchError("levels", 0, 1)
	}
	if len(shape) != rank {
		return nil, NewShapeMismatchError("dimension sizes", len(shape), rank)
	}
	for _, lt := range lvlTypes {
		if !lt.IsValid() {
			return nil, NewUnsupportedEncodingError(lt, "NewTensor")
		}
		if lt.IsCompressedHi() {
			// Only the batched pack path builds this encoding.
			return nil, NewUnsupportedEncodingError(lt, "NewTensor")
		}
	}

	// Resolve dynamic dimension sizes.
	lvlSizes := make([]uint64, rank)
	nDyn := 0
	for l, sh := range shape {
		switch {
		case sh == DynamicSize:
			if nDyn < len(dynSizes) {
				lvlSizes[l] = dynSizes[nDyn]
			}
			nDyn++
		case sh < 0:
			return nil, NewShapeMismatchError("negative dimension sizes", 1, 0)
		default:
			lvlSizes[l] = uint64(sh)
		}
	}
	if nDyn != len(dynSizes) {
		return nil, NewShapeMismatchError("dynamic sizes", len(dynSizes), nDyn)
	}

	cooStart := cooStartOf(lvlTypes)

	// Initial capacity heuristics. All-dense tensors get the exact
	// dense volume; a size hint sizes the buffers proportionally
	// (exact for coordinate-list and CSR-like encodings); otherwise a
	// small default starts the reallocation chain.
	allDense := true
	for _, lt := range lvlTypes {
		if !lt.IsDense() {
			allDense = false
			break
		}
	}

	var posHeuristic, crdHeuristic, valHeuristic uint64
	switch {
	case allDense:
		valHeuristic = 1
		for _, sz := range lvlSizes {
			valHeuristic *= sz
		}
	case sizeHint > 0:
		switch {
		case cooStart == 0:
			posHeuristic = 2
			crdHeuristic = uint64(rank) * sizeHint
		case rank == 2 && lvlTypes[0].IsDense() && lvlTypes[1].IsCompressed():
			posHeuristic = sizeHint + 1
			crdHeuristic = sizeHint
		default:
			posHeuristic = defaultInitialCapacity
			crdHeuristic = defaultInitialCapacity
		}
		valHeuristic = sizeHint
	default:
		posHeuristic = defaultInitialCapacity
		crdHeuristic = defaultInitialCapacity
		valHeuristic = defaultInitialCapacity
	}

	t := &TensorDescriptor{
		lvlTypes:    append([]LevelType(nil), lvlTypes...),
		spec:        newStorageSpecifier(lvlSizes),
		positions:   make([]*Buffer[uint64], rank),
		coordinates: make([]*Buffer[uint64], rank),
		values:      NewBuffer[float64](valHeuristic),
		cooStart:    cooStart,
	}

	for l, lt := range lvlTypes {
		if lt.IsCompressed() {
			t.positions[l] = NewBuffer[uint64](posHeuristic)
		}
		// One coordinates buffer per non-dense level; levels inside
		// the COO region share the buffer at cooStart.
		if !lt.IsDense() && l <= cooStart {
			t.coordinates[l] = NewBuffer[uint64](crdHeuristic)
		}
	}

	// Seed the leading sentinel of every compressed level, then
	// reserve the all-zero address path down from level 0.
	for _, pos := range t.positions {
		if pos != nil {
			pos.Append(0)
		}
	}
	t.allocSchemeForLevel(0)

	return t, nil
}

// allocSchemeForLevel reserves storage for one new address path
// entering at startLvl. Dense levels compound the fan-out; the first
// compressed level gets fan-out zero-sentinel position slots
// (preserving linear-plus-one); singleton levels need nothing. If
// every level from startLvl on is dense, the values buffer grows by
// the fan-out instead.
func (t *TensorDescriptor) allocSchemeForLevel(startLvl int) {
	linear := uint64(1)
	for l := startLvl; l < t.Rank(); l++ {
		lt := t.lvlTypes[l]
		if lt.IsCompressed() {
			// Each compressed level already carries one leading zero
			// entry, so appending linear zeros keeps the desired
			// "linear + 1" length property at all times.
			t.positions[l].AppendRepeated(0, linear)
			return
		}
		if lt.IsSingleton() {
			return
		}
		linear *= t.spec.LvlSize(l)
	}
	// Reached the values array: the trailing levels are all dense, so
	// prepare for direct indexed stores.
	t.values.AppendRepeated(0, linear)
}
