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

// Pack builds a coordinate-list tensor from caller-supplied flat
// arrays: nse coordinate rows of width rank (row-major) and nse
// values. The arrays are borrowed, not copied; packing may reorder
// them in place.
//
// The level-type sequence must be a coordinate-list encoding: one
// compressed level at level 0 followed only by singleton levels. The
// compressed level's positions are fixed at {0, nse}. If the
// innermost level is ordered, the rows are sorted lexicographically
// (values permuted identically) before the descriptor is built.
func Pack(lvlTypes []LevelType, dimSizes []uint64, coordinates []uint64, values []float64, nse uint64) (*TensorDescriptor, error) {
	rank := len(lvlTypes)
	if rank == 0 {
		return nil, NewShapeMismatchError("levels", 0, 1)
	}
	if len(dimSizes) != rank {
		return nil, NewShapeMismatchError("dimension sizes", len(dimSizes), rank)
	}
	if !isCOOFromStart(lvlTypes) || lvlTypes[0].IsCompressedHi() {
		return nil, NewUnsupportedEncodingError(lvlTypes[0], "Pack")
	}
	if uint64(len(coordinates)) < nse*uint64(rank) {
		return nil, NewShapeMismatchError("coordinates", len(coordinates), int(nse)*rank)
	}
	if uint64(len(values)) < nse {
		return nil, NewShapeMismatchError("values", len(values), int(nse))
	}

	if lvlTypes[rank-1].IsOrdered() {
		SortCoordinateRows(nse, coordinates, values, uint64(rank))
	}

	pos := NewBuffer[uint64](2)
	pos.Append(0)
	pos.Append(nse)

	t := &TensorDescriptor{
		lvlTypes:    append([]LevelType(nil), lvlTypes...),
		spec:        newStorageSpecifier(dimSizes),
		positions:   make([]*Buffer[uint64], rank),
		coordinates: make([]*Buffer[uint64], rank),
		values:      NewBufferFromSlice(values[:nse]),
		cooStart:    cooStartOf(lvlTypes),
	}
	t.positions[0] = pos
	t.coordinates[0] = NewBufferFromSlice(coordinates[:nse*uint64(rank)])
	return t, nil
}

// PackBatched builds a batched coordinate-list tensor: the leading
// numBatched levels are dense batch dimensions with statically known
// sizes, and each batch cell owns one slab of maxNse rows in the
// shared coordinate/value arrays. A cell's real entry count is the
// length of its slab minus the longest suffix of zero values, which
// lets irregular per-cell counts share one allocation. Note that this
// conflates an explicitly stored zero in the suffix with padding.
//
// The level after the batch dimensions decides the positions layout:
//
//   - compressed: slabs are compacted in place and the positions
//     buffer holds batchedCount+1 cumulative boundaries, preserving
//     the linear-plus-one invariant;
//   - compressed-hi: slabs stay put and the positions buffer holds a
//     {runStart, runStart+runLength} pair per cell.
func PackBatched(lvlTypes []LevelType, dimSizes []uint64, numBatched int, coordinates []uint64, values []float64, maxNse uint64) (*TensorDescriptor, error) {
	rank := len(lvlTypes)
	if len(dimSizes) != rank {
		return nil, NewShapeMismatchError("dimension sizes", len(dimSizes), rank)
	}
	if numBatched <= 0 || numBatched >= rank {
		return nil, NewShapeMismatchError("batched levels", numBatched, rank-1)
	}
	for _, lt := range lvlTypes[:numBatched] {
		if !lt.IsDense() {
			return nil, NewUnsupportedEncodingError(lt, "PackBatched")
		}
	}
	if !isCOOFromStart(lvlTypes[numBatched:]) {
		return nil, NewUnsupportedEncodingError(lvlTypes[numBatched], "PackBatched")
	}

	batchedCount := uint64(1)
	for _, sz := range dimSizes[:numBatched] {
		batchedCount *= sz
	}
	unbatchedRank := uint64(rank - numBatched)
	if uint64(len(values)) < batchedCount*maxNse {
		return nil, NewShapeMismatchError("values", len(values), int(batchedCount*maxNse))
	}
	if uint64(len(coordinates)) < batchedCount*maxNse*unbatchedRank {
		return nil, NewShapeMismatchError("coordinates", len(coordinates), int(batchedCount*maxNse*unbatchedRank))
	}

	t := &TensorDescriptor{
		lvlTypes:    append([]LevelType(nil), lvlTypes...),
		spec:        newStorageSpecifier(dimSizes),
		positions:   make([]*Buffer[uint64], rank),
		coordinates: make([]*Buffer[uint64], rank),
		cooStart:    cooStartOf(lvlTypes),
	}

	if lvlTypes[numBatched].IsCompressedHi() {
		pos := NewBuffer[uint64](batchedCount * 2)
		for c := uint64(0); c < batchedCount; c++ {
			base := c * maxNse
			pos.Append(base)
			pos.Append(base + runLength(values[base:base+maxNse]))
		}
		t.positions[numBatched] = pos
		t.coordinates[numBatched] = NewBufferFromSlice(coordinates[:batchedCount*maxNse*unbatchedRank])
		t.values = NewBufferFromSlice(values[:batchedCount*maxNse])
		return t, nil
	}

	// Plain compressed level: compact every cell's run to the front
	// so the positions buffer holds cumulative boundaries.
	pos := NewBuffer[uint64](batchedCount + 1)
	pos.Append(0)
	w := uint64(0)
	for c := uint64(0); c < batchedCount; c++ {
		base := c * maxNse
		n := runLength(values[base : base+maxNse])
		if w != base && n > 0 {
			copy(values[w:w+n], values[base:base+n])
			copy(coordinates[w*unbatchedRank:(w+n)*unbatchedRank],
				coordinates[base*unbatchedRank:(base+n)*unbatchedRank])
		}
		w += n
		pos.Append(w)
	}
	t.positions[numBatched] = pos
	t.coordinates[numBatched] = NewBufferFromSlice(coordinates[:w*unbatchedRank])
	t.values = NewBufferFromSlice(values[:w])
	return t, nil
}

// runLength returns the length of the slab minus its suffix of zero
// values.
func runLength(slab []float64) uint64 {
	n := uint64(len(slab))
	for n > 0 && slab[n-1] == 0 {
		n--
	}
	return n
}
