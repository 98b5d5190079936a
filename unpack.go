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

// Unpack exports a coordinate-list tensor as flat arrays: nse values,
// nse coordinate rows of width rank, and the stored-element count.
//
// With staticNse == 0 the returned arrays are zero-copy views sized
// to the actual entry count. A nonzero staticNse requests
// exact-length arrays of that many rows: a view when it fits the
// buffers' capacity, a zero-padded reallocation otherwise.
//
// Unpack never re-sorts: rows come out in storage order.
func (t *TensorDescriptor) Unpack(staticNse uint64) (values []float64, coordinates []uint64, nse uint64, err error) {
	if !isCOOFromStart(t.lvlTypes) || t.lvlTypes[0].IsCompressedHi() {
		return nil, nil, 0, NewUnsupportedEncodingError(t.lvlTypes[0], "Unpack")
	}

	rank := uint64(t.Rank())
	nse = t.values.Len()

	rows := nse
	if staticNse > 0 {
		rows = staticNse
	}
	crd, _, _, err := t.Coordinates(0)
	if err != nil {
		return nil, nil, 0, err
	}
	return t.values.ShrinkToFit(rows), crd.ShrinkToFit(rows * rank), nse, nil
}

// UnpackBatched exports a batched coordinate-list tensor into padded
// arrays: one slab of maxNse rows per batch cell, with each cell's
// run copied to the front of its slab and the remaining slots left at
// zero. Returns the largest per-cell entry count.
func (t *TensorDescriptor) UnpackBatched(maxNse uint64) (values []float64, coordinates []uint64, maxCellNse uint64, err error) {
	rank := t.Rank()

	numBatched := 0
	for numBatched < rank && t.lvlTypes[numBatched].IsDense() {
		numBatched++
	}
	if numBatched == 0 || numBatched == rank {
		return nil, nil, 0, NewUnsupportedEncodingError(t.lvlTypes[0], "UnpackBatched")
	}
	if !isCOOFromStart(t.lvlTypes[numBatched:]) {
		return nil, nil, 0, NewUnsupportedEncodingError(t.lvlTypes[numBatched], "UnpackBatched")
	}

	batchedCount := uint64(1)
	for l := 0; l < numBatched; l++ {
		batchedCount *= t.spec.LvlSize(l)
	}
	unbatchedRank := uint64(rank - numBatched)

	// Positions step: compressed keeps batchedCount+1 cumulative
	// boundaries, compressed-hi a pair per cell.
	posStep := uint64(1)
	if t.lvlTypes[numBatched].IsCompressedHi() {
		posStep = 2
	}

	pos := t.positions[numBatched]
	crd, _, _, err := t.Coordinates(numBatched)
	if err != nil {
		return nil, nil, 0, err
	}
	srcVals := t.values.Slice()
	srcCrds := crd.Slice()

	values = make([]float64, batchedCount*maxNse)
	coordinates = make([]uint64, batchedCount*maxNse*unbatchedRank)

	for c := uint64(0); c < batchedCount; c++ {
		pLo, err := pos.Get(c * posStep)
		if err != nil {
			return nil, nil, 0, err
		}
		pHi, err := pos.Get(c*posStep + 1)
		if err != nil {
			return nil, nil, 0, err
		}
		n := pHi - pLo
		if n > maxNse {
			return nil, nil, 0, NewShapeMismatchError("cell entries", int(n), int(maxNse))
		}

		dst := c * maxNse
		copy(values[dst:dst+n], srcVals[pLo:pHi])
		copy(coordinates[dst*unbatchedRank:(dst+n)*unbatchedRank],
			srcCrds[pLo*unbatchedRank:pHi*unbatchedRank])

		if n > maxCellNse {
			maxCellNse = n
		}
	}
	return values, coordinates, maxCellNse, nil
}
