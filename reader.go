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

// TensorReader is the external sparse-data source consumed by
// NewTensorFromReader. Implementations typically wrap a file in an
// exchange format; this package treats every call as an opaque,
// synchronous operation.
type TensorReader interface {
	// NonzeroCount returns the total number of stored elements.
	NonzeroCount() (uint64, error)

	// DimSizes returns the size of every logical dimension.
	DimSizes() ([]uint64, error)

	// ReadInto appends all coordinate rows (mapped through dim2lvl
	// into level order) to coordinates and all values to values.
	// Returns true if the appended rows are already sorted
	// lexicographically.
	ReadInto(dim2lvl []uint64, coordinates *Buffer[uint64], values *Buffer[float64]) (sorted bool, err error)

	// Close releases the reader.
	Close() error
}

// NewTensorFromReader ingests an external sparse-data source into a
// coordinate-list tensor: one compressed level followed only by
// singleton levels. The reader fills the shared coordinate buffer and
// the values buffer in bulk; if it reports unsorted data and the
// innermost level is ordered, the rows are sorted afterwards. The
// reader is closed in every case, success or failure.
func NewTensorFromReader(r TensorReader, lvlTypes []LevelType, dim2lvl []uint64) (*TensorDescriptor, error) {
	t, err := readTensor(r, lvlTypes, dim2lvl)
	if err != nil {
		_ = r.Close()
		return nil, err
	}
	if err := r.Close(); err != nil {
		return nil, err
	}
	return t, nil
}

func readTensor(r TensorReader, lvlTypes []LevelType, dim2lvl []uint64) (*TensorDescriptor, error) {
	rank := len(lvlTypes)
	if !isCOOFromStart(lvlTypes) || lvlTypes[0].IsCompressedHi() {
		return nil, NewUnsupportedEncodingError(lvlTypes[0], "NewTensorFromReader")
	}
	if len(dim2lvl) != rank {
		return nil, NewShapeMismatchError("dimension map entries", len(dim2lvl), rank)
	}

	nse, err := r.NonzeroCount()
	if err != nil {
		return nil, err
	}
	dimSizes, err := r.DimSizes()
	if err != nil {
		return nil, err
	}
	if len(dimSizes) != rank {
		return nil, NewShapeMismatchError("dimension sizes", len(dimSizes), rank)
	}

	// Level sizes follow the dimension-to-level mapping.
	shape := make([]int64, rank)
	for d, l := range dim2lvl {
		if l >= uint64(rank) {
			return nil, NewShapeMismatchError("dimension map target", int(l), rank-1)
		}
		shape[l] = int64(dimSizes[d])
	}

	t, err := NewTensor(lvlTypes, shape, nil, nse)
	if err != nil {
		return nil, err
	}

	crd, _, _, err := t.Coordinates(0)
	if err != nil {
		return nil, err
	}
	sorted, err := r.ReadInto(dim2lvl, crd, t.values)
	if err != nil {
		return nil, err
	}
	if crd.Len() != nse*uint64(rank) {
		return nil, NewShapeMismatchError("read coordinates", int(crd.Len()), int(nse)*rank)
	}
	if t.values.Len() != nse {
		return nil, NewShapeMismatchError("read values", int(t.values.Len()), int(nse))
	}

	if !sorted && lvlTypes[rank-1].IsOrdered() {
		SortCoordinateRows(nse, crd.Slice(), t.values.Slice(), uint64(rank))
	}

	// Close out the single compressed segment: {0, nse}.
	if err := t.positions[0].Set(1, nse); err != nil {
		return nil, err
	}
	return t, nil
}
