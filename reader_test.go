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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// inMemoryReader serves fixed coordinate rows and values, in dimension
// order. A nonzero nseOverride misreports the element count, for
// exercising the ingestion validation.
type inMemoryReader struct {
	dimSizes    []uint64
	rows        [][]uint64
	vals        []float64
	sorted      bool
	closed      bool
	nseOverride uint64
}

var _ TensorReader = &inMemoryReader{}

func (r *inMemoryReader) NonzeroCount() (uint64, error) {
	if r.nseOverride != 0 {
		return r.nseOverride, nil
	}
	return uint64(len(r.vals)), nil
}

func (r *inMemoryReader) DimSizes() ([]uint64, error) {
	return r.dimSizes, nil
}

func (r *inMemoryReader) ReadInto(dim2lvl []uint64, coordinates *Buffer[uint64], values *Buffer[float64]) (bool, error) {
	lvlRow := make([]uint64, len(dim2lvl))
	for i, row := range r.rows {
		for d, l := range dim2lvl {
			lvlRow[l] = row[d]
		}
		for _, c := range lvlRow {
			coordinates.Append(c)
		}
		values.Append(r.vals[i])
	}
	return r.sorted, nil
}

func (r *inMemoryReader) Close() error {
	r.closed = true
	return nil
}

func TestNewTensorFromReader(t *testing.T) {
	t.Parallel()

	t.Run("unsorted input gets sorted", func(t *testing.T) {
		r := &inMemoryReader{
			dimSizes: []uint64{3, 4},
			rows:     [][]uint64{{1, 0}, {0, 2}, {0, 1}},
			vals:     []float64{7, 6, 5},
		}

		tensor, err := NewTensorFromReader(r, cooLevelTypes2D(), []uint64{0, 1})
		require.NoError(t, err)
		require.True(t, r.closed)

		pos, err := tensor.Positions(0)
		require.NoError(t, err)
		require.Equal(t, []uint64{0, 3}, pos.Slice())

		aos, err := tensor.CoordinatesBuffer()
		require.NoError(t, err)
		require.Equal(t, []uint64{0, 1, 0, 2, 1, 0}, aos.Slice())
		require.Equal(t, []float64{5, 6, 7}, tensor.Values().Slice())

		require.NoError(t, VerifyTensor(tensor))
	})

	t.Run("sorted input stays put", func(t *testing.T) {
		r := &inMemoryReader{
			dimSizes: []uint64{3, 4},
			rows:     [][]uint64{{1, 0}, {0, 2}},
			vals:     []float64{7, 6},
			sorted:   true,
		}

		tensor, err := NewTensorFromReader(r, cooLevelTypes2D(), []uint64{0, 1})
		require.NoError(t, err)

		aos, err := tensor.CoordinatesBuffer()
		require.NoError(t, err)
		require.Equal(t, []uint64{1, 0, 0, 2}, aos.Slice())
		require.Equal(t, []float64{7, 6}, tensor.Values().Slice())
	})

	t.Run("dimension permutation", func(t *testing.T) {
		// Dimension d maps to level dim2lvl[d]: the tensor stores the
		// transpose of the source.
		r := &inMemoryReader{
			dimSizes: []uint64{3, 4},
			rows:     [][]uint64{{2, 1}},
			vals:     []float64{9},
		}

		tensor, err := NewTensorFromReader(r, cooLevelTypes2D(), []uint64{1, 0})
		require.NoError(t, err)

		require.Equal(t, uint64(4), tensor.LvlSize(0))
		require.Equal(t, uint64(3), tensor.LvlSize(1))

		aos, err := tensor.CoordinatesBuffer()
		require.NoError(t, err)
		require.Equal(t, []uint64{1, 2}, aos.Slice())
	})

	t.Run("errors", func(t *testing.T) {
		r := &inMemoryReader{dimSizes: []uint64{3, 4}}

		_, err := NewTensorFromReader(r, []LevelType{DenseLevel, CompressedLevel}, []uint64{0, 1})
		var encErr *UnsupportedEncodingError
		require.ErrorAs(t, err, &encErr)

		_, err = NewTensorFromReader(r, cooLevelTypes2D(), []uint64{0})
		var shapeErr *ShapeMismatchError
		require.ErrorAs(t, err, &shapeErr)

		_, err = NewTensorFromReader(r, cooLevelTypes2D(), []uint64{0, 5})
		require.ErrorAs(t, err, &shapeErr)
	})

	t.Run("reader is closed on failure", func(t *testing.T) {
		// The reader promises one more element than it delivers, so
		// ingestion fails after the reader was consumed.
		r := &inMemoryReader{
			dimSizes:    []uint64{3, 4},
			rows:        [][]uint64{{0, 1}},
			vals:        []float64{5},
			nseOverride: 2,
		}

		_, err := NewTensorFromReader(r, cooLevelTypes2D(), []uint64{0, 1})
		var shapeErr *ShapeMismatchError
		require.ErrorAs(t, err, &shapeErr)
		require.True(t, r.closed)
	})

	t.Run("reader is closed on early validation failure", func(t *testing.T) {
		r := &inMemoryReader{dimSizes: []uint64{3, 4}}

		_, err := NewTensorFromReader(r, cooLevelTypes2D(), []uint64{0})
		var shapeErr *ShapeMismatchError
		require.ErrorAs(t, err, &shapeErr)
		require.True(t, r.closed)
	})
}
