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

func TestInsertCSR(t *testing.T) {
	t.Parallel()

	// 3x4 matrix with rows compressed:
	//   (0,1) = 5, (0,2) = 6, (1,0) = 7, row 2 empty.
	tensor, err := NewTensor(
		[]LevelType{DenseLevel, CompressedLevel},
		[]int64{3, 4},
		nil,
		0)
	require.NoError(t, err)

	require.NoError(t, tensor.Insert([]uint64{0, 1}, 5))
	require.NoError(t, tensor.Insert([]uint64{0, 2}, 6))
	require.NoError(t, tensor.Insert([]uint64{1, 0}, 7))

	pos, err := tensor.Positions(1)
	require.NoError(t, err)

	// Row 2 was never touched, so its boundary slot still holds the
	// zero sentinel until finalization.
	require.Equal(t, []uint64{0, 2, 3, 0}, pos.Slice())

	require.NoError(t, tensor.EndInsert())
	require.Equal(t, []uint64{0, 2, 3, 3}, pos.Slice())

	crd, _, _, err := tensor.Coordinates(1)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2, 0}, crd.Slice())
	require.Equal(t, []float64{5, 6, 7}, tensor.Values().Slice())
	require.Equal(t, uint64(3), tensor.NumEntries())

	require.NoError(t, VerifyTensor(tensor))
}

func TestInsertCSF(t *testing.T) {
	t.Parallel()

	tensor, err := NewTensor(
		[]LevelType{CompressedLevel, CompressedLevel},
		[]int64{3, 4},
		nil,
		0)
	require.NoError(t, err)

	require.NoError(t, tensor.Insert([]uint64{0, 1}, 1))
	require.NoError(t, tensor.Insert([]uint64{0, 3}, 2))
	require.NoError(t, tensor.Insert([]uint64{2, 2}, 3))
	require.NoError(t, tensor.EndInsert())

	pos0, err := tensor.Positions(0)
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 2}, pos0.Slice())

	crd0, _, _, err := tensor.Coordinates(0)
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 2}, crd0.Slice())

	pos1, err := tensor.Positions(1)
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 2, 3}, pos1.Slice())

	crd1, _, _, err := tensor.Coordinates(1)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 3, 2}, crd1.Slice())

	require.Equal(t, []float64{1, 2, 3}, tensor.Values().Slice())
	require.NoError(t, VerifyTensor(tensor))
}

func TestInsertCOO(t *testing.T) {
	t.Parallel()

	nuCompressed := NewLevelType(CompressedLevel, true, false)

	tensor, err := NewTensor(
		[]LevelType{nuCompressed, SingletonLevel},
		[]int64{10, 10},
		nil,
		0)
	require.NoError(t, err)

	require.NoError(t, tensor.Insert([]uint64{0, 3}, 1))
	require.NoError(t, tensor.Insert([]uint64{0, 7}, 2))
	require.NoError(t, tensor.Insert([]uint64{4, 2}, 3))
	require.NoError(t, tensor.EndInsert())

	pos, err := tensor.Positions(0)
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 3}, pos.Slice())

	// Both levels share one AOS buffer of coordinate rows.
	aos, err := tensor.CoordinatesBuffer()
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 3, 0, 7, 4, 2}, aos.Slice())

	crd, stride, offset, err := tensor.Coordinates(1)
	require.NoError(t, err)
	require.Equal(t, uint64(2), stride)
	require.Equal(t, uint64(1), offset)
	v, err := crd.Get(1*stride + offset)
	require.NoError(t, err)
	require.Equal(t, uint64(7), v)

	require.Equal(t, []float64{1, 2, 3}, tensor.Values().Slice())
	require.NoError(t, VerifyTensor(tensor))
}

func TestInsertDenseInnermost(t *testing.T) {
	t.Parallel()

	tensor, err := NewTensor(
		[]LevelType{CompressedLevel, DenseLevel},
		[]int64{4, 2},
		nil,
		0)
	require.NoError(t, err)

	require.NoError(t, tensor.Insert([]uint64{1, 0}, 5))
	require.NoError(t, tensor.Insert([]uint64{1, 1}, 6))
	require.NoError(t, tensor.Insert([]uint64{3, 1}, 7))
	require.NoError(t, tensor.EndInsert())

	crd, _, _, err := tensor.Coordinates(0)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 3}, crd.Slice())

	// Each stored outer coordinate owns a full dense stretch.
	require.Equal(t, []float64{5, 6, 0, 7}, tensor.Values().Slice())
	require.NoError(t, VerifyTensor(tensor))
}

func TestInsertAllDense(t *testing.T) {
	t.Parallel()

	tensor, err := NewTensor(
		[]LevelType{DenseLevel, DenseLevel},
		[]int64{2, 3},
		nil,
		0)
	require.NoError(t, err)

	require.NoError(t, tensor.Insert([]uint64{0, 2}, 1))
	require.NoError(t, tensor.Insert([]uint64{1, 1}, 2))
	require.NoError(t, tensor.EndInsert())

	require.Equal(t, []float64{0, 0, 1, 0, 2, 0}, tensor.Values().Slice())
	require.NoError(t, VerifyTensor(tensor))
}

func TestInsertDuplicate(t *testing.T) {
	t.Parallel()

	tensor, err := NewTensor(
		[]LevelType{DenseLevel, CompressedLevel},
		[]int64{3, 4},
		nil,
		0)
	require.NoError(t, err)

	require.NoError(t, tensor.Insert([]uint64{0, 1}, 5))
	require.NoError(t, tensor.Insert([]uint64{0, 1}, 9))
	require.NoError(t, tensor.EndInsert())

	// The repeated tuple does not grow the segment; the last value
	// wins.
	crd, _, _, err := tensor.Coordinates(1)
	require.NoError(t, err)
	require.Equal(t, []uint64{1}, crd.Slice())
	require.Equal(t, []float64{9}, tensor.Values().Slice())

	require.NoError(t, VerifyTensor(tensor))
}

func TestInsertShapeMismatch(t *testing.T) {
	t.Parallel()

	tensor, err := NewTensor(
		[]LevelType{DenseLevel, CompressedLevel},
		[]int64{3, 4},
		nil,
		0)
	require.NoError(t, err)

	err = tensor.Insert([]uint64{0}, 1)
	var shapeErr *ShapeMismatchError
	require.ErrorAs(t, err, &shapeErr)
}

func TestEndInsertEmpty(t *testing.T) {
	t.Parallel()

	tensor, err := NewTensor(
		[]LevelType{DenseLevel, CompressedLevel},
		[]int64{3, 4},
		nil,
		0)
	require.NoError(t, err)
	require.NoError(t, tensor.EndInsert())

	pos, err := tensor.Positions(1)
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 0, 0, 0}, pos.Slice())
	require.NoError(t, VerifyTensor(tensor))
}

func BenchmarkInsertCSR(b *testing.B) {
	const rows = 1024

	for i := 0; i < b.N; i++ {
		tensor, err := NewTensor(
			[]LevelType{DenseLevel, CompressedLevel},
			[]int64{rows, rows},
			nil,
			0)
		if err != nil {
			b.Fatal(err)
		}
		for r := uint64(0); r < rows; r++ {
			for c := r % 7; c < rows; c += 7 {
				if err := tensor.Insert([]uint64{r, c}, float64(r+c)); err != nil {
					b.Fatal(err)
				}
			}
		}
		if err := tensor.EndInsert(); err != nil {
			b.Fatal(err)
		}
	}
}
