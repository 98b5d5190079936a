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

func TestBufferAppend(t *testing.T) {
	t.Parallel()

	b := NewBuffer[uint64](0)
	require.Equal(t, uint64(0), b.Len())
	require.Equal(t, uint64(0), b.Cap())

	for i := uint64(0); i < 100; i++ {
		b.Append(i * 2)
	}
	require.Equal(t, uint64(100), b.Len())
	require.GreaterOrEqual(t, b.Cap(), b.Len())

	for i := uint64(0); i < 100; i++ {
		v, err := b.Get(i)
		require.NoError(t, err)
		require.Equal(t, i*2, v)
	}
}

func TestBufferOutOfBounds(t *testing.T) {
	t.Parallel()

	b := NewBuffer[uint64](8)
	b.Append(1)

	t.Run("get", func(t *testing.T) {
		_, err := b.Get(1)
		var oobErr *IndexOutOfBoundsError
		require.ErrorAs(t, err, &oobErr)
		require.False(t, oobErr.IsFatal())
	})

	t.Run("set", func(t *testing.T) {
		err := b.Set(1, 42)
		var oobErr *IndexOutOfBoundsError
		require.ErrorAs(t, err, &oobErr)
	})

	t.Run("spare capacity is not addressable", func(t *testing.T) {
		// Capacity is 8 but logical length is 1.
		_, err := b.Get(7)
		require.Error(t, err)
	})
}

func TestBufferAppendRepeated(t *testing.T) {
	t.Parallel()

	b := NewBuffer[uint64](0)
	b.Append(7)
	b.AppendRepeated(3, 5)
	require.Equal(t, uint64(6), b.Len())
	require.Equal(t, []uint64{7, 3, 3, 3, 3, 3}, b.Slice())

	b.AppendRepeated(9, 0)
	require.Equal(t, uint64(6), b.Len())
}

func TestBufferEnsureCapacity(t *testing.T) {
	t.Parallel()

	b := NewBuffer[uint64](0)
	b.Append(1)
	b.Append(2)

	b.EnsureCapacity(100)
	require.GreaterOrEqual(t, b.Cap(), uint64(100))
	require.Equal(t, []uint64{1, 2}, b.Slice())

	// Never shrinks.
	prevCap := b.Cap()
	b.EnsureCapacity(1)
	require.Equal(t, prevCap, b.Cap())
}

func TestBufferShrinkToFit(t *testing.T) {
	t.Parallel()

	t.Run("view when n fits capacity", func(t *testing.T) {
		b := NewBuffer[uint64](8)
		b.Append(1)
		b.Append(2)

		view := b.ShrinkToFit(2)
		require.Equal(t, []uint64{1, 2}, view)

		// The view aliases the buffer's storage.
		view[0] = 42
		v, err := b.Get(0)
		require.NoError(t, err)
		require.Equal(t, uint64(42), v)
	})

	t.Run("zero-padded past logical length", func(t *testing.T) {
		b := NewBuffer[uint64](8)
		b.Append(1)

		view := b.ShrinkToFit(4)
		require.Equal(t, []uint64{1, 0, 0, 0}, view)
	})

	t.Run("reallocates when n exceeds capacity", func(t *testing.T) {
		b := NewBuffer[uint64](2)
		b.Append(1)
		b.Append(2)

		out := b.ShrinkToFit(5)
		require.Equal(t, []uint64{1, 2, 0, 0, 0}, out)

		// The copy does not alias the buffer's storage.
		out[0] = 42
		v, err := b.Get(0)
		require.NoError(t, err)
		require.Equal(t, uint64(1), v)
	})
}

func TestBufferGrowthAmortization(t *testing.T) {
	t.Parallel()

	const n = 1 << 16

	b := NewBuffer[uint64](0)
	reallocs := 0
	prevCap := b.Cap()
	for i := uint64(0); i < n; i++ {
		b.Append(i)
		if b.Cap() != prevCap {
			reallocs++
			prevCap = b.Cap()
		}
	}
	require.Equal(t, uint64(n), b.Len())

	// Doubling growth: O(log n) reallocations, not O(n).
	require.LessOrEqual(t, reallocs, 20)
}

func TestBufferClone(t *testing.T) {
	t.Parallel()

	b := NewBuffer[float64](4)
	b.Append(1.5)
	b.Append(2.5)

	c := b.Clone()
	require.Equal(t, b.Len(), c.Len())
	require.Equal(t, b.Cap(), c.Cap())

	require.NoError(t, c.Set(0, 9.5))
	v, err := b.Get(0)
	require.NoError(t, err)
	require.Equal(t, 1.5, v)
}

func TestBufferFromSlice(t *testing.T) {
	t.Parallel()

	data := []uint64{1, 2, 3}
	b := NewBufferFromSlice(data)
	require.Equal(t, uint64(3), b.Len())

	// Wrapping borrows, not copies.
	require.NoError(t, b.Set(0, 9))
	require.Equal(t, uint64(9), data[0])
}
