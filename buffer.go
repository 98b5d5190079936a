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

// Buffer is a growable array with a logical-length/capacity split.
// The underlying allocation always spans the full capacity and is
// zero-initialized past the logical length, so exported views never
// leak stale data.
type Buffer[T any] struct {
	data []T // len(data) is the capacity
	size uint64
}

// NewBuffer returns a buffer with the given capacity and zero length.
func NewBuffer[T any](capacity uint64) *Buffer[T] {
	return &Buffer[T]{data: make([]T, capacity)}
}

// NewBufferFromSlice wraps an existing slice without copying. The
// buffer's logical length and capacity both equal len(data).
func NewBufferFromSlice[T any](data []T) *Buffer[T] {
	return &Buffer[T]{data: data, size: uint64(len(data))}
}

// Len returns the logical length.
func (b *Buffer[T]) Len() uint64 {
	return b.size
}

// Cap returns the capacity of the underlying allocation.
func (b *Buffer[T]) Cap() uint64 {
	return uint64(len(b.data))
}

// Get returns the element at index.
func (b *Buffer[T]) Get(index uint64) (T, error) {
	if index >= b.size {
		var zero T
		return zero, NewIndexOutOfBoundsError(index, b.size)
	}
	return b.data[index], nil
}

// Set overwrites the element at index.
func (b *Buffer[T]) Set(index uint64, v T) error {
	if index >= b.size {
		return NewIndexOutOfBoundsError(index, b.size)
	}
	b.data[index] = v
	return nil
}

// EnsureCapacity grows the underlying allocation to hold at least n
// elements, preserving contents. Capacity at least doubles on every
// reallocation, which keeps a chain of appends amortized O(1).
func (b *Buffer[T]) EnsureCapacity(n uint64) {
	if n <= uint64(len(b.data)) {
		return
	}
	newCap := uint64(len(b.data)) * 2
	if newCap < n {
		newCap = n
	}
	if newCap < defaultInitialCapacity {
		newCap = defaultInitialCapacity
	}
	grown := make([]T, newCap)
	copy(grown, b.data[:b.size])
	b.data = grown
}

// Append appends one element.
func (b *Buffer[T]) Append(v T) {
	b.EnsureCapacity(b.size + 1)
	b.data[b.size] = v
	b.size++
}

// AppendRepeated appends count copies of v. Segment initialization
// appends runs of identical sentinel values, so this is a distinct
// primitive rather than a loop over Append.
func (b *Buffer[T]) AppendRepeated(v T, count uint64) {
	b.EnsureCapacity(b.size + count)
	for i := uint64(0); i < count; i++ {
		b.data[b.size+i] = v
	}
	b.size += count
}

// ShrinkToFit returns a slice of exactly n elements: a zero-copy view
// over the buffer when n fits the current capacity, otherwise a fresh
// zero-padded copy of the contents.
func (b *Buffer[T]) ShrinkToFit(n uint64) []T {
	if n <= uint64(len(b.data)) {
		return b.data[:n]
	}
	out := make([]T, n)
	copy(out, b.data[:b.size])
	return out
}

// Slice returns the logical contents as a view over the first Len()
// elements. The view aliases the buffer's storage.
func (b *Buffer[T]) Slice() []T {
	return b.data[:b.size]
}

// Clone returns a deep copy with the same length and capacity.
func (b *Buffer[T]) Clone() *Buffer[T] {
	data := make([]T, len(b.data))
	copy(data, b.data)
	return &Buffer[T]{data: data, size: b.size}
}
