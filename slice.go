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

import "slices"

// ExtractSlice derives a view over a rectangular sub-region of the
// tensor. Per logical dimension the triple (offset, size, stride)
// selects the window.
//
// No data is copied or re-laid-out: the view shares every buffer with
// the source and records the window in a private storage specifier;
// consumers that understand slice metadata apply it at read time. A
// view must never mutate the shared buffers, and the source must not
// be under active insertion.
func (t *TensorDescriptor) ExtractSlice(offsets, sizes, strides []uint64) (*TensorDescriptor, error) {
	rank := t.Rank()
	if len(offsets) != rank {
		return nil, NewShapeMismatchError("offsets", len(offsets), rank)
	}
	if len(sizes) != rank {
		return nil, NewShapeMismatchError("sizes", len(sizes), rank)
	}
	if len(strides) != rank {
		return nil, NewShapeMismatchError("strides", len(strides), rank)
	}

	spec := t.spec.clone()
	spec.dimOffsets = slices.Clone(offsets)
	spec.dimStrides = slices.Clone(strides)
	// The window size overwrites the level size, as consumers query
	// one size per level regardless of slicing.
	spec.lvlSizes = slices.Clone(sizes)

	return &TensorDescriptor{
		lvlTypes:    slices.Clone(t.lvlTypes),
		spec:        spec,
		positions:   slices.Clone(t.positions),
		coordinates: slices.Clone(t.coordinates),
		values:      t.values,
		cooStart:    t.cooStart,
	}, nil
}

// SliceOffset returns the slice window offset of the given logical
// dimension.
func (t *TensorDescriptor) SliceOffset(dim int) uint64 {
	return t.spec.SliceOffset(dim)
}

// SliceStride returns the slice window stride of the given logical
// dimension.
func (t *TensorDescriptor) SliceStride(dim int) uint64 {
	return t.spec.SliceStride(dim)
}
