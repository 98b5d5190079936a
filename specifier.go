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

// StorageSpecifier carries the per-instance metadata that is not
// derivable from the physical buffers themselves: the size of every
// storage level and, for slice views, the per-dimension offset and
// stride of the window. Per-buffer logical lengths live in the
// buffers, not here, so they cannot go stale.
type StorageSpecifier struct {
	lvlSizes []uint64

	// Slice metadata, nil unless the descriptor is a slice view.
	// A slice's window sizes overwrite lvlSizes.
	dimOffsets []uint64
	dimStrides []uint64
}

func newStorageSpecifier(lvlSizes []uint64) *StorageSpecifier {
	return &StorageSpecifier{lvlSizes: slices.Clone(lvlSizes)}
}

// LvlSize returns the size of the given storage level. For a slice
// view this is the window size.
func (s *StorageSpecifier) LvlSize(lvl int) uint64 {
	return s.lvlSizes[lvl]
}

// IsSlice returns true if the specifier describes a slice view.
func (s *StorageSpecifier) IsSlice() bool {
	return s.dimOffsets != nil
}

// SliceOffset returns the window offset for the given logical
// dimension. Zero for a non-slice specifier.
func (s *StorageSpecifier) SliceOffset(dim int) uint64 {
	if s.dimOffsets == nil {
		return 0
	}
	return s.dimOffsets[dim]
}

// SliceStride returns the window stride for the given logical
// dimension. One for a non-slice specifier.
func (s *StorageSpecifier) SliceStride(dim int) uint64 {
	if s.dimStrides == nil {
		return 1
	}
	return s.dimStrides[dim]
}

// clone returns a private copy so a slice view can record its own
// window without the source observing it.
func (s *StorageSpecifier) clone() *StorageSpecifier {
	return &StorageSpecifier{
		lvlSizes:   slices.Clone(s.lvlSizes),
		dimOffsets: slices.Clone(s.dimOffsets),
		dimStrides: slices.Clone(s.dimStrides),
	}
}
