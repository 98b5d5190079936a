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

// TensorDescriptor binds a level-type sequence, a storage specifier
// and the physical buffers of one sparse tensor into a single handle.
//
// Buffer layout per level:
//   - dense levels own no buffer;
//   - compressed levels own a positions buffer and a coordinates
//     buffer;
//   - singleton levels own a coordinates buffer.
//
// Levels in the trailing coordinate-list region (compressed followed
// only by singletons) share one array-of-structs coordinate buffer,
// stored at the region's first level, with one row of
// rank-cooStart coordinates per stored element.
//
// A descriptor owns its buffers exclusively unless it was produced by
// ExtractSlice, in which case the buffers are shared with the source
// and only the specifier is private.
type TensorDescriptor struct {
	lvlTypes    []LevelType
	spec        *StorageSpecifier
	positions   []*Buffer[uint64] // per level, nil unless compressed
	coordinates []*Buffer[uint64] // per level, nil for dense and inner COO levels
	values      *Buffer[float64]
	cooStart    int // first level of the trailing COO region, Rank() if none
}

// Rank returns the number of storage levels.
func (t *TensorDescriptor) Rank() int {
	return len(t.lvlTypes)
}

// LvlType returns the level type of the given level.
func (t *TensorDescriptor) LvlType(lvl int) LevelType {
	return t.lvlTypes[lvl]
}

// LevelTypes returns a copy of the level-type sequence.
func (t *TensorDescriptor) LevelTypes() []LevelType {
	return slices.Clone(t.lvlTypes)
}

// LvlSize returns the size of the given level.
func (t *TensorDescriptor) LvlSize(lvl int) uint64 {
	return t.spec.LvlSize(lvl)
}

// Specifier returns the descriptor's storage specifier.
func (t *TensorDescriptor) Specifier() *StorageSpecifier {
	return t.spec
}

// IsSlice returns true if the descriptor is a slice view over another
// descriptor's buffers.
func (t *TensorDescriptor) IsSlice() bool {
	return t.spec.IsSlice()
}

// Positions returns the positions buffer of the given level, or an
// UnsupportedEncodingError if the level imposes none.
func (t *TensorDescriptor) Positions(lvl int) (*Buffer[uint64], error) {
	if t.positions[lvl] == nil {
		return nil, NewUnsupportedEncodingError(t.lvlTypes[lvl], "Positions")
	}
	return t.positions[lvl], nil
}

// Coordinates returns the coordinates buffer holding the given
// level's coordinates together with the row stride and the level's
// column offset within a row. Levels outside the COO region have
// stride 1 and offset 0.
func (t *TensorDescriptor) Coordinates(lvl int) (buf *Buffer[uint64], stride, offset uint64, err error) {
	if lvl >= t.cooStart {
		buf = t.coordinates[t.cooStart]
		stride = uint64(t.Rank() - t.cooStart)
		offset = uint64(lvl - t.cooStart)
	} else {
		buf = t.coordinates[lvl]
		stride = 1
	}
	if buf == nil {
		return nil, 0, 0, NewUnsupportedEncodingError(t.lvlTypes[lvl], "Coordinates")
	}
	return buf, stride, offset, nil
}

// CoordinatesBuffer returns the shared AOS coordinate buffer of the
// trailing COO region, or an UnsupportedEncodingError if the tensor
// has none.
func (t *TensorDescriptor) CoordinatesBuffer() (*Buffer[uint64], error) {
	if t.cooStart >= t.Rank() {
		return nil, NewUnsupportedEncodingError(t.lvlTypes[t.Rank()-1], "CoordinatesBuffer")
	}
	return t.coordinates[t.cooStart], nil
}

// Values returns the values buffer.
func (t *TensorDescriptor) Values() *Buffer[float64] {
	return t.values
}

// NumEntries returns the number of stored elements.
func (t *TensorDescriptor) NumEntries() uint64 {
	return t.values.Len()
}

// Clone returns a deep copy of the descriptor with exclusively owned
// buffers. Cloning a slice view materializes the sharing: the clone
// gets its own copies of the shared buffers.
func (t *TensorDescriptor) Clone() *TensorDescriptor {
	positions := make([]*Buffer[uint64], len(t.positions))
	for l, pos := range t.positions {
		if pos != nil {
			positions[l] = pos.Clone()
		}
	}
	coordinates := make([]*Buffer[uint64], len(t.coordinates))
	for l, crd := range t.coordinates {
		if crd != nil {
			coordinates[l] = crd.Clone()
		}
	}
	return &TensorDescriptor{
		lvlTypes:    slices.Clone(t.lvlTypes),
		spec:        t.spec.clone(),
		positions:   positions,
		coordinates: coordinates,
		values:      t.values.Clone(),
		cooStart:    t.cooStart,
	}
}
