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

// Insert appends one element to the tensor. lvlCoords holds one
// coordinate per storage level, already mapped through the level
// ordering.
//
// Caller contract, not re-verified here: insertions arrive in
// non-decreasing lexicographic order of their level coordinates. The
// storage scheme is built by appends under that assumption; an
// out-of-order insertion corrupts the segment structure silently.
//
// Inserting a coordinate tuple equal to the previous one into a
// unique compressed level is suppressed: the segment keeps its length
// and the new value overwrites the stored one.
func (t *TensorDescriptor) Insert(lvlCoords []uint64, value float64) error {
	rank := t.Rank()
	if len(lvlCoords) != rank {
		return NewShapeMismatchError("coordinates", len(lvlCoords), rank)
	}

	// parentPos is the insertion cursor: an index into the previous
	// level's address space, carried level by level.
	parentPos := uint64(0)
	appended := false
	for l := 0; l < rank; l++ {
		lt := t.lvlTypes[l]
		switch {
		case lt.IsCompressed():
			next, fresh, err := t.insertCompressed(l, parentPos, lvlCoords[l])
			if err != nil {
				return err
			}
			parentPos = next
			appended = fresh

		case lt.IsSingleton():
			// Singleton levels do not fan out: append the coordinate
			// and carry the cursor forward unchanged.
			crd, _, _, err := t.Coordinates(l)
			if err != nil {
				return err
			}
			crd.Append(lvlCoords[l])
			appended = true

		case lt.IsDense():
			parentPos = parentPos*t.spec.LvlSize(l) + lvlCoords[l]

		default:
			return NewUnsupportedEncodingError(lt, "Insert")
		}
	}

	// Reached the actual value append/store. A fully suppressed
	// insertion (same tuple as the previous one) lands on the existing
	// slot instead of growing the values buffer.
	if t.lvlTypes[rank-1].IsDense() || !appended {
		return t.values.Set(parentPos, value)
	}
	t.values.Append(value)
	return nil
}

// insertCompressed advances the cursor through one compressed level:
//
//	pstart = positions[parentPos]
//	pstop  = positions[parentPos+1]
//	if the segment is non-empty and its last coordinate equals coord,
//	the element is already present (unique levels only): the cursor
//	moves to that coordinate and nothing is appended.
//	Otherwise the segment is lazily opened at the current end of the
//	coordinate buffer, the coordinate is appended, the segment's end
//	boundary advances, and the next levels' storage is reserved for
//	the brand-new child segment.
//
// The returned flag reports whether a coordinate was appended.
func (t *TensorDescriptor) insertCompressed(lvl int, parentPos, coord uint64) (uint64, bool, error) {
	pos := t.positions[lvl]
	pstart, err := pos.Get(parentPos)
	if err != nil {
		return 0, false, err
	}
	pstop, err := pos.Get(parentPos + 1)
	if err != nil {
		return 0, false, err
	}

	crd, stride, _, err := t.Coordinates(lvl)
	if err != nil {
		return 0, false, err
	}
	msz := crd.Len() / stride

	if pstart < pstop {
		plast := pstop - 1
		if t.lvlTypes[lvl].IsUnique() {
			last, err := crd.Get(plast * stride)
			if err != nil {
				return 0, false, err
			}
			if last == coord {
				// Already present: duplicate suppressed.
				return plast, false, nil
			}
		}
	} else if lvl > 0 {
		// First entry of this segment: open it at the current end of
		// the coordinate buffer. Level 0 has a single segment that
		// always starts at zero.
		if err := pos.Set(parentPos, msz); err != nil {
			return 0, false, err
		}
	}

	if err := pos.Set(parentPos+1, msz+1); err != nil {
		return 0, false, err
	}
	crd.Append(coord)

	// Prepare the next levels "as needed": the appended coordinate
	// opens one brand-new segment below this level.
	if lvl+1 < t.Rank() {
		t.allocSchemeForLevel(lvl + 1)
	}
	return msz, true, nil
}
