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

// EndInsert finalizes the tensor after a batch of insertions.
//
// Segments of a compressed level that received no entries still hold
// their positions slot at the zero sentinel written during
// allocation. EndInsert walks each such level once and copies the
// last valid boundary forward over every sentinel, so downstream
// readers see monotone, well-formed segment boundaries. Level 0 needs
// no cleanup: its single segment is always opened by the first
// insertion.
//
// After EndInsert returns the descriptor is safe for unlimited
// concurrent readers, as long as no further insertion occurs.
func (t *TensorDescriptor) EndInsert() error {
	for l, lt := range t.lvlTypes {
		if lt.IsCompressedHi() {
			return NewUnsupportedEncodingError(lt, "EndInsert")
		}
		if !lt.IsCompressed() || l == 0 {
			continue
		}

		pos := t.positions[l]
		prev, err := pos.Get(0)
		if err != nil {
			return err
		}
		for i := uint64(1); i < pos.Len(); i++ {
			v, err := pos.Get(i)
			if err != nil {
				return err
			}
			if v == 0 {
				if err := pos.Set(i, prev); err != nil {
					return err
				}
			} else {
				prev = v
			}
		}
	}
	return nil
}
