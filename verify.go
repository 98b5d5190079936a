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

// VerifyTensor checks the structural invariants of a finalized
// tensor:
//   - every compressed level's positions buffer has exactly
//     segments+1 entries (the linear-plus-one invariant) and its
//     entries are non-decreasing;
//   - segment boundaries stay within the level's coordinate count;
//   - within one segment of an ordered unique level, coordinates are
//     strictly increasing;
//   - the values buffer length matches the fan-out of the level
//     sequence.
//
// This should be used for testing and debugging, as it walks every
// buffer.
func VerifyTensor(t *TensorDescriptor) error {
	linear := uint64(1)
	for l, lt := range t.lvlTypes {
		switch {
		case lt.IsCompressed():
			if err := t.verifyCompressedLevel(l, linear); err != nil {
				return err
			}
			crd, stride, _, err := t.Coordinates(l)
			if err != nil {
				return err
			}
			linear = crd.Len() / stride

		case lt.IsSingleton():
			crd, stride, _, err := t.Coordinates(l)
			if err != nil {
				return err
			}
			if crd.Len()/stride != linear {
				return NewFatalErrorf(
					"level %d has %d coordinates, want %d", l, crd.Len()/stride, linear)
			}

		case lt.IsDense():
			linear *= t.spec.LvlSize(l)

		default:
			return NewUnsupportedEncodingError(lt, "VerifyTensor")
		}
	}

	if t.values.Len() != linear {
		return NewFatalErrorf("values buffer has %d entries, want %d", t.values.Len(), linear)
	}
	return nil
}

func (t *TensorDescriptor) verifyCompressedLevel(lvl int, segments uint64) error {
	pos := t.positions[lvl]
	if pos == nil {
		return NewFatalErrorf("level %d has no positions buffer", lvl)
	}
	if pos.Len() != segments+1 {
		return NewFatalErrorf(
			"level %d positions buffer has %d entries, want %d segments + 1",
			lvl, pos.Len(), segments)
	}

	crd, stride, offset, err := t.Coordinates(lvl)
	if err != nil {
		return err
	}
	crdCount := crd.Len() / stride

	prev, err := pos.Get(0)
	if err != nil {
		return err
	}
	if prev != 0 {
		return NewFatalErrorf("level %d positions buffer starts at %d, want 0", lvl, prev)
	}

	ordered := t.lvlTypes[lvl].IsOrdered() && t.lvlTypes[lvl].IsUnique()

	for i := uint64(1); i < pos.Len(); i++ {
		p, err := pos.Get(i)
		if err != nil {
			return err
		}
		if p < prev {
			return NewFatalErrorf(
				"level %d positions buffer decreases at %d: %d after %d", lvl, i, p, prev)
		}
		if p > crdCount {
			return NewFatalErrorf(
				"level %d segment end %d exceeds coordinate count %d", lvl, p, crdCount)
		}

		if ordered {
			for j := prev + 1; j < p; j++ {
				a, err := crd.Get((j-1)*stride + offset)
				if err != nil {
					return err
				}
				b, err := crd.Get(j*stride + offset)
				if err != nil {
					return err
				}
				if a >= b {
					return NewFatalErrorf(
						"level %d segment %d is not strictly increasing: %d then %d",
						lvl, i-1, a, b)
				}
			}
		}
		prev = p
	}
	return nil
}
