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
	"fmt"
	"strings"
)

// PrintTensor prints the tensor's physical layout to stdout.
func PrintTensor(t *TensorDescriptor) {
	fmt.Println(strings.Join(DumpTensor(t), "\n"))
}

// DumpTensor returns a human-readable dump of the tensor's physical
// layout, one line per level plus one for the values buffer.
func DumpTensor(t *TensorDescriptor) []string {
	var dumps []string

	for l, lt := range t.lvlTypes {
		line := fmt.Sprintf("level %d, %s, size %d", l, lt, t.spec.LvlSize(l))
		if t.spec.IsSlice() {
			line += fmt.Sprintf(", slice [offset %d, stride %d]",
				t.spec.SliceOffset(l), t.spec.SliceStride(l))
		}
		if t.positions[l] != nil {
			line += fmt.Sprintf(", positions %v", t.positions[l].Slice())
		}
		if crd, stride, _, err := t.Coordinates(l); err == nil && l <= t.cooStart {
			if stride > 1 {
				line += fmt.Sprintf(", coordinates %v (stride %d)", crd.Slice(), stride)
			} else {
				line += fmt.Sprintf(", coordinates %v", crd.Slice())
			}
		}
		dumps = append(dumps, line)
	}

	dumps = append(dumps, fmt.Sprintf("values %v", t.values.Slice()))
	return dumps
}
