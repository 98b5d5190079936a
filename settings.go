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

var (
	// Default capacity used to seed variable-length buffers when no
	// size hint is available. Small on purpose: growth is amortized.
	defaultInitialCapacity = uint64(16)

	// Row count below which SortCoordinateRows switches from
	// quicksort to insertion sort.
	sortInsertionThreshold = uint64(20)
)

// SetDefaultInitialCapacity overrides the default seed capacity for
// variable-length buffers and returns the previous value.
func SetDefaultInitialCapacity(capacity uint64) uint64 {
	prev := defaultInitialCapacity
	defaultInitialCapacity = capacity
	return prev
}
