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

// SortCoordinateRows sorts count coordinate rows of width rank
// lexicographically in place, permuting values identically. crds
// holds the rows back to back (row-major); vals holds one value per
// row.
//
// Hybrid quicksort: short ranges fall back to insertion sort, longer
// ranges use median-of-three quicksort. The sort is not stable, which
// is acceptable for sparse-array semantics: rows with equal
// coordinates are duplicates of each other.
func SortCoordinateRows(count uint64, crds []uint64, vals []float64, rank uint64) {
	if rank == 0 || count < 2 {
		return
	}
	s := rowSorter{crds: crds, vals: vals, rank: rank}
	s.quickSort(0, count)
}

type rowSorter struct {
	crds []uint64
	vals []float64
	rank uint64
}

// less compares rows i and j lexicographically.
func (s *rowSorter) less(i, j uint64) bool {
	a := s.crds[i*s.rank : i*s.rank+s.rank]
	b := s.crds[j*s.rank : j*s.rank+s.rank]
	for k := uint64(0); k < s.rank; k++ {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}
	return false
}

func (s *rowSorter) swap(i, j uint64) {
	a := s.crds[i*s.rank : i*s.rank+s.rank]
	b := s.crds[j*s.rank : j*s.rank+s.rank]
	for k := uint64(0); k < s.rank; k++ {
		a[k], b[k] = b[k], a[k]
	}
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
}

// quickSort sorts rows in [lo, hi).
func (s *rowSorter) quickSort(lo, hi uint64) {
	for hi-lo > sortInsertionThreshold {
		p := s.partition(lo, hi)
		// Recurse into the smaller half, loop on the larger one to
		// bound stack depth.
		if p-lo < hi-p-1 {
			s.quickSort(lo, p)
			lo = p + 1
		} else {
			s.quickSort(p+1, hi)
			hi = p
		}
	}
	s.insertionSort(lo, hi)
}

// partition picks a median-of-three pivot, moves it to hi-1, and
// partitions [lo, hi) around it. Returns the pivot's final row.
func (s *rowSorter) partition(lo, hi uint64) uint64 {
	mid := lo + (hi-lo)/2
	if s.less(mid, lo) {
		s.swap(mid, lo)
	}
	if s.less(hi-1, lo) {
		s.swap(hi-1, lo)
	}
	if s.less(hi-1, mid) {
		s.swap(hi-1, mid)
	}
	s.swap(mid, hi-1)
	pivot := hi - 1

	i := lo
	for j := lo; j < pivot; j++ {
		if s.less(j, pivot) {
			s.swap(i, j)
			i++
		}
	}
	s.swap(i, pivot)
	return i
}

func (s *rowSorter) insertionSort(lo, hi uint64) {
	for i := lo + 1; i < hi; i++ {
		for j := i; j > lo && s.less(j, j-1); j-- {
			s.swap(j, j-1)
		}
	}
}
