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

import "strings"

// LevelType classifies one storage level of a tensor: a format plus
// two property bits. The format decides which physical buffers the
// level owns; the properties describe coordinate order and uniqueness
// within a segment.
type LevelType uint8

// Format masks: exactly one format bit is set in a valid LevelType.
const (
	maskLevelDense        LevelType = 0b0000_0100
	maskLevelCompressed   LevelType = 0b0000_1000
	maskLevelSingleton    LevelType = 0b0001_0000
	maskLevelCompressedHi LevelType = 0b0010_0000

	maskLevelFormat LevelType = 0b0011_1100
)

// Property masks: the low 2 bits invert the defaults (ordered, unique).
const (
	maskLevelNonUnique  LevelType = 0b0000_0001
	maskLevelNonOrdered LevelType = 0b0000_0010
)

// Common level types. Per-segment coordinates are ordered and unique
// unless a property bit says otherwise.
const (
	DenseLevel        = maskLevelDense
	CompressedLevel   = maskLevelCompressed
	SingletonLevel    = maskLevelSingleton
	CompressedHiLevel = maskLevelCompressedHi
)

// NewLevelType returns the given format with the ordered/unique
// property bits applied.
func NewLevelType(format LevelType, ordered, unique bool) LevelType {
	lt := format & maskLevelFormat
	if !ordered {
		lt |= maskLevelNonOrdered
	}
	if !unique {
		lt |= maskLevelNonUnique
	}
	return lt
}

func (lt LevelType) IsDense() bool {
	return lt&maskLevelDense != 0
}

func (lt LevelType) IsCompressed() bool {
	return lt&maskLevelCompressed != 0
}

func (lt LevelType) IsSingleton() bool {
	return lt&maskLevelSingleton != 0
}

func (lt LevelType) IsCompressedHi() bool {
	return lt&maskLevelCompressedHi != 0
}

func (lt LevelType) IsOrdered() bool {
	return lt&maskLevelNonOrdered == 0
}

func (lt LevelType) IsUnique() bool {
	return lt&maskLevelNonUnique == 0
}

// IsValid returns true if exactly one format bit is set.
func (lt LevelType) IsValid() bool {
	f := lt & maskLevelFormat
	return f != 0 && f&(f-1) == 0
}

func (lt LevelType) String() string {
	var s string
	switch {
	case lt.IsDense():
		s = "dense"
	case lt.IsCompressed():
		s = "compressed"
	case lt.IsSingleton():
		s = "singleton"
	case lt.IsCompressedHi():
		s = "compressed-hi"
	default:
		return "undefined"
	}

	var props []string
	if !lt.IsOrdered() {
		props = append(props, "nonordered")
	}
	if !lt.IsUnique() {
		props = append(props, "nonunique")
	}
	if len(props) > 0 {
		s += "(" + strings.Join(props, ",") + ")"
	}
	return s
}

// cooStartOf returns the first level of the trailing coordinate-list
// region: a compressed level followed only by singleton levels. All
// levels in that region share one AOS coordinate buffer. Returns
// len(lvlTypes) if there is no such region.
func cooStartOf(lvlTypes []LevelType) int {
	rank := len(lvlTypes)
	for l := 0; l < rank-1; l++ {
		if !lvlTypes[l].IsCompressed() && !lvlTypes[l].IsCompressedHi() {
			continue
		}
		isCOO := true
		for _, lt := range lvlTypes[l+1:] {
			if !lt.IsSingleton() {
				isCOO = false
				break
			}
		}
		if isCOO {
			return l
		}
	}
	return rank
}

// isCOOFromStart returns true if the whole level sequence is a
// coordinate-list encoding: one compressed level at level 0, followed
// only by singleton levels (none for rank 1).
func isCOOFromStart(lvlTypes []LevelType) bool {
	if len(lvlTypes) == 0 {
		return false
	}
	if !lvlTypes[0].IsCompressed() && !lvlTypes[0].IsCompressedHi() {
		return false
	}
	for _, lt := range lvlTypes[1:] {
		if !lt.IsSingleton() {
			return false
		}
	}
	return true
}
