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
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Encoded tensor layout: a 2-byte head (version in the high nibble of
// byte 0, content flag in byte 1) followed by a CBOR array of the
// physical fields. The persisted layout is the physical buffer layout
// verbatim; no re-encoding of the storage scheme happens.
const (
	encodingVersion byte = 1
	maxVersion      byte = 0b0000_1111

	maskVersion    byte = 0b1111_0000
	maskTensorData byte = 0b0000_0001
)

var (
	// encOptions specifies how CBOR should be encoded, using Core
	// Deterministic Encoding so equal tensors encode to equal bytes.
	encOptions = cbor.EncOptions{
		IndefLength: cbor.IndefLengthForbidden,
		Sort:        cbor.SortCoreDeterministic,
		TagsMd:      cbor.TagsForbidden,
	}

	// decOptions specifies how CBOR should be decoded.
	decOptions = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
		TagsMd:      cbor.TagsForbidden,
	}

	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = decOptions.DecMode()
	if err != nil {
		panic(err)
	}
}

// encodedTensor is the CBOR shape of a persisted tensor. Positions
// and Coordinates hold one entry per level; levels without the
// corresponding buffer persist nil.
type encodedTensor struct {
	_           struct{} `cbor:",toarray"`
	LvlTypes    []uint8
	LvlSizes    []uint64
	Positions   [][]uint64
	Coordinates [][]uint64
	Values      []float64
}

// Encode writes the tensor to w. Slice views are not encodable: the
// window is read-time metadata over buffers owned by the source.
func (t *TensorDescriptor) Encode(w io.Writer) error {
	if t.IsSlice() {
		return NewEncodingError(errors.New("cannot encode a slice view"))
	}

	head := []byte{encodingVersion << 4, maskTensorData}
	if _, err := w.Write(head); err != nil {
		return NewEncodingError(err)
	}

	rank := t.Rank()
	enc := encodedTensor{
		LvlTypes:    make([]uint8, rank),
		LvlSizes:    make([]uint64, rank),
		Positions:   make([][]uint64, rank),
		Coordinates: make([][]uint64, rank),
		Values:      t.values.Slice(),
	}
	for l, lt := range t.lvlTypes {
		enc.LvlTypes[l] = uint8(lt)
		enc.LvlSizes[l] = t.spec.LvlSize(l)
		if t.positions[l] != nil {
			enc.Positions[l] = t.positions[l].Slice()
		}
		if t.coordinates[l] != nil {
			enc.Coordinates[l] = t.coordinates[l].Slice()
		}
	}

	if err := encMode.NewEncoder(w).Encode(&enc); err != nil {
		return NewEncodingError(err)
	}
	return nil
}

// Bytes returns the encoded tensor.
func (t *TensorDescriptor) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeTensor reconstructs a tensor from data produced by Encode.
// The decoded descriptor exclusively owns its buffers.
func DecodeTensor(data []byte) (*TensorDescriptor, error) {
	const headSize = 2
	if len(data) < headSize {
		return nil, NewDecodingError(errors.New("data is too short"))
	}
	if version := (data[0] & maskVersion) >> 4; version != encodingVersion {
		return nil, NewDecodingError(fmt.Errorf("unsupported encoding version %d", version))
	}
	if data[1]&maskTensorData == 0 {
		return nil, NewDecodingError(fmt.Errorf("data has invalid flag 0x%x, want 0x%x", data[1], maskTensorData))
	}

	var enc encodedTensor
	if err := decMode.Unmarshal(data[headSize:], &enc); err != nil {
		return nil, NewDecodingError(err)
	}

	rank := len(enc.LvlTypes)
	if rank == 0 {
		return nil, NewDecodingError(errors.New("tensor has no levels"))
	}
	if len(enc.LvlSizes) != rank || len(enc.Positions) != rank || len(enc.Coordinates) != rank {
		return nil, NewDecodingError(fmt.Errorf("field counts disagree on rank %d", rank))
	}

	lvlTypes := make([]LevelType, rank)
	for l, raw := range enc.LvlTypes {
		lt := LevelType(raw)
		if !lt.IsValid() {
			return nil, NewDecodingError(fmt.Errorf("invalid level type 0x%x at level %d", raw, l))
		}
		lvlTypes[l] = lt
	}

	t := &TensorDescriptor{
		lvlTypes:    lvlTypes,
		spec:        newStorageSpecifier(enc.LvlSizes),
		positions:   make([]*Buffer[uint64], rank),
		coordinates: make([]*Buffer[uint64], rank),
		values:      NewBufferFromSlice(enc.Values),
		cooStart:    cooStartOf(lvlTypes),
	}
	for l := range lvlTypes {
		if enc.Positions[l] != nil {
			t.positions[l] = NewBufferFromSlice(enc.Positions[l])
		}
		if enc.Coordinates[l] != nil {
			t.coordinates[l] = NewBufferFromSlice(enc.Coordinates[l])
		}
	}

	// A descriptor must carry every buffer its level types impose;
	// malformed data is rejected here rather than surfacing as broken
	// invariants downstream.
	for l, lt := range lvlTypes {
		if (lt.IsCompressed() || lt.IsCompressedHi()) && t.positions[l] == nil {
			return nil, NewDecodingError(fmt.Errorf("compressed level %d has no positions buffer", l))
		}
		if !lt.IsDense() {
			if _, _, _, err := t.Coordinates(l); err != nil {
				return nil, NewDecodingError(fmt.Errorf("level %d has no coordinates buffer", l))
			}
		}
	}
	return t, nil
}
