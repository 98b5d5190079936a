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
	"github.com/fxamacker/circlehash"
	"github.com/zeebo/blake3"
)

// DigestTensor returns the BLAKE3 digest of the encoded tensor. The
// encoding is deterministic, so equal tensors have equal digests; use
// this for integrity checks on persisted tensors.
func DigestTensor(t *TensorDescriptor) ([32]byte, error) {
	data, err := t.Bytes()
	if err != nil {
		return [32]byte{}, err
	}
	return blake3.Sum256(data), nil
}

// Fingerprint returns a fast, non-cryptographic 64-bit fingerprint of
// the encoded tensor, seeded by seed. Cheaper than DigestTensor for
// comparing tensors in tests and tooling.
func (t *TensorDescriptor) Fingerprint(seed uint64) (uint64, error) {
	data, err := t.Bytes()
	if err != nil {
		return 0, err
	}
	return circlehash.Hash64(data, seed), nil
}
