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

import "fmt"

type Error interface {
	// returns true if the error is fatal
	IsFatal() bool
	// and anything else that is needed to be an error
	error
}

// IndexOutOfBoundsError is returned when a buffer access is attempted
// beyond the buffer's logical length.
type IndexOutOfBoundsError struct {
	index uint64
	max   uint64
}

// NewIndexOutOfBoundsError constructs an IndexOutOfBoundsError
func NewIndexOutOfBoundsError(index, max uint64) *IndexOutOfBoundsError {
	return &IndexOutOfBoundsError{index: index, max: max}
}

func (e *IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("the given index %d is not in the acceptable range (0-%d)", e.index, e.max)
}

// IsFatal returns true if the error is fatal
func (e *IndexOutOfBoundsError) IsFatal() bool {
	return false
}

// ShapeMismatchError is returned when the number of supplied sizes,
// coordinates or slice triples does not match the tensor's rank, or
// when the dynamic-size argument count does not match the declared
// number of dynamic dimensions.
type ShapeMismatchError struct {
	what string
	got  int
	want int
}

// NewShapeMismatchError constructs a ShapeMismatchError
func NewShapeMismatchError(what string, got, want int) *ShapeMismatchError {
	return &ShapeMismatchError{what: what, got: got, want: want}
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("got %d %s, want %d", e.got, e.what, e.want)
}

// IsFatal returns true if the error is fatal
func (e *ShapeMismatchError) IsFatal() bool {
	return false
}

// UnsupportedEncodingError is returned when a level-type combination
// is not handled by the requested operation.
type UnsupportedEncodingError struct {
	lt LevelType
	op string
}

// NewUnsupportedEncodingError constructs an UnsupportedEncodingError
func NewUnsupportedEncodingError(lt LevelType, op string) *UnsupportedEncodingError {
	return &UnsupportedEncodingError{lt: lt, op: op}
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("level type %s is not supported by %s", e.lt, e.op)
}

// IsFatal returns true if the error is fatal
func (e *UnsupportedEncodingError) IsFatal() bool {
	return false
}

// EncodingError is a fatal error returned when an encoding operation fails
type EncodingError struct {
	err error
}

// NewEncodingError constructs an EncodingError
func NewEncodingError(err error) *EncodingError {
	return &EncodingError{err: err}
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding has failed: %s", e.err.Error())
}

// IsFatal returns true if the error is fatal
func (e *EncodingError) IsFatal() bool {
	return true
}

// Unwrap returns the wrapped err
func (e *EncodingError) Unwrap() error {
	return e.err
}

// DecodingError is a fatal error returned when a decoding operation fails
type DecodingError struct {
	err error
}

// NewDecodingError constructs a DecodingError
func NewDecodingError(err error) *DecodingError {
	return &DecodingError{err: err}
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decoding has failed: %s", e.err.Error())
}

// IsFatal returns true if the error is fatal
func (e *DecodingError) IsFatal() bool {
	return true
}

// Unwrap returns the wrapped err
func (e *DecodingError) Unwrap() error {
	return e.err
}

// FatalError is returned when a storage invariant is found broken,
// e.g. by VerifyTensor. A fatal error means the descriptor's physical
// buffers can no longer be trusted.
type FatalError struct {
	err error
}

// NewFatalError constructs a FatalError
func NewFatalError(err error) *FatalError {
	return &FatalError{err: err}
}

// NewFatalErrorf constructs a FatalError with a formatted message
func NewFatalErrorf(msg string, args ...interface{}) *FatalError {
	return &FatalError{err: fmt.Errorf(msg, args...)}
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal error: %s", e.err.Error())
}

// IsFatal returns true if the error is fatal
func (e *FatalError) IsFatal() bool {
	return true
}

// Unwrap returns the wrapped err
func (e *FatalError) Unwrap() error {
	return e.err
}
