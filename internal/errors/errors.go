// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrParse indicates a malformed JSON document in the input.
	// Maps to exit code 2.
	ErrParse = errors.New("malformed json input")

	// ErrInvalidRecordShape indicates a top-level JSON document that is not an object.
	// Maps to exit code 2.
	ErrInvalidRecordShape = errors.New("record is not a json object")

	// ErrEmptyStream indicates header detection was requested but the input had no records.
	// Maps to exit code 2.
	ErrEmptyStream = errors.New("no records found in input")

	// ErrIO indicates a failure reading the input or writing the output.
	// Maps to exit code 3.
	ErrIO = errors.New("i/o failure")

	// ErrInvalidConfig indicates an option value that cannot be used.
	// Maps to exit code 1.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ParseError reports a JSON syntax error at a position in the input stream.
type ParseError struct {
	// Document is the zero-based index of the document being decoded.
	Document int
	// Offset is the byte offset in the (decompressed) input.
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: document %d at offset %d: %v", ErrParse, e.Document, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ShapeError reports a top-level document whose kind cannot be projected into a row.
type ShapeError struct {
	Document int
	Kind     string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: document %d is a json %s", ErrInvalidRecordShape, e.Document, e.Kind)
}

// Is reports whether target is ErrInvalidRecordShape.
func (e *ShapeError) Is(target error) bool { return target == ErrInvalidRecordShape }

// IOError wraps a read or write failure with the operation that produced it.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// NewIOError wraps err as an IOError. It returns nil when err is nil.
func NewIOError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Err: err}
}
