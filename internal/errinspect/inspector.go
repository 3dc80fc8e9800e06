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

package errinspect

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/sirseerhq/json2csv/internal/errors"
)

// Inspector provides methods for analyzing conversion errors.
type Inspector interface {
	// IsConfigError returns true if the error comes from an unusable option.
	IsConfigError(err error) bool

	// IsDataError returns true if the input could not be converted: malformed
	// JSON, a non-object document, or no documents at all.
	IsDataError(err error) bool

	// IsIOError returns true if reading the input or writing the output failed.
	IsIOError(err error) bool

	// IsInterrupted returns true if the run was cancelled.
	IsInterrupted(err error) bool
}

// MessageInspector implements the Inspector interface by matching error text.
type MessageInspector struct{}

// NewInspector creates a new MessageInspector.
func NewInspector() Inspector {
	return &MessageInspector{}
}

func contains(err error, needles ...string) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	for _, n := range needles {
		if strings.Contains(errStr, n) {
			return true
		}
	}
	return false
}

// IsConfigError checks if the error is a flag or option error.
func (i *MessageInspector) IsConfigError(err error) bool {
	return contains(err,
		"unknown flag",
		"unknown shorthand flag",
		"invalid argument",
		"flag needs an argument",
		"accepts at most")
}

// IsDataError checks if the error is a JSON decoding error.
func (i *MessageInspector) IsDataError(err error) bool {
	return contains(err,
		"invalid character",
		"unexpected end of json input",
		"unexpected eof")
}

// IsIOError checks if the error is an operating system i/o error.
func (i *MessageInspector) IsIOError(err error) bool {
	return contains(err,
		"broken pipe",
		"no space left on device",
		"permission denied",
		"no such file or directory",
		"input/output error",
		"read-only file system",
		"too many open files",
		"is a directory")
}

// IsInterrupted checks if the error reports a cancelled operation.
func (i *MessageInspector) IsInterrupted(err error) bool {
	return contains(err, "context canceled", "signal: interrupt")
}

// ErrorChainInspector wraps a base inspector and adds support for checking
// the sentinels of internal/errors in the error chain.
type ErrorChainInspector struct {
	base Inspector
}

// NewErrorChainInspector creates a new ErrorChainInspector that checks both
// the error chain and falls back to message inspection.
func NewErrorChainInspector(base Inspector) Inspector {
	return &ErrorChainInspector{base: base}
}

// IsConfigError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsConfigError(err error) bool {
	if errors.Is(err, apperrors.ErrInvalidConfig) {
		return true
	}
	return e.base.IsConfigError(err)
}

// IsDataError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsDataError(err error) bool {
	if errors.Is(err, apperrors.ErrParse) ||
		errors.Is(err, apperrors.ErrInvalidRecordShape) ||
		errors.Is(err, apperrors.ErrEmptyStream) {
		return true
	}
	if errors.Is(err, apperrors.ErrIO) {
		return false
	}
	return e.base.IsDataError(err)
}

// IsIOError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsIOError(err error) bool {
	if errors.Is(err, apperrors.ErrIO) {
		return true
	}
	return e.base.IsIOError(err)
}

// IsInterrupted checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsInterrupted(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return e.base.IsInterrupted(err)
}
