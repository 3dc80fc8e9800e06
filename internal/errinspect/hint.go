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

	apperrors "github.com/sirseerhq/json2csv/internal/errors"
)

// Hint returns a one-line suggestion for err, or "" when there is none.
func Hint(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "the run was interrupted; rows converted before the signal were flushed"
	case errors.Is(err, apperrors.ErrInvalidRecordShape):
		return "use --skip-invalid to drop documents that are not JSON objects"
	case errors.Is(err, apperrors.ErrEmptyStream):
		return "pass --fields to write a header for empty input"
	case errors.Is(err, apperrors.ErrParse):
		return "input must be JSON documents separated by whitespace; compressed input needs --compression if it cannot be detected"
	case errors.Is(err, apperrors.ErrInvalidConfig):
		return "run 'json2csv --help' for usage"
	default:
		return ""
	}
}
