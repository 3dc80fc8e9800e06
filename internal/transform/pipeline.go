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

package transform

import (
	"github.com/sirseerhq/json2csv/internal/jsonvalue"
)

// Pipeline holds the per-record transformations of a run. The zero value
// passes records through untouched.
type Pipeline struct {
	// UnwindOn names the top-level array field to unwind; empty disables it.
	UnwindOn string
	// Flatten collapses nested values into dotted columns.
	Flatten bool
	// Separator joins flattened path segments. Empty means DefaultSeparator.
	Separator string
}

// Apply unwinds record and then flattens every resulting record.
// The array of an unwound field is held in memory for the duration.
func (p Pipeline) Apply(record jsonvalue.Value) []jsonvalue.Value {
	records := Unwind(record, p.UnwindOn)
	if !p.Flatten {
		return records
	}

	sep := p.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	for i, r := range records {
		records[i] = Flatten(r, sep)
	}
	return records
}
