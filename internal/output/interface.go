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

package output

// RowWriter defines the interface for writing CSV rows.
// This abstraction lets the conversion pipeline stay independent of where
// rows end up and how they are quoted.
type RowWriter interface {
	// WriteRow writes a single record. Rows may be buffered until Flush.
	WriteRow(fields []string) error

	// Flush writes any buffered rows to the underlying writer.
	Flush() error

	// Close flushes and closes the underlying writer and releases any resources.
	// This should be called when all writing is complete.
	Close() error
}
