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

// Package output writes CSV rows and header listings.
//
// The primary type is CSVWriter, which provides thread-safe, buffered writing
// of rows to an io.Writer or file under a configurable Dialect. Rows are
// streamed as they are produced; the writer never accumulates records.
//
// Example usage:
//
//	w, err := output.NewFileCSVWriter("out.csv", output.DefaultDialect())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	if err := w.WriteRow([]string{"a", "b"}); err != nil {
//	    log.Printf("Failed to write row: %v", err)
//	}
//
//	fmt.Printf("Wrote %d rows\n", w.Count())
package output
