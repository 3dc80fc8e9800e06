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

// Package project renders records as CSV rows under a fixed column order.
package project

import (
	"github.com/sirseerhq/json2csv/internal/jsonvalue"
)

// Row returns one cell per column, in column order. A column missing from
// record yields an empty cell. Strings are emitted raw; every other value
// is emitted as compact JSON, so null becomes "null" and a nested object
// that was not flattened becomes its JSON text. Quoting is left to the
// CSV writer.
func Row(columns []string, record jsonvalue.Value) []string {
	return AppendRow(make([]string, 0, len(columns)), columns, record)
}

// AppendRow is Row appending into dst, for callers reusing a row buffer.
func AppendRow(dst []string, columns []string, record jsonvalue.Value) []string {
	for _, col := range columns {
		dst = append(dst, Cell(record, col))
	}
	return dst
}

// Cell renders a single column of record.
func Cell(record jsonvalue.Value, column string) string {
	v, ok := record.Get(column)
	if !ok {
		return ""
	}
	switch v.Kind() {
	case jsonvalue.String:
		return v.Str()
	case jsonvalue.Null, jsonvalue.Bool, jsonvalue.Number, jsonvalue.Array, jsonvalue.Object:
		return v.JSON()
	default:
		return ""
	}
}
