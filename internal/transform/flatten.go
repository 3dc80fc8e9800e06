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
	"strconv"

	"github.com/sirseerhq/json2csv/internal/jsonvalue"
)

// DefaultSeparator joins path segments of flattened keys.
const DefaultSeparator = "."

// Flatten collapses nested objects and arrays of record into a single-level
// object. Object members are keyed parent+sep+name, array items
// parent+sep+index. Scalars are kept as they are; a scalar record is
// returned unchanged.
//
// Empty objects and arrays have no leaves and therefore produce no keys.
// When two paths collide, e.g. {"a.b":1,"a":{"b":2}}, the later leaf wins
// and keeps the position of the first.
func Flatten(record jsonvalue.Value, sep string) jsonvalue.Value {
	b := jsonvalue.NewObjectBuilder()
	switch record.Kind() {
	case jsonvalue.Object:
		for key, member := range record.Fields() {
			flattenInto(b, key, member, sep)
		}
	case jsonvalue.Array:
		for i, item := range record.Elements() {
			flattenInto(b, strconv.Itoa(i), item, sep)
		}
	case jsonvalue.Null, jsonvalue.Bool, jsonvalue.Number, jsonvalue.String:
		return record
	}
	return b.Build()
}

func flattenInto(b *jsonvalue.ObjectBuilder, path string, v jsonvalue.Value, sep string) {
	switch v.Kind() {
	case jsonvalue.Object:
		for key, member := range v.Fields() {
			flattenInto(b, path+sep+key, member, sep)
		}
	case jsonvalue.Array:
		for i, item := range v.Elements() {
			flattenInto(b, path+sep+strconv.Itoa(i), item, sep)
		}
	case jsonvalue.Null, jsonvalue.Bool, jsonvalue.Number, jsonvalue.String:
		b.Set(path, v)
	}
}
