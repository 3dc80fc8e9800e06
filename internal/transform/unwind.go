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

// Unwind expands record into one record per element of the array stored
// under key, in array order. Each output holds the element itself under
// key, moved after the record's other members.
//
// A record whose key is absent or does not hold an array is returned as
// the only output. An empty array produces no records. An empty key
// disables unwinding.
func Unwind(record jsonvalue.Value, key string) []jsonvalue.Value {
	if key == "" {
		return []jsonvalue.Value{record}
	}

	arr, ok := record.Get(key)
	if !ok || !arr.IsArray() {
		return []jsonvalue.Value{record}
	}

	out := make([]jsonvalue.Value, 0, arr.Len())
	for _, elem := range arr.Elements() {
		b := jsonvalue.NewObjectBuilder()
		for k, v := range record.Fields() {
			if k != key {
				b.Set(k, v)
			}
		}
		b.Set(key, elem)
		out = append(out, b.Build())
	}
	return out
}
