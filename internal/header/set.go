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

package header

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/sirseerhq/json2csv/internal/jsonvalue"
)

// Set is an insertion-ordered set of column names.
type Set struct {
	names *orderedmap.OrderedMap[string, struct{}]
}

func NewSet() *Set {
	return &Set{names: orderedmap.New[string, struct{}]()}
}

// Add inserts name unless it is already present. It reports whether the
// name was new.
func (s *Set) Add(name string) bool {
	if s.Contains(name) {
		return false
	}
	s.names.Set(name, struct{}{})
	return true
}

// AddKeys adds every top-level key of record in order.
func (s *Set) AddKeys(record jsonvalue.Value) {
	for _, key := range record.Keys() {
		s.Add(key)
	}
}

func (s *Set) Contains(name string) bool {
	_, ok := s.names.Get(name)
	return ok
}

func (s *Set) Len() int {
	return s.names.Len()
}

// Columns returns the names in first-insertion order.
func (s *Set) Columns() []string {
	cols := make([]string, 0, s.names.Len())
	for pair := s.names.Oldest(); pair != nil; pair = pair.Next() {
		cols = append(cols, pair.Key)
	}
	return cols
}
