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

// Package jsonvalue models decoded JSON documents as a closed set of kinds:
// null, boolean, number, string, array and object.
//
// Values are immutable once built. Objects preserve the member order of the
// source document, which is what gives auto-detected CSV headers their
// first-seen column order. Numbers are carried as their literal text so that
// rendering a value back to JSON reproduces it exactly.
//
// Example:
//
//	v, err := jsonvalue.Parse([]byte(`{"a":1,"b":{"c":true}}`))
//	if err != nil {
//	    return err
//	}
//	for key, member := range v.Fields() {
//	    fmt.Println(key, member.Kind(), member.Text())
//	}
package jsonvalue
