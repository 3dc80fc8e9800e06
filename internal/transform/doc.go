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

// Package transform reshapes decoded records before they become CSV rows.
//
// Unwind expands one record into several, one per element of a top-level
// array field, similar to MongoDB's $unwind stage. Flatten turns nested
// objects and arrays into a single level of dotted keys:
//
//	{"a":{"b":[1,2]}}  ->  {"a.b.0":1,"a.b.1":2}
//
// Pipeline chains the two in the order a conversion applies them.
// Every function returns new values and leaves its input untouched.
package transform
