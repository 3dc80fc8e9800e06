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

// Package header decides which columns a CSV output has.
//
// Columns either come verbatim from the caller (Explicit) or are detected
// from the first documents of the stream (Detect). Detection cannot rewind
// its source, so every record it reads is kept in a SampleBuffer and
// written out once the header is known.
package header
