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

// Package main implements the json2csv command-line interface.
// This tool converts a stream of JSON documents into CSV, detecting the
// header from the first documents or taking it from --fields.
//
// The CLI supports:
//   - Reading a file argument or stdin, plain or gzip/zstd/lz4 compressed
//   - Flattening nested values into dotted columns (--flatten)
//   - Unwinding one top-level array into one row per element (--unwind-on)
//   - Custom delimiters, quoting styles and line endings
//   - Printing the resolved header instead of converting (headers, --get-headers)
//   - A JSON run report (--metadata-file)
//
// Usage:
//
//	json2csv [INPUT] [flags]
//	json2csv convert [INPUT] [flags]
//	json2csv headers [INPUT] [flags]
//
// Example:
//
//	zcat events.ndjson.gz | json2csv --flatten --unwind-on items -o events.csv
//
// Exit codes:
//   - 0: Success
//   - 1: General or configuration error
//   - 2: Invalid input data (malformed JSON, non-object document, empty input)
//   - 3: I/O error
//   - 130: Interrupted by SIGINT or SIGTERM
package main
