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

// Package source reads JSON documents from a byte stream.
//
// Documents may be separated by any amount of whitespace, so JSON Lines
// files, pretty-printed dumps and plain concatenations all decode the same
// way. Input compressed with gzip, zstd or lz4 (frame format) is detected
// from its magic bytes and decompressed transparently.
//
// Example usage:
//
//	r, err := source.Open("events.jsonl.gz", source.Options{})
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	for {
//	    doc, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // use doc
//	}
package source
