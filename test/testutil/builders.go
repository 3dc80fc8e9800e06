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

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// RecordBuilder provides a fluent API for creating JSON objects whose key
// order is preserved, which map-based fixtures cannot guarantee.
type RecordBuilder struct {
	keys   []string
	values map[string]string
}

// NewRecord creates an empty record builder
func NewRecord() *RecordBuilder {
	return &RecordBuilder{values: make(map[string]string)}
}

// With sets key to the JSON encoding of v. Setting a key twice keeps its
// first position.
func (b *RecordBuilder) With(key string, v interface{}) *RecordBuilder {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("testutil: cannot encode %v: %v", v, err))
	}
	return b.WithRaw(key, string(raw))
}

// WithRecord nests another record under key
func (b *RecordBuilder) WithRecord(key string, nested *RecordBuilder) *RecordBuilder {
	return b.WithRaw(key, nested.JSON())
}

// WithRaw sets key to a literal JSON text
func (b *RecordBuilder) WithRaw(key, raw string) *RecordBuilder {
	if _, ok := b.values[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.values[key] = raw
	return b
}

// JSON renders the record as compact JSON
func (b *RecordBuilder) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range b.keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		key, _ := json.Marshal(k)
		sb.Write(key)
		sb.WriteByte(':')
		sb.WriteString(b.values[k])
	}
	sb.WriteByte('}')
	return sb.String()
}

// StreamBuilder assembles an input stream of JSON documents
type StreamBuilder struct {
	docs      []string
	separator string
}

// NewStream creates a stream whose documents are newline separated
func NewStream() *StreamBuilder {
	return &StreamBuilder{separator: "\n"}
}

// Add appends records to the stream
func (s *StreamBuilder) Add(records ...*RecordBuilder) *StreamBuilder {
	for _, r := range records {
		s.docs = append(s.docs, r.JSON())
	}
	return s
}

// AddRaw appends literal documents, valid or not
func (s *StreamBuilder) AddRaw(docs ...string) *StreamBuilder {
	s.docs = append(s.docs, docs...)
	return s
}

// AddN appends n records produced by fn
func (s *StreamBuilder) AddN(n int, fn func(i int) *RecordBuilder) *StreamBuilder {
	for i := 0; i < n; i++ {
		s.docs = append(s.docs, fn(i).JSON())
	}
	return s
}

// WithSeparator changes the whitespace placed between documents
func (s *StreamBuilder) WithSeparator(sep string) *StreamBuilder {
	s.separator = sep
	return s
}

// Bytes renders the stream
func (s *StreamBuilder) Bytes() []byte {
	if len(s.docs) == 0 {
		return nil
	}
	return []byte(strings.Join(s.docs, s.separator) + s.separator)
}

// Compress encodes data with gzip, zstd or lz4
func Compress(t *testing.T, kind string, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	var err error
	switch kind {
	case "gzip":
		w := gzip.NewWriter(&buf)
		if _, err = w.Write(data); err == nil {
			err = w.Close()
		}
	case "zstd":
		var w *zstd.Encoder
		if w, err = zstd.NewWriter(&buf); err == nil {
			if _, err = w.Write(data); err == nil {
				err = w.Close()
			}
		}
	case "lz4":
		w := lz4.NewWriter(&buf)
		if _, err = w.Write(data); err == nil {
			err = w.Close()
		}
	default:
		t.Fatalf("unknown compression %q", kind)
	}

	if err != nil {
		t.Fatalf("Failed to %s-compress fixture: %v", kind, err)
	}
	return buf.Bytes()
}
