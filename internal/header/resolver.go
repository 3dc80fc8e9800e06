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
	"errors"
	"io"

	"github.com/sirseerhq/json2csv/internal/jsonvalue"
)

// DefaultSamples is the number of source documents scanned when the
// caller does not say otherwise.
const DefaultSamples = 1

// Producer yields the transformed records of one source document per call.
// A document may produce any number of records, including none.
// Next returns io.EOF when the source is exhausted.
type Producer interface {
	Next() ([]jsonvalue.Value, error)
}

// ProducerFunc adapts a plain function to the Producer interface.
type ProducerFunc func() ([]jsonvalue.Value, error)

func (f ProducerFunc) Next() ([]jsonvalue.Value, error) { return f() }

// SampleBuffer holds the records read during detection until they are
// written out. It is drained exactly once.
type SampleBuffer struct {
	records []jsonvalue.Value
	drained bool
}

func (b *SampleBuffer) push(records ...jsonvalue.Value) {
	b.records = append(b.records, records...)
}

// Len returns the number of buffered records.
func (b *SampleBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.records)
}

// Drain calls fn for each buffered record in order and releases the
// buffer. It stops at the first error. Draining twice is a no-op.
func (b *SampleBuffer) Drain(fn func(jsonvalue.Value) error) error {
	if b == nil || b.drained {
		return nil
	}
	records := b.records
	b.records = nil
	b.drained = true

	for _, r := range records {
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

// Resolution is the outcome of header resolution.
type Resolution struct {
	// Columns is the final header in output order.
	Columns []string
	// Samples holds records consumed during detection; nil for explicit fields.
	Samples *SampleBuffer
	// Documents is the number of sampled source documents that produced at
	// least one record.
	Documents int
	// Exhausted reports that detection reached the end of the source.
	Exhausted bool
}

// Explicit uses fields verbatim as the header. Nothing is read from the
// source; duplicates and names absent from the data are kept.
func Explicit(fields []string) Resolution {
	cols := make([]string, len(fields))
	copy(cols, fields)
	return Resolution{Columns: cols}
}

// Detect reads up to samples source documents from p, buffering every
// record they produce and collecting their keys in first-seen order.
// samples counts source documents, not the records an unwind fans out to.
// A document that produces no records, such as one unwound on an empty
// array, does not use up the sample budget.
// With samples <= 0 nothing is read and the header is empty.
func Detect(p Producer, samples int) (Resolution, error) {
	set := NewSet()
	buf := &SampleBuffer{}
	res := Resolution{Samples: buf}

	for res.Documents < samples {
		records, err := p.Next()
		if errors.Is(err, io.EOF) {
			res.Exhausted = true
			break
		}
		if err != nil {
			return Resolution{}, err
		}
		if len(records) == 0 {
			continue
		}
		res.Documents++

		for _, r := range records {
			set.AddKeys(r)
		}
		buf.push(records...)
	}

	res.Columns = set.Columns()
	return res, nil
}
