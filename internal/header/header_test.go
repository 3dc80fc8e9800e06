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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirseerhq/json2csv/internal/jsonvalue"
)

// docs returns a producer yielding one batch of records per document.
func docs(batches ...[]string) (Producer, *int) {
	calls := 0
	return ProducerFunc(func() ([]jsonvalue.Value, error) {
		if calls >= len(batches) {
			return nil, io.EOF
		}
		batch := batches[calls]
		calls++
		out := make([]jsonvalue.Value, len(batch))
		for i, raw := range batch {
			out[i] = jsonvalue.MustParse(raw)
		}
		return out, nil
	}), &calls
}

func drain(t *testing.T, b *SampleBuffer) []string {
	t.Helper()

	var out []string
	require.NoError(t, b.Drain(func(v jsonvalue.Value) error {
		out = append(out, v.JSON())
		return nil
	}))
	return out
}

func TestSetKeepsFirstInsertionOrder(t *testing.T) {
	s := NewSet()

	assert.True(t, s.Add("b"))
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("b"))
	s.AddKeys(jsonvalue.MustParse(`{"c":1,"a":2,"d":3}`))

	assert.Equal(t, []string{"b", "a", "c", "d"}, s.Columns())
	assert.Equal(t, 4, s.Len())
	assert.True(t, s.Contains("d"))
	assert.False(t, s.Contains("z"))
}

func TestExplicitIsVerbatim(t *testing.T) {
	fields := []string{"b", "a", "b", "not.in.data"}

	res := Explicit(fields)
	fields[0] = "mutated"

	assert.Equal(t, []string{"b", "a", "b", "not.in.data"}, res.Columns)
	assert.Nil(t, res.Samples)
	assert.Equal(t, 0, res.Documents)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name          string
		batches       [][]string
		samples       int
		wantColumns   []string
		wantBuffered  []string
		wantDocuments int
		wantExhausted bool
	}{
		{
			name:          "first record only",
			batches:       [][]string{{`{"a":1,"b":2}`}, {`{"a":3,"c":2}`}},
			samples:       1,
			wantColumns:   []string{"a", "b"},
			wantBuffered:  []string{`{"a":1,"b":2}`},
			wantDocuments: 1,
		},
		{
			name:          "union over samples in first-seen order",
			batches:       [][]string{{`{"a":1,"b":2}`}, {`{"c":3,"a":4}`}, {`{"d":5}`}},
			samples:       2,
			wantColumns:   []string{"a", "b", "c"},
			wantBuffered:  []string{`{"a":1,"b":2}`, `{"c":3,"a":4}`},
			wantDocuments: 2,
		},
		{
			name:          "stream shorter than samples",
			batches:       [][]string{{`{"a":1}`}},
			samples:       10,
			wantColumns:   []string{"a"},
			wantBuffered:  []string{`{"a":1}`},
			wantDocuments: 1,
			wantExhausted: true,
		},
		{
			name:          "samples count documents not fanned out records",
			batches:       [][]string{{`{"a":3,"b":1}`, `{"a":3,"b":2}`, `{"a":3,"b":3,"x":0}`}, {`{"z":1}`}},
			samples:       1,
			wantColumns:   []string{"a", "b", "x"},
			wantBuffered:  []string{`{"a":3,"b":1}`, `{"a":3,"b":2}`, `{"a":3,"b":3,"x":0}`},
			wantDocuments: 1,
		},
		{
			name:          "document producing no records is not a sample",
			batches:       [][]string{{}, {`{"a":1}`}, {`{"b":2}`}},
			samples:       1,
			wantColumns:   []string{"a"},
			wantBuffered:  []string{`{"a":1}`},
			wantDocuments: 1,
		},
		{
			name:          "only documents producing no records",
			batches:       [][]string{{}, {}},
			samples:       1,
			wantColumns:   []string{},
			wantExhausted: true,
		},
		{
			name:          "zero samples",
			batches:       [][]string{{`{"a":1}`}},
			samples:       0,
			wantColumns:   []string{},
			wantDocuments: 0,
		},
		{
			name:          "empty stream",
			samples:       1,
			wantColumns:   []string{},
			wantExhausted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := docs(tt.batches...)

			res, err := Detect(p, tt.samples)
			require.NoError(t, err)

			assert.Equal(t, tt.wantColumns, res.Columns)
			assert.Equal(t, tt.wantDocuments, res.Documents)
			assert.Equal(t, tt.wantExhausted, res.Exhausted)
			assert.Equal(t, len(tt.wantBuffered), res.Samples.Len())
			assert.Equal(t, tt.wantBuffered, drain(t, res.Samples))
		})
	}
}

func TestDetectLeavesRestOfStreamUnread(t *testing.T) {
	p, calls := docs([]string{`{"a":1}`}, []string{`{"b":2}`}, []string{`{"c":3}`})

	_, err := Detect(p, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)

	rest, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, rest[0].JSON())
}

func TestDetectPropagatesErrors(t *testing.T) {
	boom := errors.New("bad document")
	p := ProducerFunc(func() ([]jsonvalue.Value, error) { return nil, boom })

	_, err := Detect(p, 3)
	assert.ErrorIs(t, err, boom)
}

func TestSampleBufferDrainsOnce(t *testing.T) {
	p, _ := docs([]string{`{"a":1}`}, []string{`{"a":2}`})
	res, err := Detect(p, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{`{"a":1}`, `{"a":2}`}, drain(t, res.Samples))
	assert.Equal(t, 0, res.Samples.Len())
	assert.Empty(t, drain(t, res.Samples))
}

func TestSampleBufferDrainStopsOnError(t *testing.T) {
	p, _ := docs([]string{`{"a":1}`, `{"a":2}`})
	res, err := Detect(p, 1)
	require.NoError(t, err)

	boom := errors.New("write failed")
	seen := 0
	err = res.Samples.Drain(func(jsonvalue.Value) error {
		seen++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, seen)
}

func TestNilSampleBuffer(t *testing.T) {
	var b *SampleBuffer
	assert.Equal(t, 0, b.Len())
	assert.NoError(t, b.Drain(func(jsonvalue.Value) error { return errors.New("unreachable") }))
}
