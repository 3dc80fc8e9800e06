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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirseerhq/json2csv/internal/jsonvalue"
)

func jsonOf(values []jsonvalue.Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.JSON()
	}
	return out
}

func TestUnwindPassthrough(t *testing.T) {
	tests := []struct {
		name   string
		record string
		key    string
	}{
		{"no key", `{"b":[1,2],"a":3}`, ""},
		{"absent key", `{"b":[1,2],"a":3}`, "missing"},
		{"scalar value", `{"b":1}`, "b"},
		{"object value", `{"b":{"c":[1]}}`, "b"},
		{"null value", `{"b":null}`, "b"},
		{"dotted key is not a path", `{"b":{"c":[1,2]}}`, "b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := jsonvalue.MustParse(tt.record)

			got := Unwind(record, tt.key)

			require.Len(t, got, 1)
			assert.True(t, jsonvalue.Equal(record, got[0]), "got %s", got[0].JSON())
		})
	}
}

func TestUnwindFansOutInArrayOrder(t *testing.T) {
	record := jsonvalue.MustParse(`{"b":[1,"two",{"c":3},[4]],"a":3}`)

	got := Unwind(record, "b")

	assert.Equal(t, []string{
		`{"a":3,"b":1}`,
		`{"a":3,"b":"two"}`,
		`{"a":3,"b":{"c":3}}`,
		`{"a":3,"b":[4]}`,
	}, jsonOf(got))

	// Every output matches the input apart from the unwound key.
	for i, out := range got {
		assert.Equal(t, record.Len(), out.Len())
		a, _ := out.Get("a")
		assert.Equal(t, "3", a.Str())
		elem, _ := out.Get("b")
		orig, _ := record.Get("b")
		var want jsonvalue.Value
		for j, e := range orig.Elements() {
			if j == i {
				want = e
			}
		}
		assert.True(t, jsonvalue.Equal(want, elem))
	}

	// The input is left untouched.
	assert.Equal(t, `{"b":[1,"two",{"c":3},[4]],"a":3}`, record.JSON())
}

func TestUnwindEmptyArray(t *testing.T) {
	assert.Empty(t, Unwind(jsonvalue.MustParse(`{"b":[],"a":1}`), "b"))
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name   string
		record string
		sep    string
		want   string
	}{
		{"already flat", `{"a":1,"b":"x","c":null,"d":true}`, ".", `{"a":1,"b":"x","c":null,"d":true}`},
		{"nested object", `{"b":{"nested":{"A":2}}}`, ".", `{"b.nested.A":2}`},
		{"array", `{"array":[1,2]}`, ".", `{"array.0":1,"array.1":2}`},
		{"mixed", `{"a":{"b":[{"c":1},{"d":[true,null]}]},"e":"f"}`, ".", `{"a.b.0.c":1,"a.b.1.d.0":true,"a.b.1.d.1":null,"e":"f"}`},
		{"custom separator", `{"a":{"b":[1]}}`, "_", `{"a_b_0":1}`},
		{"empty containers contribute nothing", `{"a":{},"b":[],"c":{"d":{}},"e":1}`, ".", `{"e":1}`},
		{"empty record", `{}`, ".", `{}`},
		{"colliding paths keep first position", `{"a.b":1,"x":0,"a":{"b":2}}`, ".", `{"a.b":2,"x":0}`},
		{"empty key", `{"":{"a":1}}`, ".", `{".a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(jsonvalue.MustParse(tt.record), tt.sep)
			assert.Equal(t, tt.want, got.JSON())
		})
	}
}

func TestFlattenIsIdempotent(t *testing.T) {
	records := []string{
		`{"a":1,"b":"x"}`,
		`{"a":{"b":{"c":[1,2,{"d":3}]}},"e":[]}`,
		`{"x":[[1,2],[3,[4]]]}`,
	}

	for _, raw := range records {
		once := Flatten(jsonvalue.MustParse(raw), DefaultSeparator)
		twice := Flatten(once, DefaultSeparator)
		assert.True(t, jsonvalue.Equal(once, twice), "flatten(flatten(%s)) = %s, want %s", raw, twice.JSON(), once.JSON())
	}
}

func TestFlattenLeavesAreReachable(t *testing.T) {
	record := jsonvalue.MustParse(`{"a":{"b":[10,{"c":"deep"}]},"d":false,"e":[[null]]}`)

	flat := Flatten(record, DefaultSeparator)

	want := map[string]string{
		"a.b.0":   "10",
		"a.b.1.c": `"deep"`,
		"d":       "false",
		"e.0.0":   "null",
	}
	assert.Equal(t, len(want), flat.Len())
	for path, text := range want {
		v, ok := flat.Get(path)
		require.True(t, ok, "missing %s", path)
		assert.Equal(t, text, v.JSON())
	}
	for _, v := range flat.Fields() {
		assert.NotEqual(t, jsonvalue.Object, v.Kind())
		assert.NotEqual(t, jsonvalue.Array, v.Kind())
	}
}

func TestFlattenScalarRecord(t *testing.T) {
	v := jsonvalue.StringValue("x")
	assert.True(t, jsonvalue.Equal(v, Flatten(v, ".")))
}

func TestPipeline(t *testing.T) {
	tests := []struct {
		name     string
		pipeline Pipeline
		record   string
		want     []string
	}{
		{
			name:   "identity",
			record: `{"a":{"b":1}}`,
			want:   []string{`{"a":{"b":1}}`},
		},
		{
			name:     "unwind only",
			pipeline: Pipeline{UnwindOn: "b"},
			record:   `{"b":[1,2],"a":3}`,
			want:     []string{`{"a":3,"b":1}`, `{"a":3,"b":2}`},
		},
		{
			name:     "unwind then flatten",
			pipeline: Pipeline{UnwindOn: "b", Flatten: true},
			record:   `{"b":[{"c":1},{"c":2}],"a":{"c":3}}`,
			want:     []string{`{"a.c":3,"b.c":1}`, `{"a.c":3,"b.c":2}`},
		},
		{
			name:     "flatten with default separator",
			pipeline: Pipeline{Flatten: true},
			record:   `{"a":{"b":1}}`,
			want:     []string{`{"a.b":1}`},
		},
		{
			name:     "flatten with custom separator",
			pipeline: Pipeline{Flatten: true, Separator: "/"},
			record:   `{"a":{"b":1}}`,
			want:     []string{`{"a/b":1}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.pipeline.Apply(jsonvalue.MustParse(tt.record))
			assert.Equal(t, tt.want, jsonOf(got))
		})
	}
}
