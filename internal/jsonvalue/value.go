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

package jsonvalue

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies which JSON type a Value holds.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an immutable JSON value. The zero Value is JSON null.
//
// Objects keep their members in document order. Numbers keep the literal
// text they were decoded from, so rendering never changes their precision.
type Value struct {
	kind    Kind
	boolean bool
	text    string
	items   []Value
	fields  *orderedmap.OrderedMap[string, Value]
}

// BoolValue returns a JSON boolean.
func BoolValue(b bool) Value { return Value{kind: Bool, boolean: b} }

// NumberValue returns a JSON number holding the given literal, e.g. "1.50".
// The literal is not validated.
func NumberValue(literal string) Value { return Value{kind: Number, text: literal} }

// StringValue returns a JSON string.
func StringValue(s string) Value { return Value{kind: String, text: s} }

// ArrayValue returns a JSON array of the given items.
func ArrayValue(items ...Value) Value {
	owned := make([]Value, len(items))
	copy(owned, items)
	return Value{kind: Array, items: owned}
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// ObjectValue returns a JSON object with the given members in order.
// A repeated key keeps its first position and its last value.
func ObjectValue(members ...Member) Value {
	b := NewObjectBuilder()
	for _, m := range members {
		b.Set(m.Key, m.Value)
	}
	return b.Build()
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsObject() bool { return v.kind == Object }

func (v Value) IsArray() bool { return v.kind == Array }

// Bool returns the boolean held by a Bool value.
func (v Value) Bool() bool { return v.boolean }

// Str returns the contents of a String value or the literal of a Number value.
func (v Value) Str() string { return v.text }

// Len returns the number of items of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Object:
		if v.fields == nil {
			return 0
		}
		return v.fields.Len()
	default:
		return 0
	}
}

// Get looks up a member of an object. It reports false for absent keys and
// for values that are not objects.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object || v.fields == nil {
		return Value{}, false
	}
	return v.fields.Get(key)
}

// Keys returns the member names of an object in order.
func (v Value) Keys() []string {
	if v.kind != Object || v.fields == nil {
		return nil
	}
	keys := make([]string, 0, v.fields.Len())
	for pair := v.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Fields iterates over the members of an object in order.
func (v Value) Fields() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if v.kind != Object || v.fields == nil {
			return
		}
		for pair := v.fields.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Elements iterates over the items of an array.
func (v Value) Elements() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		if v.kind != Array {
			return
		}
		for i, item := range v.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Equal reports whether two values are structurally identical, including
// object member order. Numbers compare by literal.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.boolean == b.boolean
	case Number, String:
		return a.text == b.text
	case Array:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case Object:
		if a.Len() != b.Len() {
			return false
		}
		if a.Len() == 0 {
			return true
		}
		pb := b.fields.Oldest()
		for pa := a.fields.Oldest(); pa != nil; pa = pa.Next() {
			if pa.Key != pb.Key || !Equal(pa.Value, pb.Value) {
				return false
			}
			pb = pb.Next()
		}
		return true
	default:
		return false
	}
}

// ObjectBuilder assembles an object member by member. Build hands the
// members over to the returned Value; the builder must not be used after.
type ObjectBuilder struct {
	fields *orderedmap.OrderedMap[string, Value]
}

func NewObjectBuilder() *ObjectBuilder {
	return &ObjectBuilder{fields: orderedmap.New[string, Value]()}
}

// Set adds a member. Setting an existing key replaces its value in place.
func (b *ObjectBuilder) Set(key string, v Value) {
	b.fields.Set(key, v)
}

// Delete removes a member if present.
func (b *ObjectBuilder) Delete(key string) {
	b.fields.Delete(key)
}

func (b *ObjectBuilder) Len() int { return b.fields.Len() }

func (b *ObjectBuilder) Build() Value {
	v := Value{kind: Object, fields: b.fields}
	b.fields = nil
	return v
}
