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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Decode reads the next complete JSON value from dec. The decoder should
// have UseNumber enabled so number literals survive unchanged.
// It returns io.EOF when the stream holds no further values.
func Decode(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

// Parse decodes exactly one JSON value from data.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := Decode(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("unexpected data after json value at offset %d", dec.InputOffset())
	}
	return v, nil
}

// MustParse is Parse for literals known to be valid, such as test fixtures.
// It panics otherwise.
func MustParse(s string) Value {
	v, err := Parse([]byte(s))
	if err != nil {
		panic(fmt.Sprintf("jsonvalue: MustParse(%q): %v", s, err))
	}
	return v
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Value{}, nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return NumberValue(t.String()), nil
	case float64:
		return NumberValue(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case string:
		return StringValue(t), nil
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
	}
	return Value{}, fmt.Errorf("unexpected json token %v", tok)
}

func decodeObject(dec *json.Decoder) (Value, error) {
	b := NewObjectBuilder()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, unexpectedEOF(err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is %T, not a string", keyTok)
		}
		val, err := Decode(dec)
		if err != nil {
			return Value{}, unexpectedEOF(err)
		}
		b.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, unexpectedEOF(err)
	}
	return b.Build(), nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	items := []Value{}
	for dec.More() {
		val, err := Decode(dec)
		if err != nil {
			return Value{}, unexpectedEOF(err)
		}
		items = append(items, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, unexpectedEOF(err)
	}
	return Value{kind: Array, items: items}, nil
}

// unexpectedEOF turns a clean EOF inside a value into io.ErrUnexpectedEOF.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
