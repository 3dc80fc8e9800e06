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

package source

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	apperrors "github.com/sirseerhq/json2csv/internal/errors"
	"github.com/sirseerhq/json2csv/internal/jsonvalue"
)

const readBufferSize = 64 * 1024

// Options controls how the byte stream is interpreted.
type Options struct {
	Compression Compression
}

// Reader decodes a stream of whitespace-separated JSON documents.
// It is single-pass: documents are read on demand and cannot be replayed.
type Reader struct {
	dec       *json.Decoder
	input     *trackingReader
	closeFunc func() error
	documents int
	done      bool
}

// New creates a Reader over r. Compressed input is unwrapped according to
// opts.Compression before decoding.
func New(r io.Reader, opts Options) (*Reader, error) {
	tracked := &trackingReader{r: r}
	br := bufio.NewReaderSize(tracked, readBufferSize)

	comp := opts.Compression
	if comp == "" {
		comp = CompressionAuto
	}
	plain, closeDecoder, err := decompress(br, comp)
	if err != nil {
		if tracked.err != nil {
			return nil, apperrors.NewIOError("read input", tracked.err)
		}
		return nil, apperrors.NewIOError("read input", err)
	}

	dec := json.NewDecoder(plain)
	dec.UseNumber()

	return &Reader{
		dec:       dec,
		input:     tracked,
		closeFunc: closeDecoder,
	}, nil
}

// Open creates a Reader over the named file. The caller must call Close.
func Open(path string, opts Options) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewIOError("open input", err)
	}

	r, err := New(file, opts)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	closeDecoder := r.closeFunc
	r.closeFunc = func() error {
		derr := closeDecoder()
		if ferr := file.Close(); ferr != nil {
			return ferr
		}
		return derr
	}
	return r, nil
}

// Next returns the next document. It returns io.EOF once the stream is
// exhausted. A syntax error yields a *errors.ParseError and ends the
// stream; the decoder cannot resynchronize after one.
func (r *Reader) Next() (jsonvalue.Value, error) {
	if r.done {
		return jsonvalue.Value{}, io.EOF
	}

	v, err := jsonvalue.Decode(r.dec)
	if err != nil {
		r.done = true
		if errors.Is(err, io.EOF) {
			return jsonvalue.Value{}, io.EOF
		}
		return jsonvalue.Value{}, r.classify(err)
	}

	r.documents++
	return v, nil
}

// Documents returns how many documents have been decoded so far.
func (r *Reader) Documents() int {
	return r.documents
}

// Close releases decoder resources and, for readers created by Open, the file.
func (r *Reader) Close() error {
	if r.closeFunc != nil {
		return r.closeFunc()
	}
	return nil
}

func (r *Reader) classify(err error) error {
	if r.input.err != nil && errors.Is(err, r.input.err) {
		return apperrors.NewIOError("read input", err)
	}

	offset := r.dec.InputOffset()
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		offset = syntaxErr.Offset
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) && syntaxErr == nil {
		// Errors from a decompressor surface here as plain errors.
		return apperrors.NewIOError("read input", fmt.Errorf("decode stream: %w", err))
	}

	return &apperrors.ParseError{
		Document: r.documents,
		Offset:   offset,
		Err:      err,
	}
}

// trackingReader remembers the first error returned by the underlying
// reader so it can be told apart from JSON syntax errors.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && t.err == nil {
		t.err = err
	}
	return n, err
}
