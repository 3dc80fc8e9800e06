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

package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	apperrors "github.com/sirseerhq/json2csv/internal/errors"
)

// CSVWriter handles buffered CSV output to a file or io.Writer.
// Rows are written as soon as they are produced; nothing is accumulated
// beyond the write buffer.
type CSVWriter struct {
	mu        sync.Mutex
	output    *countingWriter
	buf       *bufio.Writer
	dialect   Dialect
	count     int
	closeFunc func() error
	closed    bool
}

// NewCSVWriter creates a new CSV writer that writes to the specified output.
func NewCSVWriter(w io.Writer, d Dialect) (*CSVWriter, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}
	cw := &countingWriter{w: w}
	return &CSVWriter{
		output:  cw,
		buf:     bufio.NewWriter(cw),
		dialect: d,
	}, nil
}

// NewFileCSVWriter creates a new CSV writer that writes to a file.
// The caller must call Close() when done to ensure the file is properly closed.
func NewFileCSVWriter(filename string, d Dialect) (*CSVWriter, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, apperrors.NewIOError("create output file", err)
	}

	w, _ := NewCSVWriter(file, d)
	w.closeFunc = file.Close
	return w, nil
}

// WriteRow writes a single record. A record without fields is written as
// an empty line.
func (w *CSVWriter) WriteRow(fields []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return apperrors.NewIOError("write row", os.ErrClosed)
	}

	for i, field := range fields {
		if i > 0 {
			if err := w.buf.WriteByte(w.dialect.Delimiter); err != nil {
				return apperrors.NewIOError("write row", err)
			}
		}
		if err := w.writeField(field, len(fields) == 1); err != nil {
			return apperrors.NewIOError("write row", err)
		}
	}
	if _, err := w.buf.WriteString(w.dialect.lineTerminator()); err != nil {
		return apperrors.NewIOError("write row", err)
	}

	w.count++
	return nil
}

func (w *CSVWriter) writeField(field string, only bool) error {
	d := w.dialect
	quote := false
	switch d.Style {
	case QuoteAlways:
		quote = true
	case QuoteNever:
		quote = false
	default:
		quote = d.needsQuotes(field, only)
	}

	if !quote {
		_, err := w.buf.WriteString(field)
		return err
	}

	if err := w.buf.WriteByte(d.Quote); err != nil {
		return err
	}
	// Without quote doubling the escape byte is escaped too, so a field
	// ending in it cannot swallow the closing quote.
	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] != d.Quote && (d.DoubleQuote || field[i] != d.Escape) {
			continue
		}
		if _, err := w.buf.WriteString(field[start:i]); err != nil {
			return err
		}
		esc := d.Escape
		if d.DoubleQuote {
			esc = d.Quote
		}
		if err := w.buf.WriteByte(esc); err != nil {
			return err
		}
		start = i
	}
	if _, err := w.buf.WriteString(field[start:]); err != nil {
		return err
	}
	return w.buf.WriteByte(d.Quote)
}

// Flush writes buffered rows to the underlying writer.
func (w *CSVWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return apperrors.NewIOError("flush output", w.buf.Flush())
}

// Count returns the number of rows written, header included.
func (w *CSVWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// BytesWritten returns the number of bytes handed to the underlying writer.
func (w *CSVWriter) BytesWritten() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.output.n
}

// Close flushes buffered rows and closes the underlying writer if it's a file.
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	flushErr := w.buf.Flush()
	if w.closeFunc != nil {
		if err := w.closeFunc(); err != nil && flushErr == nil {
			flushErr = err
		}
	}
	return apperrors.NewIOError("close output", flushErr)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
