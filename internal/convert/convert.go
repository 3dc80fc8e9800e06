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

package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	apperrors "github.com/sirseerhq/json2csv/internal/errors"
	"github.com/sirseerhq/json2csv/internal/header"
	"github.com/sirseerhq/json2csv/internal/jsonvalue"
	"github.com/sirseerhq/json2csv/internal/metadata"
	"github.com/sirseerhq/json2csv/internal/output"
	"github.com/sirseerhq/json2csv/internal/project"
	"github.com/sirseerhq/json2csv/internal/transform"
)

// Source yields top-level JSON documents. Next returns io.EOF once the
// stream is exhausted. *source.Reader satisfies it.
type Source interface {
	Next() (jsonvalue.Value, error)
}

// Options configures a run. It is copied into the Converter and never
// modified afterwards.
type Options struct {
	// Fields is the explicit header. When empty the header is detected.
	Fields []string
	// Pipeline holds the unwind and flatten settings.
	Pipeline transform.Pipeline
	// Samples is the number of source documents scanned for detection.
	Samples int
	// NoHeader suppresses the header row.
	NoHeader bool
	// SkipInvalid drops top-level documents that are not objects instead
	// of failing the run.
	SkipInvalid bool
}

// DefaultOptions returns options for auto-detection over one document.
func DefaultOptions() Options {
	return Options{
		Samples:  header.DefaultSamples,
		Pipeline: transform.Pipeline{Separator: transform.DefaultSeparator},
	}
}

// Converter turns a stream of JSON documents into CSV rows.
type Converter struct {
	opts    Options
	logger  *slog.Logger
	tracker *metadata.Tracker
}

// New creates a Converter. A nil logger discards log output; a nil tracker
// records nothing.
func New(opts Options, logger *slog.Logger, tracker *metadata.Tracker) *Converter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts.Fields = slices.Clone(opts.Fields)
	return &Converter{
		opts:    opts,
		logger:  logger,
		tracker: tracker,
	}
}

// Convert writes src to w as CSV. Rows are written as they are produced;
// if the run fails part way, rows written so far are flushed and left in
// place. Convert does not close w.
func (c *Converter) Convert(ctx context.Context, src Source, w output.RowWriter) error {
	err := c.convert(ctx, src, w)
	if flushErr := w.Flush(); err == nil {
		err = flushErr
	}
	return err
}

func (c *Converter) convert(ctx context.Context, src Source, w output.RowWriter) error {
	p := c.producer(ctx, src)

	res, err := c.resolve(p)
	if err != nil {
		return err
	}

	if !c.opts.NoHeader {
		if err := w.WriteRow(res.Columns); err != nil {
			return err
		}
	}

	row := make([]string, 0, len(res.Columns))
	write := func(record jsonvalue.Value) error {
		row = project.AppendRow(row[:0], res.Columns, record)
		if err := w.WriteRow(row); err != nil {
			return err
		}
		c.tracker.RowWritten()
		return nil
	}

	if err := res.Samples.Drain(write); err != nil {
		return err
	}
	if res.Exhausted {
		return nil
	}

	for {
		records, err := p.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		for _, record := range records {
			if err := write(record); err != nil {
				return err
			}
		}
	}
}

// Headers resolves the header without writing any rows. With explicit
// fields nothing is read from src.
func (c *Converter) Headers(ctx context.Context, src Source) ([]string, error) {
	res, err := c.resolve(c.producer(ctx, src))
	if err != nil {
		return nil, err
	}
	return res.Columns, nil
}

func (c *Converter) resolve(p header.Producer) (header.Resolution, error) {
	if len(c.opts.Fields) > 0 {
		res := header.Explicit(c.opts.Fields)
		c.tracker.SetColumns(res.Columns)
		c.logger.Debug("using explicit header", "columns", len(res.Columns))
		return res, nil
	}

	res, err := header.Detect(p, c.opts.Samples)
	if err != nil {
		return header.Resolution{}, err
	}
	if c.opts.Samples > 0 && res.Documents == 0 {
		return header.Resolution{}, apperrors.ErrEmptyStream
	}

	c.tracker.SetColumns(res.Columns)
	c.logger.Debug("detected header",
		"columns", len(res.Columns),
		"sampled_documents", res.Documents,
		"buffered_records", res.Samples.Len(),
		"exhausted", res.Exhausted)
	return res, nil
}

// producer adapts src to a header.Producer that yields the transformed
// records of one object document per call, skipping or rejecting other
// documents. The context is checked before each document is read.
func (c *Converter) producer(ctx context.Context, src Source) header.Producer {
	index := 0
	return header.ProducerFunc(func() ([]jsonvalue.Value, error) {
		for {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("conversion interrupted: %w", err)
			}

			doc, err := src.Next()
			if err != nil {
				return nil, err
			}
			current := index
			index++
			c.tracker.DocumentRead()

			if !doc.IsObject() {
				shapeErr := &apperrors.ShapeError{Document: current, Kind: doc.Kind().String()}
				if !c.opts.SkipInvalid {
					return nil, shapeErr
				}
				c.tracker.DocumentSkipped()
				c.logger.Warn("skipping document", "document", current, "kind", doc.Kind().String())
				continue
			}

			records := c.opts.Pipeline.Apply(doc)
			c.tracker.RecordsEmitted(len(records))
			return records, nil
		}
	})
}
