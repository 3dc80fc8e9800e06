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

// Package convert runs the JSON to CSV pipeline.
//
// A Converter reads top-level documents from a Source, unwinds and flattens
// each one, resolves the header and writes one CSV row per resulting record.
// When no fields are given, the header is detected from the first documents
// of the stream; those documents are buffered and written before the rest of
// the stream, which is never rewound.
//
// Example usage:
//
//	src, err := source.Open("events.ndjson.gz", source.Options{})
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	w, err := output.NewCSVWriter(os.Stdout, output.DefaultDialect())
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	opts := convert.DefaultOptions()
//	opts.Pipeline.Flatten = true
//	return convert.New(opts, logger, nil).Convert(ctx, src, w)
package convert
