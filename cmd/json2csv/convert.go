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

package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/json2csv/internal/config"
	"github.com/sirseerhq/json2csv/internal/convert"
	apperrors "github.com/sirseerhq/json2csv/internal/errors"
	"github.com/sirseerhq/json2csv/internal/metadata"
	"github.com/sirseerhq/json2csv/internal/output"
	"github.com/sirseerhq/json2csv/internal/source"
)

// runConvert executes a conversion run
func runConvert(cmd *cobra.Command, args []string, opts *cliOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := newLogger(cmd.ErrOrStderr(), cfg, runID)

	src, inputName, err := openInput(cmd, args, cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	dialect, err := cfg.Dialect()
	if err != nil {
		return err
	}
	writer, outputName, err := openOutput(cmd, opts.output, dialect)
	if err != nil {
		return err
	}

	logger.Debug("starting conversion", "input", inputName, "output", outputName)

	tracker := metadata.New()
	runErr := convert.New(cfg.ConvertOptions(), logger, tracker).Convert(cmd.Context(), src, writer)
	if closeErr := writer.Close(); runErr == nil {
		runErr = closeErr
	}

	stats := tracker.Stats()
	logger.Info("conversion finished",
		"documents", humanize.Comma(int64(stats.DocumentsRead)),
		"skipped", humanize.Comma(int64(stats.DocumentsSkipped)),
		"rows", humanize.Comma(int64(stats.RowsWritten)),
		"lines", humanize.Comma(int64(writer.Count())),
		"columns", len(stats.Columns),
		"written", humanize.Bytes(uint64(writer.BytesWritten())),
		"elapsed", tracker.Elapsed().Round(time.Millisecond))

	if opts.metadataFile != "" {
		params := runParams(cfg, inputName, outputName)
		md := tracker.GenerateMetadata(version, runID, params, runErr)
		if err := metadata.SaveMetadata(md, opts.metadataFile); err != nil {
			logger.Error("failed to save run metadata", "path", opts.metadataFile, "error", err)
			if runErr == nil {
				runErr = apperrors.NewIOError("write metadata", err)
			}
		}
	}

	return runErr
}

// runHeaders prints the resolved header without converting
func runHeaders(cmd *cobra.Command, args []string, opts *cliOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	format, err := cfg.HeaderFormat()
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg, uuid.NewString())

	src, _, err := openInput(cmd, args, cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	columns, err := convert.New(cfg.ConvertOptions(), logger, nil).Headers(cmd.Context(), src)
	if err != nil {
		return err
	}

	if opts.output == "" || opts.output == "-" {
		return output.WriteHeaders(cmd.OutOrStdout(), columns, format)
	}

	file, err := os.Create(opts.output)
	if err != nil {
		return apperrors.NewIOError("create output file", err)
	}
	if err := output.WriteHeaders(file, columns, format); err != nil {
		_ = file.Close()
		return err
	}
	return apperrors.NewIOError("close output", file.Close())
}

// openInput opens the INPUT argument, or stdin when it is absent or "-".
func openInput(cmd *cobra.Command, args []string, cfg *config.Config) (*source.Reader, string, error) {
	srcOpts, err := cfg.SourceOptions()
	if err != nil {
		return nil, "", err
	}

	if len(args) == 0 || args[0] == "-" {
		r, err := source.New(cmd.InOrStdin(), srcOpts)
		return r, "-", err
	}

	r, err := source.Open(args[0], srcOpts)
	return r, args[0], err
}

// openOutput creates the --output file, or wraps stdout when it is empty.
func openOutput(cmd *cobra.Command, path string, dialect output.Dialect) (*output.CSVWriter, string, error) {
	if path == "" || path == "-" {
		w, err := output.NewCSVWriter(cmd.OutOrStdout(), dialect)
		return w, "-", err
	}

	w, err := output.NewFileCSVWriter(path, dialect)
	return w, path, err
}

// newLogger builds the stderr logger. Configuration has been validated, so
// the level parses.
func newLogger(w io.Writer, cfg *config.Config, runID string) *slog.Logger {
	level, _ := config.ParseLogLevel(cfg.Log.Level)
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.Log.Format, "json") {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler).With("run_id", runID)
}

func runParams(cfg *config.Config, input, out string) metadata.RunParams {
	return metadata.RunParams{
		Input:       input,
		Output:      out,
		Compression: cfg.Input.Compression,
		Fields:      cfg.Convert.Fields,
		Flatten:     cfg.Convert.Flatten,
		Separator:   cfg.Convert.Separator,
		UnwindOn:    cfg.Convert.UnwindOn,
		Samples:     cfg.Convert.Samples,
		NoHeader:    cfg.Output.NoHeader,
		SkipInvalid: cfg.Convert.SkipInvalid,
		Delimiter:   cfg.Output.Delimiter,
	}
}
