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

// Package metadata tracks statistics about a conversion run and persists
// them as a JSON report. It records how many documents were read or skipped,
// how many records unwinding produced, how many rows were written, and the
// resolved header.
//
// The report is written only when asked for (--metadata-file) and is never
// read back; each run is independent.
package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Tracker collects statistics during a run. A nil *Tracker is valid and
// records nothing, so callers that do not want a report can pass nil.
type Tracker struct {
	startTime time.Time
	stats     Stats
}

// Stats is a snapshot of the run counters.
type Stats struct {
	DocumentsRead    int
	DocumentsSkipped int
	RecordsEmitted   int
	RowsWritten      int
	Columns          []string
}

// New creates a new tracker and initializes it with the current time.
func New() *Tracker {
	return &Tracker{
		startTime: time.Now(),
	}
}

// DocumentRead records a top-level document decoded from the input.
func (t *Tracker) DocumentRead() {
	if t == nil {
		return
	}
	t.stats.DocumentsRead++
}

// DocumentSkipped records a document dropped because it was not an object.
func (t *Tracker) DocumentSkipped() {
	if t == nil {
		return
	}
	t.stats.DocumentsSkipped++
}

// RecordsEmitted records the records one document produced after unwinding.
func (t *Tracker) RecordsEmitted(n int) {
	if t == nil {
		return
	}
	t.stats.RecordsEmitted += n
}

// RowWritten records a data row handed to the CSV writer. The header row
// is not counted.
func (t *Tracker) RowWritten() {
	if t == nil {
		return
	}
	t.stats.RowsWritten++
}

// SetColumns records the resolved header.
func (t *Tracker) SetColumns(columns []string) {
	if t == nil {
		return
	}
	t.stats.Columns = append([]string(nil), columns...)
}

// Stats returns a copy of the current counters.
func (t *Tracker) Stats() Stats {
	if t == nil {
		return Stats{}
	}
	s := t.stats
	s.Columns = append([]string(nil), t.stats.Columns...)
	return s
}

// Elapsed returns the time since the tracker was created.
func (t *Tracker) Elapsed() time.Duration {
	if t == nil {
		return 0
	}
	return time.Since(t.startTime)
}

// GenerateMetadata creates the report for the run. runErr is the error the
// run ended with, if any; it marks the report as failed.
func (t *Tracker) GenerateMetadata(version, runID string, params RunParams, runErr error) *RunMetadata {
	completedAt := time.Now()
	stats := t.Stats()

	results := RunResults{
		Status:           StatusOK,
		DocumentsRead:    stats.DocumentsRead,
		DocumentsSkipped: stats.DocumentsSkipped,
		RecordsEmitted:   stats.RecordsEmitted,
		RowsWritten:      stats.RowsWritten,
		Columns:          stats.Columns,
		CompletedAt:      completedAt,
	}
	if results.Columns == nil {
		results.Columns = []string{}
	}
	if t != nil {
		results.StartedAt = t.startTime
		results.Duration = completedAt.Sub(t.startTime).String()
	}
	if runErr != nil {
		results.Status = StatusFailed
		results.Error = runErr.Error()
	}

	return &RunMetadata{
		Version:    version,
		RunID:      runID,
		Parameters: params,
		Results:    results,
	}
}

// SaveMetadata writes metadata as indented JSON to path. The file is written
// to a temporary sibling first and renamed into place, so readers never see
// a partial report.
func SaveMetadata(metadata *RunMetadata, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create metadata directory: %w", err)
	}

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to create metadata file: %w", err)
	}

	if err := WriteMetadataToWriter(metadata, file); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to close metadata file: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to save metadata file: %w", err)
	}

	return nil
}

// WriteMetadataToWriter serializes metadata to JSON and writes it to the
// provided io.Writer. The output is formatted with indentation for readability.
func WriteMetadataToWriter(metadata *RunMetadata, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(metadata)
}
