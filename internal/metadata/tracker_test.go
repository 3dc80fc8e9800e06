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

package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTracker_Counters(t *testing.T) {
	tests := []struct {
		name   string
		record func(*Tracker)
		want   Stats
	}{
		{
			name:   "empty run",
			record: func(*Tracker) {},
			want:   Stats{},
		},
		{
			name: "documents with unwind fan out",
			record: func(tr *Tracker) {
				tr.DocumentRead()
				tr.RecordsEmitted(3)
				tr.DocumentRead()
				tr.RecordsEmitted(0)
				for i := 0; i < 3; i++ {
					tr.RowWritten()
				}
			},
			want: Stats{DocumentsRead: 2, RecordsEmitted: 3, RowsWritten: 3},
		},
		{
			name: "skipped documents",
			record: func(tr *Tracker) {
				tr.DocumentRead()
				tr.DocumentSkipped()
				tr.DocumentRead()
				tr.RecordsEmitted(1)
				tr.RowWritten()
				tr.SetColumns([]string{"a", "b"})
			},
			want: Stats{DocumentsRead: 2, DocumentsSkipped: 1, RecordsEmitted: 1, RowsWritten: 1, Columns: []string{"a", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := New()
			tt.record(tracker)

			got := tracker.Stats()
			if got.DocumentsRead != tt.want.DocumentsRead {
				t.Errorf("DocumentsRead = %d, want %d", got.DocumentsRead, tt.want.DocumentsRead)
			}
			if got.DocumentsSkipped != tt.want.DocumentsSkipped {
				t.Errorf("DocumentsSkipped = %d, want %d", got.DocumentsSkipped, tt.want.DocumentsSkipped)
			}
			if got.RecordsEmitted != tt.want.RecordsEmitted {
				t.Errorf("RecordsEmitted = %d, want %d", got.RecordsEmitted, tt.want.RecordsEmitted)
			}
			if got.RowsWritten != tt.want.RowsWritten {
				t.Errorf("RowsWritten = %d, want %d", got.RowsWritten, tt.want.RowsWritten)
			}
			if strings.Join(got.Columns, ",") != strings.Join(tt.want.Columns, ",") {
				t.Errorf("Columns = %v, want %v", got.Columns, tt.want.Columns)
			}
		})
	}
}

func TestTracker_NilIsNoop(t *testing.T) {
	var tracker *Tracker
	tracker.DocumentRead()
	tracker.DocumentSkipped()
	tracker.RecordsEmitted(4)
	tracker.RowWritten()
	tracker.SetColumns([]string{"a"})

	if got := tracker.Stats(); got.DocumentsRead != 0 || got.Columns != nil {
		t.Errorf("nil tracker recorded %+v", got)
	}
	if tracker.Elapsed() != 0 {
		t.Error("nil tracker should report zero elapsed time")
	}
}

func TestTracker_SetColumnsCopies(t *testing.T) {
	cols := []string{"a", "b"}
	tracker := New()
	tracker.SetColumns(cols)
	cols[0] = "changed"

	if got := tracker.Stats().Columns; got[0] != "a" {
		t.Errorf("tracker shares caller slice: %v", got)
	}
}

func TestTracker_GenerateMetadata(t *testing.T) {
	tracker := New()
	tracker.DocumentRead()
	tracker.RecordsEmitted(2)
	tracker.RowWritten()
	tracker.RowWritten()
	tracker.SetColumns([]string{"a", "b"})

	params := RunParams{
		Input:     "in.json",
		Output:    "-",
		Flatten:   true,
		Separator: ".",
		UnwindOn:  "items",
		Samples:   1,
		Delimiter: ",",
	}

	metadata := tracker.GenerateMetadata("v1.2.3", "run-1", params, nil)

	if metadata.Version != "v1.2.3" {
		t.Errorf("Version = %s, want v1.2.3", metadata.Version)
	}
	if metadata.RunID != "run-1" {
		t.Errorf("RunID = %s, want run-1", metadata.RunID)
	}
	if metadata.Parameters.UnwindOn != "items" {
		t.Errorf("UnwindOn = %s, want items", metadata.Parameters.UnwindOn)
	}
	if metadata.Results.Status != StatusOK {
		t.Errorf("Status = %s, want %s", metadata.Results.Status, StatusOK)
	}
	if metadata.Results.RowsWritten != 2 {
		t.Errorf("RowsWritten = %d, want 2", metadata.Results.RowsWritten)
	}
	if metadata.Results.CompletedAt.Before(metadata.Results.StartedAt) {
		t.Error("CompletedAt precedes StartedAt")
	}
	if metadata.Results.Duration == "" {
		t.Error("Duration should be set")
	}
}

func TestTracker_GenerateMetadata_Failed(t *testing.T) {
	tracker := New()
	metadata := tracker.GenerateMetadata("dev", "run-2", RunParams{}, errors.New("boom"))

	if metadata.Results.Status != StatusFailed {
		t.Errorf("Status = %s, want %s", metadata.Results.Status, StatusFailed)
	}
	if metadata.Results.Error != "boom" {
		t.Errorf("Error = %q, want boom", metadata.Results.Error)
	}
	if metadata.Results.Columns == nil {
		t.Error("Columns should encode as an empty list, not null")
	}
}

func sampleMetadata() *RunMetadata {
	return &RunMetadata{
		Version: "v1.2.3",
		RunID:   "0b6f0c43-2d0e-4d59-9a43-6d1c0e0f7a11",
		Parameters: RunParams{
			Input:     "data.ndjson.gz",
			Output:    "data.csv",
			Samples:   10,
			Delimiter: ";",
		},
		Results: RunResults{
			Status:         StatusOK,
			DocumentsRead:  100,
			RecordsEmitted: 250,
			RowsWritten:    250,
			Columns:        []string{"id", "name"},
			Duration:       "1.5s",
			StartedAt:      time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC),
			CompletedAt:    time.Date(2023, 1, 1, 12, 0, 1, 500000000, time.UTC),
		},
	}
}

func TestSaveMetadata(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "reports", "run.json")
	metadata := sampleMetadata()

	if err := SaveMetadata(metadata, path); err != nil {
		t.Fatalf("SaveMetadata failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read metadata file: %v", err)
	}

	var loaded RunMetadata
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("failed to parse metadata: %v", err)
	}

	if loaded.RunID != metadata.RunID {
		t.Errorf("RunID = %s, want %s", loaded.RunID, metadata.RunID)
	}
	if loaded.Results.RowsWritten != metadata.Results.RowsWritten {
		t.Errorf("RowsWritten = %d, want %d", loaded.Results.RowsWritten, metadata.Results.RowsWritten)
	}

	// No temporary file is left behind
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file still present: %v", err)
	}
}

func TestSaveMetadata_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	first := sampleMetadata()
	if err := SaveMetadata(first, path); err != nil {
		t.Fatal(err)
	}
	second := sampleMetadata()
	second.RunID = "second"
	if err := SaveMetadata(second, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"run_id": "second"`) {
		t.Errorf("report was not replaced:\n%s", data)
	}
}

func TestWriteMetadataToWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMetadataToWriter(sampleMetadata(), &buf); err != nil {
		t.Fatalf("WriteMetadataToWriter failed: %v", err)
	}

	var loaded RunMetadata
	if err := json.Unmarshal(buf.Bytes(), &loaded); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "\n  \"version\"") {
		t.Error("output should be indented")
	}
	if !strings.Contains(output, `"documents_read": 100`) {
		t.Errorf("missing results block:\n%s", output)
	}
}
