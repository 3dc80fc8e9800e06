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
	"time"
)

// RunMetadata is the report written for a single conversion run. It records
// the options the run used and what it produced, so a CSV file can be traced
// back to the invocation that made it.
type RunMetadata struct {
	Version    string     `json:"version"`
	RunID      string     `json:"run_id"`
	Parameters RunParams  `json:"parameters"`
	Results    RunResults `json:"results"`
}

// RunParams captures the effective options of a run after flags, environment
// and config file have been merged.
type RunParams struct {
	Input       string   `json:"input"`
	Output      string   `json:"output"`
	Compression string   `json:"compression"`
	Fields      []string `json:"fields,omitempty"`
	Flatten     bool     `json:"flatten"`
	Separator   string   `json:"separator,omitempty"`
	UnwindOn    string   `json:"unwind_on,omitempty"`
	Samples     int      `json:"samples"`
	NoHeader    bool     `json:"no_header"`
	SkipInvalid bool     `json:"skip_invalid"`
	Delimiter   string   `json:"delimiter"`
}

// RunResults holds the counters gathered while the run streamed.
type RunResults struct {
	Status           string    `json:"status"`
	Error            string    `json:"error,omitempty"`
	DocumentsRead    int       `json:"documents_read"`
	DocumentsSkipped int       `json:"documents_skipped"`
	RecordsEmitted   int       `json:"records_emitted"`
	RowsWritten      int       `json:"rows_written"`
	Columns          []string  `json:"columns"`
	Duration         string    `json:"duration"`
	StartedAt        time.Time `json:"started_at"`
	CompletedAt      time.Time `json:"completed_at"`
}

const (
	// StatusOK marks a run that converted its whole input.
	StatusOK = "ok"
	// StatusFailed marks a run that stopped on an error. Rows flushed before
	// the error are still counted.
	StatusFailed = "failed"
)
