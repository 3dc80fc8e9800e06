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

package testutil

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// Workspace is a per-test directory holding the input, config, output and
// report files of one CLI run. It is removed when the test ends.
type Workspace struct {
	t   *testing.T
	Dir string
}

// NewWorkspace creates an empty workspace
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return &Workspace{t: t, Dir: t.TempDir()}
}

// Path returns the absolute path of name inside the workspace
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// WriteInput stores data as an input file and returns its path. Missing
// parent directories are created.
func (w *Workspace) WriteInput(name string, data []byte) string {
	w.t.Helper()

	path := w.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		w.t.Fatalf("create input dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		w.t.Fatalf("write input %s: %v", name, err)
	}
	return path
}

// WriteConfig marshals cfg as YAML into json2csv.yaml and returns its path,
// ready for --config.
func (w *Workspace) WriteConfig(cfg interface{}) string {
	w.t.Helper()

	content, err := yaml.Marshal(cfg)
	if err != nil {
		w.t.Fatalf("marshal config: %v", err)
	}
	return w.WriteInput("json2csv.yaml", content)
}

// ReadOutput returns the contents of a file the CLI wrote
func (w *Workspace) ReadOutput(name string) string {
	w.t.Helper()

	data, err := os.ReadFile(w.Path(name))
	if err != nil {
		w.t.Fatalf("read output %s: %v", name, err)
	}
	return string(data)
}

// AssertOutput checks that the named file holds exactly want
func (w *Workspace) AssertOutput(name, want string) {
	w.t.Helper()

	if got := w.ReadOutput(name); got != want {
		w.t.Errorf("%s mismatch\nGot:  %q\nWant: %q", name, got, want)
	}
}

// AssertMissing checks that the CLI did not create name
func (w *Workspace) AssertMissing(name string) {
	w.t.Helper()

	if _, err := os.Stat(w.Path(name)); !errors.Is(err, fs.ErrNotExist) {
		w.t.Errorf("expected %s not to exist (stat error: %v)", name, err)
	}
}

// ReadReport decodes the JSON run report written by --metadata-file into v
func (w *Workspace) ReadReport(name string, v interface{}) {
	w.t.Helper()

	if err := json.Unmarshal([]byte(w.ReadOutput(name)), v); err != nil {
		w.t.Fatalf("decode report %s: %v", name, err)
	}
}

// AssertReport decodes a run report and checks its top-level sections
func (w *Workspace) AssertReport(name string) map[string]interface{} {
	w.t.Helper()

	var report map[string]interface{}
	w.ReadReport(name, &report)
	for _, section := range []string{"version", "run_id", "parameters", "results"} {
		if _, ok := report[section]; !ok {
			w.t.Errorf("report %s has no %q section", name, section)
		}
	}
	return report
}
