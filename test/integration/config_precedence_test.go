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

package integration

import (
	"testing"

	"github.com/sirseerhq/json2csv/test/testutil"
)

// TestConfigPrecedence checks flags over env over file over defaults
func TestConfigPrecedence(t *testing.T) {
	skipUnlessIntegration(t)

	input := testutil.NewStream().Add(
		testutil.NewRecord().With("a", 1).WithRecord("n", testutil.NewRecord().With("x", 1)),
		testutil.NewRecord().With("b", 2),
	).Bytes()

	tests := []struct {
		name       string
		configFile map[string]interface{}
		envVars    map[string]string
		cliArgs    []string
		want       string
	}{
		{
			name: "defaults only",
			want: "a,n\n1,\"{\"\"x\"\":1}\"\n,\n",
		},
		{
			name: "config file only",
			configFile: map[string]interface{}{
				"convert": map[string]interface{}{"flatten": true, "samples": 2},
				"output":  map[string]interface{}{"delimiter": ";"},
			},
			want: "a;n.x;b\n1;1;\n;;2\n",
		},
		{
			name: "env var overrides config file",
			configFile: map[string]interface{}{
				"convert": map[string]interface{}{"flatten": true, "samples": 2},
				"output":  map[string]interface{}{"delimiter": ";"},
			},
			envVars: map[string]string{
				"JSON2CSV_DELIMITER": "|",
				"JSON2CSV_SAMPLES":   "1",
			},
			want: "a|n.x\n1|1\n|\n",
		},
		{
			name: "CLI flag overrides both config and env",
			configFile: map[string]interface{}{
				"convert": map[string]interface{}{"flatten": true, "samples": 2},
				"output":  map[string]interface{}{"delimiter": ";"},
			},
			envVars: map[string]string{
				"JSON2CSV_DELIMITER": "|",
			},
			cliArgs: []string{"--delimiter", ",", "--flatten=false", "--fields", "b,a"},
			want:    "b,a\n,1\n2,\n",
		},
		{
			name: "env only",
			envVars: map[string]string{
				"JSON2CSV_NO_HEADER": "true",
				"JSON2CSV_FIELDS":    "a",
			},
			want: "1\n\"\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.cliArgs
			if tt.configFile != nil {
				cfgPath := testutil.NewWorkspace(t).WriteConfig(tt.configFile)
				args = append([]string{"--config", cfgPath}, args...)
			}

			result := testutil.RunCLI(t, args, tt.envVars, input)
			testutil.AssertCLISuccess(t, result)
			testutil.AssertEqual(t, result.Stdout, tt.want)
		})
	}
}

// TestInvalidEnvironmentValue checks a garbage env value is a config error
func TestInvalidEnvironmentValue(t *testing.T) {
	skipUnlessIntegration(t)

	result := testutil.RunCLI(t, nil, map[string]string{"JSON2CSV_SAMPLES": "lots"}, []byte(`{"a":1}`))
	testutil.AssertExitCode(t, result, 1)
	testutil.AssertContainsString(t, result.Stderr, "JSON2CSV_SAMPLES")
}
