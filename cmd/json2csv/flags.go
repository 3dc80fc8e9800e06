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
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sirseerhq/json2csv/internal/config"
)

// cliOptions holds the raw flag values. Only flags the user set are applied
// on top of the loaded configuration.
type cliOptions struct {
	configPath   string
	output       string
	metadataFile string
	getHeaders   bool

	fields      []string
	flatten     bool
	separator   string
	unwindOn    string
	samples     int
	skipInvalid bool
	compression string

	delimiter    string
	noHeader     bool
	doubleQuote  bool
	quoteStyle   string
	crlf         bool
	headerFormat string

	logLevel  string
	logFormat string
}

func bindFlags(fs *pflag.FlagSet, o *cliOptions) {
	defaults := config.DefaultConfig()

	fs.StringVar(&o.configPath, "config", "", "Path to a YAML config file")
	fs.StringVarP(&o.output, "output", "o", "", "Output file path (default: stdout)")
	fs.StringVar(&o.metadataFile, "metadata-file", "", "Write a JSON run report to this path")
	fs.BoolVar(&o.getHeaders, "get-headers", false, "Print the resolved header instead of converting")

	fs.StringSliceVarP(&o.fields, "fields", "f", nil, "Columns to write, comma-separated or repeated; quote names containing commas (default: detect from input)")
	fs.BoolVarP(&o.flatten, "flatten", "F", defaults.Convert.Flatten, "Flatten nested objects and arrays into path columns")
	fs.StringVar(&o.separator, "separator", defaults.Convert.Separator, "Separator joining flattened path segments")
	fs.StringVarP(&o.unwindOn, "unwind-on", "U", "", "Top-level array field to expand into one row per element")
	fs.IntVarP(&o.samples, "samples", "s", defaults.Convert.Samples, "Number of documents scanned to detect the header")
	fs.BoolVar(&o.skipInvalid, "skip-invalid", defaults.Convert.SkipInvalid, "Skip top-level documents that are not objects")
	fs.StringVar(&o.compression, "compression", defaults.Input.Compression, "Input compression: auto, none, gzip, zstd or lz4")

	fs.StringVarP(&o.delimiter, "delimiter", "d", defaults.Output.Delimiter, "Field delimiter (single ASCII character, or tab)")
	fs.BoolVar(&o.noHeader, "no-header", defaults.Output.NoHeader, "Do not write the header row")
	fs.BoolVar(&o.doubleQuote, "double-quote", defaults.Output.DoubleQuote, "Escape quotes by doubling them; false escapes with a backslash")
	fs.StringVar(&o.quoteStyle, "quote-style", defaults.Output.QuoteStyle, "When to quote fields: necessary, always or never")
	fs.BoolVar(&o.crlf, "crlf", defaults.Output.CRLF, "Terminate lines with CRLF")
	fs.StringVar(&o.headerFormat, "header-format", defaults.Output.HeaderFormat, "Header listing format: lines, quoted or table")

	fs.StringVar(&o.logLevel, "log-level", defaults.Log.Level, "Log level: debug, info, warn or error")
	fs.StringVar(&o.logFormat, "log-format", defaults.Log.Format, "Log format: text or json")
}

// loadConfig merges defaults, config file, environment and the flags the
// user set, in increasing precedence, and validates the result.
func loadConfig(cmd *cobra.Command, o *cliOptions) (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd.Flags(), o, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(fs *pflag.FlagSet, o *cliOptions, cfg *config.Config) {
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}

	set("fields", func() { cfg.Convert.Fields = append([]string(nil), o.fields...) })
	set("flatten", func() { cfg.Convert.Flatten = o.flatten })
	set("separator", func() { cfg.Convert.Separator = o.separator })
	set("unwind-on", func() { cfg.Convert.UnwindOn = o.unwindOn })
	set("samples", func() { cfg.Convert.Samples = o.samples })
	set("skip-invalid", func() { cfg.Convert.SkipInvalid = o.skipInvalid })
	set("compression", func() { cfg.Input.Compression = o.compression })

	set("delimiter", func() { cfg.Output.Delimiter = o.delimiter })
	set("no-header", func() { cfg.Output.NoHeader = o.noHeader })
	set("double-quote", func() { cfg.Output.DoubleQuote = o.doubleQuote })
	set("quote-style", func() { cfg.Output.QuoteStyle = o.quoteStyle })
	set("crlf", func() { cfg.Output.CRLF = o.crlf })
	set("header-format", func() { cfg.Output.HeaderFormat = o.headerFormat })

	set("log-level", func() { cfg.Log.Level = o.logLevel })
	set("log-format", func() { cfg.Log.Format = o.logFormat })
}
