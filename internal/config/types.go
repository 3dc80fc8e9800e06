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

// Package config types define the configuration structures used throughout
// json2csv. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

import (
	"github.com/sirseerhq/json2csv/internal/header"
	"github.com/sirseerhq/json2csv/internal/output"
	"github.com/sirseerhq/json2csv/internal/source"
	"github.com/sirseerhq/json2csv/internal/transform"
)

// Config represents the complete configuration for a json2csv run.
// It consolidates settings from various sources and is turned into the
// immutable options of each pipeline stage once loading is complete.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Convert ConvertConfig `yaml:"convert"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
}

// InputConfig controls how the input stream is opened.
type InputConfig struct {
	// Compression is auto, none, gzip, zstd or lz4.
	Compression string `yaml:"compression"`
}

// ConvertConfig controls header resolution and record transformation.
type ConvertConfig struct {
	Fields      []string `yaml:"fields"`
	Flatten     bool     `yaml:"flatten"`
	Separator   string   `yaml:"separator"`
	UnwindOn    string   `yaml:"unwind_on"`
	Samples     int      `yaml:"samples"`
	SkipInvalid bool     `yaml:"skip_invalid"`
}

// OutputConfig controls the CSV dialect and the header listing format.
type OutputConfig struct {
	// Delimiter is a single ASCII character, or `\t` / "tab".
	Delimiter    string `yaml:"delimiter"`
	NoHeader     bool   `yaml:"no_header"`
	DoubleQuote  bool   `yaml:"double_quote"`
	QuoteStyle   string `yaml:"quote_style"`
	CRLF         bool   `yaml:"crlf"`
	HeaderFormat string `yaml:"header_format"`
}

// LogConfig controls diagnostic output on stderr.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config producing RFC 4180 CSV with the header
// detected from the first document.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Compression: string(source.CompressionAuto),
		},
		Convert: ConvertConfig{
			Separator: transform.DefaultSeparator,
			Samples:   header.DefaultSamples,
		},
		Output: OutputConfig{
			Delimiter:    ",",
			DoubleQuote:  true,
			QuoteStyle:   string(output.QuoteNecessary),
			HeaderFormat: string(output.HeaderLines),
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}
