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

// Package config provides configuration management for json2csv with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags the user actually set
//  2. Environment variables (JSON2CSV_*)
//  3. Configuration file
//  4. Built-in defaults
//
// Flags are applied by the CLI after LoadConfig returns; this package covers
// the remaining three layers and validation of the merged result.
package config

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/sirseerhq/json2csv/internal/convert"
	apperrors "github.com/sirseerhq/json2csv/internal/errors"
	"github.com/sirseerhq/json2csv/internal/output"
	"github.com/sirseerhq/json2csv/internal/source"
	"github.com/sirseerhq/json2csv/internal/transform"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "JSON2CSV_"

// LoadConfig loads configuration from the config file and environment.
// If configPath is provided, it loads from that specific file. Otherwise,
// it searches standard locations:
//   - .json2csv.yaml (current directory)
//   - .json2csv.yml (current directory)
//   - ~/.json2csv/config.yaml
//
// Returns an error if the specified config file cannot be loaded or an
// environment variable holds an unusable value, but succeeds with defaults
// if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(expandPath(configPath), cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".json2csv.yaml",
			".json2csv.yml",
			expandPath("~/.json2csv/config.yaml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: failed to read config file %s: %v", apperrors.ErrInvalidConfig, path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: failed to parse config file %s: %v", apperrors.ErrInvalidConfig, path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) error {
	lookup := func(name string) (string, bool) {
		v, ok := os.LookupEnv(EnvPrefix + name)
		return v, ok && v != ""
	}
	setBool := func(name string, dst *bool) error {
		v, ok := lookup(name)
		if !ok {
			return nil
		}
		b, err := cast.ToBoolE(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s: %v", apperrors.ErrInvalidConfig, EnvPrefix, name, err)
		}
		*dst = b
		return nil
	}
	setString := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	setString("COMPRESSION", &cfg.Input.Compression)
	setString("SEPARATOR", &cfg.Convert.Separator)
	setString("UNWIND_ON", &cfg.Convert.UnwindOn)
	setString("DELIMITER", &cfg.Output.Delimiter)
	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("LOG_FORMAT", &cfg.Log.Format)

	if v, ok := lookup("FIELDS"); ok {
		fields, err := ParseFields(v)
		if err != nil {
			return fmt.Errorf("%w: %sFIELDS: %v", apperrors.ErrInvalidConfig, EnvPrefix, err)
		}
		cfg.Convert.Fields = fields
	}
	if v, ok := lookup("SAMPLES"); ok {
		n, err := cast.ToIntE(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %sSAMPLES: %v", apperrors.ErrInvalidConfig, EnvPrefix, err)
		}
		cfg.Convert.Samples = n
	}

	for name, dst := range map[string]*bool{
		"FLATTEN":      &cfg.Convert.Flatten,
		"SKIP_INVALID": &cfg.Convert.SkipInvalid,
		"NO_HEADER":    &cfg.Output.NoHeader,
		"DOUBLE_QUOTE": &cfg.Output.DoubleQuote,
	} {
		if err := setBool(name, dst); err != nil {
			return err
		}
	}

	return nil
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// ParseFields splits a comma-separated field list the way the --fields
// flag does: one CSV record, names kept verbatim. A name containing a comma
// is written in double quotes.
func ParseFields(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	r := csv.NewReader(strings.NewReader(s))
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid field list %q: %w", s, err)
	}
	return fields, nil
}

// ParseDelimiter converts a delimiter setting to its byte. It accepts a
// single ASCII character, the escape `\t` or the word "tab".
func ParseDelimiter(s string) (byte, error) {
	switch s {
	case `\t`, "tab":
		return '\t', nil
	}
	if len(s) != 1 || s[0] > 127 {
		return 0, fmt.Errorf("delimiter must be a single ASCII character, got %q", s)
	}
	return s[0], nil
}

// ParseLogLevel converts debug, info, warn or error to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// Dialect returns the CSV dialect described by the output settings.
func (c *Config) Dialect() (output.Dialect, error) {
	delim, err := ParseDelimiter(c.Output.Delimiter)
	if err != nil {
		return output.Dialect{}, err
	}
	style, err := output.ParseQuoteStyle(c.Output.QuoteStyle)
	if err != nil {
		return output.Dialect{}, err
	}

	d := output.DefaultDialect()
	d.Delimiter = delim
	d.DoubleQuote = c.Output.DoubleQuote
	d.Style = style
	d.CRLF = c.Output.CRLF
	return d, d.Validate()
}

// SourceOptions returns the input reader settings.
func (c *Config) SourceOptions() (source.Options, error) {
	comp, err := source.ParseCompression(c.Input.Compression)
	if err != nil {
		return source.Options{}, err
	}
	return source.Options{Compression: comp}, nil
}

// ConvertOptions returns the pipeline settings. Call Validate first.
func (c *Config) ConvertOptions() convert.Options {
	return convert.Options{
		Fields: c.Convert.Fields,
		Pipeline: transform.Pipeline{
			UnwindOn:  c.Convert.UnwindOn,
			Flatten:   c.Convert.Flatten,
			Separator: c.Convert.Separator,
		},
		Samples:     c.Convert.Samples,
		NoHeader:    c.Output.NoHeader,
		SkipInvalid: c.Convert.SkipInvalid,
	}
}

// HeaderFormat returns the header listing format.
func (c *Config) HeaderFormat() (output.HeaderFormat, error) {
	return output.ParseHeaderFormat(c.Output.HeaderFormat)
}

// Validate checks if the configuration contains valid values. This should
// be called after every layer, flags included, has been applied. Errors
// wrap errors.ErrInvalidConfig.
func (c *Config) Validate() error {
	invalid := func(err error) error {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}

	if c.Convert.Samples < 0 {
		return invalid(fmt.Errorf("samples must not be negative, got: %d", c.Convert.Samples))
	}
	if c.Convert.Separator == "" {
		return invalid(fmt.Errorf("flatten separator cannot be empty"))
	}
	if _, err := c.Dialect(); err != nil {
		return invalid(err)
	}
	if _, err := c.SourceOptions(); err != nil {
		return invalid(err)
	}
	if _, err := c.HeaderFormat(); err != nil {
		return invalid(err)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return invalid(err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return invalid(fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format))
	}
	return nil
}
