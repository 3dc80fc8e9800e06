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

package output

import (
	"fmt"
	"strings"
)

// QuoteStyle decides which fields get wrapped in quotes.
type QuoteStyle string

const (
	// QuoteNecessary quotes fields containing the delimiter, the quote
	// character, CR or LF, and a lone empty field.
	QuoteNecessary QuoteStyle = "necessary"
	// QuoteAlways quotes every field.
	QuoteAlways QuoteStyle = "always"
	// QuoteNever writes fields verbatim; the output may not parse back.
	QuoteNever QuoteStyle = "never"
)

// ParseQuoteStyle validates a quote style name. The empty string means
// QuoteNecessary.
func ParseQuoteStyle(s string) (QuoteStyle, error) {
	switch q := QuoteStyle(strings.ToLower(strings.TrimSpace(s))); q {
	case "":
		return QuoteNecessary, nil
	case QuoteNecessary, QuoteAlways, QuoteNever:
		return q, nil
	default:
		return "", fmt.Errorf("unknown quote style %q (want necessary, always or never)", s)
	}
}

// Dialect describes the CSV flavor being written.
type Dialect struct {
	// Delimiter separates fields. Must be a single ASCII byte.
	Delimiter byte
	// Quote wraps fields that need quoting.
	Quote byte
	// DoubleQuote escapes an embedded quote by doubling it (RFC 4180).
	// When false the quote is preceded by Escape instead.
	DoubleQuote bool
	// Escape precedes embedded quotes when DoubleQuote is false.
	Escape byte
	Style  QuoteStyle
	// CRLF terminates lines with \r\n instead of \n.
	CRLF bool
}

// DefaultDialect returns comma-separated RFC 4180 output with \n line endings.
func DefaultDialect() Dialect {
	return Dialect{
		Delimiter:   ',',
		Quote:       '"',
		DoubleQuote: true,
		Escape:      '\\',
		Style:       QuoteNecessary,
	}
}

// Validate rejects dialects that would produce ambiguous output.
func (d Dialect) Validate() error {
	if d.Delimiter == 0 || d.Delimiter > 127 {
		return fmt.Errorf("delimiter must be a single ASCII character, got %q", d.Delimiter)
	}
	if d.Delimiter == '\r' || d.Delimiter == '\n' {
		return fmt.Errorf("delimiter cannot be a line terminator")
	}
	if d.Delimiter == d.Quote {
		return fmt.Errorf("delimiter and quote character are both %q", d.Delimiter)
	}
	if !d.DoubleQuote && d.Escape == 0 {
		return fmt.Errorf("an escape character is required when quote doubling is off")
	}
	if _, err := ParseQuoteStyle(string(d.Style)); err != nil {
		return err
	}
	return nil
}

func (d Dialect) lineTerminator() string {
	if d.CRLF {
		return "\r\n"
	}
	return "\n"
}

// needsQuotes reports whether field must be quoted under QuoteNecessary.
func (d Dialect) needsQuotes(field string, only bool) bool {
	if field == "" {
		// A record holding one empty field would otherwise be a blank line.
		return only
	}
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case d.Delimiter, d.Quote, '\r', '\n':
			return true
		}
		if !d.DoubleQuote && field[i] == d.Escape {
			return true
		}
	}
	return false
}
