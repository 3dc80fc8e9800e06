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
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	apperrors "github.com/sirseerhq/json2csv/internal/errors"
)

// HeaderFormat selects how a header listing is printed.
type HeaderFormat string

const (
	// HeaderLines prints one column name per line.
	HeaderLines HeaderFormat = "lines"
	// HeaderQuoted prints all names on one line as space-separated quoted strings.
	HeaderQuoted HeaderFormat = "quoted"
	// HeaderTable prints an indexed table.
	HeaderTable HeaderFormat = "table"
)

// ParseHeaderFormat validates a header format name. The empty string means
// HeaderLines.
func ParseHeaderFormat(s string) (HeaderFormat, error) {
	switch f := HeaderFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return HeaderLines, nil
	case HeaderLines, HeaderQuoted, HeaderTable:
		return f, nil
	default:
		return "", fmt.Errorf("unknown header format %q (want lines, quoted or table)", s)
	}
}

// WriteHeaders prints a resolved column list.
func WriteHeaders(w io.Writer, columns []string, format HeaderFormat) error {
	var text string
	switch format {
	case HeaderQuoted:
		quoted := lo.Map(columns, func(c string, _ int) string { return strconv.Quote(c) })
		text = strings.Join(quoted, " ") + "\n"
	case HeaderTable:
		t := table.NewWriter()
		t.AppendHeader(table.Row{"#", "Column"})
		for i, c := range columns {
			t.AppendRow(table.Row{i + 1, c})
		}
		t.SetStyle(table.StyleLight)
		text = t.Render() + "\n"
	case HeaderLines, "":
		var b strings.Builder
		for _, c := range columns {
			b.WriteString(c)
			b.WriteByte('\n')
		}
		text = b.String()
	default:
		return fmt.Errorf("%w: unknown header format %q", apperrors.ErrInvalidConfig, format)
	}

	if _, err := io.WriteString(w, text); err != nil {
		return apperrors.NewIOError("write headers", err)
	}
	return nil
}
