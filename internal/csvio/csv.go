// Package csvio serializes uniform flat records to CSV and XLSX.
package csvio

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// ErrNoData is returned when a caller asks to export an empty record set.
var ErrNoData = errors.New("no data to export")

// Column describes one exported column. Exactly one of Field or Compute is
// set: Field reads the named key from the row, Compute derives the value.
// Header, when set, is emitted verbatim instead of the humanized Key; user
// supplied display names must survive export unchanged.
type Column struct {
	Key     string // humanized into the output header unless Header is set
	Header  string
	Field   string
	Compute func(row map[string]any) string
}

// FieldColumn returns a column that reads key directly from each row.
func FieldColumn(key string) Column {
	return Column{Key: key, Field: key}
}

// ComputedColumn returns a column whose value is derived per row.
func ComputedColumn(key string, compute func(row map[string]any) string) Column {
	return Column{Key: key, Compute: compute}
}

func (c Column) header() string {
	if c.Header != "" {
		return c.Header
	}
	return Humanize(c.Key)
}

func (c Column) value(row map[string]any) string {
	if c.Compute != nil {
		return c.Compute(row)
	}
	return CellString(row[c.Field])
}

// WriteCSV serializes rows to w as comma-separated text with a humanized
// header row. Cells containing commas, quotes or newlines are wrapped in
// double quotes with embedded quotes doubled, so the output re-parses
// exactly with a standard CSV reader. An empty row set yields ErrNoData and
// nothing is written.
func WriteCSV(w io.Writer, columns []Column, rows []map[string]any) error {
	if len(rows) == 0 {
		return ErrNoData
	}

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = escapeCell(c.header())
	}

	out := make([]string, 0, len(rows)+1)
	out = append(out, strings.Join(headers, ","))
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = escapeCell(c.value(row))
		}
		out = append(out, strings.Join(cells, ","))
	}

	if _, err := io.WriteString(w, strings.Join(out, "\n")); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// Humanize turns a record key into a display header: a space is inserted
// before each internal uppercase letter and the first letter is capitalized,
// e.g. "dueDate" becomes "Due Date". The transform is cosmetic and
// one-directional.
func Humanize(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	s := b.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// CellString renders a primitive cell value. Nil renders as the empty
// string; floats drop trailing zeros so numbers round-trip as typed.
func CellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprint(val)
	}
}

func escapeCell(value string) string {
	if strings.ContainsAny(value, "\",\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
