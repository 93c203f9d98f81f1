package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"vista/internal/record"
)

// ExportMode selects the CSV dialect written by Export.
type ExportMode int

const (
	// ExportRFC4180 quotes fields containing commas, quotes, line breaks
	// or a leading space and doubles embedded quotes.
	ExportRFC4180 ExportMode = iota
	// ExportMinimal only wraps strings containing a comma in quotes and
	// joins records with "\n" without a trailing newline. Quotes and line
	// breaks inside values are written as-is.
	ExportMinimal
)

func (m ExportMode) String() string {
	if m == ExportMinimal {
		return "minimal"
	}
	return "rfc4180"
}

// ParseExportMode maps a config string to a mode; unknown strings fall
// back to ExportRFC4180.
func ParseExportMode(s string) ExportMode {
	if strings.EqualFold(strings.TrimSpace(s), "minimal") {
		return ExportMinimal
	}
	return ExportRFC4180
}

// Export writes the column labels followed by one record per row, using raw
// values in schema order. Callers pass the full searched and sorted
// sequence, not a page window.
func Export(w io.Writer, schema Schema, rows []record.Row, mode ExportMode) error {
	if mode == ExportMinimal {
		return exportMinimal(w, schema, rows)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(labels(schema)); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	fields := make([]string, schema.Len())
	for _, row := range rows {
		for i, col := range schema.cols {
			fields[i] = row.Get(col.Key).String()
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// ExportString is Export into a string.
func ExportString(schema Schema, rows []record.Row, mode ExportMode) (string, error) {
	var sb strings.Builder
	if err := Export(&sb, schema, rows, mode); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func exportMinimal(w io.Writer, schema Schema, rows []record.Row) error {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(labels(schema), ","))

	fields := make([]string, schema.Len())
	for _, row := range rows {
		for i, col := range schema.cols {
			v := row.Get(col.Key)
			s := v.String()
			if v.IsString() && strings.Contains(s, ",") {
				s = `"` + s + `"`
			}
			fields[i] = s
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	if _, err := io.WriteString(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func labels(schema Schema) []string {
	out := make([]string, schema.Len())
	for i, col := range schema.cols {
		out[i] = col.Label
	}
	return out
}
