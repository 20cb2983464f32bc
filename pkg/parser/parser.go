// pkg/parser/parser.go
package parser

import (
	"fmt"
	"os"
	"strings"
)

// Row is one parsed data line, keyed by header name.
type Row map[string]string

// Result holds the parsed rows together with the header order of the
// source file. Header order matters for deterministic iteration in
// logging and tests.
type Result struct {
	Headers []string
	Rows    []Row
}

// Parse converts raw delimited text into rows keyed by the header line.
//
// Legacy exports quote fields that contain commas or newlines, so a
// single record may span several physical lines. Parsing happens in two
// phases: logical-row assembly (quote parity carried across physical
// lines) and per-character field splitting. Parse never fails on
// malformed input; unbalanced quotes are flushed as a best-effort final
// row at end of input.
func Parse(text string) *Result {
	logical := assembleLogicalRows(text)
	if len(logical) == 0 {
		return &Result{}
	}

	headers := splitFields(logical[0])
	rows := make([]Row, 0, len(logical)-1)

	for _, line := range logical[1:] {
		fields := splitFields(line)
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(fields) {
				row[h] = fields[i]
			} else {
				// Short rows yield empty strings for the
				// missing trailing columns.
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Result{Headers: headers, Rows: rows}
}

// ParseFile reads and parses a delimited text file. The returned error
// covers I/O only; content is always parsed best-effort.
func ParseFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// assembleLogicalRows joins physical lines into logical rows. A line
// with an odd number of quote characters toggles the open-quote state;
// while open, continuation lines are appended with the newline
// re-inserted. Any buffered content left at end of input is flushed.
func assembleLogicalRows(text string) []string {
	var (
		logical   []string
		buf       strings.Builder
		openQuote bool
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if openQuote {
			buf.WriteString("\n")
			buf.WriteString(line)
		} else {
			if strings.TrimSpace(line) == "" {
				continue
			}
			buf.Reset()
			buf.WriteString(line)
		}

		if strings.Count(line, `"`)%2 == 1 {
			openQuote = !openQuote
		}

		if !openQuote {
			logical = append(logical, buf.String())
			buf.Reset()
		}
	}

	// Unbalanced quotes that never closed: flush what we have rather
	// than dropping it.
	if openQuote && buf.Len() > 0 {
		logical = append(logical, buf.String())
	}

	return logical
}

// splitFields splits one logical row into trimmed field values. A quote
// toggles the in-quote state, a doubled quote inside a quoted field
// unescapes to a literal quote, and a comma outside quotes ends the
// current field.
func splitFields(line string) []string {
	var (
		fields  []string
		field   strings.Builder
		inQuote bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuote && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
				continue
			}
			inQuote = !inQuote
		case ch == ',' && !inQuote:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(field.String()))

	return fields
}
