// ABOUTME: CSV line tokenizer and raw text conditioning
// ABOUTME: Splits delimited text into cells with quote handling and charset repair
package importer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// NormalizeText prepares raw spreadsheet bytes for line splitting. Input that
// is not valid UTF-8 is assumed to be Windows-1252, which covers the usual
// exports from desktop spreadsheet tools. A leading UTF-8 BOM is stripped.
func NormalizeText(data []byte) string {
	data = stripBOM(data)
	if !utf8.Valid(data) {
		if decoded, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil {
			data = decoded
		}
	}
	return string(data)
}

func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

// SplitLines breaks normalized text into physical lines. A quoted field never
// spans lines here: embedded newlines inside quotes are not supported, each
// row is exactly one line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// SplitLine tokenizes one physical line into cells. Fields may be wrapped in
// double quotes, a doubled quote inside a quoted field escapes to a literal
// quote, and the separator is a comma.
func SplitLine(line string) []string {
	var cells []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			cells = append(cells, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	cells = append(cells, cur.String())

	return cells
}

// isBlankRow reports whether every cell trims to empty.
func isBlankRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
