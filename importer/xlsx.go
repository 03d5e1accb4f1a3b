// ABOUTME: XLSX decoding boundary adapter
// ABOUTME: Turns spreadsheet bytes into pre-tokenized rows for the import pipeline
package importer

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// DecodeXLSX reads an XLSX workbook and returns the first sheet as rows of
// string cells. The pipeline itself never touches spreadsheet binary
// formats; this adapter feeds the same pre-tokenized row path an external
// decoder would.
func DecodeXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyInput
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return rows, nil
}
