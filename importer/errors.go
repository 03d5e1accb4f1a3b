// ABOUTME: Error taxonomy for the import pipeline
// ABOUTME: File-level errors abort the batch, row-level problems accumulate
package importer

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput means the file or sheet held no rows at all.
	ErrEmptyInput = errors.New("import: empty input")

	// ErrNoValidContacts means no row yielded a usable name.
	ErrNoValidContacts = errors.New("import: no valid contacts found")

	// ErrImportInProgress means another import already holds this scope.
	ErrImportInProgress = errors.New("import: an import is already running for this scope")
)

// FormatError reports an unrecognized file type at the boundary.
type FormatError struct {
	Ext string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("import: unsupported file type %q", e.Ext)
}

// DecodeError wraps a failure from the external spreadsheet decoder. The
// whole batch fails as one error, no rows are written.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("import: spreadsheet decode failed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
