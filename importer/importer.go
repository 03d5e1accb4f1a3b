// ABOUTME: Import pipeline orchestration from raw spreadsheet input to the contact store
// ABOUTME: Runs header detection, row building, and per-row dedup integration
package importer

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/rolo/models"
)

// Store is the persistence boundary the pipeline writes through. Every row's
// integration is one ListAll/ReplaceAll read-modify-write cycle so merge
// decisions on one row are visible to the next.
type Store interface {
	ListAll(scope string) ([]models.Contact, error)
	ReplaceAll(scope string, contacts []models.Contact) error
}

// YearResolver supplies the default year for year-less date tokens. It is
// consulted at most once per import, before any row is processed. ok=false
// declines, dropping year-less tokens.
type YearResolver interface {
	ResolveYear(ctx context.Context, samples []string) (year int, ok bool, err error)
}

// YearResolverFunc adapts a function to the YearResolver interface.
type YearResolverFunc func(ctx context.Context, samples []string) (int, bool, error)

func (f YearResolverFunc) ResolveYear(ctx context.Context, samples []string) (int, bool, error) {
	return f(ctx, samples)
}

// MergeConfirmer decides whether a detected duplicate should be merged into
// the existing contact or kept as an independent new one.
type MergeConfirmer interface {
	ConfirmMerge(ctx context.Context, existing, candidate *models.Contact) (bool, error)
}

// MergeConfirmerFunc adapts a function to the MergeConfirmer interface.
type MergeConfirmerFunc func(ctx context.Context, existing, candidate *models.Contact) (bool, error)

func (f MergeConfirmerFunc) ConfirmMerge(ctx context.Context, existing, candidate *models.Contact) (bool, error) {
	return f(ctx, existing, candidate)
}

// AssumeYear always answers the year prompt with a fixed year.
func AssumeYear(year int) YearResolver {
	return YearResolverFunc(func(context.Context, []string) (int, bool, error) {
		return year, true, nil
	})
}

// DeclineYear always declines the year prompt.
func DeclineYear() YearResolver {
	return YearResolverFunc(func(context.Context, []string) (int, bool, error) {
		return 0, false, nil
	})
}

// AlwaysMerge approves every duplicate merge.
func AlwaysMerge() MergeConfirmer {
	return MergeConfirmerFunc(func(context.Context, *models.Contact, *models.Contact) (bool, error) {
		return true, nil
	})
}

// NeverMerge declines every duplicate merge, appending candidates as new
// contacts.
func NeverMerge() MergeConfirmer {
	return MergeConfirmerFunc(func(context.Context, *models.Contact, *models.Contact) (bool, error) {
		return false, nil
	})
}

// Outcome tags how one row was integrated into the store.
type Outcome int

const (
	OutcomeAdded Outcome = iota
	OutcomeMerged
	OutcomeDeclined
)

// Importer drives imports for one contact store. At most one import runs per
// scope at a time because row integration is a non-atomic read-modify-write
// against shared state.
type Importer struct {
	store  Store
	years  YearResolver
	merges MergeConfirmer

	mu     sync.Mutex
	active map[string]bool
}

func New(store Store, years YearResolver, merges MergeConfirmer) *Importer {
	return &Importer{
		store:  store,
		years:  years,
		merges: merges,
		active: make(map[string]bool),
	}
}

// ImportFile dispatches on file extension: CSV text goes through the line
// tokenizer, XLSX bytes through the spreadsheet decoder. Anything else is a
// FormatError before any row is touched.
func (imp *Importer) ImportFile(ctx context.Context, scope, filename string, data []byte) (*models.ImportResult, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv", ".txt":
		return imp.ImportCSV(ctx, scope, NormalizeText(data))
	case ".xlsx":
		rows, err := DecodeXLSX(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return imp.ImportRows(ctx, scope, rows)
	default:
		return nil, &FormatError{Ext: ext}
	}
}

// ImportCSV imports raw delimited text.
func (imp *Importer) ImportCSV(ctx context.Context, scope, text string) (*models.ImportResult, error) {
	lines := SplitLines(text)
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = SplitLine(line)
	}
	return imp.ImportRows(ctx, scope, rows)
}

// ImportRows imports already-tokenized rows, the shape an external
// spreadsheet decoder produces. This is the shared back half of every input
// path.
func (imp *Importer) ImportRows(ctx context.Context, scope string, rows [][]string) (*models.ImportResult, error) {
	if err := imp.acquire(scope); err != nil {
		return nil, err
	}
	defer imp.release(scope)

	result := &models.ImportResult{BatchID: ulid.Make().String()}

	headerIdx, _ := LocateHeader(rows)
	if headerIdx < 0 {
		return nil, ErrEmptyInput
	}
	mapping := MapColumns(rows[headerIdx])
	dataRows := rows[headerIdx+1:]

	defaultYear, err := imp.resolveDefaultYear(ctx, mapping, dataRows, result)
	if err != nil {
		return result, err
	}

	for i, row := range dataRows {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if isBlankRow(row) {
			continue
		}

		rowNum := headerIdx + i + 2 // 1-based, counting the header row

		candidate, warnings, ok := BuildContact(mapping, row, defaultYear)
		for _, w := range warnings {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", rowNum, w))
		}
		if !ok {
			result.SkippedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: no usable name, skipped", rowNum))
			continue
		}

		outcome, err := imp.integrate(ctx, scope, candidate)
		if err != nil {
			return result, err
		}
		switch outcome {
		case OutcomeMerged:
			result.MergedCount++
		default:
			result.AddedCount++
		}
	}

	if result.AddedCount+result.MergedCount == 0 {
		return result, ErrNoValidContacts
	}
	return result, nil
}

// resolveDefaultYear runs the scan-ahead over the detected date column. When
// any token lacks a year the resolver is consulted exactly once; a declined
// prompt leaves the tokens to be dropped and records one aggregate warning.
func (imp *Importer) resolveDefaultYear(ctx context.Context, mapping ColumnMapping, dataRows [][]string, result *models.ImportResult) (int, error) {
	col := mapping.FieldColumn(FieldContactDate)
	if col < 0 {
		return 0, nil
	}

	var values []string
	for _, row := range dataRows {
		if col < len(row) {
			values = append(values, row[col])
		}
	}

	samples, count := YearlessTokens(values)
	if count == 0 {
		return 0, nil
	}

	year, ok, err := imp.years.ResolveYear(ctx, samples)
	if err != nil {
		return 0, fmt.Errorf("year clarification failed: %w", err)
	}
	if !ok {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%d date value(s) without a year were skipped", count))
		return 0, nil
	}
	return year, nil
}

// integrate commits one candidate as a full read-modify-write cycle against
// the scope, so the next row sees this row's effect on the duplicate set.
func (imp *Importer) integrate(ctx context.Context, scope string, candidate *models.Contact) (Outcome, error) {
	contacts, err := imp.store.ListAll(scope)
	if err != nil {
		return 0, fmt.Errorf("failed to load contacts: %w", err)
	}

	if idx, found := FindDuplicate(candidate, contacts); found {
		approved, err := imp.merges.ConfirmMerge(ctx, &contacts[idx], candidate)
		if err != nil {
			return 0, fmt.Errorf("merge confirmation failed: %w", err)
		}
		if approved {
			merged := Merge(&contacts[idx], candidate)
			merged.UpdatedAt = time.Now()
			contacts[idx] = *merged
			if err := imp.store.ReplaceAll(scope, contacts); err != nil {
				return 0, fmt.Errorf("failed to write merged contact: %w", err)
			}
			return OutcomeMerged, nil
		}

		stampNew(candidate)
		if err := imp.store.ReplaceAll(scope, append(contacts, *candidate)); err != nil {
			return 0, fmt.Errorf("failed to append contact: %w", err)
		}
		return OutcomeDeclined, nil
	}

	stampNew(candidate)
	if err := imp.store.ReplaceAll(scope, append(contacts, *candidate)); err != nil {
		return 0, fmt.Errorf("failed to append contact: %w", err)
	}
	return OutcomeAdded, nil
}

func stampNew(c *models.Contact) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
}

func (imp *Importer) acquire(scope string) error {
	imp.mu.Lock()
	defer imp.mu.Unlock()
	if imp.active[scope] {
		return ErrImportInProgress
	}
	imp.active[scope] = true
	return nil
}

func (imp *Importer) release(scope string) {
	imp.mu.Lock()
	defer imp.mu.Unlock()
	delete(imp.active, scope)
}
