// ABOUTME: Import batch journal operations
// ABOUTME: Records per-import aggregate counts and error strings
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/rolo/models"
)

// ImportBatch is one journaled import run.
type ImportBatch struct {
	ID        string
	Scope     string
	Added     int
	Merged    int
	Skipped   int
	Errors    []string
	CreatedAt time.Time
}

// RecordImportBatch journals an import result for later inspection.
func RecordImportBatch(database *sql.DB, scope string, result *models.ImportResult) error {
	var errorsJSON any
	if len(result.Errors) > 0 {
		data, err := json.Marshal(result.Errors)
		if err != nil {
			return fmt.Errorf("failed to encode import errors: %w", err)
		}
		errorsJSON = string(data)
	}

	_, err := database.Exec(`
		INSERT INTO import_batches (id, scope, added, merged, skipped, errors, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, result.BatchID, scope, result.AddedCount, result.MergedCount, result.SkippedCount, errorsJSON, time.Now())
	return err
}

// ListImportBatches returns a scope's import history, newest first.
func ListImportBatches(database *sql.DB, scope string, limit int) ([]ImportBatch, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := database.Query(`
		SELECT id, scope, added, merged, skipped, errors, created_at
		FROM import_batches
		WHERE scope = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, scope, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []ImportBatch
	for rows.Next() {
		var b ImportBatch
		var errorsJSON sql.NullString
		if err := rows.Scan(&b.ID, &b.Scope, &b.Added, &b.Merged, &b.Skipped, &errorsJSON, &b.CreatedAt); err != nil {
			return nil, err
		}
		if errorsJSON.Valid && errorsJSON.String != "" {
			if err := json.Unmarshal([]byte(errorsJSON.String), &b.Errors); err != nil {
				return nil, fmt.Errorf("bad errors payload for batch %s: %w", b.ID, err)
			}
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}
