// ABOUTME: Import MCP tool handlers
// ABOUTME: Implements the import_contacts tool over the core pipeline
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/importer"
)

type ImportHandlers struct {
	db    *sql.DB
	scope string
}

func NewImportHandlers(database *sql.DB, scope string) *ImportHandlers {
	return &ImportHandlers{db: database, scope: scope}
}

type ImportContactsInput struct {
	CSVText    string `json:"csv_text" jsonschema:"Raw CSV text to import (required)"`
	AssumeYear int    `json:"assume_year,omitempty" jsonschema:"Year applied to dates without one; omit to drop them"`
	Merge      string `json:"merge,omitempty" jsonschema:"Duplicate policy: always or never (default never)"`
}

type ImportContactsOutput struct {
	BatchID      string   `json:"batch_id"`
	AddedCount   int      `json:"added_count"`
	MergedCount  int      `json:"merged_count"`
	SkippedCount int      `json:"skipped_count"`
	Errors       []string `json:"errors,omitempty"`
}

// ImportContacts runs the pipeline with deterministic batch policies. MCP is
// a non-interactive surface, so the human-in-the-loop prompts are replaced by
// the caller's declared choices.
func (h *ImportHandlers) ImportContacts(ctx context.Context, request *mcp.CallToolRequest, input ImportContactsInput) (*mcp.CallToolResult, ImportContactsOutput, error) {
	if input.CSVText == "" {
		return nil, ImportContactsOutput{}, fmt.Errorf("csv_text is required")
	}

	years := importer.DeclineYear()
	if input.AssumeYear != 0 {
		years = importer.AssumeYear(input.AssumeYear)
	}

	var merges importer.MergeConfirmer
	switch input.Merge {
	case "always":
		merges = importer.AlwaysMerge()
	case "", "never":
		merges = importer.NeverMerge()
	default:
		return nil, ImportContactsOutput{}, fmt.Errorf("invalid merge policy %q (use always or never)", input.Merge)
	}

	imp := importer.New(&db.ContactStore{DB: h.db}, years, merges)
	result, err := imp.ImportCSV(ctx, h.scope, input.CSVText)
	if result != nil && result.BatchID != "" {
		_ = db.RecordImportBatch(h.db, h.scope, result)
	}
	if err != nil {
		return nil, ImportContactsOutput{}, fmt.Errorf("import failed: %w", err)
	}

	return nil, ImportContactsOutput{
		BatchID:      result.BatchID,
		AddedCount:   result.AddedCount,
		MergedCount:  result.MergedCount,
		SkippedCount: result.SkippedCount,
		Errors:       result.Errors,
	}, nil
}
