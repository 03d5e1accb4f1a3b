// ABOUTME: Spreadsheet import CLI command
// ABOUTME: Wires interactive prompts or batch policies into the import pipeline
package cli

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/importer"
	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/tui"
)

// maxShownErrors caps how many row error strings the summary prints.
const maxShownErrors = 5

// ImportCommand imports a CSV or XLSX file into the contact store.
func ImportCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "Spreadsheet file to import, .csv or .xlsx (required)")
	scope := fs.String("scope", "default", "Contact store scope")
	assumeYear := fs.Int("assume-year", 0, "Apply this year to year-less dates instead of prompting")
	mergePolicy := fs.String("merge", "", "Batch duplicate policy: always or never (skips prompting)")
	_ = fs.Parse(args)

	if *file == "" {
		return fmt.Errorf("--file is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", *file, err)
	}

	years, merges, err := importPolicies(*assumeYear, *mergePolicy)
	if err != nil {
		return err
	}

	imp := importer.New(&db.ContactStore{DB: database}, years, merges)
	result, err := imp.ImportFile(context.Background(), *scope, *file, data)

	if result != nil && result.BatchID != "" {
		if journalErr := db.RecordImportBatch(database, *scope, result); journalErr != nil {
			log.Printf("warning: failed to journal import batch: %v", journalErr)
		}
	}

	if err != nil {
		if errors.Is(err, importer.ErrNoValidContacts) {
			printImportSummary(result)
			return fmt.Errorf("no row produced a usable contact")
		}
		return err
	}

	printImportSummary(result)
	return nil
}

// importPolicies picks prompt strategies: explicit flags win, an interactive
// terminal gets dialogs, and batch runs fall back to conservative defaults
// (drop year-less dates, keep duplicates separate).
func importPolicies(assumeYear int, mergePolicy string) (importer.YearResolver, importer.MergeConfirmer, error) {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	var years importer.YearResolver
	switch {
	case assumeYear != 0:
		years = importer.AssumeYear(assumeYear)
	case interactive:
		years = tui.TerminalPrompts{}
	default:
		years = importer.DeclineYear()
	}

	var merges importer.MergeConfirmer
	switch mergePolicy {
	case "always":
		merges = importer.AlwaysMerge()
	case "never":
		merges = importer.NeverMerge()
	case "":
		if interactive {
			merges = tui.TerminalPrompts{}
		} else {
			merges = importer.NeverMerge()
		}
	default:
		return nil, nil, fmt.Errorf("unknown merge policy %q (use always or never)", mergePolicy)
	}

	return years, merges, nil
}

func printImportSummary(result *models.ImportResult) {
	if result == nil {
		return
	}
	fmt.Printf("%d added, %d merged, %d skipped\n", result.AddedCount, result.MergedCount, result.SkippedCount)
	for i, msg := range result.Errors {
		if i == maxShownErrors {
			fmt.Printf("  ... and %d more\n", len(result.Errors)-maxShownErrors)
			break
		}
		fmt.Printf("  %s\n", msg)
	}
}

// ImportHistoryCommand lists recent import batches for a scope.
func ImportHistoryCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("import-history", flag.ExitOnError)
	scope := fs.String("scope", "default", "Contact store scope")
	limit := fs.Int("limit", 20, "Maximum batches to list")
	_ = fs.Parse(args)

	batches, err := db.ListImportBatches(database, *scope, *limit)
	if err != nil {
		return fmt.Errorf("failed to list import batches: %w", err)
	}

	if len(batches) == 0 {
		fmt.Println("No imports recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BATCH\tWHEN\tADDED\tMERGED\tSKIPPED\tERRORS")
	for _, b := range batches {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n",
			b.ID, b.CreatedAt.Format("2006-01-02 15:04"), b.Added, b.Merged, b.Skipped, len(b.Errors))
	}
	return w.Flush()
}
