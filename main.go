// ABOUTME: Entry point for the rolo contact importer CLI and MCP server
// ABOUTME: Routes subcommands and opens the SQLite contact store
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/harperreed/rolo/cli"
	"github.com/harperreed/rolo/db"
)

const version = "0.1.0"

func main() {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/rolo/rolo.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("rolo version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	finalDBPath := getDatabasePath(*dbPath)
	database, err := db.OpenDatabase(finalDBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if *initOnly {
		log.Printf("Database initialized at %s", finalDBPath)
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		if err := cli.MCPCommand(database, commandArgs); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}
	case "import":
		if err := cli.ImportCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "import-history":
		if err := cli.ImportHistoryCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "add-contact":
		if err := cli.AddContactCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "list-contacts":
		if err := cli.ListContactsCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "firms":
		if err := cli.FirmsCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func getDatabasePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("ROLO_DB_PATH"); env != "" {
		return env
	}
	return filepath.Join(xdg.DataHome, "rolo", "rolo.db")
}

func printUsage() {
	fmt.Printf(`rolo v%s - Spreadsheet contact importer

USAGE:
  rolo [global flags] <command> [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/rolo/rolo.db)
  --init                 Initialize database and exit

COMMANDS:
  rolo import            Import contacts from a spreadsheet
    --file <path>           CSV or XLSX file (required)
    --scope <scope>         Contact store scope (default: default)
    --assume-year <year>    Year for dates without one (skips the prompt)
    --merge <policy>        always or never (skips the duplicate prompt)

  rolo import-history    List recent import batches
    --scope <scope>         Contact store scope
    --limit <n>             Max batches (default: 20)

  rolo add-contact       Add a contact by hand
    --name <name>           Contact name (required)
    --email <email>         Email address
    --firm <firm>           Firm or company
    --position <title>      Job title
    --phone <phone>         Phone number
    --location <location>   Location
    --priority <p>          low, medium, or high
    --vip                   Mark as VIP
    --notes <notes>         General notes

  rolo list-contacts     List contacts
    --query <text>          Search by name or email
    --limit <n>             Max results (default: 50)

  rolo firms             List distinct firms

  rolo mcp               Start MCP server on stdio
    --scope <scope>         Scope served by this instance

ENVIRONMENT:
  ROLO_DB_PATH           Overrides the default database path
`, version)
}
