// ABOUTME: MCP server subcommand
// ABOUTME: Exposes contact and import tools over stdio
package cli

import (
	"context"
	"database/sql"
	"flag"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/rolo/handlers"
)

// MCPCommand starts the MCP server on stdio.
func MCPCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	scope := fs.String("scope", "default", "Contact store scope served by this instance")
	_ = fs.Parse(args)

	log.Println("Starting rolo MCP server...")

	contactHandlers := handlers.NewContactHandlers(database, *scope)
	importHandlers := handlers.NewImportHandlers(database, *scope)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "rolo",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact to the store",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search for contacts by name or email",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_firms",
		Description: "List the distinct firms across all contacts",
	}, contactHandlers.ListFirms)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_contacts",
		Description: "Bulk-import contacts from raw CSV text with header detection and deduplication",
	}, importHandlers.ImportContacts)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
