// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for listing and adding contacts
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

// AddContactCommand adds a new contact by hand.
func AddContactCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ExitOnError)
	scope := fs.String("scope", "default", "Contact store scope")
	name := fs.String("name", "", "Contact name (required)")
	email := fs.String("email", "", "Email address")
	firm := fs.String("firm", "", "Firm or company")
	position := fs.String("position", "", "Job title")
	phone := fs.String("phone", "", "Phone number")
	location := fs.String("location", "", "Location")
	priority := fs.String("priority", models.PriorityMedium, "Priority: low, medium, or high")
	vip := fs.Bool("vip", false, "Mark as VIP")
	notes := fs.String("notes", "", "General notes")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}
	switch *priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		return fmt.Errorf("invalid priority %q", *priority)
	}

	contact := &models.Contact{
		Name:         *name,
		Email:        *email,
		Firm:         *firm,
		Position:     *position,
		Phone:        *phone,
		Location:     *location,
		Priority:     *priority,
		VIP:          *vip,
		GeneralNotes: *notes,
	}

	if err := db.CreateContact(database, *scope, contact); err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	fmt.Printf("Added contact: %s\n", contact.Name)
	return nil
}

// ListContactsCommand lists contacts in stored order.
func ListContactsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ExitOnError)
	scope := fs.String("scope", "default", "Contact store scope")
	query := fs.String("query", "", "Filter by name or email substring")
	limit := fs.Int("limit", 50, "Maximum contacts to list")
	_ = fs.Parse(args)

	contacts, err := db.FindContacts(database, *scope, *query, *limit)
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}

	if len(contacts) == 0 {
		fmt.Println("No contacts found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEMAIL\tFIRM\tPRIORITY\tFIRST EMAIL\tEVENTS")
	for _, c := range contacts {
		name := c.Name
		if c.VIP {
			name += " *"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			name, c.Email, c.Firm, c.Priority, c.FirstEmailDate, len(c.Emails))
	}
	return w.Flush()
}

// FirmsCommand lists the distinct firms in a scope.
func FirmsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("firms", flag.ExitOnError)
	scope := fs.String("scope", "default", "Contact store scope")
	_ = fs.Parse(args)

	firms, err := db.DistinctFirms(database, *scope)
	if err != nil {
		return fmt.Errorf("failed to list firms: %w", err)
	}

	if len(firms) == 0 {
		fmt.Println("No firms recorded.")
		return nil
	}
	for _, firm := range firms {
		fmt.Println(firm)
	}
	return nil
}
