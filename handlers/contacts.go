// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements add_contact, find_contacts, and list_firms tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

type ContactHandlers struct {
	db    *sql.DB
	scope string
}

func NewContactHandlers(database *sql.DB, scope string) *ContactHandlers {
	return &ContactHandlers{db: database, scope: scope}
}

type AddContactInput struct {
	Name     string `json:"name" jsonschema:"Contact name (required)"`
	Email    string `json:"email,omitempty" jsonschema:"Contact email address"`
	Firm     string `json:"firm,omitempty" jsonschema:"Firm or company name"`
	Position string `json:"position,omitempty" jsonschema:"Job title"`
	Phone    string `json:"phone,omitempty" jsonschema:"Contact phone number"`
	Location string `json:"location,omitempty" jsonschema:"City or region"`
	Priority string `json:"priority,omitempty" jsonschema:"Priority: low, medium, or high (default medium)"`
	Notes    string `json:"notes,omitempty" jsonschema:"General notes about the contact"`
}

type ContactOutput struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email,omitempty"`
	Firm           string            `json:"firm,omitempty"`
	Position       string            `json:"position,omitempty"`
	Phone          string            `json:"phone,omitempty"`
	Location       string            `json:"location,omitempty"`
	Priority       string            `json:"priority"`
	VIP            bool              `json:"vip,omitempty"`
	FirstEmailDate string            `json:"first_email_date,omitempty"`
	EmailEvents    int               `json:"email_events"`
	CallNotes      int               `json:"call_notes"`
	AdditionalData map[string]string `json:"additional_data,omitempty"`
}

func (h *ContactHandlers) AddContact(_ context.Context, request *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.Name == "" {
		return nil, ContactOutput{}, fmt.Errorf("name is required")
	}

	priority := input.Priority
	switch priority {
	case "":
		priority = models.PriorityMedium
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		return nil, ContactOutput{}, fmt.Errorf("invalid priority %q", input.Priority)
	}

	contact := &models.Contact{
		Name:         input.Name,
		Email:        input.Email,
		Firm:         input.Firm,
		Position:     input.Position,
		Phone:        input.Phone,
		Location:     input.Location,
		Priority:     priority,
		GeneralNotes: input.Notes,
	}

	if err := db.CreateContact(h.db, h.scope, contact); err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to create contact: %w", err)
	}

	return nil, contactToOutput(contact), nil
}

type FindContactsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search query (searches name and email)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, request *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	contacts, err := db.FindContacts(h.db, h.scope, input.Query, input.Limit)
	if err != nil {
		return nil, FindContactsOutput{}, fmt.Errorf("failed to find contacts: %w", err)
	}

	output := FindContactsOutput{Contacts: make([]ContactOutput, 0, len(contacts))}
	for i := range contacts {
		output.Contacts = append(output.Contacts, contactToOutput(&contacts[i]))
	}
	return nil, output, nil
}

type ListFirmsInput struct{}

type ListFirmsOutput struct {
	Firms []string `json:"firms"`
}

func (h *ContactHandlers) ListFirms(_ context.Context, request *mcp.CallToolRequest, input ListFirmsInput) (*mcp.CallToolResult, ListFirmsOutput, error) {
	firms, err := db.DistinctFirms(h.db, h.scope)
	if err != nil {
		return nil, ListFirmsOutput{}, fmt.Errorf("failed to list firms: %w", err)
	}
	return nil, ListFirmsOutput{Firms: firms}, nil
}

func contactToOutput(c *models.Contact) ContactOutput {
	return ContactOutput{
		ID:             c.ID.String(),
		Name:           c.Name,
		Email:          c.Email,
		Firm:           c.Firm,
		Position:       c.Position,
		Phone:          c.Phone,
		Location:       c.Location,
		Priority:       c.Priority,
		VIP:            c.VIP,
		FirstEmailDate: c.FirstEmailDate,
		EmailEvents:    len(c.Emails),
		CallNotes:      len(c.Notes),
		AdditionalData: c.AdditionalData,
	}
}
