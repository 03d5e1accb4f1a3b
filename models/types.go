// ABOUTME: Data models for contact records and import results
// ABOUTME: Defines Contact, EmailEvent, CallNote, and ImportResult structs
package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Priority constants.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// EmailEvent direction constants.
const (
	DirectionSent     = "sent"
	DirectionReceived = "received"
)

// EmailEvent type constants. Type only carries meaning for sent events:
// the chronologically first sent email to a contact is "cold", later ones
// are "follow-up".
const (
	EmailTypeCold     = "cold"
	EmailTypeFollowUp = "follow-up"
	EmailTypeReceived = "received"
)

type Contact struct {
	ID             uuid.UUID         `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email,omitempty"`
	Firm           string            `json:"firm,omitempty"`
	Position       string            `json:"position,omitempty"`
	Phone          string            `json:"phone,omitempty"`
	Location       string            `json:"location,omitempty"`
	Priority       string            `json:"priority"`
	VIP            bool              `json:"vip,omitempty"`
	FirstEmailDate string            `json:"first_email_date,omitempty"` // ISO YYYY-MM-DD
	GeneralNotes   string            `json:"general_notes,omitempty"`
	Emails         []EmailEvent      `json:"emails,omitempty"`
	Notes          []CallNote        `json:"notes,omitempty"`
	AdditionalData map[string]string `json:"additional_data,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type EmailEvent struct {
	Date      string `json:"date"` // ISO YYYY-MM-DD
	Direction string `json:"direction"`
	Type      string `json:"type,omitempty"`
	Subject   string `json:"subject,omitempty"`
}

type CallNote struct {
	ID            uuid.UUID `json:"id"`
	Date          string    `json:"date"` // ISO YYYY-MM-DD
	Summary       string    `json:"summary"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	IsTextNote    bool      `json:"is_text_note"`
}

// ImportResult aggregates the outcome of one spreadsheet import. Row-level
// problems accumulate into Errors; they never abort the batch.
type ImportResult struct {
	BatchID      string   `json:"batch_id"`
	AddedCount   int      `json:"added_count"`
	MergedCount  int      `json:"merged_count"`
	SkippedCount int      `json:"skipped_count"`
	Errors       []string `json:"errors,omitempty"`
}

// SortEmails keeps the ascending-by-date invariant on a contact's email
// events. ISO date strings sort correctly as plain strings.
func (c *Contact) SortEmails() {
	sort.SliceStable(c.Emails, func(i, j int) bool {
		return c.Emails[i].Date < c.Emails[j].Date
	})
}

// SortNotes keeps the ascending-by-date invariant on a contact's call notes.
func (c *Contact) SortNotes() {
	sort.SliceStable(c.Notes, func(i, j int) bool {
		return c.Notes[i].Date < c.Notes[j].Date
	})
}
