// ABOUTME: Contact database operations
// ABOUTME: Scope-wide list/replace cycles for imports plus CRUD and lookups
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/rolo/models"
)

// ContactStore adapts a database handle to the list/replace interface the
// import pipeline writes through.
type ContactStore struct {
	DB *sql.DB
}

func (s *ContactStore) ListAll(scope string) ([]models.Contact, error) {
	return ListAll(s.DB, scope)
}

func (s *ContactStore) ReplaceAll(scope string, contacts []models.Contact) error {
	return ReplaceAll(s.DB, scope, contacts)
}

// ListAll returns every contact in a scope in stable stored order, with
// email events and call notes populated. Stored order matters: duplicate
// detection resolves ties to the first match in this order.
func ListAll(database *sql.DB, scope string) ([]models.Contact, error) {
	rows, err := database.Query(`
		SELECT id, name, email, firm, job_position, phone, location, priority, vip,
		       first_email_date, general_notes, additional_data, created_at, updated_at
		FROM contacts
		WHERE scope = ?
		ORDER BY position
	`, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	index := make(map[string]int)

	for rows.Next() {
		var c models.Contact
		var id string
		var email, firm, position, phone, location, firstEmail, generalNotes, additional sql.NullString
		var vip int

		if err := rows.Scan(&id, &c.Name, &email, &firm, &position, &phone, &location,
			&c.Priority, &vip, &firstEmail, &generalNotes, &additional, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}

		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("bad contact id %q: %w", id, err)
		}
		c.ID = parsed
		c.Email = email.String
		c.Firm = firm.String
		c.Position = position.String
		c.Phone = phone.String
		c.Location = location.String
		c.FirstEmailDate = firstEmail.String
		c.GeneralNotes = generalNotes.String
		c.VIP = vip != 0

		if additional.Valid && additional.String != "" {
			if err := json.Unmarshal([]byte(additional.String), &c.AdditionalData); err != nil {
				return nil, fmt.Errorf("bad additional data for contact %s: %w", id, err)
			}
		}

		index[id] = len(contacts)
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := loadEmailEvents(database, scope, contacts, index); err != nil {
		return nil, err
	}
	if err := loadCallNotes(database, scope, contacts, index); err != nil {
		return nil, err
	}

	return contacts, nil
}

func loadEmailEvents(database *sql.DB, scope string, contacts []models.Contact, index map[string]int) error {
	rows, err := database.Query(`
		SELECT e.contact_id, e.date, e.direction, e.type, e.subject
		FROM email_events e
		JOIN contacts c ON c.id = e.contact_id
		WHERE c.scope = ?
		ORDER BY e.contact_id, e.position
	`, scope)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var contactID string
		var ev models.EmailEvent
		var evType, subject sql.NullString
		if err := rows.Scan(&contactID, &ev.Date, &ev.Direction, &evType, &subject); err != nil {
			return err
		}
		ev.Type = evType.String
		ev.Subject = subject.String
		if i, ok := index[contactID]; ok {
			contacts[i].Emails = append(contacts[i].Emails, ev)
		}
	}
	return rows.Err()
}

func loadCallNotes(database *sql.DB, scope string, contacts []models.Contact, index map[string]int) error {
	rows, err := database.Query(`
		SELECT n.contact_id, n.id, n.date, n.summary, n.extracted_text, n.image_url, n.is_text_note
		FROM call_notes n
		JOIN contacts c ON c.id = n.contact_id
		WHERE c.scope = ?
		ORDER BY n.contact_id, n.position
	`, scope)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var contactID, noteID string
		var note models.CallNote
		var extracted, imageURL sql.NullString
		var isText int
		if err := rows.Scan(&contactID, &noteID, &note.Date, &note.Summary, &extracted, &imageURL, &isText); err != nil {
			return err
		}
		if parsed, err := uuid.Parse(noteID); err == nil {
			note.ID = parsed
		}
		note.ExtractedText = extracted.String
		note.ImageURL = imageURL.String
		note.IsTextNote = isText != 0
		if i, ok := index[contactID]; ok {
			contacts[i].Notes = append(contacts[i].Notes, note)
		}
	}
	return rows.Err()
}

// ReplaceAll swaps the whole contact set for a scope in one transaction,
// preserving slice order as stored order.
func ReplaceAll(database *sql.DB, scope string, contacts []models.Contact) error {
	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	if _, err := tx.Exec(`DELETE FROM email_events WHERE contact_id IN (SELECT id FROM contacts WHERE scope = ?)`, scope); err != nil {
		return fmt.Errorf("failed to clear email events: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM call_notes WHERE contact_id IN (SELECT id FROM contacts WHERE scope = ?)`, scope); err != nil {
		return fmt.Errorf("failed to clear call notes: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM contacts WHERE scope = ?`, scope); err != nil {
		return fmt.Errorf("failed to clear contacts: %w", err)
	}

	now := time.Now()
	for i := range contacts {
		c := &contacts[i]
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		if c.UpdatedAt.IsZero() {
			c.UpdatedAt = now
		}

		var additional any
		if len(c.AdditionalData) > 0 {
			data, err := json.Marshal(c.AdditionalData)
			if err != nil {
				return fmt.Errorf("failed to encode additional data: %w", err)
			}
			additional = string(data)
		}

		if _, err := tx.Exec(`
			INSERT INTO contacts (id, scope, position, name, email, firm, job_position, phone, location,
			                      priority, vip, first_email_date, general_notes, additional_data, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID.String(), scope, i, c.Name, c.Email, c.Firm, c.Position, c.Phone, c.Location,
			c.Priority, boolToInt(c.VIP), c.FirstEmailDate, c.GeneralNotes, additional, c.CreatedAt, c.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert contact %s: %w", c.Name, err)
		}

		for j, ev := range c.Emails {
			if _, err := tx.Exec(`
				INSERT INTO email_events (contact_id, position, date, direction, type, subject)
				VALUES (?, ?, ?, ?, ?, ?)
			`, c.ID.String(), j, ev.Date, ev.Direction, ev.Type, ev.Subject); err != nil {
				return fmt.Errorf("failed to insert email event: %w", err)
			}
		}

		for j := range c.Notes {
			note := &c.Notes[j]
			if note.ID == uuid.Nil {
				note.ID = uuid.New()
			}
			if _, err := tx.Exec(`
				INSERT INTO call_notes (id, contact_id, position, date, summary, extracted_text, image_url, is_text_note)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, note.ID.String(), c.ID.String(), j, note.Date, note.Summary, note.ExtractedText, note.ImageURL, boolToInt(note.IsTextNote)); err != nil {
				return fmt.Errorf("failed to insert call note: %w", err)
			}
		}
	}

	return tx.Commit()
}

// CreateContact appends one contact to the end of a scope's stored order.
// Used by manual entry; imports go through ReplaceAll.
func CreateContact(database *sql.DB, scope string, contact *models.Contact) error {
	contacts, err := ListAll(database, scope)
	if err != nil {
		return err
	}
	if contact.Priority == "" {
		contact.Priority = models.PriorityMedium
	}
	return ReplaceAll(database, scope, append(contacts, *contact))
}

// GetContact loads one contact by id, or nil when absent.
func GetContact(database *sql.DB, scope string, id uuid.UUID) (*models.Contact, error) {
	contacts, err := ListAll(database, scope)
	if err != nil {
		return nil, err
	}
	for i := range contacts {
		if contacts[i].ID == id {
			return &contacts[i], nil
		}
	}
	return nil, nil
}

// FindContacts searches a scope by name or email substring, preserving
// stored order. A zero limit defaults to 10.
func FindContacts(database *sql.DB, scope, query string, limit int) ([]models.Contact, error) {
	if limit <= 0 {
		limit = 10
	}

	contacts, err := ListAll(database, scope)
	if err != nil {
		return nil, err
	}
	if query == "" {
		if len(contacts) > limit {
			contacts = contacts[:limit]
		}
		return contacts, nil
	}

	needle := strings.ToLower(query)
	var matched []models.Contact
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle) {
			matched = append(matched, c)
			if len(matched) == limit {
				break
			}
		}
	}
	return matched, nil
}

// DistinctFirms returns the scope's firm list, deduplicated case-insensitively
// in first-seen stored order. This derived index tracks the store after every
// row integration during imports.
func DistinctFirms(database *sql.DB, scope string) ([]string, error) {
	contacts, err := ListAll(database, scope)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var firms []string
	for _, c := range contacts {
		firm := strings.TrimSpace(c.Firm)
		if firm == "" {
			continue
		}
		key := strings.ToLower(firm)
		if seen[key] {
			continue
		}
		seen[key] = true
		firms = append(firms, firm)
	}
	return firms, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
