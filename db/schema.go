// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation for contacts, events, notes, and import batches
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	scope TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	email TEXT,
	firm TEXT,
	job_position TEXT,
	phone TEXT,
	location TEXT,
	priority TEXT NOT NULL DEFAULT 'medium',
	vip INTEGER NOT NULL DEFAULT 0,
	first_email_date TEXT,
	general_notes TEXT,
	additional_data TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contacts_scope ON contacts(scope, position);
CREATE INDEX IF NOT EXISTS idx_contacts_email ON contacts(email);
CREATE INDEX IF NOT EXISTS idx_contacts_name ON contacts(name);

CREATE TABLE IF NOT EXISTS email_events (
	contact_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	date TEXT NOT NULL,
	direction TEXT NOT NULL,
	type TEXT,
	subject TEXT,
	FOREIGN KEY (contact_id) REFERENCES contacts(id)
);

CREATE INDEX IF NOT EXISTS idx_email_events_contact ON email_events(contact_id, position);

CREATE TABLE IF NOT EXISTS call_notes (
	id TEXT PRIMARY KEY,
	contact_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	date TEXT NOT NULL,
	summary TEXT NOT NULL,
	extracted_text TEXT,
	image_url TEXT,
	is_text_note INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (contact_id) REFERENCES contacts(id)
);

CREATE INDEX IF NOT EXISTS idx_call_notes_contact ON call_notes(contact_id, position);

CREATE TABLE IF NOT EXISTS import_batches (
	id TEXT PRIMARY KEY,
	scope TEXT NOT NULL,
	added INTEGER NOT NULL,
	merged INTEGER NOT NULL,
	skipped INTEGER NOT NULL,
	errors TEXT,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_import_batches_scope ON import_batches(scope, created_at);
`

func InitSchema(database *sql.DB) error {
	_, err := database.Exec(schema)
	return err
}
