// ABOUTME: Column semantic classification via a synonym dictionary
// ABOUTME: Maps free-form spreadsheet header labels to canonical contact fields
package importer

import "strings"

// Field is the canonical contact attribute a raw column maps to.
type Field string

const (
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldCompany     Field = "company"
	FieldContactDate Field = "contactdate"
	FieldPosition    Field = "position"
	FieldPhone       Field = "phone"
	FieldLocation    Field = "location"
	FieldPriority    Field = "priority"
	FieldUnknown     Field = "unknown"
)

// fieldSynonyms lists accepted raw labels per canonical field. Order matters:
// exact matches and partial-match ties resolve to the first field declared.
var fieldSynonyms = []struct {
	field    Field
	synonyms []string
}{
	{FieldName, []string{"name", "full name", "contact name", "contact", "person", "client", "client name"}},
	{FieldEmail, []string{"email", "e-mail", "email address", "e-mail address", "mail"}},
	{FieldCompany, []string{"company", "firm", "bank", "organization", "org", "employer", "corporation", "corp", "business"}},
	{FieldContactDate, []string{"contact date", "date contacted", "date of contact", "email date", "outreach date", "last contact", "date", "sent"}},
	{FieldPosition, []string{"position", "title", "job title", "role"}},
	{FieldPhone, []string{"phone", "phone number", "mobile", "cell", "telephone", "tel"}},
	{FieldLocation, []string{"location", "city", "address", "region", "country"}},
	{FieldPriority, []string{"priority", "importance", "tier"}},
}

// commonHeaders are generic header tokens used by the header locator to give
// a small bonus to rows that look label-like even where classification fails.
var commonHeaders = []string{
	"name", "email", "company", "date", "phone", "title", "position",
	"location", "address", "notes", "contact", "organization", "priority",
}

// Classify maps a raw header label to a canonical field. It lowercases and
// trims the label, tries every synonym for an exact match first, and falls
// back to substring matching in either direction. Among partial matches the
// longest matching synonym wins, so a header like "contact date" lands on
// contactdate rather than the bare "date" synonym of another candidate.
// Unmatched labels return FieldUnknown plus the normalized label so the
// column can be preserved as additional data.
func Classify(header string) (Field, string) {
	normalized := strings.ToLower(strings.TrimSpace(header))
	if normalized == "" {
		return FieldUnknown, ""
	}

	for _, entry := range fieldSynonyms {
		for _, syn := range entry.synonyms {
			if normalized == syn {
				return entry.field, normalized
			}
		}
	}

	best := FieldUnknown
	bestLen := 0
	for _, entry := range fieldSynonyms {
		for _, syn := range entry.synonyms {
			if !strings.Contains(normalized, syn) && !strings.Contains(syn, normalized) {
				continue
			}
			if len(syn) > bestLen {
				best = entry.field
				bestLen = len(syn)
			}
		}
	}
	if best != FieldUnknown {
		return best, normalized
	}

	return FieldUnknown, normalized
}

// matchesCommonHeader reports whether a normalized cell is a substring or
// superstring of any generic header token.
func matchesCommonHeader(normalized string) bool {
	if normalized == "" {
		return false
	}
	for _, token := range commonHeaders {
		if strings.Contains(normalized, token) || strings.Contains(token, normalized) {
			return true
		}
	}
	return false
}
