// ABOUTME: Contact deduplication matching logic
// ABOUTME: Finds existing contacts by normalized email or name during import
package importer

import (
	"strings"

	"github.com/harperreed/rolo/models"
)

// FindDuplicate scans existing contacts in stored order for the first one
// matching the candidate: both emails non-empty and equal after trimming and
// lowercasing, or both names non-empty and equal the same way. Stored order
// settles ties, there is no scoring among multiple matches.
func FindDuplicate(candidate *models.Contact, existing []models.Contact) (int, bool) {
	email := normalizeKey(candidate.Email)
	name := normalizeKey(candidate.Name)

	for i := range existing {
		if email != "" && normalizeKey(existing[i].Email) == email {
			return i, true
		}
		if name != "" && normalizeKey(existing[i].Name) == name {
			return i, true
		}
	}
	return -1, false
}

// normalizeKey produces the dedup key form of an email or name.
func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
