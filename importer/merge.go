// ABOUTME: Contact merge rules for approved duplicates
// ABOUTME: Unions event lists, fills empty scalar fields, existing wins on conflict
package importer

import "github.com/harperreed/rolo/models"

// generalNotesSeparator joins both contacts' free-text notes when a merge
// has content on both sides.
const generalNotesSeparator = "\n---\n"

// noteKeyPrefixLen is how much of a call note summary participates in its
// dedup key.
const noteKeyPrefixLen = 50

// Merge folds an incoming candidate into an existing contact and returns the
// merged record. The existing contact always wins scalar conflicts, incoming
// only fills blanks. Email events union on (date, direction, subject), call
// notes on (date, summary prefix), both sorted ascending afterward.
// AdditionalData shallow-merges with incoming overwriting on collision.
func Merge(existing, incoming *models.Contact) *models.Contact {
	merged := *existing

	merged.Emails = mergeEmails(existing.Emails, incoming.Emails)
	merged.Notes = mergeNotes(existing.Notes, incoming.Notes)

	if existing.GeneralNotes != "" && incoming.GeneralNotes != "" {
		merged.GeneralNotes = existing.GeneralNotes + generalNotesSeparator + incoming.GeneralNotes
	} else if existing.GeneralNotes == "" {
		merged.GeneralNotes = incoming.GeneralNotes
	}

	merged.Email = fillEmpty(existing.Email, incoming.Email)
	merged.Firm = fillEmpty(existing.Firm, incoming.Firm)
	merged.Position = fillEmpty(existing.Position, incoming.Position)
	merged.Phone = fillEmpty(existing.Phone, incoming.Phone)
	merged.Location = fillEmpty(existing.Location, incoming.Location)

	merged.FirstEmailDate = earlierDate(existing.FirstEmailDate, incoming.FirstEmailDate)

	if existing.Priority == "" {
		merged.Priority = incoming.Priority
	}

	merged.VIP = existing.VIP || incoming.VIP

	if len(incoming.AdditionalData) > 0 {
		data := make(map[string]string, len(existing.AdditionalData)+len(incoming.AdditionalData))
		for k, v := range existing.AdditionalData {
			data[k] = v
		}
		for k, v := range incoming.AdditionalData {
			data[k] = v
		}
		merged.AdditionalData = data
	}

	return &merged
}

func mergeEmails(existing, incoming []models.EmailEvent) []models.EmailEvent {
	seen := make(map[[3]string]bool, len(existing))
	out := make([]models.EmailEvent, 0, len(existing)+len(incoming))

	for _, list := range [][]models.EmailEvent{existing, incoming} {
		for _, ev := range list {
			key := [3]string{ev.Date, ev.Direction, ev.Subject}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, ev)
		}
	}

	c := models.Contact{Emails: out}
	c.SortEmails()
	retypeSentEvents(c.Emails)
	return c.Emails
}

// retypeSentEvents restores the per-contact typing invariant after a union:
// the chronologically first sent event is cold, every later sent event is a
// follow-up. Received events are untouched.
func retypeSentEvents(events []models.EmailEvent) {
	first := true
	for i := range events {
		if events[i].Direction != models.DirectionSent {
			continue
		}
		if first {
			events[i].Type = models.EmailTypeCold
			first = false
		} else {
			events[i].Type = models.EmailTypeFollowUp
		}
	}
}

func mergeNotes(existing, incoming []models.CallNote) []models.CallNote {
	seen := make(map[[2]string]bool, len(existing))
	out := make([]models.CallNote, 0, len(existing)+len(incoming))

	for _, list := range [][]models.CallNote{existing, incoming} {
		for _, note := range list {
			key := [2]string{note.Date, summaryPrefix(note.Summary)}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, note)
		}
	}

	c := models.Contact{Notes: out}
	c.SortNotes()
	return c.Notes
}

func summaryPrefix(summary string) string {
	if len(summary) > noteKeyPrefixLen {
		return summary[:noteKeyPrefixLen]
	}
	return summary
}

func fillEmpty(existing, incoming string) string {
	if existing != "" {
		return existing
	}
	return incoming
}

// earlierDate picks the lexicographically smaller ISO date, ignoring blanks.
func earlierDate(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	case a < b:
		return a
	default:
		return b
	}
}
