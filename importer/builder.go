// ABOUTME: Candidate contact assembly from mapped spreadsheet rows
// ABOUTME: Applies field assignment rules plus name and email fallback heuristics
package importer

import (
	"sort"
	"strings"

	"github.com/harperreed/rolo/models"
)

// minNameLength is the shortest cell the name fallback will accept.
const minNameLength = 2

// BuildContact assembles one candidate contact from a data row using the
// fixed column mapping. defaultYear resolves year-less date tokens; zero
// drops them. Returned warnings are non-fatal and row-scoped. ok is false
// when no usable name survived the fallback scan, in which case the row
// should be skipped and counted.
//
// The same logic serves CSV text and pre-tokenized spreadsheet rows: both
// shapes get the whole-row email recovery scan and the name fallback.
func BuildContact(mapping ColumnMapping, cells []string, defaultYear int) (contact *models.Contact, warnings []string, ok bool) {
	contact = &models.Contact{
		Priority:       models.PriorityMedium,
		AdditionalData: map[string]string{},
	}

	var sentDates []string

	for i, raw := range cells {
		value := strings.TrimSpace(raw)

		if i >= len(mapping.Fields) {
			if value != "" {
				contact.AdditionalData[columnLabel(i)] = value
			}
			continue
		}

		switch mapping.Fields[i] {
		case FieldName:
			if value == "" || looksLikeDate(value) {
				continue
			}
			contact.Name = value
		case FieldEmail:
			if value == "" {
				continue
			}
			if !strings.Contains(value, "@") {
				warnings = append(warnings, "email value missing @: "+value)
			}
			contact.Email = value
		case FieldCompany:
			if value != "" {
				contact.Firm = value
			}
		case FieldContactDate:
			sentDates = append(sentDates, ParseDateCell(value, defaultYear)...)
		case FieldPosition:
			if value != "" {
				contact.Position = value
			}
		case FieldPhone:
			if value != "" {
				contact.Phone = value
			}
		case FieldLocation:
			if value != "" {
				contact.Location = value
			}
		case FieldPriority:
			switch strings.ToLower(value) {
			case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
				contact.Priority = strings.ToLower(value)
			}
		default:
			if value != "" {
				contact.AdditionalData[mapping.Labels[i]] = value
			}
		}
	}

	applySentDates(contact, sentDates)

	if contact.Email == "" {
		if recovered, found := recoverEmail(cells); found {
			contact.Email = recovered
		}
	}

	if contact.Name == "" {
		contact.Name = fallbackName(mapping, cells)
	}
	if contact.Name == "" {
		return contact, warnings, false
	}

	if len(contact.AdditionalData) == 0 {
		contact.AdditionalData = nil
	}
	return contact, warnings, true
}

// applySentDates turns parsed contact dates into sent email events. The
// chronologically first sent email is typed cold, later ones follow-up, and
// the earliest date becomes FirstEmailDate.
func applySentDates(contact *models.Contact, dates []string) {
	if len(dates) == 0 {
		return
	}
	sort.Strings(dates)

	for i, date := range dates {
		eventType := models.EmailTypeFollowUp
		if i == 0 {
			eventType = models.EmailTypeCold
		}
		contact.Emails = append(contact.Emails, models.EmailEvent{
			Date:      date,
			Direction: models.DirectionSent,
			Type:      eventType,
		})
	}
	contact.FirstEmailDate = dates[0]
	contact.SortEmails()
}

// recoverEmail scans the whole row for anything address-shaped when the
// mapped email column produced nothing.
func recoverEmail(cells []string) (string, bool) {
	for _, raw := range cells {
		value := strings.TrimSpace(raw)
		if strings.Contains(value, "@") && strings.Contains(value, ".") {
			return value, true
		}
	}
	return "", false
}

// fallbackName scans cells in column order for a plausible name when the
// name column produced nothing. Cells in columns already claimed by the
// date, email, company or phone mappings are skipped, and date-shaped,
// address-shaped, purely numeric or too-short values are rejected.
func fallbackName(mapping ColumnMapping, cells []string) string {
	claimed := map[int]bool{
		mapping.FieldColumn(FieldContactDate): true,
		mapping.FieldColumn(FieldEmail):       true,
		mapping.FieldColumn(FieldCompany):     true,
		mapping.FieldColumn(FieldPhone):       true,
	}

	for i, raw := range cells {
		if claimed[i] {
			continue
		}
		value := strings.TrimSpace(raw)
		if len(value) < minNameLength {
			continue
		}
		if looksLikeDate(value) || strings.Contains(value, "@") || isNumeric(value) {
			continue
		}
		return value
	}
	return ""
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

