// ABOUTME: Tests for the contact merge rules
// ABOUTME: Covers event unioning, scalar conflicts, and notes concatenation
package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/rolo/models"
)

func TestMerge_EmailsUnionAndSort(t *testing.T) {
	existing := &models.Contact{
		Emails: []models.EmailEvent{
			{Date: "2024-02-01", Direction: models.DirectionSent, Type: models.EmailTypeFollowUp, Subject: "ping"},
			{Date: "2024-01-05", Direction: models.DirectionSent, Type: models.EmailTypeCold},
		},
	}
	incoming := &models.Contact{
		Emails: []models.EmailEvent{
			{Date: "2024-01-05", Direction: models.DirectionSent, Type: models.EmailTypeCold}, // duplicate
			{Date: "2024-03-01", Direction: models.DirectionReceived, Type: models.EmailTypeReceived},
		},
	}

	merged := Merge(existing, incoming)

	require.Len(t, merged.Emails, 3)
	assert.Equal(t, "2024-01-05", merged.Emails[0].Date)
	assert.Equal(t, "2024-02-01", merged.Emails[1].Date)
	assert.Equal(t, "2024-03-01", merged.Emails[2].Date)

	// Sent typing is recomputed across the union; received stays received.
	assert.Equal(t, models.EmailTypeCold, merged.Emails[0].Type)
	assert.Equal(t, models.EmailTypeFollowUp, merged.Emails[1].Type)
	assert.Equal(t, models.EmailTypeReceived, merged.Emails[2].Type)
}

func TestMerge_SentTypingRecomputedWhenIncomingIsEarlier(t *testing.T) {
	existing := &models.Contact{
		Emails: []models.EmailEvent{
			{Date: "2024-02-01", Direction: models.DirectionSent, Type: models.EmailTypeCold},
		},
	}
	incoming := &models.Contact{
		Emails: []models.EmailEvent{
			{Date: "2024-01-05", Direction: models.DirectionSent, Type: models.EmailTypeCold},
		},
	}

	merged := Merge(existing, incoming)

	require.Len(t, merged.Emails, 2)
	assert.Equal(t, models.EmailTypeCold, merged.Emails[0].Type)
	assert.Equal(t, "2024-01-05", merged.Emails[0].Date)
	assert.Equal(t, models.EmailTypeFollowUp, merged.Emails[1].Type)
}

func TestMerge_NotesDedupOnSummaryPrefix(t *testing.T) {
	long := strings.Repeat("a", 60)
	existing := &models.Contact{
		Notes: []models.CallNote{{Date: "2024-01-01", Summary: long + " tail one"}},
	}
	incoming := &models.Contact{
		Notes: []models.CallNote{
			{Date: "2024-01-01", Summary: long + " tail two"}, // same first 50 chars
			{Date: "2024-02-01", Summary: "new call"},
		},
	}

	merged := Merge(existing, incoming)

	require.Len(t, merged.Notes, 2)
	assert.Equal(t, "2024-01-01", merged.Notes[0].Date)
	assert.Equal(t, "new call", merged.Notes[1].Summary)
}

func TestMerge_ScalarsExistingWins(t *testing.T) {
	existing := &models.Contact{Name: "Jane", Firm: "Acme", Position: ""}
	incoming := &models.Contact{Name: "Jane", Firm: "Acme Inc", Position: "CTO", Phone: "555"}

	merged := Merge(existing, incoming)

	assert.Equal(t, "Acme", merged.Firm)
	assert.Equal(t, "CTO", merged.Position)
	assert.Equal(t, "555", merged.Phone)
}

func TestMerge_GeneralNotesConcatenated(t *testing.T) {
	merged := Merge(
		&models.Contact{GeneralNotes: "old"},
		&models.Contact{GeneralNotes: "new"},
	)
	assert.Equal(t, "old"+generalNotesSeparator+"new", merged.GeneralNotes)

	merged = Merge(&models.Contact{}, &models.Contact{GeneralNotes: "only new"})
	assert.Equal(t, "only new", merged.GeneralNotes)

	merged = Merge(&models.Contact{GeneralNotes: "only old"}, &models.Contact{})
	assert.Equal(t, "only old", merged.GeneralNotes)
}

func TestMerge_FirstEmailDateTakesEarlier(t *testing.T) {
	merged := Merge(
		&models.Contact{FirstEmailDate: "2024-02-01"},
		&models.Contact{FirstEmailDate: "2024-01-05"},
	)
	assert.Equal(t, "2024-01-05", merged.FirstEmailDate)

	merged = Merge(&models.Contact{}, &models.Contact{FirstEmailDate: "2024-01-05"})
	assert.Equal(t, "2024-01-05", merged.FirstEmailDate)
}

func TestMerge_PriorityExistingWinsUnlessUnset(t *testing.T) {
	merged := Merge(
		&models.Contact{Priority: models.PriorityLow},
		&models.Contact{Priority: models.PriorityHigh},
	)
	assert.Equal(t, models.PriorityLow, merged.Priority)

	merged = Merge(
		&models.Contact{Priority: ""},
		&models.Contact{Priority: models.PriorityHigh},
	)
	assert.Equal(t, models.PriorityHigh, merged.Priority)
}

func TestMerge_AdditionalDataIncomingOverwrites(t *testing.T) {
	merged := Merge(
		&models.Contact{AdditionalData: map[string]string{"source": "csv", "keep": "yes"}},
		&models.Contact{AdditionalData: map[string]string{"source": "xlsx"}},
	)
	assert.Equal(t, "xlsx", merged.AdditionalData["source"])
	assert.Equal(t, "yes", merged.AdditionalData["keep"])
}
