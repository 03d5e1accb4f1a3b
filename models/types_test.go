// ABOUTME: Tests for contact data models
// ABOUTME: Validates sorting invariants and JSON serialization
package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContact_SortEmails(t *testing.T) {
	c := &Contact{
		Emails: []EmailEvent{
			{Date: "2024-03-15", Direction: DirectionSent, Type: EmailTypeFollowUp},
			{Date: "2024-01-05", Direction: DirectionSent, Type: EmailTypeCold},
			{Date: "2024-02-01", Direction: DirectionReceived, Type: EmailTypeReceived},
		},
	}

	c.SortEmails()

	assert.Equal(t, "2024-01-05", c.Emails[0].Date)
	assert.Equal(t, "2024-02-01", c.Emails[1].Date)
	assert.Equal(t, "2024-03-15", c.Emails[2].Date)
}

func TestContact_SortEmails_StableOnEqualDates(t *testing.T) {
	c := &Contact{
		Emails: []EmailEvent{
			{Date: "2024-01-05", Subject: "first"},
			{Date: "2024-01-05", Subject: "second"},
		},
	}

	c.SortEmails()

	assert.Equal(t, "first", c.Emails[0].Subject)
	assert.Equal(t, "second", c.Emails[1].Subject)
}

func TestContact_SortNotes(t *testing.T) {
	c := &Contact{
		Notes: []CallNote{
			{Date: "2024-06-01", Summary: "later"},
			{Date: "2024-05-01", Summary: "earlier"},
		},
	}

	c.SortNotes()

	assert.Equal(t, "earlier", c.Notes[0].Summary)
	assert.Equal(t, "later", c.Notes[1].Summary)
}

func TestContact_JSONRoundTrip(t *testing.T) {
	c := Contact{
		ID:             uuid.New(),
		Name:           "Jane Doe",
		Email:          "jane@example.com",
		Firm:           "Acme",
		Priority:       PriorityHigh,
		VIP:            true,
		FirstEmailDate: "2024-01-05",
		Emails: []EmailEvent{
			{Date: "2024-01-05", Direction: DirectionSent, Type: EmailTypeCold, Subject: "Intro"},
		},
		AdditionalData: map[string]string{"linkedin": "jdoe"},
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded Contact
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, c.ID, decoded.ID)
	assert.Equal(t, c.Name, decoded.Name)
	assert.Equal(t, c.Firm, decoded.Firm)
	assert.Equal(t, c.Priority, decoded.Priority)
	assert.Equal(t, c.Emails, decoded.Emails)
	assert.Equal(t, c.AdditionalData, decoded.AdditionalData)
}
