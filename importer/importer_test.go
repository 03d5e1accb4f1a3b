// ABOUTME: End-to-end tests for the import pipeline
// ABOUTME: Exercises dedup, merge decisions, cancellation, and error taxonomy
package importer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/rolo/models"
)

// memStore is an in-memory Store fake preserving stored order per scope.
type memStore struct {
	mu       sync.Mutex
	contacts map[string][]models.Contact
}

func newMemStore() *memStore {
	return &memStore{contacts: make(map[string][]models.Contact)}
}

func (s *memStore) ListAll(scope string) ([]models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Contact, len(s.contacts[scope]))
	copy(out, s.contacts[scope])
	return out, nil
}

func (s *memStore) ReplaceAll(scope string, contacts []models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]models.Contact, len(contacts))
	copy(stored, contacts)
	s.contacts[scope] = stored
	return nil
}

func TestImportCSV_EndToEndMergeApproved(t *testing.T) {
	store := newMemStore()
	imp := New(store, DeclineYear(), AlwaysMerge())

	result, err := imp.ImportCSV(context.Background(), "u1",
		"Name,Company,Contact Date\nJane Doe,Acme,1/5/24\nJane Doe,Acme Inc,2/1/24")
	require.NoError(t, err)

	assert.Equal(t, 1, result.AddedCount)
	assert.Equal(t, 1, result.MergedCount)
	assert.Equal(t, 0, result.SkippedCount)

	contacts, err := store.ListAll("u1")
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	c := contacts[0]
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "Acme", c.Firm) // existing wins on conflict
	assert.Equal(t, "2024-01-05", c.FirstEmailDate)

	require.Len(t, c.Emails, 2)
	assert.Equal(t, "2024-01-05", c.Emails[0].Date)
	assert.Equal(t, models.EmailTypeCold, c.Emails[0].Type)
	assert.Equal(t, "2024-02-01", c.Emails[1].Date)
	assert.Equal(t, models.EmailTypeFollowUp, c.Emails[1].Type)
}

func TestImportCSV_DuplicateEmailCaseInsensitive(t *testing.T) {
	store := newMemStore()
	imp := New(store, DeclineYear(), AlwaysMerge())

	result, err := imp.ImportCSV(context.Background(), "u1",
		"Name,Email,Company\nJane,JANE@acme.com,Acme\nJanet,jane@acme.com,Globex")
	require.NoError(t, err)

	assert.Equal(t, 1, result.AddedCount)
	assert.Equal(t, 1, result.MergedCount)

	contacts, _ := store.ListAll("u1")
	require.Len(t, contacts, 1)
	assert.Equal(t, "Jane", contacts[0].Name)
	assert.Equal(t, "Acme", contacts[0].Firm)
}

func TestImportCSV_MergeDeclinedAppendsNewContact(t *testing.T) {
	store := newMemStore()
	imp := New(store, DeclineYear(), NeverMerge())

	result, err := imp.ImportCSV(context.Background(), "u1",
		"Name,Email\nJane Doe,jane@acme.com\nJane Doe,jane@acme.com")
	require.NoError(t, err)

	assert.Equal(t, 2, result.AddedCount)
	assert.Equal(t, 0, result.MergedCount)

	contacts, _ := store.ListAll("u1")
	assert.Len(t, contacts, 2)
}

func TestImportCSV_SkipsUnrecoverableRows(t *testing.T) {
	store := newMemStore()
	imp := New(store, DeclineYear(), AlwaysMerge())

	result, err := imp.ImportCSV(context.Background(), "u1",
		"Name,Email,Company\nJane Doe,jane@acme.com,Acme\n1/5/24,bob@x.com,99")
	require.NoError(t, err)

	assert.Equal(t, 1, result.AddedCount)
	assert.Equal(t, 1, result.SkippedCount)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[len(result.Errors)-1], "no usable name")
}

func TestImportCSV_EmptyInput(t *testing.T) {
	imp := New(newMemStore(), DeclineYear(), AlwaysMerge())

	_, err := imp.ImportCSV(context.Background(), "u1", "")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = imp.ImportCSV(context.Background(), "u1", "\n\n  \n")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestImportCSV_NoValidContacts(t *testing.T) {
	imp := New(newMemStore(), DeclineYear(), AlwaysMerge())

	result, err := imp.ImportCSV(context.Background(), "u1",
		"Name,Company,Contact Date\n1/5/24,,\n2/6/24,,")
	assert.ErrorIs(t, err, ErrNoValidContacts)
	assert.Equal(t, 2, result.SkippedCount)
}

func TestImportCSV_YearClarificationAppliedOnce(t *testing.T) {
	store := newMemStore()
	calls := 0
	years := YearResolverFunc(func(_ context.Context, samples []string) (int, bool, error) {
		calls++
		assert.NotEmpty(t, samples)
		return 2023, true, nil
	})
	imp := New(store, years, AlwaysMerge())

	_, err := imp.ImportCSV(context.Background(), "u1",
		"Name,Contact Date\nJane,3/15\nBob,4/1\nCarol,5/2/24")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)

	contacts, _ := store.ListAll("u1")
	require.Len(t, contacts, 3)
	assert.Equal(t, "2023-03-15", contacts[0].FirstEmailDate)
	assert.Equal(t, "2023-04-01", contacts[1].FirstEmailDate)
	assert.Equal(t, "2024-05-02", contacts[2].FirstEmailDate)
}

func TestImportCSV_YearDeclinedReportsAggregateWarning(t *testing.T) {
	store := newMemStore()
	imp := New(store, DeclineYear(), AlwaysMerge())

	result, err := imp.ImportCSV(context.Background(), "u1",
		"Name,Contact Date\nJane,3/15\nBob,4/1/24")
	require.NoError(t, err)

	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "1 date value(s) without a year were skipped")

	contacts, _ := store.ListAll("u1")
	require.Len(t, contacts, 2)
	assert.Empty(t, contacts[0].Emails)
	require.Len(t, contacts[1].Emails, 1)
}

func TestImportCSV_NoYearPromptWhenAllDatesHaveYears(t *testing.T) {
	years := YearResolverFunc(func(context.Context, []string) (int, bool, error) {
		t.Fatal("year resolver must not be called")
		return 0, false, nil
	})
	imp := New(newMemStore(), years, AlwaysMerge())

	_, err := imp.ImportCSV(context.Background(), "u1",
		"Name,Contact Date\nJane,3/15/24")
	require.NoError(t, err)
}

func TestImportRows_PreTokenizedSharesPipeline(t *testing.T) {
	store := newMemStore()
	imp := New(store, DeclineYear(), AlwaysMerge())

	result, err := imp.ImportRows(context.Background(), "u1", [][]string{
		{"Name", "Company", "Contact Date"},
		{"Jane Doe", "Acme", "1/5/24"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.AddedCount)

	contacts, _ := store.ListAll("u1")
	require.Len(t, contacts, 1)
	assert.Equal(t, "Acme", contacts[0].Firm)
}

func TestImport_SecondConcurrentImportRejected(t *testing.T) {
	store := newMemStore()

	started := make(chan struct{})
	unblock := make(chan struct{})
	merges := MergeConfirmerFunc(func(context.Context, *models.Contact, *models.Contact) (bool, error) {
		close(started)
		<-unblock
		return true, nil
	})
	imp := New(store, DeclineYear(), merges)

	done := make(chan error, 1)
	go func() {
		_, err := imp.ImportCSV(context.Background(), "u1",
			"Name,Email\nJane,jane@x.com\nJane,jane@x.com")
		done <- err
	}()

	<-started
	_, err := imp.ImportCSV(context.Background(), "u1", "Name,Email\nBob,bob@x.com")
	assert.ErrorIs(t, err, ErrImportInProgress)

	// A different scope is not blocked.
	_, err = imp.ImportCSV(context.Background(), "u2", "Name,Company,Contact Date\nBob,Globex,1/1/24")
	assert.NoError(t, err)

	close(unblock)
	require.NoError(t, <-done)
}

func TestImport_CancellationKeepsCommittedRows(t *testing.T) {
	store := newMemStore()
	ctx, cancel := context.WithCancel(context.Background())

	// Cancel after the first row commits by wrapping the store with a
	// write counter.
	wrapped := &cancelAfterWrite{Store: store, cancel: cancel, after: 1}
	imp := New(wrapped, DeclineYear(), AlwaysMerge())

	result, err := imp.ImportCSV(ctx, "u1",
		"Name,Email\nJane,jane@x.com\nBob,bob@x.com\nCarol,carol@x.com")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, result.AddedCount)

	contacts, _ := store.ListAll("u1")
	assert.Len(t, contacts, 1)
}

type cancelAfterWrite struct {
	Store
	cancel context.CancelFunc
	after  int
	writes int
}

func (c *cancelAfterWrite) ReplaceAll(scope string, contacts []models.Contact) error {
	if err := c.Store.ReplaceAll(scope, contacts); err != nil {
		return err
	}
	c.writes++
	if c.writes >= c.after {
		c.cancel()
	}
	return nil
}

func TestImportFile_UnsupportedExtension(t *testing.T) {
	imp := New(newMemStore(), DeclineYear(), AlwaysMerge())

	_, err := imp.ImportFile(context.Background(), "u1", "contacts.pdf", []byte("%PDF"))
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, ".pdf", formatErr.Ext)
}

func TestImportFile_CSVPath(t *testing.T) {
	store := newMemStore()
	imp := New(store, DeclineYear(), AlwaysMerge())

	result, err := imp.ImportFile(context.Background(), "u1", "contacts.csv",
		[]byte("Name,Company,Contact Date\nJane,Acme,1/5/24"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.AddedCount)
	assert.NotEmpty(t, result.BatchID)
}

func TestImport_MergeConfirmerErrorAborts(t *testing.T) {
	boom := errors.New("prompt broke")
	merges := MergeConfirmerFunc(func(context.Context, *models.Contact, *models.Contact) (bool, error) {
		return false, boom
	})
	imp := New(newMemStore(), DeclineYear(), merges)

	_, err := imp.ImportCSV(context.Background(), "u1",
		"Name,Email\nJane,j@x.com\nJane,j@x.com")
	assert.ErrorIs(t, err, boom)
}
