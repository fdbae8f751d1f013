package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJournal(t *testing.T) *JournalService {
	t.Helper()
	db, err := InitDB(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewJournalService(db)
}

func TestJournal_RecordAndRecent(t *testing.T) {
	j := newTestJournal(t)

	first := &UploadResult{BatchID: "b1", BoardID: "10", ItemID: "100", ColumnID: "timeline",
		StartDate: "2025-01-01", EndDate: "2025-02-01", Success: true}
	second := &UploadResult{BatchID: "b1", BoardID: "10", ItemID: "101", ColumnID: "timeline",
		StartDate: "2025-03-01", EndDate: "2025-04-01", Success: false, Error: "Column not found"}

	require.NoError(t, j.Record(first))
	require.NoError(t, j.Record(second))
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	recent, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "101", recent[0].ItemID, "newest first")
	assert.False(t, recent[0].Success)
	assert.Equal(t, "Column not found", recent[0].Error)
	assert.True(t, recent[1].Success)

	n, err := j.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestJournal_Batch(t *testing.T) {
	j := newTestJournal(t)

	for _, r := range []*UploadResult{
		{BatchID: "a", ItemID: "1", Success: true},
		{BatchID: "b", ItemID: "2", Success: true},
		{BatchID: "a", ItemID: "3", Success: false},
	} {
		require.NoError(t, j.Record(r))
	}

	batch, err := j.Batch("a")
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "1", batch[0].ItemID)
	assert.Equal(t, "3", batch[1].ItemID)

	empty, err := j.Batch("missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
