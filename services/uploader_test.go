package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrowderSoup/monday-dashboard/database"
	"github.com/CrowderSoup/monday-dashboard/logging"
	"github.com/CrowderSoup/monday-dashboard/monday"
)

type timelineCall struct {
	boardID, itemID, columnID, from, to string
}

type fakeWriter struct {
	calls []timelineCall
	fail  map[string]error
}

func (f *fakeWriter) ChangeTimeline(_ context.Context, boardID, itemID, columnID, from, to string) (*monday.Item, error) {
	f.calls = append(f.calls, timelineCall{boardID, itemID, columnID, from, to})
	if err := f.fail[itemID]; err != nil {
		return nil, err
	}
	return &monday.Item{ID: itemID}, nil
}

type memJournal struct {
	results []database.UploadResult
}

func (m *memJournal) Record(r *database.UploadResult) error {
	m.results = append(m.results, *r)
	return nil
}

type recordedEvents struct {
	mu    sync.Mutex
	types []string
}

func (r *recordedEvents) Broadcast(eventType string, _ any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, eventType)
}

func threeItems() UploadRequest {
	return UploadRequest{
		BoardID:  "10",
		ColumnID: "timeline",
		Projects: []UploadItem{
			{ItemID: "1", Name: "Alpha", StartDate: "2025-01-01", EndDate: "2025-01-31"},
			{ItemID: "2", Name: "Beta", StartDate: "2025-02-01", EndDate: "2025-02-28"},
			{ItemID: "3", Name: "Gamma", StartDate: "2025-03-01", EndDate: "2025-03-31"},
		},
	}
}

func TestUpload_ContinuesPastFailures(t *testing.T) {
	writer := &fakeWriter{fail: map[string]error{"2": errors.New("Column not found")}}
	journal := &memJournal{}
	events := &recordedEvents{}

	u := NewUploader(writer,
		WithDelay(0),
		WithJournal(journal),
		WithBroadcaster(events),
		WithLogger(logging.Discard()),
	)

	summary, err := u.Upload(context.Background(), threeItems())
	require.NoError(t, err)

	require.Len(t, writer.calls, 3)
	assert.Equal(t, timelineCall{"10", "1", "timeline", "2025-01-01", "2025-01-31"}, writer.calls[0])
	assert.Equal(t, "3", writer.calls[2].itemID)

	require.Len(t, summary.Results, 3)
	assert.True(t, summary.Results[0].Success)
	assert.False(t, summary.Results[1].Success)
	assert.Equal(t, "Column not found", summary.Results[1].Error)
	assert.True(t, summary.Results[2].Success)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.NotEmpty(t, summary.BatchID)

	require.Len(t, journal.results, 3)
	for _, r := range journal.results {
		assert.Equal(t, summary.BatchID, r.BatchID)
	}

	assert.Equal(t, []string{
		EventUploadProgress, EventUploadProgress, EventUploadProgress, EventUploadComplete,
	}, events.types)
}

func TestUpload_PausesBetweenCallsOnly(t *testing.T) {
	var pauses []time.Duration
	u := NewUploader(&fakeWriter{}, WithDelay(100*time.Millisecond), WithLogger(logging.Discard()))
	u.sleep = func(_ context.Context, d time.Duration) error {
		pauses = append(pauses, d)
		return nil
	}

	_, err := u.Upload(context.Background(), threeItems())
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 100 * time.Millisecond}, pauses)
}

func TestUpload_StopsWhenContextEnds(t *testing.T) {
	writer := &fakeWriter{}
	u := NewUploader(writer, WithDelay(time.Hour), WithLogger(logging.Discard()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := u.Upload(ctx, threeItems())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Len(t, summary.Results, 1, "first item runs before any pause")
	assert.Len(t, writer.calls, 1)
}

func TestUploadRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*UploadRequest)
		want string
	}{
		{"missing board", func(r *UploadRequest) { r.BoardID = "" }, "boardId is required"},
		{"missing column", func(r *UploadRequest) { r.ColumnID = "" }, "columnId is required"},
		{"no projects", func(r *UploadRequest) { r.Projects = nil }, "projects must not be empty"},
		{"missing item", func(r *UploadRequest) { r.Projects[1].ItemID = "" }, "projects[1]: itemId is required"},
		{"missing date", func(r *UploadRequest) { r.Projects[0].EndDate = "" }, "projects[0]: startDate and endDate are required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := threeItems()
			tt.mut(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}

	assert.NoError(t, threeItems().Validate())
}

func TestUploadOne(t *testing.T) {
	writer := &fakeWriter{}
	journal := &memJournal{}
	u := NewUploader(writer, WithJournal(journal), WithLogger(logging.Discard()))

	result := u.UploadOne(context.Background(), "10", "timeline",
		UploadItem{ItemID: "7", StartDate: "2025-05-01", EndDate: "2025-05-10"})

	assert.True(t, result.Success)
	assert.Equal(t, "7", result.ItemID)
	require.Len(t, journal.results, 1)
	assert.Equal(t, result.BatchID, journal.results[0].BatchID)
}
