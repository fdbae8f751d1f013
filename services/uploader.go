package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/CrowderSoup/monday-dashboard/database"
	"github.com/CrowderSoup/monday-dashboard/monday"
)

// DefaultUploadDelay is the pause between two timeline writes.
const DefaultUploadDelay = 100 * time.Millisecond

// TimelineWriter writes one timeline value. *monday.Client satisfies it.
type TimelineWriter interface {
	ChangeTimeline(ctx context.Context, boardID, itemID, columnID, from, to string) (*monday.Item, error)
}

// Journal records upload results. *database.JournalService satisfies it.
type Journal interface {
	Record(r *database.UploadResult) error
}

// Broadcaster pushes events to connected dashboards. *Hub satisfies it.
type Broadcaster interface {
	Broadcast(eventType string, data any)
}

// UploadItem is one project whose dates should be written back.
type UploadItem struct {
	ItemID    string `json:"itemId" yaml:"itemId"`
	Name      string `json:"name" yaml:"name"`
	StartDate string `json:"startDate" yaml:"startDate"`
	EndDate   string `json:"endDate" yaml:"endDate"`
}

// UploadRequest is a bulk write of timeline values into a single column.
type UploadRequest struct {
	BoardID  string       `json:"boardId" yaml:"boardId"`
	ColumnID string       `json:"columnId" yaml:"columnId"`
	Projects []UploadItem `json:"projects" yaml:"projects"`
}

// Validate reports the first missing field.
func (r UploadRequest) Validate() error {
	switch {
	case r.BoardID == "":
		return errors.New("boardId is required")
	case r.ColumnID == "":
		return errors.New("columnId is required")
	case len(r.Projects) == 0:
		return errors.New("projects must not be empty")
	}
	for i, p := range r.Projects {
		if p.ItemID == "" {
			return fmt.Errorf("projects[%d]: itemId is required", i)
		}
		if p.StartDate == "" || p.EndDate == "" {
			return fmt.Errorf("projects[%d]: startDate and endDate are required", i)
		}
	}
	return nil
}

// UploadSummary is what a bulk upload returns once every item was attempted.
type UploadSummary struct {
	BatchID   string                  `json:"batchId"`
	Results   []database.UploadResult `json:"results"`
	Succeeded int                     `json:"succeeded"`
	Failed    int                     `json:"failed"`
}

// Uploader writes timeline values one at a time with a fixed pause between
// calls. There is no retry; a failed item is reported and the next one runs.
type Uploader struct {
	writer  TimelineWriter
	journal Journal
	events  Broadcaster
	delay   time.Duration
	logger  *slog.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

// UploaderOption configures an Uploader.
type UploaderOption func(*Uploader)

// WithDelay sets the pause between writes. Zero disables it.
func WithDelay(d time.Duration) UploaderOption {
	return func(u *Uploader) { u.delay = d }
}

// WithJournal records each result.
func WithJournal(j Journal) UploaderOption {
	return func(u *Uploader) { u.journal = j }
}

// WithBroadcaster publishes progress events.
func WithBroadcaster(b Broadcaster) UploaderOption {
	return func(u *Uploader) { u.events = b }
}

// WithLogger sets the logger. slog.Default is used otherwise.
func WithLogger(l *slog.Logger) UploaderOption {
	return func(u *Uploader) { u.logger = l }
}

func NewUploader(writer TimelineWriter, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		writer: writer,
		delay:  DefaultUploadDelay,
		logger: slog.Default(),
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// UploadOne writes a single timeline value. Its result is journaled like a
// bulk item but is not paced.
func (u *Uploader) UploadOne(ctx context.Context, boardID, columnID string, item UploadItem) database.UploadResult {
	return u.write(ctx, uuid.NewString(), boardID, columnID, item)
}

// Upload runs the request sequentially. The returned error is only non-nil
// when the request is invalid or ctx ends before every item was attempted;
// per-item failures are carried in the summary.
func (u *Uploader) Upload(ctx context.Context, req UploadRequest) (*UploadSummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	summary := &UploadSummary{
		BatchID: uuid.NewString(),
		Results: make([]database.UploadResult, 0, len(req.Projects)),
	}
	u.logger.Info("starting timeline upload",
		"batch_id", summary.BatchID, "board_id", req.BoardID, "column_id", req.ColumnID, "items", len(req.Projects))

	for i, item := range req.Projects {
		if i > 0 && u.delay > 0 {
			if err := u.sleep(ctx, u.delay); err != nil {
				u.finish(summary)
				return summary, fmt.Errorf("upload interrupted after %d of %d items: %w", i, len(req.Projects), err)
			}
		}

		result := u.write(ctx, summary.BatchID, req.BoardID, req.ColumnID, item)
		summary.Results = append(summary.Results, result)
		if result.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}

		u.publish(EventUploadProgress, map[string]any{
			"batchId":   summary.BatchID,
			"completed": i + 1,
			"total":     len(req.Projects),
			"result":    result,
		})
	}

	u.finish(summary)
	return summary, nil
}

func (u *Uploader) write(ctx context.Context, batchID, boardID, columnID string, item UploadItem) database.UploadResult {
	result := database.UploadResult{
		BatchID:   batchID,
		BoardID:   boardID,
		ItemID:    item.ItemID,
		Name:      item.Name,
		ColumnID:  columnID,
		StartDate: item.StartDate,
		EndDate:   item.EndDate,
		Success:   true,
	}

	if _, err := u.writer.ChangeTimeline(ctx, boardID, item.ItemID, columnID, item.StartDate, item.EndDate); err != nil {
		result.Success = false
		result.Error = err.Error()
		u.logger.Warn("timeline upload failed", "batch_id", batchID, "item_id", item.ItemID, "error", err)
	}

	if u.journal != nil {
		if err := u.journal.Record(&result); err != nil {
			u.logger.Error("failed to journal upload result", "batch_id", batchID, "item_id", item.ItemID, "error", err)
		}
	}
	return result
}

func (u *Uploader) finish(s *UploadSummary) {
	u.logger.Info("timeline upload finished",
		"batch_id", s.BatchID, "succeeded", s.Succeeded, "failed", s.Failed)
	u.publish(EventUploadComplete, map[string]any{
		"batchId":   s.BatchID,
		"succeeded": s.Succeeded,
		"failed":    s.Failed,
	})
}

func (u *Uploader) publish(eventType string, data any) {
	if u.events != nil {
		u.events.Broadcast(eventType, data)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
