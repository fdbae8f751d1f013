package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/CrowderSoup/monday-dashboard/database"
	"github.com/CrowderSoup/monday-dashboard/monday"
	"github.com/CrowderSoup/monday-dashboard/services"
)

const uploadHistoryLimit = 50

// UploadHistory reads back journaled timeline writes.
type UploadHistory interface {
	Recent(limit int) ([]database.UploadResult, error)
	Batch(batchID string) ([]database.UploadResult, error)
}

// TimelineHandler writes inferred or edited dates back to timeline columns.
type TimelineHandler struct {
	api      MondayAPI
	uploader *services.Uploader
	history  UploadHistory
	events   services.Broadcaster
}

func NewTimelineHandler(api MondayAPI, uploader *services.Uploader, history UploadHistory, events services.Broadcaster) *TimelineHandler {
	return &TimelineHandler{
		api:      api,
		uploader: uploader,
		history:  history,
		events:   events,
	}
}

type uploadDatesRequest struct {
	BoardID   string `json:"boardId"`
	ItemID    string `json:"itemId"`
	ColumnID  string `json:"columnId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// UploadDates writes one item's timeline. A rejected write is still a failure
// response even though it is journaled.
func (h *TimelineHandler) UploadDates(w http.ResponseWriter, r *http.Request) {
	var req uploadDatesRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err)
		return
	}
	if err := required("boardId", req.BoardID, "itemId", req.ItemID, "columnId", req.ColumnID,
		"startDate", req.StartDate, "endDate", req.EndDate); err != nil {
		writeFailure(w, r, err)
		return
	}
	if err := checkRange(req.StartDate, req.EndDate); err != nil {
		writeFailure(w, r, err)
		return
	}

	result := h.uploader.UploadOne(r.Context(), req.BoardID, req.ColumnID, services.UploadItem{
		ItemID:    req.ItemID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if !result.Success {
		writeFailure(w, r, errors.New(result.Error))
		return
	}

	if h.events != nil {
		h.events.Broadcast(services.EventItemUpdated, map[string]any{"boardId": req.BoardID, "itemId": req.ItemID})
	}
	writeSuccess(w, map[string]any{"result": result})
}

// UploadBulkDates writes every project's timeline one after another. The
// response lists each item's outcome; partial failure is still a success.
func (h *TimelineHandler) UploadBulkDates(w http.ResponseWriter, r *http.Request) {
	var req services.UploadRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeFailure(w, r, err)
		return
	}
	for i, p := range req.Projects {
		if err := checkRange(p.StartDate, p.EndDate); err != nil {
			writeFailure(w, r, fmt.Errorf("projects[%d]: %w", i, err))
			return
		}
	}

	// A batch runs to completion even if the client disconnects.
	summary, err := h.uploader.Upload(context.WithoutCancel(r.Context()), req)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeSuccess(w, map[string]any{
		"batchId":   summary.BatchID,
		"results":   summary.Results,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
	})
}

type createTimelineColumnRequest struct {
	BoardID string `json:"boardId"`
	Title   string `json:"title"`
}

func (h *TimelineHandler) CreateTimelineColumn(w http.ResponseWriter, r *http.Request) {
	var req createTimelineColumnRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err)
		return
	}
	if req.Title == "" {
		req.Title = "Timeline"
	}
	if err := required("boardId", req.BoardID); err != nil {
		writeFailure(w, r, err)
		return
	}

	column, err := h.api.CreateTimelineColumn(r.Context(), req.BoardID, req.Title)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	if h.events != nil {
		h.events.Broadcast(services.EventColumnCreated, map[string]any{"boardId": req.BoardID, "column": column})
	}
	writeSuccess(w, map[string]any{"column": column})
}

// History lists recent journaled writes, or one batch with ?batchId=.
func (h *TimelineHandler) History(w http.ResponseWriter, r *http.Request) {
	var (
		results []database.UploadResult
		err     error
	)
	if batchID := r.URL.Query().Get("batchId"); batchID != "" {
		results, err = h.history.Batch(batchID)
	} else {
		results, err = h.history.Recent(uploadHistoryLimit)
	}
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeSuccess(w, map[string]any{"results": results, "count": len(results)})
}

func checkRange(start, end string) error {
	from, ok := monday.ParseDay(start)
	if !ok {
		return fmt.Errorf("invalid startDate %q", start)
	}
	to, ok := monday.ParseDay(end)
	if !ok {
		return fmt.Errorf("invalid endDate %q", end)
	}
	if to.Before(from) {
		return fmt.Errorf("endDate %s is before startDate %s", end, start)
	}
	return nil
}
