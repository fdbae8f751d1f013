package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"

	"github.com/CrowderSoup/monday-dashboard/monday"
	"github.com/CrowderSoup/monday-dashboard/services"
)

// activityEntry is one activity log flattened out of its board.
type activityEntry struct {
	monday.ActivityLog
	BoardID   string     `json:"boardId"`
	BoardName string     `json:"boardName"`
	At        *time.Time `json:"at,omitempty"`
	Ago       string     `json:"ago,omitempty"`
}

// Activity returns the latest activity across boards, newest first.
func (h *MondayHandler) Activity(w http.ResponseWriter, r *http.Request) {
	h.activity(w, r, activityLimit)
}

// Logs is Activity with a longer history.
func (h *MondayHandler) Logs(w http.ResponseWriter, r *http.Request) {
	h.activity(w, r, logsLimit)
}

func (h *MondayHandler) activity(w http.ResponseWriter, r *http.Request, limit int) {
	boards, err := h.api.ActivityLogs(r.Context(), activityBoardLimit, limit)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	now := h.now()
	entries := []activityEntry{}
	for _, b := range boards {
		for _, l := range b.ActivityLogs {
			e := activityEntry{ActivityLog: l, BoardID: b.ID, BoardName: b.Name}
			if at, ok := l.Time(); ok {
				e.At = &at
				e.Ago = humanize.RelTime(at, now, "ago", "from now")
			}
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].At == nil || entries[j].At == nil {
			return entries[j].At == nil && entries[i].At != nil
		}
		return entries[i].At.After(*entries[j].At)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	writeSuccess(w, map[string]any{"activity": entries, "count": len(entries)})
}

type updateEntry struct {
	monday.Update
	Ago string `json:"ago,omitempty"`
}

// Updates returns the newest item updates (comments).
func (h *MondayHandler) Updates(w http.ResponseWriter, r *http.Request) {
	updates, err := h.api.Updates(r.Context(), updatesLimit)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	now := h.now()
	entries := make([]updateEntry, 0, len(updates))
	for _, u := range updates {
		e := updateEntry{Update: u}
		if at, ok := u.Time(); ok {
			e.Ago = humanize.RelTime(at, now, "ago", "from now")
		}
		entries = append(entries, e)
	}
	writeSuccess(w, map[string]any{"updates": entries, "count": len(entries)})
}

type createUpdateRequest struct {
	ItemID string `json:"itemId"`
	Text   string `json:"text"`
}

// CreateUpdate posts a comment on an item. The text is markdown and is sent
// to Monday.com as HTML.
func (h *MondayHandler) CreateUpdate(w http.ResponseWriter, r *http.Request) {
	var req createUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err)
		return
	}
	if err := required("itemId", req.ItemID, "text", req.Text); err != nil {
		writeFailure(w, r, err)
		return
	}

	var body bytes.Buffer
	if err := goldmark.Convert([]byte(req.Text), &body); err != nil {
		writeFailure(w, r, fmt.Errorf("failed to render update text: %w", err))
		return
	}

	update, err := h.api.CreateUpdate(r.Context(), req.ItemID, body.String())
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	h.publish(services.EventUpdateCreated, map[string]any{"itemId": req.ItemID, "update": update})
	writeSuccess(w, map[string]any{"update": update})
}
