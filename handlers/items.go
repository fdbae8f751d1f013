package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/CrowderSoup/monday-dashboard/monday"
	"github.com/CrowderSoup/monday-dashboard/services"
)

// Items lists the items of ?boardId=, or recent items across boards without it.
func (h *MondayHandler) Items(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"), defaultItemLimit, maxItemLimit)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	boardID := r.URL.Query().Get("boardId")
	items, err := h.api.Items(r.Context(), boardID, limit)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeSuccess(w, map[string]any{"items": items, "count": len(items)})
}

type createItemRequest struct {
	BoardID  string `json:"boardId"`
	ItemName string `json:"itemName"`
	GroupID  string `json:"groupId"`
}

func (h *MondayHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err)
		return
	}
	if err := required("boardId", req.BoardID, "itemName", req.ItemName); err != nil {
		writeFailure(w, r, err)
		return
	}

	item, err := h.api.CreateItem(r.Context(), req.BoardID, req.ItemName, req.GroupID)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	h.publish(services.EventItemCreated, map[string]any{"boardId": req.BoardID, "item": item})
	writeSuccess(w, map[string]any{"item": item})
}

type updateItemRequest struct {
	ItemID       string         `json:"itemId"`
	BoardID      string         `json:"boardId"`
	Name         string         `json:"name"`
	ColumnValues map[string]any `json:"columnValues"`
}

// UpdateItem renames an item when name is given, otherwise writes columnValues.
func (h *MondayHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err)
		return
	}
	if err := required("itemId", req.ItemID, "boardId", req.BoardID); err != nil {
		writeFailure(w, r, err)
		return
	}

	var (
		item *monday.Item
		err  error
	)
	switch {
	case req.Name != "":
		item, err = h.api.UpdateItemName(r.Context(), req.BoardID, req.ItemID, req.Name)
	case len(req.ColumnValues) > 0:
		item, err = h.api.UpdateItemColumns(r.Context(), req.BoardID, req.ItemID, req.ColumnValues)
	default:
		err = errors.New("name or columnValues is required")
	}
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	h.publish(services.EventItemUpdated, map[string]any{"boardId": req.BoardID, "item": item})
	writeSuccess(w, map[string]any{"item": item})
}

// parseLimit reads a positive limit, falling back to def and capping at ceiling.
func parseLimit(raw string, def, ceiling int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	if n > ceiling {
		n = ceiling
	}
	return n, nil
}
