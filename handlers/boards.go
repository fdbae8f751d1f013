package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/CrowderSoup/monday-dashboard/dashboard"
	"github.com/CrowderSoup/monday-dashboard/services"
)

// Boards returns main boards with their subitem boards nested and dates inferred.
// totalBoards counts every board Monday.com returned, subitem boards included.
func (h *MondayHandler) Boards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.api.Boards(r.Context(), boardListLimit, boardListItemLimit)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	projects := dashboard.BuildTree(boards)
	resolveAll(r.Context(), projects, h.now())

	writeSuccess(w, map[string]any{
		"boards":      projects,
		"totalBoards": len(boards),
	})
}

// Board returns one board with every group, item and column value.
func (h *MondayHandler) Board(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	board, err := h.api.Board(r.Context(), id)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeSuccess(w, map[string]any{"board": board})
}

type createBoardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	BoardKind   string `json:"boardKind"`
}

func (h *MondayHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var req createBoardRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err)
		return
	}
	if err := required("name", req.Name); err != nil {
		writeFailure(w, r, err)
		return
	}

	board, err := h.api.CreateBoard(r.Context(), req.Name, req.Description, req.BoardKind)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	h.publish(services.EventBoardCreated, board)
	writeSuccess(w, map[string]any{"board": board})
}
