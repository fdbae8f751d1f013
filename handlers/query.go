package handlers

import (
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
)

// Stats aggregates board, item, user and team counts.
func (h *MondayHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.api.Stats(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeSuccess(w, map[string]any{
		"stats": stats,
		"summary": fmt.Sprintf("%s items across %s boards, %s users in %s teams",
			humanize.Comma(int64(stats.TotalItems)),
			humanize.Comma(int64(stats.TotalBoards)),
			humanize.Comma(int64(stats.TotalUsers)),
			humanize.Comma(int64(stats.TotalTeams)),
		),
	})
}

type customQueryRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// CustomQuery forwards an arbitrary GraphQL document and returns the upstream
// data object untouched.
func (h *MondayHandler) CustomQuery(w http.ResponseWriter, r *http.Request) {
	var req customQueryRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err)
		return
	}
	if err := required("query", req.Query); err != nil {
		writeFailure(w, r, err)
		return
	}

	data, err := h.api.Custom(r.Context(), req.Query, req.Variables)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeSuccess(w, map[string]any{"data": data})
}
