package handlers

import (
	"net/http"

	"github.com/CrowderSoup/monday-dashboard/monday"
)

// TestConnection asks Monday.com who the token belongs to.
func (h *MondayHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	me, err := h.api.Me(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeSuccess(w, map[string]any{"user": me})
}

// ConnectionStatus reports whether a token is configured without calling the API.
func (h *MondayHandler) ConnectionStatus(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]any{
		"configured": h.api.Configured(),
		"token":      monday.InspectToken(h.api.Token()),
	})
}
