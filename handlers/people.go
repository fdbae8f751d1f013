package handlers

import "net/http"

func (h *MondayHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.api.Users(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeSuccess(w, map[string]any{"users": users, "count": len(users)})
}

func (h *MondayHandler) Teams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.api.Teams(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeSuccess(w, map[string]any{"teams": teams, "count": len(teams)})
}
