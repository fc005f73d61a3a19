package api

import (
	"net/http"

	"hive-social-network/util"
)

// GlobalSearchHandler searches users and groups by name.
// GET /api/search?term=&page=&limit=
func (h *Handler) GlobalSearchHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	page := util.PageFromRequest(r, h.api.SearchPageSize, h.api.MaxPageSize)
	resp, err := h.svc.GlobalSearch(r.Context(), me, r.URL.Query().Get("term"), page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
