package api

import "net/http"

// ToggleLikePostHandler likes the post, or takes the like back.
// POST /api/posts/{id}/like
func (h *Handler) ToggleLikePostHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathID(r, "id", "post")
	if err != nil {
		respondError(w, r, err)
		return
	}
	res, err := h.svc.ToggleLike(r.Context(), me, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
