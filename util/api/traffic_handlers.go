package api

import (
	"context"
	"net/http"

	"hive-social-network/models"
)

func (h *Handler) trafficReport(w http.ResponseWriter, r *http.Request, report func(context.Context) ([]models.DailyCount, error)) {
	counts, err := report(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if counts == nil {
		counts = []models.DailyCount{}
	}
	respondJSON(w, http.StatusOK, counts)
}

// GET /api/traffic/posts
func (h *Handler) PostTrafficHandler(w http.ResponseWriter, r *http.Request) {
	h.trafficReport(w, r, h.svc.PostTraffic)
}

// GET /api/traffic/comments
func (h *Handler) CommentTrafficHandler(w http.ResponseWriter, r *http.Request) {
	h.trafficReport(w, r, h.svc.CommentTraffic)
}
