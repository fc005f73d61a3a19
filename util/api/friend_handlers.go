package api

import (
	"context"
	"net/http"

	"hive-social-network/models"
	"hive-social-network/social"
)

// friendAction runs one friendship operation against the user named in the
// path and answers with message on success.
func (h *Handler) friendAction(w http.ResponseWriter, r *http.Request, message string,
	op func(ctx context.Context, me *models.User, otherID string) error) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	otherID, err := pathID(r, "id", "user")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := op(r.Context(), me, otherID); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, message)
}

// SendFriendRequestHandler sends a friend request, or accepts the one the
// other user already sent.
// POST /api/users/{id}/friend-request
func (h *Handler) SendFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	otherID, err := pathID(r, "id", "user")
	if err != nil {
		respondError(w, r, err)
		return
	}
	outcome, err := h.svc.SendRequest(r.Context(), me, otherID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if outcome == social.AutoAccepted {
		respondMessage(w, http.StatusOK, "Friend request auto-accepted")
		return
	}
	respondMessage(w, http.StatusOK, "Friend request sent")
}

// POST /api/users/{id}/friend-accept
func (h *Handler) AcceptFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	h.friendAction(w, r, "Friend request accepted", h.svc.AcceptRequest)
}

// POST /api/users/{id}/friend-cancel
func (h *Handler) CancelFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	h.friendAction(w, r, "Friend request canceled", h.svc.CancelRequest)
}

// DELETE /api/users/{id}/friend-remove
func (h *Handler) RemoveFriendHandler(w http.ResponseWriter, r *http.Request) {
	h.friendAction(w, r, "Friend removed", h.svc.RemoveFriend)
}

// GetProfileHandler returns a user with their posts, for friends and self.
// GET /api/users/{id}/profile
func (h *Handler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathID(r, "id", "user")
	if err != nil {
		respondError(w, r, err)
		return
	}
	profile, err := h.svc.GetProfile(r.Context(), me, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
