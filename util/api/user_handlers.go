package api

import (
	"net/http"

	"hive-social-network/models"
)

// CreateUserHandler registers a user.
// POST /api/users
func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	u, err := h.svc.CreateUser(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, u)
}

// SearchUsersHandler matches usernames and emails.
// GET /api/users?search=
func (h *Handler) SearchUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.SearchUsers(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// GET /api/users/{id}
func (h *Handler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "user")
	if err != nil {
		respondError(w, r, err)
		return
	}
	u, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// WhoAmIHandler returns the user behind the identity token.
// GET /api/users/me
func (h *Handler) WhoAmIHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, me)
}

// UpdateUserHandler changes the acting user's own profile fields.
// PUT /api/users/{id}
func (h *Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
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
	var req models.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	u, err := h.svc.UpdateUser(r.Context(), me, id, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// GET /api/users/me/friends
func (h *Handler) ListFriendsHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	friends, err := h.svc.ListFriends(r.Context(), me)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, friends)
}

// GET /api/users/me/requests
func (h *Handler) ListPendingRequestsHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	pending, err := h.svc.ListPendingRequests(r.Context(), me)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pending)
}
