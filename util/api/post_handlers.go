package api

import (
	"net/http"

	"hive-social-network/models"
	"hive-social-network/util"
)

// CreatePostHandler publishes a post, optionally into a group.
// POST /api/posts
func (h *Handler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req models.CreatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	post, err := h.svc.CreatePost(r.Context(), me, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// FeedHandler pages through the acting user's feed, newest first.
// GET /api/posts/feed?page=&limit=
func (h *Handler) FeedHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	page := util.PageFromRequest(r, h.api.DefaultPageSize, h.api.MaxPostPageSize)
	resp, err := h.svc.Feed(r.Context(), me, page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// GET /api/posts/group/{groupId}?page=&limit=
func (h *Handler) GroupPostsHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	groupID, err := pathID(r, "groupId", "group")
	if err != nil {
		respondError(w, r, err)
		return
	}
	page := util.PageFromRequest(r, h.api.DefaultPageSize, h.api.MaxPostPageSize)
	resp, err := h.svc.GroupPosts(r.Context(), me, groupID, page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// GET /api/posts/{id}
func (h *Handler) GetPostHandler(w http.ResponseWriter, r *http.Request) {
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
	post, err := h.svc.GetPost(r.Context(), me, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// PUT /api/posts/{id}
func (h *Handler) UpdatePostHandler(w http.ResponseWriter, r *http.Request) {
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
	var req models.UpdatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	post, err := h.svc.UpdatePost(r.Context(), me, id, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// DeletePostHandler removes a post and its comments.
// DELETE /api/posts/{id}
func (h *Handler) DeletePostHandler(w http.ResponseWriter, r *http.Request) {
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
	if err := h.svc.DeletePost(r.Context(), me, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Post deleted successfully")
}
