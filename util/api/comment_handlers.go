package api

import (
	"net/http"

	"hive-social-network/models"
)

// CreateCommentHandler adds a comment to the post named in the body.
// POST /api/comments
func (h *Handler) CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req models.CreateCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	c, err := h.svc.CreateComment(r.Context(), me, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, models.CommentResponse{Message: "Comment created successfully", Comment: c})
}

// GetCommentsForPostHandler lists a post's comments, oldest first.
// GET /api/comments/post/{postId}
func (h *Handler) GetCommentsForPostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId", "post")
	if err != nil {
		respondError(w, r, err)
		return
	}
	comments, err := h.svc.ListComments(r.Context(), postID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

// GET /api/comments/{id}
func (h *Handler) GetCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "comment")
	if err != nil {
		respondError(w, r, err)
		return
	}
	c, err := h.svc.GetComment(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// PUT /api/comments/{id}
func (h *Handler) UpdateCommentHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathID(r, "id", "comment")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req models.UpdateCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	c, err := h.svc.UpdateComment(r.Context(), me, id, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.CommentResponse{Message: "Comment updated successfully", Comment: c})
}

// DELETE /api/comments/{id}
func (h *Handler) DeleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathID(r, "id", "comment")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.svc.DeleteComment(r.Context(), me, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Comment deleted successfully")
}
