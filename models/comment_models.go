package models

import "time"

type Comment struct {
	ID        string    `json:"_id"`
	PostID    string    `json:"postId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentView is a comment with its author populated.
type CommentView struct {
	ID        string       `json:"_id"`
	PostID    string       `json:"postId"`
	Author    *UserSummary `json:"author"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type CreateCommentRequest struct {
	PostID  string `json:"postId" validate:"required,uuid"`
	Content string `json:"content" validate:"required,notblank,max=300"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,notblank,max=300"`
}

// CommentResponse wraps a created or updated comment with a status message.
type CommentResponse struct {
	Message string       `json:"message"`
	Comment *CommentView `json:"comment"`
}
