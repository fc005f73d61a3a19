package models

import "time"

const MaxContentLength = 300

// Post is the stored post document. GroupID is nil for posts outside any group.
type Post struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	GroupID   *string   `json:"groupId"`
	Likes     IDList    `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostGroupRef is the populated groupId of a post.
type PostGroupRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// PostView is a post with author and group populated.
type PostView struct {
	ID        string        `json:"_id"`
	Content   string        `json:"content"`
	Author    *UserSummary  `json:"author"`
	GroupID   *PostGroupRef `json:"groupId"`
	Likes     IDList        `json:"likes"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// CreatePostRequest is the body of POST /api/posts.
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,notblank,max=300"`
	GroupID string `json:"groupId" validate:"omitempty,uuid"`
}

type UpdatePostRequest struct {
	Content string `json:"content" validate:"required,notblank,max=300"`
}

// LikeResult is the answer to a like toggle.
type LikeResult struct {
	Likes    int    `json:"likes"`
	HasLiked bool   `json:"hasLiked"`
	PostID   string `json:"postId"`
}

// GroupPostsResponse is the paged listing of one group's posts.
type GroupPostsResponse struct {
	Data      []PostView `json:"data"`
	Page      int        `json:"page"`
	Limit     int        `json:"limit"`
	HasMore   bool       `json:"hasMore"`
	Total     int        `json:"total"`
	GroupName string     `json:"groupName"`
}
