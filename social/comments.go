package social

import (
	"context"
	"strings"

	"hive-social-network/database"
	"hive-social-network/models"
	"hive-social-network/validation"
)

const commentNotFound = "Comment not found"

// CreateComment adds the acting user's comment to a post.
func (s *Service) CreateComment(ctx context.Context, actor *models.User, req models.CreateCommentRequest) (view *models.CommentView, err error) {
	defer func() { s.track(ctx, "create_comment", err) }()

	req.Content = strings.TrimSpace(req.Content)
	req.PostID = strings.TrimSpace(req.PostID)
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, fromValidation(verr)
	}

	repo := s.store.Repo()
	if _, err := repo.PostByID(ctx, req.PostID); err != nil {
		return nil, storeError(err, postNotFound)
	}
	c := &models.Comment{
		ID:      newID(),
		PostID:  req.PostID,
		Author:  actor.ID,
		Content: req.Content,
	}
	if err := repo.InsertComment(ctx, c); err != nil {
		return nil, err
	}
	return s.commentView(ctx, repo, c)
}

// ListComments returns the comments on a post, oldest first.
func (s *Service) ListComments(ctx context.Context, postID string) (views []models.CommentView, err error) {
	defer func() { s.track(ctx, "list_comments", err) }()

	repo := s.store.Repo()
	if _, err := repo.PostByID(ctx, postID); err != nil {
		return nil, storeError(err, postNotFound)
	}
	comments, err := repo.CommentsForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.commentViews(ctx, repo, comments)
}

func (s *Service) GetComment(ctx context.Context, id string) (view *models.CommentView, err error) {
	defer func() { s.track(ctx, "get_comment", err) }()

	repo := s.store.Repo()
	c, err := repo.CommentByID(ctx, id)
	if err != nil {
		return nil, storeError(err, commentNotFound)
	}
	return s.commentView(ctx, repo, c)
}

// UpdateComment replaces the content of the acting user's comment.
func (s *Service) UpdateComment(ctx context.Context, actor *models.User, id string, req models.UpdateCommentRequest) (view *models.CommentView, err error) {
	defer func() { s.track(ctx, "update_comment", err) }()

	req.Content = strings.TrimSpace(req.Content)
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, fromValidation(verr)
	}

	repo := s.store.Repo()
	c, err := repo.CommentByID(ctx, id)
	if err != nil {
		return nil, storeError(err, commentNotFound)
	}
	if c.Author != actor.ID {
		return nil, forbidden("You are not authorized to update this comment")
	}
	c.Content = req.Content
	if err := repo.SaveComment(ctx, c); err != nil {
		return nil, storeError(err, commentNotFound)
	}
	return s.commentView(ctx, repo, c)
}

// DeleteComment removes the acting user's comment.
func (s *Service) DeleteComment(ctx context.Context, actor *models.User, id string) (err error) {
	defer func() { s.track(ctx, "delete_comment", err) }()

	return s.store.InTx(ctx, func(r *database.Repo) error {
		c, err := r.CommentByID(ctx, id)
		if err != nil {
			return storeError(err, commentNotFound)
		}
		if c.Author != actor.ID {
			return forbidden("You can delete only your own comments")
		}
		return storeError(r.DeleteComment(ctx, c.ID), commentNotFound)
	})
}

func (s *Service) commentView(ctx context.Context, repo *database.Repo, c *models.Comment) (*models.CommentView, error) {
	views, err := s.commentViews(ctx, repo, []*models.Comment{c})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
