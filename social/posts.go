package social

import (
	"context"
	"errors"
	"strings"

	"hive-social-network/database"
	"hive-social-network/models"
	"hive-social-network/validation"
)

const postNotFound = "Post not found"

// CreatePost publishes a post, optionally into a group the author belongs to.
func (s *Service) CreatePost(ctx context.Context, actor *models.User, req models.CreatePostRequest) (view *models.PostView, err error) {
	defer func() { s.track(ctx, "create_post", err) }()

	req.Content = strings.TrimSpace(req.Content)
	req.GroupID = strings.TrimSpace(req.GroupID)
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, fromValidation(verr)
	}

	repo := s.store.Repo()
	p := &models.Post{
		ID:      newID(),
		Content: req.Content,
		Author:  actor.ID,
		Likes:   models.IDList{},
	}
	if req.GroupID != "" {
		g, err := repo.GroupByID(ctx, req.GroupID)
		if err != nil {
			return nil, storeError(err, groupNotFound)
		}
		if !g.IsMember(actor.ID) {
			return nil, forbidden("You must be a member to post in this group")
		}
		p.GroupID = &g.ID
	}

	if err := repo.InsertPost(ctx, p); err != nil {
		return nil, err
	}
	return s.postView(ctx, repo, p)
}

// GetPost returns one post. Posts in a group are visible to its members only.
func (s *Service) GetPost(ctx context.Context, actor *models.User, id string) (view *models.PostView, err error) {
	defer func() { s.track(ctx, "get_post", err) }()

	repo := s.store.Repo()
	p, err := repo.PostByID(ctx, id)
	if err != nil {
		return nil, storeError(err, postNotFound)
	}
	if p.GroupID != nil {
		g, err := repo.GroupByID(ctx, *p.GroupID)
		switch {
		case err == nil:
			if !g.IsMember(actor.ID) {
				return nil, forbidden("You must be a member to view group posts")
			}
		case !errors.Is(err, database.ErrNotFound):
			return nil, err
		}
	}
	return s.postView(ctx, repo, p)
}

// Feed pages through the acting user's posts, friends' posts and posts in
// the user's groups, newest first.
func (s *Service) Feed(ctx context.Context, actor *models.User, page models.Page) (resp models.PagedResponse[models.PostView], err error) {
	defer func() { s.track(ctx, "feed", err) }()

	repo := s.store.Repo()
	posts, total, err := repo.FeedPosts(ctx, actor.ID, page.Offset(), page.Limit)
	if err != nil {
		return resp, err
	}
	views, err := s.postViews(ctx, repo, posts, true)
	if err != nil {
		return resp, err
	}
	return models.NewPagedResponse(views, page, total).WithTotal(total), nil
}

// GroupPosts pages through a group's posts for one of its members.
func (s *Service) GroupPosts(ctx context.Context, actor *models.User, groupID string, page models.Page) (resp *models.GroupPostsResponse, err error) {
	defer func() { s.track(ctx, "group_posts", err) }()

	repo := s.store.Repo()
	g, err := repo.GroupByID(ctx, groupID)
	if err != nil {
		return nil, storeError(err, groupNotFound)
	}
	if !g.IsMember(actor.ID) {
		return nil, forbidden("You must be a member to view group posts")
	}

	posts, total, err := repo.GroupPosts(ctx, g.ID, page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}
	views, err := s.postViews(ctx, repo, posts, true)
	if err != nil {
		return nil, err
	}
	return &models.GroupPostsResponse{
		Data:      views,
		Page:      page.Number,
		Limit:     page.Limit,
		HasMore:   page.HasMore(total),
		Total:     total,
		GroupName: g.Name,
	}, nil
}

// UpdatePost replaces the content of the acting user's post.
func (s *Service) UpdatePost(ctx context.Context, actor *models.User, id string, req models.UpdatePostRequest) (view *models.PostView, err error) {
	defer func() { s.track(ctx, "update_post", err) }()

	req.Content = strings.TrimSpace(req.Content)
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, fromValidation(verr)
	}

	repo := s.store.Repo()
	p, err := repo.PostByID(ctx, id)
	if err != nil {
		return nil, storeError(err, postNotFound)
	}
	if p.Author != actor.ID {
		return nil, forbidden("Not your post")
	}
	p.Content = req.Content
	if err := repo.SavePost(ctx, p, true); err != nil {
		return nil, storeError(err, postNotFound)
	}
	return s.postView(ctx, repo, p)
}

// DeletePost removes the acting user's post together with its comments.
func (s *Service) DeletePost(ctx context.Context, actor *models.User, id string) (err error) {
	defer func() { s.track(ctx, "delete_post", err) }()

	return s.store.InTx(ctx, func(r *database.Repo) error {
		p, err := r.PostByID(ctx, id)
		if err != nil {
			return storeError(err, postNotFound)
		}
		if p.Author != actor.ID {
			return forbidden("Not your post")
		}
		return r.DeletePost(ctx, p.ID)
	})
}

// ToggleLike flips the acting user's like on a post.
func (s *Service) ToggleLike(ctx context.Context, actor *models.User, id string) (res *models.LikeResult, err error) {
	defer func() { s.track(ctx, "toggle_like", err) }()

	err = s.store.InTx(ctx, func(r *database.Repo) error {
		p, err := r.PostByID(ctx, id)
		if err != nil {
			return storeError(err, postNotFound)
		}
		hasLiked := p.Likes.Remove(actor.ID)
		if !hasLiked {
			p.Likes.Add(actor.ID)
		}
		if err := r.SavePost(ctx, p, false); err != nil {
			return err
		}
		res = &models.LikeResult{Likes: len(p.Likes), HasLiked: !hasLiked, PostID: p.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
