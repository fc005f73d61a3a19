package social

import (
	"context"

	"hive-social-network/database"
	"hive-social-network/models"
)

// summariesByID loads user summaries keyed by id. Duplicate ids are fine.
func (s *Service) summariesByID(ctx context.Context, repo *database.Repo, ids []string) (map[string]*models.UserSummary, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	list, err := repo.UserSummaries(ctx, unique)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*models.UserSummary, len(list))
	for i := range list {
		out[list[i].ID] = &list[i]
	}
	return out, nil
}

func (s *Service) groupView(ctx context.Context, repo *database.Repo, g *models.Group) (*models.GroupView, error) {
	creator, err := repo.UserSummary(ctx, g.Creator)
	if err != nil {
		return nil, err
	}
	managers, err := repo.UserSummaries(ctx, g.Managers)
	if err != nil {
		return nil, err
	}
	members, err := repo.UserSummaries(ctx, g.Members)
	if err != nil {
		return nil, err
	}
	pending, err := repo.UserSummaries(ctx, g.PendingJoinRequests)
	if err != nil {
		return nil, err
	}
	return &models.GroupView{
		ID:                  g.ID,
		Name:                g.Name,
		Description:         g.Description,
		Image:               g.Image,
		Creator:             creator,
		Managers:            managers,
		Members:             members,
		PendingJoinRequests: pending,
		MembersCount:        len(g.Members),
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}, nil
}

func listItem(g *models.Group, userID string) models.GroupListItem {
	return models.GroupListItem{
		ID:           g.ID,
		Name:         g.Name,
		Image:        g.Image,
		MembersCount: len(g.Members),
		IsMember:     g.IsMember(userID),
		IsPending:    g.IsPending(userID),
	}
}

// postViews populates authors and groups. withGroupImage keeps the group
// image in the reference; profile pages show the group name only.
func (s *Service) postViews(ctx context.Context, repo *database.Repo, posts []*models.Post, withGroupImage bool) ([]models.PostView, error) {
	authorIDs := make([]string, 0, len(posts))
	groupIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		authorIDs = append(authorIDs, p.Author)
		if p.GroupID != nil {
			groupIDs = append(groupIDs, *p.GroupID)
		}
	}
	authors, err := s.summariesByID(ctx, repo, authorIDs)
	if err != nil {
		return nil, err
	}
	groups, err := repo.GroupRefs(ctx, groupIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		v := models.PostView{
			ID:        p.ID,
			Content:   p.Content,
			Author:    authors[p.Author],
			Likes:     p.Likes,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
		if p.GroupID != nil {
			if ref, ok := groups[*p.GroupID]; ok {
				if !withGroupImage {
					ref.Image = ""
				}
				v.GroupID = &ref
			}
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *Service) postView(ctx context.Context, repo *database.Repo, p *models.Post) (*models.PostView, error) {
	views, err := s.postViews(ctx, repo, []*models.Post{p}, true)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Service) commentViews(ctx context.Context, repo *database.Repo, comments []*models.Comment) ([]models.CommentView, error) {
	authorIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.Author)
	}
	authors, err := s.summariesByID(ctx, repo, authorIDs)
	if err != nil {
		return nil, err
	}
	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, models.CommentView{
			ID:        c.ID,
			PostID:    c.PostID,
			Author:    authors[c.Author],
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return views, nil
}
