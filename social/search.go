package social

import (
	"context"
	"strings"

	"hive-social-network/models"
)

// GlobalSearch finds users (other than the acting user) by username and
// groups by name, each flagged with the acting user's relationship to it.
// An empty term matches everything.
func (s *Service) GlobalSearch(ctx context.Context, actor *models.User, term string, page models.Page) (resp *models.SearchResponse, err error) {
	defer func() { s.track(ctx, "global_search", err) }()

	term = strings.TrimSpace(term)
	repo := s.store.Repo()

	users, usersTotal, err := repo.SearchUsernames(ctx, term, actor.ID, page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}
	groups, groupsTotal, err := repo.SearchGroupNames(ctx, term, page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}

	resp = &models.SearchResponse{
		Users:         make([]models.UserSearchResult, 0, len(users)),
		Groups:        make([]models.GroupListItem, 0, len(groups)),
		Page:          page.Number,
		Limit:         page.Limit,
		HasMoreUsers:  page.HasMore(usersTotal),
		HasMoreGroups: page.HasMore(groupsTotal),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, models.UserSearchResult{
			ID:                u.ID,
			Username:          u.Username,
			ProfileImage:      u.ProfileImage,
			IsFriend:          actor.Friends.Contains(u.ID),
			IsPendingSent:     actor.PendingSentRequests.Contains(u.ID),
			IsPendingReceived: actor.PendingReceivedRequests.Contains(u.ID),
		})
	}
	for _, g := range groups {
		resp.Groups = append(resp.Groups, listItem(g, actor.ID))
	}
	return resp, nil
}
