package social

import (
	"context"
	"errors"
	"strings"

	"hive-social-network/database"
	"hive-social-network/logging"
	"hive-social-network/metrics"
	"hive-social-network/models"
	"hive-social-network/validation"
)

const groupNotFound = "Group not found"

var errGroupNameTaken = &Error{Kind: ErrConflict, Message: "Group name already exists"}

// groupStoreError reports a unique violation on the group name with the
// same message as the explicit name check.
func groupStoreError(err error) error {
	var dup *database.DuplicateKeyError
	if errors.As(err, &dup) && dup.Field == "name" {
		return errGroupNameTaken
	}
	return storeError(err, groupNotFound)
}

// CreateGroup creates a group whose creator is its only member and manager.
func (s *Service) CreateGroup(ctx context.Context, actor *models.User, req models.CreateGroupRequest) (g *models.Group, err error) {
	defer func() { s.track(ctx, "create_group", err) }()

	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, fromValidation(verr)
	}

	repo := s.store.Repo()
	exists, err := repo.GroupNameExists(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errGroupNameTaken
	}

	g = &models.Group{
		ID:                  newID(),
		Name:                req.Name,
		Description:         req.Description,
		Image:               models.DefaultGroupImage,
		Creator:             actor.ID,
		Managers:            models.IDList{actor.ID},
		Members:             models.IDList{actor.ID},
		PendingJoinRequests: models.IDList{},
	}
	if img := strings.TrimSpace(req.Image); img != "" {
		g.Image = img
	}
	if err := s.store.InTx(ctx, func(r *database.Repo) error { return r.InsertGroup(ctx, g) }); err != nil {
		return nil, groupStoreError(err)
	}

	logging.Ctx(ctx).Info().Str("group_id", g.ID).Str("creator_id", actor.ID).Msg("Group created")
	return g, nil
}

// GetGroup returns the group with every user reference populated.
func (s *Service) GetGroup(ctx context.Context, id string) (view *models.GroupView, err error) {
	defer func() { s.track(ctx, "get_group", err) }()

	repo := s.store.Repo()
	g, err := repo.GroupByID(ctx, id)
	if err != nil {
		return nil, storeError(err, groupNotFound)
	}
	return s.groupView(ctx, repo, g)
}

// ListMyGroups pages through the groups the acting user belongs to, newest
// first.
func (s *Service) ListMyGroups(ctx context.Context, actor *models.User, page models.Page) (resp models.PagedResponse[models.MyGroupItem], err error) {
	defer func() { s.track(ctx, "list_my_groups", err) }()

	repo := s.store.Repo()
	groups, total, err := repo.GroupsWithMember(ctx, actor.ID, page.Offset(), page.Limit)
	if err != nil {
		return resp, err
	}

	creatorIDs := make([]string, 0, len(groups))
	for _, g := range groups {
		creatorIDs = append(creatorIDs, g.Creator)
	}
	creators, err := s.summariesByID(ctx, repo, creatorIDs)
	if err != nil {
		return resp, err
	}

	items := make([]models.MyGroupItem, 0, len(groups))
	for _, g := range groups {
		items = append(items, models.MyGroupItem{
			ID:                  g.ID,
			Name:                g.Name,
			Description:         g.Description,
			Image:               g.Image,
			Creator:             creators[g.Creator],
			Managers:            g.Managers,
			Members:             g.Members,
			PendingJoinRequests: g.PendingJoinRequests,
			MembersCount:        len(g.Members),
			CreatedAt:           g.CreatedAt,
			UpdatedAt:           g.UpdatedAt,
		})
	}
	return models.NewPagedResponse(items, page, total), nil
}

// ListAllGroups pages through every group by name, flagged with the acting
// user's relationship to each.
func (s *Service) ListAllGroups(ctx context.Context, actor *models.User, page models.Page) (resp models.PagedResponse[models.GroupListItem], err error) {
	defer func() { s.track(ctx, "list_all_groups", err) }()

	groups, total, err := s.store.Repo().ListGroups(ctx, page.Offset(), page.Limit)
	if err != nil {
		return resp, err
	}
	items := make([]models.GroupListItem, 0, len(groups))
	for _, g := range groups {
		items = append(items, listItem(g, actor.ID))
	}
	return models.NewPagedResponse(items, page, total), nil
}

// mutateGroup loads the group inside a transaction, lets fn change it and
// saves it when fn succeeds.
func (s *Service) mutateGroup(ctx context.Context, groupID string, fn func(r *database.Repo, g *models.Group) error) (*models.Group, error) {
	var out *models.Group
	err := s.store.InTx(ctx, func(r *database.Repo) error {
		g, err := r.GroupByID(ctx, groupID)
		if err != nil {
			return storeError(err, groupNotFound)
		}
		if err := fn(r, g); err != nil {
			return err
		}
		if err := r.SaveGroup(ctx, g); err != nil {
			return groupStoreError(err)
		}
		out = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RequestToJoin adds the acting user to the group's pending join requests.
func (s *Service) RequestToJoin(ctx context.Context, actor *models.User, groupID string) (g *models.Group, err error) {
	defer func() { s.track(ctx, "request_to_join", err) }()

	return s.mutateGroup(ctx, groupID, func(_ *database.Repo, g *models.Group) error {
		if g.IsMember(actor.ID) {
			return ErrAlreadyMember
		}
		if g.IsPending(actor.ID) {
			return ErrDuplicateRequest
		}
		g.PendingJoinRequests.Add(actor.ID)
		return nil
	})
}

// CancelJoinRequest withdraws the acting user's pending join request.
func (s *Service) CancelJoinRequest(ctx context.Context, actor *models.User, groupID string) (g *models.Group, err error) {
	defer func() { s.track(ctx, "cancel_join_request", err) }()

	return s.mutateGroup(ctx, groupID, func(_ *database.Repo, g *models.Group) error {
		if !g.PendingJoinRequests.Remove(actor.ID) {
			return notFound("No pending request")
		}
		return nil
	})
}

// RespondJoinRequest lets a manager accept or reject a pending join request.
func (s *Service) RespondJoinRequest(ctx context.Context, actor *models.User, groupID, targetID string, accept bool) (g *models.Group, err error) {
	defer func() { s.track(ctx, "respond_join_request", err) }()

	return s.mutateGroup(ctx, groupID, func(_ *database.Repo, g *models.Group) error {
		if !g.IsManager(actor.ID) {
			return forbidden("Not a manager")
		}
		if !g.PendingJoinRequests.Remove(targetID) {
			return notFound("No such request")
		}
		if accept {
			g.Members.Add(targetID)
		}
		return nil
	})
}

// UpdateMemberRole promotes a user to manager (admin) or demotes a manager to
// plain member (user). Promotion also makes the user a member. The last
// manager cannot be demoted.
func (s *Service) UpdateMemberRole(ctx context.Context, actor *models.User, groupID, targetID, role string) (view *models.GroupView, err error) {
	defer func() { s.track(ctx, "update_member_role", err) }()

	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, validationError("Invalid role")
	}

	g, err := s.mutateGroup(ctx, groupID, func(r *database.Repo, g *models.Group) error {
		if !g.IsManager(actor.ID) {
			return forbidden("Not a manager")
		}
		if _, err := r.UserByID(ctx, targetID); err != nil {
			return storeError(err, "User not found")
		}

		if role == models.RoleAdmin {
			g.PendingJoinRequests.Remove(targetID)
			g.Members.Add(targetID)
			g.Managers.Add(targetID)
			return nil
		}
		if g.IsManager(targetID) && len(g.Managers) == 1 {
			return conflict("A group must keep at least one manager")
		}
		g.Managers.Remove(targetID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.groupView(ctx, s.store.Repo(), g)
}

// LeaveOrRemove takes targetID out of the group. A member may leave on their
// own; anyone else needs a manager. When the last member leaves the group is
// deleted and deleted is true. When the sole manager leaves, the
// earliest-joined remaining member becomes the sole manager.
func (s *Service) LeaveOrRemove(ctx context.Context, actor *models.User, groupID, targetID string) (g *models.Group, deleted bool, err error) {
	defer func() { s.track(ctx, "leave_or_remove", err) }()

	err = s.store.InTx(ctx, func(r *database.Repo) error {
		current, err := r.GroupByID(ctx, groupID)
		if err != nil {
			return storeError(err, groupNotFound)
		}

		self := actor.ID == targetID
		if !self && !current.IsManager(actor.ID) {
			return forbidden("Forbidden")
		}
		if !current.IsMember(targetID) {
			return notFound("User is not a member of this group")
		}

		if self {
			if len(current.Members) == 1 {
				deleted = true
				return r.DeleteGroup(ctx, current.ID)
			}
			if len(current.Managers) == 1 && current.Managers[0] == targetID {
				successor := current.Members.Without(targetID)[0]
				current.Managers = models.IDList{successor}
				logging.Ctx(ctx).Info().Str("group_id", current.ID).Str("manager_id", successor).
					Msg("Manager role passed on")
			}
		}

		current.Managers.Remove(targetID)
		current.Members.Remove(targetID)
		if err := r.SaveGroup(ctx, current); err != nil {
			return err
		}
		g = current
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if deleted {
		metrics.RecordGroupDeleted("last_member_left")
		logging.Ctx(ctx).Info().Str("group_id", groupID).Msg("Group deleted after last member left")
	}
	return g, deleted, nil
}

// UpdateGroup lets a manager change the name, description or image.
func (s *Service) UpdateGroup(ctx context.Context, actor *models.User, id string, req models.UpdateGroupRequest) (g *models.Group, err error) {
	defer func() { s.track(ctx, "update_group", err) }()

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		req.Description = &desc
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, fromValidation(verr)
	}

	return s.mutateGroup(ctx, id, func(r *database.Repo, g *models.Group) error {
		if !g.IsManager(actor.ID) {
			return forbidden("Only managers can update group")
		}
		if req.Name != nil && *req.Name != g.Name {
			exists, err := r.GroupNameExists(ctx, *req.Name)
			if err != nil {
				return err
			}
			if exists {
				return errGroupNameTaken
			}
			g.Name = *req.Name
		}
		if req.Description != nil {
			g.Description = *req.Description
		}
		if req.Image != nil {
			if img := strings.TrimSpace(*req.Image); img != "" {
				g.Image = img
			}
		}
		return nil
	})
}

// DeleteGroup removes the group and its roster. Posts and comments in the
// group stay.
func (s *Service) DeleteGroup(ctx context.Context, actor *models.User, id string) (err error) {
	defer func() { s.track(ctx, "delete_group", err) }()

	err = s.store.InTx(ctx, func(r *database.Repo) error {
		g, err := r.GroupByID(ctx, id)
		if err != nil {
			return storeError(err, groupNotFound)
		}
		if !g.IsManager(actor.ID) {
			return forbidden("Only managers can delete")
		}
		return r.DeleteGroup(ctx, id)
	})
	if err != nil {
		return err
	}

	metrics.RecordGroupDeleted("manager")
	logging.Ctx(ctx).Info().Str("group_id", id).Str("actor_id", actor.ID).Msg("Group deleted")
	return nil
}
