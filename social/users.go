package social

import (
	"context"
	"strings"
	"time"

	"hive-social-network/database"
	"hive-social-network/models"
	"hive-social-network/validation"
)

var birthDateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseBirthDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, validationError("birthDate must be a valid date")
}

// CreateUser registers a user. The identity token and email must be unused.
func (s *Service) CreateUser(ctx context.Context, req models.CreateUserRequest) (u *models.User, err error) {
	defer func() { s.track(ctx, "create_user", err) }()

	req.UserID = strings.TrimSpace(req.UserID)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, fromValidation(verr)
	}
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	u = &models.User{
		ID:                      newID(),
		IdentityToken:           req.UserID,
		Username:                req.Username,
		Email:                   req.Email,
		Phone:                   &req.Phone,
		BirthDate:               birthDate,
		ProfileImage:            models.DefaultProfileImage,
		Friends:                 models.IDList{},
		PendingSentRequests:     models.IDList{},
		PendingReceivedRequests: models.IDList{},
	}
	if img := strings.TrimSpace(req.ProfileImage); img != "" {
		u.ProfileImage = img
	}

	if err := s.store.Repo().InsertUser(ctx, u); err != nil {
		return nil, storeError(err, "User not found")
	}
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (u *models.User, err error) {
	defer func() { s.track(ctx, "get_user", err) }()

	u, err = s.store.Repo().UserByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "User not found")
	}
	return u, nil
}

// SearchUsers matches term against usernames and emails, ignoring case.
func (s *Service) SearchUsers(ctx context.Context, term string) (users []*models.User, err error) {
	defer func() { s.track(ctx, "search_users", err) }()

	term = strings.TrimSpace(term)
	if term == "" {
		return nil, validationError("Missing search parameter")
	}
	return s.store.Repo().FindUsers(ctx, term)
}

// UpdateUser changes the username, phone or profile image of the acting user.
// An empty phone clears it.
func (s *Service) UpdateUser(ctx context.Context, actor *models.User, id string, req models.UpdateUserRequest) (u *models.User, err error) {
	defer func() { s.track(ctx, "update_user", err) }()

	if actor.ID != id {
		if _, err := s.store.Repo().UserByID(ctx, id); err != nil {
			return nil, storeError(err, "User not found")
		}
		return nil, forbidden("You can only update your own profile")
	}

	if req.Username != nil && strings.TrimSpace(*req.Username) == "" {
		return nil, validationError("Username cannot be empty")
	}

	var phone *string
	if req.Phone != nil {
		if p := strings.TrimSpace(*req.Phone); p != "" {
			if !validation.IsPhone(p) {
				return nil, validationError("Phone number must be exactly 10 digits")
			}
			phone = &p
		}
	}

	err = s.store.InTx(ctx, func(r *database.Repo) error {
		current, err := r.UserByID(ctx, id)
		if err != nil {
			return storeError(err, "User not found")
		}
		if phone != nil {
			taken, err := r.PhoneTakenByOther(ctx, *phone, id)
			if err != nil {
				return err
			}
			if taken {
				return conflict("This phone number is already in use by another user")
			}
		}

		if req.Username != nil {
			current.Username = strings.TrimSpace(*req.Username)
		}
		if req.Phone != nil {
			current.Phone = phone
		}
		if req.ProfileImage != nil {
			current.ProfileImage = *req.ProfileImage
		}
		if err := r.SaveUser(ctx, current); err != nil {
			return storeError(err, "User not found")
		}
		u = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetProfile returns a user and their posts, newest first. Only the user and
// their friends may look.
func (s *Service) GetProfile(ctx context.Context, viewer *models.User, id string) (resp *models.ProfileResponse, err error) {
	defer func() { s.track(ctx, "get_profile", err) }()

	repo := s.store.Repo()
	profile, err := repo.UserByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "User not found")
	}
	if profile.ID != viewer.ID && !profile.Friends.Contains(viewer.ID) {
		return nil, forbidden("Access denied: Not a friend")
	}

	posts, err := repo.PostsByAuthor(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	views, err := s.postViews(ctx, repo, posts, false)
	if err != nil {
		return nil, err
	}
	return &models.ProfileResponse{User: profile.Public(), Posts: views}, nil
}

// ListFriends returns summaries of the acting user's friends.
func (s *Service) ListFriends(ctx context.Context, actor *models.User) (friends []models.UserSummary, err error) {
	defer func() { s.track(ctx, "list_friends", err) }()
	return s.store.Repo().UserSummaries(ctx, actor.Friends)
}

// ListPendingRequests returns summaries of users waiting for the acting
// user's answer.
func (s *Service) ListPendingRequests(ctx context.Context, actor *models.User) (pending []models.UserSummary, err error) {
	defer func() { s.track(ctx, "list_pending_requests", err) }()
	return s.store.Repo().UserSummaries(ctx, actor.PendingReceivedRequests)
}
