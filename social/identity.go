package social

import (
	"context"
	"errors"
	"strings"

	"hive-social-network/database"
	"hive-social-network/models"
)

// ResolveIdentity maps an external identity token to the user it belongs to.
func (s *Service) ResolveIdentity(ctx context.Context, token string) (*models.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, unauthenticated("Missing user identifier")
	}
	u, err := s.store.Repo().UserByIdentityToken(ctx, token)
	if errors.Is(err, database.ErrNotFound) {
		return nil, unauthenticated("User not found")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
