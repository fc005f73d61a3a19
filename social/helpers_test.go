package social

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hive-social-network/database"
	"hive-social-network/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "social.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store)
}

var phoneSeq int

func createUser(t *testing.T, s *Service, name string) *models.User {
	t.Helper()
	phoneSeq++
	u, err := s.CreateUser(context.Background(), models.CreateUserRequest{
		UserID:   "token-" + name,
		Username: name,
		Email:    name + "@example.com",
		Phone:    fmt.Sprintf("%010d", phoneSeq),
	})
	require.NoError(t, err)
	return u
}

// reload reads the current state of a user from the store.
func reload(t *testing.T, s *Service, u *models.User) *models.User {
	t.Helper()
	fresh, err := s.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	return fresh
}

func loadGroup(t *testing.T, s *Service, id string) *models.Group {
	t.Helper()
	g, err := s.store.Repo().GroupByID(context.Background(), id)
	require.NoError(t, err)
	return g
}

func createGroup(t *testing.T, s *Service, owner *models.User, name string) *models.Group {
	t.Helper()
	g, err := s.CreateGroup(context.Background(), owner, models.CreateGroupRequest{
		Name:        name,
		Description: "about " + name,
	})
	require.NoError(t, err)
	return g
}

// join makes u a member of g through a request accepted by manager.
func join(t *testing.T, s *Service, g *models.Group, manager, u *models.User) {
	t.Helper()
	ctx := context.Background()
	_, err := s.RequestToJoin(ctx, u, g.ID)
	require.NoError(t, err)
	_, err = s.RespondJoinRequest(ctx, manager, g.ID, u.ID, true)
	require.NoError(t, err)
}
