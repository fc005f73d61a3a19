package social

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hive-social-network/models"
)

func strPtr(s string) *string { return &s }

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	u, err := s.CreateUser(ctx, models.CreateUserRequest{
		UserID:    " ext-1 ",
		Username:  "alice",
		Email:     "alice@example.com",
		Phone:     "0123456789",
		BirthDate: "1990-05-17",
	})
	require.NoError(t, err)
	assert.Equal(t, "ext-1", u.IdentityToken)
	assert.Equal(t, models.DefaultProfileImage, u.ProfileImage)
	require.NotNil(t, u.BirthDate)
	assert.Equal(t, 1990, u.BirthDate.Year())

	_, err = s.CreateUser(ctx, models.CreateUserRequest{
		UserID: "ext-2", Username: "alice2", Email: "alice@example.com", Phone: "0123456788",
	})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.CreateUser(ctx, models.CreateUserRequest{
		UserID: "ext-1", Username: "alice3", Email: "alice3@example.com", Phone: "0123456787",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateUser_Validation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	tests := []struct {
		name string
		req  models.CreateUserRequest
	}{
		{"missing identity", models.CreateUserRequest{Username: "a", Email: "a@example.com", Phone: "0123456789"}},
		{"bad email", models.CreateUserRequest{UserID: "x", Username: "a", Email: "nope", Phone: "0123456789"}},
		{"short phone", models.CreateUserRequest{UserID: "x", Username: "a", Email: "a@example.com", Phone: "12345"}},
		{"bad birth date", models.CreateUserRequest{UserID: "x", Username: "a", Email: "a@example.com", Phone: "0123456789", BirthDate: "yesterday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateUser(ctx, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestResolveIdentity(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	a := createUser(t, s, "alice")

	u, err := s.ResolveIdentity(ctx, a.IdentityToken)
	require.NoError(t, err)
	assert.Equal(t, a.ID, u.ID)

	_, err = s.ResolveIdentity(ctx, "  ")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = s.ResolveIdentity(ctx, "unknown")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	a, b := createUser(t, s, "alice"), createUser(t, s, "bob")

	_, err := s.UpdateUser(ctx, a, b.ID, models.UpdateUserRequest{Username: strPtr("x")})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = s.UpdateUser(ctx, a, uuid.NewString(), models.UpdateUserRequest{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UpdateUser(ctx, a, a.ID, models.UpdateUserRequest{Username: strPtr(" ")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.UpdateUser(ctx, a, a.ID, models.UpdateUserRequest{Phone: strPtr("12")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.UpdateUser(ctx, a, a.ID, models.UpdateUserRequest{Phone: b.Phone})
	assert.ErrorIs(t, err, ErrConflict)

	u, err := s.UpdateUser(ctx, a, a.ID, models.UpdateUserRequest{
		Username:     strPtr("alicia"),
		ProfileImage: strPtr("https://img.example.com/a.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "alicia", u.Username)
	assert.Equal(t, "https://img.example.com/a.png", u.ProfileImage)
	assert.Equal(t, a.Phone, u.Phone, "absent fields are untouched")

	u, err = s.UpdateUser(ctx, a, a.ID, models.UpdateUserRequest{Phone: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, u.Phone)
	assert.Nil(t, reload(t, s, a).Phone)
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	a, b, c := createUser(t, s, "alice"), createUser(t, s, "bob"), createUser(t, s, "carol")

	_, err := s.SendRequest(ctx, a, b.ID)
	require.NoError(t, err)
	require.NoError(t, s.AcceptRequest(ctx, b, a.ID))
	_, err = s.CreatePost(ctx, a, models.CreatePostRequest{Content: "mine"})
	require.NoError(t, err)

	own, err := s.GetProfile(ctx, a, a.ID)
	require.NoError(t, err)
	assert.Len(t, own.Posts, 1)

	seen, err := s.GetProfile(ctx, b, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", seen.User.Username)

	_, err = s.GetProfile(ctx, c, a.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = s.GetProfile(ctx, c, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	createUser(t, s, "alice")
	createUser(t, s, "bob")

	found, err := s.SearchUsers(ctx, "ALI")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "alice", found[0].Username)

	found, err = s.SearchUsers(ctx, "example.com")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = s.SearchUsers(ctx, " ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGlobalSearch(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	a, b := createUser(t, s, "alice"), createUser(t, s, "albert")
	createUser(t, s, "zed")
	_, err := s.SendRequest(ctx, a, b.ID)
	require.NoError(t, err)
	g := createGroup(t, s, b, "all stars")

	a = reload(t, s, a)
	resp, err := s.GlobalSearch(ctx, a, "al", models.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Users, 1, "the acting user is excluded")
	assert.Equal(t, b.ID, resp.Users[0].ID)
	assert.True(t, resp.Users[0].IsPendingSent)
	assert.False(t, resp.Users[0].IsFriend)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, g.ID, resp.Groups[0].ID)
	assert.False(t, resp.Groups[0].IsMember)

	all, err := s.GlobalSearch(ctx, a, "", models.Page{Number: 1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, all.Users, 1)
	assert.True(t, all.HasMoreUsers)
	assert.False(t, all.HasMoreGroups)
}

func TestComments(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	a, b := createUser(t, s, "alice"), createUser(t, s, "bob")
	p, err := s.CreatePost(ctx, a, models.CreatePostRequest{Content: "post"})
	require.NoError(t, err)

	_, err = s.CreateComment(ctx, b, models.CreateCommentRequest{PostID: uuid.NewString(), Content: "lost"})
	assert.ErrorIs(t, err, ErrNotFound)

	first, err := s.CreateComment(ctx, b, models.CreateCommentRequest{PostID: p.ID, Content: "first"})
	require.NoError(t, err)
	assert.Equal(t, "bob", first.Author.Username)
	_, err = s.CreateComment(ctx, a, models.CreateCommentRequest{PostID: p.ID, Content: "second"})
	require.NoError(t, err)

	list, err := s.ListComments(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Content, "oldest first")

	_, err = s.UpdateComment(ctx, a, first.ID, models.UpdateCommentRequest{Content: "edit"})
	assert.ErrorIs(t, err, ErrForbidden)
	edited, err := s.UpdateComment(ctx, b, first.ID, models.UpdateCommentRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", edited.Content)

	assert.ErrorIs(t, s.DeleteComment(ctx, a, first.ID), ErrForbidden)
	require.NoError(t, s.DeleteComment(ctx, b, first.ID))
	assert.ErrorIs(t, s.DeleteComment(ctx, b, first.ID), ErrNotFound)
}

func TestTraffic(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	a := createUser(t, s, "alice")
	p, err := s.CreatePost(ctx, a, models.CreatePostRequest{Content: "one"})
	require.NoError(t, err)
	_, err = s.CreatePost(ctx, a, models.CreatePostRequest{Content: "two"})
	require.NoError(t, err)
	_, err = s.CreateComment(ctx, a, models.CreateCommentRequest{PostID: p.ID, Content: "c"})
	require.NoError(t, err)

	posts, err := s.PostTraffic(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 2, posts[0].Count)
	assert.Equal(t, p.CreatedAt.UTC().Format("2006-01-02"), posts[0].Date)

	comments, err := s.CommentTraffic(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, 1, comments[0].Count)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrConflict, KindOf(ErrDuplicateRequest))
	assert.Equal(t, ErrConflict, KindOf(duplicateRequest("Friend request already sent")))
	assert.Equal(t, ErrNotFound, KindOf(notFound("x")))
	assert.Nil(t, KindOf(errors.New("disk on fire")))
	assert.Equal(t, "internal", outcomeOf(errors.New("disk on fire")))
	assert.Equal(t, "ok", outcomeOf(nil))
}
