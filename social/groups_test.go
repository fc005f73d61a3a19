package social

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hive-social-network/models"
)

func TestCreateGroup_CreatorIsSoleMemberAndManager(t *testing.T) {
	s := newTestService(t)
	owner := createUser(t, s, "owner")

	g := createGroup(t, s, owner, "Gophers")
	assert.Equal(t, owner.ID, g.Creator)
	assert.Equal(t, models.DefaultGroupImage, g.Image)

	stored := loadGroup(t, s, g.ID)
	assert.Equal(t, []string{owner.ID}, []string(stored.Members))
	assert.Equal(t, []string{owner.ID}, []string(stored.Managers))
	assert.Empty(t, stored.PendingJoinRequests)
}

func TestCreateGroup_Validation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	owner := createUser(t, s, "owner")

	tests := []struct {
		name string
		req  models.CreateGroupRequest
	}{
		{"missing name", models.CreateGroupRequest{Description: "d"}},
		{"blank description", models.CreateGroupRequest{Name: "n", Description: "   "}},
		{"long name", models.CreateGroupRequest{Name: strings.Repeat("n", 101), Description: "d"}},
		{"long description", models.CreateGroupRequest{Name: "n", Description: strings.Repeat("d", 501)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateGroup(ctx, owner, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateGroup_DuplicateNameConflicts(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	owner := createUser(t, s, "owner")
	createGroup(t, s, owner, "Gophers")

	_, err := s.CreateGroup(ctx, owner, models.CreateGroupRequest{Name: "Gophers", Description: "again"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "Group name already exists")

	_, err = s.CreateGroup(ctx, owner, models.CreateGroupRequest{Name: "gophers", Description: "case differs"})
	assert.NoError(t, err)
}

func TestJoinFlow(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	owner, bob := createUser(t, s, "owner"), createUser(t, s, "bob")
	g := createGroup(t, s, owner, "Gophers")

	_, err := s.RequestToJoin(ctx, bob, g.ID)
	require.NoError(t, err)

	_, err = s.RequestToJoin(ctx, bob, g.ID)
	assert.ErrorIs(t, err, ErrDuplicateRequest)

	_, err = s.RespondJoinRequest(ctx, bob, g.ID, bob.ID, true)
	assert.ErrorIs(t, err, ErrForbidden, "only managers respond")

	updated, err := s.RespondJoinRequest(ctx, owner, g.ID, bob.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsMember(bob.ID))
	assert.False(t, updated.IsPending(bob.ID))

	_, err = s.RespondJoinRequest(ctx, owner, g.ID, bob.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.RequestToJoin(ctx, bob, g.ID)
	assert.ErrorIs(t, err, ErrAlreadyMember)

	_, err = s.RequestToJoin(ctx, bob, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRespondJoinRequest_RejectDropsRequest(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	owner, bob := createUser(t, s, "owner"), createUser(t, s, "bob")
	g := createGroup(t, s, owner, "Gophers")

	_, err := s.RequestToJoin(ctx, bob, g.ID)
	require.NoError(t, err)
	updated, err := s.RespondJoinRequest(ctx, owner, g.ID, bob.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsMember(bob.ID))
	assert.False(t, updated.IsPending(bob.ID))
}

func TestCancelJoinRequest(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	owner, bob := createUser(t, s, "owner"), createUser(t, s, "bob")
	g := createGroup(t, s, owner, "Gophers")

	_, err := s.CancelJoinRequest(ctx, bob, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.RequestToJoin(ctx, bob, g.ID)
	require.NoError(t, err)
	updated, err := s.CancelJoinRequest(ctx, bob, g.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsPending(bob.ID))
}

func TestUpdateMemberRole(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	owner, bob, carol := createUser(t, s, "owner"), createUser(t, s, "bob"), createUser(t, s, "carol")
	g := createGroup(t, s, owner, "Gophers")

	t.Run("admin adds a non-member to members and managers", func(t *testing.T) {
		_, err := s.RequestToJoin(ctx, bob, g.ID)
		require.NoError(t, err)

		_, err = s.UpdateMemberRole(ctx, owner, g.ID, bob.ID, models.RoleAdmin)
		require.NoError(t, err)

		stored := loadGroup(t, s, g.ID)
		assert.True(t, stored.IsMember(bob.ID))
		assert.True(t, stored.IsManager(bob.ID))
		assert.False(t, stored.IsPending(bob.ID))
	})

	t.Run("user removes from managers only", func(t *testing.T) {
		_, err := s.UpdateMemberRole(ctx, owner, g.ID, bob.ID, models.RoleUser)
		require.NoError(t, err)

		stored := loadGroup(t, s, g.ID)
		assert.True(t, stored.IsMember(bob.ID))
		assert.False(t, stored.IsManager(bob.ID))
	})

	t.Run("user on a non-member does not add them", func(t *testing.T) {
		_, err := s.UpdateMemberRole(ctx, owner, g.ID, carol.ID, models.RoleUser)
		require.NoError(t, err)
		assert.False(t, loadGroup(t, s, g.ID).IsMember(carol.ID))
	})

	t.Run("last manager cannot be demoted", func(t *testing.T) {
		_, err := s.UpdateMemberRole(ctx, owner, g.ID, owner.ID, models.RoleUser)
		assert.ErrorIs(t, err, ErrConflict)
		assert.True(t, loadGroup(t, s, g.ID).IsManager(owner.ID))
	})

	t.Run("rejections", func(t *testing.T) {
		_, err := s.UpdateMemberRole(ctx, owner, g.ID, bob.ID, "owner")
		assert.ErrorIs(t, err, ErrValidation)

		_, err = s.UpdateMemberRole(ctx, bob, g.ID, carol.ID, models.RoleAdmin)
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = s.UpdateMemberRole(ctx, owner, g.ID, uuid.NewString(), models.RoleAdmin)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLeaveOrRemove_LastMemberDeletesGroup(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	owner := createUser(t, s, "owner")
	g := createGroup(t, s, owner, "Gophers")

	_, deleted, err := s.LeaveOrRemove(ctx, owner, g.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.GetGroup(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLeaveOrRemove_SoleManagerPassesRoleToEarliestMember(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	owner, bob, carol := createUser(t, s, "owner"), createUser(t, s, "bob"), createUser(t, s, "carol")
	g := createGroup(t, s, owner, "Gophers")
	join(t, s, g, owner, bob)
	join(t, s, g, owner, carol)

	updated, deleted, err := s.LeaveOrRemove(ctx, owner, g.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, []string{bob.ID}, []string(updated.Managers))
	assert.Equal(t, []string{bob.ID, carol.ID}, []string(updated.Members))

	stored := loadGroup(t, s, g.ID)
	assert.Equal(t, []string{bob.ID}, []string(stored.Managers))
	assert.Equal(t, owner.ID, stored.Creator, "creator is kept after leaving")
}

func TestLeaveOrRemove_Authorization(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	owner, bob, carol := createUser(t, s, "owner"), createUser(t, s, "bob"), createUser(t, s, "carol")
	g := createGroup(t, s, owner, "Gophers")
	join(t, s, g, owner, bob)
	join(t, s, g, owner, carol)

	_, _, err := s.LeaveOrRemove(ctx, bob, g.ID, carol.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	outsider := createUser(t, s, "outsider")
	_, _, err = s.LeaveOrRemove(ctx, owner, g.ID, outsider.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, deleted, err := s.LeaveOrRemove(ctx, owner, g.ID, carol.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.False(t, updated.IsMember(carol.ID))

	_, _, err = s.LeaveOrRemove(ctx, bob, uuid.NewString(), bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateGroup(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	owner, bob := createUser(t, s, "owner"), createUser(t, s, "bob")
	g := createGroup(t, s, owner, "Gophers")
	createGroup(t, s, owner, "Rustaceans")
	join(t, s, g, owner, bob)

	name, desc := "Gopher Club", "new description"
	updated, err := s.UpdateGroup(ctx, owner, g.ID, models.UpdateGroupRequest{Name: &name, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, desc, updated.Description)

	_, err = s.UpdateGroup(ctx, bob, g.ID, models.UpdateGroupRequest{Description: &desc})
	assert.ErrorIs(t, err, ErrForbidden)

	taken := "Rustaceans"
	_, err = s.UpdateGroup(ctx, owner, g.ID, models.UpdateGroupRequest{Name: &taken})
	assert.ErrorIs(t, err, ErrConflict)

	blank := "  "
	_, err = s.UpdateGroup(ctx, owner, g.ID, models.UpdateGroupRequest{Name: &blank})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteGroup(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	owner, bob := createUser(t, s, "owner"), createUser(t, s, "bob")
	g := createGroup(t, s, owner, "Gophers")
	join(t, s, g, owner, bob)

	post, err := s.CreatePost(ctx, bob, models.CreatePostRequest{Content: "hello", GroupID: g.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteGroup(ctx, bob, g.ID), ErrForbidden)
	require.NoError(t, s.DeleteGroup(ctx, owner, g.ID))
	assert.ErrorIs(t, s.DeleteGroup(ctx, owner, g.ID), ErrNotFound)

	orphan, err := s.GetPost(ctx, owner, post.ID)
	require.NoError(t, err, "group posts survive the group")
	assert.Nil(t, orphan.GroupID)
}

func TestListGroups(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	owner, bob := createUser(t, s, "owner"), createUser(t, s, "bob")
	beta := createGroup(t, s, owner, "beta")
	createGroup(t, s, owner, "alpha")
	_, err := s.RequestToJoin(ctx, bob, beta.ID)
	require.NoError(t, err)

	all, err := s.ListAllGroups(ctx, bob, models.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, all.Data, 2)
	assert.Equal(t, "alpha", all.Data[0].Name)
	assert.Equal(t, "beta", all.Data[1].Name)
	assert.True(t, all.Data[1].IsPending)
	assert.False(t, all.Data[1].IsMember)
	assert.False(t, all.HasMore)

	mine, err := s.ListMyGroups(ctx, owner, models.Page{Number: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, mine.Data, 1)
	assert.Equal(t, "alpha", mine.Data[0].Name, "newest first")
	assert.Equal(t, "owner", mine.Data[0].Creator.Username)
	assert.True(t, mine.HasMore)

	none, err := s.ListMyGroups(ctx, bob, models.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, none.Data)
	assert.Empty(t, none.Data)
}

func TestGetGroup_PopulatesRoster(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	owner, bob := createUser(t, s, "owner"), createUser(t, s, "bob")
	g := createGroup(t, s, owner, "Gophers")
	_, err := s.RequestToJoin(ctx, bob, g.ID)
	require.NoError(t, err)

	view, err := s.GetGroup(ctx, g.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Creator)
	assert.Equal(t, "owner", view.Creator.Username)
	require.Len(t, view.PendingJoinRequests, 1)
	assert.Equal(t, "bob", view.PendingJoinRequests[0].Username)
	assert.Equal(t, 1, view.MembersCount)
}
