package domain

import (
	"testing"

	"github.com/riple-app/backend/internal/entity"
	"github.com/riple-app/backend/internal/model"
	"github.com/riple-app/backend/internal/repository"
	"github.com/riple-app/backend/pkg/errorx"
	"github.com/riple-app/backend/pkg/testutil"
	"github.com/riple-app/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newCommunityDomain() CommunityDomain {
	return NewCommunityDomain(
		repository.NewGroupRepository(),
		repository.NewGroupMemberRepository(),
		newStateManager(),
	)
}

func Test_CommunityDomain_CreateGroupMakesCreatorAdmin(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User1.ID)
	testutil.CreateFixtureDb(ctx, t)
	domain := newCommunityDomain()

	resp, err := domain.CreateGroup(ctx, &model.CreateGroupRequest{
		Name:        "Study Buddies",
		Description: "Daily accountability.",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Group.ID)
	require.Equal(t, testutil.User1.ID, resp.Group.CreatorID)
	require.Equal(t, "admin", resp.Membership.Role)
	require.Equal(t, resp.Group.ID, resp.Membership.GroupID)

	member, err := repository.NewGroupMemberRepository().Get(ctx, resp.Group.ID, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.GroupRoleAdmin, member.Role)
}

func Test_CommunityDomain_CreateGroupUndoneWhenMembershipFails(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User1.ID)
	testutil.CreateFixtureDb(ctx, t)
	domain := newCommunityDomain()

	// Dropping the membership table makes the second saga step fail, which
	// must delete the already inserted group.
	require.NoError(t, xcontext.DB(ctx).Migrator().DropTable(&entity.GroupMember{}))

	_, err := domain.CreateGroup(ctx, &model.CreateGroupRequest{Name: "Doomed"})
	require.Error(t, err)

	var groups []entity.Group
	require.NoError(t, xcontext.DB(ctx).Find(&groups, "name=?", "Doomed").Error)
	require.Empty(t, groups)
}

func Test_CommunityDomain_CreateGroupValidation(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User1.ID)
	testutil.CreateFixtureDb(ctx, t)
	domain := newCommunityDomain()

	_, err := domain.CreateGroup(ctx, &model.CreateGroupRequest{Name: ""})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = domain.CreateGroup(testutil.MockContext(t), &model.CreateGroupRequest{Name: "x"})
	requireErrorCode(t, err, errorx.Unauthenticated)
}

func Test_CommunityDomain_JoinAndLeaveGroup(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User2.ID)
	testutil.CreateFixtureDb(ctx, t)
	domain := newCommunityDomain()

	joinResp, err := domain.JoinGroup(ctx, &model.JoinGroupRequest{GroupID: testutil.Group1.ID})
	require.NoError(t, err)
	require.Equal(t, "member", joinResp.Membership.Role)

	_, err = domain.JoinGroup(ctx, &model.JoinGroupRequest{GroupID: testutil.Group1.ID})
	requireErrorCode(t, err, errorx.AlreadyExists)

	membershipsResp, err := domain.GetMyMemberships(ctx, &model.GetMyMembershipsRequest{})
	require.NoError(t, err)
	require.Len(t, membershipsResp.Memberships, 1)

	_, err = domain.LeaveGroup(ctx, &model.LeaveGroupRequest{GroupID: testutil.Group1.ID})
	require.NoError(t, err)

	_, err = domain.LeaveGroup(ctx, &model.LeaveGroupRequest{GroupID: testutil.Group1.ID})
	requireErrorCode(t, err, errorx.NotFound)
}

func Test_CommunityDomain_JoinUnknownGroup(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User1.ID)
	testutil.CreateFixtureDb(ctx, t)
	domain := newCommunityDomain()

	_, err := domain.JoinGroup(ctx, &model.JoinGroupRequest{GroupID: "nope"})
	requireErrorCode(t, err, errorx.NotFound)
}

func Test_CommunityDomain_GetGroupsNewestFirst(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User1.ID)
	testutil.CreateFixtureDb(ctx, t)
	domain := newCommunityDomain()

	created, err := domain.CreateGroup(ctx, &model.CreateGroupRequest{Name: "Newer Group"})
	require.NoError(t, err)

	resp, err := domain.GetGroups(ctx, &model.GetGroupsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Groups, 2)
	require.Equal(t, created.Group.ID, resp.Groups[0].ID)

	_, err = domain.GetGroups(ctx, &model.GetGroupsRequest{Limit: maxGroupPageSize + 1})
	requireErrorCode(t, err, errorx.BadRequest)
}
