package domain

import (
	"context"
	"errors"

	"github.com/riple-app/backend/internal/appstate"
	"github.com/riple-app/backend/internal/common"
	"github.com/riple-app/backend/internal/entity"
	"github.com/riple-app/backend/internal/model"
	"github.com/riple-app/backend/internal/repository"
	"github.com/riple-app/backend/pkg/errorx"
	"github.com/riple-app/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const maxGroupPageSize = 50

type CommunityDomain interface {
	CreateGroup(context.Context, *model.CreateGroupRequest) (*model.CreateGroupResponse, error)
	GetGroups(context.Context, *model.GetGroupsRequest) (*model.GetGroupsResponse, error)
	JoinGroup(context.Context, *model.JoinGroupRequest) (*model.JoinGroupResponse, error)
	LeaveGroup(context.Context, *model.LeaveGroupRequest) (*model.LeaveGroupResponse, error)
	GetMyMemberships(context.Context, *model.GetMyMembershipsRequest) (*model.GetMyMembershipsResponse, error)
}

type communityDomain struct {
	groupRepo       repository.GroupRepository
	groupMemberRepo repository.GroupMemberRepository
	stateManager    *appstate.Manager
}

func NewCommunityDomain(
	groupRepo repository.GroupRepository,
	groupMemberRepo repository.GroupMemberRepository,
	stateManager *appstate.Manager,
) CommunityDomain {
	return &communityDomain{
		groupRepo:       groupRepo,
		groupMemberRepo: groupMemberRepo,
		stateManager:    stateManager,
	}
}

// CreateGroup inserts the group and its creator's admin membership as a
// saga: if the membership insert fails, the group insert is undone so no
// adminless group remains.
func (d *communityDomain) CreateGroup(
	ctx context.Context, req *model.CreateGroupRequest,
) (*model.CreateGroupResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty group name")
	}

	group := &entity.Group{
		Base:        entity.Base{ID: xcontext.SnowFlake(ctx).Generate().String()},
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   requestUserID,
	}

	member := &entity.GroupMember{
		GroupID:  group.ID,
		UserID:   requestUserID,
		Role:     entity.GroupRoleAdmin,
		JoinedAt: timeNow(),
	}

	err := common.NewSaga().
		Step(
			func(ctx context.Context) error { return d.groupRepo.Create(ctx, group) },
			func(ctx context.Context) error { return d.groupRepo.DeleteByID(ctx, group.ID) },
		).
		Step(
			func(ctx context.Context) error { return d.groupMemberRepo.Create(ctx, member) },
			nil,
		).
		Run(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create group: %v", err)
		return nil, errorx.Unknown
	}

	d.applyState(ctx, requestUserID, func(s appstate.AppState) appstate.AppState {
		return s.
			AddGroup(convertEntityGroup(group)).
			AddUserMembership(convertEntityMembership(member))
	})

	return &model.CreateGroupResponse{
		Group:      model.ConvertGroup(group),
		Membership: model.ConvertGroupMember(member),
	}, nil
}

func (d *communityDomain) GetGroups(
	ctx context.Context, req *model.GetGroupsRequest,
) (*model.GetGroupsResponse, error) {
	if req.Limit == 0 {
		req.Limit = maxGroupPageSize
	}

	if req.Limit < 0 || req.Limit > maxGroupPageSize {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum of limit (%d)", maxGroupPageSize)
	}

	groups, err := d.groupRepo.GetList(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get groups: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Group{}
	stateGroups := []appstate.Group{}
	for i := range groups {
		result = append(result, model.ConvertGroup(&groups[i]))
		stateGroups = append(stateGroups, convertEntityGroup(&groups[i]))
	}

	if requestUserID := xcontext.RequestUserID(ctx); requestUserID != "" {
		d.applyState(ctx, requestUserID, func(s appstate.AppState) appstate.AppState {
			return s.SetGroups(stateGroups)
		})
	}

	return &model.GetGroupsResponse{Groups: result}, nil
}

func (d *communityDomain) JoinGroup(
	ctx context.Context, req *model.JoinGroupRequest,
) (*model.JoinGroupResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if _, err := d.groupRepo.GetByID(ctx, req.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found group")
		}

		xcontext.Logger(ctx).Errorf("Cannot get group: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.groupMemberRepo.Get(ctx, req.GroupID, requestUserID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You already joined this group")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get group member: %v", err)
		return nil, errorx.Unknown
	}

	member := &entity.GroupMember{
		GroupID:  req.GroupID,
		UserID:   requestUserID,
		Role:     entity.GroupRoleMember,
		JoinedAt: timeNow(),
	}

	if err := d.groupMemberRepo.Create(ctx, member); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create group member: %v", err)
		return nil, errorx.Unknown
	}

	d.applyState(ctx, requestUserID, func(s appstate.AppState) appstate.AppState {
		return s.AddUserMembership(convertEntityMembership(member))
	})

	return &model.JoinGroupResponse{Membership: model.ConvertGroupMember(member)}, nil
}

func (d *communityDomain) LeaveGroup(
	ctx context.Context, req *model.LeaveGroupRequest,
) (*model.LeaveGroupResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if _, err := d.groupMemberRepo.Get(ctx, req.GroupID, requestUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "You are not a member of this group")
		}

		xcontext.Logger(ctx).Errorf("Cannot get group member: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.groupMemberRepo.Delete(ctx, req.GroupID, requestUserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete group member: %v", err)
		return nil, errorx.Unknown
	}

	d.applyState(ctx, requestUserID, func(s appstate.AppState) appstate.AppState {
		return s.RemoveUserMembership(req.GroupID)
	})

	return &model.LeaveGroupResponse{}, nil
}

func (d *communityDomain) GetMyMemberships(
	ctx context.Context, req *model.GetMyMembershipsRequest,
) (*model.GetMyMembershipsResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	memberships, err := d.groupMemberRepo.GetListByUserID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get memberships: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.GroupMember{}
	stateMemberships := []appstate.GroupMembership{}
	for i := range memberships {
		result = append(result, model.ConvertGroupMember(&memberships[i]))
		stateMemberships = append(stateMemberships, convertEntityMembership(&memberships[i]))
	}

	d.applyState(ctx, requestUserID, func(s appstate.AppState) appstate.AppState {
		return s.SetUserMemberships(stateMemberships)
	})

	return &model.GetMyMembershipsResponse{Memberships: result}, nil
}

// applyState mirrors a remote write into the session state. The session
// is a cache here, so a failure only logs.
func (d *communityDomain) applyState(
	ctx context.Context, userID string, transform func(appstate.AppState) appstate.AppState,
) {
	store, err := d.stateManager.Get(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get app state: %v", err)
		return
	}

	store.Apply(ctx, transform)
}

func convertEntityGroup(group *entity.Group) appstate.Group {
	return appstate.Group{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		CreatorID:   group.CreatedBy,
		CreatedAt:   group.CreatedAt,
	}
}

func convertEntityMembership(member *entity.GroupMember) appstate.GroupMembership {
	return appstate.GroupMembership{
		GroupID:  member.GroupID,
		UserID:   member.UserID,
		Role:     string(member.Role),
		JoinedAt: member.JoinedAt,
	}
}
