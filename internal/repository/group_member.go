package repository

import (
	"context"

	"github.com/riple-app/backend/internal/entity"
	"github.com/riple-app/backend/pkg/xcontext"
)

type GroupMemberRepository interface {
	Create(ctx context.Context, member *entity.GroupMember) error
	Get(ctx context.Context, groupID, userID string) (*entity.GroupMember, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.GroupMember, error)
	GetListByGroupID(ctx context.Context, groupID string) ([]entity.GroupMember, error)
	Delete(ctx context.Context, groupID, userID string) error
}

type groupMemberRepository struct{}

func NewGroupMemberRepository() GroupMemberRepository {
	return &groupMemberRepository{}
}

func (r *groupMemberRepository) Create(ctx context.Context, member *entity.GroupMember) error {
	return xcontext.DB(ctx).Create(member).Error
}

func (r *groupMemberRepository) Get(ctx context.Context, groupID, userID string) (*entity.GroupMember, error) {
	var result entity.GroupMember
	err := xcontext.DB(ctx).
		Take(&result, "group_id=? AND user_id=?", groupID, userID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *groupMemberRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.GroupMember, error) {
	var result []entity.GroupMember
	err := xcontext.DB(ctx).
		Order("joined_at ASC").
		Find(&result, "user_id=?", userID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *groupMemberRepository) GetListByGroupID(ctx context.Context, groupID string) ([]entity.GroupMember, error) {
	var result []entity.GroupMember
	err := xcontext.DB(ctx).
		Order("joined_at ASC").
		Find(&result, "group_id=?", groupID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *groupMemberRepository) Delete(ctx context.Context, groupID, userID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.GroupMember{}, "group_id=? AND user_id=?", groupID, userID).Error
}
