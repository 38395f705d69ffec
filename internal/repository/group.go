package repository

import (
	"context"

	"github.com/riple-app/backend/internal/entity"
	"github.com/riple-app/backend/pkg/xcontext"
)

type GroupRepository interface {
	Create(ctx context.Context, group *entity.Group) error
	GetByID(ctx context.Context, id string) (*entity.Group, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Group, error)
	DeleteByID(ctx context.Context, id string) error
}

type groupRepository struct{}

func NewGroupRepository() GroupRepository {
	return &groupRepository{}
}

func (r *groupRepository) Create(ctx context.Context, group *entity.Group) error {
	return xcontext.DB(ctx).Create(group).Error
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*entity.Group, error) {
	var result entity.Group
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *groupRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Group, error) {
	var result []entity.Group
	tx := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(offset)
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *groupRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Group{}, "id=?", id).Error
}
