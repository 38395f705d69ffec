package repository

import (
	"context"

	"github.com/riple-app/backend/internal/entity"
	"github.com/riple-app/backend/pkg/xcontext"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetListByPostID(ctx context.Context, postID string) ([]entity.Comment, error)
	GetListByPostIDs(ctx context.Context, postIDs []string) ([]entity.Comment, error)
	UpdateLikes(ctx context.Context, id string, likes []string) error
}

type commentRepository struct{}

func NewCommentRepository() CommentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return xcontext.DB(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var result entity.Comment
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *commentRepository) GetListByPostID(ctx context.Context, postID string) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Order("created_at ASC").
		Find(&result, "post_id=?", postID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) GetListByPostIDs(ctx context.Context, postIDs []string) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Order("created_at ASC").
		Find(&result, "post_id IN (?)", postIDs).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) UpdateLikes(ctx context.Context, id string, likes []string) error {
	return xcontext.DB(ctx).
		Model(&entity.Comment{}).
		Where("id=?", id).
		Update("likes", entity.Array[string](likes)).Error
}
