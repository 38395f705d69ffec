package migration

import (
	"context"

	"github.com/riple-app/backend/internal/entity"
	"github.com/riple-app/backend/pkg/xcontext"
)

// AutoMigrate creates or updates every table the application owns.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Group{},
		&entity.GroupMember{},
		&entity.Post{},
		&entity.Comment{},
	)
}
