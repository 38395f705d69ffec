package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/riple-app/backend/internal/entity"
	"github.com/riple-app/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

var (
	User1 = &entity.User{
		Base:         entity.Base{ID: "user1"},
		Email:        "user1@example.com",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Name:         "Alice",
		Level:        1,
		XP:           0,
		Interests:    entity.Array[string]{"reading", "running"},
	}

	User2 = &entity.User{
		Base:         entity.Base{ID: "user2"},
		Email:        "user2@example.com",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Name:         "Bob",
		Level:        2,
		XP:           150,
	}

	Group1 = &entity.Group{
		Base:        entity.Base{ID: "group1"},
		Name:        "Morning Runners",
		Description: "We run before work.",
		CreatedBy:   "user1",
	}

	GroupMember1 = &entity.GroupMember{
		GroupID:  "group1",
		UserID:   "user1",
		Role:     entity.GroupRoleAdmin,
		JoinedAt: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}

	Post1 = &entity.Post{
		Base:    entity.Base{ID: "post1"},
		UserID:  "user1",
		Content: "Finished my first 5km today!",
		Likes:   entity.Array[string]{},
	}

	Comment1 = &entity.Comment{
		Base:    entity.Base{ID: "comment1"},
		PostID:  "post1",
		UserID:  "user2",
		Content: "Congrats!",
		Likes:   entity.Array[string]{},
	}
)

// CreateFixtureDb seeds the database with the sample records above.
func CreateFixtureDb(ctx context.Context, t *testing.T) {
	db := xcontext.DB(ctx)
	require.NoError(t, db.Create(User1).Error)
	require.NoError(t, db.Create(User2).Error)
	require.NoError(t, db.Create(Group1).Error)
	require.NoError(t, db.Create(GroupMember1).Error)
	require.NoError(t, db.Create(Post1).Error)
	require.NoError(t, db.Create(Comment1).Error)
}
