package entity

import (
	"time"

	"github.com/riple-app/backend/pkg/enum"
	"gorm.io/gorm"
)

type GroupRole string

var (
	GroupRoleAdmin  = enum.New(GroupRole("admin"))
	GroupRoleMember = enum.New(GroupRole("member"))
)

// GroupMember records one user's membership of one group. The composite
// primary key keeps the (group, user) pair unique.
type GroupMember struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	GroupID string `gorm:"primaryKey"`
	Group   Group  `gorm:"foreignKey:GroupID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Role     GroupRole `gorm:"default:member"`
	JoinedAt time.Time
}
