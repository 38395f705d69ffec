package model

import "time"

type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   string    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type GroupMember struct {
	GroupID  string    `json:"group_id"`
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateGroupResponse struct {
	Group      Group       `json:"group"`
	Membership GroupMember `json:"membership"`
}

type GetGroupsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type JoinGroupRequest struct {
	GroupID string `json:"group_id"`
}

type JoinGroupResponse struct {
	Membership GroupMember `json:"membership"`
}

type LeaveGroupRequest struct {
	GroupID string `json:"group_id"`
}

type LeaveGroupResponse struct{}

type GetMyMembershipsRequest struct{}

type GetMyMembershipsResponse struct {
	Memberships []GroupMember `json:"memberships"`
}
