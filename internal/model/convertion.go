package model

import (
	"github.com/riple-app/backend/internal/entity"
)

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Level:     user.Level,
		XP:        user.XP,
		AvatarURL: user.AvatarURL,
		Bio:       user.Bio,
		Goals:     user.Goals,
		Interests: user.Interests,
	}
}

func ConvertGroup(group *entity.Group) Group {
	if group == nil {
		return Group{}
	}

	return Group{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		CreatorID:   group.CreatedBy,
		CreatedAt:   group.CreatedAt,
	}
}

func ConvertGroupMember(member *entity.GroupMember) GroupMember {
	if member == nil {
		return GroupMember{}
	}

	return GroupMember{
		GroupID:  member.GroupID,
		UserID:   member.UserID,
		Role:     string(member.Role),
		JoinedAt: member.JoinedAt,
	}
}

func ConvertComment(comment *entity.Comment, userName string) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		UserName:  userName,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		Likes:     comment.Likes,
	}
}

func ConvertPost(post *entity.Post, userName string, comments []Comment) Post {
	if post == nil {
		return Post{}
	}

	if comments == nil {
		comments = []Comment{}
	}

	return Post{
		ID:        post.ID,
		UserID:    post.UserID,
		UserName:  userName,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		Likes:     post.Likes,
		Comments:  comments,
	}
}
