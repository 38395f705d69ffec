package model

import "time"

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Likes     []string  `json:"likes"`
}

type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
}

type CreatePostRequest struct {
	Content string `json:"content"`
}

type CreatePostResponse struct {
	Post Post `json:"post"`
}

type GetPostsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetPostsResponse struct {
	Posts []Post `json:"posts"`
}

type AddCommentRequest struct {
	PostID  string `json:"post_id"`
	Content string `json:"content"`
}

type AddCommentResponse struct {
	Comment Comment `json:"comment"`
}

type LikePostRequest struct {
	PostID string `json:"post_id"`
}

type LikePostResponse struct {
	Likes []string `json:"likes"`
}

type LikeCommentRequest struct {
	PostID    string `json:"post_id"`
	CommentID string `json:"comment_id"`
}

type LikeCommentResponse struct {
	Likes []string `json:"likes"`
}
