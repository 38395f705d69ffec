package domain

import (
	"context"
	"errors"

	"github.com/riple-app/backend/internal/appstate"
	"github.com/riple-app/backend/internal/entity"
	"github.com/riple-app/backend/internal/model"
	"github.com/riple-app/backend/internal/repository"
	"github.com/riple-app/backend/pkg/errorx"
	"github.com/riple-app/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const maxPostPageSize = 50

type FeedDomain interface {
	CreatePost(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	GetPosts(context.Context, *model.GetPostsRequest) (*model.GetPostsResponse, error)
	AddComment(context.Context, *model.AddCommentRequest) (*model.AddCommentResponse, error)
	LikePost(context.Context, *model.LikePostRequest) (*model.LikePostResponse, error)
	LikeComment(context.Context, *model.LikeCommentRequest) (*model.LikeCommentResponse, error)
}

type feedDomain struct {
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	userRepo     repository.UserRepository
	stateManager *appstate.Manager
}

func NewFeedDomain(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	stateManager *appstate.Manager,
) FeedDomain {
	return &feedDomain{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		userRepo:     userRepo,
		stateManager: stateManager,
	}
}

func (d *feedDomain) CreatePost(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty post")
	}

	user, err := d.userRepo.GetByID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	post := &entity.Post{
		Base:    entity.Base{ID: xcontext.SnowFlake(ctx).Generate().String()},
		UserID:  requestUserID,
		Content: req.Content,
		Likes:   entity.Array[string]{},
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	d.applyState(ctx, requestUserID, func(s appstate.AppState) appstate.AppState {
		return s.AddPost(convertEntityPost(post, user.Name, nil))
	})

	return &model.CreatePostResponse{Post: model.ConvertPost(post, user.Name, nil)}, nil
}

func (d *feedDomain) GetPosts(
	ctx context.Context, req *model.GetPostsRequest,
) (*model.GetPostsResponse, error) {
	if req.Limit == 0 {
		req.Limit = maxPostPageSize
	}

	if req.Limit < 0 || req.Limit > maxPostPageSize {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum of limit (%d)", maxPostPageSize)
	}

	posts, err := d.postRepo.GetList(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return nil, errorx.Unknown
	}

	postIDs := []string{}
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	comments := []entity.Comment{}
	if len(postIDs) > 0 {
		comments, err = d.commentRepo.GetListByPostIDs(ctx, postIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
			return nil, errorx.Unknown
		}
	}

	names, err := d.userNames(ctx, posts, comments)
	if err != nil {
		return nil, err
	}

	commentsByPost := map[string][]entity.Comment{}
	for _, c := range comments {
		commentsByPost[c.PostID] = append(commentsByPost[c.PostID], c)
	}

	result := []model.Post{}
	statePosts := []appstate.Post{}
	for i := range posts {
		post := &posts[i]
		modelComments := []model.Comment{}
		stateComments := []appstate.Comment{}
		for j := range commentsByPost[post.ID] {
			comment := &commentsByPost[post.ID][j]
			modelComments = append(modelComments, model.ConvertComment(comment, names[comment.UserID]))
			stateComments = append(stateComments, convertEntityComment(comment, names[comment.UserID]))
		}

		result = append(result, model.ConvertPost(post, names[post.UserID], modelComments))
		statePosts = append(statePosts, convertEntityPost(post, names[post.UserID], stateComments))
	}

	if requestUserID := xcontext.RequestUserID(ctx); requestUserID != "" {
		d.applyState(ctx, requestUserID, func(s appstate.AppState) appstate.AppState {
			return s.SetPosts(statePosts)
		})
	}

	return &model.GetPostsResponse{Posts: result}, nil
}

func (d *feedDomain) AddComment(
	ctx context.Context, req *model.AddCommentRequest,
) (*model.AddCommentResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty comment")
	}

	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	comment := &entity.Comment{
		Base:    entity.Base{ID: xcontext.SnowFlake(ctx).Generate().String()},
		PostID:  req.PostID,
		UserID:  requestUserID,
		Content: req.Content,
		Likes:   entity.Array[string]{},
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	d.applyState(ctx, requestUserID, func(s appstate.AppState) appstate.AppState {
		return s.AddComment(req.PostID, convertEntityComment(comment, user.Name))
	})

	return &model.AddCommentResponse{Comment: model.ConvertComment(comment, user.Name)}, nil
}

func (d *feedDomain) LikePost(
	ctx context.Context, req *model.LikePostRequest,
) (*model.LikePostResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	likes := toggleLikeSet(post.Likes, requestUserID)
	if err := d.postRepo.UpdateLikes(ctx, post.ID, likes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update post likes: %v", err)
		return nil, errorx.Unknown
	}

	d.applyState(ctx, requestUserID, func(s appstate.AppState) appstate.AppState {
		return s.LikePost(req.PostID)
	})

	return &model.LikePostResponse{Likes: likes}, nil
}

func (d *feedDomain) LikeComment(
	ctx context.Context, req *model.LikeCommentRequest,
) (*model.LikeCommentResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	comment, err := d.commentRepo.GetByID(ctx, req.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	if comment.PostID != req.PostID {
		return nil, errorx.New(errorx.NotFound, "Not found comment in this post")
	}

	likes := toggleLikeSet(comment.Likes, requestUserID)
	if err := d.commentRepo.UpdateLikes(ctx, comment.ID, likes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update comment likes: %v", err)
		return nil, errorx.Unknown
	}

	d.applyState(ctx, requestUserID, func(s appstate.AppState) appstate.AppState {
		return s.LikeComment(req.PostID, req.CommentID)
	})

	return &model.LikeCommentResponse{Likes: likes}, nil
}

func (d *feedDomain) applyState(
	ctx context.Context, userID string, transform func(appstate.AppState) appstate.AppState,
) {
	store, err := d.stateManager.Get(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get app state: %v", err)
		return
	}

	store.Apply(ctx, transform)
}

// userNames resolves the display names of every author appearing in the
// page, one query for all of them.
func (d *feedDomain) userNames(
	ctx context.Context, posts []entity.Post, comments []entity.Comment,
) (map[string]string, error) {
	ids := []string{}
	for _, p := range posts {
		if !slices.Contains(ids, p.UserID) {
			ids = append(ids, p.UserID)
		}
	}
	for _, c := range comments {
		if !slices.Contains(ids, c.UserID) {
			ids = append(ids, c.UserID)
		}
	}

	names := map[string]string{}
	if len(ids) == 0 {
		return names, nil
	}

	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	for _, u := range users {
		names[u.ID] = u.Name
	}

	return names, nil
}

// toggleLikeSet flips the user's membership in a like-set without
// mutating the original slice.
func toggleLikeSet(likes []string, userID string) []string {
	if slices.Contains(likes, userID) {
		result := []string{}
		for _, id := range likes {
			if id != userID {
				result = append(result, id)
			}
		}
		return result
	}

	return append(slices.Clone(likes), userID)
}

func convertEntityComment(comment *entity.Comment, userName string) appstate.Comment {
	return appstate.Comment{
		ID:        comment.ID,
		UserID:    comment.UserID,
		UserName:  userName,
		Content:   comment.Content,
		Timestamp: comment.CreatedAt,
		Likes:     comment.Likes,
	}
}

func convertEntityPost(post *entity.Post, userName string, comments []appstate.Comment) appstate.Post {
	if comments == nil {
		comments = []appstate.Comment{}
	}

	return appstate.Post{
		ID:        post.ID,
		UserID:    post.UserID,
		UserName:  userName,
		Content:   post.Content,
		Timestamp: post.CreatedAt,
		Likes:     post.Likes,
		Comments:  comments,
	}
}
