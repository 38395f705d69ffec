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
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	UpdateProfile(context.Context, *model.UpdateProfileRequest) (*model.UpdateProfileResponse, error)
}

type userDomain struct {
	userRepo     repository.UserRepository
	stateManager *appstate.Manager
}

func NewUserDomain(userRepo repository.UserRepository, stateManager *appstate.Manager) UserDomain {
	return &userDomain{userRepo: userRepo, stateManager: stateManager}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	user, err := d.userRepo.GetByID(ctx, requestUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) UpdateProfile(
	ctx context.Context, req *model.UpdateProfileRequest,
) (*model.UpdateProfileResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	updates := entity.User{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
		}
		updates.Name = *req.Name
	}
	if req.AvatarURL != nil {
		updates.AvatarURL = *req.AvatarURL
	}
	if req.Bio != nil {
		updates.Bio = *req.Bio
	}
	if req.Goals != nil {
		updates.Goals = *req.Goals
	}
	if req.Interests != nil {
		updates.Interests = entity.Array[string](*req.Interests)
	}

	if err := d.userRepo.UpdateByID(ctx, requestUserID, updates); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user after update: %v", err)
		return nil, errorx.Unknown
	}

	store, err := d.stateManager.Get(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get app state: %v", err)
		return nil, errorx.Unknown
	}

	store.Apply(ctx, func(s appstate.AppState) appstate.AppState {
		return s.UpdateProfile(appstate.ProfilePatch{
			Name:      req.Name,
			AvatarURL: req.AvatarURL,
			Bio:       req.Bio,
			Goals:     req.Goals,
			Interests: req.Interests,
		})
	})

	return &model.UpdateProfileResponse{User: model.ConvertUser(user)}, nil
}
