package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/riple-app/backend/internal/appstate"
	"github.com/riple-app/backend/internal/entity"
	"github.com/riple-app/backend/internal/model"
	"github.com/riple-app/backend/internal/repository"
	"github.com/riple-app/backend/pkg/errorx"
	"github.com/riple-app/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Logout(context.Context, *model.LogoutRequest) (*model.LogoutResponse, error)
}

type authDomain struct {
	userRepo     repository.UserRepository
	stateManager *appstate.Manager
}

func NewAuthDomain(userRepo repository.UserRepository, stateManager *appstate.Manager) AuthDomain {
	return &authDomain{userRepo: userRepo, stateManager: stateManager}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errorx.New(errorx.BadRequest, "Invalid email address")
	}

	if len(req.Password) < 8 {
		return nil, errorx.New(errorx.BadRequest, "Password must have at least 8 characters")
	}

	if _, err := d.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Level:        1,
		XP:           0,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	token, err := d.signIn(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.RegisterResponse{
		User:        model.ConvertUser(user),
		AccessToken: token,
	}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	user, err := d.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	token, err := d.signIn(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		User:        model.ConvertUser(user),
		AccessToken: token,
	}, nil
}

func (d *authDomain) Logout(
	ctx context.Context, req *model.LogoutRequest,
) (*model.LogoutResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	store, err := d.stateManager.Get(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get app state: %v", err)
		return nil, errorx.Unknown
	}

	store.Apply(ctx, func(s appstate.AppState) appstate.AppState {
		return s.SetUser(nil)
	})

	return &model.LogoutResponse{}, nil
}

// signIn issues an access token and seeds the session state with the user,
// keeping any habits already rehydrated for the same user.
func (d *authDomain) signIn(ctx context.Context, user *entity.User) (string, error) {
	engine := xcontext.TokenEngine(ctx)
	if engine == nil {
		xcontext.Logger(ctx).Errorf("No token engine in context")
		return "", errorx.Unknown
	}

	token, err := engine.Generate(user.ID, model.AccessToken{ID: user.ID, Email: user.Email})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return "", errorx.Unknown
	}

	store, err := d.stateManager.Get(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get app state: %v", err)
		return "", errorx.Unknown
	}

	store.Apply(ctx, func(s appstate.AppState) appstate.AppState {
		stateUser := convertEntityUser(user)
		if s.User != nil && s.User.ID == user.ID {
			stateUser.Habits = s.User.Habits
		}
		return s.SetUser(&stateUser)
	})

	return token, nil
}

func convertEntityUser(user *entity.User) appstate.User {
	return appstate.User{
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
