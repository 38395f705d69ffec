package domain

import (
	"context"

	"github.com/riple-app/backend/internal/appstate"
	"github.com/riple-app/backend/internal/model"
	"github.com/riple-app/backend/pkg/enum"
	"github.com/riple-app/backend/pkg/errorx"
	"github.com/riple-app/backend/pkg/xcontext"
)

type HabitDomain interface {
	Add(context.Context, *model.AddHabitRequest) (*model.AddHabitResponse, error)
	GetList(context.Context, *model.GetHabitsRequest) (*model.GetHabitsResponse, error)
	Toggle(context.Context, *model.ToggleHabitRequest) (*model.ToggleHabitResponse, error)
	UpdateProgress(context.Context, *model.UpdateHabitProgressRequest) (*model.UpdateHabitProgressResponse, error)
	Update(context.Context, *model.UpdateHabitRequest) (*model.UpdateHabitResponse, error)
	Remove(context.Context, *model.RemoveHabitRequest) (*model.RemoveHabitResponse, error)
}

type habitDomain struct {
	stateManager *appstate.Manager
}

func NewHabitDomain(stateManager *appstate.Manager) HabitDomain {
	return &habitDomain{stateManager: stateManager}
}

// sessionStore returns the authenticated user's store, or an error when
// the request carries no user or the session has no signed-in user.
func (d *habitDomain) sessionStore(ctx context.Context) (*appstate.Store, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	store, err := d.stateManager.Get(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get app state: %v", err)
		return nil, errorx.Unknown
	}

	return store, nil
}

func (d *habitDomain) Add(
	ctx context.Context, req *model.AddHabitRequest,
) (*model.AddHabitResponse, error) {
	store, err := d.sessionStore(ctx)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty habit name")
	}

	category, err := enum.ToEnum[appstate.HabitCategory](req.Category)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid category %s", req.Category)
	}

	targetType := appstate.TargetTypeBoolean
	if req.TargetType != "" {
		targetType, err = enum.ToEnum[appstate.TargetType](req.TargetType)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid target type %s", req.TargetType)
		}
	}

	if targetType == appstate.TargetTypeNumerical && req.TargetValue <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Numerical habit needs a positive target value")
	}

	id := xcontext.SnowFlake(ctx).Generate().String()
	state := store.Apply(ctx, func(s appstate.AppState) appstate.AppState {
		return s.AddHabit(id, appstate.HabitSpec{
			Name:         req.Name,
			Category:     category,
			Description:  req.Description,
			TargetType:   targetType,
			TargetValue:  req.TargetValue,
			TargetUnit:   req.TargetUnit,
			ReminderTime: req.ReminderTime,
		})
	})

	habit, ok := state.Habit(id)
	if !ok {
		return nil, errorx.New(errorx.Unauthenticated, "You need to sign in before adding habits")
	}

	return &model.AddHabitResponse{Habit: convertHabit(habit)}, nil
}

func (d *habitDomain) GetList(
	ctx context.Context, req *model.GetHabitsRequest,
) (*model.GetHabitsResponse, error) {
	store, err := d.sessionStore(ctx)
	if err != nil {
		return nil, err
	}

	habits := []model.Habit{}
	if user := store.State().User; user != nil {
		for _, h := range user.Habits {
			habits = append(habits, convertHabit(h))
		}
	}

	return &model.GetHabitsResponse{Habits: habits}, nil
}

func (d *habitDomain) Toggle(
	ctx context.Context, req *model.ToggleHabitRequest,
) (*model.ToggleHabitResponse, error) {
	store, err := d.sessionStore(ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := store.State().Habit(req.ID); !ok {
		return nil, errorx.New(errorx.NotFound, "Not found habit")
	}

	state := store.Apply(ctx, func(s appstate.AppState) appstate.AppState {
		return s.ToggleHabit(req.ID, timeNow())
	})

	habit, _ := state.Habit(req.ID)
	return &model.ToggleHabitResponse{Habit: convertHabit(habit)}, nil
}

func (d *habitDomain) UpdateProgress(
	ctx context.Context, req *model.UpdateHabitProgressRequest,
) (*model.UpdateHabitProgressResponse, error) {
	store, err := d.sessionStore(ctx)
	if err != nil {
		return nil, err
	}

	habit, ok := store.State().Habit(req.ID)
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found habit")
	}

	if habit.TargetType != appstate.TargetTypeNumerical {
		return nil, errorx.New(errorx.BadRequest, "Cannot track progress of a boolean habit")
	}

	state := store.Apply(ctx, func(s appstate.AppState) appstate.AppState {
		return s.UpdateHabitProgress(req.ID, req.Delta, timeNow())
	})

	habit, _ = state.Habit(req.ID)
	return &model.UpdateHabitProgressResponse{Habit: convertHabit(habit)}, nil
}

func (d *habitDomain) Update(
	ctx context.Context, req *model.UpdateHabitRequest,
) (*model.UpdateHabitResponse, error) {
	store, err := d.sessionStore(ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := store.State().Habit(req.ID); !ok {
		return nil, errorx.New(errorx.NotFound, "Not found habit")
	}

	patch := appstate.HabitPatch{
		Name:         req.Name,
		Description:  req.Description,
		TargetValue:  req.TargetValue,
		TargetUnit:   req.TargetUnit,
		ReminderTime: req.ReminderTime,
	}

	if req.Category != nil {
		category, err := enum.ToEnum[appstate.HabitCategory](*req.Category)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid category %s", *req.Category)
		}
		patch.Category = &category
	}

	state := store.Apply(ctx, func(s appstate.AppState) appstate.AppState {
		return s.UpdateHabit(req.ID, patch)
	})

	habit, _ := state.Habit(req.ID)
	return &model.UpdateHabitResponse{Habit: convertHabit(habit)}, nil
}

func (d *habitDomain) Remove(
	ctx context.Context, req *model.RemoveHabitRequest,
) (*model.RemoveHabitResponse, error) {
	store, err := d.sessionStore(ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := store.State().Habit(req.ID); !ok {
		return nil, errorx.New(errorx.NotFound, "Not found habit")
	}

	store.Apply(ctx, func(s appstate.AppState) appstate.AppState {
		return s.RemoveHabit(req.ID)
	})

	return &model.RemoveHabitResponse{}, nil
}

func convertHabit(habit appstate.Habit) model.Habit {
	return model.Habit{
		ID:            habit.ID,
		Name:          habit.Name,
		Description:   habit.Description,
		Category:      string(habit.Category),
		TargetType:    string(habit.TargetType),
		Completed:     habit.Completed,
		Streak:        habit.Streak,
		LastCompleted: habit.LastCompleted,
		TargetValue:   habit.TargetValue,
		CurrentValue:  habit.CurrentValue,
		TargetUnit:    habit.TargetUnit,
		ReminderTime:  habit.ReminderTime,
	}
}
