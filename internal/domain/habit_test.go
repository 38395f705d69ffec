package domain

import (
	"context"
	"testing"

	"github.com/riple-app/backend/internal/appstate"
	"github.com/riple-app/backend/internal/model"
	"github.com/riple-app/backend/pkg/errorx"
	"github.com/riple-app/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func seedSessionUser(t *testing.T, ctx context.Context, manager *appstate.Manager, userID string) {
	t.Helper()
	store, err := manager.Get(ctx, userID)
	require.NoError(t, err)
	store.Apply(ctx, func(s appstate.AppState) appstate.AppState {
		return s.SetUser(&appstate.User{ID: userID})
	})
}

func Test_HabitDomain_AddAndList(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, "user1")
	manager := newStateManager()
	seedSessionUser(t, ctx, manager, "user1")
	domain := NewHabitDomain(manager)

	addResp, err := domain.Add(ctx, &model.AddHabitRequest{
		Name:     "Meditate",
		Category: "Wellness",
	})
	require.NoError(t, err)
	require.NotEmpty(t, addResp.Habit.ID)
	require.Equal(t, "boolean", addResp.Habit.TargetType)
	require.False(t, addResp.Habit.Completed)

	listResp, err := domain.GetList(ctx, &model.GetHabitsRequest{})
	require.NoError(t, err)
	require.Len(t, listResp.Habits, 1)
	require.Equal(t, "Meditate", listResp.Habits[0].Name)
}

func Test_HabitDomain_AddValidation(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, "user1")
	manager := newStateManager()
	seedSessionUser(t, ctx, manager, "user1")
	domain := NewHabitDomain(manager)

	_, err := domain.Add(ctx, &model.AddHabitRequest{Category: "Wellness"})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = domain.Add(ctx, &model.AddHabitRequest{Name: "Read", Category: "Homework"})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = domain.Add(ctx, &model.AddHabitRequest{
		Name:       "Run",
		Category:   "Wellness",
		TargetType: "numerical",
	})
	requireErrorCode(t, err, errorx.BadRequest)
}

func Test_HabitDomain_RunFiveKilometers(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, "user1")
	manager := newStateManager()
	seedSessionUser(t, ctx, manager, "user1")
	domain := NewHabitDomain(manager)

	addResp, err := domain.Add(ctx, &model.AddHabitRequest{
		Name:        "Run 5km",
		Category:    "Wellness",
		TargetType:  "numerical",
		TargetValue: 5,
		TargetUnit:  "km",
	})
	require.NoError(t, err)

	progressResp, err := domain.UpdateProgress(ctx, &model.UpdateHabitProgressRequest{
		ID:    addResp.Habit.ID,
		Delta: 3,
	})
	require.NoError(t, err)
	require.False(t, progressResp.Habit.Completed)
	require.Equal(t, float64(3), progressResp.Habit.CurrentValue)

	progressResp, err = domain.UpdateProgress(ctx, &model.UpdateHabitProgressRequest{
		ID:    addResp.Habit.ID,
		Delta: 2.5,
	})
	require.NoError(t, err)
	require.True(t, progressResp.Habit.Completed)
	require.Equal(t, 1, progressResp.Habit.Streak)
	require.NotNil(t, progressResp.Habit.LastCompleted)
}

func Test_HabitDomain_ProgressOnBooleanHabitFails(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, "user1")
	manager := newStateManager()
	seedSessionUser(t, ctx, manager, "user1")
	domain := NewHabitDomain(manager)

	addResp, err := domain.Add(ctx, &model.AddHabitRequest{Name: "Meditate", Category: "Wellness"})
	require.NoError(t, err)

	_, err = domain.UpdateProgress(ctx, &model.UpdateHabitProgressRequest{ID: addResp.Habit.ID, Delta: 1})
	requireErrorCode(t, err, errorx.BadRequest)
}

func Test_HabitDomain_ToggleUnknownHabit(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, "user1")
	manager := newStateManager()
	seedSessionUser(t, ctx, manager, "user1")
	domain := NewHabitDomain(manager)

	_, err := domain.Toggle(ctx, &model.ToggleHabitRequest{ID: "nope"})
	requireErrorCode(t, err, errorx.NotFound)
}

func Test_HabitDomain_UpdateAndRemove(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, "user1")
	manager := newStateManager()
	seedSessionUser(t, ctx, manager, "user1")
	domain := NewHabitDomain(manager)

	addResp, err := domain.Add(ctx, &model.AddHabitRequest{Name: "Read", Category: "Academic"})
	require.NoError(t, err)

	newName := "Read 20 minutes"
	newCategory := "Other"
	updateResp, err := domain.Update(ctx, &model.UpdateHabitRequest{
		ID:       addResp.Habit.ID,
		Name:     &newName,
		Category: &newCategory,
	})
	require.NoError(t, err)
	require.Equal(t, "Read 20 minutes", updateResp.Habit.Name)
	require.Equal(t, "Other", updateResp.Habit.Category)

	_, err = domain.Remove(ctx, &model.RemoveHabitRequest{ID: addResp.Habit.ID})
	require.NoError(t, err)

	listResp, err := domain.GetList(ctx, &model.GetHabitsRequest{})
	require.NoError(t, err)
	require.Empty(t, listResp.Habits)
}

func Test_HabitDomain_RequiresAuthentication(t *testing.T) {
	domain := NewHabitDomain(newStateManager())
	_, err := domain.GetList(testutil.MockContext(t), &model.GetHabitsRequest{})
	requireErrorCode(t, err, errorx.Unauthenticated)
}
