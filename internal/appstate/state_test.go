package appstate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func signedInState() AppState {
	return AppState{}.SetUser(&User{ID: "user1", Email: "user1@example.com", Name: "Alice"})
}

func Test_SetUser_NormalizesDefaults(t *testing.T) {
	state := AppState{}.SetUser(&User{ID: "user1", Level: 0, XP: -10})

	require.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	require.Equal(t, 1, state.User.Level)
	require.Equal(t, 0, state.User.XP)
	require.NotNil(t, state.User.Habits)
	require.Empty(t, state.User.Habits)
}

func Test_SetUser_NilSignsOut(t *testing.T) {
	state := signedInState().SetUser(nil)

	require.False(t, state.IsAuthenticated)
	require.Nil(t, state.User)
}

func Test_UpdateProfile_WithoutUserIsNoop(t *testing.T) {
	name := "ghost"
	state := AppState{}.UpdateProfile(ProfilePatch{Name: &name})

	require.Nil(t, state.User)
}

func Test_UpdateProfile_MergesOnlyGivenFields(t *testing.T) {
	bio := "I run."
	state := signedInState().UpdateProfile(ProfilePatch{Bio: &bio})

	require.Equal(t, "Alice", state.User.Name)
	require.Equal(t, "I run.", state.User.Bio)
}

func Test_AddHabit_WithoutUserIsNoop(t *testing.T) {
	state := AppState{}.AddHabit("h1", HabitSpec{Name: "Read"})

	_, ok := state.Habit("h1")
	require.False(t, ok)
}

func Test_AddHabit_DefaultsToBooleanWithZeroProgress(t *testing.T) {
	state := signedInState().AddHabit("h1", HabitSpec{
		Name:     "Read 20 minutes",
		Category: HabitCategoryAcademic,
	})

	habit, ok := state.Habit("h1")
	require.True(t, ok)
	require.Equal(t, TargetTypeBoolean, habit.TargetType)
	require.False(t, habit.Completed)
	require.Equal(t, 0, habit.Streak)
	require.Nil(t, habit.LastCompleted)
}

func Test_ToggleHabit_OnAndOff(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	state := signedInState().AddHabit("h1", HabitSpec{Name: "Meditate"})

	state = state.ToggleHabit("h1", now)
	habit, _ := state.Habit("h1")
	require.True(t, habit.Completed)
	require.Equal(t, 1, habit.Streak)
	require.NotNil(t, habit.LastCompleted)
	require.Equal(t, now, *habit.LastCompleted)

	// Untoggling undoes the streak bump but keeps the completion record.
	// The decrement carries no floor, see the unclamped test below.
	state = state.ToggleHabit("h1", now.Add(time.Hour))
	habit, _ = state.Habit("h1")
	require.False(t, habit.Completed)
	require.Equal(t, 0, habit.Streak)
	require.NotNil(t, habit.LastCompleted)
	require.Equal(t, now, *habit.LastCompleted)
}

func Test_ToggleHabit_DecrementIsUnclamped(t *testing.T) {
	completed := true
	state := signedInState().AddHabit("h1", HabitSpec{Name: "Meditate"})
	state = state.UpdateHabit("h1", HabitPatch{Completed: &completed})

	// Untoggling decrements without clamping at zero. The toggle state
	// machine only reaches a decrement after an increment, so a negative
	// streak needs completed forced true while the streak is zero, as
	// done above. The behavior is kept rather than papered over.
	state = state.ToggleHabit("h1", time.Now())
	habit, _ := state.Habit("h1")
	require.False(t, habit.Completed)
	require.Equal(t, -1, habit.Streak)
}

func Test_ToggleHabit_UnknownIDIsNoop(t *testing.T) {
	state := signedInState().AddHabit("h1", HabitSpec{Name: "Meditate"})
	next := state.ToggleHabit("nope", time.Now())

	require.Equal(t, state.User.Habits, next.User.Habits)
}

func Test_UpdateHabitProgress_CompletesExactlyOnce(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	state := signedInState().AddHabit("h1", HabitSpec{
		Name:        "Run",
		TargetType:  TargetTypeNumerical,
		TargetValue: 5,
		TargetUnit:  "km",
	})

	state = state.UpdateHabitProgress("h1", 2, now)
	habit, _ := state.Habit("h1")
	require.False(t, habit.Completed)
	require.Equal(t, 0, habit.Streak)

	state = state.UpdateHabitProgress("h1", 3, now)
	habit, _ = state.Habit("h1")
	require.True(t, habit.Completed)
	require.Equal(t, 1, habit.Streak)
	require.Equal(t, float64(5), habit.CurrentValue)

	// Progress past the target must not bump the streak again.
	state = state.UpdateHabitProgress("h1", 2, now)
	habit, _ = state.Habit("h1")
	require.Equal(t, 1, habit.Streak)
	require.Equal(t, float64(7), habit.CurrentValue)
}

func Test_UpdateHabitProgress_CompletionIsOneWay(t *testing.T) {
	now := time.Now()
	state := signedInState().AddHabit("h1", HabitSpec{
		Name:        "Run",
		TargetType:  TargetTypeNumerical,
		TargetValue: 5,
	})

	state = state.UpdateHabitProgress("h1", 6, now)
	state = state.UpdateHabitProgress("h1", -4, now)

	habit, _ := state.Habit("h1")
	require.True(t, habit.Completed)
	require.Equal(t, 1, habit.Streak)
	require.Equal(t, float64(2), habit.CurrentValue)
}

func Test_UpdateHabitProgress_IgnoresBooleanHabit(t *testing.T) {
	state := signedInState().AddHabit("h1", HabitSpec{Name: "Meditate"})
	state = state.UpdateHabitProgress("h1", 3, time.Now())

	habit, _ := state.Habit("h1")
	require.False(t, habit.Completed)
	require.Equal(t, float64(0), habit.CurrentValue)
}

func Test_RemoveHabit(t *testing.T) {
	state := signedInState().
		AddHabit("h1", HabitSpec{Name: "Meditate"}).
		AddHabit("h2", HabitSpec{Name: "Read"})

	state = state.RemoveHabit("h1")

	_, ok := state.Habit("h1")
	require.False(t, ok)
	_, ok = state.Habit("h2")
	require.True(t, ok)
}

func Test_ResetDailyHabits_KeepsStreakAfterYesterday(t *testing.T) {
	yesterday := time.Date(2024, 5, 9, 22, 0, 0, 0, time.UTC)
	today := time.Date(2024, 5, 10, 7, 0, 0, 0, time.UTC)

	state := signedInState().AddHabit("h1", HabitSpec{Name: "Meditate"})
	state = state.ToggleHabit("h1", yesterday)

	state = state.ResetDailyHabits(today)
	habit, _ := state.Habit("h1")
	require.False(t, habit.Completed)
	require.Equal(t, 1, habit.Streak)
}

func Test_ResetDailyHabits_ZeroesStreakAfterGap(t *testing.T) {
	lastWeek := time.Date(2024, 5, 3, 22, 0, 0, 0, time.UTC)
	today := time.Date(2024, 5, 10, 7, 0, 0, 0, time.UTC)

	state := signedInState().AddHabit("h1", HabitSpec{Name: "Meditate"})
	state = state.ToggleHabit("h1", lastWeek)

	state = state.ResetDailyHabits(today)
	habit, _ := state.Habit("h1")
	require.False(t, habit.Completed)
	require.Equal(t, 0, habit.Streak)
}

func Test_ResetDailyHabits_Idempotent(t *testing.T) {
	yesterday := time.Date(2024, 5, 9, 22, 0, 0, 0, time.UTC)
	today := time.Date(2024, 5, 10, 7, 0, 0, 0, time.UTC)

	state := signedInState().AddHabit("h1", HabitSpec{Name: "Meditate"})
	state = state.ToggleHabit("h1", yesterday)

	once := state.ResetDailyHabits(today)
	twice := once.ResetDailyHabits(today)
	require.Equal(t, once.User.Habits, twice.User.Habits)
}

func Test_AddPost_KeepsFeedMostRecentFirst(t *testing.T) {
	t1 := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	state := signedInState().
		AddPost(Post{ID: "p1", Timestamp: t1}).
		AddPost(Post{ID: "p2", Timestamp: t2})

	require.Equal(t, "p2", state.Posts[0].ID)
	require.Equal(t, "p1", state.Posts[1].ID)
}

func Test_LikePost_TogglesMembership(t *testing.T) {
	state := signedInState().AddPost(Post{ID: "p1", Likes: []string{"user2"}})

	state = state.LikePost("p1")
	require.ElementsMatch(t, []string{"user2", "user1"}, state.Posts[0].Likes)

	state = state.LikePost("p1")
	require.ElementsMatch(t, []string{"user2"}, state.Posts[0].Likes)
}

func Test_LikePost_WithoutUserIsNoop(t *testing.T) {
	state := AppState{}.SetPosts([]Post{{ID: "p1"}})
	state = state.LikePost("p1")

	require.Empty(t, state.Posts[0].Likes)
}

func Test_AddComment_KeepsOldestFirst(t *testing.T) {
	t1 := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	state := signedInState().AddPost(Post{ID: "p1", Timestamp: t1})
	state = state.AddComment("p1", Comment{ID: "c2", Timestamp: t2})
	state = state.AddComment("p1", Comment{ID: "c1", Timestamp: t1})

	require.Equal(t, "c1", state.Posts[0].Comments[0].ID)
	require.Equal(t, "c2", state.Posts[0].Comments[1].ID)
}

func Test_LikeComment_Toggles(t *testing.T) {
	state := signedInState().AddPost(Post{ID: "p1"})
	state = state.AddComment("p1", Comment{ID: "c1"})

	state = state.LikeComment("p1", "c1")
	require.Equal(t, []string{"user1"}, state.Posts[0].Comments[0].Likes)

	state = state.LikeComment("p1", "c1")
	require.Empty(t, state.Posts[0].Comments[0].Likes)
}

func Test_CurrentTaskFor_DropsStaleDay(t *testing.T) {
	today := time.Date(2024, 5, 10, 7, 0, 0, 0, time.UTC)
	state := AppState{}.SetCurrentDailyTask(&DailyTask{ID: "t1", Day: "2024-05-09"})

	require.Nil(t, state.CurrentTaskFor(today))

	state = state.SetCurrentDailyTask(&DailyTask{ID: "t2", Day: "2024-05-10"})
	task := state.CurrentTaskFor(today)
	require.NotNil(t, task)
	require.Equal(t, "t2", task.ID)
}

func Test_Memberships_AddAndRemove(t *testing.T) {
	state := AppState{}.
		AddUserMembership(GroupMembership{GroupID: "g1", UserID: "user1", Role: "admin"}).
		AddUserMembership(GroupMembership{GroupID: "g2", UserID: "user1", Role: "member"})

	state = state.RemoveUserMembership("g1")
	require.Len(t, state.UserMemberships, 1)
	require.Equal(t, "g2", state.UserMemberships[0].GroupID)
}

func Test_Transforms_DoNotMutateOriginal(t *testing.T) {
	state := signedInState().AddHabit("h1", HabitSpec{Name: "Meditate"})

	next := state.ToggleHabit("h1", time.Now())

	before, _ := state.Habit("h1")
	after, _ := next.Habit("h1")
	require.False(t, before.Completed)
	require.True(t, after.Completed)
}
