package appstate

import (
	"time"

	"github.com/riple-app/backend/pkg/dateutil"
	"golang.org/x/exp/slices"
)

// SetUser replaces the current user wholesale. A nil user signs out. A
// non-nil user is normalized so Habits, Level and XP are never left at
// their zero values.
func (s AppState) SetUser(user *User) AppState {
	if user == nil {
		s.User = nil
		s.IsAuthenticated = false
		return s
	}

	u := *user
	if u.Habits == nil {
		u.Habits = []Habit{}
	}
	if u.Level < 1 {
		u.Level = 1
	}
	if u.XP < 0 {
		u.XP = 0
	}

	s.User = &u
	s.IsAuthenticated = true
	return s
}

// UpdateProfile shallow-merges the patch into the current user. It is a
// guarded no-op when nobody is signed in.
func (s AppState) UpdateProfile(patch ProfilePatch) AppState {
	if s.User == nil {
		return s
	}

	u := *s.User
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.AvatarURL != nil {
		u.AvatarURL = *patch.AvatarURL
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.Goals != nil {
		u.Goals = *patch.Goals
	}
	if patch.Interests != nil {
		u.Interests = slices.Clone(*patch.Interests)
	}
	if patch.Level != nil {
		u.Level = *patch.Level
	}
	if patch.XP != nil {
		u.XP = *patch.XP
	}

	s.User = &u
	return s
}

// AddHabit appends a new habit built from spec with the given id, zeroed
// progress, and boolean target by default. Guarded no-op without a user.
func (s AppState) AddHabit(id string, spec HabitSpec) AppState {
	if s.User == nil {
		return s
	}

	targetType := spec.TargetType
	if targetType == "" {
		targetType = TargetTypeBoolean
	}

	habit := Habit{
		ID:            id,
		Name:          spec.Name,
		Description:   spec.Description,
		Category:      spec.Category,
		TargetType:    targetType,
		Completed:     false,
		Streak:        0,
		LastCompleted: nil,
		TargetValue:   spec.TargetValue,
		CurrentValue:  0,
		TargetUnit:    spec.TargetUnit,
		ReminderTime:  spec.ReminderTime,
	}

	u := *s.User
	u.Habits = append(slices.Clone(u.Habits), habit)
	s.User = &u
	return s
}

// UpdateHabit merges the patch into the named habit. No-op if the habit is
// not found or nobody is signed in.
func (s AppState) UpdateHabit(id string, patch HabitPatch) AppState {
	return s.mapHabit(id, func(h Habit) Habit {
		if patch.Name != nil {
			h.Name = *patch.Name
		}
		if patch.Description != nil {
			h.Description = *patch.Description
		}
		if patch.Category != nil {
			h.Category = *patch.Category
		}
		if patch.TargetType != nil {
			h.TargetType = *patch.TargetType
		}
		if patch.Completed != nil {
			h.Completed = *patch.Completed
		}
		if patch.Streak != nil {
			h.Streak = *patch.Streak
		}
		if patch.TargetValue != nil {
			h.TargetValue = *patch.TargetValue
		}
		if patch.CurrentValue != nil {
			h.CurrentValue = *patch.CurrentValue
		}
		if patch.TargetUnit != nil {
			h.TargetUnit = *patch.TargetUnit
		}
		if patch.ReminderTime != nil {
			h.ReminderTime = *patch.ReminderTime
		}
		return h
	})
}

// ToggleHabit flips the completed flag. Entering completed sets
// lastCompleted and bumps the streak; leaving it decrements the streak but
// keeps lastCompleted as the record of the last real completion. The
// decrement is deliberately unclamped, matching the toggle state machine
// where a decrement is only reachable after an increment.
func (s AppState) ToggleHabit(id string, now time.Time) AppState {
	return s.mapHabit(id, func(h Habit) Habit {
		if !h.Completed {
			h.Completed = true
			h.Streak++
			t := now
			h.LastCompleted = &t
		} else {
			h.Completed = false
			h.Streak--
		}
		return h
	})
}

// UpdateHabitProgress adds delta to a numerical habit's current value. The
// first time the total reaches the target, the habit completes and the
// streak bumps, exactly once. Dropping back below the target afterwards
// does not revert completion: within a day, completion is one-way.
func (s AppState) UpdateHabitProgress(id string, delta float64, now time.Time) AppState {
	return s.mapHabit(id, func(h Habit) Habit {
		if h.TargetType != TargetTypeNumerical {
			return h
		}

		h.CurrentValue += delta
		crossed := h.TargetValue > 0 && h.CurrentValue >= h.TargetValue
		if crossed && !h.Completed {
			h.Completed = true
			h.Streak++
			t := now
			h.LastCompleted = &t
		}
		return h
	})
}

// RemoveHabit deletes by id; no-op if absent.
func (s AppState) RemoveHabit(id string) AppState {
	if s.User == nil {
		return s
	}

	u := *s.User
	habits := make([]Habit, 0, len(u.Habits))
	for _, h := range u.Habits {
		if h.ID != id {
			habits = append(habits, h)
		}
	}

	u.Habits = habits
	s.User = &u
	return s
}

// ResetDailyHabits clears every habit's completed flag and zeroes the
// streak of any habit whose last completion is older than the immediately
// preceding calendar day. Running it twice on the same day is a no-op the
// second time.
func (s AppState) ResetDailyHabits(now time.Time) AppState {
	if s.User == nil {
		return s
	}

	u := *s.User
	habits := slices.Clone(u.Habits)
	for i, h := range habits {
		h.Completed = false
		if h.LastCompleted != nil && !dateutil.WithinOneDay(*h.LastCompleted, now) {
			h.Streak = 0
		}
		habits[i] = h
	}

	u.Habits = habits
	s.User = &u
	return s
}

// SetPosts wholesale-replaces the feed, most recent first.
func (s AppState) SetPosts(posts []Post) AppState {
	sorted := slices.Clone(posts)
	sortPostsDesc(sorted)
	s.Posts = sorted
	return s
}

// AddPost inserts a post and keeps the feed sorted most recent first.
func (s AppState) AddPost(post Post) AppState {
	posts := append(slices.Clone(s.Posts), post)
	sortPostsDesc(posts)
	s.Posts = posts
	return s
}

// LikePost toggles the current user's id in the post's like-set.
func (s AppState) LikePost(postID string) AppState {
	if s.User == nil {
		return s
	}

	return s.mapPost(postID, func(p Post) Post {
		p.Likes = toggleLike(p.Likes, s.User.ID)
		return p
	})
}

// AddComment appends a comment and keeps the post's comments oldest first.
func (s AppState) AddComment(postID string, comment Comment) AppState {
	return s.mapPost(postID, func(p Post) Post {
		comments := append(slices.Clone(p.Comments), comment)
		slices.SortStableFunc(comments, func(a, b Comment) bool {
			return a.Timestamp.Before(b.Timestamp)
		})
		p.Comments = comments
		return p
	})
}

// LikeComment toggles the current user's id in the comment's like-set.
func (s AppState) LikeComment(postID, commentID string) AppState {
	if s.User == nil {
		return s
	}

	return s.mapPost(postID, func(p Post) Post {
		comments := slices.Clone(p.Comments)
		for i, c := range comments {
			if c.ID == commentID {
				c.Likes = toggleLike(c.Likes, s.User.ID)
				comments[i] = c
			}
		}
		p.Comments = comments
		return p
	})
}

func (s AppState) SetGroups(groups []Group) AppState {
	s.Groups = slices.Clone(groups)
	return s
}

func (s AppState) AddGroup(group Group) AppState {
	s.Groups = append(slices.Clone(s.Groups), group)
	return s
}

func (s AppState) SetUserMemberships(memberships []GroupMembership) AppState {
	s.UserMemberships = slices.Clone(memberships)
	return s
}

func (s AppState) AddUserMembership(m GroupMembership) AppState {
	s.UserMemberships = append(slices.Clone(s.UserMemberships), m)
	return s
}

func (s AppState) RemoveUserMembership(groupID string) AppState {
	memberships := make([]GroupMembership, 0, len(s.UserMemberships))
	for _, m := range s.UserMemberships {
		if m.GroupID != groupID {
			memberships = append(memberships, m)
		}
	}

	s.UserMemberships = memberships
	return s
}

func (s AppState) SetCurrentDailyTask(task *DailyTask) AppState {
	s.CurrentDailyTask = task
	return s
}

// CurrentTaskFor returns the cached daily task if it was fetched on the
// given day, or nil otherwise.
func (s AppState) CurrentTaskFor(now time.Time) *DailyTask {
	if s.CurrentDailyTask == nil {
		return nil
	}

	if s.CurrentDailyTask.Day != now.Format("2006-01-02") {
		return nil
	}

	return s.CurrentDailyTask
}

// Habit returns a copy of the habit with the given id.
func (s AppState) Habit(id string) (Habit, bool) {
	if s.User == nil {
		return Habit{}, false
	}

	for _, h := range s.User.Habits {
		if h.ID == id {
			return h, true
		}
	}

	return Habit{}, false
}

func (s AppState) mapHabit(id string, f func(Habit) Habit) AppState {
	if s.User == nil {
		return s
	}

	u := *s.User
	habits := slices.Clone(u.Habits)
	for i, h := range habits {
		if h.ID == id {
			habits[i] = f(h)
		}
	}

	u.Habits = habits
	s.User = &u
	return s
}

func (s AppState) mapPost(id string, f func(Post) Post) AppState {
	posts := slices.Clone(s.Posts)
	for i, p := range posts {
		if p.ID == id {
			posts[i] = f(p)
		}
	}

	s.Posts = posts
	return s
}

func sortPostsDesc(posts []Post) {
	slices.SortStableFunc(posts, func(a, b Post) bool {
		return a.Timestamp.After(b.Timestamp)
	})
}

func toggleLike(likes []string, userID string) []string {
	if slices.Contains(likes, userID) {
		result := make([]string, 0, len(likes)-1)
		for _, id := range likes {
			if id != userID {
				result = append(result, id)
			}
		}
		return result
	}

	return append(slices.Clone(likes), userID)
}
