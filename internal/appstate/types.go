package appstate

import (
	"time"

	"github.com/riple-app/backend/pkg/enum"
)

type HabitCategory string

var (
	HabitCategoryAcademic = enum.New(HabitCategory("Academic"))
	HabitCategoryWellness = enum.New(HabitCategory("Wellness"))
	HabitCategorySocial   = enum.New(HabitCategory("Social Engagement"))
	HabitCategoryOther    = enum.New(HabitCategory("Other"))
)

type TargetType string

var (
	TargetTypeBoolean   = enum.New(TargetType("boolean"))
	TargetTypeNumerical = enum.New(TargetType("numerical"))
)

type TaskSource string

var (
	TaskSourceModel    = enum.New(TaskSource("model"))
	TaskSourceFallback = enum.New(TaskSource("fallback"))
)

type Habit struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Category    HabitCategory `json:"category"`
	TargetType  TargetType    `json:"target_type"`

	Completed     bool       `json:"completed"`
	Streak        int        `json:"streak"`
	LastCompleted *time.Time `json:"last_completed"`

	// Only meaningful when TargetType is numerical.
	TargetValue  float64 `json:"target_value,omitempty"`
	CurrentValue float64 `json:"current_value,omitempty"`
	TargetUnit   string  `json:"target_unit,omitempty"`

	ReminderTime string `json:"reminder_time,omitempty"`
}

type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Level     int      `json:"level"`
	XP        int      `json:"xp"`
	AvatarURL string   `json:"avatar_url,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Goals     string   `json:"goals,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Habits    []Habit  `json:"habits"`
}

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Likes     []string  `json:"likes"`
}

type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
}

type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   string    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type GroupMembership struct {
	GroupID  string    `json:"group_id"`
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type DailyTask struct {
	ID           string     `json:"id"`
	Text         string     `json:"text"`
	CategoryTags []string   `json:"category_tags,omitempty"`
	Source       TaskSource `json:"source"`

	// Day is the calendar day (2006-01-02) the task was fetched for. A
	// task from an earlier day is treated as absent.
	Day string `json:"day"`
}

// AppState is the whole session state, serialized as one blob. All
// transforms are pure: they return a new state and never mutate the
// receiver's slices in place.
type AppState struct {
	User             *User             `json:"user"`
	Posts            []Post            `json:"posts"`
	Groups           []Group           `json:"groups"`
	UserMemberships  []GroupMembership `json:"user_memberships"`
	CurrentDailyTask *DailyTask        `json:"current_daily_task"`
	IsAuthenticated  bool              `json:"is_authenticated"`
}

// HabitSpec is the caller-supplied part of a new habit.
type HabitSpec struct {
	Name         string
	Category     HabitCategory
	Description  string
	TargetType   TargetType
	TargetValue  float64
	TargetUnit   string
	ReminderTime string
}

// ProfilePatch is the allow-list of updatable profile fields. Unknown
// fields simply have no representation here.
type ProfilePatch struct {
	Name      *string
	AvatarURL *string
	Bio       *string
	Goals     *string
	Interests *[]string
	Level     *int
	XP        *int
}

// HabitPatch is the partial-update form of a habit.
type HabitPatch struct {
	Name         *string
	Description  *string
	Category     *HabitCategory
	TargetType   *TargetType
	Completed    *bool
	Streak       *int
	TargetValue  *float64
	CurrentValue *float64
	TargetUnit   *string
	ReminderTime *string
}
