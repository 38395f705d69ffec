package model

import "time"

type Habit struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Category      string     `json:"category"`
	TargetType    string     `json:"target_type"`
	Completed     bool       `json:"completed"`
	Streak        int        `json:"streak"`
	LastCompleted *time.Time `json:"last_completed"`
	TargetValue   float64    `json:"target_value,omitempty"`
	CurrentValue  float64    `json:"current_value,omitempty"`
	TargetUnit    string     `json:"target_unit,omitempty"`
	ReminderTime  string     `json:"reminder_time,omitempty"`
}

type AddHabitRequest struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	TargetType   string  `json:"target_type"`
	TargetValue  float64 `json:"target_value"`
	TargetUnit   string  `json:"target_unit"`
	ReminderTime string  `json:"reminder_time"`
}

type AddHabitResponse struct {
	Habit Habit `json:"habit"`
}

type GetHabitsRequest struct{}

type GetHabitsResponse struct {
	Habits []Habit `json:"habits"`
}

type ToggleHabitRequest struct {
	ID string `json:"id"`
}

type ToggleHabitResponse struct {
	Habit Habit `json:"habit"`
}

type UpdateHabitProgressRequest struct {
	ID    string  `json:"id"`
	Delta float64 `json:"delta"`
}

type UpdateHabitProgressResponse struct {
	Habit Habit `json:"habit"`
}

type UpdateHabitRequest struct {
	ID           string   `json:"id"`
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	TargetValue  *float64 `json:"target_value"`
	TargetUnit   *string  `json:"target_unit"`
	ReminderTime *string  `json:"reminder_time"`
}

type UpdateHabitResponse struct {
	Habit Habit `json:"habit"`
}

type RemoveHabitRequest struct {
	ID string `json:"id"`
}

type RemoveHabitResponse struct{}
