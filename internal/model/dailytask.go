package model

type DailyTask struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	CategoryTags []string `json:"category_tags,omitempty"`
	Source       string   `json:"source"`
	Day          string   `json:"day"`
}

type GetDailyTaskRequest struct {
	Interest string `json:"interest"`
	Goal     string `json:"goal"`
}

type GetDailyTaskResponse struct {
	Task DailyTask `json:"task"`
}
