package model

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
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

// UpdateProfileRequest carries only the allow-listed profile fields; an
// absent field leaves the current value untouched.
type UpdateProfileRequest struct {
	Name      *string   `json:"name"`
	AvatarURL *string   `json:"avatar_url"`
	Bio       *string   `json:"bio"`
	Goals     *string   `json:"goals"`
	Interests *[]string `json:"interests"`
}

type UpdateProfileResponse struct {
	User User `json:"user"`
}
