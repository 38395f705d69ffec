package entity

type User struct {
	Base
	Email        string `gorm:"unique"`
	PasswordHash string
	Name         string
	Level        int `gorm:"default:1"`
	XP           int
	AvatarURL    string
	Bio          string
	Goals        string
	Interests    Array[string]
}
