package entity

type Comment struct {
	Base
	PostID string
	Post   Post `gorm:"foreignKey:PostID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Content string `gorm:"type:text"`
	Likes   Array[string]
}
