package entity

type Post struct {
	Base
	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Content string `gorm:"type:text"`

	// Likes is a toggle-set of user ids, not a counter.
	Likes Array[string]
}
