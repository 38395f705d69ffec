package entity

type Group struct {
	Base
	Name          string
	Description   string
	CreatedBy     string
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`
}
