package models

type Skill struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null"`
}
