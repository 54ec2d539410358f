package models

import "time"

type User struct {
	BaseModel
	FullName     string     `gorm:"not null"`
	Email        string     `gorm:"uniqueIndex;not null"`
	PhoneNumber  string     `gorm:"index"`
	PasswordHash string     `gorm:"not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null"`
	Status       UserStatus `gorm:"type:varchar(20);default:'pending'"`
	Location     string

	// Relations
	ArtisanProfile *ArtisanProfile `gorm:"foreignKey:UserID"`
	RefreshTokens  []RefreshToken  `gorm:"foreignKey:UserID"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
