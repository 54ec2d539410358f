package models

// ArtisanProfile extends a user with the artisan role.
// AverageRating and TotalReviews are a derived aggregate: recomputed
// from all of the artisan's reviews, never patched incrementally.
type ArtisanProfile struct {
	BaseModel
	UserID          string  `gorm:"uniqueIndex;not null"`
	Bio             string
	YearsExperience int     `gorm:"default:0"`
	AverageRating   float64 `gorm:"default:0"`
	TotalReviews    int64   `gorm:"default:0"`
	IsAvailable     bool    `gorm:"default:true"`

	// Relations
	User   *User   `gorm:"foreignKey:UserID"`
	Skills []Skill `gorm:"many2many:artisan_skills"`
}
