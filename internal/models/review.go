package models

// Review is the client's rating of a completed job. Exactly one per job.
type Review struct {
	BaseModel
	JobID     string `gorm:"not null;uniqueIndex"`
	ClientID  string `gorm:"not null;index"`
	ArtisanID string `gorm:"not null;index"`
	Rating    int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string

	// Relations
	Job     *Job  `gorm:"foreignKey:JobID"`
	Client  *User `gorm:"foreignKey:ClientID"`
	Artisan *User `gorm:"foreignKey:ArtisanID"`
}
