package models

// JobApplication is an artisan's bid on a job. One row per (job, artisan);
// rows are never deleted, only their status changes.
type JobApplication struct {
	BaseModel
	JobID     string            `gorm:"not null;index;uniqueIndex:idx_job_artisan"`
	ArtisanID string            `gorm:"not null;index;uniqueIndex:idx_job_artisan"`
	BidAmount *float64
	Message   *string
	Status    ApplicationStatus `gorm:"type:varchar(20);default:'pending';index"`

	// Relations
	Job     *Job  `gorm:"foreignKey:JobID"`
	Artisan *User `gorm:"foreignKey:ArtisanID"`
}
