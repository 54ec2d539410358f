package repositories

import (
	"errors"
	"juakali_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrJobNotFound = errors.New("job not found")

// JobFilter - optional criteria for job listings.
type JobFilter struct {
	Status    *models.JobStatus
	ClientID  string
	ArtisanID string // matches assigned_artisan_id
	Location  string
	SkillID   string
	Search    string // matches title or description
}

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	// FindByIDForUpdate locks the job row until the surrounding
	// transaction commits. Concurrent accepts serialize here.
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Job, error)
	FindAll(db *gorm.DB, filter JobFilter, limit, offset int) ([]models.Job, int64, error)
	Update(db *gorm.DB, job *models.Job) error
	UpdateStatus(db *gorm.DB, id string, status models.JobStatus, assignedArtisanID *string) error
	ReplaceRequiredSkills(db *gorm.DB, job *models.Job, skills []models.Skill) error
	Delete(db *gorm.DB, id string) error
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.Preload("Client").Preload("AssignedArtisan").Preload("RequiredSkills").
		First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindAll(db *gorm.DB, filter JobFilter, limit, offset int) ([]models.Job, int64, error) {
	query := db.Model(&models.Job{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ClientID != "" {
		query = query.Where("client_id = ?", filter.ClientID)
	}
	if filter.ArtisanID != "" {
		query = query.Where("assigned_artisan_id = ?", filter.ArtisanID)
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.SkillID != "" {
		query = query.Joins("JOIN job_required_skills jrs ON jrs.job_id = jobs.id").
			Where("jrs.skill_id = ?", filter.SkillID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := query.Preload("Client").Preload("RequiredSkills").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&jobs).Error

	return jobs, total, err
}

func (r *JobRepositoryImpl) Update(db *gorm.DB, job *models.Job) error {
	result := db.Model(&models.Job{}).Where("id = ?", job.ID).Updates(map[string]interface{}{
		"title":       job.Title,
		"description": job.Description,
		"location":    job.Location,
		"budget":      job.Budget,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.JobStatus, assignedArtisanID *string) error {
	result := db.Model(&models.Job{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":              status,
		"assigned_artisan_id": assignedArtisanID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) ReplaceRequiredSkills(db *gorm.DB, job *models.Job, skills []models.Skill) error {
	return db.Model(job).Association("RequiredSkills").Replace(skills)
}

func (r *JobRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}
