package repositories

import (
	"errors"
	"juakali_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound      = errors.New("application not found")
	ErrApplicationAlreadyExists = errors.New("application already exists for this job")
)

type ApplicationRepository interface {
	Create(db *gorm.DB, application *models.JobApplication) error
	FindByID(db *gorm.DB, id string) (*models.JobApplication, error)
	// FindByJobAndArtisan matches ANY status. A rejected or withdrawn
	// application still blocks re-application.
	FindByJobAndArtisan(db *gorm.DB, jobID, artisanID string) (*models.JobApplication, error)
	FindByJob(db *gorm.DB, jobID string) ([]models.JobApplication, error)
	FindByArtisan(db *gorm.DB, artisanID string) ([]models.JobApplication, error)
	UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error
	// BulkRejectPending rejects every pending application on the job
	// except the one being accepted. Returns the affected rows.
	BulkRejectPending(db *gorm.DB, jobID, exceptID string) ([]models.JobApplication, error)
	RejectAllPending(db *gorm.DB, jobID string) ([]models.JobApplication, error)
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, application *models.JobApplication) error {
	var existing models.JobApplication
	err := db.Where("job_id = ? AND artisan_id = ?", application.JobID, application.ArtisanID).
		First(&existing).Error
	if err == nil {
		return ErrApplicationAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(application).Error
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.JobApplication, error) {
	var application models.JobApplication
	err := db.Preload("Job").Preload("Artisan").
		First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByJobAndArtisan(db *gorm.DB, jobID, artisanID string) (*models.JobApplication, error) {
	var application models.JobApplication
	err := db.Where("job_id = ? AND artisan_id = ?", jobID, artisanID).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByJob(db *gorm.DB, jobID string) ([]models.JobApplication, error) {
	var applications []models.JobApplication
	err := db.Preload("Artisan").Preload("Artisan.ArtisanProfile").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindByArtisan(db *gorm.DB, artisanID string) ([]models.JobApplication, error) {
	var applications []models.JobApplication
	err := db.Preload("Job").Preload("Job.Client").
		Where("artisan_id = ?", artisanID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error {
	result := db.Model(&models.JobApplication{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) BulkRejectPending(db *gorm.DB, jobID, exceptID string) ([]models.JobApplication, error) {
	var pending []models.JobApplication
	if err := db.Where("job_id = ? AND id != ? AND status = ?",
		jobID, exceptID, models.ApplicationStatusPending).Find(&pending).Error; err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, nil
	}

	err := db.Model(&models.JobApplication{}).
		Where("job_id = ? AND id != ? AND status = ?", jobID, exceptID, models.ApplicationStatusPending).
		Update("status", models.ApplicationStatusRejected).Error
	return pending, err
}

func (r *ApplicationRepositoryImpl) RejectAllPending(db *gorm.DB, jobID string) ([]models.JobApplication, error) {
	var pending []models.JobApplication
	if err := db.Where("job_id = ? AND status = ?",
		jobID, models.ApplicationStatusPending).Find(&pending).Error; err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, nil
	}

	err := db.Model(&models.JobApplication{}).
		Where("job_id = ? AND status = ?", jobID, models.ApplicationStatusPending).
		Update("status", models.ApplicationStatusRejected).Error
	return pending, err
}
