package repositories

import (
	"errors"
	"juakali_backend/internal/models"

	"gorm.io/gorm"
)

var ErrArtisanProfileNotFound = errors.New("artisan profile not found")

// ArtisanFilter - optional criteria for artisan directory listings.
type ArtisanFilter struct {
	SkillID       string
	Location      string
	MinRating     float64
	AvailableOnly bool
}

type ArtisanRepository interface {
	CreateProfile(db *gorm.DB, profile *models.ArtisanProfile) error
	FindProfileByUserID(db *gorm.DB, userID string) (*models.ArtisanProfile, error)
	FindAll(db *gorm.DB, filter ArtisanFilter, limit, offset int) ([]models.ArtisanProfile, int64, error)
	UpdateProfile(db *gorm.DB, profile *models.ArtisanProfile) error
	// ReplaceSkills swaps the full skill set in one shot.
	ReplaceSkills(db *gorm.DB, profile *models.ArtisanProfile, skills []models.Skill) error
}

type ArtisanRepositoryImpl struct{}

func NewArtisanRepository() ArtisanRepository {
	return &ArtisanRepositoryImpl{}
}

func (r *ArtisanRepositoryImpl) CreateProfile(db *gorm.DB, profile *models.ArtisanProfile) error {
	return db.Create(profile).Error
}

func (r *ArtisanRepositoryImpl) FindProfileByUserID(db *gorm.DB, userID string) (*models.ArtisanProfile, error) {
	var profile models.ArtisanProfile
	err := db.Preload("User").Preload("Skills").
		Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtisanProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ArtisanRepositoryImpl) FindAll(db *gorm.DB, filter ArtisanFilter, limit, offset int) ([]models.ArtisanProfile, int64, error) {
	query := db.Model(&models.ArtisanProfile{}).
		Joins("JOIN users ON users.id = artisan_profiles.user_id").
		Where("users.status = ?", models.UserStatusActive)

	if filter.SkillID != "" {
		query = query.Joins("JOIN artisan_skills ask ON ask.artisan_profile_id = artisan_profiles.id").
			Where("ask.skill_id = ?", filter.SkillID)
	}
	if filter.Location != "" {
		query = query.Where("users.location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.MinRating > 0 {
		query = query.Where("artisan_profiles.average_rating >= ?", filter.MinRating)
	}
	if filter.AvailableOnly {
		query = query.Where("artisan_profiles.is_available = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []models.ArtisanProfile
	err := query.Preload("User").Preload("Skills").
		Order("artisan_profiles.average_rating DESC").
		Limit(limit).Offset(offset).
		Find(&profiles).Error

	return profiles, total, err
}

func (r *ArtisanRepositoryImpl) UpdateProfile(db *gorm.DB, profile *models.ArtisanProfile) error {
	result := db.Model(&models.ArtisanProfile{}).Where("id = ?", profile.ID).Updates(map[string]interface{}{
		"bio":              profile.Bio,
		"years_experience": profile.YearsExperience,
		"is_available":     profile.IsAvailable,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArtisanProfileNotFound
	}
	return nil
}

func (r *ArtisanRepositoryImpl) ReplaceSkills(db *gorm.DB, profile *models.ArtisanProfile, skills []models.Skill) error {
	return db.Model(profile).Association("Skills").Replace(skills)
}
