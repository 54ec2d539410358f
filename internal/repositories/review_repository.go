package repositories

import (
	"errors"
	"juakali_backend/internal/models"
	"math"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this job")
)

type ReviewRepository interface {
	// Review operations
	CreateReview(db *gorm.DB, review *models.Review) error
	FindReviewByID(db *gorm.DB, id string) (*models.Review, error)
	FindReviewByJob(db *gorm.DB, jobID string) (*models.Review, error)
	FindReviewsByArtisan(db *gorm.DB, artisanID string, limit, offset int) ([]models.Review, int64, error)
	ExistsForJob(db *gorm.DB, jobID string) (bool, error)

	// Rating operations
	GetArtisanRatingStats(db *gorm.DB, artisanID string) (*RatingStats, error)
	// RecomputeArtisanRating recalculates the artisan's average from all
	// of their reviews and writes it to the profile. Called inside the
	// same transaction as the review insert.
	RecomputeArtisanRating(db *gorm.DB, artisanID string) error
}

type ReviewRepositoryImpl struct{}

// Rating statistics
type RatingStats struct {
	AverageRating float64       `json:"average_rating"`
	TotalReviews  int64         `json:"total_reviews"`
	RatingCounts  map[int]int64 `json:"rating_counts"` // 1-5 stars count
}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

// Review operations

func (r *ReviewRepositoryImpl) CreateReview(db *gorm.DB, review *models.Review) error {
	var existing models.Review
	err := db.Where("job_id = ?", review.JobID).First(&existing).Error
	if err == nil {
		return ErrReviewAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := db.Create(review).Error; err != nil {
		return err
	}

	return r.RecomputeArtisanRating(db, review.ArtisanID)
}

func (r *ReviewRepositoryImpl) FindReviewByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	err := db.Preload("Client").Preload("Artisan").Preload("Job").
		First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindReviewByJob(db *gorm.DB, jobID string) (*models.Review, error) {
	var review models.Review
	err := db.Preload("Client").Preload("Artisan").
		Where("job_id = ?", jobID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindReviewsByArtisan(db *gorm.DB, artisanID string, limit, offset int) ([]models.Review, int64, error) {
	var total int64
	if err := db.Model(&models.Review{}).Where("artisan_id = ?", artisanID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := db.Preload("Client").Preload("Job").
		Where("artisan_id = ?", artisanID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error

	return reviews, total, err
}

func (r *ReviewRepositoryImpl) ExistsForJob(db *gorm.DB, jobID string) (bool, error) {
	var count int64
	err := db.Model(&models.Review{}).Where("job_id = ?", jobID).Count(&count).Error
	return count > 0, err
}

// Rating operations

func (r *ReviewRepositoryImpl) GetArtisanRatingStats(db *gorm.DB, artisanID string) (*RatingStats, error) {
	var stats RatingStats

	if err := db.Model(&models.Review{}).Where("artisan_id = ?", artisanID).
		Select("COUNT(*) as total_reviews, COALESCE(AVG(rating), 0) as average_rating").
		Scan(&stats).Error; err != nil {
		return nil, err
	}
	stats.AverageRating = math.Round(stats.AverageRating*100) / 100

	stats.RatingCounts = make(map[int]int64)
	var counts []struct {
		Rating int
		Count  int64
	}
	if err := db.Model(&models.Review{}).Where("artisan_id = ?", artisanID).
		Select("rating, COUNT(*) as count").
		Group("rating").Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		stats.RatingCounts[c.Rating] = c.Count
	}

	return &stats, nil
}

func (r *ReviewRepositoryImpl) RecomputeArtisanRating(db *gorm.DB, artisanID string) error {
	var avgRating float64
	if err := db.Model(&models.Review{}).Where("artisan_id = ?", artisanID).
		Select("COALESCE(AVG(rating), 0)").Scan(&avgRating).Error; err != nil {
		return err
	}

	var totalReviews int64
	if err := db.Model(&models.Review{}).Where("artisan_id = ?", artisanID).
		Count(&totalReviews).Error; err != nil {
		return err
	}

	// Round half away from zero to two decimals.
	avgRating = math.Round(avgRating*100) / 100

	return db.Model(&models.ArtisanProfile{}).Where("user_id = ?", artisanID).
		Updates(map[string]interface{}{
			"average_rating": avgRating,
			"total_reviews":  totalReviews,
		}).Error
}
