package services

import (
	"errors"

	"juakali_backend/internal/logger"
	"juakali_backend/internal/models"
	"juakali_backend/internal/repositories"
	"juakali_backend/internal/services/dto"
	"juakali_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	// Review operations
	SubmitReview(db *gorm.DB, jobID, clientID string, req *dto.SubmitReviewRequest) (*dto.ReviewResponse, error)
	GetReview(db *gorm.DB, reviewID string) (*dto.ReviewResponse, error)
	GetJobReview(db *gorm.DB, jobID string) (*dto.ReviewResponse, error)

	// Rating operations
	GetArtisanReviews(db *gorm.DB, artisanID string, page, pageSize int) (*dto.ReviewListResponse, error)
	GetArtisanRating(db *gorm.DB, artisanID string) (*dto.RatingResponse, error)
}

type reviewService struct {
	reviewRepo       repositories.ReviewRepository
	jobRepo          repositories.JobRepository
	notificationRepo repositories.NotificationRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	jobRepo repositories.JobRepository,
	notificationRepo repositories.NotificationRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:       reviewRepo,
		jobRepo:          jobRepo,
		notificationRepo: notificationRepo,
	}
}

// ---------------- Review Operations ----------------

func (s *reviewService) SubmitReview(db *gorm.DB, jobID, clientID string, req *dto.SubmitReviewRequest) (*dto.ReviewResponse, error) {
	var review *models.Review

	// Insert, rating recomputation and notification commit as one unit.
	err := db.Transaction(func(tx *gorm.DB) error {
		job, err := s.jobRepo.FindByIDForUpdate(tx, jobID)
		if err != nil {
			if errors.Is(err, repositories.ErrJobNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return apperrors.InternalError(err)
		}
		if job.ClientID != clientID {
			return apperrors.ErrNotJobOwner
		}
		if job.AssignedArtisanID == nil {
			return apperrors.ErrJobNotAssigned
		}
		if job.Status != models.JobStatusCompleted {
			return apperrors.ErrJobNotCompleted
		}

		exists, err := s.reviewRepo.ExistsForJob(tx, jobID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if exists {
			return apperrors.ErrReviewAlreadyExists
		}

		review = &models.Review{
			JobID:     jobID,
			ClientID:  clientID,
			ArtisanID: *job.AssignedArtisanID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		// CreateReview recomputes the artisan's aggregate from the full
		// review set inside the same transaction.
		if err := s.reviewRepo.CreateReview(tx, review); err != nil {
			if errors.Is(err, repositories.ErrReviewAlreadyExists) {
				return apperrors.ErrReviewAlreadyExists
			}
			return apperrors.InternalError(err)
		}

		if err := s.notificationRepo.CreateNewReviewNotification(tx, review.ArtisanID, job.ID, job.Title, review.Rating); err != nil {
			logger.WithError(err).Warn("failed to create new review notification", "job_id", job.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buildReviewResponse(review), nil
}

func (s *reviewService) GetReview(db *gorm.DB, reviewID string) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindReviewByID(db, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildReviewResponse(review), nil
}

func (s *reviewService) GetJobReview(db *gorm.DB, jobID string) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindReviewByJob(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildReviewResponse(review), nil
}

// ---------------- Rating Operations ----------------

func (s *reviewService) GetArtisanReviews(db *gorm.DB, artisanID string, page, pageSize int) (*dto.ReviewListResponse, error) {
	limit, offset := pageToLimitOffset(page, pageSize)
	reviews, total, err := s.reviewRepo.FindReviewsByArtisan(db, artisanID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ReviewListResponse{
		Reviews:  []dto.ReviewResponse{},
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range reviews {
		resp.Reviews = append(resp.Reviews, *buildReviewResponse(&reviews[i]))
	}
	return resp, nil
}

func (s *reviewService) GetArtisanRating(db *gorm.DB, artisanID string) (*dto.RatingResponse, error) {
	stats, err := s.reviewRepo.GetArtisanRatingStats(db, artisanID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.RatingResponse{
		ArtisanID:     artisanID,
		AverageRating: stats.AverageRating,
		TotalReviews:  stats.TotalReviews,
		RatingCounts:  stats.RatingCounts,
	}, nil
}

// ---------------- Response Builders ----------------

func buildReviewResponse(review *models.Review) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:        review.ID,
		JobID:     review.JobID,
		ClientID:  review.ClientID,
		ArtisanID: review.ArtisanID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
	if review.Client != nil {
		resp.Client = buildUserDTO(review.Client)
	}
	return resp
}
