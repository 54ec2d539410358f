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

type ApplicationService interface {
	// Application operations
	SubmitApplication(db *gorm.DB, jobID, artisanID string, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error)
	DecideApplication(db *gorm.DB, applicationID, clientID string, req *dto.DecideApplicationRequest) (*dto.ApplicationResponse, error)
	WithdrawApplication(db *gorm.DB, applicationID, artisanID string) (*dto.ApplicationResponse, error)

	// Listings
	ListApplicationsForJob(db *gorm.DB, jobID, clientID string) ([]dto.ApplicationResponse, error)
	ListMyApplications(db *gorm.DB, artisanID string) ([]dto.ApplicationResponse, error)
}

type applicationService struct {
	applicationRepo  repositories.ApplicationRepository
	jobRepo          repositories.JobRepository
	notificationRepo repositories.NotificationRepository
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	notificationRepo repositories.NotificationRepository,
) ApplicationService {
	return &applicationService{
		applicationRepo:  applicationRepo,
		jobRepo:          jobRepo,
		notificationRepo: notificationRepo,
	}
}

// ---------------- Application Operations ----------------

func (s *applicationService) SubmitApplication(db *gorm.DB, jobID, artisanID string, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error) {
	var application *models.JobApplication

	err := db.Transaction(func(tx *gorm.DB) error {
		job, err := s.jobRepo.FindByID(tx, jobID)
		if err != nil {
			if errors.Is(err, repositories.ErrJobNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return apperrors.InternalError(err)
		}
		if job.Status != models.JobStatusOpen {
			return apperrors.ErrJobNotOpen
		}

		// Explicit duplicate check so the caller gets a precise error
		// instead of a unique-constraint violation. Any prior application,
		// including rejected or withdrawn, blocks re-application.
		existing, err := s.applicationRepo.FindByJobAndArtisan(tx, jobID, artisanID)
		if err != nil && !errors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.InternalError(err)
		}
		if existing != nil {
			return apperrors.ErrApplicationAlreadyExists
		}

		application = &models.JobApplication{
			JobID:     jobID,
			ArtisanID: artisanID,
			BidAmount: req.BidAmount,
			Message:   req.Message,
			Status:    models.ApplicationStatusPending,
		}
		if err := s.applicationRepo.Create(tx, application); err != nil {
			if errors.Is(err, repositories.ErrApplicationAlreadyExists) {
				return apperrors.ErrApplicationAlreadyExists
			}
			return apperrors.InternalError(err)
		}

		if err := s.notificationRepo.CreateNewApplicationNotification(tx, job.ClientID, job.ID, application.ID, job.Title); err != nil {
			logger.WithError(err).Warn("failed to create new application notification", "job_id", job.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buildApplicationResponse(application), nil
}

func (s *applicationService) DecideApplication(db *gorm.DB, applicationID, clientID string, req *dto.DecideApplicationRequest) (*dto.ApplicationResponse, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		application, err := s.applicationRepo.FindByID(tx, applicationID)
		if err != nil {
			if errors.Is(err, repositories.ErrApplicationNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return apperrors.InternalError(err)
		}

		// Row lock on the job serializes concurrent decisions. The loser
		// of an accept race re-reads the job here and sees it assigned.
		job, err := s.jobRepo.FindByIDForUpdate(tx, application.JobID)
		if err != nil {
			if errors.Is(err, repositories.ErrJobNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return apperrors.InternalError(err)
		}
		if job.ClientID != clientID {
			return apperrors.ErrNotJobOwner
		}

		if req.Decision == "accept" {
			if job.AssignedArtisanID != nil {
				return apperrors.ErrJobAlreadyAssigned
			}
			if job.Status != models.JobStatusOpen {
				return apperrors.ErrJobClosed
			}
			if application.Status != models.ApplicationStatusPending {
				return apperrors.ErrApplicationNotPending
			}

			if err := s.applicationRepo.UpdateStatus(tx, application.ID, models.ApplicationStatusAccepted); err != nil {
				return apperrors.InternalError(err)
			}
			if err := s.jobRepo.UpdateStatus(tx, job.ID, models.JobStatusAssigned, &application.ArtisanID); err != nil {
				return apperrors.InternalError(err)
			}

			rejected, err := s.applicationRepo.BulkRejectPending(tx, job.ID, application.ID)
			if err != nil {
				return apperrors.InternalError(err)
			}

			s.emitDecision(tx, application.ArtisanID, job.ID, job.Title, models.ApplicationStatusAccepted)
			for _, other := range rejected {
				s.emitDecision(tx, other.ArtisanID, job.ID, job.Title, models.ApplicationStatusRejected)
			}
			return nil
		}

		// reject
		if job.Status != models.JobStatusOpen {
			return apperrors.ErrJobClosed
		}
		if application.Status != models.ApplicationStatusPending {
			return apperrors.ErrApplicationNotPending
		}
		if err := s.applicationRepo.UpdateStatus(tx, application.ID, models.ApplicationStatusRejected); err != nil {
			return apperrors.InternalError(err)
		}
		s.emitDecision(tx, application.ArtisanID, job.ID, job.Title, models.ApplicationStatusRejected)
		return nil
	})
	if err != nil {
		return nil, err
	}

	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildApplicationResponse(application), nil
}

func (s *applicationService) WithdrawApplication(db *gorm.DB, applicationID, artisanID string) (*dto.ApplicationResponse, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		application, err := s.applicationRepo.FindByID(tx, applicationID)
		if err != nil {
			if errors.Is(err, repositories.ErrApplicationNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return apperrors.InternalError(err)
		}
		if application.ArtisanID != artisanID {
			return apperrors.ErrInsufficientPermissions
		}
		if application.Status != models.ApplicationStatusPending {
			return apperrors.ErrApplicationNotPending
		}
		if err := s.applicationRepo.UpdateStatus(tx, application.ID, models.ApplicationStatusWithdrawn); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildApplicationResponse(application), nil
}

// ---------------- Listings ----------------

func (s *applicationService) ListApplicationsForJob(db *gorm.DB, jobID, clientID string) ([]dto.ApplicationResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if job.ClientID != clientID {
		return nil, apperrors.ErrNotJobOwner
	}

	applications, err := s.applicationRepo.FindByJob(db, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, *buildApplicationResponse(&applications[i]))
	}
	return responses, nil
}

func (s *applicationService) ListMyApplications(db *gorm.DB, artisanID string) ([]dto.ApplicationResponse, error) {
	applications, err := s.applicationRepo.FindByArtisan(db, artisanID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, *buildApplicationResponse(&applications[i]))
	}
	return responses, nil
}

// ---------------- Helpers ----------------

func (s *applicationService) emitDecision(tx *gorm.DB, artisanID, jobID, jobTitle string, status models.ApplicationStatus) {
	if err := s.notificationRepo.CreateApplicationDecisionNotification(tx, artisanID, jobID, jobTitle, status); err != nil {
		logger.WithError(err).Warn("failed to create application decision notification", "job_id", jobID)
	}
}

func buildApplicationResponse(application *models.JobApplication) *dto.ApplicationResponse {
	resp := &dto.ApplicationResponse{
		ID:        application.ID,
		JobID:     application.JobID,
		ArtisanID: application.ArtisanID,
		BidAmount: application.BidAmount,
		Message:   application.Message,
		Status:    application.Status,
		CreatedAt: application.CreatedAt,
		UpdatedAt: application.UpdatedAt,
	}
	if application.Artisan != nil {
		resp.Artisan = buildUserDTO(application.Artisan)
	}
	if application.Job != nil {
		resp.Job = buildJobResponse(application.Job)
	}
	return resp
}
