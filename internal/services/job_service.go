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

type JobService interface {
	// Job operations
	CreateJob(db *gorm.DB, clientID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetJob(db *gorm.DB, jobID string) (*dto.JobResponse, error)
	ListJobs(db *gorm.DB, criteria dto.JobCriteria) (*dto.JobListResponse, error)
	ListMyJobs(db *gorm.DB, userID string, role models.UserRole, page, pageSize int) (*dto.JobListResponse, error)
	UpdateJob(db *gorm.DB, jobID, clientID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	DeleteJob(db *gorm.DB, jobID, clientID string) error

	// Lifecycle operations
	CompleteJob(db *gorm.DB, jobID, clientID string) (*dto.JobResponse, error)
	CancelJob(db *gorm.DB, jobID, clientID string) (*dto.JobResponse, error)
}

type jobService struct {
	jobRepo          repositories.JobRepository
	skillRepo        repositories.SkillRepository
	applicationRepo  repositories.ApplicationRepository
	notificationRepo repositories.NotificationRepository
}

func NewJobService(
	jobRepo repositories.JobRepository,
	skillRepo repositories.SkillRepository,
	applicationRepo repositories.ApplicationRepository,
	notificationRepo repositories.NotificationRepository,
) JobService {
	return &jobService{
		jobRepo:          jobRepo,
		skillRepo:        skillRepo,
		applicationRepo:  applicationRepo,
		notificationRepo: notificationRepo,
	}
}

// ---------------- Job Operations ----------------

func (s *jobService) CreateJob(db *gorm.DB, clientID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	var job *models.Job

	err := db.Transaction(func(tx *gorm.DB) error {
		skills, missing, err := s.skillRepo.ResolveNames(tx, req.RequiredSkills)
		if err != nil {
			return apperrors.InternalError(err)
		}
		// Report every unresolved name; nothing is persisted.
		if len(missing) > 0 {
			return apperrors.ErrUnknownSkills(missing)
		}

		job = &models.Job{
			ClientID:       clientID,
			Title:          req.Title,
			Description:    req.Description,
			Location:       req.Location,
			Budget:         req.Budget,
			Status:         models.JobStatusOpen,
			RequiredSkills: skills,
		}

		if err := s.jobRepo.Create(tx, job); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buildJobResponse(job), nil
}

func (s *jobService) GetJob(db *gorm.DB, jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildJobResponse(job), nil
}

func (s *jobService) ListJobs(db *gorm.DB, criteria dto.JobCriteria) (*dto.JobListResponse, error) {
	filter := repositories.JobFilter{
		Location: criteria.Location,
		SkillID:  criteria.SkillID,
		Search:   criteria.Search,
	}
	if criteria.Status != "" {
		status := models.JobStatus(criteria.Status)
		filter.Status = &status
	}

	limit, offset := pageToLimitOffset(criteria.Page, criteria.PageSize)
	jobs, total, err := s.jobRepo.FindAll(db, filter, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildJobListResponse(jobs, total, criteria.Page, criteria.PageSize), nil
}

func (s *jobService) ListMyJobs(db *gorm.DB, userID string, role models.UserRole, page, pageSize int) (*dto.JobListResponse, error) {
	var filter repositories.JobFilter
	switch role {
	case models.UserRoleClient:
		filter.ClientID = userID
	case models.UserRoleArtisan:
		filter.ArtisanID = userID
	default:
		return nil, apperrors.ErrInvalidUserRole
	}

	limit, offset := pageToLimitOffset(page, pageSize)
	jobs, total, err := s.jobRepo.FindAll(db, filter, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildJobListResponse(jobs, total, page, pageSize), nil
}

func (s *jobService) UpdateJob(db *gorm.DB, jobID, clientID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
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

		if req.Title != nil {
			job.Title = *req.Title
		}
		if req.Description != nil {
			job.Description = *req.Description
		}
		if req.Location != nil {
			job.Location = *req.Location
		}
		if req.Budget != nil {
			job.Budget = *req.Budget
		}
		if err := s.jobRepo.Update(tx, job); err != nil {
			return apperrors.InternalError(err)
		}

		// Skill list is re-validated the same way as on creation.
		if req.RequiredSkills != nil {
			skills, missing, err := s.skillRepo.ResolveNames(tx, req.RequiredSkills)
			if err != nil {
				return apperrors.InternalError(err)
			}
			if len(missing) > 0 {
				return apperrors.ErrUnknownSkills(missing)
			}
			if err := s.jobRepo.ReplaceRequiredSkills(tx, job, skills); err != nil {
				return apperrors.InternalError(err)
			}
		}

		// A differing status is a transition request.
		if req.Status != nil && models.JobStatus(*req.Status) != job.Status {
			if err := s.transitionJob(tx, job, models.JobStatus(*req.Status)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetJob(db, jobID)
}

func (s *jobService) DeleteJob(db *gorm.DB, jobID, clientID string) error {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if job.ClientID != clientID {
		return apperrors.ErrNotJobOwner
	}

	if err := s.jobRepo.Delete(db, jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ---------------- Lifecycle Operations ----------------

func (s *jobService) CompleteJob(db *gorm.DB, jobID, clientID string) (*dto.JobResponse, error) {
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
		if job.Status != models.JobStatusAssigned {
			return apperrors.ErrJobWrongStatus
		}
		if job.AssignedArtisanID == nil {
			return apperrors.ErrJobNotAssigned
		}

		if err := s.jobRepo.UpdateStatus(tx, job.ID, models.JobStatusCompleted, job.AssignedArtisanID); err != nil {
			return apperrors.InternalError(err)
		}

		s.emitJobStatusNotification(tx, *job.AssignedArtisanID, job.ID, job.Title, models.JobStatusCompleted)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetJob(db, jobID)
}

func (s *jobService) CancelJob(db *gorm.DB, jobID, clientID string) (*dto.JobResponse, error) {
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
		return s.transitionJob(tx, job, models.JobStatusCancelled)
	})
	if err != nil {
		return nil, err
	}

	return s.GetJob(db, jobID)
}

// transitionJob applies a requested status change after validating it
// against the lifecycle graph. Caller must hold the job row lock.
func (s *jobService) transitionJob(tx *gorm.DB, job *models.Job, to models.JobStatus) error {
	if !models.CanTransitionJob(job.Status, to) {
		return apperrors.ErrInvalidTransition(string(job.Status), string(to))
	}

	switch {
	case job.Status == models.JobStatusOpen && to == models.JobStatusCancelled:
		// Cancelling an open job rejects every still-pending application.
		rejected, err := s.applicationRepo.RejectAllPending(tx, job.ID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.jobRepo.UpdateStatus(tx, job.ID, models.JobStatusCancelled, nil); err != nil {
			return apperrors.InternalError(err)
		}
		for _, app := range rejected {
			s.emitDecisionNotification(tx, app.ArtisanID, job.ID, job.Title, models.ApplicationStatusRejected)
		}

	case job.Status == models.JobStatusAssigned && to == models.JobStatusCancelled:
		artisanID := job.AssignedArtisanID
		if err := s.jobRepo.UpdateStatus(tx, job.ID, models.JobStatusCancelled, nil); err != nil {
			return apperrors.InternalError(err)
		}
		if artisanID != nil {
			s.emitJobStatusNotification(tx, *artisanID, job.ID, job.Title, models.JobStatusCancelled)
		}

	case job.Status == models.JobStatusAssigned && to == models.JobStatusCompleted:
		if job.AssignedArtisanID == nil {
			return apperrors.ErrJobNotAssigned
		}
		if err := s.jobRepo.UpdateStatus(tx, job.ID, models.JobStatusCompleted, job.AssignedArtisanID); err != nil {
			return apperrors.InternalError(err)
		}
		s.emitJobStatusNotification(tx, *job.AssignedArtisanID, job.ID, job.Title, models.JobStatusCompleted)

	default:
		return apperrors.ErrInvalidTransition(string(job.Status), string(to))
	}

	return nil
}

// ---------------- Notification Helpers ----------------

// Notification rows commit or roll back with the surrounding transaction,
// but a failed write never aborts the business operation.

func (s *jobService) emitJobStatusNotification(tx *gorm.DB, artisanID, jobID, jobTitle string, status models.JobStatus) {
	if err := s.notificationRepo.CreateJobStatusNotification(tx, artisanID, jobID, jobTitle, status); err != nil {
		logger.WithError(err).Warn("failed to create job status notification", "job_id", jobID)
	}
}

func (s *jobService) emitDecisionNotification(tx *gorm.DB, artisanID, jobID, jobTitle string, status models.ApplicationStatus) {
	if err := s.notificationRepo.CreateApplicationDecisionNotification(tx, artisanID, jobID, jobTitle, status); err != nil {
		logger.WithError(err).Warn("failed to create application decision notification", "job_id", jobID)
	}
}

// ---------------- Response Builders ----------------

func buildJobResponse(job *models.Job) *dto.JobResponse {
	resp := &dto.JobResponse{
		ID:                job.ID,
		ClientID:          job.ClientID,
		Title:             job.Title,
		Description:       job.Description,
		Location:          job.Location,
		Budget:            job.Budget,
		Status:            job.Status,
		AssignedArtisanID: job.AssignedArtisanID,
		CreatedAt:         job.CreatedAt,
		UpdatedAt:         job.UpdatedAt,
	}
	for _, skill := range job.RequiredSkills {
		resp.RequiredSkills = append(resp.RequiredSkills, dto.SkillDTO{ID: skill.ID, Name: skill.Name})
	}
	if job.Client != nil {
		resp.Client = buildUserDTO(job.Client)
	}
	if job.AssignedArtisan != nil {
		resp.AssignedArtisan = buildUserDTO(job.AssignedArtisan)
	}
	return resp
}

func buildJobListResponse(jobs []models.Job, total int64, page, pageSize int) *dto.JobListResponse {
	resp := &dto.JobListResponse{
		Jobs:     []dto.JobResponse{},
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, *buildJobResponse(&jobs[i]))
	}
	return resp
}
