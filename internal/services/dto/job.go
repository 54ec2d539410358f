package dto

import (
	"time"

	"juakali_backend/internal/models"
)

// CreateJobRequest - new job posting
type CreateJobRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	Budget         float64  `json:"budget" binding:"omitempty,min=0"`
	RequiredSkills []string `json:"required_skills,omitempty"`
}

// UpdateJobRequest - partial job edit. A status value different from the
// current one is treated as a transition request and validated against
// the lifecycle graph.
type UpdateJobRequest struct {
	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Location       *string  `json:"location,omitempty"`
	Budget         *float64 `json:"budget,omitempty" binding:"omitempty,min=0"`
	Status         *string  `json:"status,omitempty" binding:"omitempty,oneof=open assigned in_progress completed cancelled"`
	RequiredSkills []string `json:"required_skills,omitempty"`
}

// JobCriteria - job listing filters
type JobCriteria struct {
	Status   string `form:"status" binding:"omitempty,oneof=open assigned in_progress completed cancelled"`
	Location string `form:"location"`
	SkillID  string `form:"skill_id"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// JobResponse - job with its relations
type JobResponse struct {
	ID                string           `json:"id"`
	ClientID          string           `json:"client_id"`
	Title             string           `json:"title"`
	Description       string           `json:"description,omitempty"`
	Location          string           `json:"location,omitempty"`
	Budget            float64          `json:"budget"`
	Status            models.JobStatus `json:"status"`
	AssignedArtisanID *string          `json:"assigned_artisan_id,omitempty"`
	RequiredSkills    []SkillDTO       `json:"required_skills,omitempty"`
	Client            *UserDTO         `json:"client,omitempty"`
	AssignedArtisan   *UserDTO         `json:"assigned_artisan,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// JobListResponse - paginated job listing
type JobListResponse struct {
	Jobs     []JobResponse `json:"jobs"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}
