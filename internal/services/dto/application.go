package dto

import (
	"time"

	"juakali_backend/internal/models"
)

// SubmitApplicationRequest - artisan's bid on a job
type SubmitApplicationRequest struct {
	BidAmount *float64 `json:"bid_amount,omitempty" binding:"omitempty,min=0"`
	Message   *string  `json:"message,omitempty"`
}

// DecideApplicationRequest - owner's accept/reject decision
type DecideApplicationRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accept reject"`
}

// ApplicationResponse - application with its relations
type ApplicationResponse struct {
	ID        string                   `json:"id"`
	JobID     string                   `json:"job_id"`
	ArtisanID string                   `json:"artisan_id"`
	BidAmount *float64                 `json:"bid_amount,omitempty"`
	Message   *string                  `json:"message,omitempty"`
	Status    models.ApplicationStatus `json:"status"`
	Artisan   *UserDTO                 `json:"artisan,omitempty"`
	Job       *JobResponse             `json:"job,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}
