package dto

import "time"

// SubmitReviewRequest - client's review of a completed job
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" binding:"omitempty,max=2000"`
}

// ReviewResponse - review with author summary
type ReviewResponse struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	ClientID  string    `json:"client_id"`
	ArtisanID string    `json:"artisan_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	Client    *UserDTO  `json:"client,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewListResponse - paginated reviews for an artisan
type ReviewListResponse struct {
	Reviews  []ReviewResponse `json:"reviews"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// RatingResponse - artisan rating summary
type RatingResponse struct {
	ArtisanID     string        `json:"artisan_id"`
	AverageRating float64       `json:"average_rating"`
	TotalReviews  int64         `json:"total_reviews"`
	RatingCounts  map[int]int64 `json:"rating_counts,omitempty"`
}
