package dto

// UpdateArtisanProfileRequest - artisan's own profile edit
type UpdateArtisanProfileRequest struct {
	Bio             *string  `json:"bio,omitempty"`
	YearsExperience *int     `json:"years_experience,omitempty" binding:"omitempty,min=0"`
	IsAvailable     *bool    `json:"is_available,omitempty"`
	Skills          []string `json:"skills,omitempty"`
}

// ArtisanCriteria - artisan directory filters
type ArtisanCriteria struct {
	SkillID       string  `form:"skill_id"`
	Location      string  `form:"location"`
	MinRating     float64 `form:"min_rating" binding:"omitempty,min=0,max=5"`
	AvailableOnly bool    `form:"available_only"`
	Page          int     `form:"page"`
	PageSize      int     `form:"page_size"`
}

// ArtisanProfileResponse - public artisan card
type ArtisanProfileResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Bio             string     `json:"bio,omitempty"`
	YearsExperience int        `json:"years_experience"`
	AverageRating   float64    `json:"average_rating"`
	TotalReviews    int64      `json:"total_reviews"`
	IsAvailable     bool       `json:"is_available"`
	Skills          []SkillDTO `json:"skills,omitempty"`
	User            *UserDTO   `json:"user,omitempty"`
}

// ArtisanListResponse - paginated artisan directory
type ArtisanListResponse struct {
	Artisans []ArtisanProfileResponse `json:"artisans"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
}
