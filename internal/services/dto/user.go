package dto

import (
	"juakali_backend/internal/models"
)

// UpdateUserRequest - profile fields a user may change
type UpdateUserRequest struct {
	FullName    *string `json:"full_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Location    *string `json:"location,omitempty"`
}

// AdminUserCriteria - admin user listing filters
type AdminUserCriteria struct {
	Role     string `form:"role" binding:"omitempty,oneof=client artisan admin"`
	Status   string `form:"status" binding:"omitempty,oneof=pending active suspended banned"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// UpdateUserStatusRequest - admin moderation action
type UpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" binding:"required,oneof=active suspended banned"`
}

// UserListResponse - paginated user listing
type UserListResponse struct {
	Users    []UserDTO `json:"users"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}
