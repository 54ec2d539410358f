package services

import (
	"juakali_backend/internal/models"
	"juakali_backend/internal/services/dto"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func pageToLimitOffset(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return pageSize, (page - 1) * pageSize
}

func buildUserDTO(user *models.User) *dto.UserDTO {
	if user == nil {
		return nil
	}
	return &dto.UserDTO{
		ID:          user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
		Status:      user.Status,
		Location:    user.Location,
		CreatedAt:   user.CreatedAt,
	}
}
