package services

import (
	"errors"

	"juakali_backend/internal/models"
	"juakali_backend/internal/repositories"
	"juakali_backend/internal/services/dto"
	"juakali_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetUser(db *gorm.DB, userID string) (*dto.UserDTO, error)
	UpdateUser(db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*dto.UserDTO, error)

	// Admin operations
	ListUsers(db *gorm.DB, criteria dto.AdminUserCriteria) (*dto.UserListResponse, error)
	UpdateUserStatus(db *gorm.DB, userID string, status models.UserStatus) error
	DeleteUser(db *gorm.DB, userID string) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUser(db *gorm.DB, userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildUserDTO(user), nil
}

func (s *userService) UpdateUser(db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Location != nil {
		user.Location = *req.Location
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildUserDTO(user), nil
}

// ---------------- Admin Operations ----------------

func (s *userService) ListUsers(db *gorm.DB, criteria dto.AdminUserCriteria) (*dto.UserListResponse, error) {
	filter := repositories.UserFilter{Search: criteria.Search}
	if criteria.Role != "" {
		role := models.UserRole(criteria.Role)
		filter.Role = &role
	}
	if criteria.Status != "" {
		status := models.UserStatus(criteria.Status)
		filter.Status = &status
	}

	limit, offset := pageToLimitOffset(criteria.Page, criteria.PageSize)
	users, total, err := s.userRepo.FindAll(db, filter, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.UserListResponse{
		Users:    []dto.UserDTO{},
		Total:    total,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}
	for i := range users {
		resp.Users = append(resp.Users, *buildUserDTO(&users[i]))
	}
	return resp, nil
}

func (s *userService) UpdateUserStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	if err := s.userRepo.UpdateStatus(db, userID, status); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) DeleteUser(db *gorm.DB, userID string) error {
	if err := s.userRepo.Delete(db, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
