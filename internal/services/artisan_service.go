package services

import (
	"errors"

	"juakali_backend/internal/models"
	"juakali_backend/internal/repositories"
	"juakali_backend/internal/services/dto"
	"juakali_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ArtisanService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.ArtisanProfileResponse, error)
	ListArtisans(db *gorm.DB, criteria dto.ArtisanCriteria) (*dto.ArtisanListResponse, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateArtisanProfileRequest) (*dto.ArtisanProfileResponse, error)
}

type artisanService struct {
	artisanRepo repositories.ArtisanRepository
	skillRepo   repositories.SkillRepository
}

func NewArtisanService(
	artisanRepo repositories.ArtisanRepository,
	skillRepo repositories.SkillRepository,
) ArtisanService {
	return &artisanService{
		artisanRepo: artisanRepo,
		skillRepo:   skillRepo,
	}
}

func (s *artisanService) GetProfile(db *gorm.DB, userID string) (*dto.ArtisanProfileResponse, error) {
	profile, err := s.artisanRepo.FindProfileByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrArtisanProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildArtisanProfileResponse(profile), nil
}

func (s *artisanService) ListArtisans(db *gorm.DB, criteria dto.ArtisanCriteria) (*dto.ArtisanListResponse, error) {
	filter := repositories.ArtisanFilter{
		SkillID:       criteria.SkillID,
		Location:      criteria.Location,
		MinRating:     criteria.MinRating,
		AvailableOnly: criteria.AvailableOnly,
	}

	limit, offset := pageToLimitOffset(criteria.Page, criteria.PageSize)
	profiles, total, err := s.artisanRepo.FindAll(db, filter, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ArtisanListResponse{
		Artisans: []dto.ArtisanProfileResponse{},
		Total:    total,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}
	for i := range profiles {
		resp.Artisans = append(resp.Artisans, *buildArtisanProfileResponse(&profiles[i]))
	}
	return resp, nil
}

func (s *artisanService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateArtisanProfileRequest) (*dto.ArtisanProfileResponse, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		profile, err := s.artisanRepo.FindProfileByUserID(tx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrArtisanProfileNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return apperrors.InternalError(err)
		}

		if req.Bio != nil {
			profile.Bio = *req.Bio
		}
		if req.YearsExperience != nil {
			profile.YearsExperience = *req.YearsExperience
		}
		if req.IsAvailable != nil {
			profile.IsAvailable = *req.IsAvailable
		}
		if err := s.artisanRepo.UpdateProfile(tx, profile); err != nil {
			return apperrors.InternalError(err)
		}

		if req.Skills != nil {
			skills, missing, err := s.skillRepo.ResolveNames(tx, req.Skills)
			if err != nil {
				return apperrors.InternalError(err)
			}
			if len(missing) > 0 {
				return apperrors.ErrUnknownSkills(missing)
			}
			if err := s.artisanRepo.ReplaceSkills(tx, profile, skills); err != nil {
				return apperrors.InternalError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProfile(db, userID)
}

func buildArtisanProfileResponse(profile *models.ArtisanProfile) *dto.ArtisanProfileResponse {
	resp := &dto.ArtisanProfileResponse{
		ID:              profile.ID,
		UserID:          profile.UserID,
		Bio:             profile.Bio,
		YearsExperience: profile.YearsExperience,
		AverageRating:   profile.AverageRating,
		TotalReviews:    profile.TotalReviews,
		IsAvailable:     profile.IsAvailable,
	}
	for _, skill := range profile.Skills {
		resp.Skills = append(resp.Skills, dto.SkillDTO{ID: skill.ID, Name: skill.Name})
	}
	if profile.User != nil {
		resp.User = buildUserDTO(profile.User)
	}
	return resp
}
