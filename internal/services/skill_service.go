package services

import (
	"errors"

	"juakali_backend/internal/models"
	"juakali_backend/internal/repositories"
	"juakali_backend/internal/services/dto"
	"juakali_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SkillService interface {
	ListSkills(db *gorm.DB) ([]dto.SkillDTO, error)

	// Admin catalog management
	CreateSkill(db *gorm.DB, req *dto.CreateSkillRequest) (*dto.SkillDTO, error)
	UpdateSkill(db *gorm.DB, skillID string, req *dto.UpdateSkillRequest) (*dto.SkillDTO, error)
	DeleteSkill(db *gorm.DB, skillID string) error
}

type skillService struct {
	skillRepo repositories.SkillRepository
}

func NewSkillService(skillRepo repositories.SkillRepository) SkillService {
	return &skillService{skillRepo: skillRepo}
}

func (s *skillService) ListSkills(db *gorm.DB) ([]dto.SkillDTO, error) {
	skills, err := s.skillRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.SkillDTO, 0, len(skills))
	for _, skill := range skills {
		result = append(result, dto.SkillDTO{ID: skill.ID, Name: skill.Name})
	}
	return result, nil
}

func (s *skillService) CreateSkill(db *gorm.DB, req *dto.CreateSkillRequest) (*dto.SkillDTO, error) {
	skill := &models.Skill{Name: req.Name}
	if err := s.skillRepo.Create(db, skill); err != nil {
		if errors.Is(err, repositories.ErrSkillAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return &dto.SkillDTO{ID: skill.ID, Name: skill.Name}, nil
}

func (s *skillService) UpdateSkill(db *gorm.DB, skillID string, req *dto.UpdateSkillRequest) (*dto.SkillDTO, error) {
	skill, err := s.skillRepo.FindByID(db, skillID)
	if err != nil {
		if errors.Is(err, repositories.ErrSkillNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	skill.Name = req.Name
	if err := s.skillRepo.Update(db, skill); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.SkillDTO{ID: skill.ID, Name: skill.Name}, nil
}

func (s *skillService) DeleteSkill(db *gorm.DB, skillID string) error {
	if err := s.skillRepo.Delete(db, skillID); err != nil {
		if errors.Is(err, repositories.ErrSkillNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
