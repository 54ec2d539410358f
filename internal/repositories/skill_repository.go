package repositories

import (
	"errors"
	"juakali_backend/internal/models"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrSkillNotFound      = errors.New("skill not found")
	ErrSkillAlreadyExists = errors.New("skill with this name already exists")
)

type SkillRepository interface {
	Create(db *gorm.DB, skill *models.Skill) error
	FindByID(db *gorm.DB, id string) (*models.Skill, error)
	FindAll(db *gorm.DB) ([]models.Skill, error)
	Update(db *gorm.DB, skill *models.Skill) error
	Delete(db *gorm.DB, id string) error

	// ResolveNames maps skill names to catalog rows. Matching is
	// case-insensitive; the second return value lists every name that
	// has no catalog entry, in the order requested.
	ResolveNames(db *gorm.DB, names []string) ([]models.Skill, []string, error)
}

type SkillRepositoryImpl struct{}

func NewSkillRepository() SkillRepository {
	return &SkillRepositoryImpl{}
}

func (r *SkillRepositoryImpl) Create(db *gorm.DB, skill *models.Skill) error {
	var existing models.Skill
	err := db.Where("LOWER(name) = LOWER(?)", skill.Name).First(&existing).Error
	if err == nil {
		return ErrSkillAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(skill).Error
}

func (r *SkillRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Skill, error) {
	var skill models.Skill
	err := db.First(&skill, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepositoryImpl) FindAll(db *gorm.DB) ([]models.Skill, error) {
	var skills []models.Skill
	err := db.Order("name ASC").Find(&skills).Error
	return skills, err
}

func (r *SkillRepositoryImpl) Update(db *gorm.DB, skill *models.Skill) error {
	result := db.Model(&models.Skill{}).Where("id = ?", skill.ID).Update("name", skill.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *SkillRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Skill{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *SkillRepositoryImpl) ResolveNames(db *gorm.DB, names []string) ([]models.Skill, []string, error) {
	if len(names) == 0 {
		return nil, nil, nil
	}

	lowered := make([]string, 0, len(names))
	for _, name := range names {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(name)))
	}

	var found []models.Skill
	if err := db.Where("LOWER(name) IN ?", lowered).Find(&found).Error; err != nil {
		return nil, nil, err
	}

	byName := make(map[string]models.Skill, len(found))
	for _, skill := range found {
		byName[strings.ToLower(skill.Name)] = skill
	}

	// Collect ALL missing names, not just the first one.
	var resolved []models.Skill
	var missing []string
	seen := make(map[string]bool, len(names))
	for i, key := range lowered {
		if seen[key] {
			continue
		}
		seen[key] = true
		if skill, ok := byName[key]; ok {
			resolved = append(resolved, skill)
		} else {
			missing = append(missing, strings.TrimSpace(names[i]))
		}
	}

	return resolved, missing, nil
}
