package dto

// SkillDTO - catalog entry
type SkillDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateSkillRequest - admin catalog insert
type CreateSkillRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateSkillRequest - admin catalog rename
type UpdateSkillRequest struct {
	Name string `json:"name" binding:"required"`
}
