package services

import (
	"juakali_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	SkillService        SkillService
	ArtisanService      ArtisanService
	JobService          JobService
	ApplicationService  ApplicationService
	ReviewService       ReviewService
	NotificationService NotificationService
	EmailService        email.Provider
}
