package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	SkillHandler        *SkillHandler
	ArtisanHandler      *ArtisanHandler
	JobHandler          *JobHandler
	ApplicationHandler  *ApplicationHandler
	ReviewHandler       *ReviewHandler
	NotificationHandler *NotificationHandler
	AdminHandler        *AdminHandler
}
