package app

import (
	"context"
	"errors"
	"fmt"

	"juakali_backend/database"
	"juakali_backend/internal/auth"
	"juakali_backend/internal/config"
	"juakali_backend/internal/email"
	"juakali_backend/internal/handlers"
	"juakali_backend/internal/logger"
	"juakali_backend/internal/middleware"
	"juakali_backend/internal/models"
	"juakali_backend/internal/repositories"
	"juakali_backend/internal/routes"
	"juakali_backend/internal/services"
	"juakali_backend/internal/validator"
	"juakali_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		// Без админа сервер не запускаем
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	// Фоновый воркер: чистка прочитанных уведомлений
	notificationWorker := workers.NewNotificationWorker(
		gormDB,
		repositories.NewNotificationRepository(),
		cfg.Notifications.RetentionDays,
	)
	notificationWorker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(cfg)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(serviceContainer)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(gormDB)

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	emailService := buildEmailProvider(cfg)

	// --- Инициализация репозиториев ---
	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	skillRepo := repositories.NewSkillRepository()
	artisanRepo := repositories.NewArtisanRepository()
	jobRepo := repositories.NewJobRepository()
	applicationRepo := repositories.NewApplicationRepository()
	reviewRepo := repositories.NewReviewRepository()
	notificationRepo := repositories.NewNotificationRepository()

	// --- Инициализация сервисов ---
	authService := services.NewAuthService(userRepo, artisanRepo, skillRepo, refreshTokenRepo, emailService)
	userService := services.NewUserService(userRepo)
	skillService := services.NewSkillService(skillRepo)
	artisanService := services.NewArtisanService(artisanRepo, skillRepo)
	jobService := services.NewJobService(jobRepo, skillRepo, applicationRepo, notificationRepo)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo, notificationRepo)
	reviewService := services.NewReviewService(reviewRepo, jobRepo, notificationRepo)
	notificationService := services.NewNotificationService(notificationRepo)

	return &services.ServiceContainer{
		AuthService:         authService,
		UserService:         userService,
		SkillService:        skillService,
		ArtisanService:      artisanService,
		JobService:          jobService,
		ApplicationService:  applicationService,
		ReviewService:       reviewService,
		NotificationService: notificationService,
		EmailService:        emailService,
	}
}

// buildEmailProvider возвращает SMTP-провайдер, если он настроен,
// иначе - mock (локальная разработка и тесты).
func buildEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPUsername == "" || cfg.Email.SMTPPassword == "" {
		logger.Warn("SMTP is not configured. Using mock email provider.")
		return &MockEmailProvider{}
	}

	provider := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
	if err := provider.Validate(); err != nil {
		logger.Warn("SMTP config invalid. Using mock email provider.", "error", err)
		return &MockEmailProvider{}
	}
	return provider
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, services.UserService),
		SkillHandler:        handlers.NewSkillHandler(baseHandler, services.SkillService),
		ArtisanHandler:      handlers.NewArtisanHandler(baseHandler, services.ArtisanService),
		JobHandler:          handlers.NewJobHandler(baseHandler, services.JobService),
		ApplicationHandler:  handlers.NewApplicationHandler(baseHandler, services.ApplicationService),
		ReviewHandler:       handlers.NewReviewHandler(baseHandler, services.ReviewService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, services.NotificationService),
		AdminHandler:        handlers.NewAdminHandler(baseHandler, services.UserService, services.JobService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var adminUser models.User
	result := tx.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		tx.Rollback()
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		FullName:     "Platform Administrator",
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}

	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Successfully created first admin user", "email", adminEmail)

	return tx.Commit().Error
}
