package app

import (
	"fmt"

	"matchboxd_backend/database"
	"matchboxd_backend/internal/config"
	"matchboxd_backend/internal/email"
	"matchboxd_backend/internal/handlers"
	"matchboxd_backend/internal/logger"
	"matchboxd_backend/internal/middleware"
	"matchboxd_backend/internal/repositories"
	"matchboxd_backend/internal/routes"
	"matchboxd_backend/internal/services"
	"matchboxd_backend/internal/storage"
	"matchboxd_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	// TranslateError maps driver duplicate-key failures to
	// gorm.ErrDuplicatedKey, which the repositories rely on.
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
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
		logger.Fatal("Migration failed", "error", err)
	}
	logger.Info("Migrations applied")

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	emailProvider := initializeEmailProvider(cfg)

	serviceContainer := initializeServices(cfg, emailProvider, storageInstance)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

// initializeEmailProvider returns the SMTP provider when a host is
// configured, otherwise a mock that records instead of sending.
func initializeEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP host not configured, using mock email provider")
		return email.NewMockProvider()
	}

	provider, err := email.NewSMTPProvider(&email.SMTPConfig{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUsername,
		Password: cfg.Email.SMTPPassword,
		From:     cfg.Email.FromEmail,
		FromName: cfg.Email.FromName,
	})
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}
	return provider
}

func initializeServices(cfg *config.Config, emailProvider email.Provider, storageInstance storage.Storage) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	matchRepo := repositories.NewMatchRepository()
	engagementRepo := repositories.NewEngagementRepository()

	return &services.ServiceContainer{
		AuthService:       services.NewAuthService(userRepo, emailProvider, cfg.Email.FrontendBaseURL),
		ProfileService:    services.NewProfileService(userRepo, emailProvider, storageInstance, cfg.Email.FrontendBaseURL),
		EngagementService: services.NewEngagementService(matchRepo, engagementRepo),
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(customValidator, container.AuthService),
		SettingsHandler: handlers.NewSettingsHandler(customValidator, container.ProfileService),
		MatchHandler:    handlers.NewMatchHandler(customValidator, container.EngagementService),
		UserHandler:     handlers.NewUserHandler(customValidator, container.EngagementService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.DBMiddleware(db))

	if cfg.Storage.Type == "local" && cfg.Storage.BasePath != "" {
		router.Static("/files", cfg.Storage.BasePath)
	}

	return router
}
