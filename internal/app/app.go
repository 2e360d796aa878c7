package app

import (
	"fmt"

	"screensynced_backend/internal/auth"
	"screensynced_backend/internal/config"
	"screensynced_backend/internal/handlers"
	"screensynced_backend/internal/logger"
	"screensynced_backend/internal/middleware"
	"screensynced_backend/internal/models"
	"screensynced_backend/internal/oauth"
	"screensynced_backend/internal/repositories"
	"screensynced_backend/internal/routes"
	"screensynced_backend/internal/services"
	"screensynced_backend/internal/storage"
	"screensynced_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run загружает конфигурацию, подключается к базе и запускает HTTP-сервер.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := openDatabase(cfg)
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
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	if err := gormDB.AutoMigrate(&models.User{}, &models.Bookmark{}); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// openDatabase открывает соединение с базой по драйверу из конфигурации.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	case "mysql":
		return gorm.Open(mysql.Open(cfg.Database.DSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// SetupRouter собирает все зависимости приложения и возвращает готовый *gin.Engine.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	fileHost, err := storage.NewCloudinaryHost(cfg.Cloudinary.URL)
	if err != nil {
		logger.Fatal("Failed to initialize Cloudinary", "error", err)
	}

	userRepo := repositories.NewUserRepository(gormDB)
	bookmarkRepo := repositories.NewBookmarkRepository(gormDB)

	tokenService := auth.NewTokenService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.AccessTTL(),
		cfg.RefreshTTL(),
	)

	serviceContainer := &services.ServiceContainer{
		AuthService:     services.NewAuthService(userRepo, tokenService, fileHost),
		UserService:     services.NewUserService(userRepo, fileHost),
		BookmarkService: services.NewBookmarkService(bookmarkRepo),
	}

	oauthClients := map[models.OAuthProvider]*oauth.Client{}
	if cfg.OAuth.Google.ClientID != "" {
		oauthClients[models.ProviderGoogle] = oauth.NewGoogleClient(cfg.OAuth.Google)
	}
	if cfg.OAuth.Facebook.ClientID != "" {
		oauthClients[models.ProviderFacebook] = oauth.NewFacebookClient(cfg.OAuth.Facebook)
	}

	appHandlers := initializeHandlers(serviceContainer, oauthClients, gormDB, cfg)

	ginRouter := initializeGinRouter(cfg)

	guard := middleware.AuthRequired(tokenService, userRepo)
	routes.RegisterRoutes(ginRouter, appHandlers, guard)

	return ginRouter
}

func initializeHandlers(
	serviceContainer *services.ServiceContainer,
	oauthClients map[models.OAuthProvider]*oauth.Client,
	gormDB *gorm.DB,
	cfg *config.Config,
) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, serviceContainer.AuthService, oauthClients, cfg),
		UserHandler:     handlers.NewUserHandler(baseHandler, serviceContainer.UserService, cfg),
		BookmarkHandler: handlers.NewBookmarkHandler(baseHandler, serviceContainer.BookmarkService),
		HealthHandler:   handlers.NewHealthHandler(gormDB),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Client.URL))
	return router
}
