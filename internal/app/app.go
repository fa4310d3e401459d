package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fachrinfl/ts-project-management-api/database"
	"github.com/fachrinfl/ts-project-management-api/internal/auth"
	"github.com/fachrinfl/ts-project-management-api/internal/config"
	"github.com/fachrinfl/ts-project-management-api/internal/handlers"
	"github.com/fachrinfl/ts-project-management-api/internal/logger"
	"github.com/fachrinfl/ts-project-management-api/internal/middleware"
	"github.com/fachrinfl/ts-project-management-api/internal/repositories"
	"github.com/fachrinfl/ts-project-management-api/internal/routes"
	"github.com/fachrinfl/ts-project-management-api/internal/services"
	"github.com/fachrinfl/ts-project-management-api/internal/storage"
	"github.com/fachrinfl/ts-project-management-api/internal/validator"
	"github.com/fachrinfl/ts-project-management-api/internal/workers"
	"github.com/fachrinfl/ts-project-management-api/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func Run() {
	cfg := config.LoadConfig()
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(database.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		Env:          cfg.Server.Env,
	})
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	defer func() {
		if err := database.Close(gormDB); err != nil {
			logger.Warn("Failed to close database", "error", err)
		}
	}()
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
		logger.Info("AutoMigrate completed")
	}

	store, err := NewStorage(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	ginRouter := SetupRouter(cfg, gormDB, store)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	sessionWorker := workers.NewSessionWorker(gormDB, repositories.NewRefreshTokenRepository(), cfg.Workers.SessionSweepInterval.Std())
	workersDone := sessionWorker.Start(workerCtx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	stopWorkers()
	<-workersDone
	logger.Info("Server stopped")
}

// NewStorage создаёт файловое хранилище по секции storage конфига
func NewStorage(cfg *config.Config) (storage.Storage, error) {
	return storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
}

// SetupRouter собирает сервисы, хэндлеры и маршруты. Используется и в main, и в интеграционных тестах.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, store storage.Storage) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	apperrors.SetDebug(cfg.IsDevelopment())

	tokens := auth.NewTokenManager(auth.TokenConfig{
		AccessSecret:  cfg.JWT.AccessSecret,
		AccessTTL:     cfg.JWT.AccessTTL.Std(),
		RefreshSecret: cfg.JWT.RefreshSecret,
		RefreshTTL:    cfg.JWT.RefreshTTL.Std(),
		Issuer:        cfg.JWT.Issuer,
	})

	// 1. Сервисы
	serviceContainer := services.NewServiceContainer(tokens, store, services.UploadConfig{
		MaxFileSize:   cfg.Upload.MaxSize,
		AllowedTypes:  cfg.Upload.AllowedTypes,
		DefaultFolder: cfg.Upload.DefaultFolder,
	})

	// 2. Хэндлеры
	appHandlers := initializeHandlers(serviceContainer, cfg)

	// 3. Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 4. Маршруты
	opts := routes.Options{
		Middlewares: handlers.RouteMiddlewares{
			RequireAuth: middleware.AuthMiddleware(tokens),
			RateLimit:   middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		},
		EnableSwagger: cfg.Server.Env != "production",
	}
	if local, ok := store.(*storage.LocalStorage); ok {
		opts.LocalFiles = local
	}
	routes.RegisterRoutes(ginRouter, appHandlers, opts)

	return ginRouter
}

func initializeHandlers(svc *services.ServiceContainer, cfg *config.Config) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:      handlers.NewAuthHandler(baseHandler, svc.AuthService),
		ProjectHandler:   handlers.NewProjectHandler(baseHandler, svc.ProjectService),
		TaskHandler:      handlers.NewTaskHandler(baseHandler, svc.TaskService),
		AnalyticsHandler: handlers.NewAnalyticsHandler(baseHandler, svc.AnalyticsService),
		UploadHandler:    handlers.NewUploadHandler(baseHandler, svc.UploadService, cfg.Upload.TempDir),
		UserHandler:      handlers.NewUserHandler(baseHandler, svc.UserService),
		HealthHandler:    handlers.NewHealthHandler(baseHandler, svc.HealthService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}
